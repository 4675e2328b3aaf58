package compliance

import "complyhub/internal/domain"

// CanUploadTransition reports whether an evidence upload may advance the
// given party status. Uploads only ever move pending to submitted.
func CanUploadTransition(current domain.VerificationStatus) bool {
	return current == domain.StatusPending
}

// CanDeleteRevert reports whether removing the last upload for a task may
// revert the given party status back to pending. Only an exact submitted
// status reverts; verified and rejected are never touched by deletion.
func CanDeleteRevert(current domain.VerificationStatus) bool {
	return current == domain.StatusSubmitted
}

// verifierTransitions encodes the per-party status machine for explicit
// verifier actions. Verified and rejected are only ever reached through a
// verifier; rejected reopens to pending or submitted via re-approve, and
// verified is revisable only by direct override.
var verifierTransitions = map[domain.VerificationStatus]map[domain.VerificationStatus]bool{
	domain.StatusPending: {
		domain.StatusVerified: true,
		domain.StatusRejected: true,
	},
	domain.StatusSubmitted: {
		domain.StatusVerified: true,
		domain.StatusRejected: true,
	},
	domain.StatusVerified: {
		domain.StatusPending:  true,
		domain.StatusRejected: true,
	},
	domain.StatusRejected: {
		domain.StatusPending:   true,
		domain.StatusSubmitted: true,
	},
}

// ValidateVerifierTransition checks that a role is allowed to move a task's
// party column from current to next. The CA column is editable only by the
// CA role and the CS column only by the CS role; admins may edit either.
func ValidateVerifierTransition(role domain.UserRole, party domain.VerificationParty, current, next domain.VerificationStatus) error {
	if role != domain.RoleAdmin && role.Party() != party {
		return domain.ErrWrongVerificationParty
	}
	if current == next {
		return nil
	}
	if !verifierTransitions[current][next] {
		return domain.ErrInvalidStatusTransition
	}
	return nil
}
