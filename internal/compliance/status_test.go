package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"complyhub/internal/domain"
)

func TestCanUploadTransition(t *testing.T) {
	assert.True(t, CanUploadTransition(domain.StatusPending))
	assert.False(t, CanUploadTransition(domain.StatusSubmitted))
	assert.False(t, CanUploadTransition(domain.StatusVerified))
	assert.False(t, CanUploadTransition(domain.StatusRejected))
}

func TestCanDeleteRevert(t *testing.T) {
	assert.True(t, CanDeleteRevert(domain.StatusSubmitted))
	assert.False(t, CanDeleteRevert(domain.StatusPending))
	assert.False(t, CanDeleteRevert(domain.StatusVerified))
	assert.False(t, CanDeleteRevert(domain.StatusRejected))
}

func TestValidateVerifierTransition_Table(t *testing.T) {
	cases := []struct {
		current, next domain.VerificationStatus
		ok            bool
	}{
		{domain.StatusPending, domain.StatusVerified, true},
		{domain.StatusPending, domain.StatusRejected, true},
		{domain.StatusPending, domain.StatusSubmitted, false},
		{domain.StatusSubmitted, domain.StatusVerified, true},
		{domain.StatusSubmitted, domain.StatusRejected, true},
		{domain.StatusSubmitted, domain.StatusPending, false},
		{domain.StatusVerified, domain.StatusPending, true},
		{domain.StatusVerified, domain.StatusRejected, true},
		{domain.StatusVerified, domain.StatusSubmitted, false},
		{domain.StatusRejected, domain.StatusPending, true},
		{domain.StatusRejected, domain.StatusSubmitted, true},
		{domain.StatusRejected, domain.StatusVerified, false},
	}

	for _, tc := range cases {
		err := ValidateVerifierTransition(domain.RoleCA, domain.PartyCA, tc.current, tc.next)
		if tc.ok {
			assert.NoError(t, err, "%s -> %s", tc.current, tc.next)
		} else {
			assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition, "%s -> %s", tc.current, tc.next)
		}
	}
}

func TestValidateVerifierTransition_SameStatusIsNoOp(t *testing.T) {
	assert.NoError(t, ValidateVerifierTransition(domain.RoleCS, domain.PartyCS, domain.StatusVerified, domain.StatusVerified))
}

func TestValidateVerifierTransition_PartyScope(t *testing.T) {
	err := ValidateVerifierTransition(domain.RoleCA, domain.PartyCS, domain.StatusPending, domain.StatusVerified)
	assert.ErrorIs(t, err, domain.ErrWrongVerificationParty)

	err = ValidateVerifierTransition(domain.RoleCS, domain.PartyCA, domain.StatusPending, domain.StatusVerified)
	assert.ErrorIs(t, err, domain.ErrWrongVerificationParty)

	// Startup users are not verifiers at all.
	err = ValidateVerifierTransition(domain.RoleStartup, domain.PartyCA, domain.StatusPending, domain.StatusVerified)
	assert.ErrorIs(t, err, domain.ErrWrongVerificationParty)

	// Admins may edit either column.
	assert.NoError(t, ValidateVerifierTransition(domain.RoleAdmin, domain.PartyCA, domain.StatusPending, domain.StatusVerified))
	assert.NoError(t, ValidateVerifierTransition(domain.RoleAdmin, domain.PartyCS, domain.StatusSubmitted, domain.StatusRejected))
}
