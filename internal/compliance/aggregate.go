package compliance

import "complyhub/internal/domain"

// ComputeAggregate rolls the applicable tasks up into one startup-level
// compliance status, scoped to the viewing role. CA viewers judge only the
// CA column, CS viewers only the CS column; every other role requires both
// columns to be satisfied.
func ComputeAggregate(tasks []domain.TaskInstance, role domain.UserRole) domain.ComplianceStatus {
	anyApplicable := false
	allSatisfied := true

	for i := range tasks {
		t := &tasks[i]
		if !t.IsApplicable {
			continue
		}
		anyApplicable = true

		if taskRejected(t, role) {
			return domain.ComplianceNonCompliant
		}
		if !taskSatisfied(t, role) {
			allSatisfied = false
		}
	}

	if !anyApplicable {
		return domain.CompliancePending
	}
	if allSatisfied {
		return domain.ComplianceCompliant
	}
	return domain.CompliancePending
}

func taskSatisfied(t *domain.TaskInstance, role domain.UserRole) bool {
	switch role {
	case domain.RoleCA:
		return partySatisfied(t, domain.PartyCA)
	case domain.RoleCS:
		return partySatisfied(t, domain.PartyCS)
	default:
		return partySatisfied(t, domain.PartyCA) && partySatisfied(t, domain.PartyCS)
	}
}

func taskRejected(t *domain.TaskInstance, role domain.UserRole) bool {
	switch role {
	case domain.RoleCA:
		return partyRejected(t, domain.PartyCA)
	case domain.RoleCS:
		return partyRejected(t, domain.PartyCS)
	default:
		return partyRejected(t, domain.PartyCA) || partyRejected(t, domain.PartyCS)
	}
}

func partySatisfied(t *domain.TaskInstance, p domain.VerificationParty) bool {
	return !t.RequiredFor(p) || t.StatusFor(p) == domain.StatusVerified
}

func partyRejected(t *domain.TaskInstance, p domain.VerificationParty) bool {
	return t.RequiredFor(p) && t.StatusFor(p) == domain.StatusRejected
}
