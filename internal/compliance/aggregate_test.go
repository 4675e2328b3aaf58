package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"complyhub/internal/domain"
)

func task(caReq, csReq bool, ca, cs domain.VerificationStatus) domain.TaskInstance {
	return domain.TaskInstance{
		CARequired:   caReq,
		CSRequired:   csReq,
		CAStatus:     ca,
		CSStatus:     cs,
		IsApplicable: true,
	}
}

func TestComputeAggregate_NoApplicableTasks(t *testing.T) {
	assert.Equal(t, domain.CompliancePending, ComputeAggregate(nil, domain.RoleAdmin))

	na := task(true, true, domain.StatusPending, domain.StatusPending)
	na.IsApplicable = false
	assert.Equal(t, domain.CompliancePending, ComputeAggregate([]domain.TaskInstance{na}, domain.RoleAdmin))
}

func TestComputeAggregate_RoleScoping(t *testing.T) {
	// CS-only task, verified on the CS column.
	tasks := []domain.TaskInstance{
		task(false, true, domain.StatusPending, domain.StatusVerified),
	}

	// Every role sees compliant: the CA column is not required, so even the
	// dual-column view is satisfied, and the CA view has nothing to judge on
	// its own column.
	assert.Equal(t, domain.ComplianceCompliant, ComputeAggregate(tasks, domain.RoleCA))
	assert.Equal(t, domain.ComplianceCompliant, ComputeAggregate(tasks, domain.RoleCS))
	assert.Equal(t, domain.ComplianceCompliant, ComputeAggregate(tasks, domain.RoleAdmin))
	assert.Equal(t, domain.ComplianceCompliant, ComputeAggregate(tasks, domain.RoleStartup))
}

func TestComputeAggregate_CAViewerIgnoresCSColumn(t *testing.T) {
	tasks := []domain.TaskInstance{
		task(true, true, domain.StatusVerified, domain.StatusPending),
	}

	assert.Equal(t, domain.ComplianceCompliant, ComputeAggregate(tasks, domain.RoleCA))
	assert.Equal(t, domain.CompliancePending, ComputeAggregate(tasks, domain.RoleCS))
	assert.Equal(t, domain.CompliancePending, ComputeAggregate(tasks, domain.RoleAdmin))
}

func TestComputeAggregate_RejectionWins(t *testing.T) {
	tasks := []domain.TaskInstance{
		task(true, false, domain.StatusVerified, domain.StatusPending),
		task(true, true, domain.StatusVerified, domain.StatusRejected),
	}

	assert.Equal(t, domain.ComplianceNonCompliant, ComputeAggregate(tasks, domain.RoleAdmin))
	assert.Equal(t, domain.ComplianceNonCompliant, ComputeAggregate(tasks, domain.RoleCS))
	// The CA view never looks at the rejected CS column.
	assert.Equal(t, domain.ComplianceCompliant, ComputeAggregate(tasks, domain.RoleCA))
}

func TestComputeAggregate_RejectedNotApplicableTaskIgnored(t *testing.T) {
	rejected := task(true, false, domain.StatusRejected, domain.StatusPending)
	rejected.IsApplicable = false
	verified := task(true, false, domain.StatusVerified, domain.StatusPending)

	assert.Equal(t, domain.ComplianceCompliant,
		ComputeAggregate([]domain.TaskInstance{rejected, verified}, domain.RoleAdmin))
}

func TestComputeAggregate_MixedProgress(t *testing.T) {
	tasks := []domain.TaskInstance{
		task(true, false, domain.StatusVerified, domain.StatusPending),
		task(true, false, domain.StatusSubmitted, domain.StatusPending),
	}

	assert.Equal(t, domain.CompliancePending, ComputeAggregate(tasks, domain.RoleCA))
}
