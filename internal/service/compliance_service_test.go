package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"complyhub/internal/compliance"
	"complyhub/internal/domain"
	"complyhub/internal/service"
	"complyhub/mocks"
)

type complianceFixture struct {
	rules    *mocks.MockRuleRepo
	tasks    *mocks.MockTaskRepo
	uploads  *mocks.MockUploadRepo
	startups *mocks.MockStartupRepo
	notifier *mocks.MockNotifier
	svc      service.ComplianceService
}

func newComplianceFixture() *complianceFixture {
	f := &complianceFixture{
		rules:    new(mocks.MockRuleRepo),
		tasks:    new(mocks.MockTaskRepo),
		uploads:  new(mocks.MockUploadRepo),
		startups: new(mocks.MockStartupRepo),
		notifier: new(mocks.MockNotifier),
	}
	mat := compliance.NewMaterializer(f.rules, f.tasks, f.startups)
	rec := compliance.NewReconciler(mat, f.tasks, f.uploads, f.startups)
	f.svc = service.NewComplianceService(rec, f.tasks, f.startups, f.notifier)
	return f
}

func complianceStartup(id uuid.UUID, status domain.ComplianceStatus) *domain.Startup {
	return &domain.Startup{
		ID:                    id,
		Name:                  "Acme Labs",
		CountryOfRegistration: "India",
		CompanyType:           "Private Limited",
		RegistrationDate:      time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC),
		ComplianceStatus:      status,
		ContactName:           "Priya",
		ContactEmail:          "priya@acme.example",
	}
}

func generatedTask(taskID, entity string, year int) domain.GeneratedTask {
	return domain.GeneratedTask{
		TaskID:            taskID,
		EntityIdentifier:  "parent",
		EntityDisplayName: entity,
		Year:              year,
		TaskName:          "Annual Return - " + taskID,
		CARequired:        true,
		TaskType:          domain.FrequencyAnnual,
	}
}

func TestLoadTasks_FiltersStaleEntities(t *testing.T) {
	f := newComplianceFixture()
	startupID := uuid.New()
	startup := complianceStartup(startupID, domain.CompliancePending)

	f.tasks.On("GenerateForStartup", mock.Anything, startupID).Return([]domain.GeneratedTask{
		generatedTask("t1", "Parent Company (IN)", 2025),
		generatedTask("t2", "Subsidiary (SG)", 2025),
	}, nil)
	f.tasks.On("ListByStartup", mock.Anything, startupID).Return([]domain.ComplianceTaskRecord{}, nil)
	f.uploads.On("ListByStartup", mock.Anything, startupID).Return([]domain.ComplianceUpload{}, nil)
	f.startups.On("GetByID", mock.Anything, startupID).Return(startup, nil)
	f.startups.On("ListSubsidiaries", mock.Anything, startupID).Return([]domain.Subsidiary{}, nil)
	f.startups.On("ListInternationalOps", mock.Anything, startupID).Return([]domain.InternationalOperation{}, nil)

	result, err := f.svc.LoadTasks(context.Background(), startupID, domain.RoleStartup)

	assert.NoError(t, err)
	// The raw list keeps everything; grouping drops entities the current
	// profile no longer defines.
	assert.Len(t, result.Tasks, 2)
	assert.Len(t, result.Groups, 1)
	assert.Equal(t, "Parent Company (IN)", result.Groups[0].EntityDisplayName)
	assert.Equal(t, domain.CompliancePending, result.ComplianceStatus)
	f.startups.AssertNotCalled(t, "UpdateComplianceStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestLoadTasks_KeepsAllGroupsWhenEntityListFails(t *testing.T) {
	f := newComplianceFixture()
	startupID := uuid.New()
	startup := complianceStartup(startupID, domain.CompliancePending)

	f.tasks.On("GenerateForStartup", mock.Anything, startupID).Return([]domain.GeneratedTask{
		generatedTask("t1", "Parent Company (IN)", 2025),
		generatedTask("t2", "Subsidiary (SG)", 2025),
	}, nil)
	f.tasks.On("ListByStartup", mock.Anything, startupID).Return([]domain.ComplianceTaskRecord{}, nil)
	f.uploads.On("ListByStartup", mock.Anything, startupID).Return([]domain.ComplianceUpload{}, nil)
	f.startups.On("GetByID", mock.Anything, startupID).Return(startup, nil)
	f.startups.On("ListSubsidiaries", mock.Anything, startupID).Return(nil, errors.New("timeout"))
	f.startups.On("ListInternationalOps", mock.Anything, startupID).Return([]domain.InternationalOperation{}, nil)

	result, err := f.svc.LoadTasks(context.Background(), startupID, domain.RoleStartup)

	assert.NoError(t, err)
	// A transient subsidiary-list failure must not make the subsidiary's
	// live group look stale: filtering is skipped for this load.
	assert.Len(t, result.Groups, 2)
	names := []string{result.Groups[0].EntityDisplayName, result.Groups[1].EntityDisplayName}
	assert.Contains(t, names, "Parent Company (IN)")
	assert.Contains(t, names, "Subsidiary (SG)")
}

func TestUpdateTaskStatus_MissingRow(t *testing.T) {
	f := newComplianceFixture()
	startupID := uuid.New()

	f.tasks.On("GetByTaskID", mock.Anything, startupID, "t1").Return(nil, domain.ErrNotFound)

	err := f.svc.UpdateTaskStatus(context.Background(), service.StatusUpdateInput{
		StartupID: startupID,
		TaskID:    "t1",
		Party:     domain.PartyCA,
		Status:    domain.StatusVerified,
		Role:      domain.RoleCA,
	})

	assert.ErrorIs(t, err, domain.ErrTaskMetadataMissing)
}

func TestUpdateTaskStatus_WrongParty(t *testing.T) {
	f := newComplianceFixture()
	startupID := uuid.New()
	rec := pendingTaskRecord(startupID, "t1")
	rec.CAStatus = domain.StatusSubmitted

	f.tasks.On("GetByTaskID", mock.Anything, startupID, "t1").Return(rec, nil)

	err := f.svc.UpdateTaskStatus(context.Background(), service.StatusUpdateInput{
		StartupID: startupID,
		TaskID:    "t1",
		Party:     domain.PartyCA,
		Status:    domain.StatusVerified,
		Role:      domain.RoleCS,
	})

	assert.ErrorIs(t, err, domain.ErrWrongVerificationParty)
	f.tasks.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateTaskStatus_InvalidTransition(t *testing.T) {
	f := newComplianceFixture()
	startupID := uuid.New()
	rec := pendingTaskRecord(startupID, "t1")
	rec.CAStatus = domain.StatusRejected

	f.tasks.On("GetByTaskID", mock.Anything, startupID, "t1").Return(rec, nil)

	err := f.svc.UpdateTaskStatus(context.Background(), service.StatusUpdateInput{
		StartupID: startupID,
		TaskID:    "t1",
		Party:     domain.PartyCA,
		Status:    domain.StatusVerified,
		Role:      domain.RoleCA,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
}

func TestUpdateTaskStatus_ConstraintErrorClassified(t *testing.T) {
	f := newComplianceFixture()
	startupID := uuid.New()
	rec := pendingTaskRecord(startupID, "t1")
	rec.CAStatus = domain.StatusSubmitted

	f.tasks.On("GetByTaskID", mock.Anything, startupID, "t1").Return(rec, nil)
	f.tasks.On("UpdateStatus", mock.Anything, startupID, "t1", domain.PartyCA, domain.StatusVerified).
		Return(errors.New(`invalid input value for enum verification_status: "verified"`))

	err := f.svc.UpdateTaskStatus(context.Background(), service.StatusUpdateInput{
		StartupID: startupID,
		TaskID:    "t1",
		Party:     domain.PartyCA,
		Status:    domain.StatusVerified,
		Role:      domain.RoleCA,
	})

	assert.ErrorIs(t, err, domain.ErrStatusConstraint)
}

func TestUpdateTaskStatus_PersistsChangedAggregate(t *testing.T) {
	f := newComplianceFixture()
	startupID := uuid.New()
	startup := complianceStartup(startupID, domain.CompliancePending)
	rec := pendingTaskRecord(startupID, "t1")
	rec.CAStatus = domain.StatusSubmitted

	f.tasks.On("GetByTaskID", mock.Anything, startupID, "t1").Return(rec, nil)
	f.tasks.On("UpdateStatus", mock.Anything, startupID, "t1", domain.PartyCA, domain.StatusVerified).Return(nil)

	// Recompute sees the written status.
	verifiedRec := *rec
	verifiedRec.CAStatus = domain.StatusVerified
	f.tasks.On("GenerateForStartup", mock.Anything, startupID).
		Return([]domain.GeneratedTask{generatedTask("t1", "Parent Company (IN)", 2025)}, nil)
	f.tasks.On("ListByStartup", mock.Anything, startupID).Return([]domain.ComplianceTaskRecord{verifiedRec}, nil)
	f.uploads.On("ListByStartup", mock.Anything, startupID).Return([]domain.ComplianceUpload{}, nil)
	f.startups.On("GetByID", mock.Anything, startupID).Return(startup, nil)
	f.startups.On("UpdateComplianceStatus", mock.Anything, startupID, domain.ComplianceCompliant).Return(nil)
	// A notification failure never fails the status update.
	f.notifier.On("NotifyComplianceStatusChange", mock.Anything, "priya@acme.example", "Priya", "Acme Labs", domain.ComplianceCompliant).
		Return(errors.New("ses throttled"))

	err := f.svc.UpdateTaskStatus(context.Background(), service.StatusUpdateInput{
		StartupID: startupID,
		TaskID:    "t1",
		Party:     domain.PartyCA,
		Status:    domain.StatusVerified,
		Role:      domain.RoleCA,
	})

	assert.NoError(t, err)
	f.startups.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestSetApplicability_RoleRestriction(t *testing.T) {
	f := newComplianceFixture()
	startupID := uuid.New()

	err := f.svc.SetApplicability(context.Background(), startupID, "t1", false, domain.RoleCA)

	assert.ErrorIs(t, err, domain.ErrForbidden)
	f.tasks.AssertNotCalled(t, "SetApplicability", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSetApplicability_SuppressesUnchangedAggregateWrite(t *testing.T) {
	f := newComplianceFixture()
	startupID := uuid.New()
	startup := complianceStartup(startupID, domain.CompliancePending)

	f.tasks.On("SetApplicability", mock.Anything, startupID, "t1", false).Return(nil)
	// Recompute finds no tasks at all: aggregate stays pending, matching the
	// stored status, so no write happens.
	f.tasks.On("GenerateForStartup", mock.Anything, startupID).Return([]domain.GeneratedTask{}, nil)
	f.startups.On("GetByID", mock.Anything, startupID).Return(startup, nil)
	f.rules.On("GetByCountryAndCompanyType", mock.Anything, "IN", "Private Limited").
		Return([]domain.ComplianceRule{}, nil)

	err := f.svc.SetApplicability(context.Background(), startupID, "t1", false, domain.RoleStartup)

	assert.NoError(t, err)
	f.startups.AssertNotCalled(t, "UpdateComplianceStatus", mock.Anything, mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "NotifyComplianceStatusChange", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSetApplicability_MissingRow(t *testing.T) {
	f := newComplianceFixture()
	startupID := uuid.New()

	f.tasks.On("SetApplicability", mock.Anything, startupID, "t1", true).Return(domain.ErrNotFound)

	err := f.svc.SetApplicability(context.Background(), startupID, "t1", true, domain.RoleAdmin)

	assert.ErrorIs(t, err, domain.ErrTaskMetadataMissing)
}
