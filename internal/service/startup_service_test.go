package service_test

import (
	"context"
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

type startupFixture struct {
	rules    *mocks.MockRuleRepo
	tasks    *mocks.MockTaskRepo
	uploads  *mocks.MockUploadRepo
	startups *mocks.MockStartupRepo
	svc      service.StartupService
}

func newStartupFixture() *startupFixture {
	f := &startupFixture{
		rules:    new(mocks.MockRuleRepo),
		tasks:    new(mocks.MockTaskRepo),
		uploads:  new(mocks.MockUploadRepo),
		startups: new(mocks.MockStartupRepo),
	}
	mat := compliance.NewMaterializer(f.rules, f.tasks, f.startups)
	rec := compliance.NewReconciler(mat, f.tasks, f.uploads, f.startups)
	f.svc = service.NewStartupService(f.startups, rec)
	return f
}

// expectResync wires the mock calls a signature-gated sync makes for a
// startup with no rules.
func (f *startupFixture) expectResync() {
	f.tasks.On("GenerateForStartup", mock.Anything, mock.Anything).Return([]domain.GeneratedTask{}, nil)
	f.rules.On("GetByCountryAndCompanyType", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.ComplianceRule{}, nil)
}

func TestCreateStartup_UnknownCountry(t *testing.T) {
	f := newStartupFixture()

	_, err := f.svc.Create(context.Background(), service.CreateStartupInput{
		Name:                  "Acme Labs",
		CountryOfRegistration: "Atlantis",
		CompanyType:           "Private Limited",
		RegistrationDate:      time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, domain.ErrUnknownCountry)
	f.startups.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateStartup_Success(t *testing.T) {
	f := newStartupFixture()

	var createdID uuid.UUID
	f.startups.On("Create", mock.Anything, mock.AnythingOfType("*domain.Startup")).
		Run(func(args mock.Arguments) {
			s := args.Get(1).(*domain.Startup)
			createdID = s.ID
			assert.Equal(t, domain.CompliancePending, s.ComplianceStatus)
			assert.True(t, s.IsActive)
			assert.Equal(t, "founder@acme.example", s.ContactEmail)
		}).
		Return(nil)
	f.startups.On("ReplaceSubsidiaries", mock.Anything, mock.Anything, mock.AnythingOfType("[]domain.Subsidiary")).Return(nil)
	f.startups.On("ReplaceInternationalOps", mock.Anything, mock.Anything, mock.AnythingOfType("[]domain.InternationalOperation")).Return(nil)
	f.startups.On("GetByID", mock.Anything, mock.Anything).Return(&domain.Startup{
		Name:                  "Acme Labs",
		CountryOfRegistration: "India",
		CompanyType:           "Private Limited",
		ComplianceStatus:      domain.CompliancePending,
	}, nil)
	f.startups.On("ListSubsidiaries", mock.Anything, mock.Anything).Return([]domain.Subsidiary{}, nil)
	f.startups.On("ListInternationalOps", mock.Anything, mock.Anything).Return([]domain.InternationalOperation{}, nil)
	f.expectResync()

	profile, err := f.svc.Create(context.Background(), service.CreateStartupInput{
		Name:                  " Acme Labs ",
		CountryOfRegistration: "India",
		CompanyType:           "Private Limited",
		RegistrationDate:      time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC),
		ContactEmail:          "Founder@Acme.example",
		Subsidiaries: []service.SubsidiaryInput{
			{Country: "Singapore", CACode: "CA-SG"},
		},
	})

	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, createdID)
	assert.Equal(t, "Acme Labs", profile.Startup.Name)
	f.startups.AssertCalled(t, "ReplaceSubsidiaries", mock.Anything, createdID, mock.MatchedBy(func(subs []domain.Subsidiary) bool {
		return len(subs) == 1 && subs[0].Country == "Singapore" && subs[0].CACode == "CA-SG"
	}))
}

func TestUpdateStartup_NilSlicesLeaveEntitiesUnchanged(t *testing.T) {
	f := newStartupFixture()
	startupID := uuid.New()
	name := "Renamed Labs"

	f.startups.On("GetByID", mock.Anything, startupID).Return(&domain.Startup{
		ID:                    startupID,
		Name:                  "Acme Labs",
		CountryOfRegistration: "India",
		CompanyType:           "Private Limited",
	}, nil)
	f.startups.On("Update", mock.Anything, mock.MatchedBy(func(s *domain.Startup) bool {
		return s.Name == "Renamed Labs"
	})).Return(nil)
	f.startups.On("ListSubsidiaries", mock.Anything, startupID).Return([]domain.Subsidiary{}, nil)
	f.startups.On("ListInternationalOps", mock.Anything, startupID).Return([]domain.InternationalOperation{}, nil)
	f.expectResync()

	_, err := f.svc.Update(context.Background(), startupID, service.UpdateStartupInput{Name: &name})

	assert.NoError(t, err)
	f.startups.AssertNotCalled(t, "ReplaceSubsidiaries", mock.Anything, mock.Anything, mock.Anything)
	f.startups.AssertNotCalled(t, "ReplaceInternationalOps", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStartup_EmptySliceClearsEntities(t *testing.T) {
	f := newStartupFixture()
	startupID := uuid.New()

	f.startups.On("GetByID", mock.Anything, startupID).Return(&domain.Startup{
		ID:                    startupID,
		Name:                  "Acme Labs",
		CountryOfRegistration: "India",
		CompanyType:           "Private Limited",
	}, nil)
	f.startups.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.startups.On("ReplaceSubsidiaries", mock.Anything, startupID, mock.MatchedBy(func(subs []domain.Subsidiary) bool {
		return len(subs) == 0
	})).Return(nil)
	f.startups.On("ListSubsidiaries", mock.Anything, startupID).Return([]domain.Subsidiary{}, nil)
	f.startups.On("ListInternationalOps", mock.Anything, startupID).Return([]domain.InternationalOperation{}, nil)
	f.expectResync()

	_, err := f.svc.Update(context.Background(), startupID, service.UpdateStartupInput{
		Subsidiaries: []service.SubsidiaryInput{},
	})

	assert.NoError(t, err)
	f.startups.AssertExpectations(t)
}

func TestUpdateStartup_UnknownCountry(t *testing.T) {
	f := newStartupFixture()
	startupID := uuid.New()
	country := "Atlantis"

	f.startups.On("GetByID", mock.Anything, startupID).Return(&domain.Startup{
		ID:                    startupID,
		CountryOfRegistration: "India",
		CompanyType:           "Private Limited",
	}, nil)

	_, err := f.svc.Update(context.Background(), startupID, service.UpdateStartupInput{
		CountryOfRegistration: &country,
	})

	assert.ErrorIs(t, err, domain.ErrUnknownCountry)
	f.startups.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
