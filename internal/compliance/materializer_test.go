package compliance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"complyhub/internal/domain"
	"complyhub/mocks"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func testStartup(id uuid.UUID) *domain.Startup {
	return &domain.Startup{
		ID:                    id,
		Name:                  "Acme Labs",
		CountryOfRegistration: "India",
		CompanyType:           "Private Limited",
		RegistrationDate:      time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func annualRule(id int64) domain.ComplianceRule {
	return domain.ComplianceRule{
		ID:                   id,
		CountryCode:          "IN",
		CompanyType:          "Private Limited",
		Name:                 "Annual ROC Filing",
		Frequency:            domain.FrequencyAnnual,
		VerificationRequired: domain.VerificationCA,
		IsActive:             true,
	}
}

func newTestMaterializer(rules *mocks.MockRuleRepo, tasks *mocks.MockTaskRepo, startups *mocks.MockStartupRepo) *Materializer {
	m := NewMaterializer(rules, tasks, startups)
	m.now = fixedNow
	return m
}

func TestTaskID(t *testing.T) {
	startupID := uuid.MustParse("11111111-2222-3333-4444-555555555555")

	assert.Equal(t, "rule_7_11111111-2222-3333-4444-555555555555_2024", TaskID(7, startupID, 2024, ""))
	assert.Equal(t, "rule_7_11111111-2222-3333-4444-555555555555_2024_Q2", TaskID(7, startupID, 2024, "Q2"))
	assert.Equal(t, "rule_7_11111111-2222-3333-4444-555555555555_2024_M11", TaskID(7, startupID, 2024, "M11"))

	// The formula must be stable across repeated calls.
	assert.Equal(t, TaskID(7, startupID, 2024, "Q2"), TaskID(7, startupID, 2024, "Q2"))
}

func TestMaterialize_FallbackAnnualRule(t *testing.T) {
	ruleRepo := new(mocks.MockRuleRepo)
	taskRepo := new(mocks.MockTaskRepo)
	startupRepo := new(mocks.MockStartupRepo)
	mat := newTestMaterializer(ruleRepo, taskRepo, startupRepo)

	startupID := uuid.New()
	taskRepo.On("GenerateForStartup", mock.Anything, startupID).Return(nil, errors.New("function does not exist"))
	startupRepo.On("GetByID", mock.Anything, startupID).Return(testStartup(startupID), nil)
	ruleRepo.On("GetByCountryAndCompanyType", mock.Anything, "IN", "Private Limited").
		Return([]domain.ComplianceRule{annualRule(1)}, nil)
	taskRepo.On("ListByStartup", mock.Anything, startupID).Return([]domain.ComplianceTaskRecord{}, nil)

	tasks := mat.Materialize(context.Background(), startupID)

	// Registered 2022, current year 2025: one instance per year.
	assert.Len(t, tasks, 4)
	years := make(map[int]bool)
	for _, task := range tasks {
		years[task.Year] = true
		assert.Equal(t, "Parent Company (IN)", task.EntityDisplayName)
		assert.Equal(t, ParentEntityID, task.EntityIdentifier)
		assert.True(t, task.CARequired)
		assert.False(t, task.CSRequired)
		assert.True(t, task.IsApplicable)
		assert.Equal(t, domain.StatusPending, task.CAStatus)
	}
	assert.Equal(t, map[int]bool{2022: true, 2023: true, 2024: true, 2025: true}, years)
	assert.Equal(t, "Annual ROC Filing - 2025", tasks[0].TaskName)
}

func TestMaterialize_FirstYearRule(t *testing.T) {
	ruleRepo := new(mocks.MockRuleRepo)
	taskRepo := new(mocks.MockTaskRepo)
	startupRepo := new(mocks.MockStartupRepo)
	mat := newTestMaterializer(ruleRepo, taskRepo, startupRepo)

	startupID := uuid.New()
	rule := annualRule(2)
	rule.Name = "Commencement of Business"
	rule.Frequency = domain.FrequencyFirstYear

	taskRepo.On("GenerateForStartup", mock.Anything, startupID).Return([]domain.GeneratedTask{}, nil)
	startupRepo.On("GetByID", mock.Anything, startupID).Return(testStartup(startupID), nil)
	ruleRepo.On("GetByCountryAndCompanyType", mock.Anything, "IN", "Private Limited").
		Return([]domain.ComplianceRule{rule}, nil)
	taskRepo.On("ListByStartup", mock.Anything, startupID).Return([]domain.ComplianceTaskRecord{}, nil)

	tasks := mat.Materialize(context.Background(), startupID)

	assert.Len(t, tasks, 1)
	assert.Equal(t, 2022, tasks[0].Year)
	assert.Equal(t, "Commencement of Business", tasks[0].TaskName)
	assert.Equal(t, TaskID(2, startupID, 2022, ""), tasks[0].TaskID)
}

func TestMaterialize_QuarterlyAndMonthlyExpansion(t *testing.T) {
	ruleRepo := new(mocks.MockRuleRepo)
	taskRepo := new(mocks.MockTaskRepo)
	startupRepo := new(mocks.MockStartupRepo)
	mat := newTestMaterializer(ruleRepo, taskRepo, startupRepo)

	startupID := uuid.New()
	startup := testStartup(startupID)
	startup.RegistrationDate = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	quarterly := annualRule(3)
	quarterly.Name = "GST Return"
	quarterly.Frequency = domain.FrequencyQuarterly
	monthly := annualRule(4)
	monthly.Name = "TDS Deposit"
	monthly.Frequency = domain.FrequencyMonthly

	taskRepo.On("GenerateForStartup", mock.Anything, startupID).Return(nil, errors.New("rpc unavailable"))
	startupRepo.On("GetByID", mock.Anything, startupID).Return(startup, nil)
	ruleRepo.On("GetByCountryAndCompanyType", mock.Anything, "IN", "Private Limited").
		Return([]domain.ComplianceRule{quarterly, monthly}, nil)
	taskRepo.On("ListByStartup", mock.Anything, startupID).Return([]domain.ComplianceTaskRecord{}, nil)

	tasks := mat.Materialize(context.Background(), startupID)

	// 2024-2025: 2 years * (4 quarters + 12 months).
	assert.Len(t, tasks, 2*4+2*12)

	names := make(map[string]bool)
	ids := make(map[string]bool)
	for _, task := range tasks {
		names[task.TaskName] = true
		assert.False(t, ids[task.TaskID], "duplicate task id %s", task.TaskID)
		ids[task.TaskID] = true
	}
	assert.True(t, names["GST Return - Q3 2024"])
	assert.True(t, names["TDS Deposit - Jan 2025"])
	assert.True(t, ids[TaskID(3, startupID, 2024, "Q3")])
	assert.True(t, ids[TaskID(4, startupID, 2025, "M1")])
}

func TestMaterialize_MergesPersistedState(t *testing.T) {
	ruleRepo := new(mocks.MockRuleRepo)
	taskRepo := new(mocks.MockTaskRepo)
	startupRepo := new(mocks.MockStartupRepo)
	mat := newTestMaterializer(ruleRepo, taskRepo, startupRepo)

	startupID := uuid.New()
	generated := []domain.GeneratedTask{
		{
			TaskID:            "rule_1_x_2024",
			EntityIdentifier:  ParentEntityID,
			EntityDisplayName: "Parent Company (IN)",
			Year:              2024,
			TaskName:          "Annual ROC Filing - 2024",
			CARequired:        true,
			TaskType:          domain.FrequencyAnnual,
		},
		{
			TaskID:            "rule_1_x_2025",
			EntityIdentifier:  ParentEntityID,
			EntityDisplayName: "Parent Company (IN)",
			Year:              2025,
			TaskName:          "Annual ROC Filing - 2025",
			CARequired:        true,
			TaskType:          domain.FrequencyAnnual,
		},
	}

	notApplicable := false
	persisted := []domain.ComplianceTaskRecord{
		{
			TaskID:       "rule_1_x_2024",
			CAStatus:     domain.StatusVerified,
			CSStatus:     domain.StatusPending,
			IsApplicable: &notApplicable,
		},
	}

	taskRepo.On("GenerateForStartup", mock.Anything, startupID).Return(generated, nil)
	taskRepo.On("ListByStartup", mock.Anything, startupID).Return(persisted, nil)

	tasks := mat.Materialize(context.Background(), startupID)

	assert.Len(t, tasks, 2)
	byID := make(map[string]domain.TaskInstance)
	for _, task := range tasks {
		byID[task.TaskID] = task
	}

	assert.Equal(t, domain.StatusVerified, byID["rule_1_x_2024"].CAStatus)
	assert.False(t, byID["rule_1_x_2024"].IsApplicable)

	// No persisted row: statuses default to pending and the task is applicable.
	assert.Equal(t, domain.StatusPending, byID["rule_1_x_2025"].CAStatus)
	assert.True(t, byID["rule_1_x_2025"].IsApplicable)
}

func TestMaterialize_UnknownCountryPassesThrough(t *testing.T) {
	ruleRepo := new(mocks.MockRuleRepo)
	taskRepo := new(mocks.MockTaskRepo)
	startupRepo := new(mocks.MockStartupRepo)
	mat := newTestMaterializer(ruleRepo, taskRepo, startupRepo)

	startupID := uuid.New()
	startup := testStartup(startupID)
	startup.CountryOfRegistration = "Atlantis"

	taskRepo.On("GenerateForStartup", mock.Anything, startupID).Return(nil, errors.New("down"))
	startupRepo.On("GetByID", mock.Anything, startupID).Return(startup, nil)
	// The raw name is used as the rule key when no code mapping exists.
	ruleRepo.On("GetByCountryAndCompanyType", mock.Anything, "Atlantis", "Private Limited").
		Return([]domain.ComplianceRule{}, nil)

	tasks := mat.Materialize(context.Background(), startupID)

	assert.Empty(t, tasks)
	ruleRepo.AssertExpectations(t)
}

func TestSortTasks(t *testing.T) {
	tasks := []domain.TaskInstance{
		{TaskName: "B - 2024", Year: 2024, TaskType: domain.FrequencyAnnual},
		{TaskName: "A - 2025", Year: 2025, TaskType: domain.FrequencyAnnual},
		{TaskName: "Incorporation", Year: 2022, TaskType: domain.FrequencyFirstYear},
		{TaskName: "A - 2024", Year: 2024, TaskType: domain.FrequencyAnnual},
	}

	SortTasks(tasks)

	assert.Equal(t, "Incorporation", tasks[0].TaskName)
	assert.Equal(t, "A - 2025", tasks[1].TaskName)
	assert.Equal(t, "A - 2024", tasks[2].TaskName)
	assert.Equal(t, "B - 2024", tasks[3].TaskName)
}
