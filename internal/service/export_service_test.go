package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/xuri/excelize/v2"

	"complyhub/internal/domain"
	"complyhub/internal/service"
	"complyhub/mocks"
)

func TestExportChecklist(t *testing.T) {
	f := newComplianceFixture()
	startupID := uuid.New()
	startup := complianceStartup(startupID, domain.CompliancePending)

	applicable := true
	notApplicable := false
	f.tasks.On("GenerateForStartup", mock.Anything, startupID).Return([]domain.GeneratedTask{
		generatedTask("t1", "Parent Company (IN)", 2025),
		generatedTask("t2", "Parent Company (IN)", 2024),
	}, nil)
	f.tasks.On("ListByStartup", mock.Anything, startupID).Return([]domain.ComplianceTaskRecord{
		{TaskID: "t1", CAStatus: domain.StatusVerified, IsApplicable: &applicable},
		{TaskID: "t2", CAStatus: domain.StatusPending, IsApplicable: &notApplicable},
	}, nil)
	f.uploads.On("ListByStartup", mock.Anything, startupID).Return([]domain.ComplianceUpload{
		{ID: uuid.New(), TaskID: "t1", FileName: "proof.pdf"},
	}, nil)
	f.startups.On("GetByID", mock.Anything, startupID).Return(startup, nil)
	f.startups.On("ListSubsidiaries", mock.Anything, startupID).Return([]domain.Subsidiary{}, nil)
	f.startups.On("ListInternationalOps", mock.Anything, startupID).Return([]domain.InternationalOperation{}, nil)
	// The only applicable task is CA-verified, so the CA-scoped aggregate
	// flips to compliant during the export load.
	f.startups.On("UpdateComplianceStatus", mock.Anything, startupID, domain.ComplianceCompliant).Return(nil)
	f.notifier.On("NotifyComplianceStatusChange", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := service.NewExportService(f.svc, f.startups)
	buf, filename, err := svc.ExportChecklist(context.Background(), startupID, domain.RoleCA)

	assert.NoError(t, err)
	assert.Contains(t, filename, "compliance_Acme Labs_")
	assert.Contains(t, filename, ".xlsx")

	wb, err := excelize.OpenReader(buf)
	assert.NoError(t, err)
	defer func() { _ = wb.Close() }()

	const sheet = "Compliance Checklist"
	header, err := wb.GetCellValue(sheet, "A1")
	assert.NoError(t, err)
	assert.Equal(t, "Entity", header)

	// Tasks sort year-descending, so t1 (2025) lands on row 2.
	name, _ := wb.GetCellValue(sheet, "C2")
	assert.Equal(t, "Annual Return - t1", name)
	caStatus, _ := wb.GetCellValue(sheet, "E2")
	assert.Equal(t, "Verified", caStatus)
	csStatus, _ := wb.GetCellValue(sheet, "F2")
	assert.Equal(t, "Not Required", csStatus)
	evidence, _ := wb.GetCellValue(sheet, "G2")
	assert.Equal(t, "1", evidence)

	applicableCell, _ := wb.GetCellValue(sheet, "D3")
	assert.Equal(t, "No", applicableCell)

	summary, _ := wb.GetCellValue(sheet, "A5")
	assert.Equal(t, "Overall status: compliant", summary)
}

func TestExportChecklist_StartupNotFound(t *testing.T) {
	startups := new(mocks.MockStartupRepo)
	f := newComplianceFixture()
	svc := service.NewExportService(f.svc, startups)

	startupID := uuid.New()
	startups.On("GetByID", mock.Anything, startupID).Return(nil, domain.ErrNotFound)

	_, _, err := svc.ExportChecklist(context.Background(), startupID, domain.RoleAdmin)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
