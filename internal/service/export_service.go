package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"complyhub/internal/domain"
	"complyhub/internal/port"
)

// ExportService renders a startup's reconciled checklist as an Excel workbook.
type ExportService interface {
	ExportChecklist(ctx context.Context, startupID uuid.UUID, viewerRole domain.UserRole) (*bytes.Buffer, string, error)
}

type exportService struct {
	compliance ComplianceService
	startups   port.StartupRepository
}

// NewExportService creates a new ExportService implementation.
func NewExportService(compliance ComplianceService, startups port.StartupRepository) ExportService {
	return &exportService{
		compliance: compliance,
		startups:   startups,
	}
}

var checklistHeaders = []string{
	"Entity", "Year", "Task", "Applicable", "CA Status", "CS Status", "Evidence",
}

func (s *exportService) ExportChecklist(ctx context.Context, startupID uuid.UUID, viewerRole domain.UserRole) (*bytes.Buffer, string, error) {
	startup, err := s.startups.GetByID(ctx, startupID)
	if err != nil {
		return nil, "", err
	}

	result, err := s.compliance.LoadTasks(ctx, startupID, viewerRole)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Compliance Checklist"
	f.SetSheetName(f.GetSheetName(0), sheet)

	for col, h := range checklistHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, "", fmt.Errorf("exportService.ExportChecklist: header: %w", err)
		}
	}

	row := 2
	for _, group := range result.Groups {
		for _, t := range group.Tasks {
			applicable := "Yes"
			if !t.IsApplicable {
				applicable = "No"
			}
			values := []interface{}{
				group.EntityDisplayName,
				t.Year,
				t.TaskName,
				applicable,
				t.StatusLabel(domain.PartyCA),
				t.StatusLabel(domain.PartyCS),
				len(t.Uploads),
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row)
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					return nil, "", fmt.Errorf("exportService.ExportChecklist: row %d: %w", row, err)
				}
			}
			row++
		}
	}

	summary, _ := excelize.CoordinatesToCellName(1, row+1)
	_ = f.SetCellValue(sheet, summary, fmt.Sprintf("Overall status: %s", result.ComplianceStatus))

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("exportService.ExportChecklist: writing workbook: %w", err)
	}

	filename := fmt.Sprintf("compliance_%s_%s.xlsx", startup.Name, time.Now().Format("2006-01-02"))
	return buf, filename, nil
}
