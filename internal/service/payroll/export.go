package payroll

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	workersSheet = "Workers"
	summarySheet = "Summary"
)

var workerHeader = []any{
	"Worker ID",
	"Name",
	"Contact Number",
	"Assignment Status",
	"Assigned Tasks",
	"Completed Tasks",
	"Total Earned",
	"Average Pay Per Completed Task",
}

// Export renders the current overview as a workbook with one row per worker
// and a sheet of totals.
func (s *PayrollServiceImpl) Export(ctx context.Context) ([]byte, error) {
	overview, err := s.Overview(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", workersSheet); err != nil {
		return nil, fmt.Errorf("failed to name workers sheet: %w", err)
	}
	if err := f.SetSheetRow(workersSheet, "A1", &workerHeader); err != nil {
		return nil, fmt.Errorf("failed to write workers header: %w", err)
	}

	for i, w := range overview.Workers {
		contact := ""
		if w.ContactNumber != nil {
			contact = *w.ContactNumber
		}
		row := []any{
			w.WorkerID,
			w.Name,
			contact,
			w.AssignmentStatus,
			w.AssignedTaskCount,
			w.CompletedTaskCount,
			w.TotalEarned,
			w.AveragePayPerCompletedTask,
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(workersSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write worker row %d: %w", i+2, err)
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}

	summary := [][]any{
		{"Metric", "Value"},
		{"Total Disbursed", overview.Totals.TotalDisbursed},
		{"Total Potential", overview.Totals.TotalPotential},
		{"Active Workers", overview.Totals.ActiveWorkers},
		{"Uncompleted Tasks", overview.Totals.TotalUncompletedTasks},
		{"Fetched At", overview.FetchedAt},
	}
	for i, row := range summary {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write summary row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}
