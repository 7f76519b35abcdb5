package payroll

import "context"

type PayrollService interface {
	// Overview runs fetch -> classify -> aggregate -> reduce over the current records
	Overview(ctx context.Context) (*OverviewResponse, error)

	// GetAssignment returns the initial pay-split editor state for one task
	GetAssignment(ctx context.Context, taskID string) (*AssignmentStateResponse, error)

	// CommitAssignment validates and writes a task's pay split, then refreshes records
	CommitAssignment(ctx context.Context, req AssignmentRequest) (*AssignmentStateResponse, error)

	// Export renders the worker summaries and totals as an .xlsx workbook
	Export(ctx context.Context) ([]byte, error)
}
