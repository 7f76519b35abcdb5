package payroll

import (
	"github.com/shopspring/decimal"
)

// Business rules. Both are fixed policy with no configuration surface.
var (
	// WorkerAllocationRate is the share of a completed booking's amount that
	// is distributed to its assigned workers. The rest stays with the business.
	WorkerAllocationRate = decimal.RequireFromString("0.4")
)

// RequiredSplitTotal is the exact percentage sum a non-empty assignment must reach.
const RequiredSplitTotal = 100

// AssignmentStatus enum
type AssignmentStatus string

const (
	AssignmentStatusAssigned AssignmentStatus = "Assigned"
	AssignmentStatusFree     AssignmentStatus = "Free"
)

// WorkerSummary - per-worker payroll figures derived from one snapshot
type WorkerSummary struct {
	WorkerID                   string
	Name                       string
	ContactNumber              *string
	TotalEarned                decimal.Decimal
	CompletedTaskCount         int
	AveragePayPerCompletedTask decimal.Decimal
	AssignmentStatus           AssignmentStatus
	AssignedTaskCount          int
}

// Totals - dashboard-level payroll figures
type Totals struct {
	TotalDisbursed        decimal.Decimal
	TotalPotential        decimal.Decimal
	ActiveWorkers         int
	TotalUncompletedTasks int
}
