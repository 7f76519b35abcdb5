package payroll

import (
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/booking"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Summarize derives the dashboard totals from worker summaries and the
// uncompleted bookings. Values keep full precision; rounding is a display
// concern of the response DTOs.
func Summarize(summaries []payroll.WorkerSummary, uncompleted []booking.Booking) payroll.Totals {
	totals := payroll.Totals{
		TotalDisbursed:        decimal.Zero,
		TotalPotential:        decimal.Zero,
		TotalUncompletedTasks: len(uncompleted),
	}

	for _, s := range summaries {
		totals.TotalDisbursed = totals.TotalDisbursed.Add(s.TotalEarned)
		if s.AssignmentStatus == payroll.AssignmentStatusAssigned {
			totals.ActiveWorkers++
		}
	}
	for _, b := range uncompleted {
		totals.TotalPotential = totals.TotalPotential.Add(WorkerPool(b.Amount))
	}

	return totals
}
