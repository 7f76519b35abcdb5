package payroll

import (
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/booking"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/worker"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// WorkerPool is the part of amount distributed to a task's workers.
func WorkerPool(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(payroll.WorkerAllocationRate)
}

// SplitShare is one worker's part of pool for the given percentage.
func SplitShare(pool decimal.Decimal, percentage int) decimal.Decimal {
	return pool.Mul(decimal.NewFromInt(int64(percentage))).Div(hundred)
}

type accumulator struct {
	earned    decimal.Decimal
	completed int
	assigned  int
}

// AggregateWorkers folds bookings into one summary per known worker, in
// worker order. Ids that do not resolve to a worker are skipped.
func AggregateWorkers(bookings []booking.Booking, workers []worker.Worker) []payroll.WorkerSummary {
	acc := make(map[string]*accumulator, len(workers))
	for _, w := range workers {
		acc[w.ID] = &accumulator{earned: decimal.Zero}
	}

	for _, b := range bookings {
		switch {
		case b.Status == booking.StatusCompleted:
			if !b.Amount.IsPositive() || len(b.AssignedWorkersPay) == 0 {
				continue
			}
			pool := WorkerPool(b.Amount)
			counted := make(map[string]struct{}, len(b.AssignedWorkersPay))
			for _, split := range b.AssignedWorkersPay {
				a, ok := acc[split.WorkerID]
				if !ok {
					continue
				}
				a.earned = a.earned.Add(SplitShare(pool, split.SplitPercentage))
				// a repeated id still earns each share but completes the task once
				if _, seen := counted[split.WorkerID]; !seen {
					counted[split.WorkerID] = struct{}{}
					a.completed++
				}
			}
		case b.Status.IsActive():
			for _, id := range b.ReferencedWorkerIDs() {
				if a, ok := acc[id]; ok {
					a.assigned++
				}
			}
		}
	}

	summaries := make([]payroll.WorkerSummary, 0, len(workers))
	for _, w := range workers {
		a := acc[w.ID]

		average := decimal.Zero
		if a.completed > 0 {
			average = a.earned.Div(decimal.NewFromInt(int64(a.completed)))
		}
		status := payroll.AssignmentStatusFree
		if a.assigned > 0 {
			status = payroll.AssignmentStatusAssigned
		}

		summaries = append(summaries, payroll.WorkerSummary{
			WorkerID:                   w.ID,
			Name:                       w.Name,
			ContactNumber:              w.ContactNumber,
			TotalEarned:                a.earned,
			CompletedTaskCount:         a.completed,
			AveragePayPerCompletedTask: average,
			AssignmentStatus:           status,
			AssignedTaskCount:          a.assigned,
		})
	}
	return summaries
}
