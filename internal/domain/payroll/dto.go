package payroll

import (
	"encoding/json"
	"strings"

	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/booking"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/pkg/validator"
)

// ========== ASSIGNMENT DTOs ==========

// RawPercentage keeps the split value exactly as the admin typed it. JSON
// numbers and strings are both accepted; parsing and clamping happen in the
// split editor.
type RawPercentage string

func (p *RawPercentage) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = RawPercentage(s)
		return nil
	}
	*p = RawPercentage(strings.TrimSpace(string(data)))
	return nil
}

type SplitInput struct {
	WorkerID        string        `json:"worker_id"`
	SplitPercentage RawPercentage `json:"split_percentage"`
}

type AssignmentRequest struct {
	TaskID  string       `json:"-"`
	Version *int64       `json:"version,omitempty"`
	Splits  []SplitInput `json:"splits"` // Empty = unassign everyone
}

func (r *AssignmentRequest) Validate() error {
	var errs validator.ValidationErrors

	for _, s := range r.Splits {
		if validator.IsEmpty(s.WorkerID) {
			errs = append(errs, validator.ValidationError{Field: "splits", Message: "worker_id is required for every split"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AssignedWorkerResponse struct {
	WorkerID        string `json:"worker_id"`
	Name            string `json:"name"`
	SplitPercentage int    `json:"split_percentage"`
	Share           string `json:"share"` // worker pool * split / 100
}

type AssignmentStateResponse struct {
	TaskID           string                   `json:"task_id"`
	Version          int64                    `json:"version"`
	WorkerPool       string                   `json:"worker_pool"`
	Splits           []AssignedWorkerResponse `json:"splits"`
	Total            int                      `json:"total"`
	Valid            bool                     `json:"valid"` // empty or exactly 100
	AvailableWorkers []worker.WorkerResponse  `json:"available_workers"`
}

// ========== OVERVIEW DTOs ==========

type WorkerSummaryResponse struct {
	WorkerID                   string  `json:"worker_id"`
	Name                       string  `json:"name"`
	ContactNumber              *string `json:"contact_number,omitempty"`
	TotalEarned                string  `json:"total_earned"`
	CompletedTaskCount         int     `json:"completed_task_count"`
	AveragePayPerCompletedTask string  `json:"average_pay_per_completed_task"`
	AssignmentStatus           string  `json:"assignment_status"`
	AssignedTaskCount          int     `json:"assigned_task_count"`
}

type TotalsResponse struct {
	TotalDisbursed        string `json:"total_disbursed"`
	TotalPotential        string `json:"total_potential"`
	ActiveWorkers         int    `json:"active_workers"`
	TotalUncompletedTasks int    `json:"total_uncompleted_tasks"`
}

type TaskResponse struct {
	booking.BookingResponse
	WorkerPool      string                   `json:"worker_pool"`
	AssignedWorkers []AssignedWorkerResponse `json:"assigned_workers"`
}

type OverviewResponse struct {
	Workers          []WorkerSummaryResponse `json:"workers"`
	Totals           TotalsResponse          `json:"totals"`
	UncompletedTasks []TaskResponse          `json:"uncompleted_tasks"`
	CompletedHistory []TaskResponse          `json:"completed_history"`
	FetchedAt        string                  `json:"fetched_at"`

	// Stale is set when the latest refresh failed and the previous
	// snapshot was served instead.
	Stale bool `json:"-"`
}

func ToWorkerSummaryResponse(s WorkerSummary) WorkerSummaryResponse {
	return WorkerSummaryResponse{
		WorkerID:                   s.WorkerID,
		Name:                       s.Name,
		ContactNumber:              s.ContactNumber,
		TotalEarned:                s.TotalEarned.StringFixed(2),
		CompletedTaskCount:         s.CompletedTaskCount,
		AveragePayPerCompletedTask: s.AveragePayPerCompletedTask.StringFixed(2),
		AssignmentStatus:           string(s.AssignmentStatus),
		AssignedTaskCount:          s.AssignedTaskCount,
	}
}

func ToTotalsResponse(t Totals) TotalsResponse {
	return TotalsResponse{
		TotalDisbursed:        t.TotalDisbursed.StringFixed(2),
		TotalPotential:        t.TotalPotential.StringFixed(2),
		ActiveWorkers:         t.ActiveWorkers,
		TotalUncompletedTasks: t.TotalUncompletedTasks,
	}
}
