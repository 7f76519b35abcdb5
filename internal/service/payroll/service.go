package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/booking"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/pkg/metrics"
)

type PayrollServiceImpl struct {
	bookingRepo booking.BookingRepository
	workerRepo  worker.WorkerRepository
	fetcher     *Fetcher
	metrics     *metrics.Manager
}

func NewPayrollService(
	bookingRepo booking.BookingRepository,
	workerRepo worker.WorkerRepository,
	fetcher *Fetcher,
	m *metrics.Manager,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		bookingRepo: bookingRepo,
		workerRepo:  workerRepo,
		fetcher:     fetcher,
		metrics:     m,
	}
}

// ========== OVERVIEW ==========

func (s *PayrollServiceImpl) Overview(ctx context.Context) (*payroll.OverviewResponse, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	uncompleted, history := Classify(snap.Bookings)
	summaries := AggregateWorkers(snap.Bookings, snap.Workers)
	totals := Summarize(summaries, uncompleted)
	s.metrics.ObserveAggregation(time.Since(start))

	resp := &payroll.OverviewResponse{
		Workers:          make([]payroll.WorkerSummaryResponse, 0, len(summaries)),
		Totals:           payroll.ToTotalsResponse(totals),
		UncompletedTasks: make([]payroll.TaskResponse, 0, len(uncompleted)),
		CompletedHistory: make([]payroll.TaskResponse, 0, len(history)),
		FetchedAt:        snap.FetchedAt.UTC().Format(time.RFC3339),
		Stale:            snap.Stale,
	}
	for _, sum := range summaries {
		resp.Workers = append(resp.Workers, payroll.ToWorkerSummaryResponse(sum))
	}
	for _, b := range uncompleted {
		resp.UncompletedTasks = append(resp.UncompletedTasks, toTaskResponse(b, snap.Workers))
	}
	for _, b := range history {
		resp.CompletedHistory = append(resp.CompletedHistory, toTaskResponse(b, snap.Workers))
	}

	return resp, nil
}

// snapshot refreshes the records, falling back to the previous snapshot
// when the store cannot be reached.
func (s *PayrollServiceImpl) snapshot(ctx context.Context) (Snapshot, error) {
	snap, err := s.fetcher.Refresh(ctx)
	if err != nil {
		if !snap.Stale {
			return Snapshot{}, err
		}
		s.metrics.RecordStaleSnapshot()
	}
	return snap, nil
}

// ========== ASSIGNMENT ==========

func (s *PayrollServiceImpl) GetAssignment(ctx context.Context, taskID string) (*payroll.AssignmentStateResponse, error) {
	task, err := s.bookingRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	workers, err := s.workerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}

	return assignmentState(NewSplitEditor(task), workers), nil
}

func (s *PayrollServiceImpl) CommitAssignment(ctx context.Context, req payroll.AssignmentRequest) (*payroll.AssignmentStateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	task, err := s.bookingRepo.GetByID(ctx, req.TaskID)
	if err != nil {
		return nil, err
	}

	editor := NewSplitEditor(task)

	wanted := make(map[string]struct{}, len(req.Splits))
	order := make([]string, 0, len(req.Splits))
	for _, in := range req.Splits {
		wanted[in.WorkerID] = struct{}{}
		order = append(order, in.WorkerID)
	}
	for _, current := range editor.Splits() {
		if _, ok := wanted[current.WorkerID]; !ok {
			editor.ToggleWorker(current.WorkerID)
		}
	}
	for _, in := range req.Splits {
		if !editor.Has(in.WorkerID) {
			editor.ToggleWorker(in.WorkerID)
		}
		editor.SetSplit(in.WorkerID, string(in.SplitPercentage))
	}
	editor.Arrange(order)

	saved, err := editor.Commit(ctx, s.bookingRepo, req.Version)
	if err != nil {
		switch {
		case errors.Is(err, payroll.ErrInvalidSplitTotal):
			s.metrics.RecordAssignmentCommit(metrics.OutcomeRejected)
		case errors.Is(err, booking.ErrVersionConflict):
			s.metrics.RecordAssignmentCommit(metrics.OutcomeConflict)
		default:
			s.metrics.RecordAssignmentCommit(metrics.OutcomeFailed)
		}
		return nil, err
	}
	s.metrics.RecordAssignmentCommit(metrics.OutcomeOK)

	slog.Info("pay split assignment saved",
		"task_id", saved.ID,
		"workers", len(saved.AssignedWorkersPay),
		"version", saved.Version,
	)

	// The write already happened; a failed refresh only means the next
	// read may be served from the previous snapshot.
	snap, err := s.fetcher.Refresh(ctx)
	if err != nil {
		slog.Warn("refresh after assignment failed", "task_id", saved.ID, "error", err)
	}

	return assignmentState(NewSplitEditor(saved), snap.Workers), nil
}

// ========== HELPERS ==========

func assignedWorkers(b booking.Booking, workers []worker.Worker) []payroll.AssignedWorkerResponse {
	pool := WorkerPool(b.Amount)
	splits := NewSplitEditor(b).Splits()

	result := make([]payroll.AssignedWorkerResponse, 0, len(splits))
	for _, split := range splits {
		result = append(result, payroll.AssignedWorkerResponse{
			WorkerID:        split.WorkerID,
			Name:            worker.Label(workers, split.WorkerID),
			SplitPercentage: split.SplitPercentage,
			Share:           SplitShare(pool, split.SplitPercentage).StringFixed(2),
		})
	}
	return result
}

func toTaskResponse(b booking.Booking, workers []worker.Worker) payroll.TaskResponse {
	return payroll.TaskResponse{
		BookingResponse: booking.ToResponse(b),
		WorkerPool:      WorkerPool(b.Amount).StringFixed(2),
		AssignedWorkers: assignedWorkers(b, workers),
	}
}

func assignmentState(editor *SplitEditor, workers []worker.Worker) *payroll.AssignmentStateResponse {
	task := editor.Task()
	pool := WorkerPool(task.Amount)

	splits := make([]payroll.AssignedWorkerResponse, 0)
	for _, split := range editor.Splits() {
		splits = append(splits, payroll.AssignedWorkerResponse{
			WorkerID:        split.WorkerID,
			Name:            worker.Label(workers, split.WorkerID),
			SplitPercentage: split.SplitPercentage,
			Share:           SplitShare(pool, split.SplitPercentage).StringFixed(2),
		})
	}

	available := make([]worker.WorkerResponse, 0, len(workers))
	for _, w := range workers {
		available = append(available, worker.ToResponse(w))
	}

	return &payroll.AssignmentStateResponse{
		TaskID:           task.ID,
		Version:          task.Version,
		WorkerPool:       pool.StringFixed(2),
		Splits:           splits,
		Total:            editor.Total(),
		Valid:            editor.Validate() == nil,
		AvailableWorkers: available,
	}
}
