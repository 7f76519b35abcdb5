package worker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/pkg/metrics"
)

type WorkerServiceImpl struct {
	workerRepo worker.WorkerRepository
	metrics    *metrics.Manager
}

func NewWorkerService(workerRepo worker.WorkerRepository, m *metrics.Manager) worker.WorkerService {
	return &WorkerServiceImpl{
		workerRepo: workerRepo,
		metrics:    m,
	}
}

func (s *WorkerServiceImpl) Create(ctx context.Context, req worker.CreateWorkerRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	var contact *string
	if req.ContactNumber != nil {
		if trimmed := strings.TrimSpace(*req.ContactNumber); trimmed != "" {
			contact = &trimmed
		}
	}

	created, err := s.workerRepo.Create(ctx, worker.Worker{
		Name:          strings.TrimSpace(req.Name),
		ContactNumber: contact,
	})
	if err != nil {
		return worker.WorkerResponse{}, fmt.Errorf("failed to create worker: %w", err)
	}

	s.metrics.RecordWorkerCreated()
	slog.Info("worker created", "worker_id", created.ID)

	return worker.ToResponse(created), nil
}

func (s *WorkerServiceImpl) List(ctx context.Context) ([]worker.WorkerResponse, error) {
	workers, err := s.workerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}

	responses := make([]worker.WorkerResponse, 0, len(workers))
	for _, w := range workers {
		responses = append(responses, worker.ToResponse(w))
	}
	return responses, nil
}
