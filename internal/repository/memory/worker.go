package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/worker"
	"github.com/google/uuid"
)

type workerRepositoryImpl struct {
	mu      sync.RWMutex
	workers []worker.Worker
	now     func() time.Time
}

func NewWorkerRepository(seed ...worker.Worker) worker.WorkerRepository {
	return &workerRepositoryImpl{
		workers: append([]worker.Worker{}, seed...),
		now:     time.Now,
	}
}

func (r *workerRepositoryImpl) List(ctx context.Context) ([]worker.Worker, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	list := append([]worker.Worker{}, r.workers...)
	r.mu.RUnlock()

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (r *workerRepositoryImpl) Create(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	if err := ctx.Err(); err != nil {
		return worker.Worker{}, err
	}

	if w.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return worker.Worker{}, fmt.Errorf("failed to generate worker id: %w", err)
		}
		w.ID = id.String()
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = r.now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.workers {
		if existing.ID == w.ID {
			return worker.Worker{}, fmt.Errorf("worker %s already exists", w.ID)
		}
	}
	r.workers = append(r.workers, w)
	return w, nil
}
