package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type workerRepositoryImpl struct {
	db *database.DB
}

func NewWorkerRepository(db *database.DB) worker.WorkerRepository {
	return &workerRepositoryImpl{db: db}
}

func (r *workerRepositoryImpl) List(ctx context.Context) ([]worker.Worker, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, name, contact_number, created_at
		FROM workers
		ORDER BY created_at DESC
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	defer rows.Close()

	workers := make([]worker.Worker, 0)
	for rows.Next() {
		var w worker.Worker
		if err := rows.Scan(&w.ID, &w.Name, &w.ContactNumber, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return workers, nil
}

func (r *workerRepositoryImpl) Create(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	if w.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return worker.Worker{}, fmt.Errorf("failed to generate worker id: %w", err)
		}
		w.ID = id.String()
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO workers (id, name, contact_number, created_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := q.Exec(ctx, query, w.ID, w.Name, w.ContactNumber, w.CreatedAt); err != nil {
		return worker.Worker{}, fmt.Errorf("failed to create worker: %w", err)
	}
	return w, nil
}
