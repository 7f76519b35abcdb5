package worker

import "context"

// WorkerRepository is the workers collection of the external store.
type WorkerRepository interface {
	// List returns every worker, newest first.
	List(ctx context.Context) ([]Worker, error)
	Create(ctx context.Context, w Worker) (Worker, error)
}
