package worker

import "context"

type WorkerService interface {
	Create(ctx context.Context, req CreateWorkerRequest) (WorkerResponse, error)
	List(ctx context.Context) ([]WorkerResponse, error)
}
