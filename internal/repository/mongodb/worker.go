package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workersCollection = "workers"

type workerRepositoryImpl struct {
	coll *mongo.Collection
}

func NewWorkerRepository(db *database.MongoDB) worker.WorkerRepository {
	return &workerRepositoryImpl{coll: db.Collection(workersCollection)}
}

func (r *workerRepositoryImpl) List(ctx context.Context) ([]worker.Worker, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching workers: %w", err)
	}
	defer cursor.Close(ctx)

	workers := make([]worker.Worker, 0)
	for cursor.Next(ctx) {
		var doc workerDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("error decoding worker: %w", err)
		}
		workers = append(workers, doc.toWorker())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return workers, nil
}

func (r *workerRepositoryImpl) Create(ctx context.Context, w worker.Worker) (worker.Worker, error) {
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

	if _, err := r.coll.InsertOne(ctx, newWorkerDocument(w)); err != nil {
		return worker.Worker{}, fmt.Errorf("error inserting worker: %w", err)
	}
	return w, nil
}
