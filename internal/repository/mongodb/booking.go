package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/booking"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const bookingsCollection = "appointments"

type bookingRepositoryImpl struct {
	coll *mongo.Collection
}

func NewBookingRepository(db *database.MongoDB) booking.BookingRepository {
	return &bookingRepositoryImpl{coll: db.Collection(bookingsCollection)}
}

func (r *bookingRepositoryImpl) List(ctx context.Context) ([]booking.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "appointmentDate", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := make([]booking.Booking, 0)
	for cursor.Next(ctx) {
		var doc bookingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("error decoding booking: %w", err)
		}
		bookings = append(bookings, doc.toBooking())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepositoryImpl) GetByID(ctx context.Context, id string) (booking.Booking, error) {
	var doc bookingDocument
	if err := r.coll.FindOne(ctx, idFilter(id)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return booking.Booking{}, booking.ErrBookingNotFound
		}
		return booking.Booking{}, fmt.Errorf("error fetching booking with id %s: %w", id, err)
	}
	return doc.toBooking(), nil
}

func (r *bookingRepositoryImpl) Create(ctx context.Context, b booking.Booking) (booking.Booking, error) {
	if b.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return booking.Booking{}, fmt.Errorf("failed to generate booking id: %w", err)
		}
		b.ID = id.String()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	b.Version = 0

	doc, err := newBookingDocument(b)
	if err != nil {
		return booking.Booking{}, fmt.Errorf("invalid booking amount: %w", err)
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return booking.Booking{}, fmt.Errorf("error inserting booking: %w", err)
	}
	return b, nil
}

func (r *bookingRepositoryImpl) Save(ctx context.Context, id string, patch booking.Patch, expectedVersion *int64) (booking.Booking, error) {
	filter := idFilter(id)
	if expectedVersion != nil {
		filter["$or"] = versionMatch(*expectedVersion)
	}

	update := bson.M{"$inc": bson.M{"version": 1}}
	if set := patchFields(patch); len(set) > 0 {
		update["$set"] = set
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc bookingDocument
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err == nil {
		return doc.toBooking(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return booking.Booking{}, fmt.Errorf("error updating booking with id %s: %w", id, err)
	}
	if expectedVersion == nil {
		return booking.Booking{}, booking.ErrBookingNotFound
	}

	// No match with a version filter: tell a stale version from a missing booking.
	count, err := r.coll.CountDocuments(ctx, idFilter(id))
	if err != nil {
		return booking.Booking{}, fmt.Errorf("error checking booking with id %s: %w", id, err)
	}
	if count == 0 {
		return booking.Booking{}, booking.ErrBookingNotFound
	}
	return booking.Booking{}, booking.ErrVersionConflict
}

// versionMatch treats a document without a version field as version 0.
func versionMatch(expected int64) bson.A {
	match := bson.A{bson.M{"version": expected}}
	if expected == 0 {
		match = append(match, bson.M{"version": bson.M{"$exists": false}})
	}
	return match
}
