package booking

import "context"

// Patch lists the fields a Save call overwrites. Nil fields are left as stored.
type Patch struct {
	Status             *Status
	AssignedWorkerIDs  *[]string
	AssignedWorkersPay *[]PaySplit
}

// BookingRepository is the appointments collection of the external store.
type BookingRepository interface {
	// List returns every booking, ordered by appointment date descending.
	List(ctx context.Context) ([]Booking, error)
	GetByID(ctx context.Context, id string) (Booking, error)
	Create(ctx context.Context, b Booking) (Booking, error)
	// Save applies patch and bumps the version. When expectedVersion is
	// non-nil the write only happens if the stored version still matches,
	// otherwise ErrVersionConflict is returned.
	Save(ctx context.Context, id string, patch Patch, expectedVersion *int64) (Booking, error)
}
