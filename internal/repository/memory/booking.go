// Package memory holds process-local repositories used for local runs and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/booking"
	"github.com/google/uuid"
)

type bookingRepositoryImpl struct {
	mu       sync.RWMutex
	bookings map[string]booking.Booking
	now      func() time.Time
}

func NewBookingRepository(seed ...booking.Booking) booking.BookingRepository {
	r := &bookingRepositoryImpl{
		bookings: make(map[string]booking.Booking, len(seed)),
		now:      time.Now,
	}
	for _, b := range seed {
		r.bookings[b.ID] = cloneBooking(b)
	}
	return r
}

func (r *bookingRepositoryImpl) List(ctx context.Context) ([]booking.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]booking.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		list = append(list, cloneBooking(b))
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].AppointmentDate != list[j].AppointmentDate {
			return list[i].AppointmentDate > list[j].AppointmentDate
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (r *bookingRepositoryImpl) GetByID(ctx context.Context, id string) (booking.Booking, error) {
	if err := ctx.Err(); err != nil {
		return booking.Booking{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return booking.Booking{}, booking.ErrBookingNotFound
	}
	return cloneBooking(b), nil
}

func (r *bookingRepositoryImpl) Create(ctx context.Context, b booking.Booking) (booking.Booking, error) {
	if err := ctx.Err(); err != nil {
		return booking.Booking{}, err
	}

	if b.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return booking.Booking{}, fmt.Errorf("failed to generate booking id: %w", err)
		}
		b.ID = id.String()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = r.now()
	}
	b.Version = 0

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bookings[b.ID]; exists {
		return booking.Booking{}, fmt.Errorf("booking %s already exists", b.ID)
	}
	r.bookings[b.ID] = cloneBooking(b)
	return cloneBooking(b), nil
}

func (r *bookingRepositoryImpl) Save(ctx context.Context, id string, patch booking.Patch, expectedVersion *int64) (booking.Booking, error) {
	if err := ctx.Err(); err != nil {
		return booking.Booking{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return booking.Booking{}, booking.ErrBookingNotFound
	}
	if expectedVersion != nil && *expectedVersion != b.Version {
		return booking.Booking{}, booking.ErrVersionConflict
	}

	if patch.Status != nil {
		b.Status = *patch.Status
	}
	if patch.AssignedWorkerIDs != nil {
		b.AssignedWorkerIDs = append([]string{}, (*patch.AssignedWorkerIDs)...)
	}
	if patch.AssignedWorkersPay != nil {
		b.AssignedWorkersPay = append([]booking.PaySplit{}, (*patch.AssignedWorkersPay)...)
	}
	b.Version++

	r.bookings[id] = b
	return cloneBooking(b), nil
}

// cloneBooking copies the slices so callers never share backing arrays with
// the store. Nil stays nil.
func cloneBooking(b booking.Booking) booking.Booking {
	if b.AssignedWorkersPay != nil {
		b.AssignedWorkersPay = append([]booking.PaySplit{}, b.AssignedWorkersPay...)
	}
	if b.AssignedWorkerIDs != nil {
		b.AssignedWorkerIDs = append([]string{}, b.AssignedWorkerIDs...)
	}
	if b.Notes != nil {
		notes := *b.Notes
		b.Notes = &notes
	}
	return b
}
