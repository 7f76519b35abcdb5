package booking

import "context"

type BookingService interface {
	// Create stores a booking submitted through the public booking form
	Create(ctx context.Context, req CreateBookingRequest) (BookingResponse, error)
	List(ctx context.Context, filter BookingFilter) (ListBookingResponse, error)
	GetByID(ctx context.Context, id string) (BookingResponse, error)
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (BookingResponse, error)
}
