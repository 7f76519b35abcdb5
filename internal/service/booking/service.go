package booking

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/booking"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type BookingServiceImpl struct {
	bookingRepo booking.BookingRepository
	metrics     *metrics.Manager
	now         func() time.Time
}

func NewBookingService(bookingRepo booking.BookingRepository, m *metrics.Manager) booking.BookingService {
	return &BookingServiceImpl{
		bookingRepo: bookingRepo,
		metrics:     m,
		now:         time.Now,
	}
}

// Create stores a booking submitted through the public form.
func (s *BookingServiceImpl) Create(ctx context.Context, req booking.CreateBookingRequest) (booking.BookingResponse, error) {
	if err := req.Validate(); err != nil {
		return booking.BookingResponse{}, err
	}

	date, _ := booking.NormalizeDate(req.AppointmentDate)
	today := s.now().Format(booking.DateLayout)
	if date < today {
		return booking.BookingResponse{}, validator.ValidationErrors{
			{Field: "appointment_date", Message: "appointment_date must not be in the past"},
		}
	}

	amount := decimal.Zero
	if req.Amount != nil {
		amount = *req.Amount
	}

	var notes *string
	if req.Notes != nil {
		if trimmed := strings.TrimSpace(*req.Notes); trimmed != "" {
			notes = &trimmed
		}
	}

	created, err := s.bookingRepo.Create(ctx, booking.Booking{
		Status:          booking.StatusScheduled,
		Amount:          amount,
		AppointmentDate: date,
		AppointmentTime: strings.TrimSpace(req.AppointmentTime),
		CustomerName:    strings.TrimSpace(req.CustomerName),
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:           strings.TrimSpace(req.Phone),
		ServiceType:     strings.TrimSpace(req.ServiceType),
		Address:         strings.TrimSpace(req.Address),
		Notes:           notes,
	})
	if err != nil {
		return booking.BookingResponse{}, fmt.Errorf("failed to create booking: %w", err)
	}

	s.metrics.RecordBookingCreated()
	slog.Info("booking created", "booking_id", created.ID, "appointment_date", created.AppointmentDate)

	return booking.ToResponse(created), nil
}

// List returns one page of bookings, newest appointment first.
func (s *BookingServiceImpl) List(ctx context.Context, filter booking.BookingFilter) (booking.ListBookingResponse, error) {
	if err := filter.Validate(); err != nil {
		return booking.ListBookingResponse{}, err
	}

	all, err := s.bookingRepo.List(ctx)
	if err != nil {
		return booking.ListBookingResponse{}, fmt.Errorf("failed to list bookings: %w", err)
	}

	matched := all
	if filter.Status != nil {
		want := booking.ParseStatus(*filter.Status)
		matched = make([]booking.Booking, 0, len(all))
		for _, b := range all {
			if b.Status == want {
				matched = append(matched, b)
			}
		}
	}

	totalCount := int64(len(matched))
	// Pages past the end are empty; bounding the page first keeps the
	// offset product from overflowing.
	offset := len(matched)
	if filter.Page-1 <= len(matched)/filter.Limit {
		offset = min((filter.Page-1)*filter.Limit, len(matched))
	}
	end := min(offset+filter.Limit, len(matched))

	responses := make([]booking.BookingResponse, 0, filter.Limit)
	if offset < len(matched) {
		for _, b := range matched[offset:end] {
			responses = append(responses, booking.ToResponse(b))
		}
	}

	// Calculate pagination metadata
	totalPages := int(math.Ceil(float64(totalCount) / float64(filter.Limit)))

	start := offset + 1
	last := offset + len(responses)
	showing := fmt.Sprintf("%d-%d of %d results", start, last, totalCount)
	if totalCount == 0 || len(responses) == 0 {
		showing = fmt.Sprintf("0 of %d results", totalCount)
	}

	return booking.ListBookingResponse{
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Bookings:   responses,
	}, nil
}

func (s *BookingServiceImpl) GetByID(ctx context.Context, id string) (booking.BookingResponse, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return booking.BookingResponse{}, err
	}
	return booking.ToResponse(b), nil
}

// UpdateStatus moves a booking through its lifecycle. Any transition is
// allowed; version guards against concurrent edits when supplied.
func (s *BookingServiceImpl) UpdateStatus(ctx context.Context, req booking.UpdateStatusRequest) (booking.BookingResponse, error) {
	if err := req.Validate(); err != nil {
		return booking.BookingResponse{}, err
	}

	status := booking.ParseStatus(req.Status)
	saved, err := s.bookingRepo.Save(ctx, req.ID, booking.Patch{Status: &status}, req.Version)
	if err != nil {
		return booking.BookingResponse{}, err
	}

	slog.Info("booking status updated", "booking_id", saved.ID, "status", saved.Status, "version", saved.Version)
	return booking.ToResponse(saved), nil
}
