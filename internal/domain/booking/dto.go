package booking

import (
	"time"

	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== PUBLIC BOOKING FORM ==========

type CreateBookingRequest struct {
	CustomerName    string           `json:"customer_name"`
	Email           string           `json:"email"`
	Phone           string           `json:"phone"`
	ServiceType     string           `json:"service_type"`
	AppointmentDate string           `json:"appointment_date"` // YYYY-MM-DD
	AppointmentTime string           `json:"appointment_time"` // HH:MM
	Address         string           `json:"address"`
	Notes           *string          `json:"notes,omitempty"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
}

func (r *CreateBookingRequest) Validate() error {
	var errs validator.ValidationErrors

	// Step 1: contact details
	if validator.IsEmpty(r.CustomerName) {
		errs = append(errs, validator.ValidationError{Field: "customer_name", Message: "customer_name is required"})
	}
	if len(r.CustomerName) > 255 {
		errs = append(errs, validator.ValidationError{Field: "customer_name", Message: "customer_name must not exceed 255 characters"})
	}
	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email is required"})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email must be a valid email address"})
	}
	if validator.IsEmpty(r.Phone) {
		errs = append(errs, validator.ValidationError{Field: "phone", Message: "phone is required"})
	} else if !validator.IsValidPhoneNumber(r.Phone) {
		errs = append(errs, validator.ValidationError{Field: "phone", Message: "phone must contain 7 to 15 digits"})
	}

	// Step 2: service and schedule
	if validator.IsEmpty(r.ServiceType) {
		errs = append(errs, validator.ValidationError{Field: "service_type", Message: "service_type is required"})
	}
	if validator.IsEmpty(r.AppointmentDate) {
		errs = append(errs, validator.ValidationError{Field: "appointment_date", Message: "appointment_date is required"})
	} else if _, ok := validator.IsValidDate(r.AppointmentDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "appointment_date", Message: "appointment_date must be in YYYY-MM-DD format"})
	}
	if validator.IsEmpty(r.AppointmentTime) {
		errs = append(errs, validator.ValidationError{Field: "appointment_time", Message: "appointment_time is required"})
	} else if !validator.IsValidTime(r.AppointmentTime) {
		errs = append(errs, validator.ValidationError{Field: "appointment_time", Message: "appointment_time must be in HH:MM format"})
	}

	// Step 3: location and extras
	if validator.IsEmpty(r.Address) {
		errs = append(errs, validator.ValidationError{Field: "address", Message: "address is required"})
	}
	if r.Notes != nil && len(*r.Notes) > 2000 {
		errs = append(errs, validator.ValidationError{Field: "notes", Message: "notes must not exceed 2000 characters"})
	}
	if r.Amount != nil && r.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "amount must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== ADMIN ==========

type UpdateStatusRequest struct {
	ID      string `json:"-"`
	Status  string `json:"status"`
	Version *int64 `json:"version,omitempty"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Status) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status is required"})
	} else if ParseStatus(r.Status) == StatusUnknown {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of scheduled, in-progress, completed, cancelled"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

type BookingFilter struct {
	Status *string `json:"status,omitempty"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}

// Validate checks the status filter and fills in paging defaults.
func (f *BookingFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && ParseStatus(*f.Status) == StatusUnknown {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of scheduled, in-progress, completed, cancelled"})
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = DefaultPageLimit
	}
	if f.Limit > MaxPageLimit {
		f.Limit = MaxPageLimit
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PaySplitResponse struct {
	WorkerID        string `json:"worker_id"`
	SplitPercentage int    `json:"split_percentage"`
}

type BookingResponse struct {
	ID                 string             `json:"id"`
	Status             string             `json:"status"`
	Amount             string             `json:"amount"`
	AppointmentDate    string             `json:"appointment_date"`
	AppointmentTime    string             `json:"appointment_time,omitempty"`
	CustomerName       string             `json:"customer_name"`
	Email              string             `json:"email,omitempty"`
	Phone              string             `json:"phone,omitempty"`
	ServiceType        string             `json:"service_type,omitempty"`
	Address            string             `json:"address,omitempty"`
	Notes              *string            `json:"notes,omitempty"`
	AssignedWorkerIDs  []string           `json:"assigned_worker_ids"`
	AssignedWorkersPay []PaySplitResponse `json:"assigned_workers_pay"`
	Version            int64              `json:"version"`
	CreatedAt          string             `json:"created_at"`
}

type ListBookingResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Showing    string            `json:"showing"`
	Bookings   []BookingResponse `json:"bookings"`
}

// ToResponse formats a booking for the admin table and the booking form receipt.
func ToResponse(b Booking) BookingResponse {
	ids := b.AssignedWorkerIDs
	if ids == nil {
		ids = []string{}
	}
	splits := make([]PaySplitResponse, 0, len(b.AssignedWorkersPay))
	for _, s := range b.AssignedWorkersPay {
		splits = append(splits, PaySplitResponse{WorkerID: s.WorkerID, SplitPercentage: s.SplitPercentage})
	}

	var createdAt string
	if !b.CreatedAt.IsZero() {
		createdAt = b.CreatedAt.UTC().Format(time.RFC3339)
	}

	return BookingResponse{
		ID:                 b.ID,
		Status:             string(b.Status),
		Amount:             b.Amount.StringFixed(2),
		AppointmentDate:    b.AppointmentDate,
		AppointmentTime:    b.AppointmentTime,
		CustomerName:       b.CustomerName,
		Email:              b.Email,
		Phone:              b.Phone,
		ServiceType:        b.ServiceType,
		Address:            b.Address,
		Notes:              b.Notes,
		AssignedWorkerIDs:  ids,
		AssignedWorkersPay: splits,
		Version:            b.Version,
		CreatedAt:          createdAt,
	}
}
