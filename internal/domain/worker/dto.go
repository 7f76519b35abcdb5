package worker

import (
	"time"

	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/pkg/validator"
)

type CreateWorkerRequest struct {
	Name          string  `json:"name"`
	ContactNumber *string `json:"contact_number,omitempty"`
}

func (r *CreateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not exceed 255 characters"})
	}
	if r.ContactNumber != nil && !validator.IsEmpty(*r.ContactNumber) && !validator.IsValidPhoneNumber(*r.ContactNumber) {
		errs = append(errs, validator.ValidationError{Field: "contact_number", Message: "contact_number must contain 7 to 15 digits"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type WorkerResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	ContactNumber *string `json:"contact_number,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

func ToResponse(w Worker) WorkerResponse {
	var createdAt string
	if !w.CreatedAt.IsZero() {
		createdAt = w.CreatedAt.UTC().Format(time.RFC3339)
	}
	return WorkerResponse{
		ID:            w.ID,
		Name:          w.Name,
		ContactNumber: w.ContactNumber,
		CreatedAt:     createdAt,
	}
}
