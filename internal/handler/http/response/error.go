package response

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/booking"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Pay split that does not add up; report the actual sum
	var splitErr *payroll.SplitTotalError
	if errors.As(err, &splitErr) {
		ValidationErrorWithMessage(w, splitErr.Error(), map[string]string{
			"total": strconv.Itoa(splitErr.Total),
		})
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Booking domain errors
	case errors.Is(err, booking.ErrBookingNotFound):
		NotFound(w, "Booking not found")
	case errors.Is(err, booking.ErrVersionConflict):
		Conflict(w, "Booking was changed by someone else; reload and try again")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrInvalidSplitTotal):
		ValidationError(w, nil)
	case errors.Is(err, payroll.ErrRecordsUnavailable):
		ServiceUnavailable(w, "Records are unavailable, try again later")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
