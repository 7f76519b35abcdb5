package payroll

import (
	"testing"

	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/booking"
	"github.com/stretchr/testify/assert"
)

func ids(bookings []booking.Booking) []string {
	out := make([]string, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, b.ID)
	}
	return out
}

func TestClassify(t *testing.T) {
	bookings := []booking.Booking{
		{ID: "s1", Status: booking.StatusScheduled, AppointmentDate: "2024-06-01"},
		{ID: "c1", Status: booking.StatusCompleted, AppointmentDate: "2024-01-10"},
		{ID: "x1", Status: booking.StatusCancelled, AppointmentDate: "2024-02-01"},
		{ID: "c2", Status: booking.StatusCompleted, AppointmentDate: "2024-03-05"},
		{ID: "p1", Status: booking.StatusInProgress, AppointmentDate: "2024-05-01"},
		{ID: "u1", Status: booking.StatusUnknown, AppointmentDate: "2024-04-01"},
		{ID: "c3", Status: booking.StatusCompleted, AppointmentDate: ""},
	}

	uncompleted, history := Classify(bookings)

	assert.Equal(t, []string{"s1", "p1", "u1"}, ids(uncompleted))
	assert.Equal(t, []string{"c2", "c1", "c3"}, ids(history))
}

func TestClassify_Empty(t *testing.T) {
	uncompleted, history := Classify(nil)
	assert.NotNil(t, uncompleted)
	assert.NotNil(t, history)
	assert.Empty(t, uncompleted)
	assert.Empty(t, history)
}
