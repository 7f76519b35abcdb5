package payroll

import (
	"sort"

	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/booking"
)

// Classify splits bookings into active tasks (neither completed nor
// cancelled, input order kept) and completed history sorted by appointment
// date descending. The sort compares canonical date strings, so bookings
// whose date failed to parse end up last.
func Classify(bookings []booking.Booking) (uncompleted, completedHistory []booking.Booking) {
	uncompleted = make([]booking.Booking, 0, len(bookings))
	completedHistory = make([]booking.Booking, 0)

	for _, b := range bookings {
		switch {
		case b.Status == booking.StatusCompleted:
			completedHistory = append(completedHistory, b)
		case b.Status.IsActive():
			uncompleted = append(uncompleted, b)
		}
	}

	sort.SliceStable(completedHistory, func(i, j int) bool {
		return completedHistory[i].AppointmentDate > completedHistory[j].AppointmentDate
	})

	return uncompleted, completedHistory
}
