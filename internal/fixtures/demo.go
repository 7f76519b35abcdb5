// Package fixtures holds the demo records loaded by the memory store.
package fixtures

import (
	"time"

	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/booking"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/worker"
	"github.com/shopspring/decimal"
)

// ==========================================
// HELPER FUNCTIONS
// ==========================================

func strPtr(s string) *string { return &s }

func date(now time.Time, days int) string {
	return now.AddDate(0, 0, days).Format(booking.DateLayout)
}

// ==========================================
// DEMO WORKERS
// ==========================================

// Worker IDs used by DemoBookings.
const (
	WorkerAna  = "demo-worker-ana"
	WorkerBen  = "demo-worker-ben"
	WorkerCleo = "demo-worker-cleo"
)

func DemoWorkers(now time.Time) []worker.Worker {
	return []worker.Worker{
		{ID: WorkerAna, Name: "Ana Putri", ContactNumber: strPtr("+62 812 0000 0001"), CreatedAt: now.AddDate(0, -6, 0)},
		{ID: WorkerBen, Name: "Ben Santoso", ContactNumber: strPtr("+62 812 0000 0002"), CreatedAt: now.AddDate(0, -3, 0)},
		{ID: WorkerCleo, Name: "Cleo Wijaya", CreatedAt: now.AddDate(0, -1, 0)},
	}
}

// ==========================================
// DEMO BOOKINGS
// ==========================================

// DemoBookings covers every state the dashboard renders: split and legacy
// assignments, an unknown status, a stale worker reference and a booking
// without a usable date.
func DemoBookings(now time.Time) []booking.Booking {
	return []booking.Booking{
		{
			ID:              "demo-booking-1",
			Status:          booking.StatusCompleted,
			Amount:          decimal.RequireFromString("500000"),
			AppointmentDate: date(now, -20),
			AppointmentTime: "09:00",
			CustomerName:    "Rina Kusuma",
			Email:           "rina@example.com",
			Phone:           "+62 811 1000 0001",
			ServiceType:     "Deep Cleaning",
			Address:         "Jl. Merdeka 10, Malang",
			AssignedWorkersPay: []booking.PaySplit{
				{WorkerID: WorkerAna, SplitPercentage: 60},
				{WorkerID: WorkerBen, SplitPercentage: 40},
			},
			AssignedWorkerIDs: []string{WorkerAna, WorkerBen},
			CreatedAt:         now.AddDate(0, 0, -30),
		},
		{
			ID:                 "demo-booking-2",
			Status:             booking.StatusCompleted,
			Amount:             decimal.RequireFromString("350000"),
			AppointmentDate:    date(now, -12),
			AppointmentTime:    "13:30",
			CustomerName:       "Dimas Pratama",
			Email:              "dimas@example.com",
			ServiceType:        "Regular Cleaning",
			Address:            "Jl. Ijen 5, Malang",
			AssignedWorkersPay: []booking.PaySplit{{WorkerID: WorkerCleo, SplitPercentage: 100}},
			AssignedWorkerIDs:  []string{WorkerCleo},
			CreatedAt:          now.AddDate(0, 0, -15),
		},
		{
			ID:                "demo-booking-3",
			Status:            booking.StatusInProgress,
			Amount:            decimal.RequireFromString("275000"),
			AppointmentDate:   date(now, 0),
			AppointmentTime:   "10:00",
			CustomerName:      "Sari Dewi",
			ServiceType:       "Laundry",
			Address:           "Jl. Soekarno Hatta 21, Malang",
			AssignedWorkerIDs: []string{WorkerBen},
			CreatedAt:         now.AddDate(0, 0, -4),
		},
		{
			ID:              "demo-booking-4",
			Status:          booking.StatusScheduled,
			Amount:          decimal.RequireFromString("420000"),
			AppointmentDate: date(now, 3),
			AppointmentTime: "08:00",
			CustomerName:    "Yoga Aditya",
			ServiceType:     "Deep Cleaning",
			Address:         "Jl. Veteran 2, Malang",
			Notes:           strPtr("Two cats in the house"),
			CreatedAt:       now.AddDate(0, 0, -1),
		},
		{
			ID:              "demo-booking-5",
			Status:          booking.StatusCancelled,
			Amount:          decimal.RequireFromString("150000"),
			AppointmentDate: date(now, -40),
			CustomerName:    "Maya Lestari",
			ServiceType:     "Regular Cleaning",
			CreatedAt:       now.AddDate(0, 0, -45),
		},
		{
			ID:           "demo-booking-6",
			Status:       booking.StatusUnknown,
			Amount:       decimal.RequireFromString("200000"),
			CustomerName: "Imported record",
			AssignedWorkersPay: []booking.PaySplit{
				{WorkerID: "demo-worker-removed", SplitPercentage: 100},
			},
			CreatedAt: now.AddDate(0, -2, 0),
		},
	}
}
