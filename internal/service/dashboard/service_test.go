package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/booking"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/repository/memory"
	payrollService "github.com/cmlabs-hris/booking-payroll-backend-go/internal/service/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var fixtureBookings = []booking.Booking{
	{ID: "1", Status: booking.StatusCompleted, Amount: amount("100"), AppointmentDate: "2024-06-03"},
	{ID: "2", Status: booking.StatusCompleted, Amount: amount("50.25"), AppointmentDate: "2024-06-03"},
	{ID: "3", Status: booking.StatusCompleted, Amount: amount("20"), AppointmentDate: "2024-06-10"},
	{ID: "4", Status: booking.StatusCompleted, Amount: amount("999"), AppointmentDate: "2024-05-31"},
	{ID: "5", Status: booking.StatusScheduled, Amount: amount("70"), AppointmentDate: "2024-06-20"},
	{ID: "6", Status: booking.StatusInProgress, Amount: amount("70"), AppointmentDate: "2024-06-14"},
	{ID: "7", Status: booking.StatusCancelled, Amount: amount("70"), AppointmentDate: "2024-06-21"},
	{ID: "8", Status: booking.StatusUnknown, Amount: amount("0"), AppointmentDate: ""},
}

func TestBuildCards(t *testing.T) {
	cards := buildCards(fixtureBookings, 3, "2024-06-15")

	assert.Equal(t, 8, cards.TotalBookings)
	assert.Equal(t, 1, cards.Scheduled)
	assert.Equal(t, 1, cards.InProgress)
	assert.Equal(t, 4, cards.Completed)
	assert.Equal(t, 1, cards.Cancelled)
	assert.Equal(t, 1, cards.Unknown)
	assert.Equal(t, "1169.25", cards.CompletedRevenue)
	// only booking 5; 6 is in the past and 8 has no date
	assert.Equal(t, 1, cards.UpcomingBookings)
	assert.Equal(t, 3, cards.TotalWorkers)
}

func TestRevenueByDate(t *testing.T) {
	points := revenueByDate(fixtureBookings, 2024, 6)

	require.Len(t, points, 2)
	assert.Equal(t, "2024-06-03", points[0].Date)
	assert.Equal(t, "150.25", points[0].Revenue)
	assert.Equal(t, 2, points[0].Bookings)
	assert.Equal(t, "2024-06-10", points[1].Date)
	assert.Equal(t, "20.00", points[1].Revenue)
}

func TestBookingsByStatus(t *testing.T) {
	stats := bookingsByStatus(fixtureBookings)

	require.Len(t, stats, 5)
	assert.Equal(t, "scheduled", stats[0].Status)
	assert.Equal(t, "completed", stats[2].Status)
	assert.Equal(t, 4, stats[2].Count)
	assert.Equal(t, 50.0, stats[2].Percent)
	assert.Equal(t, 12.5, stats[4].Percent)

	empty := bookingsByStatus(nil)
	require.Len(t, empty, 5)
	assert.Zero(t, empty[0].Percent)
}

func TestBookingsByMonth(t *testing.T) {
	points := bookingsByMonth(fixtureBookings, 2024, 6)

	require.Len(t, points, monthsInChart)
	assert.Equal(t, "2023-07", points[0].Month)
	assert.Equal(t, "2024-05", points[10].Month)
	assert.Equal(t, "2024-06", points[11].Month)

	assert.Equal(t, 1, points[10].Total)
	assert.Equal(t, "999.00", points[10].Revenue)
	assert.Equal(t, 6, points[11].Total)
	assert.Equal(t, 3, points[11].Completed)
	assert.Equal(t, 1, points[11].Cancelled)
	assert.Equal(t, "170.25", points[11].Revenue)
}

func TestShiftMonth(t *testing.T) {
	y, m := shiftMonth(2024, 1, -1)
	assert.Equal(t, 2023, y)
	assert.Equal(t, 12, m)

	y, m = shiftMonth(2024, 12, 1)
	assert.Equal(t, 2025, y)
	assert.Equal(t, 1, m)
}

func TestDashboardService_GetDashboard(t *testing.T) {
	bookingRepo := memory.NewBookingRepository(fixtureBookings...)
	workerRepo := memory.NewWorkerRepository(worker.Worker{ID: "w1", Name: "Ana"})
	fetcher := payrollService.NewFetcher(bookingRepo, workerRepo, nil)

	svc := NewDashboardService(fetcher, nil).(*DashboardServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC) }

	resp, err := svc.GetDashboard(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "2024-06", resp.Month)
	assert.Equal(t, 1, resp.Cards.TotalWorkers)
	assert.Len(t, resp.RevenueByDate, 2)
	assert.False(t, resp.Stale)

	resp, err = svc.GetDashboard(context.Background(), "2024-05")
	require.NoError(t, err)
	assert.Equal(t, "2024-05", resp.Month)
	require.Len(t, resp.RevenueByDate, 1)
	assert.Equal(t, "2024-05-31", resp.RevenueByDate[0].Date)

	resp, err = svc.GetDashboard(context.Background(), "not-a-month")
	require.NoError(t, err)
	assert.Equal(t, "2024-06", resp.Month)
}

type failingBookingRepository struct {
	booking.BookingRepository
}

func (failingBookingRepository) List(context.Context) ([]booking.Booking, error) {
	return nil, assert.AnError
}

func TestDashboardService_GetDashboard_Unavailable(t *testing.T) {
	fetcher := payrollService.NewFetcher(failingBookingRepository{}, memory.NewWorkerRepository(), nil)
	svc := NewDashboardService(fetcher, nil)

	_, err := svc.GetDashboard(context.Background(), "")
	assert.ErrorIs(t, err, payroll.ErrRecordsUnavailable)
}
