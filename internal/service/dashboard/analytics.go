package dashboard

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/booking"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/dashboard"
	"github.com/shopspring/decimal"
)

// monthsInChart is the length of the bookings_by_month series.
const monthsInChart = 12

var statusOrder = []booking.Status{
	booking.StatusScheduled,
	booking.StatusInProgress,
	booking.StatusCompleted,
	booking.StatusCancelled,
	booking.StatusUnknown,
}

// buildCards counts bookings per status. today is YYYY-MM-DD.
func buildCards(bookings []booking.Booking, totalWorkers int, today string) dashboard.CardsResponse {
	cards := dashboard.CardsResponse{
		TotalBookings: len(bookings),
		TotalWorkers:  totalWorkers,
	}
	revenue := decimal.Zero

	for _, b := range bookings {
		switch b.Status {
		case booking.StatusScheduled:
			cards.Scheduled++
		case booking.StatusInProgress:
			cards.InProgress++
		case booking.StatusCompleted:
			cards.Completed++
			revenue = revenue.Add(b.Amount)
		case booking.StatusCancelled:
			cards.Cancelled++
		default:
			cards.Unknown++
		}

		if b.Status.IsActive() && b.AppointmentDate != "" && b.AppointmentDate >= today {
			cards.UpcomingBookings++
		}
	}

	cards.CompletedRevenue = revenue.StringFixed(2)
	return cards
}

// revenueByDate sums completed revenue per day of the given month, oldest
// first. Days without completed bookings are omitted.
func revenueByDate(bookings []booking.Booking, year, month int) []dashboard.RevenuePoint {
	prefix := monthKey(year, month) + "-"

	type bucket struct {
		revenue decimal.Decimal
		count   int
	}
	buckets := make(map[string]*bucket)

	for _, b := range bookings {
		if b.Status != booking.StatusCompleted || !strings.HasPrefix(b.AppointmentDate, prefix) {
			continue
		}
		bk, ok := buckets[b.AppointmentDate]
		if !ok {
			bk = &bucket{revenue: decimal.Zero}
			buckets[b.AppointmentDate] = bk
		}
		bk.revenue = bk.revenue.Add(b.Amount)
		bk.count++
	}

	points := make([]dashboard.RevenuePoint, 0, len(buckets))
	for date, bk := range buckets {
		points = append(points, dashboard.RevenuePoint{
			Date:     date,
			Revenue:  bk.revenue.StringFixed(2),
			Bookings: bk.count,
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

// bookingsByStatus returns one entry per status in lifecycle order, zero
// counts included.
func bookingsByStatus(bookings []booking.Booking) []dashboard.StatusCountResponse {
	counts := make(map[booking.Status]int, len(statusOrder))
	for _, b := range bookings {
		counts[b.Status]++
	}

	result := make([]dashboard.StatusCountResponse, 0, len(statusOrder))
	for _, status := range statusOrder {
		var percent float64
		if len(bookings) > 0 {
			percent = math.Round(float64(counts[status])/float64(len(bookings))*10000) / 100
		}
		result = append(result, dashboard.StatusCountResponse{
			Status:  string(status),
			Count:   counts[status],
			Percent: percent,
		})
	}
	return result
}

// bookingsByMonth covers the monthsInChart months ending with year/month,
// oldest first. Bookings without a canonical date are skipped.
func bookingsByMonth(bookings []booking.Booking, year, month int) []dashboard.MonthPoint {
	keys := make([]string, 0, monthsInChart)
	index := make(map[string]int, monthsInChart)
	for i := monthsInChart - 1; i >= 0; i-- {
		y, m := shiftMonth(year, month, -i)
		key := monthKey(y, m)
		index[key] = len(keys)
		keys = append(keys, key)
	}

	points := make([]dashboard.MonthPoint, len(keys))
	revenue := make([]decimal.Decimal, len(keys))
	for i, key := range keys {
		points[i].Month = key
		revenue[i] = decimal.Zero
	}

	for _, b := range bookings {
		if len(b.AppointmentDate) < len("2006-01") {
			continue
		}
		i, ok := index[b.AppointmentDate[:len("2006-01")]]
		if !ok {
			continue
		}
		points[i].Total++
		switch b.Status {
		case booking.StatusCompleted:
			points[i].Completed++
			revenue[i] = revenue[i].Add(b.Amount)
		case booking.StatusCancelled:
			points[i].Cancelled++
		}
	}

	for i := range points {
		points[i].Revenue = revenue[i].StringFixed(2)
	}
	return points
}

func monthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// shiftMonth moves year/month by delta months.
func shiftMonth(year, month, delta int) (int, int) {
	total := year*12 + (month - 1) + delta
	return total / 12, total%12 + 1
}
