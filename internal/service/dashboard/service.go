package dashboard

import (
	"context"
	"time"

	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/booking"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/service/payroll"
)

type DashboardServiceImpl struct {
	fetcher *payroll.Fetcher
	metrics *metrics.Manager
	now     func() time.Time
}

func NewDashboardService(fetcher *payroll.Fetcher, m *metrics.Manager) dashboard.DashboardService {
	return &DashboardServiceImpl{
		fetcher: fetcher,
		metrics: m,
		now:     time.Now,
	}
}

// parseMonth parses YYYY-MM format, defaults to current month
func (s *DashboardServiceImpl) parseMonth(month string) (int, int) {
	now := s.now()
	if month == "" {
		return now.Year(), int(now.Month())
	}

	parsed, err := time.Parse("2006-01", month)
	if err != nil {
		return now.Year(), int(now.Month())
	}
	return parsed.Year(), int(parsed.Month())
}

// GetDashboard derives cards and chart series from one record snapshot
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, month string) (*dashboard.DashboardResponse, error) {
	snap, err := s.fetcher.Refresh(ctx)
	if err != nil {
		if !snap.Stale {
			return nil, err
		}
		s.metrics.RecordStaleSnapshot()
	}

	year, m := s.parseMonth(month)
	today := s.now().Format(booking.DateLayout)

	return &dashboard.DashboardResponse{
		Cards:            buildCards(snap.Bookings, len(snap.Workers), today),
		RevenueByDate:    revenueByDate(snap.Bookings, year, m),
		BookingsByStatus: bookingsByStatus(snap.Bookings),
		BookingsByMonth:  bookingsByMonth(snap.Bookings, year, m),
		Month:            monthKey(year, m),
		FetchedAt:        snap.FetchedAt.UTC().Format(time.RFC3339),
		Stale:            snap.Stale,
	}, nil
}
