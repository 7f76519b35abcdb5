package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetDashboard returns cards and chart series for month (YYYY-MM, empty = current month)
	GetDashboard(ctx context.Context, month string) (*DashboardResponse, error)
}
