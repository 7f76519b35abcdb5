package http

import (
	"net/http"

	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetDashboard returns metric cards and booking analytics
	GetDashboard(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetDashboard handles GET /dashboard
func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month") // format: YYYY-MM, default: current month

	result, err := h.dashboardService.GetDashboard(r.Context(), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result.Stale {
		response.StaleSnapshot(w, result, result.FetchedAt)
		return
	}
	response.Success(w, result)
}
