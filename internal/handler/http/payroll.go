package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type PayrollHandler interface {
	// Overview returns worker summaries, totals, uncompleted tasks and completed history
	Overview(w http.ResponseWriter, r *http.Request)
	GetAssignment(w http.ResponseWriter, r *http.Request)
	CommitAssignment(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// ========== OVERVIEW ==========

func (h *payrollHandlerImpl) Overview(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.Overview(r.Context())
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

// ========== ASSIGNMENT ==========

func (h *payrollHandlerImpl) GetAssignment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Task ID is required", nil)
		return
	}

	result, err := h.payrollService.GetAssignment(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) CommitAssignment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Task ID is required", nil)
		return
	}

	var req payroll.AssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CommitAssignment decode error", "error", err)
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.TaskID = id

	result, err := h.payrollService.CommitAssignment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Assignment saved", result)
}

// ========== EXPORT ==========

func (h *payrollHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.payrollService.Export(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("payroll-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		slog.Error("Export write error", "error", err)
	}
}
