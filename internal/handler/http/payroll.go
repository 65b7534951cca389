package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/kayaops/backoffice-backend-go/internal/domain/payroll"
	"github.com/kayaops/backoffice-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	GeneratePayroll(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

func (h *payrollHandlerImpl) GeneratePayroll(w http.ResponseWriter, r *http.Request) {
	var req payroll.GeneratePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.GeneratePayroll(r.Context(), req)
	if err != nil {
		slog.Error("GeneratePayroll service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Payroll generated", "count", result.Generated, "skipped", len(result.Skipped))
	response.Created(w, "Payroll generated", result)
}
