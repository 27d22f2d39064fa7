package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"rentroll/internal/core"
	applog "rentroll/internal/log"
)

func (s *Server) handleTenantHistory(w http.ResponseWriter, r *http.Request) {
	logger := applog.FromContext(r.Context())
	tenantID := chi.URLParam(r, "id")

	var month *core.YearMonth
	if raw := r.URL.Query().Get("month"); raw != "" {
		ym, err := core.ParseYearMonth(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid month format. Use YYYY-MM.")
			return
		}
		month = &ym
	}

	history, err := s.ledger.TenantHistory(r.Context(), tenantID, month)
	if err != nil {
		if errors.Is(err, core.ErrTenantNotFound) {
			writeError(w, http.StatusNotFound, "Tenant not found")
			return
		}
		logger.ErrorContext(r.Context(), "Failed to assemble tenant history",
			applog.FieldTenantID, tenantID, applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	// Arrays are never null in the response.
	if history.Payments == nil {
		history.Payments = []core.PaymentRecord{}
	}
	if history.MonthlyDueStatus == nil {
		history.MonthlyDueStatus = []core.MonthlyDueStatus{}
	}
	writeJSON(w, http.StatusOK, history)
}
