package http

import (
	"net/http"

	applog "rentroll/internal/log"
)

func (s *Server) handleDashboardSummary(w http.ResponseWriter, r *http.Request) {
	logger := applog.FromContext(r.Context())

	summary, err := s.ledger.DashboardSummary(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to compute dashboard summary", applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
