package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"rentroll/internal/core"
	applog "rentroll/internal/log"
	"rentroll/internal/metrics"
	"rentroll/internal/services"
)

type recordPaymentRequest struct {
	TenantID    string      `json:"tenant_id"`
	Amount      json.Number `json:"amount"`
	PaymentDate string      `json:"payment_date"`
	Notes       string      `json:"notes"`
}

func (s *Server) handleRecordPayment(w http.ResponseWriter, r *http.Request) {
	logger := applog.FromContext(r.Context())

	var req recordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	verr := &core.ValidationError{}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		verr.Add("amount", "must be a valid number")
	}

	// The payment date is optional and defaults to today downstream.
	var paymentDate core.Date
	if req.PaymentDate != "" {
		if paymentDate, err = core.ParseDate(req.PaymentDate); err != nil {
			verr.Add("payment_date", "must be a valid date (YYYY-MM-DD)")
		}
	}
	if len(verr.Fields) > 0 {
		writeValidationError(w, verr)
		return
	}

	payment, err := s.ledger.RecordPayment(r.Context(), services.PaymentInput{
		TenantID:    req.TenantID,
		Amount:      amount,
		PaymentDate: paymentDate,
		Notes:       req.Notes,
	})
	if err != nil {
		var fieldErrs *core.ValidationError
		switch {
		case errors.Is(err, core.ErrTenantNotFound):
			writeError(w, http.StatusNotFound, "Tenant not found")
		case errors.As(err, &fieldErrs):
			writeValidationError(w, fieldErrs)
		default:
			logger.ErrorContext(r.Context(), "Failed to record payment", applog.FieldError, err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	metrics.PaymentsRecorded.Inc()
	writeJSON(w, http.StatusCreated, payment)
}
