package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"rentroll/internal/core"
	applog "rentroll/internal/log"
	"rentroll/internal/metrics"
	"rentroll/internal/services"
)

// createTenantRequest decodes amounts and dates as raw text so malformed
// values surface as field violations instead of a generic JSON error.
type createTenantRequest struct {
	Name         string      `json:"name"`
	MonthlyRent  json.Number `json:"monthly_rent"`
	ContactEmail string      `json:"contact_email"`
	MoveInDate   string      `json:"move_in_date"`
}

func (s *Server) handleCreateTenant(w http.ResponseWriter, r *http.Request) {
	logger := applog.FromContext(r.Context())

	var req createTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	verr := &core.ValidationError{}
	rent, err := parseAmount(req.MonthlyRent)
	if err != nil {
		verr.Add("monthly_rent", "must be a valid number")
	}
	moveIn, err := parseRequiredDate(req.MoveInDate)
	if err != nil {
		verr.Add("move_in_date", "must be a valid date (YYYY-MM-DD)")
	}
	if len(verr.Fields) > 0 {
		writeValidationError(w, verr)
		return
	}

	tenant, err := s.ledger.CreateTenant(r.Context(), services.TenantInput{
		Name:         req.Name,
		MonthlyRent:  rent,
		ContactEmail: req.ContactEmail,
		MoveInDate:   moveIn,
	})
	if err != nil {
		var fieldErrs *core.ValidationError
		if errors.As(err, &fieldErrs) {
			writeValidationError(w, fieldErrs)
			return
		}
		logger.ErrorContext(r.Context(), "Failed to create tenant", applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	metrics.TenantsCreated.Inc()
	writeJSON(w, http.StatusCreated, tenant)
}

func (s *Server) handleListTenants(w http.ResponseWriter, r *http.Request) {
	logger := applog.FromContext(r.Context())

	tenants, err := s.ledger.ListTenants(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to list tenants", applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if tenants == nil {
		tenants = []core.Tenant{}
	}
	writeJSON(w, http.StatusOK, tenants)
}

func parseAmount(n json.Number) (decimal.Decimal, error) {
	if n.String() == "" {
		return decimal.Decimal{}, core.ErrInvalidAmount
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Decimal{}, core.ErrInvalidAmount
	}
	return d, nil
}

func parseRequiredDate(s string) (core.Date, error) {
	if s == "" {
		return core.Date{}, core.ErrInvalidDate
	}
	return core.ParseDate(s)
}
