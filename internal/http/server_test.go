package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	applog "rentroll/internal/log"
	"rentroll/internal/services"
	"rentroll/internal/store/memory"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store := memory.New()
	ledger := services.NewLedgerService(store, store, nil)
	srv := NewServer(":0", ledger, nil)
	t.Cleanup(func() { srv.rateLimiter.stop() })
	return srv
}

func doRequest(srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	return rec
}

func createTenant(t *testing.T, srv *Server, name string, rent float64, moveIn string) map[string]any {
	t.Helper()
	rec := doRequest(srv, http.MethodPost, "/tenants", map[string]any{
		"name":         name,
		"monthly_rent": rent,
		"move_in_date": moveIn,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var tenant map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tenant))
	require.NotEmpty(t, tenant["id"])
	return tenant
}

func TestWelcome(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodGet, "/", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body["message"], "Rent Management System API")
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	require.Equal(t, http.StatusOK, doRequest(srv, http.MethodGet, "/healthz", nil).Code)
	require.Equal(t, http.StatusOK, doRequest(srv, http.MethodGet, "/readyz", nil).Code)
	require.Equal(t, http.StatusOK, doRequest(srv, http.MethodGet, "/metrics", nil).Code)
}

func TestCreateTenant(t *testing.T) {
	srv := newTestServer(t)

	tenant := createTenant(t, srv, "Alice", 1200.50, "2023-01-15")
	require.Equal(t, "Alice", tenant["name"])
	require.Equal(t, 1200.50, tenant["monthly_rent"])
	require.Equal(t, "2023-01-15", tenant["move_in_date"])

	rec := doRequest(srv, http.MethodGet, "/tenants", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var tenants []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tenants))
	require.Len(t, tenants, 1)
}

func TestCreateTenant_MalformedJSON(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/tenants", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Invalid JSON body", body["detail"])
}

func TestCreateTenant_ValidationErrors(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodPost, "/tenants", map[string]any{
		"name":         "",
		"monthly_rent": -50,
		"move_in_date": "2023-01-15",
	})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body struct {
		Detail []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	fields := make([]string, 0, len(body.Detail))
	for _, d := range body.Detail {
		fields = append(fields, d.Field)
	}
	require.Contains(t, fields, "name")
	require.Contains(t, fields, "monthly_rent")
}

func TestCreateTenant_BadDate(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodPost, "/tenants", map[string]any{
		"name":         "Alice",
		"monthly_rent": 1000,
		"move_in_date": "15/01/2023",
	})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, rec.Body.String(), "move_in_date")
}

func TestListTenants_Empty(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodGet, "/tenants", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, "[]", rec.Body.String())
}

func TestRecordPayment(t *testing.T) {
	srv := newTestServer(t)
	tenant := createTenant(t, srv, "Alice", 1000, "2023-01-01")

	rec := doRequest(srv, http.MethodPost, "/payments", map[string]any{
		"tenant_id":    tenant["id"],
		"amount":       500,
		"payment_date": "2023-01-10",
		"notes":        "first half",
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var payment map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payment))
	require.NotEmpty(t, payment["id"])
	require.Equal(t, tenant["id"], payment["tenant_id"])
	require.Equal(t, float64(500), payment["amount"])
	require.Equal(t, "2023-01-10", payment["payment_date"])
	require.Equal(t, "first half", payment["notes"])
}

func TestRecordPayment_UnknownTenant(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodPost, "/payments", map[string]any{
		"tenant_id":    "does-not-exist",
		"amount":       500,
		"payment_date": "2023-01-10",
	})

	require.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Tenant not found", body["detail"])
}

func TestRecordPayment_ValidationErrors(t *testing.T) {
	srv := newTestServer(t)
	tenant := createTenant(t, srv, "Alice", 1000, "2023-01-01")

	rec := doRequest(srv, http.MethodPost, "/payments", map[string]any{
		"tenant_id":    tenant["id"],
		"amount":       0,
		"payment_date": "2023-01-10",
	})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, rec.Body.String(), "amount")
}

func TestDashboardSummary(t *testing.T) {
	srv := newTestServer(t)
	tenant := createTenant(t, srv, "Alice", 1000, "2023-01-01")

	// A payment dated in the current month counts toward collected.
	today := time.Now().UTC().Format("2006-01-02")
	rec := doRequest(srv, http.MethodPost, "/payments", map[string]any{
		"tenant_id":    tenant["id"],
		"amount":       400,
		"payment_date": today,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doRequest(srv, http.MethodGet, "/dashboard-summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var summary map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	require.Equal(t, float64(1), summary["total_tenants"])
	require.Equal(t, float64(1000), summary["total_expected_rent_current_month"])
	require.Equal(t, float64(400), summary["total_collected_current_month"])
	require.Equal(t, float64(600), summary["total_pending_current_month"])
}

func TestTenantHistory(t *testing.T) {
	srv := newTestServer(t)
	tenant := createTenant(t, srv, "Alice", 1000, "2023-01-01")

	for _, p := range []struct {
		amount float64
		date   string
	}{
		{500, "2023-01-05"},
		{500, "2023-01-20"},
		{1200, "2023-03-10"},
	} {
		rec := doRequest(srv, http.MethodPost, "/payments", map[string]any{
			"tenant_id":    tenant["id"],
			"amount":       p.amount,
			"payment_date": p.date,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	path := fmt.Sprintf("/tenant/%s/history?month=2023-04", tenant["id"])
	rec := doRequest(srv, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var history struct {
		Tenant   map[string]any `json:"tenant"`
		Payments []struct {
			PaymentID   string  `json:"payment_id"`
			Amount      float64 `json:"amount"`
			PaymentDate string  `json:"payment_date"`
		} `json:"payments"`
		MonthlyDueStatus []struct {
			Month         string  `json:"month"`
			ExpectedRent  float64 `json:"expected_rent"`
			PaidAmount    float64 `json:"paid_amount"`
			PendingAmount float64 `json:"pending_amount"`
			IsPaidInFull  bool    `json:"is_paid_in_full"`
		} `json:"monthly_due_status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))

	require.Equal(t, tenant["id"], history.Tenant["id"])

	// Payments come back newest first.
	require.Len(t, history.Payments, 3)
	require.Equal(t, "2023-03-10", history.Payments[0].PaymentDate)
	require.Equal(t, "2023-01-05", history.Payments[2].PaymentDate)

	// January through april, ascending.
	require.Len(t, history.MonthlyDueStatus, 4)
	require.Equal(t, "2023-01", history.MonthlyDueStatus[0].Month)
	require.True(t, history.MonthlyDueStatus[0].IsPaidInFull)
	require.Equal(t, "2023-02", history.MonthlyDueStatus[1].Month)
	require.Equal(t, float64(1000), history.MonthlyDueStatus[1].PendingAmount)
	require.True(t, history.MonthlyDueStatus[2].IsPaidInFull)
	require.False(t, history.MonthlyDueStatus[3].IsPaidInFull)
}

func TestTenantHistory_UnknownTenant(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodGet, "/tenant/missing/history", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Tenant not found", body["detail"])
}

func TestTenantHistory_InvalidMonth(t *testing.T) {
	srv := newTestServer(t)
	tenant := createTenant(t, srv, "Alice", 1000, "2023-01-01")

	for _, month := range []string{"2023-13", "2023", "not-a-month", "2023-04-01"} {
		path := fmt.Sprintf("/tenant/%s/history?month=%s", tenant["id"], month)
		rec := doRequest(srv, http.MethodGet, path, nil)

		require.Equal(t, http.StatusBadRequest, rec.Code, "month %q", month)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, "Invalid month format. Use YYYY-MM.", body["detail"])
	}
}

func TestRequestIDReachesHandlers(t *testing.T) {
	var buf bytes.Buffer
	cfg := applog.DefaultConfig()
	cfg.Handler = slog.NewTextHandler(&buf, nil)
	logger := applog.New(cfg)

	store := memory.New()
	ledger := services.NewLedgerService(store, store, nil)
	srv := NewServer(":0", ledger, logger)
	t.Cleanup(func() { srv.rateLimiter.stop() })

	mux, ok := srv.Handler.(*chi.Mux)
	require.True(t, ok)
	mux.Get("/log-check", func(w http.ResponseWriter, r *http.Request) {
		applog.FromContext(r.Context()).InfoContext(r.Context(), "Handled log check")
		w.WriteHeader(http.StatusNoContent)
	})

	rec := doRequest(srv, http.MethodGet, "/log-check", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// The logger a handler resolves from the request context carries the same
	// request ID the middleware assigned.
	var handlerLine string
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, "Handled log check") {
			handlerLine = line
		}
	}
	require.NotEmpty(t, handlerLine)
	require.Contains(t, handlerLine, "request_id=req_")
}

func TestRateLimit(t *testing.T) {
	srv := newTestServer(t)

	// All requests share the recorder's default remote address, so the 61st
	// mutating request within a minute must be rejected.
	var last *httptest.ResponseRecorder
	for i := 0; i < 61; i++ {
		last = doRequest(srv, http.MethodPost, "/tenants", map[string]any{
			"name":         fmt.Sprintf("Tenant %d", i),
			"monthly_rent": 1000,
			"move_in_date": "2023-01-01",
		})
	}

	require.Equal(t, http.StatusTooManyRequests, last.Code)
	require.Equal(t, "60", last.Header().Get("Retry-After"))
}
