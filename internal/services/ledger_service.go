package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rentroll/internal/core"
	"rentroll/internal/events"
	"rentroll/internal/store"
)

// TenantInput carries the caller-supplied fields for a new tenant.
type TenantInput struct {
	Name         string
	MonthlyRent  decimal.Decimal
	ContactEmail string
	MoveInDate   core.Date
}

// PaymentInput carries the caller-supplied fields for a new payment.
// PaymentDate defaults to today when zero.
type PaymentInput struct {
	TenantID    string
	Amount      decimal.Decimal
	PaymentDate core.Date
	Notes       string
}

// LedgerService orchestrates tenant and payment operations over the storage
// ports and exposes the two aggregate read views. All reads are snapshots;
// nothing is cached between calls.
type LedgerService struct {
	tenants  store.TenantStore
	payments store.PaymentStore
	events   *events.Client
	now      func() time.Time
}

// NewLedgerService wires the service. The events client may be nil; payment
// events are then skipped.
func NewLedgerService(tenants store.TenantStore, payments store.PaymentStore, ev *events.Client) *LedgerService {
	return &LedgerService{
		tenants:  tenants,
		payments: payments,
		events:   ev,
		now:      time.Now,
	}
}

// CreateTenant validates the input, assigns identity and stores the tenant.
func (s *LedgerService) CreateTenant(ctx context.Context, in TenantInput) (core.Tenant, error) {
	t := core.Tenant{
		ID:           uuid.NewString(),
		Name:         in.Name,
		MonthlyRent:  in.MonthlyRent,
		ContactEmail: in.ContactEmail,
		MoveInDate:   in.MoveInDate,
		CreatedAt:    s.now(),
	}
	if err := t.Validate(); err != nil {
		return core.Tenant{}, err
	}
	if err := s.tenants.CreateTenant(ctx, t); err != nil {
		return core.Tenant{}, fmt.Errorf("create tenant: %w", err)
	}

	slog.InfoContext(ctx, "Tenant created",
		"tenant_id", t.ID,
		"name", t.Name,
		"monthly_rent", t.MonthlyRent.String(),
		"move_in_date", t.MoveInDate.String())

	return t, nil
}

// ListTenants returns all tenants.
func (s *LedgerService) ListTenants(ctx context.Context) ([]core.Tenant, error) {
	tenants, err := s.tenants.ListTenants(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	return tenants, nil
}

// RecordPayment validates the input, resolves the tenant and appends the
// payment. When the tenant does not exist nothing is stored and
// core.ErrTenantNotFound is returned. A recorded payment is announced on the
// events queue best-effort; publish failures never fail the request.
func (s *LedgerService) RecordPayment(ctx context.Context, in PaymentInput) (core.Payment, error) {
	p := core.Payment{
		ID:          uuid.NewString(),
		TenantID:    in.TenantID,
		Amount:      in.Amount,
		PaymentDate: in.PaymentDate,
		Notes:       in.Notes,
		RecordedAt:  s.now(),
	}
	if p.PaymentDate.IsZero() {
		p.PaymentDate = core.DateOf(s.now())
	}
	if err := p.Validate(); err != nil {
		return core.Payment{}, err
	}

	tenant, err := s.tenants.GetTenant(ctx, p.TenantID)
	if err != nil {
		return core.Payment{}, err
	}

	if err := s.payments.CreatePayment(ctx, p); err != nil {
		return core.Payment{}, fmt.Errorf("create payment: %w", err)
	}

	slog.InfoContext(ctx, "Payment recorded",
		"payment_id", p.ID,
		"tenant_id", p.TenantID,
		"amount", p.Amount.String(),
		"payment_date", p.PaymentDate.String())

	s.publishPaymentRecorded(ctx, tenant, p)

	return p, nil
}

func (s *LedgerService) publishPaymentRecorded(ctx context.Context, tenant core.Tenant, p core.Payment) {
	if s.events == nil {
		return
	}
	msg := &events.PaymentRecordedMessage{
		PaymentID:    p.ID,
		TenantID:     tenant.ID,
		TenantName:   tenant.Name,
		ContactEmail: tenant.ContactEmail,
		Amount:       p.Amount,
		PaymentDate:  p.PaymentDate.String(),
		Notes:        p.Notes,
		Timestamp:    s.now(),
	}
	if err := s.events.PublishPaymentRecorded(ctx, msg); err != nil {
		// The payment is already stored; the receipt is lost, not the money.
		slog.ErrorContext(ctx, "Failed to publish payment recorded message",
			"payment_id", p.ID, "error", err)
	}
}

// DashboardSummary computes the four current-month aggregates across all
// tenants, fresh on every call. Tenants whose move-in date is still in the
// future contribute to the tenant count but not to the monetary totals.
func (s *LedgerService) DashboardSummary(ctx context.Context) (core.DashboardSummary, error) {
	tenants, err := s.tenants.ListTenants(ctx)
	if err != nil {
		return core.DashboardSummary{}, fmt.Errorf("list tenants: %w", err)
	}
	payments, err := s.payments.ListPayments(ctx)
	if err != nil {
		return core.DashboardSummary{}, fmt.Errorf("list payments: %w", err)
	}

	now := s.now()
	currentMonth := core.YearMonthOf(now)

	summary := core.DashboardSummary{
		TotalExpectedRentCurrentMonth: decimal.Zero,
		TotalCollectedCurrentMonth:    decimal.Zero,
		TotalPendingCurrentMonth:      decimal.Zero,
		TotalTenants:                  len(tenants),
	}

	for _, t := range tenants {
		if t.MoveInDate.Time.After(now) {
			continue
		}

		collected := decimal.Zero
		for _, p := range payments {
			if p.TenantID == t.ID && currentMonth.Contains(p.PaymentDate) {
				collected = collected.Add(p.Amount)
			}
		}

		summary.TotalExpectedRentCurrentMonth = summary.TotalExpectedRentCurrentMonth.Add(t.MonthlyRent)
		summary.TotalCollectedCurrentMonth = summary.TotalCollectedCurrentMonth.Add(collected)
		summary.TotalPendingCurrentMonth = summary.TotalPendingCurrentMonth.Add(
			core.ClampNonNegative(t.MonthlyRent.Sub(collected)))
	}

	return summary, nil
}

// TenantHistory assembles one tenant's record: the tenant itself, its
// payments newest first, and the monthly due ledger. When month is non-nil
// the ledger runs through the last day of that month instead of today.
func (s *LedgerService) TenantHistory(ctx context.Context, tenantID string, month *core.YearMonth) (core.TenantHistory, error) {
	tenant, err := s.tenants.GetTenant(ctx, tenantID)
	if err != nil {
		return core.TenantHistory{}, err
	}

	payments, err := s.payments.ListTenantPayments(ctx, tenantID)
	if err != nil {
		return core.TenantHistory{}, fmt.Errorf("list tenant payments: %w", err)
	}

	endDate := s.now()
	if month != nil {
		endDate = month.LastDay()
	}
	dues := ComputeMonthlyDues(tenant, payments, endDate)

	// Newest first; the stable sort keeps insertion order for equal dates so
	// the output is deterministic.
	sorted := make([]core.Payment, len(payments))
	copy(sorted, payments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PaymentDate.Time.After(sorted[j].PaymentDate.Time)
	})

	records := make([]core.PaymentRecord, 0, len(sorted))
	for _, p := range sorted {
		records = append(records, core.PaymentRecord{
			PaymentID:   p.ID,
			Amount:      p.Amount,
			PaymentDate: p.PaymentDate,
			Notes:       p.Notes,
		})
	}

	return core.TenantHistory{
		Tenant:           tenant,
		Payments:         records,
		MonthlyDueStatus: dues,
	}, nil
}
