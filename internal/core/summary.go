package core

import "github.com/shopspring/decimal"

// MonthlyDueStatus is one derived ledger entry: what one tenant owed, paid
// and still owes for a single calendar month. It is computed on demand and
// never stored.
type MonthlyDueStatus struct {
	Month         string          `json:"month"` // "YYYY-MM"
	ExpectedRent  decimal.Decimal `json:"expected_rent"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	PendingAmount decimal.Decimal `json:"pending_amount"`
	IsPaidInFull  bool            `json:"is_paid_in_full"`
}

// DashboardSummary is the current-month snapshot across all tenants.
type DashboardSummary struct {
	TotalExpectedRentCurrentMonth decimal.Decimal `json:"total_expected_rent_current_month"`
	TotalCollectedCurrentMonth    decimal.Decimal `json:"total_collected_current_month"`
	TotalPendingCurrentMonth      decimal.Decimal `json:"total_pending_current_month"`
	TotalTenants                  int             `json:"total_tenants"`
}

// PaymentRecord is the view of a payment inside a tenant history response.
type PaymentRecord struct {
	PaymentID   string          `json:"payment_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate Date            `json:"payment_date"`
	Notes       string          `json:"notes,omitempty"`
}

// TenantHistory bundles a tenant with its payments (newest first) and the
// full monthly due ledger (oldest first).
type TenantHistory struct {
	Tenant           Tenant             `json:"tenant"`
	Payments         []PaymentRecord    `json:"payments"`
	MonthlyDueStatus []MonthlyDueStatus `json:"monthly_due_status"`
}
