// Package services implements the ledger's business logic: the monthly dues
// calculator and the aggregations and write paths built on top of it.
package services

import (
	"time"

	"github.com/shopspring/decimal"

	"rentroll/internal/core"
)

// ComputeMonthlyDues derives the per-month due ledger for one tenant: one
// entry per calendar month from the move-in month through the month
// containing endDate, in ascending order.
//
// The function is pure. It depends only on the tenant, the payment set and
// endDate, so identical inputs always yield an identical ledger. Payments
// belonging to other tenants are ignored, as are payments outside the month
// being evaluated. An endDate before the move-in month yields an empty
// ledger, never an error.
func ComputeMonthlyDues(tenant core.Tenant, payments []core.Payment, endDate time.Time) []core.MonthlyDueStatus {
	if tenant.MoveInDate.IsZero() {
		return nil
	}

	// The move-in day of month is ignored: a tenant owes full rent for the
	// month they move in, with no pro-rating.
	month := core.YearMonthOf(tenant.MoveInDate.Time)
	end := core.YearMonthOf(endDate)
	if month.After(end) {
		return nil
	}

	var ledger []core.MonthlyDueStatus
	for ; !month.After(end); month = month.Next() {
		paid := decimal.Zero
		for _, p := range payments {
			if p.TenantID == tenant.ID && month.Contains(p.PaymentDate) {
				paid = paid.Add(p.Amount)
			}
		}
		// Paid-in-full tolerates sub-cent residue only; a tenant a full cent
		// short is still pending. Judged on the raw difference so an overpaid
		// month still reads as settled after pending is clamped at zero.
		pending := tenant.MonthlyRent.Sub(paid)
		ledger = append(ledger, core.MonthlyDueStatus{
			Month:         month.String(),
			ExpectedRent:  tenant.MonthlyRent,
			PaidAmount:    paid,
			PendingAmount: core.ClampNonNegative(pending),
			IsPaidInFull:  pending.LessThan(core.PaidInFullTolerance),
		})
	}
	return ledger
}
