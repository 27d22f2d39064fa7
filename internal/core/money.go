// Package core holds the rent-ledger domain model: tenants, payments and the
// derived monthly due statuses. It is pure and performs no I/O.
package core

import "github.com/shopspring/decimal"

// PaidInFullTolerance is the slack allowed when deciding whether a month is
// settled. Residue strictly below one cent counts as paid in full; a tenant
// exactly one cent short is still pending.
var PaidInFullTolerance = decimal.New(1, -2) // 0.01

func init() {
	// Monetary fields are emitted as bare JSON numbers, matching the wire
	// format consumers of the API expect.
	decimal.MarshalJSONWithoutQuotes = true
}

// ClampNonNegative returns d, or zero when d is negative. Overpayment of a
// month is absorbed rather than carried forward as a negative balance.
func ClampNonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
