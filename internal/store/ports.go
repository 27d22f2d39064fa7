// Package store defines the outbound storage ports the ledger operates
// against. Implementations live in store/memory and storage (SQLite).
package store

import (
	"context"

	"rentroll/internal/core"
)

type (
	// TenantStore persists and resolves tenants.
	TenantStore interface {
		// CreateTenant appends a fully populated tenant.
		CreateTenant(ctx context.Context, t core.Tenant) error
		// ListTenants returns every tenant in insertion order.
		ListTenants(ctx context.Context) ([]core.Tenant, error)
		// GetTenant resolves one tenant by id, or core.ErrTenantNotFound.
		GetTenant(ctx context.Context, id string) (core.Tenant, error)
	}

	// PaymentStore persists and lists payments.
	PaymentStore interface {
		// CreatePayment appends a fully populated payment.
		CreatePayment(ctx context.Context, p core.Payment) error
		// ListPayments returns every payment in insertion order.
		ListPayments(ctx context.Context) ([]core.Payment, error)
		// ListTenantPayments returns one tenant's payments in insertion order.
		ListTenantPayments(ctx context.Context, tenantID string) ([]core.Payment, error)
	}
)
