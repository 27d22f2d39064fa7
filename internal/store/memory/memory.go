// Package memory provides the default in-memory store. Both collections are
// guarded by a single mutex so concurrent appends cannot interleave; readers
// always receive copies.
package memory

import (
	"context"
	"sync"

	"rentroll/internal/core"
)

type Store struct {
	mu       sync.RWMutex
	tenants  []core.Tenant
	payments []core.Payment
}

func New() *Store {
	return &Store{}
}

func (s *Store) CreateTenant(_ context.Context, t core.Tenant) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tenants = append(s.tenants, t)
	return nil
}

func (s *Store) ListTenants(_ context.Context) ([]core.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Tenant, len(s.tenants))
	copy(out, s.tenants)
	return out, nil
}

func (s *Store) GetTenant(_ context.Context, id string) (core.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tenants {
		if t.ID == id {
			return t, nil
		}
	}
	return core.Tenant{}, core.ErrTenantNotFound
}

func (s *Store) CreatePayment(_ context.Context, p core.Payment) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments = append(s.payments, p)
	return nil
}

func (s *Store) ListPayments(_ context.Context) ([]core.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Payment, len(s.payments))
	copy(out, s.payments)
	return out, nil
}

func (s *Store) ListTenantPayments(_ context.Context, tenantID string) ([]core.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Payment
	for _, p := range s.payments {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	return out, nil
}
