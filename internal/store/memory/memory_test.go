package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"rentroll/internal/core"
)

func validTenant(id string) core.Tenant {
	return core.Tenant{
		ID:          id,
		Name:        "Tenant " + id,
		MonthlyRent: decimal.NewFromInt(1000),
		MoveInDate:  core.NewDate(2023, time.January, 1),
	}
}

func validPayment(id, tenantID string) core.Payment {
	return core.Payment{
		ID:          id,
		TenantID:    tenantID,
		Amount:      decimal.NewFromInt(500),
		PaymentDate: core.NewDate(2023, time.January, 5),
	}
}

func TestStore_TenantRoundTrip(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.CreateTenant(ctx, validTenant("t1")); err != nil {
		t.Fatalf("CreateTenant error: %v", err)
	}
	if err := s.CreateTenant(ctx, validTenant("t2")); err != nil {
		t.Fatalf("CreateTenant error: %v", err)
	}

	got, err := s.GetTenant(ctx, "t2")
	if err != nil {
		t.Fatalf("GetTenant error: %v", err)
	}
	if got.ID != "t2" {
		t.Errorf("GetTenant id = %s, want t2", got.ID)
	}

	tenants, err := s.ListTenants(ctx)
	if err != nil {
		t.Fatalf("ListTenants error: %v", err)
	}
	// Insertion order is preserved.
	if len(tenants) != 2 || tenants[0].ID != "t1" || tenants[1].ID != "t2" {
		t.Errorf("ListTenants = %v, want [t1 t2]", tenants)
	}
}

func TestStore_GetTenant_NotFound(t *testing.T) {
	s := New()

	_, err := s.GetTenant(context.Background(), "missing")
	if !errors.Is(err, core.ErrTenantNotFound) {
		t.Fatalf("GetTenant error = %v, want ErrTenantNotFound", err)
	}
}

func TestStore_CreateTenant_RejectsInvalid(t *testing.T) {
	s := New()
	ctx := context.Background()

	invalid := validTenant("t1")
	invalid.MonthlyRent = decimal.Zero

	if err := s.CreateTenant(ctx, invalid); err == nil {
		t.Fatal("CreateTenant should reject a tenant with zero rent")
	}

	tenants, err := s.ListTenants(ctx)
	if err != nil {
		t.Fatalf("ListTenants error: %v", err)
	}
	if len(tenants) != 0 {
		t.Errorf("ListTenants = %v, want empty after a rejected create", tenants)
	}
}

func TestStore_PaymentFiltering(t *testing.T) {
	s := New()
	ctx := context.Background()

	for i, tenantID := range []string{"t1", "t2", "t1"} {
		p := validPayment(fmt.Sprintf("p%d", i), tenantID)
		if err := s.CreatePayment(ctx, p); err != nil {
			t.Fatalf("CreatePayment error: %v", err)
		}
	}

	all, err := s.ListPayments(ctx)
	if err != nil {
		t.Fatalf("ListPayments error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("ListPayments length = %d, want 3", len(all))
	}

	mine, err := s.ListTenantPayments(ctx, "t1")
	if err != nil {
		t.Fatalf("ListTenantPayments error: %v", err)
	}
	if len(mine) != 2 || mine[0].ID != "p0" || mine[1].ID != "p2" {
		t.Errorf("ListTenantPayments = %v, want [p0 p2]", mine)
	}
}

func TestStore_ConcurrentWrites(t *testing.T) {
	s := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = s.CreateTenant(ctx, validTenant(fmt.Sprintf("t%d", n)))
			_ = s.CreatePayment(ctx, validPayment(fmt.Sprintf("p%d", n), fmt.Sprintf("t%d", n)))
		}(i)
	}
	wg.Wait()

	tenants, err := s.ListTenants(ctx)
	if err != nil {
		t.Fatalf("ListTenants error: %v", err)
	}
	if len(tenants) != 50 {
		t.Errorf("tenants = %d, want 50", len(tenants))
	}
	payments, err := s.ListPayments(ctx)
	if err != nil {
		t.Fatalf("ListPayments error: %v", err)
	}
	if len(payments) != 50 {
		t.Errorf("payments = %d, want 50", len(payments))
	}
}
