// Package storage implements the storage ports on SQLite. The memory store
// remains the default backend; this one survives restarts and can be swapped
// in via DATA_BACKEND=sqlite without touching the calculator or aggregator.
package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/shopspring/decimal"

	"rentroll/internal/core"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var schemaFS embed.FS

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := applySchema(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// applySchema brings the tenants and payments tables up to date from the
// embedded migration files. Migrations run on their own connection; closing
// the migrate instance closes the database handle it was given.
func applySchema(dbPath string) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open schema connection: %w", err)
	}

	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		db.Close()
		return fmt.Errorf("wrap sqlite connection: %w", err)
	}

	src, err := iofs.New(schemaFS, "migrations")
	if err != nil {
		db.Close()
		return fmt.Errorf("read embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		db.Close()
		return fmt.Errorf("prepare migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CreateTenant implements store.TenantStore
func (r *SQLiteRepository) CreateTenant(ctx context.Context, t core.Tenant) error {
	if err := t.Validate(); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tenants (id, name, monthly_rent, contact_email, move_in_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.MonthlyRent.String(), t.ContactEmail,
		t.MoveInDate.String(), t.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert tenant: %w", err)
	}

	slog.InfoContext(ctx, "Tenant saved to SQLite",
		"tenant_id", t.ID,
		"name", t.Name,
		"monthly_rent", t.MonthlyRent.String())

	return nil
}

// ListTenants implements store.TenantStore
func (r *SQLiteRepository) ListTenants(ctx context.Context) ([]core.Tenant, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, monthly_rent, contact_email, move_in_date, created_at
		 FROM tenants ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query tenants: %w", err)
	}
	defer rows.Close()

	var tenants []core.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tenants: %w", err)
	}
	return tenants, nil
}

// GetTenant implements store.TenantStore
func (r *SQLiteRepository) GetTenant(ctx context.Context, id string) (core.Tenant, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, monthly_rent, contact_email, move_in_date, created_at
		 FROM tenants WHERE id = ?`, id)

	t, err := scanTenant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Tenant{}, core.ErrTenantNotFound
	}
	if err != nil {
		return core.Tenant{}, err
	}
	return t, nil
}

// CreatePayment implements store.PaymentStore
func (r *SQLiteRepository) CreatePayment(ctx context.Context, p core.Payment) error {
	if err := p.Validate(); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO payments (id, tenant_id, amount, payment_date, notes, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.TenantID, p.Amount.String(), p.PaymentDate.String(),
		p.Notes, p.RecordedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}

	slog.InfoContext(ctx, "Payment saved to SQLite",
		"payment_id", p.ID,
		"tenant_id", p.TenantID,
		"amount", p.Amount.String())

	return nil
}

// ListPayments implements store.PaymentStore
func (r *SQLiteRepository) ListPayments(ctx context.Context) ([]core.Payment, error) {
	return r.queryPayments(ctx,
		`SELECT id, tenant_id, amount, payment_date, notes, recorded_at
		 FROM payments ORDER BY rowid`)
}

// ListTenantPayments implements store.PaymentStore
func (r *SQLiteRepository) ListTenantPayments(ctx context.Context, tenantID string) ([]core.Payment, error) {
	return r.queryPayments(ctx,
		`SELECT id, tenant_id, amount, payment_date, notes, recorded_at
		 FROM payments WHERE tenant_id = ? ORDER BY rowid`, tenantID)
}

func (r *SQLiteRepository) queryPayments(ctx context.Context, query string, args ...any) ([]core.Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	var payments []core.Payment
	for rows.Next() {
		var (
			p          core.Payment
			amount     string
			date       string
			recordedAt string
		)
		if err := rows.Scan(&p.ID, &p.TenantID, &amount, &date, &p.Notes, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		if p.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parse payment amount %q: %w", amount, err)
		}
		if p.PaymentDate, err = core.ParseDate(date); err != nil {
			return nil, fmt.Errorf("parse payment date %q: %w", date, err)
		}
		if p.RecordedAt, err = time.Parse(time.RFC3339Nano, recordedAt); err != nil {
			return nil, fmt.Errorf("parse recorded_at %q: %w", recordedAt, err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payments: %w", err)
	}
	return payments, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTenant(row rowScanner) (core.Tenant, error) {
	var (
		t         core.Tenant
		rent      string
		moveIn    string
		createdAt string
	)
	if err := row.Scan(&t.ID, &t.Name, &rent, &t.ContactEmail, &moveIn, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Tenant{}, err
		}
		return core.Tenant{}, fmt.Errorf("scan tenant: %w", err)
	}

	var err error
	if t.MonthlyRent, err = decimal.NewFromString(rent); err != nil {
		return core.Tenant{}, fmt.Errorf("parse monthly rent %q: %w", rent, err)
	}
	if t.MoveInDate, err = core.ParseDate(moveIn); err != nil {
		return core.Tenant{}, fmt.Errorf("parse move-in date %q: %w", moveIn, err)
	}
	if t.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return core.Tenant{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	return t, nil
}
