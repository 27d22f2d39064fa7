package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type (
	// Date is a calendar date without a time-of-day component.
	// It marshals to and from JSON as "YYYY-MM-DD".
	Date struct {
		time.Time
	}

	// Tenant is a party owing a fixed monthly rent from its move-in date on.
	// Tenants are append-only: once created they are never mutated or deleted.
	Tenant struct {
		ID           string          `json:"id"`
		Name         string          `json:"name"`
		MonthlyRent  decimal.Decimal `json:"monthly_rent"`
		ContactEmail string          `json:"contact_email,omitempty"`
		MoveInDate   Date            `json:"move_in_date"`
		CreatedAt    time.Time       `json:"created_at"`
	}

	// Payment is a dated amount credited to one tenant. Append-only.
	Payment struct {
		ID          string          `json:"id"`
		TenantID    string          `json:"tenant_id"`
		Amount      decimal.Decimal `json:"amount"`
		PaymentDate Date            `json:"payment_date"`
		Notes       string          `json:"notes,omitempty"`
		RecordedAt  time.Time       `json:"recorded_at"`
	}
)

var (
	ErrTenantNotFound = errors.New("tenant not found")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrInvalidMonth   = errors.New("invalid month")
	ErrInvalidDate    = errors.New("invalid date")
)

// FieldError names a single violated constraint on one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates field-level violations for one request.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a field violation.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// OrNil returns the error when at least one field was rejected, nil otherwise.
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// NewDate creates a Date from year, month, day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses "YYYY-MM-DD".
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (t Tenant) Validate() error {
	verr := &ValidationError{}
	if strings.TrimSpace(t.Name) == "" {
		verr.Add("name", "must not be empty")
	}
	if len(t.Name) > 200 {
		verr.Add("name", "too long (max 200 characters)")
	}
	if !t.MonthlyRent.IsPositive() {
		verr.Add("monthly_rent", "must be greater than 0")
	}
	if t.MoveInDate.IsZero() {
		verr.Add("move_in_date", "must be a valid date (YYYY-MM-DD)")
	}
	return verr.OrNil()
}

func (p Payment) Validate() error {
	verr := &ValidationError{}
	if strings.TrimSpace(p.TenantID) == "" {
		verr.Add("tenant_id", "must not be empty")
	}
	if !p.Amount.IsPositive() {
		verr.Add("amount", "must be greater than 0")
	}
	if p.PaymentDate.IsZero() {
		verr.Add("payment_date", "must be a valid date (YYYY-MM-DD)")
	}
	return verr.OrNil()
}
