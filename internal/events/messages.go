package events

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRecordedMessage announces a recorded payment on the queue. It is
// self-contained; the receipt worker needs no database access to act on it.
type PaymentRecordedMessage struct {
	PaymentID    string          `json:"payment_id"`
	TenantID     string          `json:"tenant_id"`
	TenantName   string          `json:"tenant_name"`
	ContactEmail string          `json:"contact_email,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	PaymentDate  string          `json:"payment_date"` // "YYYY-MM-DD"
	Notes        string          `json:"notes,omitempty"`
	Timestamp    time.Time       `json:"timestamp"`
}

// ToJSON converts the message to JSON bytes.
func (m *PaymentRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// PaymentRecordedMessageFromJSON creates a message from JSON bytes.
func PaymentRecordedMessageFromJSON(data []byte) (*PaymentRecordedMessage, error) {
	var msg PaymentRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
