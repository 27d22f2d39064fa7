// Package mail sends payment receipt emails via SMTP.
package mail

import (
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/shopspring/decimal"
)

// Sender handles sending emails via SMTP
type Sender struct {
	host     string
	port     string
	username string
	password string
	from     string
}

// NewSender creates a new email sender
func NewSender(host, port, username, password, from string) *Sender {
	return &Sender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// SendPaymentReceipt sends a receipt for a recorded rent payment.
func (s *Sender) SendPaymentReceipt(to, tenantName string, amount decimal.Decimal, paymentDate, notes string) error {
	e := email.NewEmail()
	e.From = s.from
	e.To = []string{to}
	e.Subject = "Rent Payment Receipt"

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"We have received your rent payment of %s on %s.\n",
		tenantName, amount.StringFixed(2), paymentDate,
	)
	if notes != "" {
		body += fmt.Sprintf("Notes: %s\n", notes)
	}
	body += "\nThank you,\nRentroll"
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	if err := e.Send(addr, auth); err != nil {
		return fmt.Errorf("send receipt email: %w", err)
	}

	slog.Info("Receipt email sent", "to", to, "amount", amount.StringFixed(2))
	return nil
}
