// Package worker processes payment events in the background.
package worker

import (
	"context"

	"rentroll/internal/events"
	applog "rentroll/internal/log"
	"rentroll/internal/mail"
	"rentroll/internal/metrics"
)

// ReceiptWorker turns payment-recorded messages into receipt emails. When no
// mail sender is configured, or a tenant has no contact email, the receipt is
// logged instead of sent.
type ReceiptWorker struct {
	events *events.Client
	sender *mail.Sender
	logger *applog.Logger
}

func NewReceiptWorker(ev *events.Client, sender *mail.Sender, logger *applog.Logger) *ReceiptWorker {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &ReceiptWorker{
		events: ev,
		sender: sender,
		logger: logger.WithComponent(applog.ComponentWorker),
	}
}

// Run consumes payment-recorded messages until ctx is cancelled.
func (w *ReceiptWorker) Run(ctx context.Context) error {
	return w.events.ConsumePaymentRecorded(ctx, func(msg *events.PaymentRecordedMessage) error {
		return w.handle(ctx, msg)
	})
}

func (w *ReceiptWorker) handle(ctx context.Context, msg *events.PaymentRecordedMessage) error {
	if w.sender == nil || msg.ContactEmail == "" {
		w.logger.InfoContext(ctx, "Receipt logged, no email sent",
			applog.FieldPaymentID, msg.PaymentID,
			applog.FieldTenantID, msg.TenantID,
			applog.FieldAmount, msg.Amount.StringFixed(2))
		return nil
	}

	if err := w.sender.SendPaymentReceipt(msg.ContactEmail, msg.TenantName, msg.Amount, msg.PaymentDate, msg.Notes); err != nil {
		return err
	}

	metrics.ReceiptsSent.Inc()
	w.logger.InfoContext(ctx, "Receipt email sent",
		applog.FieldPaymentID, msg.PaymentID,
		applog.FieldTenantID, msg.TenantID)
	return nil
}
