package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"rentroll/internal/cli"
	"rentroll/internal/config"
	"rentroll/internal/events"
	applog "rentroll/internal/log"
	"rentroll/internal/mail"
	"rentroll/internal/worker"
)

func main() {
	cli.LoadEnvFile()

	cfg := config.Load()
	logger := cli.SetupLogger(cfg.LogLevel)
	cli.ValidateConfigOrExit(cfg, logger)

	logger.Info("Starting rentroll-worker")

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the receipt worker")
		os.Exit(1)
	}

	eventsClient, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
		os.Exit(1)
	}
	defer eventsClient.Close()

	// Without SMTP configuration the worker still drains the queue and logs
	// each receipt.
	var sender *mail.Sender
	if cfg.SMTPHost != "" {
		sender = mail.NewSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SenderEmail)
		logger.Info("SMTP sender initialized", "host", cfg.SMTPHost, "from", cfg.SenderEmail)
	} else {
		logger.Info("SMTP disabled, receipts will be logged only")
	}

	receiptWorker := worker.NewReceiptWorker(eventsClient, sender, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := receiptWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker error", applog.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Worker stopped gracefully")
}
