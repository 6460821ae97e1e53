package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/oksasatya/date-app-backend/config"
	"github.com/oksasatya/date-app-backend/internal/infrastructure/rabbitmq"
	"github.com/oksasatya/date-app-backend/pkg/helpers"
	"github.com/oksasatya/date-app-backend/pkg/mailer"
)

// notify_worker consumes notification jobs queued by the API and sends them
// through Mailgun.
func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName+"-notify", cfg.Env)

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; notify worker disabled")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQNotifyQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		logger.Fatal("Mailgun not configured")
	}

	conn, ch, err := rabbitmq.Dial(cfg.RabbitMQURL, cfg.RabbitMQNotifyQueue)
	if err != nil {
		logger.WithError(err).Fatal("amqp dial")
	}
	defer func() {
		_ = ch.Close()
		_ = conn.Close()
	}()

	// fair dispatch across workers
	if err := ch.Qos(16, 0, false); err != nil {
		logger.WithError(err).Fatal("qos")
	}
	msgs, err := ch.Consume(cfg.RabbitMQNotifyQueue, "", false, false, false, false, nil)
	if err != nil {
		logger.WithError(err).Fatal("consume")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sender := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	logger.WithField("queue", cfg.RabbitMQNotifyQueue).Info("notify worker listening")
	rabbitmq.Consume(ctx, msgs, sender, logger)
	logger.Info("notify worker stopped")
}
