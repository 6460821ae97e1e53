package rabbitmq

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/date-app-backend/pkg/mailer"
)

// Outcome is what the consumer does with a delivery.
type Outcome int

const (
	Ack Outcome = iota
	Drop
	Requeue
)

// Handle decodes one message body and delivers it. It never blocks longer
// than sendTimeout.
func Handle(ctx context.Context, sender mailer.Sender, body []byte, sendTimeout time.Duration, logger *logrus.Logger) Outcome {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		logger.WithError(err).Warn("dropping undecodable notification")
		return Drop
	}
	c, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	if err := mailer.Deliver(c, sender, job); err != nil {
		entry := logger.WithError(err).WithField("template", job.Template)
		if errors.Is(err, mailer.ErrPermanent) {
			entry.Warn("dropping notification")
			return Drop
		}
		entry.Warn("notification send failed, requeueing")
		return Requeue
	}
	return Ack
}

// Consume processes deliveries until msgs is closed or ctx ends.
func Consume(ctx context.Context, msgs <-chan amqp.Delivery, sender mailer.Sender, logger *logrus.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			switch Handle(ctx, sender, msg.Body, 15*time.Second, logger) {
			case Ack:
				_ = msg.Ack(false)
			case Drop:
				_ = msg.Nack(false, false)
			case Requeue:
				_ = msg.Nack(false, true)
			}
		}
	}
}
