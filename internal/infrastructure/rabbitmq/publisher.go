package rabbitmq

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/oksasatya/date-app-backend/pkg/mailer"
)

// Publisher wraps an AMQP channel and a durable queue for notification jobs.
type Publisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	Queue string
}

// Dial connects and declares queue as durable.
func Dial(url, queue string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	_, err = ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, err
	}
	return conn, ch, nil
}

func NewPublisher(url, queue string) (*Publisher, error) {
	conn, ch, err := Dial(url, queue)
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: conn, ch: ch, Queue: queue}, nil
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// Enqueue publishes job as a persistent JSON message on the queue.
func (p *Publisher) Enqueue(ctx context.Context, job mailer.EmailJob) error {
	b, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx,
		"",      // default exchange
		p.Queue, // routing key = queue
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         b,
		},
	)
}
