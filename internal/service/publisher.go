package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/theater-seating/internal/queue"
)

// EventPublisher delivers reservation events somewhere downstream.
type EventPublisher interface {
	PublishSeatsReserved(ctx context.Context, ev queue.SeatsReservedEvent) error
}

// NopPublisher drops every event. It is used when events are disabled.
type NopPublisher struct{}

// PublishSeatsReserved implements EventPublisher.
func (NopPublisher) PublishSeatsReserved(context.Context, queue.SeatsReservedEvent) error {
	return nil
}

// AMQPPublisher publishes to the durable seats.reserved queue on the
// default exchange. Each publish opens its own connection.
type AMQPPublisher struct {
	URL string
	// DialTimeout caps the TCP connect; zero means publishTimeout.
	DialTimeout time.Duration
}

func (p AMQPPublisher) dial() (*amqp.Connection, error) {
	timeout := p.DialTimeout
	if timeout <= 0 {
		timeout = publishTimeout
	}
	return amqp.DialConfig(p.URL, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(timeout),
	})
}

// PublishSeatsReserved implements EventPublisher. Messages are persistent.
func (p AMQPPublisher) PublishSeatsReserved(ctx context.Context, ev queue.SeatsReservedEvent) error {
	conn, err := p.dial()
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(queue.SeatsReservedQueue, true, false, false, false, nil); err != nil {
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return ch.PublishWithContext(ctx, "", queue.SeatsReservedQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}
