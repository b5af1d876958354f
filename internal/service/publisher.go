package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/cinema-ticketing/internal/queue"
)

// EventPublisher delivers domain events to downstream consumers.
type EventPublisher interface {
	PublishTicketPurchased(ctx context.Context, ev queue.TicketPurchasedEvent) error
}

// AMQPPublisher publishes to RabbitMQ.  A connection is dialed per event.
type AMQPPublisher struct {
	URL string
}

// PublishTicketPurchased sends ev to the durable ticket.purchased queue as a
// persistent JSON message.
func (p AMQPPublisher) PublishTicketPurchased(ctx context.Context, ev queue.TicketPurchasedEvent) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		queue.TicketQueue, // name
		true,              // durable
		false,             // autoDelete
		false,             // exclusive
		false,             // noWait
		nil,               // args
	); err != nil {
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return ch.PublishWithContext(ctx,
		"",                // default exchange
		queue.TicketQueue, // routing key = queue name
		false,             // mandatory
		false,             // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		})
}

// NopPublisher drops every event.  Used when the queue is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishTicketPurchased(context.Context, queue.TicketPurchasedEvent) error {
	return nil
}
