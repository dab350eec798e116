// Package service publishes domain events to RabbitMQ. Publishing is
// best-effort: errors are logged and returned so callers can ignore a
// broker outage without failing the request that triggered the event.
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/dkowalski/wardrobe-api/internal/queue"
)

// ClosetEventPublisher publishes closet.changed events. Handlers depend on
// this interface so tests can stub the broker away.
type ClosetEventPublisher interface {
	PublishClosetChanged(ctx context.Context, event q.ClosetChangedEvent) error
}

// AMQPPublisher is the RabbitMQ-backed ClosetEventPublisher. A connection
// is dialed per publish; mutation volume in a personal wardrobe app does
// not justify connection pooling here.
type AMQPPublisher struct {
	URL string
}

func NewAMQPPublisher() *AMQPPublisher {
	return &AMQPPublisher{URL: q.BrokerURL()}
}

// PublishClosetChanged publishes the event to the "closet.changed" queue.
// Messages are marked persistent so invalidations survive a broker restart.
func (p *AMQPPublisher) PublishClosetChanged(ctx context.Context, event q.ClosetChangedEvent) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive
	// broker restarts.
	if _, err := ch.QueueDeclare(
		"closet.changed", // name
		true,             // durable
		false,            // autoDelete
		false,            // exclusive
		false,            // noWait
		nil,              // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",               // default exchange
		"closet.changed", // routing key = queue name
		false,            // mandatory
		false,            // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}

	return nil
}
