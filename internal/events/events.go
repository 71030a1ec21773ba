// Package events publishes social notification events to interested
// consumers outside the API process.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/yatra-app/yatra/internal/domain"
)

// Publisher delivers a persisted notification to the event stream.
type Publisher interface {
	Publish(ctx context.Context, n domain.Notification) error
}

// Nop discards every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, domain.Notification) error { return nil }

// Event is the JSON body of a published notification.
type Event struct {
	ID          uuid.UUID               `json:"id"`
	Type        domain.NotificationType `json:"type"`
	RecipientID uuid.UUID               `json:"recipientId"`
	ActorID     uuid.UUID               `json:"actorId"`
	TripID      *uuid.UUID              `json:"tripId,omitempty"`
	CreatedAt   time.Time               `json:"createdAt"`
}

// NewEvent converts a notification into its wire form.
func NewEvent(n domain.Notification) Event {
	return Event{
		ID:          n.ID,
		Type:        n.Type,
		RecipientID: n.UserID,
		ActorID:     n.ActorID,
		TripID:      n.TripID,
		CreatedAt:   n.CreatedAt,
	}
}

// RoutingKey is the topic a notification of type t is published under,
// e.g. "social.like".
func RoutingKey(t domain.NotificationType) string {
	return "social." + string(t)
}

// AMQPPublisher publishes events to a durable topic exchange.
type AMQPPublisher struct {
	conn     *amqp.Connection
	exchange string

	mu sync.Mutex
	ch *amqp.Channel
}

// NewAMQPPublisher dials url and declares exchange as a durable topic exchange.
func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("events.NewAMQPPublisher: dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("events.NewAMQPPublisher: open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("events.NewAMQPPublisher: declare exchange: %w", err)
	}
	return &AMQPPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// Publish sends n as a persistent JSON message.
func (p *AMQPPublisher) Publish(ctx context.Context, n domain.Notification) error {
	body, err := json.Marshal(NewEvent(n))
	if err != nil {
		return fmt.Errorf("events.AMQPPublisher.Publish: encode: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.ch.PublishWithContext(ctx, p.exchange, RoutingKey(n.Type), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    n.ID.String(),
		Timestamp:    n.CreatedAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("events.AMQPPublisher.Publish: %w", err)
	}
	return nil
}

// Close shuts the channel and connection.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
