package events

import (
	"context"
	"encoding/json"
	"fmt"

	"homefinder-listings/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

// channel is the part of *amqp.Channel the publisher needs.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitPublisher publishes JSON events to a durable topic exchange,
// using the event type as routing key.
type RabbitPublisher struct {
	conn     *amqp.Connection
	channel  channel
	exchange string
}

// NewRabbitPublisher dials url, opens a channel and declares the exchange.
func NewRabbitPublisher(url, exchange string) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("events: failed to dial RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("events: failed to open a channel: %w", err)
	}
	p, err := newRabbitPublisher(ch, exchange)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn
	logger.GlobalLogger.Printf("RabbitMQ publisher ready on exchange %s", exchange)
	return p, nil
}

func newRabbitPublisher(ch channel, exchange string) (*RabbitPublisher, error) {
	if exchange == "" {
		return nil, fmt.Errorf("events: exchange name is required")
	}
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("events: failed to declare exchange '%s': %w", exchange, err)
	}
	return &RabbitPublisher{channel: ch, exchange: exchange}, nil
}

func (p *RabbitPublisher) Publish(ctx context.Context, event Event) error {
	if p.conn != nil && p.conn.IsClosed() {
		return fmt.Errorf("events: connection is closed")
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events: failed to encode %s: %w", event.Type, err)
	}
	err = p.channel.PublishWithContext(ctx, p.exchange, event.Type, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Timestamp:    event.OccurredAt,
		Type:         event.Type,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("events: failed to publish %s: %w", event.Type, err)
	}
	return nil
}

func (p *RabbitPublisher) Close() error {
	var firstErr error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			logger.GlobalLogger.Errorf("error closing channel: %v", err)
			firstErr = err
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
