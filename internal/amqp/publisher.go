// Package amqp forwards budget events to a RabbitMQ topic exchange.
package amqp

import (
	"context"
	"fmt"
	"time"

	"github.com/dafibh/zerobudget/internal/websocket"
	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// publishTimeout bounds a single publish
const publishTimeout = 5 * time.Second

// Channel is the subset of *amqp091.Channel the publisher needs
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Publisher implements websocket.EventPublisher on an AMQP exchange.
// Events are routed by their type, e.g. "transaction.created".
type Publisher struct {
	conn     *amqp091.Connection
	channel  Channel
	exchange string
}

var _ websocket.EventPublisher = (*Publisher)(nil)

// Dial connects to url and declares exchange as a durable topic exchange
func Dial(url, exchange string) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	p, err := NewPublisher(channel, exchange)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

// NewPublisher declares exchange on an open channel
func NewPublisher(channel Channel, exchange string) (*Publisher, error) {
	err := channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &Publisher{channel: channel, exchange: exchange}, nil
}

// Publish sends event to the exchange. Failures are logged and dropped.
func (p *Publisher) Publish(event websocket.Event) {
	body, err := event.ToJSON()
	if err != nil {
		log.Error().Err(err).Str("event_type", event.Type).Msg("Failed to marshal AMQP event")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange, // exchange
		event.Type, // routing key
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    event.Timestamp,
			Body:         body,
		},
	)
	if err != nil {
		log.Error().Err(err).
			Str("event_type", event.Type).
			Str("exchange", p.exchange).
			Msg("Failed to publish AMQP event")
		return
	}

	log.Debug().
		Str("event_type", event.Type).
		Str("month", event.Month).
		Str("exchange", p.exchange).
		Msg("Published AMQP event")
}

// Close closes the channel and the connection
func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
