package events

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"expensetracker/internal/logger"
)

const (
	publishTimeout = 5 * time.Second
	dialAttempts   = 5
)

// AMQPPublisher publishes events to a durable direct exchange. The routing
// key is the lower-cased intent name, e.g. "add_transaction".
type AMQPPublisher struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
	log      *zap.SugaredLogger
}

// NewAMQPPublisher connects to url, retrying with exponential backoff, and
// declares exchange.
func NewAMQPPublisher(ctx context.Context, url, exchange string) (*AMQPPublisher, error) {
	log := logger.Named("events")

	var conn *amqp091.Connection
	dial := func() error {
		c, err := amqp091.Dial(url)
		if err != nil {
			log.Warnw("AMQP dial failed", "error", err)
			return err
		}
		conn = c
		return nil
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), dialAttempts), ctx)
	if err := backoff.Retry(dial, policy); err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	p := &AMQPPublisher{conn: conn, channel: channel, exchange: exchange, log: log}

	err = channel.ExchangeDeclare(
		exchange, // name
		"direct", // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return p, nil
}

// RoutingKey returns the routing key of e.
func RoutingKey(e Event) string {
	return strings.ToLower(e.Intent)
}

// Publish sends e as a persistent message.
func (p *AMQPPublisher) Publish(ctx context.Context, e Event) error {
	body, err := e.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,    // exchange
		RoutingKey(e), // routing key
		false,         // mandatory
		false,         // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    e.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	p.log.Debugw("published state change", "intent", e.Intent, "version", e.Version, "exchange", p.exchange)
	return nil
}

// Close closes the channel and the connection.
func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// LogPublisher writes events to the log. It stands in for the broker when
// none is configured.
type LogPublisher struct {
	log *zap.SugaredLogger
}

// NewLogPublisher creates a LogPublisher.
func NewLogPublisher() *LogPublisher {
	return &LogPublisher{log: logger.Named("events")}
}

// Publish logs e at debug level.
func (p *LogPublisher) Publish(_ context.Context, e Event) error {
	p.log.Debugw("state change", "intent", e.Intent, "version", e.Version, "user_id", e.UserID)
	return nil
}

// Close is a no-op.
func (p *LogPublisher) Close() error { return nil }
