// Package queue publishes registration status changes to RabbitMQ.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"efgportal/internal/domain"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StatusRoutingKey routes registration status change messages.
const StatusRoutingKey = "registration.status"

// channel is the subset of *amqp.Channel used by Client.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Qos(prefetchCount, prefetchSize int, global bool) error
	Close() error
}

// Client owns one AMQP connection and channel bound to a single exchange and queue.
type Client struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
	queue    string
	logger   *slog.Logger
}

// Dial connects to url and declares a durable direct exchange with queue bound on StatusRoutingKey.
func Dial(url, exchange, queue string, logger *slog.Logger) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := declare(ch, exchange, queue); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	logger.Info("rabbitmq initialized", "exchange", exchange, "queue", queue)
	return &Client{conn: conn, ch: ch, exchange: exchange, queue: queue, logger: logger}, nil
}

func declare(ch *amqp.Channel, exchange, queue string) error {
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeDirect, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	if err := ch.QueueBind(queue, StatusRoutingKey, exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

// Close closes the channel and connection.
func (c *Client) Close() {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
	c.logger.Info("rabbitmq connection closed")
}

// Notify implements domain.RegistrationNotifier by publishing change as a persistent JSON message.
func (c *Client) Notify(ctx context.Context, change domain.RegistrationStatusChanged) error {
	body, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("encode status change: %w", err)
	}
	err = c.ch.PublishWithContext(ctx, c.exchange, StatusRoutingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    change.RegistrationID + ":" + string(change.To),
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish status change: %w", err)
	}
	c.logger.DebugContext(ctx, "status change published", "registration_id", change.RegistrationID, "to", change.To)
	return nil
}

// Consume starts a manual-ack consumer on the queue with the given prefetch.
func (c *Client) Consume(consumer string, prefetch int) (<-chan amqp.Delivery, error) {
	if prefetch > 0 {
		if err := c.ch.Qos(prefetch, 0, false); err != nil {
			return nil, fmt.Errorf("set qos: %w", err)
		}
	}
	deliveries, err := c.ch.Consume(c.queue, consumer, false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("start consuming: %w", err)
	}
	c.logger.Info("started consuming", "queue", c.queue)
	return deliveries, nil
}
