// Package worker consumes registration status messages and delivers them as emails.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"efgportal/internal/domain"

	amqp "github.com/rabbitmq/amqp091-go"
)

const defaultSendTimeout = 15 * time.Second

// NotificationWorker drains a delivery channel and hands each status change to a notifier.
type NotificationWorker struct {
	notifier    domain.RegistrationNotifier
	logger      *slog.Logger
	sendTimeout time.Duration
}

// NewNotificationWorker returns a worker that delivers through notifier, typically the direct email notifier.
func NewNotificationWorker(notifier domain.RegistrationNotifier, logger *slog.Logger) *NotificationWorker {
	return &NotificationWorker{notifier: notifier, logger: logger, sendTimeout: defaultSendTimeout}
}

// Run processes deliveries until ctx is done or the channel closes.
func (w *NotificationWorker) Run(ctx context.Context, deliveries <-chan amqp.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("delivery channel closed")
			}
			w.handle(ctx, d)
		}
	}
}

// handle acks undecodable messages so they are dropped, and nacks failed sends. A message that
// already failed once is dropped instead of requeued.
func (w *NotificationWorker) handle(ctx context.Context, d amqp.Delivery) {
	var change domain.RegistrationStatusChanged
	if err := json.Unmarshal(d.Body, &change); err != nil || change.ProfileID == "" || change.EventID == "" {
		w.logger.WarnContext(ctx, "dropping undecodable status message", "message_id", d.MessageId, "err", err)
		w.ack(ctx, d)
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, w.sendTimeout)
	err := w.notifier.Notify(sendCtx, change)
	cancel()
	if err != nil {
		requeue := !d.Redelivered
		w.logger.WarnContext(ctx, "status notification failed",
			"registration_id", change.RegistrationID, "requeue", requeue, "err", err)
		if nerr := d.Nack(false, requeue); nerr != nil {
			w.logger.ErrorContext(ctx, "nack failed", "err", nerr)
		}
		return
	}
	w.logger.InfoContext(ctx, "status notification sent", "registration_id", change.RegistrationID, "to", change.To)
	w.ack(ctx, d)
}

func (w *NotificationWorker) ack(ctx context.Context, d amqp.Delivery) {
	if err := d.Ack(false); err != nil {
		w.logger.ErrorContext(ctx, "ack failed", "err", err)
	}
}
