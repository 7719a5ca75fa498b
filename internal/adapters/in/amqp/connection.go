// Package amqp feeds job ids from a RabbitMQ queue into the job processor.
package amqp

import (
	"context"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const DefaultRetryInterval = 2 * time.Second

// Connect dials url until it succeeds or ctx is done, waiting retryInterval
// between attempts.
func Connect(ctx context.Context, url string, retryInterval time.Duration, logger *slog.Logger) (*amqp.Connection, error) {
	if retryInterval <= 0 {
		retryInterval = DefaultRetryInterval
	}

	for attempt := 1; ; attempt++ {
		conn, err := amqp.Dial(url)
		if err == nil {
			logger.InfoContext(ctx, "Connected to RabbitMQ", "attempt", attempt)
			return conn, nil
		}

		logger.WarnContext(ctx, "RabbitMQ unavailable, retrying",
			"attempt", attempt, "retry_in", retryInterval.String(), "error", err)

		timer := time.NewTimer(retryInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}
