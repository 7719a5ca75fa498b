package amqp

import (
	"context"
	"log/slog"
	"time"
)

// Listen keeps a consumer session alive: it connects, opens a channel, runs
// a Consumer and starts over after retryInterval when the session breaks.
// It returns once ctx is done.
func Listen(
	ctx context.Context,
	url, queue string,
	handler JobHandler,
	retryInterval time.Duration,
	logger *slog.Logger,
) {
	if retryInterval <= 0 {
		retryInterval = DefaultRetryInterval
	}

	for {
		err := session(ctx, url, queue, handler, retryInterval, logger)
		if ctx.Err() != nil {
			return
		}

		logger.WarnContext(ctx, "Consumer session ended, reconnecting", "retry_in", retryInterval.String(), "error", err)

		timer := time.NewTimer(retryInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

func session(
	ctx context.Context,
	url, queue string,
	handler JobHandler,
	retryInterval time.Duration,
	logger *slog.Logger,
) error {
	conn, err := Connect(ctx, url, retryInterval, logger)
	if err != nil {
		return err
	}
	defer func() {
		_ = conn.Close()
	}()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() {
		_ = ch.Close()
	}()

	return NewConsumer(ch, queue, handler, logger).Run(ctx)
}
