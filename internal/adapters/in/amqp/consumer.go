package amqp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"optiroute/internal/core/application/usecases/commands"
	"optiroute/internal/core/domain/model/kernel"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	DefaultQueue = "job_queue"

	prefetchCount = 1
	consumerTag   = "optiroute-worker"
)

var (
	// ErrMalformedIdentifier is logged for message bodies that are not a job id.
	ErrMalformedIdentifier = errors.New("message body is not a valid job id")

	ErrDeliveriesClosed = errors.New("rabbitmq deliveries channel closed unexpectedly")
)

// Channel is the part of *amqp.Channel the consumer needs.
type Channel interface {
	Qos(prefetchCount, prefetchSize int, global bool) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	ConsumeWithContext(
		ctx context.Context,
		queue, consumer string,
		autoAck, exclusive, noLocal, noWait bool,
		args amqp.Table,
	) (<-chan amqp.Delivery, error)
}

type JobHandler interface {
	Handle(ctx context.Context, cmd commands.ProcessJobCommand) error
}

// Consumer processes one delivery at a time and acknowledges every delivery
// after handling, whatever the outcome. Jobs are never redelivered by the
// consumer itself.
type Consumer struct {
	channel Channel
	queue   string
	handler JobHandler
	logger  *slog.Logger
}

func NewConsumer(channel Channel, queue string, handler JobHandler, logger *slog.Logger) *Consumer {
	if queue == "" {
		queue = DefaultQueue
	}
	return &Consumer{
		channel: channel,
		queue:   queue,
		handler: handler,
		logger:  logger.With("component", "amqp_consumer", "queue", queue),
	}
}

// Run consumes until ctx is done (nil) or the broker closes the delivery
// channel (ErrDeliveriesClosed).
func (c *Consumer) Run(ctx context.Context) error {
	if _, err := c.channel.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", c.queue, err)
	}

	if err := c.channel.Qos(prefetchCount, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}

	deliveries, err := c.channel.ConsumeWithContext(ctx, c.queue, consumerTag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", c.queue, err)
	}

	c.logger.InfoContext(ctx, "Waiting for jobs")
	for {
		select {
		case <-ctx.Done():
			c.logger.InfoContext(ctx, "Consumer stopping")
			return nil
		case d, ok := <-deliveries:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return ErrDeliveriesClosed
			}
			c.HandleDelivery(ctx, d)
		}
	}
}

// HandleDelivery decodes the job id, runs the handler synchronously and acks.
func (c *Consumer) HandleDelivery(ctx context.Context, d amqp.Delivery) {
	defer c.ack(ctx, d)

	body := strings.TrimSpace(string(d.Body))
	id, err := kernel.UUIDFromString(body)
	if err != nil {
		c.logger.WarnContext(ctx, "Dropping message",
			"delivery_tag", d.DeliveryTag, "body", body,
			"error", fmt.Errorf("%w: %w", ErrMalformedIdentifier, err))
		return
	}

	cmd, err := commands.NewProcessJobCommand(id)
	if err != nil {
		c.logger.ErrorContext(ctx, "Invalid process job command", "job_id", body, "error", err)
		return
	}

	c.logger.InfoContext(ctx, "Job received", "job_id", id.String())
	if err = c.handler.Handle(ctx, cmd); err != nil {
		c.logger.ErrorContext(ctx, "Job handling failed", "job_id", id.String(), "error", err)
	}
}

func (c *Consumer) ack(ctx context.Context, d amqp.Delivery) {
	if err := d.Ack(false); err != nil {
		c.logger.ErrorContext(ctx, "Ack failed", "delivery_tag", d.DeliveryTag, "error", err)
	}
}
