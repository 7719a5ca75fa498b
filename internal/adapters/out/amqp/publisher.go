// Package amqp publishes job ids to the RabbitMQ job queue.
package amqp

import (
	"context"
	"fmt"
	"time"

	"optiroute/internal/core/domain/model/kernel"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel is the part of *amqp.Channel the publisher needs.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Publisher sends one persistent text/plain message per job, its body being
// the job id, through the default exchange.
type Publisher struct {
	channel Channel
	queue   string
}

// NewPublisher declares the durable queue so that messages published before
// any worker starts are kept.
func NewPublisher(channel Channel, queue string) (*Publisher, error) {
	if _, err := channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}
	return &Publisher{channel: channel, queue: queue}, nil
}

func (p *Publisher) Publish(ctx context.Context, jobID kernel.UUID) error {
	return p.channel.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "text/plain",
		DeliveryMode: amqp.Persistent,
		MessageId:    jobID.String(),
		Timestamp:    time.Now().UTC(),
		Body:         []byte(jobID.String()),
	})
}
