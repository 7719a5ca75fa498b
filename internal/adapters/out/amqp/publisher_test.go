package amqp_test

import (
	"context"
	"errors"
	"testing"

	publisher "optiroute/internal/adapters/out/amqp"
	"optiroute/internal/core/domain/model/kernel"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockChannel struct{ mock.Mock }

func (m *MockChannel) QueueDeclare(
	name string,
	durable, autoDelete, exclusive, noWait bool,
	args amqp.Table,
) (amqp.Queue, error) {
	called := m.Called(name, durable, autoDelete, exclusive, noWait, args)
	return amqp.Queue{Name: name}, called.Error(0)
}

func (m *MockChannel) PublishWithContext(
	ctx context.Context,
	exchange, key string,
	mandatory, immediate bool,
	msg amqp.Publishing,
) error {
	args := m.Called(ctx, exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

func TestNewPublisher_DeclaresDurableQueue(t *testing.T) {
	ch := new(MockChannel)
	ch.On("QueueDeclare", "job_queue", true, false, false, false, amqp.Table(nil)).Return(nil).Once()

	_, err := publisher.NewPublisher(ch, "job_queue")
	require.NoError(t, err)
	ch.AssertExpectations(t)
}

func TestNewPublisher_DeclareError(t *testing.T) {
	ch := new(MockChannel)
	ch.On("QueueDeclare", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("channel closed")).Once()

	_, err := publisher.NewPublisher(ch, "job_queue")
	require.Error(t, err)
}

func TestPublisher_Publish(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()

	ch := new(MockChannel)
	ch.On("QueueDeclare", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Once()

	var sent amqp.Publishing
	ch.On("PublishWithContext", ctx, "", "job_queue", false, false, mock.AnythingOfType("amqp091.Publishing")).
		Run(func(args mock.Arguments) { sent = args.Get(5).(amqp.Publishing) }).
		Return(nil).Once()

	p, err := publisher.NewPublisher(ch, "job_queue")
	require.NoError(t, err)
	require.NoError(t, p.Publish(ctx, id))

	assert.Equal(t, id.String(), string(sent.Body))
	assert.Equal(t, "text/plain", sent.ContentType)
	assert.Equal(t, amqp.Persistent, sent.DeliveryMode)
	ch.AssertExpectations(t)
}

func TestPublisher_Publish_Error(t *testing.T) {
	ch := new(MockChannel)
	ch.On("QueueDeclare", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Once()
	publishErr := errors.New("connection reset")
	ch.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(publishErr).Once()

	p, err := publisher.NewPublisher(ch, "job_queue")
	require.NoError(t, err)
	require.ErrorIs(t, p.Publish(t.Context(), kernel.NewUUID()), publishErr)
}
