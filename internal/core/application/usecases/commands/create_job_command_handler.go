package commands

import (
	"context"
	"fmt"
	"time"

	"optiroute/internal/core/domain/model/job"
	"optiroute/internal/core/ports"
)

// CreateJobCommandHandler stores a new PENDING job and queues its id.
// The job is committed before it is published so a worker never receives
// an id it cannot load.
type CreateJobCommandHandler struct {
	uowFactory JobUoWFactory
	publisher  ports.JobPublisher
	now        func() time.Time
}

func NewCreateJobCommandHandler(uowFactory JobUoWFactory, publisher ports.JobPublisher) CreateJobCommandHandler {
	return CreateJobCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		now:        time.Now,
	}
}

func (h CreateJobCommandHandler) Handle(ctx context.Context, cmd CreateJobCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := job.NewJob(cmd.JobID(), cmd.InputFilePath(), h.now().UTC())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.JobRepository().Add(ctx, aggregate); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}

	if err = h.publisher.Publish(ctx, aggregate.ID()); err != nil {
		return fmt.Errorf("publish job %s: %w", aggregate.ID(), err)
	}

	return nil
}
