package commands

import (
	"errors"

	"optiroute/internal/core/domain/model/kernel"
	"optiroute/internal/pkg/guard"
)

var ErrProcessJobCommandIsNotConstructed = errors.New(
	"ProcessJobCommand must be created via NewProcessJobCommand constructor",
)

// ProcessJobCommand asks the worker to run the pipeline for one queued job.
//
// Example:
//
//	id, err := kernel.UUIDFromString(string(delivery.Body))
//	if err != nil {
//	    return err // malformed message, never reaches the handler
//	}
//	cmd, _ := NewProcessJobCommand(id)
//	err = handler.Handle(ctx, cmd)
type ProcessJobCommand struct { //nolint:recvcheck //using for validation
	jobID kernel.UUID

	guard guard.ConstructorGuard
}

func NewProcessJobCommand(jobID kernel.UUID) (ProcessJobCommand, error) {
	if err := jobID.Validate(); err != nil {
		return ProcessJobCommand{}, err
	}

	return ProcessJobCommand{
		jobID: jobID,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c ProcessJobCommand) Validate() error {
	return c.guard.Validate(ErrProcessJobCommandIsNotConstructed)
}

func (c ProcessJobCommand) JobID() kernel.UUID {
	return c.jobID
}
