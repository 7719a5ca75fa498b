package commands

import (
	"errors"
	"strings"

	"optiroute/internal/core/domain/model/kernel"
	"optiroute/internal/pkg/errs"
	"optiroute/internal/pkg/guard"
)

var ErrCreateJobCommandIsNotConstructed = errors.New(
	"CreateJobCommand must be created via NewCreateJobCommand constructor",
)

// CreateJobCommand registers an uploaded file as a PENDING job.
//
// Example:
//
//	jobID := kernel.NewUUID()
//	cmd, err := NewCreateJobCommand(jobID, "/data/uploads/"+jobID.String()+".csv")
type CreateJobCommand struct { //nolint:recvcheck //using for validation
	jobID         kernel.UUID
	inputFilePath string

	guard guard.ConstructorGuard
}

func NewCreateJobCommand(jobID kernel.UUID, inputFilePath string) (CreateJobCommand, error) {
	c := CreateJobCommand{guard: guard.NewConstructorGuard()}

	err := errors.Join(
		c.setJobID(jobID),
		c.setInputFilePath(inputFilePath),
	)
	if err != nil {
		return CreateJobCommand{}, err
	}

	return c, nil
}

func (c CreateJobCommand) Validate() error {
	return c.guard.Validate(ErrCreateJobCommandIsNotConstructed)
}

func (c CreateJobCommand) JobID() kernel.UUID {
	return c.jobID
}

func (c CreateJobCommand) InputFilePath() string {
	return c.inputFilePath
}

func (c *CreateJobCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}
	c.jobID = jobID
	return nil
}

func (c *CreateJobCommand) setInputFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return errs.NewValueIsRequiredError("inputFilePath")
	}
	c.inputFilePath = path
	return nil
}
