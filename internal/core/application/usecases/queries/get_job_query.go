// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries bypass the aggregate and read the jobs table directly.
package queries

import (
	"encoding/json"
	"errors"
	"time"

	"optiroute/internal/core/domain/model/kernel"
	"optiroute/internal/pkg/guard"
)

var ErrGetJobQueryIsNotConstructed = errors.New(
	"GetJobQuery must be created via NewGetJobQuery constructor",
)

// GetJobQuery reads the current status and result of one job.
//
// Example:
//
//	query, err := NewGetJobQuery(jobID)
//	if err != nil {
//	    return err
//	}
//	resp, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown job
//	}
type GetJobQuery struct {
	jobID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetJobQuery(jobID kernel.UUID) (GetJobQuery, error) {
	if err := jobID.Validate(); err != nil {
		return GetJobQuery{}, err
	}

	return GetJobQuery{
		jobID: jobID,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q GetJobQuery) Validate() error {
	return q.guard.Validate(ErrGetJobQueryIsNotConstructed)
}

func (q GetJobQuery) JobID() kernel.UUID {
	return q.jobID
}

// GetJobQueryResponse is the read model of a job. Result is nil until the job
// reaches a terminal status.
type GetJobQueryResponse struct {
	ID            kernel.UUID
	Status        string
	InputFilePath string
	CreatedAt     time.Time
	Result        json.RawMessage
}
