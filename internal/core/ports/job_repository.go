package ports

import (
	"context"

	"optiroute/internal/core/domain/model/job"
	"optiroute/internal/core/domain/model/kernel"
)

type JobRepository interface {
	// Add persists a new job. The job must be valid and not exist yet.
	Add(ctx context.Context, aggregate *job.Job) error

	// Update writes the status and result of an existing job.
	// Returns gorm.ErrRecordNotFound when no row matches the job id.
	Update(ctx context.Context, aggregate *job.Job) error

	// Get loads the current row of a job.
	// Returns errs.ObjectNotFoundError when the id is unknown.
	Get(ctx context.Context, id kernel.UUID) (*job.Job, error)
}
