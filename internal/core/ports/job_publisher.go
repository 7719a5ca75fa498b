package ports

import (
	"context"

	"optiroute/internal/core/domain/model/kernel"
)

// JobPublisher hands a job id to the processing queue.
type JobPublisher interface {
	Publish(ctx context.Context, jobID kernel.UUID) error
}
