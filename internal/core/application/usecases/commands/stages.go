package commands

import (
	"context"

	"optiroute/internal/core/domain/model/job"
	"optiroute/internal/core/domain/model/kernel"
)

// GeocodingStage resolves every address into a Stop, preserving order.
type GeocodingStage interface {
	Run(ctx context.Context, addresses []string) ([]job.Stop, error)
}

// OptimizationStage turns the geocoded stops into the job result.
type OptimizationStage interface {
	Run(ctx context.Context, jobID kernel.UUID, stops []job.Stop) (job.Result, error)
}
