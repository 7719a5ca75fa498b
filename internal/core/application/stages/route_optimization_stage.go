package stages

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"optiroute/internal/core/domain/model/job"
	"optiroute/internal/core/domain/model/kernel"
	"optiroute/internal/core/ports"
)

// MinStopsToOptimize is the smallest number of geocoded stops worth routing.
const MinStopsToOptimize = 2

var ErrOptimizationFailed = errors.New("route optimization failed")

type RouteOptimizationStage struct {
	optimizer ports.RouteOptimizer
	logger    *slog.Logger
}

func NewRouteOptimizationStage(optimizer ports.RouteOptimizer, logger *slog.Logger) *RouteOptimizationStage {
	return &RouteOptimizationStage{
		optimizer: optimizer,
		logger:    logger.With("component", "route_optimization_stage"),
	}
}

// Run builds the job result from all stops. The optimizer only sees the
// geocoded subset, in input order, and is skipped when fewer than
// MinStopsToOptimize stops were resolved.
func (s *RouteOptimizationStage) Run(ctx context.Context, jobID kernel.UUID, stops []job.Stop) (job.Result, error) {
	valid := job.ValidStops(stops)

	if len(valid) < MinStopsToOptimize {
		s.logger.InfoContext(ctx, "Too few geocoded stops, skipping optimization",
			"job_id", jobID.String(), "valid_stops", len(valid), "stops", len(stops))
		return job.NewGeocodingOnlyResult(stops)
	}

	s.logger.InfoContext(ctx, "Optimizing route", "job_id", jobID.String(), "valid_stops", len(valid))

	optimization, err := s.optimizer.Optimize(ctx, jobID, valid)
	if err != nil {
		return job.Result{}, fmt.Errorf("%w: %w", ErrOptimizationFailed, err)
	}

	return job.NewOptimizationResult(stops, optimization)
}
