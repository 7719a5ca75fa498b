package ports

import (
	"context"
	"encoding/json"

	"optiroute/internal/core/domain/model/job"
	"optiroute/internal/core/domain/model/kernel"
)

// RouteOptimizer computes a visiting order for geocoded stops. The returned
// document is stored as is.
type RouteOptimizer interface {
	Optimize(ctx context.Context, jobID kernel.UUID, stops []job.Stop) (json.RawMessage, error)
}
