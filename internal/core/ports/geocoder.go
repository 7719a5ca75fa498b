package ports

import (
	"context"

	"optiroute/internal/core/domain/model/kernel"
)

// GeocodeResult is the outcome of one lookup: a best-match location or the
// reason no match was produced. Provider side HTTP failures are reported as
// misses, not as errors.
type GeocodeResult struct {
	location kernel.Location
	found    bool
	reason   string
}

func GeocodeFound(location kernel.Location) GeocodeResult {
	return GeocodeResult{location: location, found: true}
}

func GeocodeNotFound(reason string) GeocodeResult {
	return GeocodeResult{reason: reason}
}

func (r GeocodeResult) Location() (kernel.Location, bool) {
	return r.location, r.found
}

func (r GeocodeResult) Reason() string {
	return r.reason
}

// Geocoder resolves a free text address. A returned error means the lookup
// could not be attempted at all (for example a cancelled context) and
// aborts the job.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (GeocodeResult, error)
}

// Pacer blocks until the next outbound geocoding call is allowed.
type Pacer interface {
	Wait(ctx context.Context) error
}
