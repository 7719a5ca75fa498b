package stages

import (
	"context"
	"fmt"
	"log/slog"

	"optiroute/internal/core/domain/model/job"
	"optiroute/internal/core/ports"
)

// NotFoundReason is recorded for misses the provider did not explain.
const NotFoundReason = "coordinates not found"

type GeocodingStage struct {
	geocoder ports.Geocoder
	pacer    ports.Pacer
	logger   *slog.Logger
}

func NewGeocodingStage(geocoder ports.Geocoder, pacer ports.Pacer, logger *slog.Logger) *GeocodingStage {
	return &GeocodingStage{
		geocoder: geocoder,
		pacer:    pacer,
		logger:   logger.With("component", "geocoding_stage"),
	}
}

// Run returns one Stop per address, in input order. Calls are sequential and
// each one is preceded by pacer.Wait, so consecutive lookups keep the
// provider's minimum interval even across jobs and after misses. The interval
// is measured from the start of one call to the start of the next; time spent
// inside a call counts toward it.
func (s *GeocodingStage) Run(ctx context.Context, addresses []string) ([]job.Stop, error) {
	stops := make([]job.Stop, 0, len(addresses))

	for i, address := range addresses {
		if err := s.pacer.Wait(ctx); err != nil {
			return nil, fmt.Errorf("wait before geocoding address %d: %w", i+1, err)
		}

		s.logger.DebugContext(ctx, "Geocoding address", "index", i, "address", address)

		result, err := s.geocoder.Geocode(ctx, address)
		if err != nil {
			return nil, fmt.Errorf("geocode address %d %q: %w", i+1, address, err)
		}

		stop, err := toStop(address, result)
		if err != nil {
			return nil, err
		}
		if !stop.IsGeocoded() {
			s.logger.InfoContext(ctx, "Address not geocoded", "address", address, "reason", stop.Reason())
		}

		stops = append(stops, stop)
	}

	return stops, nil
}

func toStop(address string, result ports.GeocodeResult) (job.Stop, error) {
	if location, ok := result.Location(); ok {
		return job.NewGeocodedStop(address, location)
	}

	reason := result.Reason()
	if reason == "" {
		reason = NotFoundReason
	}
	return job.NewUnresolvedStop(address, reason)
}
