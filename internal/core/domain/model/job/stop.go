package job

import (
	"encoding/json"
	"errors"
	"strings"

	"optiroute/internal/core/domain/model/kernel"
	"optiroute/internal/pkg/errs"
	"optiroute/internal/pkg/guard"
)

var ErrStopIsNotConstructed = errors.New("Stop must be created via NewGeocodedStop or NewUnresolvedStop")

// Stop is the geocoding outcome for one input address. It holds either a
// location or the reason the address could not be resolved.
type Stop struct { //nolint:recvcheck //using for validation
	address  string
	location kernel.Location
	geocoded bool
	reason   string

	guard guard.ConstructorGuard
}

func NewGeocodedStop(address string, location kernel.Location) (Stop, error) {
	if err := errors.Join(validateAddress(address), location.Validate()); err != nil {
		return Stop{}, err
	}

	return Stop{
		address:  address,
		location: location,
		geocoded: true,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func NewUnresolvedStop(address, reason string) (Stop, error) {
	if err := validateAddress(address); err != nil {
		return Stop{}, err
	}
	if strings.TrimSpace(reason) == "" {
		return Stop{}, errs.NewValueIsRequiredError("reason")
	}

	return Stop{
		address: address,
		reason:  reason,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (s Stop) Validate() error {
	return s.guard.Validate(ErrStopIsNotConstructed)
}

func (s Stop) Address() string {
	return s.address
}

// Location returns the coordinates and whether the address was resolved.
func (s Stop) Location() (kernel.Location, bool) {
	return s.location, s.geocoded
}

func (s Stop) IsGeocoded() bool {
	return s.geocoded
}

// Reason is empty for geocoded stops.
func (s Stop) Reason() string {
	return s.reason
}

type stopPayload struct {
	Address string   `json:"address"`
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
	Error   string   `json:"error,omitempty"`
}

func (s Stop) MarshalJSON() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	payload := stopPayload{Address: s.address}
	if s.geocoded {
		lat, lon := s.location.Lat(), s.location.Lon()
		payload.Lat, payload.Lon = &lat, &lon
	} else {
		payload.Error = s.reason
	}

	return json.Marshal(payload)
}

// ValidStops keeps the geocoded stops, preserving their order.
func ValidStops(stops []Stop) []Stop {
	valid := make([]Stop, 0, len(stops))
	for _, s := range stops {
		if s.geocoded {
			valid = append(valid, s)
		}
	}
	return valid
}

func validateAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return errs.NewValueIsRequiredError("address")
	}
	return nil
}
