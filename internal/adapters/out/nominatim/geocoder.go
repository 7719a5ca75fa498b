// Package nominatim implements ports.Geocoder on top of a Nominatim-compatible
// search endpoint.
package nominatim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"optiroute/internal/core/domain/model/kernel"
	"optiroute/internal/core/ports"
)

const (
	DefaultBaseURL = "https://nominatim.openstreetmap.org"
	DefaultTimeout = 10 * time.Second
)

var ErrUserAgentIsRequired = errors.New("nominatim requires an identifying User-Agent")

// place is the subset of a search hit we read. Nominatim sends coordinates as strings.
type place struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocoder resolves addresses with GET {base}/search?q=..&format=json&limit=1.
// Provider failures become misses with a reason; only a done context is
// returned as an error.
type Geocoder struct {
	client    *http.Client
	baseURL   string
	userAgent string
	logger    *slog.Logger
}

type Option func(*Geocoder)

// WithHTTPClient replaces the default client with its 10s timeout.
func WithHTTPClient(client *http.Client) Option {
	return func(g *Geocoder) {
		g.client = client
	}
}

func NewGeocoder(baseURL, userAgent string, logger *slog.Logger, opts ...Option) (*Geocoder, error) {
	if strings.TrimSpace(userAgent) == "" {
		return nil, ErrUserAgentIsRequired
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	g := &Geocoder{
		client:    &http.Client{Timeout: DefaultTimeout},
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		logger:    logger.With("component", "nominatim_geocoder"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

func (g *Geocoder) Geocode(ctx context.Context, address string) (ports.GeocodeResult, error) {
	params := url.Values{}
	params.Set("q", address)
	params.Set("format", "json")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return ports.GeocodeResult{}, fmt.Errorf("build geocoding request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ports.GeocodeResult{}, ctxErr
		}
		g.logger.WarnContext(ctx, "Geocoding request failed", "address", address, "error", err)
		return ports.GeocodeNotFound("geocoding request failed"), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.logger.WarnContext(ctx, "Geocoding provider returned an error", "address", address, "status", resp.StatusCode)
		return ports.GeocodeNotFound(fmt.Sprintf("geocoding provider returned status %d", resp.StatusCode)), nil
	}

	var places []place
	if err = json.NewDecoder(resp.Body).Decode(&places); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ports.GeocodeResult{}, ctxErr
		}
		g.logger.WarnContext(ctx, "Geocoding response is not valid JSON", "address", address, "error", err)
		return ports.GeocodeNotFound("geocoding response is invalid"), nil
	}

	if len(places) == 0 {
		return ports.GeocodeNotFound(""), nil
	}

	location, err := places[0].location()
	if err != nil {
		g.logger.WarnContext(ctx, "Geocoding hit has invalid coordinates", "address", address, "error", err)
		return ports.GeocodeNotFound("geocoding response is invalid"), nil
	}

	return ports.GeocodeFound(location), nil
}

func (p place) location() (kernel.Location, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return kernel.Location{}, fmt.Errorf("lat %q: %w", p.Lat, err)
	}
	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return kernel.Location{}, fmt.Errorf("lon %q: %w", p.Lon, err)
	}
	return kernel.NewLocation(lat, lon)
}
