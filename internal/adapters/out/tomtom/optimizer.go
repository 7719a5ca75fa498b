// Package tomtom implements ports.RouteOptimizer with the TomTom Waypoint
// Optimization and Calculate Route APIs.
package tomtom

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"optiroute/internal/core/domain/model/job"
	"optiroute/internal/core/domain/model/kernel"
)

const (
	DefaultBaseURL = "https://api.tomtom.com"
	DefaultTimeout = 30 * time.Second

	maxErrorBody = 512
)

var ErrAPIKeyIsRequired = errors.New("tomtom api key is required")

type point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type optimizationRequest struct {
	Waypoints []waypoint          `json:"waypoints"`
	Options   optimizationOptions `json:"options"`
}

type waypoint struct {
	Point point `json:"point"`
}

type optimizationOptions struct {
	TravelMode          string              `json:"travelMode"`
	Traffic             string              `json:"traffic"`
	WaypointConstraints waypointConstraints `json:"waypointConstraints"`
}

type waypointConstraints struct {
	OriginIndex int `json:"originIndex"`
}

type optimizationResponse struct {
	OptimizedOrder []int `json:"optimizedOrder"`
	Summary        struct {
		LegSummaries []routeSummary `json:"legSummaries"`
	} `json:"summary"`
}

type routeSummary struct {
	LengthInMeters      int `json:"lengthInMeters"`
	TravelTimeInSeconds int `json:"travelTimeInSeconds"`
}

type calculateRouteResponse struct {
	Routes []struct {
		Summary routeSummary `json:"summary"`
		Legs    []struct {
			Points []point `json:"points"`
		} `json:"legs"`
	} `json:"routes"`
}

// optimizedRoute is the document stored as optimization_result.
type optimizedRoute struct {
	OptimizedOrder []int        `json:"optimizedOrder"`
	Summary        routeSummary `json:"summary"`
	Geometry       []point      `json:"geometry"`
}

// Optimizer orders stops with the first stop fixed as origin, then fetches the
// driving geometry along that order. A geometry failure is logged and the
// route is returned with "geometry": null.
type Optimizer struct {
	client  *http.Client
	baseURL string
	apiKey  string
	logger  *slog.Logger
}

type Option func(*Optimizer)

func WithHTTPClient(client *http.Client) Option {
	return func(o *Optimizer) {
		o.client = client
	}
}

func NewOptimizer(baseURL, apiKey string, logger *slog.Logger, opts ...Option) (*Optimizer, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrAPIKeyIsRequired
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	o := &Optimizer{
		client:  &http.Client{Timeout: DefaultTimeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		logger:  logger.With("component", "tomtom_optimizer"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

func (o *Optimizer) Optimize(ctx context.Context, jobID kernel.UUID, stops []job.Stop) (json.RawMessage, error) {
	points, err := toPoints(stops)
	if err != nil {
		return nil, err
	}

	optimized, err := o.optimizeOrder(ctx, points)
	if err != nil {
		return nil, err
	}
	if len(optimized.OptimizedOrder) != len(points) {
		return nil, fmt.Errorf("optimized order has %d entries for %d waypoints",
			len(optimized.OptimizedOrder), len(points))
	}

	route := optimizedRoute{
		OptimizedOrder: optimized.OptimizedOrder,
		Summary:        sumLegs(optimized.Summary.LegSummaries),
	}

	ordered, err := reorder(points, optimized.OptimizedOrder)
	if err != nil {
		return nil, err
	}

	summary, geometry, err := o.calculateRoute(ctx, ordered)
	switch {
	case err == nil:
		route.Summary = summary
		route.Geometry = geometry
	case ctx.Err() != nil:
		return nil, ctx.Err()
	default:
		o.logger.WarnContext(ctx, "Route geometry unavailable", "job_id", jobID.String(), "error", err)
	}

	return json.Marshal(route)
}

func (o *Optimizer) optimizeOrder(ctx context.Context, points []point) (optimizationResponse, error) {
	body := optimizationRequest{
		Waypoints: make([]waypoint, 0, len(points)),
		Options: optimizationOptions{
			TravelMode:          "car",
			Traffic:             "historical",
			WaypointConstraints: waypointConstraints{OriginIndex: 0},
		},
	}
	for _, p := range points {
		body.Waypoints = append(body.Waypoints, waypoint{Point: p})
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return optimizationResponse{}, err
	}

	endpoint := o.baseURL + "/routing/waypointoptimization/1?" + url.Values{"key": {o.apiKey}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return optimizationResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	var resp optimizationResponse
	if err = o.do(req, &resp); err != nil {
		return optimizationResponse{}, fmt.Errorf("waypoint optimization: %w", err)
	}
	return resp, nil
}

func (o *Optimizer) calculateRoute(ctx context.Context, ordered []point) (routeSummary, []point, error) {
	locations := make([]string, 0, len(ordered))
	for _, p := range ordered {
		locations = append(locations, fmt.Sprintf("%f,%f", p.Latitude, p.Longitude))
	}

	endpoint := fmt.Sprintf("%s/routing/1/calculateRoute/%s/json?%s",
		o.baseURL,
		strings.Join(locations, ":"),
		url.Values{"key": {o.apiKey}, "travelMode": {"car"}}.Encode(),
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return routeSummary{}, nil, err
	}

	var resp calculateRouteResponse
	if err = o.do(req, &resp); err != nil {
		return routeSummary{}, nil, fmt.Errorf("calculate route: %w", err)
	}
	if len(resp.Routes) == 0 {
		return routeSummary{}, nil, errors.New("calculate route: no route returned")
	}

	route := resp.Routes[0]
	geometry := make([]point, 0)
	for _, leg := range route.Legs {
		geometry = append(geometry, leg.Points...)
	}
	return route.Summary, geometry, nil
}

func (o *Optimizer) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		// The request URL carries the API key and must not reach the job result.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, urlErr.Err)
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func toPoints(stops []job.Stop) ([]point, error) {
	points := make([]point, 0, len(stops))
	for i, stop := range stops {
		location, ok := stop.Location()
		if !ok {
			return nil, fmt.Errorf("stop %d %q has no coordinates", i, stop.Address())
		}
		points = append(points, point{Latitude: location.Lat(), Longitude: location.Lon()})
	}
	return points, nil
}

func reorder(points []point, order []int) ([]point, error) {
	ordered := make([]point, 0, len(order))
	for _, idx := range order {
		if idx < 0 || idx >= len(points) {
			return nil, fmt.Errorf("optimized order index %d out of range", idx)
		}
		ordered = append(ordered, points[idx])
	}
	return ordered, nil
}

func sumLegs(legs []routeSummary) routeSummary {
	var total routeSummary
	for _, leg := range legs {
		total.LengthInMeters += leg.LengthInMeters
		total.TravelTimeInSeconds += leg.TravelTimeInSeconds
	}
	return total
}
