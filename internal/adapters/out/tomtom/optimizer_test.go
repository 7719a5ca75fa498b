package tomtom_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"optiroute/internal/adapters/out/tomtom"
	"optiroute/internal/core/domain/model/job"
	"optiroute/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const apiKey = "test-key"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func stop(t *testing.T, address string, lat, lon float64) job.Stop {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lon)
	require.NoError(t, err)
	s, err := job.NewGeocodedStop(address, loc)
	require.NoError(t, err)
	return s
}

func threeStops(t *testing.T) []job.Stop {
	return []job.Stop{
		stop(t, "A", 52.5, 13.4),
		stop(t, "B", 52.6, 13.5),
		stop(t, "C", 52.7, 13.6),
	}
}

type fakeTomTom struct {
	optimizeStatus int
	routeStatus    int
	optimizedOrder []int
	gotWaypoints   int
	gotRoutePath   string
}

func (f *fakeTomTom) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("key") != apiKey {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/routing/waypointoptimization/1":
		var body struct {
			Waypoints []struct {
				Point struct {
					Latitude  float64 `json:"latitude"`
					Longitude float64 `json:"longitude"`
				} `json:"point"`
			} `json:"waypoints"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.gotWaypoints = len(body.Waypoints)

		if f.optimizeStatus != 0 {
			w.WriteHeader(f.optimizeStatus)
			_, _ = io.WriteString(w, `{"detailedError":{"message":"boom"}}`)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"optimizedOrder": f.optimizedOrder,
			"summary": map[string]any{
				"legSummaries": []map[string]int{
					{"lengthInMeters": 1000, "travelTimeInSeconds": 100},
					{"lengthInMeters": 2000, "travelTimeInSeconds": 200},
				},
			},
		})

	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/routing/1/calculateRoute/"):
		f.gotRoutePath = r.URL.Path
		if f.routeStatus != 0 {
			w.WriteHeader(f.routeStatus)
			return
		}
		_, _ = io.WriteString(w, `{"routes":[{
			"summary":{"lengthInMeters":3100,"travelTimeInSeconds":320},
			"legs":[
				{"points":[{"latitude":52.5,"longitude":13.4},{"latitude":52.7,"longitude":13.6}]},
				{"points":[{"latitude":52.7,"longitude":13.6},{"latitude":52.6,"longitude":13.5}]}
			]}]}`)

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newOptimizer(t *testing.T, fake *fakeTomTom) *tomtom.Optimizer {
	t.Helper()
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	o, err := tomtom.NewOptimizer(server.URL, apiKey, discardLogger())
	require.NoError(t, err)
	return o
}

func TestNewOptimizer_RequiresAPIKey(t *testing.T) {
	_, err := tomtom.NewOptimizer("", "", discardLogger())
	require.ErrorIs(t, err, tomtom.ErrAPIKeyIsRequired)
}

func TestOptimizer_Optimize_AssemblesRoute(t *testing.T) {
	fake := &fakeTomTom{optimizedOrder: []int{0, 2, 1}}
	o := newOptimizer(t, fake)

	raw, err := o.Optimize(t.Context(), kernel.NewUUID(), threeStops(t))
	require.NoError(t, err)

	assert.Equal(t, 3, fake.gotWaypoints)
	assert.Equal(t,
		"/routing/1/calculateRoute/52.500000,13.400000:52.700000,13.600000:52.600000,13.500000/json",
		fake.gotRoutePath,
	)
	assert.JSONEq(t, `{
		"optimizedOrder": [0, 2, 1],
		"summary": {"lengthInMeters": 3100, "travelTimeInSeconds": 320},
		"geometry": [
			{"latitude": 52.5, "longitude": 13.4},
			{"latitude": 52.7, "longitude": 13.6},
			{"latitude": 52.7, "longitude": 13.6},
			{"latitude": 52.6, "longitude": 13.5}
		]
	}`, string(raw))
}

func TestOptimizer_Optimize_GeometryFailureKeepsOrder(t *testing.T) {
	fake := &fakeTomTom{optimizedOrder: []int{0, 2, 1}, routeStatus: http.StatusInternalServerError}
	o := newOptimizer(t, fake)

	raw, err := o.Optimize(t.Context(), kernel.NewUUID(), threeStops(t))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"optimizedOrder": [0, 2, 1],
		"summary": {"lengthInMeters": 3000, "travelTimeInSeconds": 300},
		"geometry": null
	}`, string(raw))
}

func TestOptimizer_Optimize_ProviderErrorIsReturned(t *testing.T) {
	fake := &fakeTomTom{optimizeStatus: http.StatusBadRequest}
	o := newOptimizer(t, fake)

	_, err := o.Optimize(t.Context(), kernel.NewUUID(), threeStops(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
	assert.Contains(t, err.Error(), "boom")
}

type failingTransport struct {
	err error
}

func (f failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, f.err
}

func TestOptimizer_Optimize_TransportErrorHidesAPIKey(t *testing.T) {
	const secret = "SECRET-KEY-123"
	client := &http.Client{Transport: failingTransport{err: errors.New("dial tcp: connection refused")}}

	o, err := tomtom.NewOptimizer("https://api.tomtom.example", secret, discardLogger(), tomtom.WithHTTPClient(client))
	require.NoError(t, err)

	_, err = o.Optimize(t.Context(), kernel.NewUUID(), threeStops(t))
	require.Error(t, err)
	assert.NotContains(t, err.Error(), secret)
	assert.NotContains(t, err.Error(), "key=")
	assert.Contains(t, err.Error(), "connection refused")
	assert.Contains(t, err.Error(), "/routing/waypointoptimization/1")
}

func TestOptimizer_Optimize_CancelledTransportKeepsContextError(t *testing.T) {
	client := &http.Client{Transport: failingTransport{err: context.Canceled}}

	o, err := tomtom.NewOptimizer("https://api.tomtom.example", apiKey, discardLogger(), tomtom.WithHTTPClient(client))
	require.NoError(t, err)

	_, err = o.Optimize(t.Context(), kernel.NewUUID(), threeStops(t))
	require.ErrorIs(t, err, context.Canceled)
	assert.NotContains(t, err.Error(), apiKey)
}

func TestOptimizer_Optimize_InconsistentOrderIsError(t *testing.T) {
	fake := &fakeTomTom{optimizedOrder: []int{0, 1}}
	o := newOptimizer(t, fake)

	_, err := o.Optimize(t.Context(), kernel.NewUUID(), threeStops(t))
	require.Error(t, err)
}

func TestOptimizer_Optimize_OutOfRangeIndexIsError(t *testing.T) {
	fake := &fakeTomTom{optimizedOrder: []int{0, 1, 7}}
	o := newOptimizer(t, fake)

	_, err := o.Optimize(t.Context(), kernel.NewUUID(), threeStops(t))
	require.Error(t, err)
}

func TestOptimizer_Optimize_UnresolvedStopIsRejected(t *testing.T) {
	fake := &fakeTomTom{optimizedOrder: []int{0, 1}}
	o := newOptimizer(t, fake)

	unresolved, err := job.NewUnresolvedStop("Nowhere", "coordinates not found")
	require.NoError(t, err)

	_, err = o.Optimize(t.Context(), kernel.NewUUID(), []job.Stop{stop(t, "A", 1, 1), unresolved})
	require.Error(t, err)
	assert.Zero(t, fake.gotWaypoints, "provider must not be called")
}
