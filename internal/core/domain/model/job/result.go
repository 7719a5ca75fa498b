package job

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"optiroute/internal/pkg/errs"
)

const (
	GeocodingOnlyMessage        = "geocoding only — too few points"
	OptimizationCompleteMessage = "optimization complete"

	unknownFailureReason = "job processing failed"
)

var ErrResultIsEmpty = errors.New("result payload is empty")

// Result is the JSON document persisted with a terminal status. Its shape
// depends on which stages ran; see the New*Result constructors.
type Result struct {
	payload json.RawMessage
}

type geocodingOnlyPayload struct {
	Message        string `json:"message"`
	ProcessedCount int    `json:"processed_count"`
	GeocodedStops  []Stop `json:"geocoded_stops"`
}

type optimizationPayload struct {
	Message            string          `json:"message"`
	GeocodingSummary   []Stop          `json:"geocoding_summary"`
	OptimizationResult json.RawMessage `json:"optimization_result"`
}

type failurePayload struct {
	Error string `json:"error"`
}

// NewGeocodingOnlyResult is used when fewer than two stops were geocoded
// and the optimizer was not called.
func NewGeocodingOnlyResult(stops []Stop) (Result, error) {
	if stops == nil {
		stops = []Stop{}
	}
	return newResult(geocodingOnlyPayload{
		Message:        GeocodingOnlyMessage,
		ProcessedCount: len(stops),
		GeocodedStops:  stops,
	})
}

// NewOptimizationResult embeds the optimizer output without interpreting it.
func NewOptimizationResult(stops []Stop, optimization json.RawMessage) (Result, error) {
	if len(optimization) == 0 {
		return Result{}, errs.NewValueIsRequiredError("optimization result")
	}
	if stops == nil {
		stops = []Stop{}
	}
	return newResult(optimizationPayload{
		Message:            OptimizationCompleteMessage,
		GeocodingSummary:   stops,
		OptimizationResult: optimization,
	})
}

func NewFailureResult(reason string) (Result, error) {
	if strings.TrimSpace(reason) == "" {
		reason = unknownFailureReason
	}
	return newResult(failurePayload{Error: reason})
}

// RestoreResult wraps a payload read back from storage.
func RestoreResult(payload []byte) (Result, error) {
	if len(payload) == 0 {
		return Result{}, ErrResultIsEmpty
	}
	if !json.Valid(payload) {
		return Result{}, errs.NewValueIsInvalidError("result payload is not valid JSON")
	}
	return Result{payload: append(json.RawMessage(nil), payload...)}, nil
}

func newResult(v any) (Result, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return Result{}, fmt.Errorf("encode job result: %w", err)
	}
	return Result{payload: payload}, nil
}

func (r Result) IsZero() bool {
	return len(r.payload) == 0
}

// JSON returns the encoded payload.
func (r Result) JSON() json.RawMessage {
	return r.payload
}

func (r Result) MarshalJSON() ([]byte, error) {
	if r.IsZero() {
		return []byte("null"), nil
	}
	return r.payload, nil
}
