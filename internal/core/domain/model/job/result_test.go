package job_test

import (
	"encoding/json"
	"testing"

	"optiroute/internal/core/domain/model/job"
	"optiroute/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeocodingOnlyResult(t *testing.T) {
	loc, _ := kernel.NewLocation(51.1, 17.0)
	ok, _ := job.NewGeocodedStop("Main St, Springfield", loc)
	miss, _ := job.NewUnresolvedStop("Oak Ave, Springfield", "coordinates not found")

	result, err := job.NewGeocodingOnlyResult([]job.Stop{ok, miss})

	require.NoError(t, err)
	assert.JSONEq(t, `{
		"message": "geocoding only — too few points",
		"processed_count": 2,
		"geocoded_stops": [
			{"address": "Main St, Springfield", "lat": 51.1, "lon": 17.0},
			{"address": "Oak Ave, Springfield", "error": "coordinates not found"}
		]
	}`, string(result.JSON()))

	empty, err := job.NewGeocodingOnlyResult(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"geocoding only — too few points","processed_count":0,"geocoded_stops":[]}`,
		string(empty.JSON()))
}

func TestNewOptimizationResult(t *testing.T) {
	loc, _ := kernel.NewLocation(51.1, 17.0)
	a, _ := job.NewGeocodedStop("Main St, Springfield", loc)
	b, _ := job.NewGeocodedStop("Oak Ave, Springfield", loc)

	t.Run("embeds optimizer output verbatim", func(t *testing.T) {
		result, err := job.NewOptimizationResult([]job.Stop{a, b}, json.RawMessage(`{"order":[0,1],"distance":12.3}`))

		require.NoError(t, err)
		var decoded map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(result.JSON(), &decoded))
		assert.JSONEq(t, `"optimization complete"`, string(decoded["message"]))
		assert.JSONEq(t, `{"order":[0,1],"distance":12.3}`, string(decoded["optimization_result"]))
		assert.NotContains(t, decoded, "processed_count")
	})

	t.Run("requires optimizer output", func(t *testing.T) {
		_, err := job.NewOptimizationResult([]job.Stop{a, b}, nil)
		require.Error(t, err)
	})

	t.Run("rejects malformed optimizer output", func(t *testing.T) {
		_, err := job.NewOptimizationResult([]job.Stop{a, b}, json.RawMessage(`{"order":`))
		require.Error(t, err)
	})
}

func TestNewFailureResult(t *testing.T) {
	result, err := job.NewFailureResult("input file is missing: /data/a.csv")
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"input file is missing: /data/a.csv"}`, string(result.JSON()))

	blank, err := job.NewFailureResult(" ")
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"job processing failed"}`, string(blank.JSON()))
}

func TestRestoreResult(t *testing.T) {
	result, err := job.RestoreResult([]byte(`{"error":"boom"}`))
	require.NoError(t, err)
	assert.False(t, result.IsZero())

	_, err = job.RestoreResult(nil)
	require.ErrorIs(t, err, job.ErrResultIsEmpty)

	_, err = job.RestoreResult([]byte(`{"error":`))
	require.Error(t, err)
}

func TestResult_MarshalJSON(t *testing.T) {
	var zero job.Result
	raw, err := json.Marshal(zero)
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))
}
