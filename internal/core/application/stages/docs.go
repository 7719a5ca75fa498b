// Package stages holds the two outbound steps of job processing.
//
// GeocodingStage resolves addresses one by one through ports.Geocoder,
// pacing every call through ports.Pacer. A miss becomes an unresolved Stop
// and never aborts the stage.
//
// RouteOptimizationStage calls ports.RouteOptimizer once when at least two
// stops were resolved and builds the job result. Any optimizer error fails
// the job.
package stages
