// Package kernel provides the shared value objects of the optiroute domain.
//
// The package includes:
//   - UUID: identifier of jobs, wrapping github.com/google/uuid
//   - Location: a WGS84 latitude/longitude pair produced by geocoding
//
// Both types are immutable and validate themselves on construction, so a
// value obtained from a constructor is always usable.
package kernel
