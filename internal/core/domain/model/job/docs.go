// Package job provides the Job aggregate of the route optimization worker
// together with the value objects stored in its result.
//
// The package includes:
//   - Job: the aggregate root tracking one uploaded address file
//   - Status: the state machine PENDING -> PROCESSING -> COMPLETED | FAILED
//   - Stop: the outcome of geocoding one address (coordinates or a reason)
//   - Result: the JSON payload written together with a terminal status
//
// Key business rules:
//   - Status only moves forward and a job reaches at most one terminal state
//   - The input file path and creation time never change after construction
//   - A result is attached only by the transition into a terminal state
//   - A Stop carries coordinates or an error, never both and never neither
package job
