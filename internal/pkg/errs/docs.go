// Package errs provides standardized error types for the optiroute worker.
// Every type pairs a sentinel error (usable with errors.Is) with a struct
// carrying the details of the failure.
//
// The package includes:
//   - ObjectNotFoundError: a persisted object could not be found
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value failed validation
//   - ValueIsOutOfRangeError: a value lies outside of its allowed bounds
//
// Each type has a constructor with and without a cause, an Error method
// formatting the details and an Unwrap method returning the sentinel.
package errs
