package ports

import (
	"context"
	"errors"
)

// ErrFileMissing is returned when the job's input file does not exist.
var ErrFileMissing = errors.New("input file is missing")

// AddressReader turns a job's input file into ordered address strings.
type AddressReader interface {
	Read(ctx context.Context, path string) ([]string, error)
}
