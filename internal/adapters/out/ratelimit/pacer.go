// Package ratelimit spaces out calls to rate-limited providers.
package ratelimit

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"
)

var ErrIntervalIsInvalid = errors.New("pacer interval must be positive")

// Pacer lets one call through per interval. It is safe for concurrent use,
// so a single Pacer shared by every job keeps the spacing process-wide.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer returns a pacer whose first Wait returns immediately.
func NewPacer(interval time.Duration) (*Pacer, error) {
	if interval <= 0 {
		return nil, ErrIntervalIsInvalid
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}, nil
}

// Wait blocks until the next call is allowed or ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}
