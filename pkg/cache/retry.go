package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable marks a failure to reach a remote backend. Only errors
// matching it are retried.
var ErrUnavailable = errors.New("cache unavailable")

// Backoff retries an operation with exponentially growing pauses.
type Backoff struct {
	Attempts int           // total tries, at least 1
	Delay    time.Duration // pause before the second try; doubles after
}

// DefaultBackoff is used by RedisCache.
var DefaultBackoff = Backoff{Attempts: 3, Delay: 100 * time.Millisecond}

// Do calls fn until it succeeds, returns an error that does not match
// ErrUnavailable, the attempts run out, or ctx is done.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Delay

	var err error
	for i := range attempts {
		if err = fn(); err == nil || !errors.Is(err, ErrUnavailable) {
			return err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return err
}
