package textmeasure

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/matzehuels/stackbar/pkg/errors"
	"github.com/matzehuels/stackbar/pkg/observability"
)

// DefaultCacheSize bounds the number of memoized measurements.
const DefaultCacheSize = 4096

type cacheKey struct {
	text string
	font Font
}

// Cached memoizes successful measurements of an underlying Measurer.
// Failed measurements are not cached. It is safe for concurrent use if
// the wrapped measurer is.
type Cached struct {
	next  Measurer
	cache *lru.Cache[cacheKey, float64]
}

// NewCached wraps next with an LRU cache holding up to size entries.
// A non-positive size selects DefaultCacheSize.
func NewCached(next Measurer, size int) (*Cached, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[cacheKey, float64](size)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create measure cache")
	}
	return &Cached{next: next, cache: c}, nil
}

// Measure implements Measurer.
func (c *Cached) Measure(text string, f Font) (float64, error) {
	key := cacheKey{text, f}
	if w, ok := c.cache.Get(key); ok {
		observability.Cache().OnCacheHit(context.Background(), "measure")
		return w, nil
	}
	observability.Cache().OnCacheMiss(context.Background(), "measure")

	w, err := c.next.Measure(text, f)
	if err != nil {
		return 0, err
	}
	c.cache.Add(key, w)
	return w, nil
}

// Len reports the number of cached measurements.
func (c *Cached) Len() int {
	return c.cache.Len()
}
