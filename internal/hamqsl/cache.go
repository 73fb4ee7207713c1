package hamqsl

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

// ErrUpstreamUnavailable reports that the feed could not be fetched and no
// previously fetched payload exists to fall back on.
var ErrUpstreamUnavailable = errors.New("solar feed unavailable")

// FetchFunc retrieves the raw feed payload.
type FetchFunc func(ctx context.Context) ([]byte, error)

// Cache holds the last successfully fetched feed payload. A refresh is
// attempted when the payload is older than the refresh interval; a failed
// refresh keeps serving the stale payload so the display always has
// something to show.
type Cache struct {
	fetch    FetchFunc
	interval time.Duration
	now      func() time.Time

	mu        sync.Mutex
	payload   []byte
	fetchedAt time.Time
}

// NewCache creates a cache around fetch with the given refresh interval.
func NewCache(fetch FetchFunc, interval time.Duration) *Cache {
	return &Cache{fetch: fetch, interval: interval, now: time.Now}
}

// Payload returns the current raw feed payload, refreshing it first when
// due. It fails only when no payload has ever been fetched and the current
// attempt also fails.
func (c *Cache) Payload(ctx context.Context) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fresh := c.payload != nil && c.now().Sub(c.fetchedAt) < c.interval
	if fresh {
		return c.payload, nil
	}

	payload, err := c.fetch(ctx)
	if err != nil {
		if c.payload != nil {
			log.Printf("feed refresh failed, serving stale payload: %v", err)
			return c.payload, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	c.payload = payload
	c.fetchedAt = c.now()
	return c.payload, nil
}
