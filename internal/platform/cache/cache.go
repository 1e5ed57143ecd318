// Package cache provides the process-wide request cache: identical
// concurrent fetches share one upstream call, and resolved values are
// reused until the TTL elapses.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
)

const (
	DefaultTTL    = 5 * time.Minute
	sweepInterval = 1 * time.Minute
)

type entry struct {
	ready chan struct{}
	value any
	err   error
	done  bool
	ts    time.Time
}

// RequestCache memoizes fetch results by key. It is constructed once in
// main and passed by reference; Stop releases the sweep scheduler.
type RequestCache struct {
	mu        sync.Mutex
	ttl       time.Duration
	entries   map[string]*entry
	scheduler *gocron.Scheduler
}

func New(ttl time.Duration) *RequestCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &RequestCache{
		ttl:     ttl,
		entries: make(map[string]*entry),
	}
	c.scheduler = gocron.NewScheduler(time.UTC)
	_, _ = c.scheduler.Every(sweepInterval).Do(c.sweep)
	c.scheduler.StartAsync()
	return c
}

// Do returns the cached value for key when fresh, joins an in-flight
// fetch for the same key, or invokes fetch and memoizes the result.
// Failed fetches are evicted immediately so the next caller retries.
func (c *RequestCache) Do(ctx context.Context, key string, fetch func(ctx context.Context) (any, error)) (any, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		if !e.done {
			c.mu.Unlock()
			return c.wait(ctx, e)
		}
		if time.Since(e.ts) < c.ttl {
			v := e.value
			c.mu.Unlock()
			return v, nil
		}
		delete(c.entries, key)
	}

	e := &entry{ready: make(chan struct{})}
	c.entries[key] = e
	c.mu.Unlock()

	value, err := fetch(ctx)

	c.mu.Lock()
	e.value = value
	e.err = err
	e.done = true
	e.ts = time.Now()
	if err != nil && c.entries[key] == e {
		delete(c.entries, key)
	}
	close(e.ready)
	c.mu.Unlock()

	return value, err
}

func (c *RequestCache) wait(ctx context.Context, e *entry) (any, error) {
	select {
	case <-e.ready:
		return e.value, e.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *RequestCache) sweep() {
	now := time.Now()
	c.mu.Lock()
	for k, e := range c.entries {
		if e.done && now.Sub(e.ts) > c.ttl {
			delete(c.entries, k)
		}
	}
	c.mu.Unlock()
}

// Len reports resolved and in-flight entries currently held.
func (c *RequestCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear drops every entry. In-flight fetches still complete for their
// joined callers but are not memoized for later ones.
func (c *RequestCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]*entry)
	c.mu.Unlock()
}

// Stop halts the background sweep. The cache remains usable.
func (c *RequestCache) Stop() {
	c.scheduler.Stop()
}

// Fetch is the typed wrapper around Do.
func Fetch[T any](ctx context.Context, c *RequestCache, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	v, err := c.Do(ctx, key, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cache: key %q holds %T, caller expected different type", key, v)
	}
	return out, nil
}
