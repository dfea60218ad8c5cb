// Package cache defines the response cache port shared by the record store
// backends, together with the disk driver and the guarded wrapper that turns
// driver failures into logged misses.
package cache

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/turtacn/KeyIP-PatentClient/pkg/errors"
)

// ErrCacheMiss is returned by Get when no entry exists for the key.
var ErrCacheMiss = errors.New(errors.ErrCodeNotFound, "cache miss")

// Cache stores opaque upstream payloads keyed by request fingerprint.
// Writes for one key are last-writer-wins; a fingerprint always maps to the
// same content, so concurrent writers never conflict.
type Cache interface {
	// Name labels the driver in logs and metrics.
	Name() string

	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error

	// Sweep removes entries last written more than maxAge ago and returns
	// how many were removed.
	Sweep(ctx context.Context, maxAge time.Duration) (int, error)
}

// IsMiss reports whether err is a cache miss.
func IsMiss(err error) bool {
	return stderrors.Is(err, ErrCacheMiss)
}

// Nop is the cache used when caching is disabled: every Get misses and every
// Put is dropped.
type Nop struct{}

func (Nop) Name() string                                      { return "none" }
func (Nop) Get(context.Context, string) ([]byte, error)       { return nil, ErrCacheMiss }
func (Nop) Put(context.Context, string, []byte) error         { return nil }
func (Nop) Sweep(context.Context, time.Duration) (int, error) { return 0, nil }

//Personal.AI order the ending
