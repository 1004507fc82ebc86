package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key is absent.
var ErrMiss = errors.New("cache miss")

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// DeletePrefix removes every key under the given prefix.
	DeletePrefix(ctx context.Context, prefix string) error
}

type noop struct{}

// NewNoop is used when no Redis address is configured; every Get misses.
func NewNoop() Cache {
	return noop{}
}

func (noop) Get(context.Context, string) ([]byte, error) {
	return nil, ErrMiss
}

func (noop) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

func (noop) Delete(context.Context, ...string) error {
	return nil
}

func (noop) DeletePrefix(context.Context, string) error {
	return nil
}
