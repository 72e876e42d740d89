// Package redis loads a story document stored under a Redis key.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/lotka/pkg/domain"
	"github.com/aretw0/lotka/pkg/schema"
	backend "github.com/redis/go-redis/v9"
)

// DefaultKey is the key read when none is configured.
const DefaultKey = "lotka:story"

// Loader implements ports.StoryLoader using Redis.
type Loader struct {
	client *backend.Client
	key    string
}

type Option func(*Loader)

// WithKey sets the key holding the story document.
func WithKey(key string) Option {
	return func(l *Loader) {
		if key != "" {
			l.key = key
		}
	}
}

// New creates a new Redis loader with options.
func New(address, password string, db int, opts ...Option) *Loader {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis loader from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Loader {
	l := &Loader{
		client: client,
		key:    DefaultKey,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Key returns the key the loader reads.
func (l *Loader) Key() string {
	return l.key
}

// Load reads the document (JSON or YAML) stored at the key.
func (l *Loader) Load(ctx context.Context) (*domain.Story, error) {
	val, err := l.client.Get(ctx, l.key).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, l.fail(fmt.Errorf("key %q not found", l.key))
		}
		return nil, l.fail(fmt.Errorf("failed to get from redis: %w", err))
	}

	story, err := schema.Parse(val)
	if err != nil {
		return nil, &domain.LoadError{Source: l.source(), Err: err}
	}
	return story, nil
}

// Close closes the redis client.
func (l *Loader) Close() error {
	return l.client.Close()
}

func (l *Loader) source() string {
	return "redis://" + l.client.Options().Addr + "/" + l.key
}

func (l *Loader) fail(err error) error {
	return &domain.LoadError{Source: l.source(), Err: fmt.Errorf("%w: %v", domain.ErrLoad, err)}
}
