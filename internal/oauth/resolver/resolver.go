package resolver

import (
	"context"
	"fmt"
	"time"
)

// Source resolves a client by id. An unknown id yields a nil Descriptor and a nil error.
type Source interface {
	FindClientByID(ctx context.Context, clientID string) (*Descriptor, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, clientID string) (*Descriptor, error)

// FindClientByID implements Source.
func (f SourceFunc) FindClientByID(ctx context.Context, clientID string) (*Descriptor, error) {
	return f(ctx, clientID)
}

// named is implemented by sources that label their metrics.
type named interface {
	Name() string
}

// Composed queries its sources in order and returns the first hit.
type Composed struct {
	sources []Source
	metrics *Metrics
}

// Option configures a Composed resolver.
type Option func(*Composed)

// WithMetrics records every resolution in m.
func WithMetrics(m *Metrics) Option {
	return func(c *Composed) {
		c.metrics = m
	}
}

// NewComposed returns a resolver over sources, highest priority first.
func NewComposed(sources []Source, opts ...Option) *Composed {
	c := &Composed{sources: sources}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// FindClientByID implements Source. A failing source stops the chain and its
// error is returned; later sources are not consulted.
func (c *Composed) FindClientByID(ctx context.Context, clientID string) (*Descriptor, error) {
	for i, source := range c.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := sourceName(i, source)

		d, err := source.FindClientByID(ctx, clientID)
		if err != nil {
			c.metrics.observe(name, resultError)
			return nil, fmt.Errorf("resolve client %q from %s: %w", clientID, name, err)
		}
		if d != nil {
			c.metrics.observe(name, resultHit)
			return d, nil
		}
	}

	c.metrics.observe(sourceNone, resultMiss)

	return nil, nil
}

// ValidateSecret resolves clientID and checks plaintext against its unexpired
// secrets. It returns the client on a match and nil when the client is unknown
// or no secret matches.
func (c *Composed) ValidateSecret(ctx context.Context, clientID, plaintext string, now time.Time) (*Descriptor, error) {
	d, err := c.FindClientByID(ctx, clientID)
	if err != nil || d == nil {
		return nil, err
	}

	ok, err := d.MatchSecret(plaintext, now)
	if err != nil {
		return nil, fmt.Errorf("verify secret of client %q: %w", clientID, err)
	}
	if !ok {
		return nil, nil
	}

	return d, nil
}

func sourceName(i int, source Source) string {
	if n, ok := source.(named); ok {
		return n.Name()
	}

	return fmt.Sprintf("source%d", i)
}
