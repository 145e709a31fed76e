// Package lexrain implements a personal vocabulary trainer: an SM-2 spaced
// repetition scheduler, a review session state machine, and a local SQLite
// store holding the dictionary, per-word memory state and review history.
package lexrain

import "fmt"

// Client ties configuration, the store and review sessions together. It is
// the entry point for embedding the trainer in other programs; the CLI and
// the MCP server are both built on it.
type Client struct {
	store  *Store
	config Config
}

// New creates a client, opening (or creating) the database at the
// configured path.
func New(cfg Config) (*Client, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	st, err := NewStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	return &Client{store: st, config: cfg}, nil
}

// NewReview returns a fresh review session bound to the client's store,
// with daily-goal tracking attached. Call Start on it with the desired
// mode.
func (c *Client) NewReview() *Session {
	return NewSession(c.store, WithGoalTracker(c.store))
}

// Store exposes the underlying store for dictionary and analytics access.
func (c *Client) Store() *Store {
	return c.store
}

// Config returns the effective configuration.
func (c *Client) Config() Config {
	return c.config
}

// Stats summarizes the store.
func (c *Client) Stats() (*Stats, error) {
	return c.store.Stats()
}

// Close releases the underlying database.
func (c *Client) Close() error {
	return c.store.Close()
}
