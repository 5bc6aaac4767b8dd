package query

import (
	"fmt"

	"github.com/jonwraymond/queryops/cache"
)

// Client builds controllers from a shared Config and an operations table.
// Every controller built from one Client shares the Config's cache and
// fetcher.
type Client struct {
	cfg *Config
	ops map[string]Operation
}

// NewClient creates a Client over cfg and the given operations.
// A nil cfg behaves like an empty one: fresh cache, fail-fast stub fetcher.
func NewClient(cfg *Config, ops []Operation) (*Client, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.init()

	table := make(map[string]Operation, len(ops))
	for _, op := range ops {
		if op.Name == "" {
			return nil, ErrMissingOperationName
		}
		if _, dup := table[op.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateOperation, op.Name)
		}
		table[op.Name] = op
	}

	return &Client{cfg: cfg, ops: table}, nil
}

// Lazy builds a manually triggered orchestrator for the named operation.
func (c *Client) Lazy(name string, defaults *Options) (*Orchestrator, error) {
	op, err := c.lookup(name)
	if err != nil {
		return nil, err
	}
	return NewOrchestrator(c.cfg, op, defaults), nil
}

// Mutation builds a mutation controller for the named operation.
func (c *Client) Mutation(name string, defaults *Options) (*Mutation, error) {
	op, err := c.lookup(name)
	if err != nil {
		return nil, err
	}
	return NewMutation(c.cfg, op, defaults), nil
}

// Auto builds an auto-fetching controller for the named operation.
func (c *Client) Auto(name string, defaults *Options) (*Auto, error) {
	op, err := c.lookup(name)
	if err != nil {
		return nil, err
	}
	return NewAuto(c.cfg, op, defaults), nil
}

// Cache returns the shared cache for host-side subscriptions.
func (c *Client) Cache() cache.Cache {
	return c.cfg.Cache
}

func (c *Client) lookup(name string) (Operation, error) {
	op, ok := c.ops[name]
	if !ok {
		return Operation{}, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
	}
	return op, nil
}
