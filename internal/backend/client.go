package backend

import "fmt"

// Client is the single entry point to the hosted backend. It is built once
// at startup and shared read-only.
type Client struct {
	gate  *Gate
	store Store
}

func NewClient(gate *Gate, store Store) *Client {
	return &Client{gate: gate, store: store}
}

func (c *Client) Configured() bool {
	return c != nil && c.gate.Configured() && c.store != nil
}

func (c *Client) Gate() *Gate {
	if c == nil {
		return nil
	}
	return c.gate
}

// Handle returns the underlying driver, or nil when the backend is not
// configured.
func (c *Client) Handle() Store {
	if !c.Configured() {
		return nil
	}
	return c.store
}

func (c *Client) Table(name string) (Table, error) {
	if !c.Configured() {
		return nil, c.Gate().Unavailable("table:" + name)
	}
	if !KnownTable(name) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, name)
	}
	return c.store.Table(name), nil
}
