// Package conn implements the connection registry: a map of network
// endpoints to single reusable connections with per-endpoint creation
// locking and explicit teardown.
package conn

import (
	"context"
	"log/slog"
	"sync"

	"github.com/driftware/ledgermcp/internal/logging"
	"github.com/driftware/ledgermcp/pkg/domain"
	"github.com/driftware/ledgermcp/pkg/ports"
)

// entry guards one endpoint's connection. The per-entry mutex makes
// first-time creation single-flight: two near-simultaneous Acquire calls
// for the same endpoint share one connection instead of racing to create
// two. borrows counts outstanding acquisitions so a release during a
// sibling's in-flight use never tears the shared connection down.
type entry struct {
	mu      sync.Mutex
	conn    ports.Conn
	borrows int
}

// Hooks receive lifecycle notifications. All fields are optional.
type Hooks struct {
	OnConnect    func(endpoint string)
	OnDisconnect func(endpoint string)
}

// Registry maps network endpoints to live connections. It is constructed
// once and passed by reference to the submission engine and the workflow
// orchestrator; there is no process-wide singleton.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry

	dial   ports.DialFunc
	logger *slog.Logger
	hooks  Hooks
}

// Option configures the Registry.
type Option func(*Registry)

// WithLogger sets a structured logger for connection transitions.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithHooks registers lifecycle hooks (e.g. for metrics).
func WithHooks(hooks Hooks) Option {
	return func(r *Registry) {
		r.hooks = hooks
	}
}

// NewRegistry creates a registry that dials new connections with dial.
func NewRegistry(dial ports.DialFunc, opts ...Option) *Registry {
	r := &Registry{
		entries: make(map[string]*entry),
		dial:    dial,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Acquire returns the live connection for endpoint, creating and
// connecting one if absent, or reconnecting the cached one in place if it
// went dead. Repeated calls without an intervening Release return the same
// connection instance; each successful call adds one borrow that a later
// Release pairs with. Connection failures are reported as
// *domain.ConnectionError and the entry is removed, so a failed connect
// never leaves a stuck half-open entry behind.
func (r *Registry) Acquire(ctx context.Context, endpoint string) (ports.Conn, error) {
	for {
		r.mu.Lock()
		e, ok := r.entries[endpoint]
		if !ok {
			e = &entry{}
			r.entries[endpoint] = e
		}
		r.mu.Unlock()

		e.mu.Lock()

		// The entry may have been released and removed while we waited for
		// its lock; start over on a fresh one.
		r.mu.Lock()
		current := r.entries[endpoint] == e
		r.mu.Unlock()
		if !current {
			e.mu.Unlock()
			continue
		}

		if e.conn != nil && e.conn.IsConnected() {
			e.borrows++
			e.mu.Unlock()
			return e.conn, nil
		}

		if e.conn == nil {
			c, err := r.dial(endpoint)
			if err != nil {
				r.remove(endpoint, e)
				e.mu.Unlock()
				return nil, &domain.ConnectionError{Endpoint: endpoint, Err: err}
			}
			e.conn = c
		}

		if err := e.conn.Connect(ctx); err != nil {
			r.remove(endpoint, e)
			e.mu.Unlock()
			return nil, &domain.ConnectionError{Endpoint: endpoint, Err: err}
		}

		e.borrows++
		conn := e.conn
		e.mu.Unlock()

		r.logger.InfoContext(ctx, "connection established", "endpoint", endpoint)
		if r.hooks.OnConnect != nil {
			r.hooks.OnConnect(endpoint)
		}
		return conn, nil
	}
}

// Release returns one borrow of the endpoint's connection. When the last
// outstanding borrow is returned the connection is disconnected and the
// entry removed, so the next Acquire starts from a fresh dial; while
// sibling borrowers remain, the shared connection stays up. It is a no-op
// for unknown endpoints.
func (r *Registry) Release(ctx context.Context, endpoint string) error {
	r.mu.Lock()
	e, ok := r.entries[endpoint]
	r.mu.Unlock()
	if !ok {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.borrows > 0 {
		e.borrows--
	}
	if e.borrows > 0 {
		return nil
	}

	r.remove(endpoint, e)
	if e.conn == nil {
		return nil
	}
	err := e.conn.Disconnect(ctx)
	e.conn = nil
	r.logger.InfoContext(ctx, "connection released", "endpoint", endpoint)
	if r.hooks.OnDisconnect != nil {
		r.hooks.OnDisconnect(endpoint)
	}
	return err
}

// Active reports whether a connection is cached for endpoint.
func (r *Registry) Active(endpoint string) bool {
	r.mu.Lock()
	e, ok := r.entries[endpoint]
	r.mu.Unlock()
	if !ok {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.conn != nil
}

// Close force-releases every connection managed by the registry,
// regardless of outstanding borrows. Intended for shutdown only.
func (r *Registry) Close(ctx context.Context) {
	r.mu.Lock()
	entries := make(map[string]*entry, len(r.entries))
	for endpoint, e := range r.entries {
		entries[endpoint] = e
		delete(r.entries, endpoint)
	}
	r.mu.Unlock()

	for endpoint, e := range entries {
		e.mu.Lock()
		e.borrows = 0
		if e.conn != nil {
			if err := e.conn.Disconnect(ctx); err != nil {
				r.logger.Warn("failed to release connection", "endpoint", endpoint, "err", err)
			}
			e.conn = nil
			if r.hooks.OnDisconnect != nil {
				r.hooks.OnDisconnect(endpoint)
			}
		}
		e.mu.Unlock()
	}
}

// remove drops the entry for endpoint if it is still the one we hold.
func (r *Registry) remove(endpoint string, e *entry) {
	r.mu.Lock()
	if current, ok := r.entries[endpoint]; ok && current == e {
		delete(r.entries, endpoint)
	}
	r.mu.Unlock()
}
