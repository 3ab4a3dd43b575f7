// Package submit implements the submission engine: it drives a registry
// connection through submit-and-await-finality and guarantees the
// connection is released on every exit path.
package submit

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/driftware/ledgermcp/internal/logging"
	"github.com/driftware/ledgermcp/pkg/conn"
	"github.com/driftware/ledgermcp/pkg/domain"
)

// Request describes one submission. Exactly one of Seed or Blob must be
// set; Seed additionally requires Tx.
type Request struct {
	// Network is the endpoint identifier passed to the registry.
	Network string

	// Tx is the built transaction descriptor, required with Seed.
	Tx *domain.Transaction

	// Seed is the secret used to derive the signing credential.
	Seed string

	// Blob is a pre-signed transaction blob, submitted opaquely.
	Blob string
}

// credential enforces the mutual exclusion invariant on the signing
// credential. It runs before the registry is touched.
func (r Request) credential() error {
	switch {
	case r.Seed == "" && r.Blob == "":
		return domain.ErrNoCredential
	case r.Seed != "" && r.Blob != "":
		return domain.ErrCredentialConflict
	case r.Seed != "" && r.Tx == nil:
		return errors.New("seed submission requires a transaction descriptor")
	}
	return nil
}

// kind returns the label used for logs and hooks.
func (r Request) kind() string {
	if r.Blob != "" {
		return "signed_blob"
	}
	if r.Tx != nil {
		return r.Tx.Type
	}
	return "unknown"
}

// Hooks receive submission outcomes (e.g. for metrics). Optional.
type Hooks struct {
	OnSubmit func(txType string, res *domain.SubmissionResult, err error, elapsed time.Duration)
}

// Engine submits transactions through registry-managed connections.
type Engine struct {
	registry *conn.Registry
	logger   *slog.Logger
	hooks    Hooks
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithHooks registers submission hooks.
func WithHooks(hooks Hooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// NewEngine creates an engine bound to a connection registry.
func NewEngine(registry *conn.Registry, opts ...Option) *Engine {
	e := &Engine{
		registry: registry,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Submit acquires a connection for the request's network, submits the
// transaction (or pre-signed blob) and awaits finality. The connection is
// released before Submit returns, regardless of outcome. Failures
// propagate as *domain.SubmissionError; no retry is attempted.
func (e *Engine) Submit(ctx context.Context, req Request) (res *domain.SubmissionResult, err error) {
	if err := req.credential(); err != nil {
		return nil, err
	}

	c, err := e.registry.Acquire(ctx, req.Network)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	defer func() {
		if relErr := e.registry.Release(ctx, req.Network); relErr != nil {
			e.logger.Warn("failed to release connection after submission",
				"network", req.Network,
				"err", relErr,
			)
		}
		if e.hooks.OnSubmit != nil {
			e.hooks.OnSubmit(req.kind(), res, err, time.Since(start))
		}
	}()

	if req.Blob != "" {
		res, err = c.SubmitBlob(ctx, req.Blob)
	} else {
		res, err = c.SubmitTransaction(ctx, *req.Tx, req.Seed, true)
	}
	if err != nil {
		var subErr *domain.SubmissionError
		if !errors.As(err, &subErr) {
			err = &domain.SubmissionError{Err: err}
		}
		e.logger.InfoContext(ctx, "submission failed", "kind", req.kind(), "network", req.Network, "err", err)
		return nil, err
	}

	e.logger.InfoContext(ctx, "submission finalized",
		"kind", req.kind(),
		"network", req.Network,
		"hash", res.Hash,
		"result", res.EngineResult,
	)
	return res, nil
}
