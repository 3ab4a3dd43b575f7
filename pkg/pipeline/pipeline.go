// Package pipeline provides the generic build/validate/submit pipeline
// shared by every mutating ledger tool.
//
// One Tool is produced per transaction kind. Invocation order is fixed:
// credential check first (before any network access), then either a direct
// pre-signed blob submission, or build -> validate -> submit. Build and
// validate are pure transforms; no network I/O happens until the
// submission engine takes over.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mitchellh/mapstructure"

	"github.com/driftware/ledgermcp/internal/logging"
	"github.com/driftware/ledgermcp/pkg/domain"
	"github.com/driftware/ledgermcp/pkg/kinds"
	"github.com/driftware/ledgermcp/pkg/registry"
	"github.com/driftware/ledgermcp/pkg/submit"
)

// envelope is the common shape wrapping every transaction tool's input.
type envelope struct {
	Network   string         `mapstructure:"network"`
	Seed      string         `mapstructure:"seed"`
	Signature string         `mapstructure:"signature"`
	Txn       map[string]any `mapstructure:"txn"`
}

// Pipeline turns transaction kinds into submittable tools.
type Pipeline struct {
	engine *submit.Engine
	logger *slog.Logger
}

// Option configures the Pipeline.
type Option func(*Pipeline)

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a pipeline bound to a submission engine.
func New(engine *submit.Engine, opts ...Option) *Pipeline {
	p := &Pipeline{
		engine: engine,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Tool produces the callable tool for one transaction kind.
func (p *Pipeline) Tool(kind kinds.Kind) registry.Tool {
	return registry.Tool{
		Name:        kind.Name(),
		Description: kind.Description(),
		InputSchema: envelopeSchema(kind.Schema()),
		Execute: func(ctx context.Context, args map[string]any) (any, error) {
			return p.execute(ctx, kind, args)
		},
	}
}

func (p *Pipeline) execute(ctx context.Context, kind kinds.Kind, args map[string]any) (*domain.SubmissionResult, error) {
	var env envelope
	if err := mapstructure.Decode(args, &env); err != nil {
		return nil, fmt.Errorf("invalid tool input: %w", err)
	}
	if env.Network == "" {
		return nil, fmt.Errorf("network is required")
	}

	// Credential invariant holds before anything touches the network.
	switch {
	case env.Seed == "" && env.Signature == "":
		return nil, domain.ErrNoCredential
	case env.Seed != "" && env.Signature != "":
		return nil, domain.ErrCredentialConflict
	}

	// A pre-signed blob is opaque; it bypasses build and validate.
	if env.Signature != "" {
		p.logger.DebugContext(ctx, "submitting pre-signed blob", "kind", kind.Name(), "network", env.Network)
		return p.engine.Submit(ctx, submit.Request{
			Network: env.Network,
			Blob:    env.Signature,
		})
	}

	tx, err := kind.Build(env.Txn)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s transaction: %w", kind.Name(), err)
	}
	if err := kind.Validate(tx); err != nil {
		return nil, err
	}

	p.logger.DebugContext(ctx, "transaction built", "kind", kind.Name(), "network", env.Network, "account", tx.Account)
	return p.engine.Submit(ctx, submit.Request{
		Network: env.Network,
		Tx:      &tx,
		Seed:    env.Seed,
	})
}

// envelopeSchema wraps a kind's txn schema with the common submission
// fields.
func envelopeSchema(txn map[string]any) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"network": map[string]any{
				"type":        "string",
				"description": "Network alias or websocket endpoint URL",
			},
			"seed": map[string]any{
				"type":        "string",
				"description": "Signing seed; mutually exclusive with signature",
			},
			"signature": map[string]any{
				"type":        "string",
				"description": "Pre-signed transaction blob; mutually exclusive with seed",
			},
			"txn": txn,
		},
		"required": []any{"network", "txn"},
	}
}
