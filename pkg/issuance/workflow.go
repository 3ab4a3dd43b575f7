/*
Package issuance implements the token issuance workflow: a four-stage
state machine coordinating account provisioning, issuer configuration,
trust-line establishment, and token minting.

Stages transition strictly forward. A failing stage terminates the run;
prior stages' ledger-side effects are retained but never compensated.
*/
package issuance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/driftware/ledgermcp/internal/logging"
	"github.com/driftware/ledgermcp/pkg/conn"
	"github.com/driftware/ledgermcp/pkg/domain"
	"github.com/driftware/ledgermcp/pkg/ports"
	"github.com/driftware/ledgermcp/pkg/submit"
)

// Params declares the full workflow input.
type Params struct {
	// Network is the endpoint identifier of the ledger network.
	Network string

	// HolderCount is the number of holder accounts to provision.
	HolderCount int

	// Currency is the code of the token to issue.
	Currency string

	// TrustLimit is the trust line limit each holder extends.
	TrustLimit string

	// MintAmount is the token value paid to each holder.
	MintAmount string

	// Domain optionally associates a domain with the issuer account.
	Domain string

	// IssuerFlags are account flags (asf values) applied to the issuer,
	// one transaction each, in order.
	IssuerFlags []uint32
}

func (p Params) check() error {
	if p.Network == "" {
		return fmt.Errorf("network is required")
	}
	if p.HolderCount < 1 {
		return fmt.Errorf("holder count must be at least 1")
	}
	if p.Currency == "" {
		return fmt.Errorf("currency is required")
	}
	if p.TrustLimit == "" || p.MintAmount == "" {
		return fmt.Errorf("trust limit and mint amount are required")
	}
	return nil
}

// Workflow runs the issuance state machine.
type Workflow struct {
	registry *conn.Registry
	engine   *submit.Engine
	logger   *slog.Logger
	journal  ports.Journal
}

// Option configures the Workflow.
type Option func(*Workflow)

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Workflow) {
		w.logger = logger
	}
}

// WithJournal records every submitted transaction to a journal backend.
func WithJournal(journal ports.Journal) Option {
	return func(w *Workflow) {
		w.journal = journal
	}
}

// New creates a workflow bound to a connection registry and submission
// engine.
func New(registry *conn.Registry, engine *submit.Engine, opts ...Option) *Workflow {
	w := &Workflow{
		registry: registry,
		engine:   engine,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run executes the workflow to completion. On failure it returns the
// context accumulated so far together with a *domain.StageError naming the
// failed stage; callers may keep the partial context but no later stage is
// attempted and nothing is rolled back.
func (w *Workflow) Run(ctx context.Context, params Params) (*domain.WorkflowContext, error) {
	if err := params.check(); err != nil {
		return nil, err
	}

	run := &runState{
		Workflow: w,
		params:   params,
		id:       uuid.NewString(),
	}
	wc := &domain.WorkflowContext{}

	stage := domain.StageProvision
	for stage != domain.StageDone {
		w.logger.InfoContext(ctx, "entering workflow stage", "run_id", run.id, "stage", stage)
		next, err := run.transition(ctx, stage, wc)
		if err != nil {
			w.logger.InfoContext(ctx, "workflow stage failed", "run_id", run.id, "stage", stage, "err", err)
			return wc, &domain.StageError{Stage: stage, Err: err}
		}
		stage = next
	}

	w.logger.InfoContext(ctx, "workflow complete",
		"run_id", run.id,
		"issuer", wc.Issuer.Address,
		"holders", len(wc.Holders),
		"transactions", len(wc.Log),
	)
	return wc, nil
}

// runState carries per-run identity and parameters through the stages.
type runState struct {
	*Workflow
	params Params
	id     string
}

// transition is the explicit state machine step: given the current stage
// and context, it performs the stage's work and names the next stage.
// The fixed mapping makes the no-skipping, no-cycling invariant visible.
func (r *runState) transition(ctx context.Context, stage domain.Stage, wc *domain.WorkflowContext) (domain.Stage, error) {
	switch stage {
	case domain.StageProvision:
		return domain.StageConfigure, r.provisionAccounts(ctx, wc)
	case domain.StageConfigure:
		return domain.StageTrustLines, r.configureIssuer(ctx, wc)
	case domain.StageTrustLines:
		return domain.StageMint, r.establishTrustLines(ctx, wc)
	case domain.StageMint:
		return domain.StageDone, r.mintTokens(ctx, wc)
	default:
		return domain.StageDone, fmt.Errorf("unknown workflow stage %q", stage)
	}
}

// record appends to the context log and, when a journal is configured,
// persists the record. Journal failures are logged, never fatal.
func (r *runState) record(ctx context.Context, wc *domain.WorkflowContext, rec domain.TxRecord) {
	wc.Record(rec)
	if r.journal == nil {
		return
	}
	if err := r.journal.Append(ctx, r.id, rec); err != nil {
		r.logger.Warn("failed to journal transaction record", "run_id", r.id, "err", err)
	}
}
