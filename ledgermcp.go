package ledgermcp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mitchellh/mapstructure"

	"github.com/driftware/ledgermcp/internal/config"
	"github.com/driftware/ledgermcp/internal/logging"
	"github.com/driftware/ledgermcp/pkg/adapters/xrpl"
	"github.com/driftware/ledgermcp/pkg/conn"
	"github.com/driftware/ledgermcp/pkg/domain"
	"github.com/driftware/ledgermcp/pkg/issuance"
	"github.com/driftware/ledgermcp/pkg/kinds"
	"github.com/driftware/ledgermcp/pkg/observability"
	"github.com/driftware/ledgermcp/pkg/pipeline"
	"github.com/driftware/ledgermcp/pkg/ports"
	"github.com/driftware/ledgermcp/pkg/query"
	"github.com/driftware/ledgermcp/pkg/registry"
	"github.com/driftware/ledgermcp/pkg/submit"
)

// Version is the release version of ledgermcp.
const Version = "0.1.0"

// Server is the high-level entry point for the ledgermcp library. It
// wires the connection registry, submission engine, transaction pipeline
// and tool catalog together.
type Server struct {
	Config *config.Config
	Conns  *conn.Registry
	Tools  *registry.Registry

	engine   *submit.Engine
	workflow *issuance.Workflow
	logger   *slog.Logger
}

// Option defines a functional option for configuring the Server.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	dial    ports.DialFunc
	journal ports.Journal
	metrics *observability.Metrics
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithDial injects a custom dial function, bypassing the default XRPL
// websocket transport.
func WithDial(dial ports.DialFunc) Option {
	return func(o *options) {
		o.dial = dial
	}
}

// WithJournal records workflow transactions to a journal backend.
func WithJournal(journal ports.Journal) Option {
	return func(o *options) {
		o.journal = journal
	}
}

// WithMetrics wires Prometheus metrics into the pipeline.
func WithMetrics(metrics *observability.Metrics) Option {
	return func(o *options) {
		o.metrics = metrics
	}
}

// New initializes a Server from the networks configuration at configPath.
// An empty path uses the built-in network catalog.
func New(configPath string, opts ...Option) (*Server, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.NewNop()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if o.dial == nil {
		o.dial = xrpl.Dialer(cfg, o.logger)
	}

	connOpts := []conn.Option{conn.WithLogger(o.logger)}
	engineOpts := []submit.Option{submit.WithLogger(o.logger)}
	if o.metrics != nil {
		connOpts = append(connOpts, conn.WithHooks(o.metrics.ConnHooks()))
		engineOpts = append(engineOpts, submit.WithHooks(o.metrics.SubmitHooks()))
	}

	conns := conn.NewRegistry(o.dial, connOpts...)
	engine := submit.NewEngine(conns, engineOpts...)

	workflowOpts := []issuance.Option{issuance.WithLogger(o.logger)}
	if o.journal != nil {
		workflowOpts = append(workflowOpts, issuance.WithJournal(o.journal))
	}
	workflow := issuance.New(conns, engine, workflowOpts...)

	s := &Server{
		Config:   cfg,
		Conns:    conns,
		Tools:    registry.NewRegistry(),
		engine:   engine,
		workflow: workflow,
		logger:   o.logger,
	}
	s.registerTools()
	return s, nil
}

// IssueToken runs the token issuance workflow.
func (s *Server) IssueToken(ctx context.Context, params issuance.Params) (*domain.WorkflowContext, error) {
	return s.workflow.Run(ctx, params)
}

// Close releases every live connection.
func (s *Server) Close(ctx context.Context) {
	s.Conns.Close(ctx)
}

// registerTools fills the catalog: one pipeline tool per transaction
// kind, the read-only query wrappers, and the issuance workflow tool.
func (s *Server) registerTools() {
	p := pipeline.New(s.engine, pipeline.WithLogger(s.logger))
	for _, kind := range kinds.All() {
		s.Tools.Register(p.Tool(kind))
	}
	for _, t := range query.Tools(s.Conns, s.logger) {
		s.Tools.Register(t)
	}
	s.Tools.Register(s.issueTokenTool())
}

// issueTokenInput is the raw shape of the issue_token tool's arguments.
type issueTokenInput struct {
	Network     string   `mapstructure:"network"`
	HolderCount int      `mapstructure:"holder_count"`
	Currency    string   `mapstructure:"currency"`
	TrustLimit  string   `mapstructure:"trust_limit"`
	MintAmount  string   `mapstructure:"mint_amount"`
	Domain      string   `mapstructure:"domain"`
	IssuerFlags []uint32 `mapstructure:"issuer_flags"`
}

func (s *Server) issueTokenTool() registry.Tool {
	return registry.Tool{
		Name:        "issue_token",
		Description: "Run the full token issuance workflow: provision issuer and holder accounts, configure the issuer, establish trust lines, and mint tokens to every holder.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"network":      map[string]any{"type": "string", "description": "Network alias or websocket endpoint URL"},
				"holder_count": map[string]any{"type": "integer", "description": "Number of holder accounts to provision"},
				"currency":     map[string]any{"type": "string", "description": "Currency code of the token"},
				"trust_limit":  map[string]any{"type": "string", "description": "Trust line limit each holder extends"},
				"mint_amount":  map[string]any{"type": "string", "description": "Token value paid to each holder"},
				"domain":       map[string]any{"type": "string", "description": "Optional issuer domain"},
				"issuer_flags": map[string]any{"type": "array", "items": map[string]any{"type": "integer"}, "description": "Account flags to enable on the issuer, in order"},
			},
			"required": []any{"network", "holder_count", "currency", "trust_limit", "mint_amount"},
		},
		Execute: func(ctx context.Context, args map[string]any) (any, error) {
			var in issueTokenInput
			dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
				Result:           &in,
				WeaklyTypedInput: true,
			})
			if err != nil {
				return nil, err
			}
			if err := dec.Decode(args); err != nil {
				return nil, fmt.Errorf("invalid tool input: %w", err)
			}

			return s.IssueToken(ctx, issuance.Params{
				Network:     in.Network,
				HolderCount: in.HolderCount,
				Currency:    in.Currency,
				TrustLimit:  in.TrustLimit,
				MintAmount:  in.MintAmount,
				Domain:      in.Domain,
				IssuerFlags: in.IssuerFlags,
			})
		},
	}
}
