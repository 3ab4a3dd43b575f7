package ports

import (
	"context"

	"github.com/driftware/ledgermcp/pkg/domain"
)

// Conn is a live session with one ledger network endpoint. Implementations
// own the wire protocol; callers obtain instances exclusively through the
// connection registry.
type Conn interface {
	// Connect establishes (or re-establishes) the session.
	Connect(ctx context.Context) error

	// IsConnected reports whether the session is currently usable.
	IsConnected() bool

	// SubmitTransaction signs the descriptor with the credential derived
	// from seed and submits it, awaiting finality. When autofill is set,
	// server-assignable fields (sequence, fee, last-valid-ledger) are
	// filled by the network.
	SubmitTransaction(ctx context.Context, tx domain.Transaction, seed string, autofill bool) (*domain.SubmissionResult, error)

	// SubmitBlob submits a pre-signed transaction blob, awaiting finality.
	// The blob is opaque: it is never inspected or rebuilt.
	SubmitBlob(ctx context.Context, blob string) (*domain.SubmissionResult, error)

	// Request performs a read-only command against the endpoint. Used by
	// the query pass-through tools.
	Request(ctx context.Context, command string, params map[string]any) (map[string]any, error)

	// Disconnect tears the session down.
	Disconnect(ctx context.Context) error
}

// Faucet provisions funded accounts on test networks. Transports that talk
// to networks with a faucet implement it alongside Conn.
type Faucet interface {
	// Fund creates and funds a fresh account, returning its address and
	// signing seed.
	Fund(ctx context.Context) (domain.Account, error)
}

// DialFunc constructs an unconnected Conn for an endpoint. Injected into
// the registry so tests can substitute doubles.
type DialFunc func(endpoint string) (Conn, error)

// Journal records workflow transaction results outside the core. The core
// itself keeps no persistent state; a nil journal disables recording
// without changing behavior.
type Journal interface {
	// Append adds a record to the ordered log of a workflow run.
	Append(ctx context.Context, runID string, rec domain.TxRecord) error

	// Records returns the ordered log of a workflow run.
	Records(ctx context.Context, runID string) ([]domain.TxRecord, error)
}
