// Package ledgertest provides in-memory test doubles for the ledger
// transport used across package tests.
package ledgertest

import (
	"context"
	"fmt"
	"sync"

	"github.com/driftware/ledgermcp/pkg/domain"
	"github.com/driftware/ledgermcp/pkg/ports"
)

// FakeConn is an in-memory ports.Conn and ports.Faucet implementation.
// Zero value is usable; override the error fields or SubmitFn to steer
// behavior.
type FakeConn struct {
	mu sync.Mutex

	Endpoint  string
	connected bool

	ConnectErr    error
	SubmitErr     error
	FundErr       error
	DisconnectErr error

	// SubmitFn, when set, replaces the default submit behavior for both
	// transactions and blobs.
	SubmitFn func(tx *domain.Transaction, seed, blob string) (*domain.SubmissionResult, error)

	ConnectCalls    int
	DisconnectCalls int
	SubmitCalls     int
	FundCalls       int

	// Submitted records every transaction descriptor received, in order.
	Submitted []domain.Transaction

	// Blobs records every pre-signed blob received, in order.
	Blobs []string
}

var (
	_ ports.Conn   = (*FakeConn)(nil)
	_ ports.Faucet = (*FakeConn)(nil)
)

func (f *FakeConn) Connect(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ConnectCalls++
	if f.ConnectErr != nil {
		return f.ConnectErr
	}
	f.connected = true
	return nil
}

func (f *FakeConn) IsConnected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

// Drop simulates the transport going dead without a clean disconnect.
func (f *FakeConn) Drop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connected = false
}

func (f *FakeConn) Disconnect(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DisconnectCalls++
	f.connected = false
	return f.DisconnectErr
}

func (f *FakeConn) SubmitTransaction(ctx context.Context, tx domain.Transaction, seed string, autofill bool) (*domain.SubmissionResult, error) {
	f.mu.Lock()
	f.SubmitCalls++
	f.Submitted = append(f.Submitted, tx)
	n := f.SubmitCalls
	fn := f.SubmitFn
	submitErr := f.SubmitErr
	f.mu.Unlock()

	if !f.IsConnected() {
		return nil, fmt.Errorf("not connected to %s", f.Endpoint)
	}
	var res *domain.SubmissionResult
	var err error
	switch {
	case fn != nil:
		res, err = fn(&tx, seed, "")
	case submitErr != nil:
		return nil, submitErr
	default:
		res = &domain.SubmissionResult{
			Hash:         fmt.Sprintf("HASH%04d", n),
			EngineResult: "tesSUCCESS",
			Validated:    true,
		}
	}
	if err != nil {
		return nil, err
	}
	// A submit awaiting finality dies with the transport, like a read on
	// a closed socket.
	if !f.IsConnected() {
		return nil, fmt.Errorf("not connected to %s", f.Endpoint)
	}
	return res, nil
}

func (f *FakeConn) SubmitBlob(ctx context.Context, blob string) (*domain.SubmissionResult, error) {
	f.mu.Lock()
	f.SubmitCalls++
	f.Blobs = append(f.Blobs, blob)
	n := f.SubmitCalls
	fn := f.SubmitFn
	submitErr := f.SubmitErr
	f.mu.Unlock()

	if !f.IsConnected() {
		return nil, fmt.Errorf("not connected to %s", f.Endpoint)
	}
	var res *domain.SubmissionResult
	var err error
	switch {
	case fn != nil:
		res, err = fn(nil, "", blob)
	case submitErr != nil:
		return nil, submitErr
	default:
		res = &domain.SubmissionResult{
			Hash:         fmt.Sprintf("BLOB%04d", n),
			EngineResult: "tesSUCCESS",
			Validated:    true,
		}
	}
	if err != nil {
		return nil, err
	}
	if !f.IsConnected() {
		return nil, fmt.Errorf("not connected to %s", f.Endpoint)
	}
	return res, nil
}

func (f *FakeConn) Request(ctx context.Context, command string, params map[string]any) (map[string]any, error) {
	if !f.IsConnected() {
		return nil, fmt.Errorf("not connected to %s", f.Endpoint)
	}
	return map[string]any{"command": command}, nil
}

func (f *FakeConn) Fund(ctx context.Context) (domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.FundCalls++
	if f.FundErr != nil {
		return domain.Account{}, f.FundErr
	}
	return domain.Account{
		Address: fmt.Sprintf("rFAKE%04d", f.FundCalls),
		Seed:    fmt.Sprintf("sFAKE%04d", f.FundCalls),
	}, nil
}

// Dialer tracks connections created per endpoint.
type Dialer struct {
	mu      sync.Mutex
	DialErr error
	conns   []*FakeConn

	// Configure, when set, adjusts each new FakeConn before it is
	// returned.
	Configure func(*FakeConn)
}

// Dial is the ports.DialFunc to hand to the connection registry.
func (d *Dialer) Dial(endpoint string) (ports.Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.DialErr != nil {
		return nil, d.DialErr
	}
	c := &FakeConn{Endpoint: endpoint}
	if d.Configure != nil {
		d.Configure(c)
	}
	d.conns = append(d.conns, c)
	return c, nil
}

// Conns returns every connection created so far.
func (d *Dialer) Conns() []*FakeConn {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*FakeConn, len(d.conns))
	copy(out, d.conns)
	return out
}

// DialCount returns how many connections were created.
func (d *Dialer) DialCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.conns)
}
