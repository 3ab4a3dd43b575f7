package domain

import (
	"errors"
	"fmt"
)

// ErrNoCredential is returned when a submission carries neither a seed nor
// a pre-signed blob.
var ErrNoCredential = errors.New("no signing credential: provide a seed or a signed transaction blob")

// ErrCredentialConflict is returned when a submission carries both a seed
// and a pre-signed blob.
var ErrCredentialConflict = errors.New("ambiguous signing credential: seed and signed blob are mutually exclusive")

// ConnectionError reports that the transport failed to connect or
// reconnect to an endpoint. The registry does not retry.
type ConnectionError struct {
	Endpoint string
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection to %s failed: %v", e.Endpoint, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// ValidationError reports that a kind-specific validator rejected a built
// transaction. It is raised before any network call.
type ValidationError struct {
	Kind   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s validation failed: %s", e.Kind, e.Reason)
}

// SubmissionError reports that the ledger network rejected or could not
// finalize a submitted transaction. The connection has already been
// released when this error is returned.
type SubmissionError struct {
	Hash string
	Code string
	Err  error
}

func (e *SubmissionError) Error() string {
	msg := "submission failed"
	if e.Hash != "" {
		msg += " (tx " + e.Hash + ")"
	}
	if e.Code != "" {
		msg += ": " + e.Code
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// StageError wraps a failure with the identity of the workflow stage it
// occurred in. The orchestrator does not proceed past a failed stage.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("workflow stage %s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
