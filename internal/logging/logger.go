package logging

import (
	"io"
	"log/slog"
	"os"
)

// redactedKeys are attribute keys whose values are secrets. Their values
// are masked before they reach any handler so a seed can never leak into
// log output.
var redactedKeys = map[string]bool{
	"seed":      true,
	"secret":    true,
	"signature": true,
	"tx_blob":   true,
}

// New creates a configured application logger.
// It writes to Stderr (to separate from Stdout flow UI/JSON-RPC).
// It standardizes common keys (e.g., "error" -> "err") and masks secret
// values.
func New(level slog.Level) *slog.Logger {
	return slog.New(newHandler(os.Stderr, level))
}

func newHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Standardize 'error' key to 'err'
			if a.Key == "error" {
				a.Key = "err"
			}
			if redactedKeys[a.Key] {
				a.Value = slog.StringValue("[redacted]")
			}
			return a
		},
	})
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
