// Package http provides the admin HTTP surface: health, metrics and tool
// catalog introspection. The MCP transport lives in the mcp adapter; this
// server is for operators, not agents.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/driftware/ledgermcp/pkg/registry"
)

// toolSummary is the introspection payload for one catalog entry.
type toolSummary struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"input_schema"`
}

// NewHandler creates the admin HTTP handler.
func NewHandler(tools *registry.Registry) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, map[string]string{"status": "ok"})
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/tools", func(w http.ResponseWriter, req *http.Request) {
		catalog := tools.List()
		out := make([]toolSummary, 0, len(catalog))
		for _, t := range catalog {
			out = append(out, toolSummary{
				Name:        t.Name,
				Description: t.Description,
				InputSchema: t.InputSchema,
			})
		}
		writeJSON(w, out)
	})

	return r
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "err", err)
	}
}
