// Package mcp exposes the tool catalog as a Model Context Protocol
// server over stdio or SSE.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/driftware/ledgermcp/pkg/registry"
)

// Server wraps the tool registry and exposes it as an MCP Server.
type Server struct {
	tools     *registry.Registry
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance over a tool catalog.
func NewServer(name, version string, tools *registry.Registry) *Server {
	s := &Server{
		tools:     tools,
		mcpServer: server.NewMCPServer(name, version),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// registerTools mirrors every catalog entry as an MCP tool. The catalog's
// input schemas are passed through verbatim.
func (s *Server) registerTools() {
	for _, t := range s.tools.List() {
		schemaBytes, err := json.Marshal(t.InputSchema)
		if err != nil {
			slog.Error("failed to encode tool schema", "tool", t.Name, "err", err)
			continue
		}

		s.mcpServer.AddTool(
			mcp.NewToolWithRawSchema(t.Name, t.Description, schemaBytes),
			s.handler(t),
		)
	}
}

func (s *Server) handler(t registry.Tool) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := t.Execute(ctx, request.GetArguments())
		if err != nil {
			// Typed pipeline errors surface to the agent as tool errors,
			// not protocol failures.
			return mcp.NewToolResultError(err.Error()), nil
		}

		payload, err := json.Marshal(result)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
		}
		return mcp.NewToolResultText(string(payload)), nil
	}
}
