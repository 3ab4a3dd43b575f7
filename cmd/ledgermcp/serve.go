package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/driftware/ledgermcp"
	adminhttp "github.com/driftware/ledgermcp/pkg/adapters/http"
	"github.com/driftware/ledgermcp/pkg/adapters/mcp"
	"github.com/driftware/ledgermcp/pkg/observability"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts ledgermcp as an MCP Server exposing the transaction tool catalog.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")
		adminAddr, _ := cmd.Flags().GetString("admin-addr")

		logger := newLogger(cmd)
		slog.SetDefault(logger)

		metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
		srv, err := ledgermcp.New(configPath,
			ledgermcp.WithLogger(logger),
			ledgermcp.WithMetrics(metrics),
		)
		if err != nil {
			log.Fatalf("Error initializing ledgermcp: %v", err)
		}
		defer srv.Close(context.Background())

		if adminAddr != "" {
			go func() {
				slog.Info("Admin server listening", "address", adminAddr)
				if err := http.ListenAndServe(adminAddr, adminhttp.NewHandler(srv.Tools)); err != nil {
					slog.Error("Admin server failed", "error", err)
				}
			}()
		}

		mcpServer := mcp.NewServer("ledgermcp", ledgermcp.Version, srv.Tools)

		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			slog.Info("Starting ledgermcp MCP Server (Stdio)...")
			if err := mcpServer.ServeStdio(); err != nil {
				slog.Error("MCP Server execution failed", "error", err)
				os.Exit(1)
			}
		case "sse":
			slog.Info("Starting ledgermcp MCP Server (SSE)", "port", port)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := mcpServer.ServeSSE(ctx, port); err != nil {
				if err != http.ErrServerClosed {
					slog.Error("MCP Server execution failed", "error", err)
					os.Exit(1)
				}
			}
			slog.Info("MCP Server stopped gracefully")
		default:
			log.Fatalf("Unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	serveCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
	serveCmd.Flags().String("admin-addr", "", "Address for the admin HTTP server (/healthz, /metrics, /tools); disabled when empty")
}
