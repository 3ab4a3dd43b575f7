/*
Package ledgermcp packages XRP Ledger transaction submission as callable
tools for AI agent hosts, served over the Model Context Protocol.

The core is a transaction submission pipeline: a connection registry that
maps network endpoints to single reusable connections, a generic
build/validate/submit pipeline specialized per transaction kind, and a
four-stage token issuance workflow built on top of both.

# Architecture

The module follows Hexagonal Architecture. pkg/domain holds the pure
models (transactions, amounts, the workflow context), pkg/ports the driven
interfaces (ledger transport, faucet, journal), and pkg/adapters the
concrete edges (XRPL websocket transport, MCP server, admin HTTP, journal
backends). The pipeline never performs I/O during build or validation;
every network interaction flows through the submission engine, which
guarantees the connection is released on every exit path.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/driftware/ledgermcp"
		"github.com/driftware/ledgermcp/pkg/issuance"
	)

	func main() {
		srv, err := ledgermcp.New("")
		if err != nil {
			log.Fatal(err)
		}
		defer srv.Close(context.Background())

		// Execute a tool from the catalog.
		res, err := srv.Tools.Execute(context.Background(), "payment", map[string]any{
			"network": "testnet",
			"seed":    "s████████████████████████████",
			"txn": map[string]any{
				"account":     "rSender...",
				"destination": "rReceiver...",
				"amount":      "1000000",
			},
		})
		if err != nil {
			log.Fatal(err)
		}
		log.Println(res)

		// Or run the full issuance workflow.
		wc, err := srv.IssueToken(context.Background(), issuance.Params{
			Network:     "testnet",
			HolderCount: 3,
			Currency:    "SOLO",
			TrustLimit:  "100000",
			MintAmount:  "1000",
		})
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("issued to %d holders", len(wc.Holders))
	}
*/
package ledgermcp
