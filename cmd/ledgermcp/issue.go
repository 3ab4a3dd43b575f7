package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/driftware/ledgermcp"
	"github.com/driftware/ledgermcp/internal/presentation/tui"
	"github.com/driftware/ledgermcp/pkg/domain"
	"github.com/driftware/ledgermcp/pkg/issuance"
)

// issueCmd represents the issue command
var issueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Run the token issuance workflow against a test network",
	Long: `Provisions an issuer and N holder accounts via the network faucet,
configures the issuer, establishes trust lines, and mints tokens to every
holder. Prints a report of every submitted transaction.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		network, _ := cmd.Flags().GetString("network")
		holders, _ := cmd.Flags().GetInt("holders")
		currency, _ := cmd.Flags().GetString("currency")
		limit, _ := cmd.Flags().GetString("trust-limit")
		amount, _ := cmd.Flags().GetString("mint-amount")
		domainName, _ := cmd.Flags().GetString("domain")
		flags, _ := cmd.Flags().GetUintSlice("issuer-flags")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		logger := newLogger(cmd)

		srv, err := ledgermcp.New(configPath, ledgermcp.WithLogger(logger))
		if err != nil {
			log.Fatalf("Error initializing ledgermcp: %v", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		defer srv.Close(context.Background())

		issuerFlags := make([]uint32, 0, len(flags))
		for _, f := range flags {
			issuerFlags = append(issuerFlags, uint32(f))
		}

		wc, err := srv.IssueToken(ctx, issuance.Params{
			Network:     network,
			HolderCount: holders,
			Currency:    currency,
			TrustLimit:  limit,
			MintAmount:  amount,
			Domain:      domainName,
			IssuerFlags: issuerFlags,
		})
		if err != nil {
			var stageErr *domain.StageError
			if errors.As(err, &stageErr) && wc != nil {
				// Show what completed before the failing stage.
				printReport(wc)
			}
			log.Fatalf("Issuance failed: %v", err)
		}

		printReport(wc)
	},
}

func printReport(wc *domain.WorkflowContext) {
	render := tui.NewRenderer()
	out, err := render(tui.ReportMarkdown(wc))
	if err != nil {
		fmt.Println(tui.ReportMarkdown(wc))
		return
	}
	fmt.Print(out)
}

func init() {
	rootCmd.AddCommand(issueCmd)

	issueCmd.Flags().String("network", "testnet", "Network alias or websocket endpoint URL")
	issueCmd.Flags().Int("holders", 2, "Number of holder accounts to provision")
	issueCmd.Flags().String("currency", "", "Currency code of the token (required)")
	issueCmd.Flags().String("trust-limit", "100000", "Trust line limit each holder extends")
	issueCmd.Flags().String("mint-amount", "1000", "Token value paid to each holder")
	issueCmd.Flags().String("domain", "", "Optional issuer domain")
	issueCmd.Flags().UintSlice("issuer-flags", nil, "Account flags to enable on the issuer (asf values)")
	issueCmd.Flags().Duration("timeout", 5*time.Minute, "Overall workflow timeout")
	_ = issueCmd.MarkFlagRequired("currency")
}
