package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/driftware/ledgermcp/pkg/domain"
)

// NewRenderer returns a function that renders markdown using glamour.
// It uses a dark theme by default, but could be configurable.
func NewRenderer() func(string) (string, error) {
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// ReportMarkdown builds the issuance run report shown by the CLI.
func ReportMarkdown(wc *domain.WorkflowContext) string {
	var b strings.Builder

	b.WriteString("# Token Issuance Report\n\n")
	fmt.Fprintf(&b, "**Issuer:** `%s`\n\n", wc.Issuer.Address)

	b.WriteString("## Holders\n\n")
	for _, holder := range wc.Holders {
		fmt.Fprintf(&b, "- `%s`\n", holder.Address)
	}

	b.WriteString("\n## Transactions\n\n")
	if len(wc.Log) == 0 {
		b.WriteString("_No transactions submitted._\n")
		return b.String()
	}
	b.WriteString("| # | Description | Hash | Result |\n")
	b.WriteString("|---|-------------|------|--------|\n")
	for i, rec := range wc.Log {
		fmt.Fprintf(&b, "| %d | %s | `%s` | %s |\n", i+1, rec.Description, rec.Hash, rec.Result)
	}
	return b.String()
}
