package tui

import (
	"strings"
	"testing"

	"github.com/driftware/ledgermcp/pkg/domain"
)

func TestReportMarkdown(t *testing.T) {
	wc := &domain.WorkflowContext{
		Issuer: domain.Account{Address: "rIssuer"},
		Holders: []domain.Account{
			{Address: "rHolderA"},
			{Address: "rHolderB"},
		},
		Log: []domain.TxRecord{
			{Description: "trust line rHolderA -> rIssuer", Hash: "AAA", Result: "tesSUCCESS"},
			{Description: "mint 1000 TOK to rHolderA", Hash: "BBB", Result: "tesSUCCESS"},
		},
	}

	out := ReportMarkdown(wc)
	for _, want := range []string{"rIssuer", "rHolderA", "rHolderB", "AAA", "BBB", "tesSUCCESS"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestReportMarkdown_EmptyLog(t *testing.T) {
	out := ReportMarkdown(&domain.WorkflowContext{Issuer: domain.Account{Address: "rIssuer"}})
	if !strings.Contains(out, "No transactions submitted") {
		t.Errorf("expected empty-log placeholder, got:\n%s", out)
	}
}
