package domain

import (
	"errors"
	"testing"
)

func TestTxJSON(t *testing.T) {
	tx := Transaction{
		Type:    "Payment",
		Account: "rSender",
		Fields: map[string]any{
			"Destination": "rReceiver",
			"Amount":      IssuedAmount("USD", "rIssuer", "25"),
		},
	}

	out := tx.TxJSON()
	if out["TransactionType"] != "Payment" || out["Account"] != "rSender" {
		t.Fatalf("unexpected envelope fields: %v", out)
	}
	amount, ok := out["Amount"].(map[string]any)
	if !ok {
		t.Fatalf("issued amount must serialize as an object, got %T", out["Amount"])
	}
	if amount["currency"] != "USD" || amount["issuer"] != "rIssuer" || amount["value"] != "25" {
		t.Errorf("unexpected amount object: %v", amount)
	}
}

func TestTxJSON_NativeAmountIsDropsString(t *testing.T) {
	tx := Transaction{
		Type:    "Payment",
		Account: "rSender",
		Fields:  map[string]any{"Amount": NativeAmount("1000000")},
	}
	if got := tx.TxJSON()["Amount"]; got != "1000000" {
		t.Errorf("native amount must serialize as a drops string, got %v", got)
	}
}

func TestAmountField(t *testing.T) {
	tx := Transaction{Fields: map[string]any{
		"Amount":      NativeAmount("1"),
		"Destination": "rReceiver",
	}}

	if _, ok := tx.AmountField("Amount"); !ok {
		t.Error("expected Amount to be an Amount")
	}
	if _, ok := tx.AmountField("Destination"); ok {
		t.Error("string field must not convert to an Amount")
	}
	if _, ok := tx.AmountField("Missing"); ok {
		t.Error("absent field must not convert to an Amount")
	}
}

func TestErrorUnwrapping(t *testing.T) {
	cause := errors.New("socket closed")

	var err error = &ConnectionError{Endpoint: "testnet", Err: cause}
	if !errors.Is(err, cause) {
		t.Error("ConnectionError must unwrap to its cause")
	}

	err = &SubmissionError{Hash: "ABC", Err: cause}
	if !errors.Is(err, cause) {
		t.Error("SubmissionError must unwrap to its cause")
	}

	err = &StageError{Stage: StageMint, Err: &SubmissionError{Code: "tecPATH_DRY"}}
	var subErr *SubmissionError
	if !errors.As(err, &subErr) {
		t.Error("StageError must expose the wrapped submission failure")
	}
}
