package kinds

import (
	"fmt"

	"github.com/driftware/ledgermcp/pkg/domain"
)

// Payment moves native or issued currency between two accounts.
type Payment struct{}

type paymentInput struct {
	Account        string  `mapstructure:"account"`
	Destination    string  `mapstructure:"destination"`
	Amount         any     `mapstructure:"amount"`
	DestinationTag *uint32 `mapstructure:"destination_tag"`
	InvoiceID      string  `mapstructure:"invoice_id"`
}

func (Payment) Name() string { return "payment" }

func (Payment) Description() string {
	return "Send a payment of XRP (drops) or an issued currency from one account to another."
}

func (Payment) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"account":         map[string]any{"type": "string", "description": "Sender address"},
			"destination":     map[string]any{"type": "string", "description": "Recipient address"},
			"amount":          amountSchema("Amount to deliver"),
			"destination_tag": map[string]any{"type": "integer", "description": "Optional destination tag"},
			"invoice_id":      map[string]any{"type": "string", "description": "Optional 256-bit invoice hash"},
		},
		"required": []any{"account", "destination", "amount"},
	}
}

func (Payment) Build(raw map[string]any) (domain.Transaction, error) {
	var in paymentInput
	if err := decode(raw, &in); err != nil {
		return domain.Transaction{}, err
	}
	if in.Account == "" || in.Destination == "" {
		return domain.Transaction{}, fmt.Errorf("payment requires account and destination")
	}
	amount, err := parseAmount(in.Amount)
	if err != nil {
		return domain.Transaction{}, err
	}

	fields := map[string]any{
		"Destination": in.Destination,
		"Amount":      amount,
	}
	if in.DestinationTag != nil {
		fields["DestinationTag"] = *in.DestinationTag
	}
	if in.InvoiceID != "" {
		fields["InvoiceID"] = in.InvoiceID
	}
	return domain.Transaction{Type: "Payment", Account: in.Account, Fields: fields}, nil
}

func (Payment) Validate(tx domain.Transaction) error {
	amount, ok := tx.AmountField("Amount")
	if !ok {
		return &domain.ValidationError{Kind: "payment", Reason: "missing amount"}
	}
	if !positiveValue(amount.Value) {
		return &domain.ValidationError{Kind: "payment", Reason: "amount must be positive"}
	}
	if dest, _ := tx.Field("Destination").(string); dest == tx.Account {
		return &domain.ValidationError{Kind: "payment", Reason: "destination must differ from sender"}
	}
	return nil
}
