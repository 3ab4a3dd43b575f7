package kinds

import (
	"fmt"

	"github.com/driftware/ledgermcp/pkg/domain"
)

// Clawback recovers issued currency from a holder. Only the issuing
// account may submit it, and the amount's issuer field names the holder
// the funds are clawed back from.
type Clawback struct{}

type clawbackInput struct {
	Account string `mapstructure:"account"`
	Amount  any    `mapstructure:"amount"`
}

func (Clawback) Name() string { return "clawback" }

func (Clawback) Description() string {
	return "Claw back issued currency from a holder. The amount's issuer field identifies the holder."
}

func (Clawback) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"account": map[string]any{"type": "string", "description": "Issuing account performing the clawback"},
			"amount":  amountSchema("Issued amount to claw back; the issuer field is the holder's address"),
		},
		"required": []any{"account", "amount"},
	}
}

func (Clawback) Build(raw map[string]any) (domain.Transaction, error) {
	var in clawbackInput
	if err := decode(raw, &in); err != nil {
		return domain.Transaction{}, err
	}
	if in.Account == "" {
		return domain.Transaction{}, fmt.Errorf("clawback requires an account")
	}
	amount, err := parseAmount(in.Amount)
	if err != nil {
		return domain.Transaction{}, err
	}
	if amount.IsNative() {
		return domain.Transaction{}, fmt.Errorf("clawback applies to issued currencies only")
	}
	return domain.Transaction{
		Type:    "Clawback",
		Account: in.Account,
		Fields: map[string]any{
			"Amount": amount,
		},
	}, nil
}

func (Clawback) Validate(tx domain.Transaction) error {
	amount, ok := tx.AmountField("Amount")
	if !ok {
		return &domain.ValidationError{Kind: "clawback", Reason: "missing amount"}
	}
	if !positiveValue(amount.Value) {
		return &domain.ValidationError{Kind: "clawback", Reason: "clawback amount must be greater than zero"}
	}
	if amount.Issuer == tx.Account {
		return &domain.ValidationError{Kind: "clawback", Reason: "amount issuer must name the holder, not the issuing account"}
	}
	return nil
}
