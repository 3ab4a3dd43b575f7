package kinds

import (
	"fmt"

	"github.com/driftware/ledgermcp/pkg/domain"
)

// TrustSet creates or updates a trust line from an account towards an
// issuer, permitting the account to hold the issuer's currency.
type TrustSet struct{}

type trustSetInput struct {
	Account  string `mapstructure:"account"`
	Currency string `mapstructure:"currency"`
	Issuer   string `mapstructure:"issuer"`
	Limit    string `mapstructure:"limit"`
}

func (TrustSet) Name() string { return "trust_set" }

func (TrustSet) Description() string {
	return "Create or update a trust line so the account can hold a currency issued by another account."
}

func (TrustSet) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"account":  map[string]any{"type": "string", "description": "Address holding the trust line"},
			"currency": map[string]any{"type": "string", "description": "Currency code (3 characters, or longer for the hex form)"},
			"issuer":   map[string]any{"type": "string", "description": "Issuing account address"},
			"limit":    map[string]any{"type": "string", "description": "Maximum value of the currency the account is willing to hold"},
		},
		"required": []any{"account", "currency", "issuer", "limit"},
	}
}

func (TrustSet) Build(raw map[string]any) (domain.Transaction, error) {
	var in trustSetInput
	if err := decode(raw, &in); err != nil {
		return domain.Transaction{}, err
	}
	if in.Account == "" || in.Issuer == "" || in.Limit == "" {
		return domain.Transaction{}, fmt.Errorf("trust_set requires account, issuer and limit")
	}
	currency, err := domain.EncodeCurrency(in.Currency)
	if err != nil {
		return domain.Transaction{}, err
	}
	return domain.Transaction{
		Type:    "TrustSet",
		Account: in.Account,
		Fields: map[string]any{
			"LimitAmount": domain.IssuedAmount(currency, in.Issuer, in.Limit),
		},
	}, nil
}

func (TrustSet) Validate(tx domain.Transaction) error {
	limit, ok := tx.AmountField("LimitAmount")
	if !ok {
		return &domain.ValidationError{Kind: "trust_set", Reason: "missing limit amount"}
	}
	if limit.Issuer == tx.Account {
		return &domain.ValidationError{Kind: "trust_set", Reason: "trust line cannot reference its own account as issuer"}
	}
	return nil
}
