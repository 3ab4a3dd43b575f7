package kinds

import (
	"fmt"

	"github.com/driftware/ledgermcp/pkg/domain"
)

// OfferCreate places an order on the ledger's decentralized exchange.
type OfferCreate struct{}

type offerCreateInput struct {
	Account   string  `mapstructure:"account"`
	TakerGets any     `mapstructure:"taker_gets"`
	TakerPays any     `mapstructure:"taker_pays"`
	Flags     *uint32 `mapstructure:"flags"`
}

func (OfferCreate) Name() string { return "offer_create" }

func (OfferCreate) Description() string {
	return "Place an order on the decentralized exchange, offering taker_gets in exchange for taker_pays."
}

func (OfferCreate) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"account":    map[string]any{"type": "string", "description": "Account placing the offer"},
			"taker_gets": amountSchema("Amount the taker receives"),
			"taker_pays": amountSchema("Amount the taker pays"),
			"flags":      map[string]any{"type": "integer", "description": "Optional offer flags bitmask"},
		},
		"required": []any{"account", "taker_gets", "taker_pays"},
	}
}

func (OfferCreate) Build(raw map[string]any) (domain.Transaction, error) {
	var in offerCreateInput
	if err := decode(raw, &in); err != nil {
		return domain.Transaction{}, err
	}
	if in.Account == "" {
		return domain.Transaction{}, fmt.Errorf("offer_create requires an account")
	}
	gets, err := parseAmount(in.TakerGets)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("taker_gets: %w", err)
	}
	pays, err := parseAmount(in.TakerPays)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("taker_pays: %w", err)
	}

	fields := map[string]any{
		"TakerGets": gets,
		"TakerPays": pays,
	}
	if in.Flags != nil {
		fields["Flags"] = *in.Flags
	}
	return domain.Transaction{Type: "OfferCreate", Account: in.Account, Fields: fields}, nil
}

func (OfferCreate) Validate(tx domain.Transaction) error {
	for _, name := range []string{"TakerGets", "TakerPays"} {
		amount, ok := tx.AmountField(name)
		if !ok {
			return &domain.ValidationError{Kind: "offer_create", Reason: "missing " + name}
		}
		if !positiveValue(amount.Value) {
			return &domain.ValidationError{Kind: "offer_create", Reason: name + " must be positive"}
		}
	}
	return nil
}

// OfferCancel withdraws a previously placed offer.
type OfferCancel struct{}

type offerCancelInput struct {
	Account       string `mapstructure:"account"`
	OfferSequence uint32 `mapstructure:"offer_sequence"`
}

func (OfferCancel) Name() string { return "offer_cancel" }

func (OfferCancel) Description() string {
	return "Withdraw a previously placed offer by its sequence number."
}

func (OfferCancel) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"account":        map[string]any{"type": "string", "description": "Account that placed the offer"},
			"offer_sequence": map[string]any{"type": "integer", "description": "Sequence number of the offer to cancel"},
		},
		"required": []any{"account", "offer_sequence"},
	}
}

func (OfferCancel) Build(raw map[string]any) (domain.Transaction, error) {
	var in offerCancelInput
	if err := decode(raw, &in); err != nil {
		return domain.Transaction{}, err
	}
	if in.Account == "" {
		return domain.Transaction{}, fmt.Errorf("offer_cancel requires an account")
	}
	return domain.Transaction{
		Type:    "OfferCancel",
		Account: in.Account,
		Fields: map[string]any{
			"OfferSequence": in.OfferSequence,
		},
	}, nil
}

func (OfferCancel) Validate(tx domain.Transaction) error {
	if seq, ok := tx.Field("OfferSequence").(uint32); !ok || seq == 0 {
		return &domain.ValidationError{Kind: "offer_cancel", Reason: "offer_sequence must be greater than zero"}
	}
	return nil
}
