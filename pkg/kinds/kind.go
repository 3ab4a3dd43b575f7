/*
Package kinds defines one concrete implementation of the transaction Kind
interface per ledger-mutating operation.

A Kind owns the shape of its raw tool input, the pure transform that turns
that input into a submittable transaction descriptor, and the field-level
checks applied before submission. Build and Validate never perform I/O.
*/
package kinds

import (
	"fmt"
	"strconv"

	"github.com/mitchellh/mapstructure"

	"github.com/driftware/ledgermcp/pkg/domain"
)

// Kind is the per-transaction-type contract used by the pipeline. One
// concrete implementation exists per transaction type, selected at
// compile time.
type Kind interface {
	// Name is the tool identifier, e.g. "trust_set".
	Name() string

	// Description documents the tool for agent hosts.
	Description() string

	// Schema is the JSON schema of the kind-specific txn fields.
	Schema() map[string]any

	// Build transforms raw input into a transaction descriptor. Pure.
	Build(raw map[string]any) (domain.Transaction, error)

	// Validate checks field values of a built descriptor. Pure and
	// side-effect free: validating the same descriptor twice yields the
	// same outcome. A nil return approves the descriptor.
	Validate(tx domain.Transaction) error
}

// All returns every registered transaction kind.
func All() []Kind {
	return []Kind{
		Payment{},
		TrustSet{},
		AccountSet{},
		OfferCreate{},
		OfferCancel{},
		Clawback{},
	}
}

// decode maps raw tool arguments onto a typed input struct. Weak typing
// tolerates JSON numbers arriving as float64 for integer fields.
func decode(raw map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("invalid txn fields: %w", err)
	}
	return nil
}

// amountInput is the raw shape of an amount argument: either a plain
// string of drops or an issued-currency object.
type amountInput struct {
	Currency string `mapstructure:"currency"`
	Issuer   string `mapstructure:"issuer"`
	Value    string `mapstructure:"value"`
}

// parseAmount normalizes a raw amount argument. Issued-currency codes are
// encoded to their 160-bit form when needed.
func parseAmount(raw any) (domain.Amount, error) {
	switch v := raw.(type) {
	case string:
		if v == "" {
			return domain.Amount{}, fmt.Errorf("amount is empty")
		}
		return domain.NativeAmount(v), nil
	case map[string]any:
		var in amountInput
		if err := decode(v, &in); err != nil {
			return domain.Amount{}, err
		}
		if in.Value == "" {
			return domain.Amount{}, fmt.Errorf("amount value is required")
		}
		if in.Currency == "" || in.Currency == "XRP" {
			return domain.NativeAmount(in.Value), nil
		}
		if in.Issuer == "" {
			return domain.Amount{}, fmt.Errorf("issued amount requires an issuer")
		}
		currency, err := domain.EncodeCurrency(in.Currency)
		if err != nil {
			return domain.Amount{}, err
		}
		return domain.IssuedAmount(currency, in.Issuer, in.Value), nil
	case nil:
		return domain.Amount{}, fmt.Errorf("amount is required")
	default:
		return domain.Amount{}, fmt.Errorf("amount must be a drops string or a currency object, got %T", raw)
	}
}

// positiveValue reports whether a decimal amount value is strictly
// positive.
func positiveValue(value string) bool {
	f, err := strconv.ParseFloat(value, 64)
	return err == nil && f > 0
}

// amountSchema is the JSON schema fragment shared by every amount field.
func amountSchema(description string) map[string]any {
	return map[string]any{
		"description": description,
		"oneOf": []any{
			map[string]any{
				"type":        "string",
				"description": "Native amount in drops",
			},
			map[string]any{
				"type": "object",
				"properties": map[string]any{
					"currency": map[string]any{"type": "string"},
					"issuer":   map[string]any{"type": "string"},
					"value":    map[string]any{"type": "string"},
				},
				"required": []any{"currency", "value"},
			},
		},
	}
}
