package kinds

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/driftware/ledgermcp/pkg/domain"
)

// TransferRate bounds per the ledger's protocol: 0 disables the fee, any
// other value must express a multiplier between 1.0 and 2.0 in billionths.
const (
	minTransferRate = 1_000_000_000
	maxTransferRate = 2_000_000_000
)

// AccountSet modifies account-level settings such as the domain, transfer
// rate and account flags.
type AccountSet struct{}

type accountSetInput struct {
	Account      string  `mapstructure:"account"`
	Domain       string  `mapstructure:"domain"`
	SetFlag      *uint32 `mapstructure:"set_flag"`
	ClearFlag    *uint32 `mapstructure:"clear_flag"`
	TransferRate *uint32 `mapstructure:"transfer_rate"`
	TickSize     *uint32 `mapstructure:"tick_size"`
}

func (AccountSet) Name() string { return "account_set" }

func (AccountSet) Description() string {
	return "Modify an account's settings: domain, transfer rate, tick size, or set/clear an account flag."
}

func (AccountSet) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"account":       map[string]any{"type": "string", "description": "Account to modify"},
			"domain":        map[string]any{"type": "string", "description": "Domain associated with the account (plain text, hex-encoded on build)"},
			"set_flag":      map[string]any{"type": "integer", "description": "Account flag to enable (asf value)"},
			"clear_flag":    map[string]any{"type": "integer", "description": "Account flag to disable (asf value)"},
			"transfer_rate": map[string]any{"type": "integer", "description": "Transfer fee in billionths; 0 disables"},
			"tick_size":     map[string]any{"type": "integer", "description": "Significant digits for offers (3-15); 0 disables"},
		},
		"required": []any{"account"},
	}
}

func (AccountSet) Build(raw map[string]any) (domain.Transaction, error) {
	var in accountSetInput
	if err := decode(raw, &in); err != nil {
		return domain.Transaction{}, err
	}
	if in.Account == "" {
		return domain.Transaction{}, fmt.Errorf("account_set requires an account")
	}

	fields := map[string]any{}
	if in.Domain != "" {
		fields["Domain"] = strings.ToUpper(hex.EncodeToString([]byte(in.Domain)))
	}
	if in.SetFlag != nil {
		fields["SetFlag"] = *in.SetFlag
	}
	if in.ClearFlag != nil {
		fields["ClearFlag"] = *in.ClearFlag
	}
	if in.TransferRate != nil {
		fields["TransferRate"] = *in.TransferRate
	}
	if in.TickSize != nil {
		fields["TickSize"] = *in.TickSize
	}
	return domain.Transaction{Type: "AccountSet", Account: in.Account, Fields: fields}, nil
}

func (AccountSet) Validate(tx domain.Transaction) error {
	if rate, ok := tx.Field("TransferRate").(uint32); ok {
		if rate != 0 && (rate < minTransferRate || rate > maxTransferRate) {
			return &domain.ValidationError{
				Kind:   "account_set",
				Reason: fmt.Sprintf("transfer_rate %d out of range [%d, %d]", rate, minTransferRate, maxTransferRate),
			}
		}
	}
	if size, ok := tx.Field("TickSize").(uint32); ok {
		if size != 0 && (size < 3 || size > 15) {
			return &domain.ValidationError{Kind: "account_set", Reason: "tick_size must be 0 or between 3 and 15"}
		}
	}
	return nil
}
