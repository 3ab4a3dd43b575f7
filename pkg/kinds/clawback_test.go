package kinds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftware/ledgermcp/pkg/domain"
)

func TestClawback_Build(t *testing.T) {
	tx, err := Clawback{}.Build(map[string]any{
		"account": "rIssuer",
		"amount": map[string]any{
			"currency": "USD",
			"issuer":   "rHolder",
			"value":    "50",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Clawback", tx.Type)
	assert.NoError(t, Clawback{}.Validate(tx))
}

func TestClawback_BuildRejectsNativeAmount(t *testing.T) {
	_, err := Clawback{}.Build(map[string]any{
		"account": "rIssuer",
		"amount":  "1000000",
	})
	require.Error(t, err)
}

func TestClawback_ValidateRejectsZeroAmount(t *testing.T) {
	tx, err := Clawback{}.Build(map[string]any{
		"account": "rIssuer",
		"amount": map[string]any{
			"currency": "USD",
			"issuer":   "rHolder",
			"value":    "0",
		},
	})
	require.NoError(t, err)

	var valErr *domain.ValidationError
	require.ErrorAs(t, Clawback{}.Validate(tx), &valErr)
	assert.Equal(t, "clawback", valErr.Kind)
}

func TestClawback_ValidateRejectsSelfIssuer(t *testing.T) {
	tx, err := Clawback{}.Build(map[string]any{
		"account": "rIssuer",
		"amount": map[string]any{
			"currency": "USD",
			"issuer":   "rIssuer",
			"value":    "50",
		},
	})
	require.NoError(t, err)
	assert.Error(t, Clawback{}.Validate(tx))
}
