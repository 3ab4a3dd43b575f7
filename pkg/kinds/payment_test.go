package kinds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftware/ledgermcp/pkg/domain"
)

func TestPayment_BuildNativeAmount(t *testing.T) {
	tx, err := Payment{}.Build(map[string]any{
		"account":     "rSender",
		"destination": "rReceiver",
		"amount":      "1000000",
	})
	require.NoError(t, err)

	assert.Equal(t, "Payment", tx.Type)
	assert.Equal(t, "rSender", tx.Account)
	amount, ok := tx.AmountField("Amount")
	require.True(t, ok)
	assert.True(t, amount.IsNative())
	assert.Equal(t, "1000000", amount.Value)
}

func TestPayment_BuildIssuedAmount(t *testing.T) {
	tx, err := Payment{}.Build(map[string]any{
		"account":     "rSender",
		"destination": "rReceiver",
		"amount": map[string]any{
			"currency": "USD",
			"issuer":   "rIssuer",
			"value":    "25.5",
		},
	})
	require.NoError(t, err)

	amount, ok := tx.AmountField("Amount")
	require.True(t, ok)
	assert.Equal(t, "USD", amount.Currency)
	assert.Equal(t, "rIssuer", amount.Issuer)
}

func TestPayment_BuildOptionalFields(t *testing.T) {
	tx, err := Payment{}.Build(map[string]any{
		"account":         "rSender",
		"destination":     "rReceiver",
		"amount":          "10",
		"destination_tag": float64(42), // JSON numbers decode as float64
	})
	require.NoError(t, err)
	assert.Equal(t, uint32(42), tx.Field("DestinationTag"))
}

func TestPayment_BuildRejectsMissingAmount(t *testing.T) {
	_, err := Payment{}.Build(map[string]any{
		"account":     "rSender",
		"destination": "rReceiver",
	})
	require.Error(t, err)
}

func TestPayment_ValidateRejectsSelfPayment(t *testing.T) {
	tx, err := Payment{}.Build(map[string]any{
		"account":     "rSame",
		"destination": "rSame",
		"amount":      "10",
	})
	require.NoError(t, err)

	var valErr *domain.ValidationError
	require.ErrorAs(t, Payment{}.Validate(tx), &valErr)
	assert.Equal(t, "payment", valErr.Kind)
}

func TestPayment_ValidateRejectsZeroAmount(t *testing.T) {
	tx, err := Payment{}.Build(map[string]any{
		"account":     "rSender",
		"destination": "rReceiver",
		"amount":      "0",
	})
	require.NoError(t, err)
	require.Error(t, Payment{}.Validate(tx))
}
