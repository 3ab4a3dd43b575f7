package domain

// Transaction is a kind-tagged descriptor of one ledger-mutating operation.
// It is produced by a kind-specific builder from raw tool input and is
// immutable once built: validators and the submission engine only read it.
type Transaction struct {
	// Type is the ledger transaction type, e.g. "Payment" or "TrustSet".
	Type string

	// Account is the address the transaction acts on behalf of.
	Account string

	// Fields holds the normalized kind-specific fields. Amount values are
	// stored as domain.Amount and converted at serialization time.
	Fields map[string]any
}

// Field returns a kind-specific field, or nil if absent.
func (t Transaction) Field(name string) any {
	return t.Fields[name]
}

// AmountField returns a field as an Amount. The second return is false if
// the field is absent or not an Amount.
func (t Transaction) AmountField(name string) (Amount, bool) {
	a, ok := t.Fields[name].(Amount)
	return a, ok
}

// TxJSON renders the descriptor as the wire-level tx_json object expected
// by the ledger network. Server-assignable fields (Sequence, Fee,
// LastLedgerSequence) are intentionally absent; the transport autofills
// them on request.
func (t Transaction) TxJSON() map[string]any {
	out := map[string]any{
		"TransactionType": t.Type,
		"Account":         t.Account,
	}
	for name, value := range t.Fields {
		if amount, ok := value.(Amount); ok {
			out[name] = amount.TxValue()
			continue
		}
		out[name] = value
	}
	return out
}
