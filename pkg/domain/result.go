package domain

// SubmissionResult is the finalized outcome of one submitted transaction.
// It is produced exactly once per submission attempt; the engine never
// retries on its own.
type SubmissionResult struct {
	// Hash is the transaction hash assigned by the network.
	Hash string

	// EngineResult is the settlement code, e.g. "tesSUCCESS".
	EngineResult string

	// Validated reports whether the transaction was included in a
	// validated ledger.
	Validated bool

	// Raw is the unmodified ledger response for callers that need fields
	// the descriptor does not surface.
	Raw map[string]any
}

// Account is a funded ledger account: an address plus the seed that signs
// for it. The seed is a secret and must never be logged.
type Account struct {
	Address string `json:"address"`
	Seed    string `json:"-"`
}

// TxRecord is one entry in a workflow's ordered result log.
type TxRecord struct {
	Description string `json:"description"`
	Hash        string `json:"hash"`
	Result      string `json:"result"`
}
