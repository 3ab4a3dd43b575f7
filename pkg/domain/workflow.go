package domain

// Stage identifies one state of the token issuance workflow. Stages only
// transition forward: no cycles, no skipping, no rollback.
type Stage string

const (
	StageProvision  Stage = "provision_accounts"
	StageConfigure  Stage = "configure_issuer"
	StageTrustLines Stage = "establish_trust_lines"
	StageMint       Stage = "mint_tokens"
	StageDone       Stage = "done"
)

// WorkflowContext accumulates the outputs of the issuance stages. Each
// stage extends the context additively; history already recorded is never
// rewritten.
type WorkflowContext struct {
	// Issuer is the account that issues the token. Set by the provision
	// stage.
	Issuer Account `json:"issuer"`

	// Holders are the accounts that receive the token. Set by the
	// provision stage.
	Holders []Account `json:"holders"`

	// Log is the ordered record of every transaction the workflow
	// submitted, across all stages.
	Log []TxRecord `json:"log"`
}

// Record appends a transaction record to the context's log.
func (wc *WorkflowContext) Record(rec TxRecord) {
	wc.Log = append(wc.Log, rec)
}
