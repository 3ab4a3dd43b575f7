package issuance

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/driftware/ledgermcp/pkg/domain"
	"github.com/driftware/ledgermcp/pkg/kinds"
	"github.com/driftware/ledgermcp/pkg/ports"
	"github.com/driftware/ledgermcp/pkg/submit"
)

// provisionAccounts funds one issuer and HolderCount holder accounts. All
// requests run concurrently; the stage completes only when every account
// exists.
func (r *runState) provisionAccounts(ctx context.Context, wc *domain.WorkflowContext) error {
	c, err := r.registry.Acquire(ctx, r.params.Network)
	if err != nil {
		return err
	}
	defer func() {
		if relErr := r.registry.Release(ctx, r.params.Network); relErr != nil {
			r.logger.Warn("failed to release connection after provisioning", "network", r.params.Network, "err", relErr)
		}
	}()

	faucet, ok := c.(ports.Faucet)
	if !ok {
		return fmt.Errorf("network %s does not support account provisioning", r.params.Network)
	}

	accounts := make([]domain.Account, r.params.HolderCount+1)
	g, gctx := errgroup.WithContext(ctx)
	for i := range accounts {
		g.Go(func() error {
			account, err := faucet.Fund(gctx)
			if err != nil {
				return fmt.Errorf("failed to fund account %d: %w", i, err)
			}
			accounts[i] = account
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(accounts))
	for _, account := range accounts {
		if seen[account.Address] {
			return fmt.Errorf("faucet returned duplicate address %s", account.Address)
		}
		seen[account.Address] = true
	}

	wc.Issuer = accounts[0]
	wc.Holders = accounts[1:]
	return nil
}

// configureIssuer applies the optional domain and the requested account
// flags to the issuer. Flag changes are separate transactions and are not
// safely batchable, so they run sequentially.
func (r *runState) configureIssuer(ctx context.Context, wc *domain.WorkflowContext) error {
	if r.params.Domain != "" {
		raw := map[string]any{
			"account": wc.Issuer.Address,
			"domain":  r.params.Domain,
		}
		rec, err := r.submitKind(ctx, kinds.AccountSet{}, raw, wc.Issuer.Seed, "set issuer domain")
		if err != nil {
			return err
		}
		r.record(ctx, wc, rec)
	}

	for _, flag := range r.params.IssuerFlags {
		raw := map[string]any{
			"account":  wc.Issuer.Address,
			"set_flag": flag,
		}
		rec, err := r.submitKind(ctx, kinds.AccountSet{}, raw, wc.Issuer.Seed,
			fmt.Sprintf("enable issuer flag %d", flag))
		if err != nil {
			return err
		}
		r.record(ctx, wc, rec)
	}
	return nil
}

// establishTrustLines opens one trust line per holder towards the issuer,
// all concurrently. A single failure fails the batch; trust lines already
// established stay in place.
func (r *runState) establishTrustLines(ctx context.Context, wc *domain.WorkflowContext) error {
	records := make([]domain.TxRecord, len(wc.Holders))
	g, gctx := errgroup.WithContext(ctx)
	for i, holder := range wc.Holders {
		g.Go(func() error {
			raw := map[string]any{
				"account":  holder.Address,
				"currency": r.params.Currency,
				"issuer":   wc.Issuer.Address,
				"limit":    r.params.TrustLimit,
			}
			rec, err := r.submitKind(gctx, kinds.TrustSet{}, raw, holder.Seed,
				fmt.Sprintf("trust line %s -> %s", holder.Address, wc.Issuer.Address))
			if err != nil {
				return err
			}
			records[i] = rec
			return nil
		})
	}
	err := g.Wait()

	// Completed siblings are part of the run's history even when the
	// batch as a whole failed.
	for _, rec := range records {
		if rec.Hash != "" {
			r.record(ctx, wc, rec)
		}
	}
	return err
}

// mintTokens pays the mint amount from the issuer to each holder. Runs
// sequentially to bound request concurrency; ordering is not a
// correctness requirement.
func (r *runState) mintTokens(ctx context.Context, wc *domain.WorkflowContext) error {
	for _, holder := range wc.Holders {
		raw := map[string]any{
			"account":     wc.Issuer.Address,
			"destination": holder.Address,
			"amount": map[string]any{
				"currency": r.params.Currency,
				"issuer":   wc.Issuer.Address,
				"value":    r.params.MintAmount,
			},
		}
		rec, err := r.submitKind(ctx, kinds.Payment{}, raw, wc.Issuer.Seed,
			fmt.Sprintf("mint %s %s to %s", r.params.MintAmount, r.params.Currency, holder.Address))
		if err != nil {
			return err
		}
		r.record(ctx, wc, rec)
	}
	return nil
}

// submitKind builds, validates and submits one transaction of the given
// kind, returning its log record.
func (r *runState) submitKind(ctx context.Context, kind kinds.Kind, raw map[string]any, seed, description string) (domain.TxRecord, error) {
	tx, err := kind.Build(raw)
	if err != nil {
		return domain.TxRecord{}, fmt.Errorf("%s: %w", description, err)
	}
	if err := kind.Validate(tx); err != nil {
		return domain.TxRecord{}, fmt.Errorf("%s: %w", description, err)
	}
	res, err := r.engine.Submit(ctx, submit.Request{
		Network: r.params.Network,
		Tx:      &tx,
		Seed:    seed,
	})
	if err != nil {
		return domain.TxRecord{}, fmt.Errorf("%s: %w", description, err)
	}
	return domain.TxRecord{
		Description: description,
		Hash:        res.Hash,
		Result:      res.EngineResult,
	}, nil
}
