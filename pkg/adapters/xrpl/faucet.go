package xrpl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/driftware/ledgermcp/pkg/domain"
)

// faucetResponse models the account payload returned by test-network
// faucets. Field names vary slightly between deployments, so both the
// classic and modern spellings are accepted.
type faucetResponse struct {
	Account struct {
		Address        string `json:"address"`
		ClassicAddress string `json:"classicAddress"`
		Secret         string `json:"secret"`
		Seed           string `json:"seed"`
	} `json:"account"`
	Seed string `json:"seed"`
}

// Fund requests a fresh funded account from the configured faucet.
// Implements ports.Faucet; endpoints without a faucet URL do not support
// provisioning.
func (c *Client) Fund(ctx context.Context) (domain.Account, error) {
	if c.faucetURL == "" {
		return domain.Account{}, fmt.Errorf("endpoint %s has no faucet configured", c.endpoint)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.faucetURL, bytes.NewReader([]byte("{}")))
	if err != nil {
		return domain.Account{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Account{}, fmt.Errorf("faucet request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.Account{}, fmt.Errorf("faucet returned status %d", resp.StatusCode)
	}

	var body faucetResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.Account{}, fmt.Errorf("failed to decode faucet response: %w", err)
	}

	account := domain.Account{
		Address: body.Account.Address,
		Seed:    body.Account.Secret,
	}
	if account.Address == "" {
		account.Address = body.Account.ClassicAddress
	}
	if account.Seed == "" {
		account.Seed = body.Account.Seed
	}
	if account.Seed == "" {
		account.Seed = body.Seed
	}
	if account.Address == "" || account.Seed == "" {
		return domain.Account{}, fmt.Errorf("faucet response missing address or seed")
	}

	c.logger.InfoContext(ctx, "account funded", "address", account.Address)
	return account, nil
}
