package xrpl

import (
	"log/slog"

	"github.com/driftware/ledgermcp/internal/config"
	"github.com/driftware/ledgermcp/pkg/ports"
)

// Dialer builds the registry dial function: endpoint identifiers are
// resolved through the network catalog and turned into websocket clients.
func Dialer(cfg *config.Config, logger *slog.Logger) ports.DialFunc {
	return func(endpoint string) (ports.Conn, error) {
		network, err := cfg.Resolve(endpoint)
		if err != nil {
			return nil, err
		}
		opts := []Option{WithLogger(logger)}
		if network.FaucetURL != "" {
			opts = append(opts, WithFaucetURL(network.FaucetURL))
		}
		return NewClient(network.URL, opts...), nil
	}
}
