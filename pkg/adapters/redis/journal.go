// Package redis provides a Redis-backed journal for workflow transaction
// records.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/driftware/ledgermcp/pkg/domain"
)

const defaultPrefix = "ledgermcp:journal:"

// Journal implements ports.Journal on top of a Redis list per run.
type Journal struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures the Journal.
type Option func(*Journal)

// WithPrefix overrides the key prefix.
func WithPrefix(prefix string) Option {
	return func(j *Journal) {
		j.prefix = prefix
	}
}

// WithTTL expires run logs after the given duration. Zero keeps them
// forever.
func WithTTL(ttl time.Duration) Option {
	return func(j *Journal) {
		j.ttl = ttl
	}
}

// NewFromClient creates a journal using an existing Redis client.
func NewFromClient(client *backend.Client, opts ...Option) *Journal {
	j := &Journal{
		client: client,
		prefix: defaultPrefix,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

func (j *Journal) key(runID string) string {
	return j.prefix + runID
}

// Append pushes the record onto the run's list and refreshes the TTL.
func (j *Journal) Append(ctx context.Context, runID string, rec domain.TxRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	key := j.key(runID)
	if err := j.client.RPush(ctx, key, payload).Err(); err != nil {
		return fmt.Errorf("failed to append record: %w", err)
	}
	if j.ttl > 0 {
		if err := j.client.Expire(ctx, key, j.ttl).Err(); err != nil {
			return fmt.Errorf("failed to set ttl: %w", err)
		}
	}
	return nil
}

// Records returns the run's ordered log.
func (j *Journal) Records(ctx context.Context, runID string) ([]domain.TxRecord, error) {
	raw, err := j.client.LRange(ctx, j.key(runID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}

	records := make([]domain.TxRecord, 0, len(raw))
	for _, item := range raw {
		var rec domain.TxRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, fmt.Errorf("failed to decode record: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}
