package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftware/ledgermcp/pkg/domain"
)

func newTestJournal(t *testing.T, opts ...Option) (*Journal, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewFromClient(client, opts...), mr
}

func TestJournal_AppendAndRecords(t *testing.T) {
	j, _ := newTestJournal(t)
	ctx := context.Background()

	require.NoError(t, j.Append(ctx, "run-1", domain.TxRecord{Description: "first", Hash: "A", Result: "tesSUCCESS"}))
	require.NoError(t, j.Append(ctx, "run-1", domain.TxRecord{Description: "second", Hash: "B", Result: "tesSUCCESS"}))

	records, err := j.Records(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "first", records[0].Description)
	assert.Equal(t, "B", records[1].Hash)
}

func TestJournal_KeyPrefix(t *testing.T) {
	j, mr := newTestJournal(t, WithPrefix("custom:"))
	ctx := context.Background()

	require.NoError(t, j.Append(ctx, "run-1", domain.TxRecord{Hash: "A"}))
	assert.True(t, mr.Exists("custom:run-1"))
}

func TestJournal_TTLExpiresRunLog(t *testing.T) {
	j, mr := newTestJournal(t, WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, j.Append(ctx, "run-1", domain.TxRecord{Hash: "A"}))
	require.True(t, mr.Exists("ledgermcp:journal:run-1"))

	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists("ledgermcp:journal:run-1"))
}

func TestJournal_UnknownRunIsEmpty(t *testing.T) {
	j, _ := newTestJournal(t)
	records, err := j.Records(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, records)
}
