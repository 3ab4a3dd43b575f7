package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoTool(name string) Tool {
	return Tool{
		Name:        name,
		Description: "echoes its input",
		InputSchema: map[string]any{"type": "object"},
		Execute: func(ctx context.Context, args map[string]any) (any, error) {
			return args, nil
		},
	}
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(echoTool("payment"))

	tool, ok := r.Get("payment")
	require.True(t, ok)
	assert.Equal(t, "payment", tool.Name)

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestRegistry_ListPreservesRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"payment", "trust_set", "account_set"} {
		r.Register(echoTool(name))
	}

	names := make([]string, 0, 3)
	for _, tool := range r.List() {
		names = append(names, tool.Name)
	}
	assert.Equal(t, []string{"payment", "trust_set", "account_set"}, names)
}

func TestRegistry_RegisterOverwritesKeepingOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(echoTool("payment"))
	r.Register(echoTool("trust_set"))

	replacement := echoTool("payment")
	replacement.Description = "updated"
	r.Register(replacement)

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "payment", list[0].Name)
	assert.Equal(t, "updated", list[0].Description)
}

func TestRegistry_Execute(t *testing.T) {
	r := NewRegistry()
	r.Register(Tool{
		Name: "failing",
		Execute: func(ctx context.Context, args map[string]any) (any, error) {
			return nil, errors.New("boom")
		},
	})
	r.Register(echoTool("payment"))

	out, err := r.Execute(context.Background(), "payment", map[string]any{"k": "v"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"k": "v"}, out)

	_, err = r.Execute(context.Background(), "failing", nil)
	assert.Error(t, err)

	_, err = r.Execute(context.Background(), "missing", nil)
	assert.EqualError(t, err, "tool not found: missing")
}
