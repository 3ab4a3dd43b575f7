package xrpl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFund(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{
			name: "classic field names",
			body: `{"account":{"address":"rTest","secret":"sTest"}}`,
		},
		{
			name: "modern field names",
			body: `{"account":{"classicAddress":"rTest","seed":"sTest"}}`,
		},
		{
			name: "top level seed",
			body: `{"account":{"address":"rTest"},"seed":"sTest"}`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := NewClient("wss://unused.example.com", WithFaucetURL(srv.URL))
			account, err := c.Fund(context.Background())
			require.NoError(t, err)
			assert.Equal(t, "rTest", account.Address)
			assert.Equal(t, "sTest", account.Seed)
		})
	}
}

func TestFund_NoFaucetConfigured(t *testing.T) {
	c := NewClient("wss://mainnet.example.com")
	_, err := c.Fund(context.Background())
	require.Error(t, err)
}

func TestFund_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient("wss://unused.example.com", WithFaucetURL(srv.URL))
	_, err := c.Fund(context.Background())
	require.Error(t, err)
}

func TestFund_IncompleteResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"account":{"address":"rTest"}}`))
	}))
	defer srv.Close()

	c := NewClient("wss://unused.example.com", WithFaucetURL(srv.URL))
	_, err := c.Fund(context.Background())
	require.Error(t, err)
}
