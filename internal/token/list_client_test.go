package token

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/socialfi-app/trader/internal/wallet"
)

func TestFetchTokens(t *testing.T) {
	var gotEnv string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotEnv = r.URL.Query().Get("env")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"address":"` + NativeMint + `","symbol":"SOL","name":"Solana","decimals":9},
			{"address":"` + usdcMint + `","symbol":"USDC","name":"USD Coin","decimals":6}
		]`))
	}))
	defer server.Close()

	c := NewHTTPListClient(server.URL, time.Second, zaptest.NewLogger(t))

	tokens, err := c.FetchTokens(context.Background(), wallet.NetworkMainnet)
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, "SOL", tokens[0].Symbol)
	assert.Equal(t, 9, tokens[0].Decimals)
	assert.Empty(t, gotEnv, "mainnet fetch carries no env parameter")

	_, err = c.FetchTokens(context.Background(), wallet.NetworkDevnet)
	require.NoError(t, err)
	assert.Equal(t, "devnet", gotEnv)
}

func TestFetchTokensServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := NewHTTPListClient(server.URL, time.Second, zaptest.NewLogger(t))
	_, err := c.FetchTokens(context.Background(), wallet.NetworkMainnet)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
