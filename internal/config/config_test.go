package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "network: mainnet-beta\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "mainnet-beta", cfg.Network)
	assert.Equal(t, "https://api.mainnet-beta.solana.com", cfg.RPCEndpoint)
	assert.Equal(t, DefaultQuoteAPIURL, cfg.QuoteAPIURL)
	assert.Equal(t, DefaultTokenListURL, cfg.TokenListURL)
	assert.Equal(t, DefaultSlippageBps, cfg.SlippageBps)
	assert.Equal(t, DefaultHTTPTimeout, cfg.HTTPTimeout)
	assert.Equal(t, DefaultDebounceMs, cfg.DebounceMs)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
network: devnet
rpc_endpoint: https://rpc.example.com
slippage_bps: 50
debounce_ms: 250
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "devnet", cfg.Network)
	assert.Equal(t, "https://rpc.example.com", cfg.RPCEndpoint)
	assert.Equal(t, 50, cfg.SlippageBps)
	assert.Equal(t, 250, cfg.DebounceMs)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfig(t, "network: mainnet-beta\n")

	t.Setenv("TRADER_PRIVATE_KEY", "4wBqpZM9msxygzsdeLPs6ZbbApkAg8s5r8EnkKeJi1Kz")
	t.Setenv("TRADER_RPC_ENDPOINT", "https://rpc.env.example.com")
	t.Setenv("TRADER_SLIPPAGE_BPS", "75")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "4wBqpZM9msxygzsdeLPs6ZbbApkAg8s5r8EnkKeJi1Kz", cfg.PrivateKey)
	assert.Equal(t, "https://rpc.env.example.com", cfg.RPCEndpoint)
	assert.Equal(t, 75, cfg.SlippageBps)
}

func TestLoadConfigRejectsUnknownNetwork(t *testing.T) {
	path := writeConfig(t, "network: localnet\n")
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "network")
}

func TestLoadConfigRejectsBadSlippage(t *testing.T) {
	path := writeConfig(t, "network: mainnet-beta\nslippage_bps: 90000\n")
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slippage")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
