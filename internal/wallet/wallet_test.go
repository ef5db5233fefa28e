package wallet

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNetwork(t *testing.T) {
	for _, valid := range []string{"mainnet-beta", "devnet", "testnet"} {
		n, err := ParseNetwork(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, n.String())
	}

	_, err := ParseNetwork("localnet")
	require.Error(t, err)
}

func TestSupportsTrading(t *testing.T) {
	assert.True(t, NetworkMainnet.SupportsTrading())
	assert.False(t, NetworkDevnet.SupportsTrading())
	assert.False(t, NetworkTestnet.SupportsTrading())
}

func TestRPCEndpoint(t *testing.T) {
	assert.Equal(t, "https://api.devnet.solana.com", NetworkDevnet.RPCEndpoint())
}

func TestNewKeypair(t *testing.T) {
	generated := solana.NewWallet()

	kp, err := NewKeypair(generated.PrivateKey.String(), NetworkMainnet)
	require.NoError(t, err)

	addr, ok := kp.Address()
	assert.True(t, ok)
	assert.Equal(t, generated.PublicKey(), addr)
	assert.True(t, kp.Connected())
	assert.Equal(t, NetworkMainnet, kp.Network())
}

func TestNewKeypairRejectsBadInput(t *testing.T) {
	_, err := NewKeypair("not base58 at all!!", NetworkMainnet)
	require.Error(t, err)

	// Valid base58 but wrong length.
	_, err = NewKeypair("3yZe7d", NetworkMainnet)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "length")
}

func TestDisconnectedSession(t *testing.T) {
	s := NewDisconnected(NetworkDevnet)

	_, ok := s.Address()
	assert.False(t, ok)
	assert.False(t, s.Connected())
	assert.Equal(t, NetworkDevnet, s.Network())
	assert.ErrorIs(t, s.SignTransaction(nil), ErrNotConnected)
}
