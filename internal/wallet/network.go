package wallet

import "fmt"

// Network identifies a Solana cluster.
type Network string

const (
	NetworkMainnet Network = "mainnet-beta"
	NetworkDevnet  Network = "devnet"
	NetworkTestnet Network = "testnet"
)

// ParseNetwork validates a network identifier string.
func ParseNetwork(s string) (Network, error) {
	switch n := Network(s); n {
	case NetworkMainnet, NetworkDevnet, NetworkTestnet:
		return n, nil
	default:
		return "", fmt.Errorf("unknown network %q", s)
	}
}

// SupportsTrading reports whether the pricing service routes swaps on this
// network. Quote requests on other clusters are rejected before any fetch.
func (n Network) SupportsTrading() bool {
	return n == NetworkMainnet
}

// RPCEndpoint returns the public RPC endpoint for the cluster.
func (n Network) RPCEndpoint() string {
	return fmt.Sprintf("https://api.%s.solana.com", string(n))
}

func (n Network) String() string { return string(n) }
