package wallet

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

// Session is the read-only wallet view consumed by the trading core. The core
// never mutates wallet state; it reads the current address and network and
// uses the signing capability when submitting a swap.
type Session interface {
	// Address returns the wallet public key, or ok=false when no wallet is
	// connected.
	Address() (solana.PublicKey, bool)
	Network() Network
	Connected() bool
	SignTransaction(tx *solana.Transaction) error
}

// Keypair is a local keypair-backed Session.
type Keypair struct {
	privateKey solana.PrivateKey
	publicKey  solana.PublicKey
	network    Network
}

// NewKeypair creates a session from a base58-encoded private key.
func NewKeypair(privateKeyBase58 string, network Network) (*Keypair, error) {
	privateKeyBytes, err := base58.Decode(privateKeyBase58)
	if err != nil {
		return nil, fmt.Errorf("failed to decode private key: %w", err)
	}
	if len(privateKeyBytes) != 64 {
		return nil, fmt.Errorf("invalid private key length: expected 64 bytes, got %d", len(privateKeyBytes))
	}
	privateKey := solana.PrivateKey(privateKeyBytes)
	return &Keypair{
		privateKey: privateKey,
		publicKey:  privateKey.PublicKey(),
		network:    network,
	}, nil
}

func (k *Keypair) Address() (solana.PublicKey, bool) {
	return k.publicKey, true
}

func (k *Keypair) Network() Network { return k.network }

func (k *Keypair) Connected() bool { return true }

// SignTransaction signs the transaction with the session keypair.
func (k *Keypair) SignTransaction(tx *solana.Transaction) error {
	_, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(k.publicKey) {
			return &k.privateKey
		}
		return nil
	})
	return err
}

// String returns the wallet public key.
func (k *Keypair) String() string {
	return k.publicKey.String()
}
