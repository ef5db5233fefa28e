package wallet

import (
	"errors"

	"github.com/gagliardetto/solana-go"
)

// ErrNotConnected is returned when signing is requested without a wallet.
var ErrNotConnected = errors.New("wallet: not connected")

// Disconnected is a Session with no wallet attached. The client can still
// browse tokens and quotes; signing fails.
type Disconnected struct {
	network Network
}

// NewDisconnected creates a walletless session on the given network.
func NewDisconnected(network Network) *Disconnected {
	return &Disconnected{network: network}
}

func (d *Disconnected) Address() (solana.PublicKey, bool) {
	return solana.PublicKey{}, false
}

func (d *Disconnected) Network() Network { return d.network }

func (d *Disconnected) Connected() bool { return false }

func (d *Disconnected) SignTransaction(*solana.Transaction) error {
	return ErrNotConnected
}
