package token

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// NativeMint is the sentinel mint address used for the chain's native asset.
const NativeMint = "So11111111111111111111111111111111111111112"

// NativeDecimals is the decimal precision of the native asset (SOL lamports).
const NativeDecimals = 9

// Token describes one tradable asset. The registry owns the canonical list
// fetched per network; a Token is immutable once fetched, except for Balance
// which is set by balance refreshes.
type Token struct {
	Address  string   `json:"address"`
	Symbol   string   `json:"symbol"`
	Name     string   `json:"name"`
	Decimals int      `json:"decimals"`
	LogoURI  string   `json:"logoURI,omitempty"`
	Tags     []string `json:"tags,omitempty"`

	Balance *Balance `json:"-"`
}

// Balance is a raw on-chain amount in the token's smallest unit.
type Balance struct {
	RawAmount uint64
	Decimals  int
}

// IsNative reports whether the token is the network's native asset.
func (t Token) IsNative() bool {
	return t.Address == NativeMint
}

// maxDisplayDigits caps the fractional digits rendered for any amount.
const maxDisplayDigits = 4

// FormatAmount renders a raw amount as a decimal string with at most four
// fractional digits, or fewer when the token's precision is lower.
func FormatAmount(raw uint64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	digits := decimals
	if digits > maxDisplayDigits {
		digits = maxDisplayDigits
	}
	scale := pow10(decimals)
	value := new(big.Rat).SetFrac(new(big.Int).SetUint64(raw), scale)
	return value.FloatString(digits)
}

// FormatBalance renders the token's balance for display. A token with no
// balance recorded formats as "0.00".
func FormatBalance(t Token) string {
	if t.Balance == nil {
		return "0.00"
	}
	return FormatAmount(t.Balance.RawAmount, t.Balance.Decimals)
}

// ToRawAmount converts a human-entered decimal amount into the token's
// smallest unit. The result is floored: any fraction below one raw unit is
// dropped, so the converted amount never exceeds what the user typed.
func ToRawAmount(amount string, decimals int) (uint64, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return 0, errors.New("empty amount")
	}
	if decimals < 0 {
		return 0, fmt.Errorf("invalid decimals %d", decimals)
	}
	if err := validateDecimalString(amount); err != nil {
		return 0, err
	}

	value, ok := new(big.Rat).SetString(amount)
	if !ok {
		return 0, fmt.Errorf("invalid amount %q", amount)
	}
	value.Mul(value, new(big.Rat).SetInt(pow10(decimals)))

	// Quo truncates; amount is non-negative so this is a floor.
	raw := new(big.Int).Quo(value.Num(), value.Denom())
	if !raw.IsUint64() {
		return 0, fmt.Errorf("amount %q overflows raw units", amount)
	}
	return raw.Uint64(), nil
}

// validateDecimalString restricts input to plain decimal notation: digits and
// at most one dot. big.Rat would also accept fractions and exponents, which
// are not valid user input here.
func validateDecimalString(s string) error {
	dots := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.':
			dots++
			if dots > 1 {
				return fmt.Errorf("invalid amount %q", s)
			}
		default:
			return fmt.Errorf("invalid amount %q", s)
		}
	}
	if s == "." {
		return fmt.Errorf("invalid amount %q", s)
	}
	return nil
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}
