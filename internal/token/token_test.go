package token

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToRawAmount(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		decimals int
		want     uint64
		wantErr  bool
	}{
		{name: "whole amount", amount: "10", decimals: 6, want: 10000000},
		{name: "fractional", amount: "0.05", decimals: 9, want: 50000000},
		{name: "floors excess precision", amount: "1.2345678", decimals: 6, want: 1234567},
		{name: "zero decimals", amount: "42", decimals: 0, want: 42},
		{name: "below one raw unit", amount: "0.0000001", decimals: 6, want: 0},
		{name: "whitespace trimmed", amount: " 1.5 ", decimals: 2, want: 150},
		{name: "empty", amount: "", decimals: 6, wantErr: true},
		{name: "negative", amount: "-1", decimals: 6, wantErr: true},
		{name: "garbage", amount: "abc", decimals: 6, wantErr: true},
		{name: "two dots", amount: "1.2.3", decimals: 6, wantErr: true},
		{name: "fraction syntax rejected", amount: "1/3", decimals: 6, wantErr: true},
		{name: "exponent rejected", amount: "1e5", decimals: 6, wantErr: true},
		{name: "negative decimals", amount: "1", decimals: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToRawAmount(tt.amount, tt.decimals)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0.0500", FormatAmount(50000000, 9))
	assert.Equal(t, "10.0000", FormatAmount(10000000, 6))
	assert.Equal(t, "1.50", FormatAmount(150, 2))
	assert.Equal(t, "42", FormatAmount(42, 0))
	assert.Equal(t, "0.0000", FormatAmount(0, 9))
}

// FormatAmount must be total for any raw amount and decimals in [0, 18]:
// it never panics and never renders more than four fractional digits.
func TestFormatAmountTotal(t *testing.T) {
	raws := []uint64{0, 1, 999, 1000000, 18446744073709551615}
	for decimals := 0; decimals <= 18; decimals++ {
		for _, raw := range raws {
			s := FormatAmount(raw, decimals)
			require.NotEmpty(t, s)
			dot := -1
			for i, r := range s {
				if r == '.' {
					dot = i
				}
			}
			if dot >= 0 {
				assert.LessOrEqual(t, len(s)-dot-1, 4,
					fmt.Sprintf("raw=%d decimals=%d rendered %q", raw, decimals, s))
			}
		}
	}
}

func TestFormatBalance(t *testing.T) {
	noBalance := Token{Symbol: "SOL", Decimals: 9}
	assert.Equal(t, "0.00", FormatBalance(noBalance))

	funded := Token{
		Symbol:   "SOL",
		Decimals: 9,
		Balance:  &Balance{RawAmount: 5000000000, Decimals: 9},
	}
	assert.Equal(t, "5.0000", FormatBalance(funded))

	lowPrecision := Token{
		Symbol:   "WHOLE",
		Decimals: 0,
		Balance:  &Balance{RawAmount: 7, Decimals: 0},
	}
	assert.Equal(t, "7", FormatBalance(lowPrecision))
}

func TestIsNative(t *testing.T) {
	assert.True(t, Token{Address: NativeMint}.IsNative())
	assert.False(t, Token{Address: "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"}.IsNative())
}
