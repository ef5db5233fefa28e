package ui

import "github.com/socialfi-app/trader/internal/quote"

// Tea message types for the swap screen.

// QuoteMsg carries a quote engine snapshot.
type QuoteMsg struct {
	Snapshot quote.Snapshot
}

// TokensLoadedMsg reports the token list load result.
type TokensLoadedMsg struct {
	Err error
}

// BalancesMsg reports the balance refresh result.
type BalancesMsg struct {
	Err error
}

// SwapResultMsg reports the swap execution result.
type SwapResultMsg struct {
	Signature string
	Err       error
}
