package quote

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/socialfi-app/trader/internal/token"
	"github.com/socialfi-app/trader/internal/wallet"
)

// Fetcher obtains a quote for a request tuple. Implemented by Client.
type Fetcher interface {
	FetchQuote(ctx context.Context, req Request) (*Quote, error)
}

// priceImpactWarnPct is the impact above which the engine exposes a warning.
const priceImpactWarnPct = 1.0

const (
	msgUnsupportedNetwork = "swaps are only available on mainnet-beta; switch networks to trade"
	msgNoRoute            = "no route found for this token pair"
	msgFetchFailed        = "failed to fetch quote"
	msgInvalidAmount      = "invalid amount"
)

// Engine tracks the quoting state for one trading session: one input token,
// one output token, one amount at a time. Every issued request carries a
// sequence number and its tuple; responses that match neither the latest
// sequence nor the current tuple are discarded on arrival, so a stale
// response can never become the selected quote. In-flight requests are not
// aborted at the transport level.
type Engine struct {
	logger  *zap.Logger
	fetcher Fetcher
	session wallet.Session

	mu       sync.Mutex
	seq      uint64
	current  Request
	inToken  *token.Token
	outToken *token.Token
	state    State
	selected *Quote
	message  string
}

// NewEngine creates a quote engine bound to a wallet session.
func NewEngine(fetcher Fetcher, session wallet.Session, logger *zap.Logger) *Engine {
	return &Engine{
		logger:  logger.Named("quote_engine"),
		fetcher: fetcher,
		session: session,
		state:   StateIdle,
	}
}

// Refresh applies a new quote request. The first return value is the state
// after the synchronous transition. When a fetch is required, the second
// return value is non-nil: running it performs the fetch, applies the result
// (discarding it if superseded by then) and returns the resulting snapshot.
// The caller decides where the fetch runs; the engine itself stays
// event-driven.
func (e *Engine) Refresh(ctx context.Context, in, out *token.Token, amount string, slippageBps int) (Snapshot, func() Snapshot) {
	e.mu.Lock()

	// Any previously issued request is superseded from this point on,
	// whatever state we end up in.
	e.seq++
	seq := e.seq

	if in == nil || out == nil || isZeroAmount(amount) {
		e.toIdleLocked()
		snap := e.snapshotLocked()
		e.mu.Unlock()
		return snap, nil
	}

	if !e.session.Network().SupportsTrading() {
		e.state = StateUnsupported
		e.selected = nil
		e.current = Request{}
		e.message = msgUnsupportedNetwork
		snap := e.snapshotLocked()
		e.mu.Unlock()
		e.logger.Info("quote request rejected: network not supported",
			zap.String("network", e.session.Network().String()))
		return snap, nil
	}

	raw, err := token.ToRawAmount(amount, in.Decimals)
	if err != nil {
		e.state = StateFailed
		e.selected = nil
		e.current = Request{}
		e.message = msgInvalidAmount
		snap := e.snapshotLocked()
		e.mu.Unlock()
		return snap, nil
	}
	if raw == 0 {
		// Rounds down to nothing; treat like an empty input.
		e.toIdleLocked()
		snap := e.snapshotLocked()
		e.mu.Unlock()
		return snap, nil
	}

	req := Request{
		InputMint:   in.Address,
		OutputMint:  out.Address,
		RawAmount:   raw,
		SlippageBps: slippageBps,
	}
	if req != e.current {
		// A new tuple invalidates the selection made for the old one.
		e.selected = nil
	}
	e.current = req
	e.inToken = in
	e.outToken = out
	e.state = StateRequesting
	e.message = ""
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.logger.Debug("issuing quote request",
		zap.Uint64("seq", seq),
		zap.String("input_mint", req.InputMint),
		zap.String("output_mint", req.OutputMint),
		zap.Uint64("raw_amount", req.RawAmount),
		zap.Int("slippage_bps", req.SlippageBps))

	fetch := func() Snapshot {
		q, err := e.fetcher.FetchQuote(ctx, req)
		return e.complete(seq, req, q, err)
	}
	return snap, fetch
}

// complete applies a fetch result. Responses for superseded requests are
// discarded: the sequence number must still be the latest issued and the
// tuple must still be the current one.
func (e *Engine) complete(seq uint64, req Request, q *Quote, err error) Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	if seq != e.seq || req != e.current {
		e.logger.Debug("discarding stale quote response",
			zap.Uint64("seq", seq),
			zap.Uint64("latest_seq", e.seq))
		return e.snapshotLocked()
	}

	switch {
	case errors.Is(err, ErrNoRoute):
		e.state = StateEmpty
		e.selected = nil
		e.message = msgNoRoute
	case err != nil:
		e.state = StateFailed
		e.selected = nil
		e.message = msgFetchFailed
		e.logger.Error("quote fetch failed",
			zap.Uint64("seq", seq),
			zap.Error(err))
	default:
		e.state = StateQuoted
		e.selected = q
		e.message = ""
		e.logger.Debug("quote selected",
			zap.Uint64("seq", seq),
			zap.Uint64("out_amount", q.OutAmount),
			zap.Float64("price_impact_pct", q.PriceImpactPct))
	}
	return e.snapshotLocked()
}

// Selected returns the currently selected quote, if any.
func (e *Engine) Selected() *Quote {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selected
}

// Snapshot returns the current engine state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) toIdleLocked() {
	e.state = StateIdle
	e.selected = nil
	e.current = Request{}
	e.message = ""
}

func (e *Engine) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:   e.state,
		Quote:   e.selected,
		Message: e.message,
	}
	if e.selected != nil && e.outToken != nil {
		snap.OutputAmount = token.FormatAmount(e.selected.OutAmount, e.outToken.Decimals)
		if e.selected.PriceImpactPct > priceImpactWarnPct {
			snap.Warning = fmt.Sprintf("high price impact: %.2f%%", e.selected.PriceImpactPct)
		}
	}
	return snap
}

// isZeroAmount reports whether the entered amount is empty or a well-formed
// zero ("", "0", "0.00", "."). Malformed input is not zero; it falls through
// to ToRawAmount and is rejected there.
func isZeroAmount(amount string) bool {
	trimmed := strings.TrimSpace(amount)
	if trimmed == "" {
		return true
	}
	dots := 0
	for _, r := range trimmed {
		switch r {
		case '.':
			dots++
		case '0':
		default:
			return false
		}
	}
	return dots <= 1
}
