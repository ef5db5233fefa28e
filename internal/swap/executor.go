package swap

import (
	"context"
	"errors"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/socialfi-app/trader/internal/quote"
	"github.com/socialfi-app/trader/internal/wallet"
)

// Submitter turns a quote into a broadcast transaction: it obtains the
// service-built transaction, has the session sign it and sends it. The
// executor owns none of that; it only awaits the resolution.
type Submitter interface {
	Submit(ctx context.Context, q *quote.Quote, session wallet.Session) (signature string, err error)
}

// Executor turns a selected quote plus a connected wallet into a submitted
// transaction. At most one execution may be in flight per session. Failures
// are reported to the caller and never retried here; recovery is a manual
// re-press.
type Executor struct {
	logger    *zap.Logger
	session   wallet.Session
	submitter Submitter
	busy      atomic.Bool
}

// NewExecutor creates a swap executor bound to a wallet session.
func NewExecutor(submitter Submitter, session wallet.Session, logger *zap.Logger) *Executor {
	return &Executor{
		logger:    logger.Named("swap_executor"),
		session:   session,
		submitter: submitter,
	}
}

// Execute submits the selected quote and returns the transaction signature.
// Preconditions are checked before any network call: a quote must be
// selected and a wallet address present, otherwise ErrInvalidState. A call
// while another execution is in flight fails with ErrBusy.
func (x *Executor) Execute(ctx context.Context, q *quote.Quote) (string, error) {
	if q == nil {
		return "", ErrInvalidState
	}
	addr, ok := x.session.Address()
	if !ok {
		return "", ErrInvalidState
	}

	if !x.busy.CompareAndSwap(false, true) {
		return "", ErrBusy
	}
	defer x.busy.Store(false)

	x.logger.Info("executing swap",
		zap.String("wallet", addr.String()),
		zap.String("input_mint", q.Request.InputMint),
		zap.String("output_mint", q.Request.OutputMint),
		zap.Uint64("in_amount", q.InAmount),
		zap.Uint64("out_amount", q.OutAmount))

	signature, err := x.submitter.Submit(ctx, q, x.session)
	if err != nil {
		x.logger.Error("swap failed", zap.Error(err))
		var rejected *UserRejectedError
		var submission *SubmissionError
		if errors.As(err, &rejected) || errors.As(err, &submission) {
			return "", err
		}
		return "", &SubmissionError{Err: err}
	}

	x.logger.Info("swap submitted", zap.String("signature", signature))
	return signature, nil
}

// Busy reports whether an execution is currently in flight.
func (x *Executor) Busy() bool {
	return x.busy.Load()
}
