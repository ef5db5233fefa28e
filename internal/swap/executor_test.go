package swap

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/socialfi-app/trader/internal/quote"
	"github.com/socialfi-app/trader/internal/wallet"
)

type mockSubmitter struct {
	mu      sync.Mutex
	calls   int
	sig     string
	err     error
	started chan struct{}
	release chan struct{}
}

func (m *mockSubmitter) Submit(_ context.Context, _ *quote.Quote, _ wallet.Session) (string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.started != nil {
		close(m.started)
	}
	if m.release != nil {
		<-m.release
	}
	return m.sig, m.err
}

func (m *mockSubmitter) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func connectedSession(t *testing.T) wallet.Session {
	t.Helper()
	kp, err := wallet.NewKeypair(solana.NewWallet().PrivateKey.String(), wallet.NetworkMainnet)
	require.NoError(t, err)
	return kp
}

func testQuote() *quote.Quote {
	return &quote.Quote{
		Request: quote.Request{
			InputMint:   "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
			OutputMint:  "So11111111111111111111111111111111111111112",
			RawAmount:   10000000,
			SlippageBps: 100,
		},
		InAmount:  10000000,
		OutAmount: 50000000,
	}
}

func TestExecuteWithoutQuoteFailsBeforeSubmission(t *testing.T) {
	submitter := &mockSubmitter{}
	x := NewExecutor(submitter, connectedSession(t), zaptest.NewLogger(t))

	_, err := x.Execute(context.Background(), nil)
	require.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, 0, submitter.callCount(), "no submission call on precondition failure")
}

func TestExecuteWithoutWalletFailsBeforeSubmission(t *testing.T) {
	submitter := &mockSubmitter{}
	x := NewExecutor(submitter, wallet.NewDisconnected(wallet.NetworkMainnet), zaptest.NewLogger(t))

	_, err := x.Execute(context.Background(), testQuote())
	require.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, 0, submitter.callCount())
}

func TestExecuteReturnsSignature(t *testing.T) {
	submitter := &mockSubmitter{sig: "5Kd3abc"}
	x := NewExecutor(submitter, connectedSession(t), zaptest.NewLogger(t))

	sig, err := x.Execute(context.Background(), testQuote())
	require.NoError(t, err)
	assert.Equal(t, "5Kd3abc", sig)
}

func TestConcurrentExecuteRejected(t *testing.T) {
	submitter := &mockSubmitter{
		sig:     "firstsig",
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	x := NewExecutor(submitter, connectedSession(t), zaptest.NewLogger(t))

	results := make(chan error, 1)
	go func() {
		_, err := x.Execute(context.Background(), testQuote())
		results <- err
	}()

	select {
	case <-submitter.started:
	case <-time.After(time.Second):
		t.Fatal("first execution never started")
	}
	assert.True(t, x.Busy())

	_, err := x.Execute(context.Background(), testQuote())
	require.ErrorIs(t, err, ErrBusy, "second call must fail fast, not double-submit")

	close(submitter.release)
	require.NoError(t, <-results)
	assert.Equal(t, 1, submitter.callCount())
	assert.False(t, x.Busy())
}

func TestExecuteClassifiesErrors(t *testing.T) {
	rejected := &mockSubmitter{err: &UserRejectedError{Err: errors.New("declined in wallet")}}
	x := NewExecutor(rejected, connectedSession(t), zaptest.NewLogger(t))
	_, err := x.Execute(context.Background(), testQuote())
	assert.True(t, IsUserRejected(err))
	assert.False(t, IsSubmissionFailed(err))

	broken := &mockSubmitter{err: errors.New("rpc node down")}
	x = NewExecutor(broken, connectedSession(t), zaptest.NewLogger(t))
	_, err = x.Execute(context.Background(), testQuote())
	assert.True(t, IsSubmissionFailed(err), "unclassified submitter errors surface as submission failures")
}
