package swap

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	"github.com/socialfi-app/trader/internal/quote"
	"github.com/socialfi-app/trader/internal/wallet"
)

const (
	broadcastMaxTries     = 3
	broadcastInitialDelay = 500 * time.Millisecond
)

// SolanaSubmitter implements Submitter against the swap-building service and
// a Solana RPC node. Transaction construction is owned by the service: the
// submitter receives a serialized transaction, treats it as opaque bytes,
// asks the wallet session to sign it and broadcasts it.
type SolanaSubmitter struct {
	client  *http.Client
	baseURL string
	rpc     *rpc.Client
	logger  *zap.Logger
}

// NewSolanaSubmitter creates a submitter for the given swap API base URL and
// RPC endpoint.
func NewSolanaSubmitter(baseURL, rpcEndpoint string, timeout time.Duration, logger *zap.Logger) *SolanaSubmitter {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SolanaSubmitter{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		rpc:     rpc.New(rpcEndpoint),
		logger:  logger.Named("swap_submitter"),
	}
}

type swapRequest struct {
	QuoteResponse json.RawMessage `json:"quoteResponse"`
	UserPublicKey string          `json:"userPublicKey"`
}

type swapResponse struct {
	SwapTransaction string `json:"swapTransaction"`
}

// Submit builds, signs and broadcasts the swap transaction for the quote.
func (s *SolanaSubmitter) Submit(ctx context.Context, q *quote.Quote, session wallet.Session) (string, error) {
	addr, ok := session.Address()
	if !ok {
		return "", ErrInvalidState
	}

	tx, err := s.buildTransaction(ctx, q, addr)
	if err != nil {
		return "", &SubmissionError{Err: err}
	}

	if err := session.SignTransaction(tx); err != nil {
		return "", &UserRejectedError{Err: err}
	}

	sig, err := s.broadcast(ctx, tx)
	if err != nil {
		return "", &SubmissionError{Err: err}
	}
	return sig.String(), nil
}

// buildTransaction asks the swap service for a serialized transaction for
// the quote.
func (s *SolanaSubmitter) buildTransaction(ctx context.Context, q *quote.Quote, owner solana.PublicKey) (*solana.Transaction, error) {
	body, err := json.Marshal(swapRequest{
		QuoteResponse: q.Payload,
		UserPublicKey: owner.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode swap request: %w", err)
	}

	endpoint := s.baseURL + "/swap"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("swap request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read swap response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("swap endpoint returned status %d", resp.StatusCode)
	}

	var sr swapResponse
	if err := json.Unmarshal(respBody, &sr); err != nil {
		return nil, fmt.Errorf("failed to decode swap response: %w", err)
	}
	if sr.SwapTransaction == "" {
		return nil, fmt.Errorf("swap response missing transaction")
	}

	raw, err := base64.StdEncoding.DecodeString(sr.SwapTransaction)
	if err != nil {
		return nil, fmt.Errorf("failed to decode transaction: %w", err)
	}
	tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize transaction: %w", err)
	}
	return tx, nil
}

// broadcast sends the signed transaction, retrying transient RPC errors with
// exponential backoff. Retries live here at the collaborator boundary; the
// executor above never retries.
func (s *SolanaSubmitter) broadcast(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = broadcastInitialDelay

	notify := func(err error, delay time.Duration) {
		s.logger.Warn("broadcast attempt failed, retrying",
			zap.Error(err),
			zap.Duration("backoff", delay))
	}

	operation := func() (solana.Signature, error) {
		return s.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
			PreflightCommitment: rpc.CommitmentConfirmed,
		})
	}

	sig, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(broadcastMaxTries),
		backoff.WithNotify(notify))
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to broadcast transaction: %w", err)
	}
	return sig, nil
}
