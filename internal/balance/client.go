package balance

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
)

const (
	fetchMaxTries     = 3
	fetchInitialDelay = 200 * time.Millisecond
)

// Client reads on-chain balances over Solana RPC. It implements the token
// registry's BalanceClient. Transient RPC errors are retried with bounded
// backoff inside this adapter.
type Client struct {
	rpc    *rpc.Client
	logger *zap.Logger
}

// NewClient creates a balance client for the RPC endpoint.
func NewClient(endpoint string, logger *zap.Logger) *Client {
	return &Client{
		rpc:    rpc.New(endpoint),
		logger: logger.Named("balance_rpc"),
	}
}

// NativeBalance returns the owner's native balance in lamports.
func (c *Client) NativeBalance(ctx context.Context, owner solana.PublicKey) (uint64, error) {
	result, err := retry(ctx, c.logger, func() (*rpc.GetBalanceResult, error) {
		return c.rpc.GetBalance(ctx, owner, rpc.CommitmentConfirmed)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get native balance: %w", err)
	}
	return result.Value, nil
}

// TokenBalance returns the owner's balance for the mint, in the token's
// smallest unit, along with the decimal precision the chain reports.
func (c *Client) TokenBalance(ctx context.Context, owner solana.PublicKey, mint string) (uint64, int, error) {
	mintKey, err := solana.PublicKeyFromBase58(mint)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid mint address %q: %w", mint, err)
	}

	ata, _, err := solana.FindAssociatedTokenAddress(owner, mintKey)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to derive token account: %w", err)
	}

	result, err := retry(ctx, c.logger, func() (*rpc.GetTokenAccountBalanceResult, error) {
		return c.rpc.GetTokenAccountBalance(ctx, ata, rpc.CommitmentConfirmed)
	})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get token balance for %s: %w", mint, err)
	}
	if result.Value == nil {
		return 0, 0, fmt.Errorf("empty balance result for %s", mint)
	}

	amount, err := strconv.ParseUint(result.Value.Amount, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid balance amount %q: %w", result.Value.Amount, err)
	}
	return amount, int(result.Value.Decimals), nil
}

func retry[T any](ctx context.Context, logger *zap.Logger, operation func() (T, error)) (T, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = fetchInitialDelay

	notify := func(err error, delay time.Duration) {
		logger.Debug("RPC attempt failed, retrying",
			zap.Error(err),
			zap.Duration("backoff", delay))
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(fetchMaxTries),
		backoff.WithNotify(notify))
}
