package token

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/socialfi-app/trader/internal/wallet"
)

// ListClient fetches the canonical token list for a network.
type ListClient interface {
	FetchTokens(ctx context.Context, network wallet.Network) ([]Token, error)
}

// BalanceClient reads on-chain balances. Implemented by the chain RPC
// adapter; the registry only consumes it.
type BalanceClient interface {
	NativeBalance(ctx context.Context, owner solana.PublicKey) (uint64, error)
	TokenBalance(ctx context.Context, owner solana.PublicKey, mint string) (amount uint64, decimals int, err error)
}

const (
	listCacheTTL        = 5 * time.Minute
	balanceFetchWorkers = 8
)

// defaultPopular is the shortlist shown before the full list loads. It is
// reconciled by symbol against the fetched list.
var defaultPopular = []Token{
	{
		Address:  NativeMint,
		Symbol:   "SOL",
		Name:     "Solana",
		Decimals: 9,
	},
	{
		Address:  "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
		Symbol:   "USDC",
		Name:     "USD Coin",
		Decimals: 6,
	},
}

// Registry maintains the set of known tokens for the active network and the
// user's balances against them. It is owned by a single trading session.
type Registry struct {
	logger   *zap.Logger
	list     ListClient
	balances BalanceClient

	// listCache keeps the last good list per network so rapid reloads do not
	// refetch.
	listCache *gocache.Cache

	mu      sync.RWMutex
	tokens  []Token
	index   map[string]int
	popular []Token
	input   *Token
	output  *Token
}

// NewRegistry creates a registry backed by the given list and balance clients.
func NewRegistry(list ListClient, balances BalanceClient, logger *zap.Logger) *Registry {
	popular := make([]Token, len(defaultPopular))
	copy(popular, defaultPopular)
	return &Registry{
		logger:    logger.Named("token_registry"),
		list:      list,
		balances:  balances,
		listCache: gocache.New(listCacheTTL, listCacheTTL),
		index:     make(map[string]int),
		popular:   popular,
	}
}

// LoadTokens fetches and replaces the token set for the network. On failure
// the previous set is left intact and the error is returned; the set is never
// partially overwritten.
func (r *Registry) LoadTokens(ctx context.Context, network wallet.Network) error {
	if cached, ok := r.listCache.Get(network.String()); ok {
		r.replaceTokens(cached.([]Token))
		r.logger.Debug("token list served from cache", zap.String("network", network.String()))
		return nil
	}

	fetched, err := r.list.FetchTokens(ctx, network)
	if err != nil {
		r.logger.Error("token list fetch failed",
			zap.String("network", network.String()),
			zap.Error(err))
		return fmt.Errorf("load tokens for %s: %w", network, err)
	}

	deduped := dedupeByAddress(fetched)
	r.listCache.Set(network.String(), deduped, gocache.DefaultExpiration)
	r.replaceTokens(deduped)

	r.logger.Info("token list loaded",
		zap.String("network", network.String()),
		zap.Int("count", len(deduped)))
	return nil
}

func (r *Registry) replaceTokens(list []Token) {
	tokens := make([]Token, len(list))
	copy(tokens, list)

	index := make(map[string]int, len(tokens))
	for i, t := range tokens {
		index[t.Address] = i
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens = tokens
	r.index = index

	// Reconcile the popular shortlist with the canonical entries.
	for i, p := range r.popular {
		for _, t := range tokens {
			if t.Symbol == p.Symbol {
				r.popular[i] = t
				break
			}
		}
	}
}

func dedupeByAddress(list []Token) []Token {
	seen := make(map[string]struct{}, len(list))
	out := list[:0:0]
	for _, t := range list {
		if _, dup := seen[t.Address]; dup {
			continue
		}
		seen[t.Address] = struct{}{}
		out = append(out, t)
	}
	return out
}

// RefreshBalances fetches the owner's balance for every known token,
// including the native asset via its sentinel mint. A failed lookup for one
// token leaves that token's balance unset and does not abort the batch.
func (r *Registry) RefreshBalances(ctx context.Context, owner solana.PublicKey) error {
	r.mu.RLock()
	snapshot := make([]Token, len(r.tokens))
	copy(snapshot, r.tokens)
	r.mu.RUnlock()

	results := make([]*Balance, len(snapshot))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(balanceFetchWorkers)
	for i, t := range snapshot {
		g.Go(func() error {
			b, err := r.fetchOne(gctx, owner, t)
			if err != nil {
				r.logger.Warn("balance lookup failed",
					zap.String("mint", t.Address),
					zap.String("symbol", t.Symbol),
					zap.Error(err))
				return nil
			}
			results[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range snapshot {
		if idx, ok := r.index[t.Address]; ok {
			r.tokens[idx].Balance = results[i]
		}
	}
	for i := range r.popular {
		if idx, ok := r.index[r.popular[i].Address]; ok {
			r.popular[i].Balance = r.tokens[idx].Balance
		}
	}
	return nil
}

func (r *Registry) fetchOne(ctx context.Context, owner solana.PublicKey, t Token) (*Balance, error) {
	if t.IsNative() {
		raw, err := r.balances.NativeBalance(ctx, owner)
		if err != nil {
			return nil, err
		}
		return &Balance{RawAmount: raw, Decimals: NativeDecimals}, nil
	}
	raw, decimals, err := r.balances.TokenBalance(ctx, owner, t.Address)
	if err != nil {
		return nil, err
	}
	return &Balance{RawAmount: raw, Decimals: decimals}, nil
}

// Tokens returns a copy of the current token list.
func (r *Registry) Tokens() []Token {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Token, len(r.tokens))
	copy(out, r.tokens)
	return out
}

// Popular returns the popular-token shortlist.
func (r *Registry) Popular() []Token {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Token, len(r.popular))
	copy(out, r.popular)
	return out
}

// Lookup finds a token by mint address.
func (r *Registry) Lookup(address string) (Token, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i, ok := r.index[address]; ok {
		return r.tokens[i], true
	}
	return Token{}, false
}

// SelectInput records the token the user is paying with.
func (r *Registry) SelectInput(t *Token) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.input = t
}

// SelectOutput records the token the user is buying.
func (r *Registry) SelectOutput(t *Token) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.output = t
}

// Selected returns the current input/output token selection; either may be nil.
func (r *Registry) Selected() (input, output *Token) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.input, r.output
}
