package trading

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/socialfi-app/trader/internal/balance"
	"github.com/socialfi-app/trader/internal/config"
	"github.com/socialfi-app/trader/internal/quote"
	"github.com/socialfi-app/trader/internal/swap"
	"github.com/socialfi-app/trader/internal/token"
	"github.com/socialfi-app/trader/internal/wallet"
)

// Session owns one trading flow: a token registry, a quote engine and a swap
// executor bound to a single wallet session. Components are injected, not
// reached through globals, so each can be tested in isolation.
type Session struct {
	logger      *zap.Logger
	wallet      wallet.Session
	registry    *token.Registry
	engine      *quote.Engine
	executor    *swap.Executor
	debouncer   *quote.Debouncer
	slippageBps int
}

// SessionConfig carries the injected components.
type SessionConfig struct {
	Logger      *zap.Logger
	Wallet      wallet.Session
	Registry    *token.Registry
	Engine      *quote.Engine
	Executor    *swap.Executor
	SlippageBps int
	Debounce    time.Duration
}

// NewSession wires a trading session from its components.
func NewSession(cfg *SessionConfig) (*Session, error) {
	if cfg == nil || cfg.Logger == nil || cfg.Wallet == nil ||
		cfg.Registry == nil || cfg.Engine == nil || cfg.Executor == nil {
		return nil, errors.New("trading: incomplete session config")
	}
	slippage := cfg.SlippageBps
	if slippage <= 0 {
		slippage = config.DefaultSlippageBps
	}
	return &Session{
		logger:      cfg.Logger.Named("trading_session"),
		wallet:      cfg.Wallet,
		registry:    cfg.Registry,
		engine:      cfg.Engine,
		executor:    cfg.Executor,
		debouncer:   quote.NewDebouncer(cfg.Debounce),
		slippageBps: slippage,
	}, nil
}

// Build constructs a full session from configuration: wallet session, HTTP
// clients, RPC adapter and the three core components.
func Build(cfg *config.Config, logger *zap.Logger) (*Session, error) {
	network, err := wallet.ParseNetwork(cfg.Network)
	if err != nil {
		return nil, err
	}

	var session wallet.Session
	if cfg.PrivateKey != "" {
		session, err = wallet.NewKeypair(cfg.PrivateKey, network)
		if err != nil {
			return nil, err
		}
	} else {
		session = wallet.NewDisconnected(network)
	}

	timeout := time.Duration(cfg.HTTPTimeout) * time.Second
	listClient := token.NewHTTPListClient(cfg.TokenListURL, timeout, logger)
	balanceClient := balance.NewClient(cfg.RPCEndpoint, logger)
	quoteClient := quote.NewClient(cfg.QuoteAPIURL, timeout, logger)
	submitter := swap.NewSolanaSubmitter(cfg.SwapAPIURL, cfg.RPCEndpoint, timeout, logger)

	return NewSession(&SessionConfig{
		Logger:      logger,
		Wallet:      session,
		Registry:    token.NewRegistry(listClient, balanceClient, logger),
		Engine:      quote.NewEngine(quoteClient, session, logger),
		Executor:    swap.NewExecutor(submitter, session, logger),
		SlippageBps: cfg.SlippageBps,
		Debounce:    time.Duration(cfg.DebounceMs) * time.Millisecond,
	})
}

// Wallet returns the wallet session view.
func (s *Session) Wallet() wallet.Session { return s.wallet }

// Registry returns the token registry.
func (s *Session) Registry() *token.Registry { return s.registry }

// Engine returns the quote engine.
func (s *Session) Engine() *quote.Engine { return s.engine }

// Executor returns the swap executor.
func (s *Session) Executor() *swap.Executor { return s.executor }

// LoadTokens loads the token list for the wallet's network.
func (s *Session) LoadTokens(ctx context.Context) error {
	return s.registry.LoadTokens(ctx, s.wallet.Network())
}

// RefreshBalances refreshes balances for the connected wallet. A walletless
// session is a no-op.
func (s *Session) RefreshBalances(ctx context.Context) error {
	owner, ok := s.wallet.Address()
	if !ok {
		return nil
	}
	return s.registry.RefreshBalances(ctx, owner)
}

// RequestQuote feeds the entered amount and the registry's current token
// selection into the engine. See quote.Engine.Refresh for the fetch closure
// contract.
func (s *Session) RequestQuote(ctx context.Context, amount string) (quote.Snapshot, func() quote.Snapshot) {
	input, output := s.registry.Selected()
	return s.engine.Refresh(ctx, input, output, amount, s.slippageBps)
}

// RequestQuoteAsync debounces the request and delivers every resulting
// snapshot (the requesting transition and the settled result) through
// deliver. Used by the UI so a keystroke burst produces one fetch.
func (s *Session) RequestQuoteAsync(ctx context.Context, amount string, deliver func(quote.Snapshot)) {
	s.debouncer.Trigger(func() {
		snap, fetch := s.RequestQuote(ctx, amount)
		deliver(snap)
		if fetch != nil {
			deliver(fetch())
		}
	})
}

// ExecuteSwap submits the currently selected quote.
func (s *Session) ExecuteSwap(ctx context.Context) (string, error) {
	return s.executor.Execute(ctx, s.engine.Selected())
}

// Close releases session resources.
func (s *Session) Close() {
	s.debouncer.Stop()
}
