package token

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/socialfi-app/trader/internal/wallet"
)

// HTTPListClient fetches token metadata from the token-list endpoint.
type HTTPListClient struct {
	client  *http.Client
	baseURL string
	logger  *zap.Logger
}

// NewHTTPListClient creates a token-list client. timeout bounds each fetch.
func NewHTTPListClient(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPListClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPListClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		logger:  logger.Named("token_list"),
	}
}

// FetchTokens retrieves the token list for the network. Off mainnet the
// endpoint is parameterized with an env query.
func (c *HTTPListClient) FetchTokens(ctx context.Context, network wallet.Network) ([]Token, error) {
	url := c.baseURL
	if network != wallet.NetworkMainnet {
		url = fmt.Sprintf("%s?env=%s", c.baseURL, network)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token list request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("token list endpoint returned status %d", resp.StatusCode)
	}

	var tokens []Token
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return nil, fmt.Errorf("failed to decode token list: %w", err)
	}

	c.logger.Debug("fetched token list",
		zap.String("network", network.String()),
		zap.Int("count", len(tokens)))
	return tokens, nil
}
