package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// ErrNoRoute is returned when the pricing service has no usable route for
// the requested pair and amount.
var ErrNoRoute = errors.New("no route found")

// quoteResponse mirrors the pricing service wire format. Raw amounts are
// string-encoded integers, price impact a string-encoded decimal.
type quoteResponse struct {
	InputMint            string `json:"inputMint"`
	InAmount             string `json:"inAmount"`
	OutputMint           string `json:"outputMint"`
	OutAmount            string `json:"outAmount"`
	OtherAmountThreshold string `json:"otherAmountThreshold"`
	SwapMode             string `json:"swapMode"`
	PriceImpactPct       string `json:"priceImpactPct"`
}

// Client fetches conversion quotes from the price-routing endpoint.
type Client struct {
	client  *http.Client
	baseURL string
	logger  *zap.Logger
}

// NewClient creates a quote client. timeout bounds each fetch.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		logger:  logger.Named("quote_api"),
	}
}

// FetchQuote requests a quote for the tuple. Returns ErrNoRoute when the
// service reports no usable out amount.
func (c *Client) FetchQuote(ctx context.Context, req Request) (*Quote, error) {
	params := url.Values{}
	params.Set("inputMint", req.InputMint)
	params.Set("outputMint", req.OutputMint)
	params.Set("amount", strconv.FormatUint(req.RawAmount, 10))
	params.Set("slippageBps", strconv.Itoa(req.SlippageBps))

	endpoint := fmt.Sprintf("%s/quote?%s", c.baseURL, params.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("quote request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read quote response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("quote endpoint returned error",
			zap.Int("status", resp.StatusCode),
			zap.String("input_mint", req.InputMint),
			zap.String("output_mint", req.OutputMint))
		return nil, fmt.Errorf("quote endpoint returned status %d", resp.StatusCode)
	}

	var qr quoteResponse
	if err := json.Unmarshal(body, &qr); err != nil {
		return nil, fmt.Errorf("failed to decode quote response: %w", err)
	}

	return parseQuote(req, qr, body)
}

func parseQuote(req Request, qr quoteResponse, payload []byte) (*Quote, error) {
	if qr.OutAmount == "" {
		return nil, ErrNoRoute
	}
	outAmount, err := strconv.ParseUint(qr.OutAmount, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid outAmount %q: %w", qr.OutAmount, err)
	}
	if outAmount == 0 {
		return nil, ErrNoRoute
	}

	inAmount := req.RawAmount
	if qr.InAmount != "" {
		inAmount, err = strconv.ParseUint(qr.InAmount, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid inAmount %q: %w", qr.InAmount, err)
		}
	}

	var threshold uint64
	if qr.OtherAmountThreshold != "" {
		threshold, err = strconv.ParseUint(qr.OtherAmountThreshold, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid otherAmountThreshold %q: %w", qr.OtherAmountThreshold, err)
		}
	}

	var impact float64
	if qr.PriceImpactPct != "" {
		impact, err = strconv.ParseFloat(qr.PriceImpactPct, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid priceImpactPct %q: %w", qr.PriceImpactPct, err)
		}
	}

	return &Quote{
		Request:              req,
		InAmount:             inAmount,
		OutAmount:            outAmount,
		PriceImpactPct:       impact,
		OtherAmountThreshold: threshold,
		SwapMode:             qr.SwapMode,
		Payload:              payload,
	}, nil
}
