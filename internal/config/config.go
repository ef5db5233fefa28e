package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the trading client configuration.
type Config struct {
	Network      string `mapstructure:"network"`
	RPCEndpoint  string `mapstructure:"rpc_endpoint"`
	QuoteAPIURL  string `mapstructure:"quote_api_url"`
	SwapAPIURL   string `mapstructure:"swap_api_url"`
	TokenListURL string `mapstructure:"token_list_url"`
	PrivateKey   string `mapstructure:"private_key"`
	SlippageBps  int    `mapstructure:"slippage_bps"`
	HTTPTimeout  int    `mapstructure:"http_timeout"`
	DebounceMs   int    `mapstructure:"debounce_ms"`
	DebugLogging bool   `mapstructure:"debug_logging"`
	LogFile      string `mapstructure:"log_file"`
}

const (
	DefaultQuoteAPIURL  = "https://quote-api.jup.ag/v6"
	DefaultTokenListURL = "https://token.jup.ag/strict"
	DefaultSlippageBps  = 100
	DefaultHTTPTimeout  = 10
	DefaultDebounceMs   = 400
	DefaultLogFile      = "trader.log"
)

// LoadConfig reads the configuration file at path and merges environment
// variables prefixed with TRADER_ (e.g. TRADER_PRIVATE_KEY).
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Every key needs a default: AutomaticEnv only surfaces TRADER_* values
	// for keys viper already knows about.
	defaults := map[string]interface{}{
		"network":        "devnet",
		"rpc_endpoint":   "",
		"quote_api_url":  DefaultQuoteAPIURL,
		"swap_api_url":   DefaultQuoteAPIURL,
		"token_list_url": DefaultTokenListURL,
		"private_key":    "",
		"slippage_bps":   DefaultSlippageBps,
		"http_timeout":   DefaultHTTPTimeout,
		"debounce_ms":    DefaultDebounceMs,
		"debug_logging":  false,
		"log_file":       DefaultLogFile,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix("TRADER")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.RPCEndpoint == "" {
		cfg.RPCEndpoint = fmt.Sprintf("https://api.%s.solana.com", cfg.Network)
	}

	return &cfg, validateConfig(&cfg)
}

func validateConfig(cfg *Config) error {
	switch cfg.Network {
	case "mainnet-beta", "devnet", "testnet":
	default:
		return fmt.Errorf("unknown network %q", cfg.Network)
	}
	for _, u := range []string{cfg.RPCEndpoint, cfg.QuoteAPIURL, cfg.SwapAPIURL, cfg.TokenListURL} {
		if err := validateHTTPURL(u); err != nil {
			return err
		}
	}
	if cfg.SlippageBps <= 0 || cfg.SlippageBps > 5000 {
		return errors.New("slippage_bps must be in (0, 5000]")
	}
	if cfg.HTTPTimeout <= 0 {
		return errors.New("invalid http_timeout")
	}
	if cfg.DebounceMs < 0 {
		return errors.New("invalid debounce_ms")
	}
	return nil
}

func validateHTTPURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if !strings.HasPrefix(parsed.Scheme, "http") {
		return fmt.Errorf("URL %q must use http(s)", raw)
	}
	return nil
}
