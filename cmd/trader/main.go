package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/socialfi-app/trader/internal/config"
	"github.com/socialfi-app/trader/internal/logger"
	"github.com/socialfi-app/trader/internal/trading"
	"github.com/socialfi-app/trader/internal/ui"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	configPath := "configs/config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		LogFile:     cfg.LogFile,
		MaxSize:     100,
		MaxAge:      7,
		MaxBackups:  3,
		Compress:    true,
		Development: cfg.DebugLogging,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting trader",
		zap.String("network", cfg.Network),
		zap.Int("slippage_bps", cfg.SlippageBps))

	session, err := trading.Build(cfg, log)
	if err != nil {
		log.Fatal("failed to build trading session", zap.Error(err))
	}
	defer session.Close()

	program := tea.NewProgram(ui.New(ctx, session), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Fatal("UI error", zap.Error(err))
	}
}
