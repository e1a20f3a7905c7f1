package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tatianab/narrative-engine/internal/config"
	"github.com/tatianab/narrative-engine/internal/console"
	"github.com/tatianab/narrative-engine/internal/content"
	"github.com/tatianab/narrative-engine/internal/engine"
	"github.com/tatianab/narrative-engine/internal/logger"
	"github.com/tatianab/narrative-engine/internal/models"
	"github.com/tatianab/narrative-engine/internal/oracle"
	"github.com/tatianab/narrative-engine/internal/tui"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return 1
	}

	sessionID := uuid.NewString()
	log, closer, err := logger.Setup(cfg.LogLevel, cfg.LogFile, sessionID)
	if err != nil {
		fmt.Printf("Error setting up logging: %v\n", err)
		return 1
	}
	defer closer.Close()

	if cfg.NeedsAPIKey() {
		key, err := tui.New(cfg.TextWidth).PromptSecret(fmt.Sprintf("%s is not set. Enter your API key:", cfg.APIKeyVar()))
		if errors.Is(err, engine.ErrQuit) {
			return 0
		}
		if err != nil {
			fmt.Printf("Error reading API key: %v\n", err)
			return 1
		}
		cfg.SetAPIKey(key)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client, err := oracle.New(ctx, cfg, sessionID, log)
	if err != nil {
		fmt.Printf("Error creating oracle: %v\n", err)
		return 1
	}
	defer client.Close()

	if cfg.MetricsAddr != "" {
		metrics := oracle.NewMetrics()
		client = metrics.Instrument(client, cfg.Provider)
		go serveMetrics(cfg.MetricsAddr, metrics, log)
	}

	spec, err := loadWorld(cfg.WorldFile)
	if err != nil {
		fmt.Printf("Error loading world: %v\n", err)
		return 1
	}

	var game *content.Game
	var ui engine.Interface
	switch cfg.UI {
	case config.UITUI:
		ui = tui.New(cfg.TextWidth, tui.WithContext(ctx), tui.WithStatus(func() tui.Status {
			s := tui.Status{State: game.Player.State()}
			if a := game.Map.CurrentArea(); a != nil {
				s.Area = a.Name()
			}
			return s
		}))
	default:
		ui = console.New(os.Stdin, os.Stdout, cfg.TextWidth, console.WithContext(ctx))
	}

	game, err = content.Build(spec, content.Azi(), ui, client, log)
	if err != nil {
		fmt.Printf("Error building world: %v\n", err)
		return 1
	}

	log.Info().Str("provider", cfg.Provider).Str("ui", cfg.UI).Msg("starting game")
	err = game.Run(ctx)
	switch {
	case engine.IsTerminal(err):
		log.Info().Err(err).Msg("session ended")
		return 0
	case errors.Is(err, context.Canceled):
		log.Info().Msg("interrupted")
		return 0
	default:
		log.Error().Err(err).Msg("session failed")
		fmt.Printf("Error: %v\n", err)
		return 1
	}
}

func loadWorld(path string) (*models.WorldSpec, error) {
	if path == "" {
		return content.BundledWorld()
	}
	return models.LoadWorld(path)
}

func serveMetrics(addr string, m *oracle.Metrics, log zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	log.Info().Str("addr", addr).Msg("serving metrics")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error().Err(err).Msg("metrics listener stopped")
	}
}
