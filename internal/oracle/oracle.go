// Package oracle holds the backends that judge free-text player actions.
package oracle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tatianab/narrative-engine/internal/config"
	"github.com/tatianab/narrative-engine/internal/engine"
	"github.com/tatianab/narrative-engine/internal/models"
)

// ErrEvaluationFailed marks a backend that could not produce a verdict at all.
var ErrEvaluationFailed = errors.New("oracle evaluation failed")

// Client is an oracle backend holding resources that must be released.
type Client interface {
	engine.Oracle
	Close() error
}

// New builds the backend selected by cfg, wrapped with the configured
// timeout. sessionID is forwarded to providers that accept an end-user id.
func New(ctx context.Context, cfg *config.Config, sessionID string, log zerolog.Logger) (Client, error) {
	var (
		c   Client
		err error
	)
	switch cfg.Provider {
	case config.ProviderOpenAI:
		c, err = NewOpenAI(OpenAIConfig{
			APIKey:  cfg.OpenAIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
			User:    sessionID,
		}, log)
	case config.ProviderGemini:
		c, err = NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, log)
	case config.ProviderOllama:
		c, err = NewOllama(cfg.OllamaURL, cfg.OllamaModel, log)
	case config.ProviderNone:
		c = NewScripted()
	default:
		return nil, fmt.Errorf("unknown oracle provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return WithTimeout(c, cfg.OracleTimeout), nil
}

type timeoutClient struct {
	Client
	timeout time.Duration
}

// WithTimeout bounds every Evaluate call. A zero timeout returns c unchanged.
func WithTimeout(c Client, d time.Duration) Client {
	if d <= 0 {
		return c
	}
	return &timeoutClient{Client: c, timeout: d}
}

func (t *timeoutClient) Evaluate(ctx context.Context, req models.EvaluationRequest) (*models.Evaluation, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.Client.Evaluate(ctx, req)
}

// decode validates a raw reply and logs it.
func decode(log zerolog.Logger, payload []byte) (*models.Evaluation, error) {
	ev, err := models.DecodeEvaluation(payload)
	if err != nil {
		log.Error().Err(err).Bytes("reply", payload).Msg("oracle reply rejected")
		return nil, err
	}
	if ev.Flattened {
		log.Warn().Msg("oracle reply contained line breaks; flattened")
	}
	log.Debug().
		Bool("scenario_over", ev.ScenarioOver).
		Bool("game_over", ev.GameOver).
		Strs("inventory", ev.NewPlayerState.Inventory).
		Msg("oracle verdict")
	return ev, nil
}
