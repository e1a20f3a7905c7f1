package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
	"github.com/rs/zerolog"

	"github.com/tatianab/narrative-engine/internal/models"
)

// Ollama judges turns with a local model, using structured outputs.
type Ollama struct {
	client *api.Client
	model  string
	format json.RawMessage
	log    zerolog.Logger
}

func NewOllama(baseURL, model string, log zerolog.Logger) (*Ollama, error) {
	baseURL = strings.TrimSuffix(strings.TrimSuffix(baseURL, "/"), "/v1")
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid OLLAMA_URL %q: %w", baseURL, err)
	}

	format, err := json.Marshal(&evaluationSchema)
	if err != nil {
		return nil, err
	}

	return &Ollama{
		client: api.NewClient(u, http.DefaultClient),
		model:  model,
		format: format,
		log:    log.With().Str("provider", "ollama").Str("model", model).Logger(),
	}, nil
}

func (o *Ollama) Evaluate(ctx context.Context, req models.EvaluationRequest) (*models.Evaluation, error) {
	stream := false
	chat := &api.ChatRequest{
		Model: o.model,
		Messages: []api.Message{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
		Stream: &stream,
		Format: o.format,
	}

	start := time.Now()
	var resp api.ChatResponse
	err := o.client.Chat(ctx, chat, func(r api.ChatResponse) error {
		resp = r
		return nil
	})
	if err != nil {
		o.log.Error().Err(err).Int("turn", req.Turn).Dur("took", time.Since(start)).Msg("chat failed")
		return nil, fmt.Errorf("%w: %w", ErrEvaluationFailed, err)
	}
	if resp.Message.Content == "" {
		return nil, fmt.Errorf("%w: empty response", ErrEvaluationFailed)
	}

	o.log.Debug().
		Int("turn", req.Turn).
		Dur("took", time.Since(start)).
		Int("prompt_tokens", resp.PromptEvalCount).
		Int("completion_tokens", resp.EvalCount).
		Msg("chat")

	return decode(o.log, []byte(resp.Message.Content))
}

func (o *Ollama) Close() error { return nil }
