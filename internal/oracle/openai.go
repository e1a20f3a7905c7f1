package oracle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"github.com/tatianab/narrative-engine/internal/models"
)

// OpenAIConfig configures the OpenAI-compatible backend.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string // empty for api.openai.com; any compatible endpoint works
	Model   string
	User    string // end-user id sent with every request
}

// OpenAI judges turns with a chat completion constrained to the evaluation schema.
type OpenAI struct {
	client *openai.Client
	model  string
	user   string
	log    zerolog.Logger
}

func NewOpenAI(cfg OpenAIConfig, log zerolog.Logger) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OPENAI_API_KEY is not set")
	}
	if cfg.Model == "" {
		cfg.Model = openai.GPT4oMini
	}

	conf := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		conf.BaseURL = cfg.BaseURL
	}

	return &OpenAI{
		client: openai.NewClientWithConfig(conf),
		model:  cfg.Model,
		user:   cfg.User,
		log:    log.With().Str("provider", "openai").Str("model", cfg.Model).Logger(),
	}, nil
}

func (o *OpenAI) Evaluate(ctx context.Context, req models.EvaluationRequest) (*models.Evaluation, error) {
	start := time.Now()
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.UserPrompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   schemaName,
				Schema: &evaluationSchema,
				Strict: true,
			},
		},
		User: o.user,
	})
	if err != nil {
		o.log.Error().Err(err).Int("turn", req.Turn).Dur("took", time.Since(start)).Msg("chat completion failed")
		return nil, fmt.Errorf("%w: %w", ErrEvaluationFailed, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("%w: empty response", ErrEvaluationFailed)
	}

	o.log.Debug().
		Int("turn", req.Turn).
		Dur("took", time.Since(start)).
		Int("prompt_tokens", resp.Usage.PromptTokens).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Msg("chat completion")

	return decode(o.log, []byte(resp.Choices[0].Message.Content))
}

func (o *OpenAI) Close() error { return nil }
