package oracle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	"github.com/tatianab/narrative-engine/internal/models"
)

// Gemini judges turns with a Gemini model in JSON response mode.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
	log    zerolog.Logger
}

func NewGemini(ctx context.Context, apiKey, modelName string, log zerolog.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is not set")
	}
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	model := client.GenerativeModel(modelName)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = geminiSchema

	return &Gemini{
		client: client,
		model:  model,
		log:    log.With().Str("provider", "gemini").Str("model", modelName).Logger(),
	}, nil
}

func (g *Gemini) Close() error {
	return g.client.Close()
}

func (g *Gemini) Evaluate(ctx context.Context, req models.EvaluationRequest) (*models.Evaluation, error) {
	// The system instruction carries the exit mission, so each call gets its own copy of the model.
	model := *g.model
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.SystemPrompt)}}

	resp, err := model.GenerateContent(ctx, genai.Text(req.UserPrompt))
	if err != nil {
		g.log.Error().Err(err).Int("turn", req.Turn).Msg("generate content failed")
		return nil, fmt.Errorf("%w: %w", ErrEvaluationFailed, err)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}
	if resp.UsageMetadata != nil {
		g.log.Debug().
			Int("turn", req.Turn).
			Int32("prompt_tokens", resp.UsageMetadata.PromptTokenCount).
			Int32("completion_tokens", resp.UsageMetadata.CandidatesTokenCount).
			Msg("generate content")
	}
	return decode(g.log, []byte(text))
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no content returned from Gemini", ErrEvaluationFailed)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("%w: unexpected response type from Gemini", ErrEvaluationFailed)
	}
	return sb.String(), nil
}
