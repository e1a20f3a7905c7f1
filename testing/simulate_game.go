package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/tatianab/narrative-engine/internal/config"
	"github.com/tatianab/narrative-engine/internal/content"
	"github.com/tatianab/narrative-engine/internal/engine"
	"github.com/tatianab/narrative-engine/internal/logger"
	"github.com/tatianab/narrative-engine/internal/oracle"
)

const (
	maxTurns   = 40
	historyLen = 12
)

// llmPlayer answers every prompt of the game with a Gemini model.
type llmPlayer struct {
	ctx     context.Context
	model   *genai.GenerativeModel
	history []string
	turns   int
}

func (p *llmPlayer) Narrate(text string) {
	fmt.Println(text)
	p.history = append(p.history, text)
	if len(p.history) > historyLen {
		p.history = p.history[len(p.history)-historyLen:]
	}
}

func (p *llmPlayer) PresentChoice(options []string) (int, error) {
	if len(options) == 0 {
		return -1, nil
	}
	if err := p.tick(); err != nil {
		return 0, err
	}

	var sb strings.Builder
	for i, opt := range options {
		fmt.Fprintf(&sb, "%d) %s\n", i+1, opt)
	}
	answer := p.ask(fmt.Sprintf("Options:\n%s\nReturn ONLY the number of the option you pick.", sb.String()), "1")
	n, err := strconv.Atoi(strings.Trim(answer, " .)\n"))
	if err != nil || n < 1 || n > len(options) {
		n = 1
	}
	fmt.Printf("> %d) %s\n", n, options[n-1])
	return n - 1, nil
}

func (p *llmPlayer) PromptFreeText(prompt string) (string, error) {
	if err := p.tick(); err != nil {
		return "", err
	}
	p.Narrate(prompt)
	answer := p.ask("What do you do? Be creative but stay within the world's logic. Return ONLY the action string, no extra commentary.", "look around")
	fmt.Printf("> %s\n", answer)
	return answer, nil
}

func (p *llmPlayer) tick() error {
	p.turns++
	if p.turns > maxTurns {
		fmt.Println("--- Turn limit reached ---")
		return engine.ErrQuit
	}
	return nil
}

func (p *llmPlayer) ask(question, fallback string) string {
	prompt := fmt.Sprintf(`You are playing a text-based adventure game. Your goal is to find a way out.

Recent events:
%s

%s`, strings.Join(p.history, "\n"), question)

	resp, err := p.model.GenerateContent(p.ctx, genai.Text(prompt))
	if err != nil {
		return fallback
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return fallback
	}
	return strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
}

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.GeminiAPIKey == "" {
		log.Fatal("GEMINI_API_KEY is not set")
	}

	sessionID := uuid.NewString()
	zl, closer, err := logger.Setup(cfg.LogLevel, cfg.LogFile, sessionID)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer closer.Close()

	// Initialize the oracle (the "Game Master")
	gm, err := oracle.New(ctx, cfg, sessionID, zl)
	if err != nil {
		log.Fatalf("Failed to create oracle: %v", err)
	}
	defer gm.Close()

	// Initialize the Player LLM
	playerClient, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		log.Fatalf("Failed to create player client: %v", err)
	}
	defer playerClient.Close()
	player := &llmPlayer{ctx: ctx, model: playerClient.GenerativeModel(cfg.GeminiModel)}

	spec, err := content.BundledWorld()
	if err != nil {
		log.Fatalf("Failed to load world: %v", err)
	}
	game, err := content.Build(spec, content.Azi(), player, gm, zl)
	if err != nil {
		log.Fatalf("Failed to build world: %v", err)
	}

	fmt.Printf("--- Playing %s with %s ---\n\n", game.Title, cfg.Provider)
	err = game.Run(ctx)
	fmt.Printf("\n--- Game ended: %v ---\n", err)
	fmt.Printf("Final state: %s\n", game.Player.StateJSON())
	if !engine.IsTerminal(err) {
		os.Exit(1)
	}
}
