package engine

import (
	"context"
	"errors"

	"github.com/tatianab/narrative-engine/internal/models"
)

// Interface is how the engine talks to the player.
type Interface interface {
	// PresentChoice shows options numbered from 1 and returns the zero-based
	// index of the one picked. Implementations re-prompt until the input is
	// valid. An empty option list shows nothing and returns -1.
	PresentChoice(options []string) (int, error)

	// PromptFreeText shows prompt and returns one line of player input.
	PromptFreeText(prompt string) (string, error)

	// Narrate displays text.
	Narrate(text string)
}

// Oracle judges free-text player actions inside dynamic scenarios.
type Oracle interface {
	Evaluate(ctx context.Context, req models.EvaluationRequest) (*models.Evaluation, error)
}

// Terminal signals. They end the session on purpose and are not failures.
var (
	ErrQuit         = errors.New("player quit")
	ErrPlayerDied   = errors.New("player died")
	ErrGameComplete = errors.New("game complete")
)

var (
	ErrNoStartingArea = errors.New("world map has no starting area")
	ErrNoInterface    = errors.New("no player interface attached")
	ErrNoOracle       = errors.New("no oracle attached to dynamic area")
)

// IsTerminal reports whether err is one of the designed ways a session ends.
func IsTerminal(err error) bool {
	return errors.Is(err, ErrQuit) || errors.Is(err, ErrPlayerDied) || errors.Is(err, ErrGameComplete)
}

// detached stands in for an Interface until a WorldMap injects one.
type detached struct{}

func (detached) PresentChoice(options []string) (int, error) {
	if len(options) == 0 {
		return -1, nil
	}
	return 0, ErrNoInterface
}

func (detached) PromptFreeText(string) (string, error) { return "", ErrNoInterface }

func (detached) Narrate(string) {}
