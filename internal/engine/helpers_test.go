package engine

import (
	"context"
	"strings"

	"github.com/tatianab/narrative-engine/internal/models"
)

// scriptedUI replays canned answers and records everything shown. Running
// out of answers reads as the player quitting.
type scriptedUI struct {
	choices  []int
	texts    []string
	menus    [][]string
	prompts  []string
	narrated []string
}

func (u *scriptedUI) PresentChoice(options []string) (int, error) {
	if len(options) == 0 {
		return -1, nil
	}
	u.menus = append(u.menus, options)
	if len(u.choices) == 0 {
		return 0, ErrQuit
	}
	c := u.choices[0]
	u.choices = u.choices[1:]
	return c, nil
}

func (u *scriptedUI) PromptFreeText(prompt string) (string, error) {
	u.prompts = append(u.prompts, prompt)
	if len(u.texts) == 0 {
		return "", ErrQuit
	}
	t := u.texts[0]
	u.texts = u.texts[1:]
	return t, nil
}

func (u *scriptedUI) Narrate(text string) { u.narrated = append(u.narrated, text) }

func (u *scriptedUI) output() string { return strings.Join(u.narrated, "\n") }

func (u *scriptedUI) lastMenu() []string {
	if len(u.menus) == 0 {
		return nil
	}
	return u.menus[len(u.menus)-1]
}

// scriptedOracle returns canned evaluations in order.
type scriptedOracle struct {
	replies  []*models.Evaluation
	err      error
	requests []models.EvaluationRequest
}

func (o *scriptedOracle) Evaluate(_ context.Context, req models.EvaluationRequest) (*models.Evaluation, error) {
	o.requests = append(o.requests, req)
	if o.err != nil {
		return nil, o.err
	}
	if len(o.replies) == 0 {
		return nil, models.ErrContractViolation
	}
	ev := o.replies[0]
	o.replies = o.replies[1:]
	return ev, nil
}

func verdict(text string, inventory []string, scenarioOver, gameOver bool) *models.Evaluation {
	return &models.Evaluation{
		NewPlayerState: models.NewPlayerState{
			PhysicalState: "healthy",
			MentalState:   "calm",
			Inventory:     inventory,
		},
		TextOutput:   text,
		ScenarioOver: scenarioOver,
		GameOver:     gameOver,
	}
}
