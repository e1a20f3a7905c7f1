package engine

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/tatianab/narrative-engine/internal/models"
)

//go:embed prompts/evaluate_system.txt
var evaluateSystemPrompt string

//go:embed prompts/evaluate_turn.txt
var evaluateTurnPrompt string

const (
	// NoPriorEvent seeds the "previous output" of a scenario's first turn.
	NoPriorEvent = "No event has occurred previously yet."
	// ActionPrompt asks the player for a free-text move.
	ActionPrompt = "The player is now allowed to make a move. Attempt an action."
)

var (
	systemTmpl = template.Must(template.New("evaluate_system").Parse(evaluateSystemPrompt))
	turnTmpl   = template.Must(template.New("evaluate_turn").Funcs(template.FuncMap{
		"json": func(v any) (string, error) {
			b, err := json.Marshal(v)
			return string(b), err
		},
	}).Parse(evaluateTurnPrompt))
)

// BuildEvaluationRequest renders the oracle prompts for one scenario turn.
func BuildEvaluationRequest(exitMission string, req models.EvaluationRequest) (models.EvaluationRequest, error) {
	if req.Inventory == nil {
		req.Inventory = []string{}
	}

	var buf bytes.Buffer
	if err := systemTmpl.Execute(&buf, struct{ ExitMission string }{exitMission}); err != nil {
		return req, err
	}
	req.SystemPrompt = buf.String()

	buf.Reset()
	if err := turnTmpl.Execute(&buf, req); err != nil {
		return req, err
	}
	req.UserPrompt = buf.String()
	return req, nil
}

// runScenario plays the scenario turn by turn until the oracle declares it
// over or the player dead. A won scenario settles into its aftermath and the
// player lands straight in the static menu.
func (a *Area) runScenario(ctx context.Context, d *dynamicArea, player *Player) (*Area, error) {
	if a.oracle == nil {
		return a, ErrNoOracle
	}

	log := a.log.With().Str("scenario", d.scenario.Name).Logger()
	previous := NoPriorEvent
	current := d.scenario.Description
	scenarioOver, gameOver := false, false

	for turn := 0; !scenarioOver && !gameOver; {
		turn++

		a.ui.Narrate("[ Description ] " + current)
		action, err := a.ui.PromptFreeText(ActionPrompt)
		if err != nil {
			return a, err
		}

		req, err := BuildEvaluationRequest(d.exitMission, models.EvaluationRequest{
			Scenario:       current,
			Guidelines:     d.scenario.Details,
			PlayerAction:   action,
			Inventory:      player.InventoryNames(),
			State:          player.State(),
			PreviousOutput: previous,
			Turn:           turn,
		})
		if err != nil {
			return a, fmt.Errorf("building turn %d prompt: %w", turn, err)
		}

		ev, err := a.oracle.Evaluate(ctx, req)
		if err != nil {
			return a, fmt.Errorf("evaluating turn %d of %q: %w", turn, d.scenario.Name, err)
		}

		previous, current = current, ev.TextOutput
		scenarioOver, gameOver = ev.ScenarioOver, ev.GameOver
		removed := player.applyEvaluation(ev)

		log.Debug().
			Int("turn", turn).
			Str("physical_state", player.PhysicalState()).
			Str("mental_state", player.MentalState()).
			Bool("scenario_over", scenarioOver).
			Bool("game_over", gameOver).
			Msg("player state")
		log.Debug().
			Int("turn", turn).
			Strs("inventory", player.InventoryNames()).
			Strs("removed", removed).
			Msg("player inventory")
	}

	a.ui.Narrate("[ Description ] " + current)

	if gameOver {
		a.ui.Narrate("[ Game Over ] The player has died.")
		log.Info().Msg("player died")
		return a, ErrPlayerDied
	}

	a.state = d.conclude()
	a.cleared = true
	log.Info().Str("area", a.Name()).Msg("scenario cleared")

	a.ui.Narrate("\n[ Pass ] The scenario has been cleared.")
	a.ui.Narrate("\nNow Watching " + a.Name())
	a.ui.Narrate("[ Description ] " + a.Description())

	return a.AreaActions(ctx, player)
}
