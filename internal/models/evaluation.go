package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrContractViolation marks an oracle reply that does not match the evaluation schema.
var ErrContractViolation = errors.New("oracle contract violation")

type rawPlayerState struct {
	PhysicalState *string   `json:"physical_state"`
	MentalState   *string   `json:"mental_state"`
	Inventory     *[]string `json:"inventory"`
}

type rawEvaluation struct {
	NewPlayerState *rawPlayerState `json:"new_player_state"`
	TextOutput     *string         `json:"text_output"`
	ScenarioOver   *bool           `json:"scenario_over"`
	GameOver       *bool           `json:"game_over"`
}

// DecodeEvaluation parses an oracle reply. Every field is required; anything
// missing or mistyped is reported as ErrContractViolation. Newlines and tabs
// in text_output are folded to spaces and Flattened is set.
func DecodeEvaluation(data []byte) (*Evaluation, error) {
	text := strings.TrimSpace(string(data))
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var raw rawEvaluation
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContractViolation, err)
	}

	var missing []string
	if raw.NewPlayerState == nil {
		missing = append(missing, "new_player_state")
	} else {
		if raw.NewPlayerState.PhysicalState == nil {
			missing = append(missing, "new_player_state.physical_state")
		}
		if raw.NewPlayerState.MentalState == nil {
			missing = append(missing, "new_player_state.mental_state")
		}
		if raw.NewPlayerState.Inventory == nil {
			missing = append(missing, "new_player_state.inventory")
		}
	}
	if raw.TextOutput == nil {
		missing = append(missing, "text_output")
	}
	if raw.ScenarioOver == nil {
		missing = append(missing, "scenario_over")
	}
	if raw.GameOver == nil {
		missing = append(missing, "game_over")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrContractViolation, strings.Join(missing, ", "))
	}

	flat := FlattenText(*raw.TextOutput)
	return &Evaluation{
		NewPlayerState: NewPlayerState{
			PhysicalState: *raw.NewPlayerState.PhysicalState,
			MentalState:   *raw.NewPlayerState.MentalState,
			Inventory:     *raw.NewPlayerState.Inventory,
		},
		TextOutput:   flat,
		ScenarioOver: *raw.ScenarioOver,
		GameOver:     *raw.GameOver,
		Flattened:    flat != *raw.TextOutput,
	}, nil
}

// FlattenText replaces newlines and tabs with single spaces.
func FlattenText(s string) string {
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == '\n' || r == '\r' || r == '\t'
	}), " ")
}
