package models

// PlayerState is a snapshot of the player's status fields and inventory.
type PlayerState struct {
	PhysicalState string            `json:"physical_state" yaml:"physical_state"` // healthy, sick, injured, strong...
	MentalState   string            `json:"mental_state" yaml:"mental_state"`     // calm, stressed, happy, scared...
	Inventory     []string          `json:"inventory" yaml:"inventory"`           // item names, in inventory order
	Fields        map[string]string `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// EvaluationRequest is what the engine sends to the oracle on each scenario turn.
type EvaluationRequest struct {
	SystemPrompt string
	UserPrompt   string

	// Structured copy of what UserPrompt renders, for backends and tests that
	// want the fields rather than the prose.
	Scenario       string
	Guidelines     string
	PlayerAction   string
	Inventory      []string
	State          PlayerState
	PreviousOutput string
	Turn           int
}

// NewPlayerState is the oracle's view of the player after a turn.
type NewPlayerState struct {
	PhysicalState string   `json:"physical_state"`
	MentalState   string   `json:"mental_state"`
	Inventory     []string `json:"inventory"` // closed set: may only drop names
}

// Evaluation is the oracle's verdict on one scenario turn.
type Evaluation struct {
	NewPlayerState NewPlayerState `json:"new_player_state"`
	TextOutput     string         `json:"text_output"`
	ScenarioOver   bool           `json:"scenario_over"`
	GameOver       bool           `json:"game_over"`

	// Flattened is set by DecodeEvaluation when text_output had line breaks or tabs.
	Flattened bool `json:"-"`
}

// Keeps reports whether name is still present in the returned inventory.
func (e *Evaluation) Keeps(name string) bool {
	for _, n := range e.NewPlayerState.Inventory {
		if n == name {
			return true
		}
	}
	return false
}
