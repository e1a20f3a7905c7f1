package oracle

import (
	"github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

const schemaName = "scenario_evaluation"

// evaluationSchema is the reply shape in JSON Schema form. It satisfies
// OpenAI's strict mode: every property is required and no extras are allowed.
var evaluationSchema = jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"new_player_state": {
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"physical_state": {Type: jsonschema.String, Description: "e.g. healthy, injured, sick, strong"},
				"mental_state":   {Type: jsonschema.String, Description: "e.g. calm, stressed, scared, happy"},
				"inventory": {
					Type:        jsonschema.Array,
					Items:       &jsonschema.Definition{Type: jsonschema.String},
					Description: "names of the items the player still holds",
				},
			},
			Required:             []string{"physical_state", "mental_state", "inventory"},
			AdditionalProperties: false,
		},
		"text_output":   {Type: jsonschema.String, Description: "narration of this turn, one line"},
		"scenario_over": {Type: jsonschema.Boolean},
		"game_over":     {Type: jsonschema.Boolean},
	},
	Required:             []string{"new_player_state", "text_output", "scenario_over", "game_over"},
	AdditionalProperties: false,
}

// geminiSchema is evaluationSchema in Gemini's response schema dialect.
var geminiSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"new_player_state": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"physical_state": {Type: genai.TypeString},
				"mental_state":   {Type: genai.TypeString},
				"inventory": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
			},
			Required: []string{"physical_state", "mental_state", "inventory"},
		},
		"text_output":   {Type: genai.TypeString},
		"scenario_over": {Type: genai.TypeBoolean},
		"game_over":     {Type: genai.TypeBoolean},
	},
	Required: []string{"new_player_state", "text_output", "scenario_over", "game_over"},
}
