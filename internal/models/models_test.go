package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWorld = `
title: Test Keep
intro: Welcome.
player:
  name: Tester
  physical_state: healthy
  inventory: [lamp]
items:
  - id: lamp
    name: Brass Lamp
    description: Gives light.
    actions:
      - name: Rub Lamp
        effect: rub
areas:
  - id: yard
    name: Yard
    description: Muddy.
    paths: [hall]
  - id: hall
    name: Hall
    description: Echoing.
    requires: has_key
    dynamic:
      name: Hall Ambush
      description: Guards!
      details: Two guards, tired.
      exit_mission: Both guards are down.
    two_way_paths: [yard]
`

func TestParseWorld(t *testing.T) {
	w, err := ParseWorld([]byte(testWorld))
	require.NoError(t, err)

	assert.Equal(t, "Test Keep", w.Title)
	assert.Equal(t, []string{"lamp"}, w.Player.Inventory)
	require.Len(t, w.Items, 1)
	assert.Equal(t, "rub", w.Items[0].Actions[0].Effect)
	require.Len(t, w.Areas, 2)
	assert.Nil(t, w.Areas[0].Dynamic)
	require.NotNil(t, w.Areas[1].Dynamic)
	assert.Equal(t, "Both guards are down.", w.Areas[1].Dynamic.ExitMission)
	assert.Equal(t, "has_key", w.Areas[1].Requires)
}

func TestLoadWorld(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testWorld), 0644))

	w, err := LoadWorld(path)
	require.NoError(t, err)
	assert.Equal(t, "Yard", w.Areas[0].Name)

	_, err = LoadWorld(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestWorldSpecValidate(t *testing.T) {
	tests := []struct {
		name string
		spec WorldSpec
	}{
		{"no areas", WorldSpec{Title: "empty"}},
		{"duplicate area", WorldSpec{Areas: []AreaSpec{{ID: "a"}, {ID: "a"}}}},
		{"unknown path", WorldSpec{Areas: []AreaSpec{{ID: "a", Paths: []string{"b"}}}}},
		{"self path", WorldSpec{Areas: []AreaSpec{{ID: "a", TwoWayPaths: []string{"a"}}}}},
		{"unknown item", WorldSpec{
			Player: PlayerSpec{Inventory: []string{"ghost"}},
			Areas:  []AreaSpec{{ID: "a"}},
		}},
		{"duplicate item", WorldSpec{
			Items: []ItemSpec{{ID: "x"}, {ID: "x"}},
			Areas: []AreaSpec{{ID: "a"}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.spec.Validate())
		})
	}
}

func TestDecodeEvaluation(t *testing.T) {
	data := []byte("```json\n" + `{
		"new_player_state": {"physical_state": "injured", "mental_state": "focused", "inventory": ["Magical Staff"]},
		"text_output": "The monarch staggers.\n\tDust settles.",
		"scenario_over": false,
		"game_over": false
	}` + "\n```")

	ev, err := DecodeEvaluation(data)
	require.NoError(t, err)
	assert.Equal(t, "injured", ev.NewPlayerState.PhysicalState)
	assert.Equal(t, "focused", ev.NewPlayerState.MentalState)
	assert.Equal(t, []string{"Magical Staff"}, ev.NewPlayerState.Inventory)
	assert.Equal(t, "The monarch staggers. Dust settles.", ev.TextOutput)
	assert.True(t, ev.Flattened)
	assert.True(t, ev.Keeps("Magical Staff"))
	assert.False(t, ev.Keeps("Mystery Potion"))
}

func TestDecodeEvaluation_EmptyInventoryIsValid(t *testing.T) {
	ev, err := DecodeEvaluation([]byte(`{"new_player_state":{"physical_state":"a","mental_state":"b","inventory":[]},"text_output":"x","scenario_over":true,"game_over":false}`))
	require.NoError(t, err)
	assert.Empty(t, ev.NewPlayerState.Inventory)
	assert.True(t, ev.ScenarioOver)
	assert.False(t, ev.Flattened)
}

func TestDecodeEvaluation_EscapesOutsideTextAreNotFlattening(t *testing.T) {
	ev, err := DecodeEvaluation([]byte(`{
		"new_player_state": {"physical_state": "tired\nworn", "mental_state": "calm", "inventory": ["Note\tA"]},
		"text_output": "A quiet room.",
		"scenario_over": false,
		"game_over": false
	}`))
	require.NoError(t, err)
	assert.Equal(t, "A quiet room.", ev.TextOutput)
	assert.False(t, ev.Flattened)
	assert.Equal(t, "tired\nworn", ev.NewPlayerState.PhysicalState)
}

func TestDecodeEvaluation_ContractViolations(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `the monarch dies`},
		{"missing state", `{"text_output":"x","scenario_over":true,"game_over":false}`},
		{"missing inventory", `{"new_player_state":{"physical_state":"a","mental_state":"b"},"text_output":"x","scenario_over":true,"game_over":false}`},
		{"missing game_over", `{"new_player_state":{"physical_state":"a","mental_state":"b","inventory":[]},"text_output":"x","scenario_over":true}`},
		{"wrong type", `{"new_player_state":{"physical_state":"a","mental_state":"b","inventory":[]},"text_output":"x","scenario_over":"yes","game_over":false}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeEvaluation([]byte(tt.data))
			assert.ErrorIs(t, err, ErrContractViolation)
		})
	}
}
