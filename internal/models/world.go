package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WorldSpec is the authored content of a game: items, areas and the paths between them.
type WorldSpec struct {
	Title  string     `yaml:"title"`
	Intro  string     `yaml:"intro"`
	Player PlayerSpec `yaml:"player"`
	Items  []ItemSpec `yaml:"items"`
	Areas  []AreaSpec `yaml:"areas"` // first area is the starting area
}

// PlayerSpec describes the player at the start of a session.
type PlayerSpec struct {
	Name          string   `yaml:"name"`
	PhysicalState string   `yaml:"physical_state"`
	MentalState   string   `yaml:"mental_state"`
	Inventory     []string `yaml:"inventory"` // item ids
}

// ItemSpec describes an item and the named behaviors bound to it.
type ItemSpec struct {
	ID          string       `yaml:"id"`
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Details     string       `yaml:"details"`
	Actions     []ActionSpec `yaml:"actions"`
}

// ActionSpec binds a menu entry to a registered effect and, optionally, a registered precondition.
type ActionSpec struct {
	Name     string `yaml:"name"`
	Requires string `yaml:"requires"` // predicate name, empty for none
	Effect   string `yaml:"effect"`   // effect name
}

// AreaSpec describes one node of the area graph.
type AreaSpec struct {
	ID          string       `yaml:"id"`
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Details     string       `yaml:"details"`
	Requires    string       `yaml:"requires"` // entry predicate name
	Cleared     *bool        `yaml:"cleared"`  // overrides the default: static areas start cleared, dynamic ones not
	Dynamic     *DynamicSpec `yaml:"dynamic"`
	Paths       []string     `yaml:"paths"`         // one-way, by area id
	TwoWayPaths []string     `yaml:"two_way_paths"` // by area id
	Actions     []ActionSpec `yaml:"actions"`
}

// DynamicSpec turns an area into an oracle-driven scenario. The area's own
// name, description and details become the aftermath shown once it is cleared.
type DynamicSpec struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Details     string `yaml:"details"`      // hidden guidelines for the oracle
	ExitMission string `yaml:"exit_mission"` // what ends the scenario
}

// ParseWorld decodes and validates a YAML world definition.
func ParseWorld(data []byte) (*WorldSpec, error) {
	var w WorldSpec
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("failed to parse world YAML: %w", err)
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &w, nil
}

// LoadWorld reads a world definition from disk.
func LoadWorld(path string) (*WorldSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseWorld(data)
}

// Validate checks that ids are unique and every reference resolves.
func (w *WorldSpec) Validate() error {
	if len(w.Areas) == 0 {
		return fmt.Errorf("world %q has no areas", w.Title)
	}

	items := make(map[string]bool, len(w.Items))
	for _, it := range w.Items {
		if it.ID == "" {
			return fmt.Errorf("item %q has no id", it.Name)
		}
		if items[it.ID] {
			return fmt.Errorf("duplicate item id %q", it.ID)
		}
		items[it.ID] = true
	}
	for _, id := range w.Player.Inventory {
		if !items[id] {
			return fmt.Errorf("player inventory references unknown item %q", id)
		}
	}

	areas := make(map[string]bool, len(w.Areas))
	for _, a := range w.Areas {
		if a.ID == "" {
			return fmt.Errorf("area %q has no id", a.Name)
		}
		if areas[a.ID] {
			return fmt.Errorf("duplicate area id %q", a.ID)
		}
		areas[a.ID] = true
	}
	for _, a := range w.Areas {
		for _, p := range append(append([]string{}, a.Paths...), a.TwoWayPaths...) {
			if !areas[p] {
				return fmt.Errorf("area %q has a path to unknown area %q", a.ID, p)
			}
			if p == a.ID {
				return fmt.Errorf("area %q has a path to itself", a.ID)
			}
		}
	}
	return nil
}
