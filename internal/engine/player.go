package engine

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/tatianab/narrative-engine/internal/models"
)

// Well-known state keys.
const (
	StatePhysical = "physical_state"
	StateMental   = "mental_state"
)

// Character is mutable actor state shared by the engine, content behaviors
// and the oracle. The inventory is mirrored into the state record; both are
// only ever changed together through AddItem and RemoveItem.
type Character struct {
	name      string
	inventory []*Item
	state     characterState
}

type characterState struct {
	physical  string
	mental    string
	inventory []*Item
	fields    map[string]string
}

// NewCharacter creates a character with an empty inventory.
func NewCharacter(name, physical, mental string) *Character {
	if physical == "" {
		physical = "healthy"
	}
	if mental == "" {
		mental = "happy"
	}
	return &Character{
		name:  name,
		state: characterState{physical: physical, mental: mental, fields: map[string]string{}},
	}
}

func (c *Character) Name() string { return c.name }

func (c *Character) PhysicalState() string { return c.state.physical }
func (c *Character) MentalState() string   { return c.state.mental }

// Field returns an extensible status field set with UpdatePlayerState.
func (c *Character) Field(key string) (string, bool) {
	v, ok := c.state.fields[key]
	return v, ok
}

// UpdatePlayerState overwrites one named state field. Keys are open-ended.
func (c *Character) UpdatePlayerState(key, value string) {
	switch key {
	case StatePhysical:
		c.state.physical = value
	case StateMental:
		c.state.mental = value
	default:
		c.state.fields[key] = value
	}
}

// AddItem puts item at the end of the inventory.
func (c *Character) AddItem(item *Item) {
	c.inventory = append(c.inventory, item)
	c.state.inventory = append(c.state.inventory, item)
}

// RemoveItem drops the first reference to item. Absent items are ignored.
func (c *Character) RemoveItem(item *Item) {
	c.inventory = removeItem(c.inventory, item)
	c.state.inventory = removeItem(c.state.inventory, item)
}

func removeItem(items []*Item, item *Item) []*Item {
	i := slices.Index(items, item)
	if i < 0 {
		return items
	}
	return slices.Delete(slices.Clone(items), i, i+1)
}

func (c *Character) HasItem(item *Item) bool {
	return slices.Contains(c.inventory, item)
}

// ItemNamed returns the first held item called name.
func (c *Character) ItemNamed(name string) (*Item, bool) {
	for _, it := range c.inventory {
		if it.name == name {
			return it, true
		}
	}
	return nil, false
}

// Inventory returns a copy of the held items in order.
func (c *Character) Inventory() []*Item { return slices.Clone(c.inventory) }

func (c *Character) InventoryNames() []string {
	return itemNames(c.inventory)
}

func itemNames(items []*Item) []string {
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.name
	}
	return names
}

// State returns a snapshot of the state record.
func (c *Character) State() models.PlayerState {
	return models.PlayerState{
		PhysicalState: c.state.physical,
		MentalState:   c.state.mental,
		Inventory:     itemNames(c.state.inventory),
		Fields:        maps.Clone(c.state.fields),
	}
}

// StateJSON renders the state snapshot as JSON.
func (c *Character) StateJSON() string {
	data, err := json.Marshal(c.State())
	if err != nil {
		return "{}"
	}
	return string(data)
}

// DisplayPlayerState narrates every state field.
func (c *Character) DisplayPlayerState(ui Interface) {
	s := c.State()
	ui.Narrate(fmt.Sprintf("%s: %s", StatePhysical, s.PhysicalState))
	ui.Narrate(fmt.Sprintf("%s: %s", StateMental, s.MentalState))
	ui.Narrate(fmt.Sprintf("inventory: [%s]", strings.Join(s.Inventory, ", ")))
	for _, k := range slices.Sorted(maps.Keys(s.Fields)) {
		ui.Narrate(fmt.Sprintf("%s: %s", k, s.Fields[k]))
	}
}

// applyEvaluation folds an oracle verdict into the character: items whose
// names the oracle dropped are removed, nothing is ever added, and the
// physical and mental states are taken verbatim.
func (c *Character) applyEvaluation(ev *models.Evaluation) (removed []string) {
	for _, it := range c.Inventory() {
		if !ev.Keeps(it.name) {
			c.RemoveItem(it)
			removed = append(removed, it.name)
		}
	}
	c.UpdatePlayerState(StatePhysical, ev.NewPlayerState.PhysicalState)
	c.UpdatePlayerState(StateMental, ev.NewPlayerState.MentalState)
	return removed
}

// Player is the character the person at the keyboard controls.
type Player struct {
	*Character
}

// NewPlayer creates a player; empty states default to "healthy" and "happy".
func NewPlayer(name, physical, mental string) *Player {
	return &Player{Character: NewCharacter(name, physical, mental)}
}

// PresentInventoryMenu lets the player pick an item and open its menu.
func (p *Player) PresentInventoryMenu(ui Interface) error {
	if len(p.inventory) == 0 {
		ui.Narrate("Your inventory is empty.")
		return nil
	}

	options := append([]string{"Exit Inventory"}, p.InventoryNames()...)
	option, err := ui.PresentChoice(options)
	if err != nil {
		return err
	}
	if option <= 0 {
		return nil
	}
	return p.inventory[option-1].PresentMenu(ui)
}
