package engine

import "fmt"

const nothingToInspect = "\n[ Inspect ] There isn't anything notable to inspect."

// Item is something the player can carry, inspect and use.
type Item struct {
	name        string
	description string
	details     string
	actions     actionList
}

// NewItem creates an item. details is only shown when the item is inspected.
func NewItem(name, description, details string) *Item {
	return &Item{name: name, description: description, details: details}
}

func (it *Item) Name() string        { return it.name }
func (it *Item) Description() string { return it.description }
func (it *Item) Details() string     { return it.details }

// Actions returns a copy of the item's custom actions.
func (it *Item) Actions() []*Action { return it.actions.clone() }

// AddAction appends a custom action. Pass a nil canRun for no precondition.
func (it *Item) AddAction(name string, canRun Predicate, run Effect) *Action {
	return it.actions.add(name, canRun, run)
}

// RemoveAction removes the first action called name and reports whether one was found.
func (it *Item) RemoveAction(name string) bool {
	return it.actions.remove(name)
}

// Inspect narrates the item's details.
func (it *Item) Inspect(ui Interface) {
	inspect(ui, it.details)
}

// PresentMenu lets the player inspect the item or trigger one of its actions.
func (it *Item) PresentMenu(ui Interface) error {
	ui.Narrate(fmt.Sprintf("\n%s - %s", it.name, it.description))

	options := append([]string{"Cancel", "Inspect Item"}, it.actions.names()...)
	option, err := ui.PresentChoice(options)
	if err != nil {
		return err
	}

	switch {
	case option <= 0:
		return nil
	case option == 1:
		it.Inspect(ui)
		return nil
	default:
		_, err := it.actions[option-2].Run()
		return err
	}
}

func inspect(ui Interface, details string) {
	if details != "" {
		ui.Narrate("\n[ Inspect ] " + details)
		return
	}
	ui.Narrate(nothingToInspect)
}
