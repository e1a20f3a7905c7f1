package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
)

// AreaType says how an area interacts with the player.
type AreaType int

const (
	Static  AreaType = iota // fixed menu
	Dynamic                 // oracle-evaluated scenario
)

func (t AreaType) String() string {
	switch t {
	case Static:
		return "static"
	case Dynamic:
		return "dynamic"
	default:
		return fmt.Sprintf("AreaType(%d)", int(t))
	}
}

var (
	ErrAlreadyDynamic = errors.New("area is already dynamic")
	ErrNotDynamic     = errors.New("area is not dynamic")
)

// Profile is the player-facing identity of an area.
type Profile struct {
	Name        string
	Description string
	Details     string
}

type areaState interface {
	areaType() AreaType
	profile() Profile
}

type staticArea struct {
	Profile
}

func (staticArea) areaType() AreaType { return Static }
func (s staticArea) profile() Profile { return s.Profile }

// dynamicArea is an unresolved scenario. Its Details are guidelines for the
// oracle and are never shown to the player.
type dynamicArea struct {
	scenario    Profile
	exitMission string
	aftermath   Profile
}

func (*dynamicArea) areaType() AreaType { return Dynamic }
func (d *dynamicArea) profile() Profile { return d.scenario }

// conclude is the one-way exit from a scenario: the aftermath becomes the
// area's static identity.
func (d *dynamicArea) conclude() staticArea {
	return staticArea{Profile: d.aftermath}
}

// Area is a node of the world graph.
type Area struct {
	state    areaState
	canEnter Predicate
	cleared  bool
	paths    []*Area
	actions  actionList

	ui     Interface
	oracle Oracle
	log    zerolog.Logger
}

// NewArea creates a static, cleared area. A nil canEnter lets anyone in.
func NewArea(name, description, details string, canEnter Predicate) *Area {
	if canEnter == nil {
		canEnter = AlwaysTrue
	}
	return &Area{
		state:    staticArea{Profile{Name: name, Description: description, Details: details}},
		canEnter: canEnter,
		cleared:  true,
		ui:       detached{},
		log:      zerolog.Nop(),
	}
}

// InitDynamic turns the area into a scenario. The current name, description
// and details are kept as the aftermath restored when the scenario is won.
// The area stays uncleared until then.
func (a *Area) InitDynamic(name, description, details, exitMission string) error {
	s, ok := a.state.(staticArea)
	if !ok {
		return ErrAlreadyDynamic
	}
	a.state = &dynamicArea{
		scenario:    Profile{Name: name, Description: description, Details: details},
		exitMission: exitMission,
		aftermath:   s.Profile,
	}
	a.cleared = false
	return nil
}

func (a *Area) Type() AreaType       { return a.state.areaType() }
func (a *Area) Name() string         { return a.state.profile().Name }
func (a *Area) Description() string  { return a.state.profile().Description }
func (a *Area) Details() string      { return a.state.profile().Details }
func (a *Area) Cleared() bool        { return a.cleared }
func (a *Area) SetCleared(c bool)    { a.cleared = c }
func (a *Area) Paths() []*Area       { return slices.Clone(a.paths) }
func (a *Area) Actions() []*Action   { return a.actions.clone() }
func (a *Area) String() string       { return a.Name() }
func (a *Area) Interface() Interface { return a.ui }

// ExitMission returns the scenario's exit condition, or "" for static areas.
func (a *Area) ExitMission() string {
	if d, ok := a.state.(*dynamicArea); ok {
		return d.exitMission
	}
	return ""
}

// Aftermath returns the profile a dynamic area will settle into.
func (a *Area) Aftermath() (Profile, bool) {
	if d, ok := a.state.(*dynamicArea); ok {
		return d.aftermath, true
	}
	return Profile{}, false
}

func (a *Area) SetName(name string) {
	a.editProfile(func(p *Profile) { p.Name = name })
}

func (a *Area) SetDescription(desc string) {
	a.editProfile(func(p *Profile) { p.Description = desc })
}

func (a *Area) editProfile(edit func(*Profile)) {
	switch s := a.state.(type) {
	case staticArea:
		edit(&s.Profile)
		a.state = s
	case *dynamicArea:
		edit(&s.scenario)
	}
}

// SetEntryCriteria replaces the entry predicate. nil lets anyone in.
func (a *Area) SetEntryCriteria(canEnter Predicate) {
	if canEnter == nil {
		canEnter = AlwaysTrue
	}
	a.canEnter = canEnter
}

func (a *Area) SetExitMission(mission string) error {
	d, ok := a.state.(*dynamicArea)
	if !ok {
		return ErrNotDynamic
	}
	d.exitMission = mission
	return nil
}

// SetInterface attaches the player interface. WorldMap.AddArea does this.
func (a *Area) SetInterface(ui Interface) { a.ui = ui }

// SetOracle attaches the scenario judge. WorldMap.AddArea does this.
func (a *Area) SetOracle(o Oracle) { a.oracle = o }

func (a *Area) SetLogger(l zerolog.Logger) { a.log = l }

// CreatePath adds a one-way path to other. It reports false if the path
// already exists or would loop back to a.
func (a *Area) CreatePath(other *Area) bool {
	if other == a || slices.Contains(a.paths, other) {
		return false
	}
	a.paths = append(a.paths, other)
	return true
}

// CreateTwoWayPath links a and other in both directions.
func (a *Area) CreateTwoWayPath(other *Area) {
	a.CreatePath(other)
	other.CreatePath(a)
}

// RemovePath removes the path to other and reports whether it existed.
func (a *Area) RemovePath(other *Area) bool {
	i := slices.Index(a.paths, other)
	if i < 0 {
		return false
	}
	a.paths = slices.Delete(slices.Clone(a.paths), i, i+1)
	return true
}

func (a *Area) RemoveTwoWayPath(other *Area) {
	a.RemovePath(other)
	other.RemovePath(a)
}

// AddAction appends a custom menu action. Pass a nil canRun for no precondition.
func (a *Area) AddAction(name string, canRun Predicate, run Effect) *Action {
	return a.actions.add(name, canRun, run)
}

// RemoveAction removes the first action called name and reports whether one was found.
func (a *Area) RemoveAction(name string) bool {
	return a.actions.remove(name)
}

// Inspect narrates the area's details.
func (a *Area) Inspect() {
	inspect(a.ui, a.Details())
}

// EnterArea checks the entry predicate and narrates the arrival.
func (a *Area) EnterArea() bool {
	if !a.canEnter() {
		a.ui.Narrate(fmt.Sprintf("\n[ Block ] You are unable to enter %q.", a.Name()))
		return false
	}
	a.ui.Narrate("\nEntering " + a.Name())
	if a.Type() != Dynamic {
		a.ui.Narrate("[ Description ] " + a.Description())
	}
	return true
}

// Navigate asks the player where to go. It returns the chosen neighbor
// without entering it, or nil when the player stays or cannot leave.
func (a *Area) Navigate() (*Area, error) {
	if len(a.paths) == 0 {
		a.ui.Narrate("\n[ Block ] Dead end. You cannot leave.")
		return nil, nil
	}
	if !a.cleared {
		a.ui.Narrate("\n[ Block ] This area has not been cleared. You cannot leave.")
		return nil, nil
	}

	options := []string{"Stay Here"}
	for _, p := range a.paths {
		options = append(options, p.Name())
	}
	option, err := a.ui.PresentChoice(options)
	if err != nil {
		return nil, err
	}
	if option <= 0 {
		return nil, nil
	}
	return a.paths[option-1], nil
}

// AreaActions runs one round of interaction and returns where the player
// ends up: the receiver, or a neighbor that was successfully entered.
func (a *Area) AreaActions(ctx context.Context, player *Player) (*Area, error) {
	switch s := a.state.(type) {
	case *dynamicArea:
		return a.runScenario(ctx, s, player)
	default:
		return a.staticActions(player)
	}
}

func (a *Area) staticActions(player *Player) (*Area, error) {
	options := append([]string{"Navigate to Area", "Inspect Current Area", "Open Inventory"}, a.actions.names()...)
	option, err := a.ui.PresentChoice(options)
	if err != nil {
		return a, err
	}

	switch {
	case option < 0:
	case option == 0:
		a.ui.Narrate("\n[ Navigate ] You look around for areas to explore.")
		next, err := a.Navigate()
		if err != nil {
			return a, err
		}
		if next != nil && next.EnterArea() {
			return next, nil
		}
	case option == 1:
		a.Inspect()
	case option == 2:
		if err := player.PresentInventoryMenu(a.ui); err != nil {
			return a, err
		}
	default:
		if _, err := a.actions[option-3].Run(); err != nil {
			return a, err
		}
	}
	return a, nil
}
