package engine

// Predicate decides whether something may happen right now.
type Predicate func() bool

// Effect performs an action's side effects. A non-nil error is either a
// terminal signal (ErrQuit, ErrGameComplete...) or a real failure.
type Effect func() error

// AlwaysTrue is the default precondition.
func AlwaysTrue() bool { return true }

// NoEffect is the default effect.
func NoEffect() error { return nil }

// Action is a named, guarded effect attached to an item or an area.
type Action struct {
	name   string
	canRun Predicate
	run    Effect
}

// NewAction builds an action. A nil canRun means "no precondition"; a nil run does nothing.
func NewAction(name string, canRun Predicate, run Effect) *Action {
	if canRun == nil {
		canRun = AlwaysTrue
	}
	if run == nil {
		run = NoEffect
	}
	return &Action{name: name, canRun: canRun, run: run}
}

func (a *Action) Name() string { return a.name }

// Run checks the precondition and, if it holds, runs the effect.
// It reports whether the effect ran.
func (a *Action) Run() (bool, error) {
	if !a.canRun() {
		return false, nil
	}
	return true, a.run()
}

// actionList is an ordered list of actions removable by name.
type actionList []*Action

func (l *actionList) add(name string, canRun Predicate, run Effect) *Action {
	a := NewAction(name, canRun, run)
	*l = append(*l, a)
	return a
}

// remove drops the first action called name.
func (l *actionList) remove(name string) bool {
	if name == "" {
		return false
	}
	for i, a := range *l {
		if a.name == name {
			*l = append((*l)[:i:i], (*l)[i+1:]...)
			return true
		}
	}
	return false
}

func (l actionList) names() []string {
	names := make([]string, len(l))
	for i, a := range l {
		names[i] = a.name
	}
	return names
}

func (l actionList) clone() []*Action {
	return append([]*Action(nil), l...)
}
