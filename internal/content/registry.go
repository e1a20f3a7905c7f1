// Package content turns world definitions into playable area graphs.
package content

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/rs/zerolog"

	"github.com/tatianab/narrative-engine/internal/engine"
)

// ErrUnknownBehavior is returned when a world names a predicate or effect
// that is not registered.
var ErrUnknownBehavior = errors.New("unknown behavior")

// Game is the live world a behavior acts on.
type Game struct {
	Title  string
	Intro  string
	UI     engine.Interface
	Player *engine.Player
	Map    *engine.WorldMap
	Items  map[string]*engine.Item // by world id
	Areas  map[string]*engine.Area // by world id
	Flags  map[string]bool         // learned spells and other story flags
	Log    zerolog.Logger
}

// Source identifies what an effect was triggered from. Exactly one of Item
// and Area is set.
type Source struct {
	Item   *engine.Item
	Area   *engine.Area
	Action string
}

// RemoveAction drops the triggering action from its owner.
func (s Source) RemoveAction() bool {
	switch {
	case s.Item != nil:
		return s.Item.RemoveAction(s.Action)
	case s.Area != nil:
		return s.Area.RemoveAction(s.Action)
	}
	return false
}

type (
	PredicateFunc func(g *Game) bool
	EffectFunc    func(g *Game, src Source) error
)

// Registry maps behavior names used in world files to code.
type Registry struct {
	predicates map[string]PredicateFunc
	effects    map[string]EffectFunc
}

func NewRegistry() *Registry {
	return &Registry{
		predicates: map[string]PredicateFunc{},
		effects:    map[string]EffectFunc{},
	}
}

func (r *Registry) Predicate(name string, p PredicateFunc) *Registry {
	r.predicates[name] = p
	return r
}

func (r *Registry) Effect(name string, e EffectFunc) *Registry {
	r.effects[name] = e
	return r
}

// Names lists registered predicates and effects, sorted.
func (r *Registry) Names() (predicates, effects []string) {
	return slices.Sorted(maps.Keys(r.predicates)), slices.Sorted(maps.Keys(r.effects))
}

// predicate binds a named predicate to g. An empty name means no precondition.
func (r *Registry) predicate(name string, g *Game) (engine.Predicate, error) {
	if name == "" {
		return nil, nil
	}
	p, ok := r.predicates[name]
	if !ok {
		return nil, fmt.Errorf("%w: predicate %q", ErrUnknownBehavior, name)
	}
	return func() bool { return p(g) }, nil
}

func (r *Registry) effect(name string, g *Game, src Source) (engine.Effect, error) {
	e, ok := r.effects[name]
	if !ok {
		return nil, fmt.Errorf("%w: effect %q", ErrUnknownBehavior, name)
	}
	return func() error {
		g.Log.Debug().Str("effect", name).Str("action", src.Action).Msg("running action")
		return e(g, src)
	}, nil
}
