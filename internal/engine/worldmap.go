package engine

import (
	"context"

	"github.com/rs/zerolog"
)

// WorldMap owns the area graph and the player's position in it.
type WorldMap struct {
	areas    []*Area
	starting *Area
	current  *Area

	ui     Interface
	oracle Oracle
	player *Player
	log    zerolog.Logger
}

type Option func(*WorldMap)

func WithLogger(l zerolog.Logger) Option {
	return func(m *WorldMap) { m.log = l }
}

func NewWorldMap(ui Interface, oracle Oracle, player *Player, opts ...Option) *WorldMap {
	m := &WorldMap{
		ui:     ui,
		oracle: oracle,
		player: player,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddArea registers an area and hands it the shared interface and oracle.
// The first area added is where the player starts.
func (m *WorldMap) AddArea(a *Area) {
	if len(m.areas) == 0 {
		m.starting = a
	}
	m.areas = append(m.areas, a)
	a.SetInterface(m.ui)
	a.SetOracle(m.oracle)
	a.SetLogger(m.log)
}

func (m *WorldMap) Areas() []*Area       { return append([]*Area(nil), m.areas...) }
func (m *WorldMap) StartingArea() *Area  { return m.starting }
func (m *WorldMap) CurrentArea() *Area   { return m.current }
func (m *WorldMap) Player() *Player      { return m.player }
func (m *WorldMap) Interface() Interface { return m.ui }

// Area looks an area up by its current name.
func (m *WorldMap) Area(name string) (*Area, bool) {
	for _, a := range m.areas {
		if a.Name() == name {
			return a, true
		}
	}
	return nil, false
}

// Start puts the player in the starting area. The starting area's entry
// predicate only affects narration; the player is placed there regardless.
func (m *WorldMap) Start() (*Area, error) {
	m.current = m.starting
	if m.starting == nil {
		return nil, ErrNoStartingArea
	}
	m.starting.EnterArea()
	m.log.Info().Str("area", m.starting.Name()).Msg("session started")
	return m.starting, nil
}

// Tick runs one round of the current area and moves the cursor to wherever
// the player ended up.
func (m *WorldMap) Tick(ctx context.Context) error {
	if m.current == nil {
		return nil
	}
	m.log.Debug().Str("area", m.current.Name()).Msg("tick")
	next, err := m.current.AreaActions(ctx, m.player)
	if next != nil && next != m.current {
		m.log.Debug().Str("from", m.current.Name()).Str("to", next.Name()).Msg("moved")
	}
	if next != nil {
		m.current = next
	}
	return err
}

// Run starts the session and ticks until something ends it. The returned
// error is never nil: either a terminal signal (see IsTerminal) or a fault.
func (m *WorldMap) Run(ctx context.Context) error {
	if _, err := m.Start(); err != nil {
		return err
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := m.Tick(ctx); err != nil {
			return err
		}
	}
}
