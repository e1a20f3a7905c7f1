package content

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tatianab/narrative-engine/internal/engine"
	"github.com/tatianab/narrative-engine/internal/models"
)

//go:embed worlds/azi.yaml
var aziWorld []byte

// BundledWorld returns the Azi world shipped with the game.
func BundledWorld() (*models.WorldSpec, error) {
	return models.ParseWorld(aziWorld)
}

// Build creates the player, items and areas described by spec and wires
// them into a world map. Areas are added in file order, so the first one is
// where the player starts.
func Build(spec *models.WorldSpec, reg *Registry, ui engine.Interface, oracle engine.Oracle, log zerolog.Logger) (*Game, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	g := &Game{
		Title:  spec.Title,
		Intro:  spec.Intro,
		UI:     ui,
		Player: engine.NewPlayer(spec.Player.Name, spec.Player.PhysicalState, spec.Player.MentalState),
		Items:  make(map[string]*engine.Item, len(spec.Items)),
		Areas:  make(map[string]*engine.Area, len(spec.Areas)),
		Flags:  map[string]bool{},
		Log:    log,
	}
	g.Map = engine.NewWorldMap(ui, oracle, g.Player, engine.WithLogger(log))

	for _, is := range spec.Items {
		it := engine.NewItem(is.Name, is.Description, is.Details)
		if err := bindActions(reg, g, is.Actions, Source{Item: it}, it.AddAction); err != nil {
			return nil, fmt.Errorf("item %q: %w", is.ID, err)
		}
		g.Items[is.ID] = it
	}

	for _, as := range spec.Areas {
		canEnter, err := reg.predicate(as.Requires, g)
		if err != nil {
			return nil, fmt.Errorf("area %q: %w", as.ID, err)
		}
		a := engine.NewArea(as.Name, as.Description, as.Details, canEnter)
		if d := as.Dynamic; d != nil {
			if err := a.InitDynamic(d.Name, d.Description, d.Details, d.ExitMission); err != nil {
				return nil, fmt.Errorf("area %q: %w", as.ID, err)
			}
		}
		if as.Cleared != nil {
			a.SetCleared(*as.Cleared)
		}
		if err := bindActions(reg, g, as.Actions, Source{Area: a}, a.AddAction); err != nil {
			return nil, fmt.Errorf("area %q: %w", as.ID, err)
		}
		g.Areas[as.ID] = a
		g.Map.AddArea(a)
	}

	for _, as := range spec.Areas {
		from := g.Areas[as.ID]
		for _, id := range as.Paths {
			from.CreatePath(g.Areas[id])
		}
		for _, id := range as.TwoWayPaths {
			from.CreateTwoWayPath(g.Areas[id])
		}
	}

	for _, id := range spec.Player.Inventory {
		g.Player.AddItem(g.Items[id])
	}

	log.Info().
		Str("world", spec.Title).
		Int("areas", len(spec.Areas)).
		Int("items", len(spec.Items)).
		Msg("world built")
	return g, nil
}

func bindActions(reg *Registry, g *Game, specs []models.ActionSpec, src Source, add func(string, engine.Predicate, engine.Effect) *engine.Action) error {
	for _, s := range specs {
		if s.Effect == "" {
			return fmt.Errorf("action %q has no effect", s.Name)
		}
		canRun, err := reg.predicate(s.Requires, g)
		if err != nil {
			return fmt.Errorf("action %q: %w", s.Name, err)
		}
		src := src
		src.Action = s.Name
		run, err := reg.effect(s.Effect, g, src)
		if err != nil {
			return fmt.Errorf("action %q: %w", s.Name, err)
		}
		add(s.Name, canRun, run)
	}
	return nil
}

// Run narrates the intro and plays until the session ends.
func (g *Game) Run(ctx context.Context) error {
	if g.Intro != "" {
		g.UI.Narrate(g.Intro)
	}
	return g.Map.Run(ctx)
}
