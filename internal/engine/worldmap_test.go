package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/narrative-engine/internal/models"
)

func TestWorldMapStartEmpty(t *testing.T) {
	m := NewWorldMap(&scriptedUI{}, &scriptedOracle{}, NewPlayer("Azi", "", ""))
	_, err := m.Start()
	assert.ErrorIs(t, err, ErrNoStartingArea)
	assert.ErrorIs(t, m.Run(context.Background()), ErrNoStartingArea)
}

func TestWorldMapAddAreaInjects(t *testing.T) {
	ui := &scriptedUI{}
	oracle := &scriptedOracle{}
	m := NewWorldMap(ui, oracle, NewPlayer("Azi", "", ""))
	portal := NewArea("Portal", "", "", nil)
	bridge := NewArea("Bridge", "", "", nil)
	m.AddArea(portal)
	m.AddArea(bridge)

	assert.Same(t, portal, m.StartingArea())
	assert.Equal(t, []*Area{portal, bridge}, m.Areas())
	assert.Same(t, ui, bridge.Interface())
	assert.Same(t, oracle, bridge.oracle)

	got, ok := m.Area("Bridge")
	require.True(t, ok)
	assert.Same(t, bridge, got)
	_, ok = m.Area("Moon")
	assert.False(t, ok)
}

func TestWorldMapStartIgnoresEntryPredicate(t *testing.T) {
	ui := &scriptedUI{}
	m := NewWorldMap(ui, &scriptedOracle{}, NewPlayer("Azi", "", ""))
	cell := NewArea("Cell", "", "", func() bool { return false })
	m.AddArea(cell)

	start, err := m.Start()
	require.NoError(t, err)
	assert.Same(t, cell, start)
	assert.Same(t, cell, m.CurrentArea())
	assert.Contains(t, ui.output(), `You are unable to enter "Cell".`)
}

func TestWorldMapRun(t *testing.T) {
	// Portal -> Bridge, then pull the lever on the bridge to win.
	ui := &scriptedUI{choices: []int{0, 1, 3}}
	m := NewWorldMap(ui, &scriptedOracle{}, NewPlayer("Azi", "", ""))
	portal := NewArea("Portal", "Swirling light.", "", nil)
	bridge := NewArea("Bridge", "Creaky.", "", nil)
	bridge.AddAction("Pull Lever", nil, func() error { return ErrGameComplete })
	portal.CreateTwoWayPath(bridge)
	m.AddArea(portal)
	m.AddArea(bridge)

	err := m.Run(context.Background())
	assert.ErrorIs(t, err, ErrGameComplete)
	assert.Same(t, bridge, m.CurrentArea())
	assert.Equal(t, "\nEntering Portal", ui.narrated[0])
}

func TestWorldMapRunStopsOnQuit(t *testing.T) {
	m := NewWorldMap(&scriptedUI{}, &scriptedOracle{}, NewPlayer("Azi", "", ""))
	m.AddArea(NewArea("Portal", "", "", nil))
	err := m.Run(context.Background())
	assert.ErrorIs(t, err, ErrQuit)
	assert.True(t, IsTerminal(err))
}

func TestWorldMapRunHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := NewWorldMap(&scriptedUI{choices: []int{1}}, &scriptedOracle{}, NewPlayer("Azi", "", ""))
	m.AddArea(NewArea("Portal", "", "", nil))
	assert.ErrorIs(t, m.Run(ctx), context.Canceled)
}

func TestWorldMapLogsLiveAreaName(t *testing.T) {
	var buf bytes.Buffer
	ui := &scriptedUI{texts: []string{"I break the mana lock."}, choices: []int{1, 1}}
	oracle := &scriptedOracle{replies: []*models.Evaluation{verdict("Dem-0 crumbles.", nil, true, false)}}
	m := NewWorldMap(ui, oracle, NewPlayer("Azi", "", ""), WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))
	m.AddArea(newDomain(t, ui, oracle))

	_, err := m.Start()
	require.NoError(t, err)
	require.NoError(t, m.Tick(context.Background()))
	require.NoError(t, m.Tick(context.Background()))

	var areas []string
	dec := json.NewDecoder(&buf)
	for dec.More() {
		var line map[string]any
		require.NoError(t, dec.Decode(&line))
		if area, ok := line["area"].(string); ok {
			areas = append(areas, line["message"].(string)+": "+area)
		}
	}
	assert.Equal(t, []string{
		"session started: Dem-0's Domain",
		"tick: Dem-0's Domain",
		"scenario cleared: Dem-0's Ruins",
		"tick: Dem-0's Ruins",
	}, areas)
}

func TestWorldMapStaysInUnclearedArea(t *testing.T) {
	ui := &scriptedUI{choices: []int{0}}
	m := NewWorldMap(ui, &scriptedOracle{}, NewPlayer("Azi", "", ""))
	arena := NewArea("Arena", "Sand and blood.", "", nil)
	exit := NewArea("Exit", "", "", nil)
	arena.CreatePath(exit)
	arena.SetCleared(false)
	m.AddArea(arena)
	m.AddArea(exit)

	_, err := m.Start()
	require.NoError(t, err)
	require.NoError(t, m.Tick(context.Background()))

	assert.Same(t, arena, m.CurrentArea())
	assert.Equal(t, []*Area{exit}, arena.Paths())
	assert.Contains(t, ui.output(), "This area has not been cleared. You cannot leave.")
	assert.NotContains(t, ui.output(), "Entering Exit")
}
