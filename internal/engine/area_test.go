package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func attach(ui Interface, areas ...*Area) {
	for _, a := range areas {
		a.SetInterface(ui)
	}
}

func TestNewAreaIsStaticAndCleared(t *testing.T) {
	a := NewArea("Portal", "A shimmering ring.", "Humming.", nil)
	assert.Equal(t, Static, a.Type())
	assert.True(t, a.Cleared())
	assert.Equal(t, "", a.ExitMission())
	_, ok := a.Aftermath()
	assert.False(t, ok)
	assert.Equal(t, "static", a.Type().String())
}

func TestInitDynamicKeepsAftermath(t *testing.T) {
	a := NewArea("Domain", "Quiet ruins.", "Dust everywhere.", nil)
	require.NoError(t, a.InitDynamic("Dem-0's Domain", "A demon looms.", "Weak to mana breaks.", "Dem-0 is defeated."))

	assert.Equal(t, Dynamic, a.Type())
	assert.False(t, a.Cleared())
	assert.Equal(t, "Dem-0's Domain", a.Name())
	assert.Equal(t, "A demon looms.", a.Description())
	assert.Equal(t, "Dem-0 is defeated.", a.ExitMission())

	after, ok := a.Aftermath()
	require.True(t, ok)
	assert.Equal(t, Profile{Name: "Domain", Description: "Quiet ruins.", Details: "Dust everywhere."}, after)

	assert.ErrorIs(t, a.InitDynamic("again", "", "", ""), ErrAlreadyDynamic)
	require.NoError(t, a.SetExitMission("Dem-0 flees."))
	assert.Equal(t, "Dem-0 flees.", a.ExitMission())
	assert.ErrorIs(t, NewArea("x", "", "", nil).SetExitMission("y"), ErrNotDynamic)
}

func TestSetNameEditsCurrentProfile(t *testing.T) {
	a := NewArea("Gates", "Closed.", "", nil)
	a.SetName("Open Gates")
	a.SetDescription("Wide open.")
	assert.Equal(t, "Open Gates", a.Name())
	assert.Equal(t, "Wide open.", a.Description())

	require.NoError(t, a.InitDynamic("Ambush", "Arrows!", "", "Survive."))
	a.SetName("Heavy Ambush")
	assert.Equal(t, "Heavy Ambush", a.Name())
	after, _ := a.Aftermath()
	assert.Equal(t, "Open Gates", after.Name)
}

func TestPaths(t *testing.T) {
	a := NewArea("A", "", "", nil)
	b := NewArea("B", "", "", nil)
	c := NewArea("C", "", "", nil)

	assert.False(t, a.CreatePath(a))
	assert.True(t, a.CreatePath(b))
	assert.False(t, a.CreatePath(b))
	a.CreateTwoWayPath(c)

	assert.Equal(t, []*Area{b, c}, a.Paths())
	assert.Equal(t, []*Area{a}, c.Paths())
	assert.Empty(t, b.Paths())

	a.RemoveTwoWayPath(c)
	assert.Equal(t, []*Area{b}, a.Paths())
	assert.Empty(t, c.Paths())
	assert.False(t, a.RemovePath(c))
}

func TestNavigate(t *testing.T) {
	t.Run("dead end", func(t *testing.T) {
		ui := &scriptedUI{}
		a := NewArea("Pit", "", "", nil)
		attach(ui, a)
		next, err := a.Navigate()
		require.NoError(t, err)
		assert.Nil(t, next)
		assert.Equal(t, []string{"\n[ Block ] Dead end. You cannot leave."}, ui.narrated)
		assert.Empty(t, ui.menus)
	})

	t.Run("not cleared", func(t *testing.T) {
		ui := &scriptedUI{}
		a := NewArea("Arena", "", "", nil)
		exit := NewArea("Exit", "", "", nil)
		a.CreatePath(exit)
		a.SetCleared(false)
		attach(ui, a)
		next, err := a.Navigate()
		require.NoError(t, err)
		assert.Nil(t, next)
		assert.Equal(t, []string{"\n[ Block ] This area has not been cleared. You cannot leave."}, ui.narrated)
		assert.Equal(t, []*Area{exit}, a.Paths())
		assert.False(t, a.Cleared())
		assert.Empty(t, ui.menus)
	})

	t.Run("stay", func(t *testing.T) {
		ui := &scriptedUI{choices: []int{0}}
		a := NewArea("Bridge", "", "", nil)
		a.CreatePath(NewArea("Gates", "", "", nil))
		attach(ui, a)
		next, err := a.Navigate()
		require.NoError(t, err)
		assert.Nil(t, next)
		assert.Equal(t, []string{"Stay Here", "Gates"}, ui.lastMenu())
	})

	t.Run("pick", func(t *testing.T) {
		ui := &scriptedUI{choices: []int{2}}
		a := NewArea("Bridge", "", "", nil)
		portal := NewArea("Portal", "", "", nil)
		gates := NewArea("Gates", "", "", nil)
		a.CreatePath(portal)
		a.CreatePath(gates)
		attach(ui, a)
		next, err := a.Navigate()
		require.NoError(t, err)
		assert.Same(t, gates, next)
	})
}

func TestEnterArea(t *testing.T) {
	ui := &scriptedUI{}
	locked := true
	gates := NewArea("Gates", "Iron bars.", "", func() bool { return !locked })
	attach(ui, gates)

	assert.False(t, gates.EnterArea())
	assert.Equal(t, []string{"\n[ Block ] You are unable to enter \"Gates\"."}, ui.narrated)

	ui.narrated = nil
	locked = false
	assert.True(t, gates.EnterArea())
	assert.Equal(t, []string{"\nEntering Gates", "[ Description ] Iron bars."}, ui.narrated)
}

func TestEnterDynamicAreaSkipsDescription(t *testing.T) {
	ui := &scriptedUI{}
	a := NewArea("Domain", "Ruins.", "", nil)
	require.NoError(t, a.InitDynamic("Dem-0's Domain", "A demon.", "", "Win."))
	attach(ui, a)
	assert.True(t, a.EnterArea())
	assert.Equal(t, []string{"\nEntering Dem-0's Domain"}, ui.narrated)
}

func TestStaticActionsMenu(t *testing.T) {
	ctx := context.Background()
	player := NewPlayer("Azi", "", "")

	t.Run("options", func(t *testing.T) {
		ui := &scriptedUI{choices: []int{1}}
		a := NewArea("Portal", "", "Runes glow.", nil)
		a.AddAction("Touch Runes", nil, nil)
		attach(ui, a)
		next, err := a.AreaActions(ctx, player)
		require.NoError(t, err)
		assert.Same(t, a, next)
		assert.Equal(t, []string{"Navigate to Area", "Inspect Current Area", "Open Inventory", "Touch Runes"}, ui.lastMenu())
		assert.Contains(t, ui.narrated, "\n[ Inspect ] Runes glow.")
	})

	t.Run("navigate into open area", func(t *testing.T) {
		ui := &scriptedUI{choices: []int{0, 1}}
		a := NewArea("Portal", "", "", nil)
		bridge := NewArea("Bridge", "Narrow.", "", nil)
		a.CreatePath(bridge)
		attach(ui, a, bridge)
		next, err := a.AreaActions(ctx, player)
		require.NoError(t, err)
		assert.Same(t, bridge, next)
		assert.Equal(t, "\n[ Navigate ] You look around for areas to explore.", ui.narrated[0])
		assert.Contains(t, ui.narrated, "\nEntering Bridge")
	})

	t.Run("navigate into locked area", func(t *testing.T) {
		ui := &scriptedUI{choices: []int{0, 1}}
		a := NewArea("Bridge", "", "", nil)
		gates := NewArea("Gates", "", "", func() bool { return false })
		a.CreatePath(gates)
		attach(ui, a, gates)
		next, err := a.AreaActions(ctx, player)
		require.NoError(t, err)
		assert.Same(t, a, next)
	})

	t.Run("custom action", func(t *testing.T) {
		opened := false
		ui := &scriptedUI{choices: []int{3}}
		a := NewArea("Gates", "", "", nil)
		a.AddAction("Open Gates", nil, func() error {
			opened = true
			return nil
		})
		attach(ui, a)
		_, err := a.AreaActions(ctx, player)
		require.NoError(t, err)
		assert.True(t, opened)
	})

	t.Run("action ends game", func(t *testing.T) {
		ui := &scriptedUI{choices: []int{3}}
		a := NewArea("Throne", "", "", nil)
		a.AddAction("Sit", nil, func() error { return ErrGameComplete })
		attach(ui, a)
		_, err := a.AreaActions(ctx, player)
		assert.ErrorIs(t, err, ErrGameComplete)
	})

	t.Run("inventory", func(t *testing.T) {
		ui := &scriptedUI{choices: []int{2}}
		a := NewArea("Portal", "", "", nil)
		attach(ui, a)
		_, err := a.AreaActions(ctx, player)
		require.NoError(t, err)
		assert.Equal(t, []string{"Your inventory is empty."}, ui.narrated)
	})
}

func TestAreaRemoveAction(t *testing.T) {
	a := NewArea("Gates", "", "", nil)
	a.AddAction("Open Gates", nil, nil)
	assert.False(t, a.RemoveAction(""))
	assert.True(t, a.RemoveAction("Open Gates"))
	assert.Empty(t, a.Actions())
}

func TestAreaInspectIsIdempotent(t *testing.T) {
	ui := &scriptedUI{}
	bridge := NewArea("Bridge", "A long stone bridge.", "The railing is carved with names.", nil)
	gates := NewArea("Gates", "", "", nil)
	bridge.CreatePath(gates)
	attach(ui, bridge)

	bridge.Inspect()
	bridge.Inspect()

	require.Len(t, ui.narrated, 2)
	assert.Equal(t, ui.narrated[0], ui.narrated[1])
	assert.Contains(t, ui.narrated[0], "The railing is carved with names.")
	assert.Equal(t, Static, bridge.Type())
	assert.True(t, bridge.Cleared())
	assert.Equal(t, "Bridge", bridge.Name())
	assert.Equal(t, []*Area{gates}, bridge.Paths())
	assert.Empty(t, ui.menus)
}
