package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iron-Ham/limber/internal/catalog"
	lerrors "github.com/Iron-Ham/limber/internal/errors"
	"github.com/Iron-Ham/limber/internal/routine"
)

func abc() catalog.Catalog {
	return catalog.Catalog{
		{Name: "A", Bilateral: true},
		{Name: "B"},
		{Name: "C"},
	}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	clock := NewClock(time.Second)
	engine, err := routine.NewEngine(abc(),
		routine.WithClock(clock),
		routine.WithSelector(routine.FixedSelector()),
		routine.WithAllowedLengths([]int{1, 2, 3}),
		routine.WithDurations(routine.Durations{Warmup: 2, Stretch: 3, Rest: 1}),
	)
	require.NoError(t, err)
	return NewModel(Options{
		Engine:         engine,
		Clock:          clock,
		DefaultLength:  3,
		FlashThreshold: 2,
	})
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

// tick delivers a tick for the currently held clock handle.
func tick(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	return send(t, m, tickMsg{gen: m.clock.active, at: time.Now()})
}

func start(t *testing.T, m Model) Model {
	t.Helper()
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd, "starting a routine schedules the first tick")
	require.Equal(t, routine.PhaseWarmup, m.engine.Phase())
	return m
}

func TestModel_SetupSelection(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, 3, m.SelectedLength())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 2, m.SelectedLength())

	m, _ = send(t, m, runeKey('h'))
	m, _ = send(t, m, runeKey('h'))
	assert.Equal(t, 1, m.SelectedLength(), "selection stops at the shortest length")

	m, _ = send(t, m, runeKey('3'))
	assert.Equal(t, 3, m.SelectedLength())

	m, _ = send(t, m, runeKey('9'))
	assert.Equal(t, 3, m.SelectedLength(), "digits that are not allowed lengths are ignored")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 3, m.SelectedLength(), "selection stops at the longest length")
}

func TestModel_UnknownDefaultLengthSelectsFirst(t *testing.T) {
	clock := NewClock(time.Second)
	engine, err := routine.NewEngine(abc(), routine.WithClock(clock), routine.WithAllowedLengths([]int{1, 2}))
	require.NoError(t, err)

	m := NewModel(Options{Engine: engine, Clock: clock, DefaultLength: 7})
	assert.Equal(t, 1, m.SelectedLength())
}

func TestModel_SetupView(t *testing.T) {
	m := newTestModel(t)
	view := m.View()

	assert.Contains(t, view, "Choose your routine")
	assert.Contains(t, view, "1 stretch")
	assert.Contains(t, view, "3 stretches")
	assert.Contains(t, view, "3 exercises, 1 bilateral")
	assert.Contains(t, view, "min")
}

func TestModel_StartShowsWarmup(t *testing.T) {
	m := start(t, newTestModel(t))
	view := m.View()

	assert.True(t, m.clock.Active())
	assert.Contains(t, view, "Preparing")
	assert.Contains(t, view, "Prepare")
	assert.Contains(t, view, "0:02")
	assert.Contains(t, view, "Next Up: A (Left)")
}

func TestModel_TicksDriveEngine(t *testing.T) {
	m := start(t, newTestModel(t))

	m, cmd := tick(t, m)
	assert.Equal(t, 1, m.engine.TimeRemaining())
	assert.NotNil(t, cmd, "the next tick is scheduled while the handle is held")

	m, _ = tick(t, m)
	assert.Equal(t, routine.PhaseStretch, m.engine.Phase())
	assert.Contains(t, m.View(), "A - LEFT")
	assert.Contains(t, m.View(), "Stretch 1 of 4")
}

func TestModel_StaleTickIgnored(t *testing.T) {
	m := start(t, newTestModel(t))
	stale := tickMsg{gen: m.clock.active}

	m, _ = send(t, m, runeKey('r'))
	require.Equal(t, routine.PhaseSetup, m.engine.Phase())
	m = start(t, m)

	m, cmd := send(t, m, stale)
	assert.Nil(t, cmd)
	assert.Equal(t, 2, m.engine.TimeRemaining(), "a tick from a released handle must not reach the engine")
}

func TestModel_PauseStopsCountdown(t *testing.T) {
	m := start(t, newTestModel(t))

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeySpace})
	require.True(t, m.engine.Paused())
	assert.Contains(t, m.View(), "PAUSED")
	assert.Contains(t, m.View(), "Resume")

	m, cmd := tick(t, m)
	assert.Equal(t, 2, m.engine.TimeRemaining())
	assert.NotNil(t, cmd, "ticks keep flowing while paused")

	m, _ = send(t, m, runeKey('p'))
	assert.False(t, m.engine.Paused())
	assert.Contains(t, m.View(), "Pause")
}

func TestModel_SkipToCompletion(t *testing.T) {
	m := start(t, newTestModel(t))

	sawFinish := false
	for i := 0; i < 20 && m.engine.Phase() != routine.PhaseComplete; i++ {
		if m.engine.IsLastStep() && m.engine.Phase() == routine.PhaseStretch {
			assert.Contains(t, m.View(), "Finish")
			sawFinish = true
		}
		m, _ = send(t, m, runeKey('n'))
	}

	require.Equal(t, routine.PhaseComplete, m.engine.Phase())
	assert.True(t, sawFinish)
	assert.False(t, m.clock.Active(), "the handle is released on completion")

	view := m.View()
	assert.Contains(t, view, "Routine Complete")
	assert.Contains(t, view, "Total sides")
	assert.Contains(t, view, "Sides skipped")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, routine.PhaseSetup, m.engine.Phase())
}

func TestModel_NextLabelBeforeLastStep(t *testing.T) {
	m := start(t, newTestModel(t))
	m, _ = send(t, m, runeKey('n'))

	require.Equal(t, routine.PhaseStretch, m.engine.Phase())
	require.False(t, m.engine.IsLastStep())
	assert.Contains(t, m.View(), "Next")
	assert.NotContains(t, m.View(), "Finish")
}

func TestModel_Flashing(t *testing.T) {
	m := start(t, newTestModel(t))
	m, _ = send(t, m, runeKey('n'))
	require.Equal(t, routine.PhaseStretch, m.engine.Phase())

	assert.False(t, m.flashing(m.engine.Snapshot()), "3s left is above the 2s threshold")

	m, _ = tick(t, m)
	assert.True(t, m.flashing(m.engine.Snapshot()))

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.False(t, m.flashing(m.engine.Snapshot()), "no flashing while paused")
}

func TestModel_WarmupNeverFlashes(t *testing.T) {
	m := start(t, newTestModel(t))
	m, _ = tick(t, m)
	require.Equal(t, routine.PhaseWarmup, m.engine.Phase())
	assert.False(t, m.flashing(m.engine.Snapshot()))
}

func TestModel_CatalogReload(t *testing.T) {
	m := newTestModel(t)

	bigger := append(abc(), catalog.Exercise{Name: "D"})
	m, _ = send(t, m, catalogReloadedMsg{catalog: bigger})
	assert.Len(t, m.engine.Catalog(), 4)
	assert.Contains(t, m.View(), "Catalog reloaded: 4 exercises")

	m, _ = send(t, m, catalogReloadedMsg{catalog: catalog.Catalog{}})
	assert.Len(t, m.engine.Catalog(), 4, "an invalid catalog is rejected")
	assert.Error(t, m.err)
}

func TestModel_CatalogReloadError(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(t, m, catalogErrorMsg{err: errors.New("yaml: line 2: bad indent")})

	require.Error(t, m.err)
	assert.Contains(t, m.View(), "keeping previous catalog")
}

func TestModel_StartErrorShown(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(t, m, catalogReloadedMsg{catalog: catalog.Catalog{{Name: "A"}, {Name: "B"}}})

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, routine.PhaseSetup, m.engine.Phase())
	require.Error(t, m.err)
	assert.True(t, lerrors.Is(m.err, lerrors.ErrCatalogTooSmall))
	assert.Contains(t, m.View(), "configuration error")
}

func TestModel_HelpToggle(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(t, m, runeKey('?'))
	require.True(t, m.showHelp)

	view := m.View()
	assert.Contains(t, view, "Keys")
	assert.Contains(t, view, "Start routine")
	assert.Contains(t, view, "1-9")

	m, _ = send(t, m, runeKey('?'))
	assert.False(t, m.showHelp)
}

func TestModel_Quit(t *testing.T) {
	m := start(t, newTestModel(t))

	m, cmd := send(t, m, runeKey('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, routine.PhaseSetup, m.engine.Phase())
	assert.False(t, m.clock.Active())
	assert.Empty(t, m.View())
}

func TestModel_WindowResize(t *testing.T) {
	m := newTestModel(t)

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 200, Height: 40})
	assert.Equal(t, maxProgressWidth, m.progress.Width)

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 20, Height: 20})
	assert.Equal(t, minProgressWidth, m.progress.Width)
}

func TestModel_KeyOverride(t *testing.T) {
	m := newTestModel(t)
	require.NoError(t, m.keymap.Override(map[string]string{"skip": "x"}))
	m = start(t, m)

	m, _ = send(t, m, runeKey('x'))
	assert.Equal(t, routine.PhaseStretch, m.engine.Phase())
	assert.Contains(t, m.View(), "[x] Next")
}
