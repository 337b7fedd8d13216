package tui

import (
	"fmt"
	"slices"

	"github.com/Iron-Ham/limber/internal/catalog"
	"github.com/Iron-Ham/limber/internal/tui/keymap"
	tea "github.com/charmbracelet/bubbletea"
)

// catalogReloadedMsg carries a catalog re-read by the watcher.
type catalogReloadedMsg struct {
	catalog catalog.Catalog
}

// catalogErrorMsg reports a catalog file that failed to reload.
type catalogErrorMsg struct {
	err error
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tickMsg:
		return m.handleTick(msg)

	case catalogReloadedMsg:
		if err := m.engine.SetCatalog(msg.catalog); err != nil {
			m.logger.Warn("rejected reloaded catalog", "error", err)
			m.notice = ""
			m.err = err
			return m, nil
		}
		m.err = nil
		m.notice = fmt.Sprintf("Catalog reloaded: %d exercises", len(msg.catalog))
		m.logger.Info("catalog reloaded", "exercises", len(msg.catalog))
		return m, nil

	case catalogErrorMsg:
		m.logger.Warn("catalog reload failed", "error", msg.err)
		m.notice = ""
		m.err = fmt.Errorf("catalog reload failed, keeping previous catalog: %w", msg.err)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeypress(msg)
	}
	return m, nil
}

// handleTick forwards a tick from the held clock handle to the engine and
// schedules the next one. Stale ticks from released handles are dropped.
func (m Model) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	if !m.clock.Current(msg) {
		return m, nil
	}
	m.engine.Tick()
	return m, m.clock.Next(msg)
}

// handleKeypress translates a key press into a keymap command for the
// current screen and applies it.
func (m Model) handleKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd, ok := m.keymap.GetBinding(msg, m.mode())
	if !ok {
		return m, nil
	}

	switch cmd {
	case keymap.CmdQuit:
		m.quitting = true
		m.engine.Reset()
		return m, tea.Quit

	case keymap.CmdToggleHelp:
		m.showHelp = !m.showHelp

	case keymap.CmdPrevLength:
		if m.selected > 0 {
			m.selected--
		}

	case keymap.CmdNextLength:
		if m.selected < len(m.lengths)-1 {
			m.selected++
		}

	case keymap.CmdSelectLength:
		if len(msg.Runes) == 1 {
			if i := slices.Index(m.lengths, int(msg.Runes[0]-'0')); i >= 0 {
				m.selected = i
			}
		}

	case keymap.CmdStart:
		m.notice = ""
		if err := m.engine.Start(m.SelectedLength()); err != nil {
			m.logger.Warn("could not start routine", "length", m.SelectedLength(), "error", err)
			m.err = err
			return m, nil
		}
		m.err = nil
		m.showHelp = false

	case keymap.CmdTogglePause:
		m.engine.TogglePause()

	case keymap.CmdSkip:
		m.engine.Skip()

	case keymap.CmdReset, keymap.CmdRestart:
		m.engine.Reset()
	}

	return m, m.clock.Schedule()
}
