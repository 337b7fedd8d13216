package tui

import (
	"fmt"
	"strings"

	"github.com/Iron-Ham/limber/internal/routine"
	"github.com/Iron-Ham/limber/internal/tui/keymap"
	"github.com/Iron-Ham/limber/internal/util"
	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.mode() {
	case keymap.ModeSetup:
		body = m.renderSetup()
	case keymap.ModeComplete:
		body = m.renderComplete()
	default:
		body = m.renderActive(m.engine.Snapshot())
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("limber"))
	b.WriteString("\n")
	b.WriteString(m.styles.ContentBox.Render(body))
	b.WriteString("\n")
	if m.showHelp {
		b.WriteString(m.renderHelp())
	} else {
		b.WriteString(m.renderHelpBar())
	}
	return b.String()
}

func (m Model) renderSetup() string {
	s := m.styles
	c := m.engine.Catalog()
	d := m.engine.Durations()

	lines := []string{
		s.Exercise.Render("Choose your routine"),
		s.Subtitle.Render(fmt.Sprintf("%s, %d bilateral", util.Plural(len(c), "exercise"), c.BilateralCount())),
		"",
	}
	for i, n := range m.lengths {
		count := fmt.Sprintf("%d stretches", n)
		if n == 1 {
			count = "1 stretch"
		}
		label := fmt.Sprintf("%-14s %s", count, routine.EstimateDuration(n, c, d))
		if i == m.selected {
			lines = append(lines, s.OptionSelected.Render("> "+label))
		} else {
			lines = append(lines, s.Option.Render("  "+label))
		}
	}
	lines = append(lines, "", s.Muted.Render(fmt.Sprintf("Warm-up %ds · stretch %ds per side · rest %ds",
		d.Warmup, d.Stretch, d.Rest)))
	if m.catalogSource != "" {
		lines = append(lines, s.Muted.Render("Catalog: "+m.catalogSource))
	}
	return m.withMessages(lines)
}

func (m Model) renderActive(snap routine.Snapshot) string {
	s := m.styles
	width := m.contentWidth()

	progressText := "Preparing"
	if snap.Phase != routine.PhaseWarmup {
		progressText = fmt.Sprintf("Stretch %d of %d", snap.Step, snap.TotalSteps)
	}

	header := s.Phase(snap.Phase.String()) + "  " + s.Muted.Render(progressText)
	if snap.Paused {
		header += "  " + s.PausedBadge.Render("PAUSED")
	}

	lines := []string{
		header,
		m.progress.ViewAs(snap.Progress()),
		"",
		s.Exercise.Render(util.TruncateANSI(snap.Title, width)),
		m.renderTimer(snap),
	}

	if (snap.Phase == routine.PhaseWarmup || snap.Phase == routine.PhaseRest) && !snap.NextUp.IsZero() {
		next := s.NextUpLabel.Render("Next Up: ") + s.NextUp.Render(snap.NextUp.Label())
		lines = append(lines, "", util.TruncateANSI(next, width))
	}

	lines = append(lines, "", m.renderControls(snap))
	return m.withMessages(lines)
}

// renderTimer renders mm:ss, alternating the flash style each second during
// the last seconds of a stretch.
func (m Model) renderTimer(snap routine.Snapshot) string {
	text := routine.FormatClock(snap.TimeRemaining)
	if m.flashing(snap) {
		if snap.TimeRemaining%2 == 0 {
			return m.styles.TimerFlash.Render(" " + text + " ")
		}
		return m.styles.Warning.Bold(true).Render(" " + text + " ")
	}
	return m.styles.Timer.Foreground(m.styles.PhaseColor(snap.Phase.String())).Render(" " + text + " ")
}

func (m Model) flashing(snap routine.Snapshot) bool {
	return snap.Phase == routine.PhaseStretch &&
		!snap.Paused &&
		snap.TimeRemaining > 0 &&
		snap.TimeRemaining <= m.flashThreshold
}

func (m Model) renderControls(snap routine.Snapshot) string {
	pause := "Pause"
	if snap.Paused {
		pause = "Resume"
	}
	next := "Next"
	if snap.IsLastStep {
		next = "Finish"
	}
	return strings.Join([]string{
		m.hint(keymap.CmdTogglePause, keymap.ModeActive, pause),
		m.hint(keymap.CmdSkip, keymap.ModeActive, next),
		m.hint(keymap.CmdReset, keymap.ModeActive, "Reset"),
	}, "  ")
}

func (m Model) renderComplete() string {
	s := m.styles
	sum := m.engine.Summary()

	row := func(label, value string) string {
		return s.SummaryLabel.Render(label) + s.SummaryValue.Render(value)
	}
	lines := []string{
		s.Phase(routine.PhaseComplete.String()) + "  " + s.SuccessMsg.Render("Routine Complete"),
		m.progress.ViewAs(1),
		"",
		row("Stretches", fmt.Sprint(sum.Exercises)),
		row("Total sides", fmt.Sprint(sum.TotalSides)),
		row("Total time", routine.FormatElapsed(sum.Elapsed)),
	}
	if sum.SidesSkipped > 0 {
		lines = append(lines, row("Sides skipped", fmt.Sprint(sum.SidesSkipped)))
	}
	lines = append(lines, "", s.Subtitle.Render("Nice work."))
	return m.withMessages(lines)
}

// withMessages appends the current notice and error, then joins lines.
func (m Model) withMessages(lines []string) string {
	if m.notice != "" {
		lines = append(lines, "", m.styles.SuccessMsg.Render(m.notice))
	}
	if m.err != nil {
		lines = append(lines, "", m.styles.ErrorMsg.Width(m.contentWidth()).Render(m.err.Error()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// hint renders "[key] label" using the first key bound to cmd.
func (m Model) hint(cmd keymap.Command, mode keymap.Mode, label string) string {
	key := m.keymap.KeyLabel(cmd, mode)
	if key == "" {
		return m.styles.Muted.Render(label)
	}
	return m.styles.HelpKey.Render("["+key+"]") + " " + label
}

func (m Model) renderHelpBar() string {
	mode := m.mode()
	var hints []string
	switch mode {
	case keymap.ModeSetup:
		hints = append(hints,
			m.hint(keymap.CmdPrevLength, mode, "shorter"),
			m.hint(keymap.CmdNextLength, mode, "longer"),
			m.hint(keymap.CmdStart, mode, "start"),
		)
	case keymap.ModeComplete:
		hints = append(hints, m.hint(keymap.CmdRestart, mode, "new routine"))
	}
	hints = append(hints,
		m.hint(keymap.CmdToggleHelp, mode, "help"),
		m.hint(keymap.CmdQuit, mode, "quit"),
	)
	return m.styles.HelpBar.Render(strings.Join(hints, "  "))
}

// renderHelp lists every binding of the current screen by category, one
// line per command with all of its keys.
func (m Model) renderHelp() string {
	mode := m.mode()
	bindings := m.keymap.GetModeBindings(mode)

	var b strings.Builder
	b.WriteString(m.styles.Primary.Bold(true).Render("Keys"))
	b.WriteString("\n")
	for _, category := range m.keymap.GetCategories(mode) {
		b.WriteString(m.styles.Muted.Render(category))
		b.WriteString("\n")

		var order []keymap.Command
		keys := make(map[keymap.Command][]string)
		desc := make(map[keymap.Command]string)
		for _, kb := range bindings {
			if kb.Category != category {
				continue
			}
			if _, seen := keys[kb.Command]; !seen {
				order = append(order, kb.Command)
				desc[kb.Command] = kb.Description
			}
			keys[kb.Command] = append(keys[kb.Command], kb.String())
		}
		for _, cmd := range order {
			if cmd == keymap.CmdSelectLength {
				b.WriteString("  " + m.styles.HelpKey.Render(fmt.Sprintf("%-16s", "1-9")) + " Choose length by number\n")
				continue
			}
			b.WriteString("  " + m.styles.HelpKey.Render(fmt.Sprintf("%-16s", strings.Join(keys[cmd], "/"))) + " " + desc[cmd] + "\n")
		}
	}
	return m.styles.HelpBar.Render(strings.TrimRight(b.String(), "\n"))
}
