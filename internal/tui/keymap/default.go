package keymap

import tea "github.com/charmbracelet/bubbletea"

// DefaultKeymap returns the built-in key bindings.
func DefaultKeymap() *Keymap {
	return &Keymap{
		Name:        "default",
		Description: "Default limber key bindings",
		Modes: map[Mode]*ModeBindings{
			ModeSetup:    defaultSetupBindings(),
			ModeActive:   defaultActiveBindings(),
			ModeComplete: defaultCompleteBindings(),
		},
	}
}

func globalBindings() []KeyBinding {
	return []KeyBinding{
		{KeyType: tea.KeyRunes, Rune: '?', Command: CmdToggleHelp, Description: "Toggle help", Category: "Application"},
		{KeyType: tea.KeyRunes, Rune: 'q', Command: CmdQuit, Description: "Quit", Category: "Application"},
		{KeyType: tea.KeyCtrlC, Command: CmdQuit, Description: "Quit", Category: "Application"},
	}
}

func defaultSetupBindings() *ModeBindings {
	bindings := []KeyBinding{
		{KeyType: tea.KeyLeft, Command: CmdPrevLength, Description: "Shorter routine", Category: "Routine"},
		{KeyType: tea.KeyRunes, Rune: 'h', Command: CmdPrevLength, Description: "Shorter routine", Category: "Routine"},
		{KeyType: tea.KeyUp, Command: CmdPrevLength, Description: "Shorter routine", Category: "Routine"},
		{KeyType: tea.KeyRunes, Rune: 'k', Command: CmdPrevLength, Description: "Shorter routine", Category: "Routine"},
		{KeyType: tea.KeyRight, Command: CmdNextLength, Description: "Longer routine", Category: "Routine"},
		{KeyType: tea.KeyRunes, Rune: 'l', Command: CmdNextLength, Description: "Longer routine", Category: "Routine"},
		{KeyType: tea.KeyDown, Command: CmdNextLength, Description: "Longer routine", Category: "Routine"},
		{KeyType: tea.KeyRunes, Rune: 'j', Command: CmdNextLength, Description: "Longer routine", Category: "Routine"},
		{KeyType: tea.KeyEnter, Command: CmdStart, Description: "Start routine", Category: "Routine"},
		{KeyType: tea.KeyRunes, Rune: 's', Command: CmdStart, Description: "Start routine", Category: "Routine"},
	}
	for r := '1'; r <= '9'; r++ {
		bindings = append(bindings, KeyBinding{
			KeyType:     tea.KeyRunes,
			Rune:        r,
			Command:     CmdSelectLength,
			Description: "Choose length " + string(r),
			Category:    "Routine",
		})
	}
	return &ModeBindings{
		Mode:     ModeSetup,
		Bindings: append(bindings, globalBindings()...),
	}
}

func defaultActiveBindings() *ModeBindings {
	return &ModeBindings{
		Mode: ModeActive,
		Bindings: append([]KeyBinding{
			{KeyType: tea.KeySpace, Command: CmdTogglePause, Description: "Pause / resume", Category: "Control"},
			{KeyType: tea.KeyRunes, Rune: 'p', Command: CmdTogglePause, Description: "Pause / resume", Category: "Control"},
			{KeyType: tea.KeyRunes, Rune: 'n', Command: CmdSkip, Description: "Next", Category: "Control"},
			{KeyType: tea.KeyEnter, Command: CmdSkip, Description: "Next", Category: "Control"},
			{KeyType: tea.KeyRight, Command: CmdSkip, Description: "Next", Category: "Control"},
			{KeyType: tea.KeyRunes, Rune: 'r', Command: CmdReset, Description: "Reset routine", Category: "Control"},
			{KeyType: tea.KeyEsc, Command: CmdReset, Description: "Reset routine", Category: "Control"},
		}, globalBindings()...),
	}
}

func defaultCompleteBindings() *ModeBindings {
	return &ModeBindings{
		Mode: ModeComplete,
		Bindings: append([]KeyBinding{
			{KeyType: tea.KeyEnter, Command: CmdRestart, Description: "New routine", Category: "Routine"},
			{KeyType: tea.KeyRunes, Rune: 'r', Command: CmdRestart, Description: "New routine", Category: "Routine"},
		}, globalBindings()...),
	}
}
