// Package keymap provides key binding definitions and lookup for the TUI.
// Bindings are declared per screen so the Update loop only translates a key
// press into a Command and never inspects raw keys itself.
package keymap

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Mode is the screen the TUI is showing. Each mode has its own bindings.
type Mode string

const (
	ModeSetup    Mode = "setup"    // Choosing a routine length
	ModeActive   Mode = "active"   // Warmup, stretch or rest in progress
	ModeComplete Mode = "complete" // Routine summary
)

// Command represents a named action that can be triggered by a key binding.
type Command string

// Setup mode commands
const (
	CmdPrevLength   Command = "prev_length"
	CmdNextLength   Command = "next_length"
	CmdSelectLength Command = "select_length" // digit keys
	CmdStart        Command = "start"
)

// Active mode commands
const (
	CmdTogglePause Command = "toggle_pause"
	CmdSkip        Command = "skip"
	CmdReset       Command = "reset"
)

// Complete mode commands
const (
	CmdRestart Command = "restart"
)

// Commands available in every mode
const (
	CmdToggleHelp Command = "toggle_help"
	CmdQuit       Command = "quit"
)

// Modifier represents keyboard modifiers (Ctrl, Alt, Shift).
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModCtrl  Modifier = 1 << iota
	ModAlt
	ModShift
)

// String returns a human-readable representation of modifiers.
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}
	var s string
	if m&ModCtrl != 0 {
		s += "ctrl+"
	}
	if m&ModAlt != 0 {
		s += "alt+"
	}
	if m&ModShift != 0 {
		s += "shift+"
	}
	return s
}

// KeyBinding represents a single key binding configuration.
type KeyBinding struct {
	// KeyType is the primary key for this binding.
	// For rune keys, use tea.KeyRunes and set Rune.
	KeyType tea.KeyType

	// Rune is the character for rune-based keys (when KeyType is tea.KeyRunes).
	Rune rune

	// Modifiers contains the modifier keys that must be pressed.
	Modifiers Modifier

	// Command is the action to execute when this binding is triggered.
	Command Command

	// Description is a human-readable description for help display.
	Description string

	// Category groups related bindings together in help display.
	Category string
}

// Matches checks if a tea.KeyMsg matches this binding.
func (kb KeyBinding) Matches(msg tea.KeyMsg) bool {
	wantAlt := kb.Modifiers&ModAlt != 0
	if msg.Alt != wantAlt {
		return false
	}

	// For special keys (not runes), match the key type directly
	if kb.KeyType != tea.KeyRunes {
		return msg.Type == kb.KeyType
	}

	if msg.Type != tea.KeyRunes || len(msg.Runes) == 0 {
		return false
	}

	// If Rune is 0, this is a catch-all binding for any rune
	if kb.Rune == 0 {
		return true
	}

	return msg.Runes[0] == kb.Rune
}

// String returns a human-readable representation of the key binding.
func (kb KeyBinding) String() string {
	prefix := kb.Modifiers.String()

	switch kb.KeyType {
	case tea.KeyRunes:
	case tea.KeySpace:
		return prefix + "space"
	default:
		return prefix + kb.KeyType.String()
	}

	switch kb.Rune {
	case ' ':
		return prefix + "space"
	default:
		return prefix + string(kb.Rune)
	}
}

// ModeBindings holds all key bindings for a specific mode.
type ModeBindings struct {
	Mode     Mode
	Bindings []KeyBinding
}

// GetBinding looks up a command for a key in this mode.
// Returns the command and true if found, or empty command and false if not.
func (mb *ModeBindings) GetBinding(msg tea.KeyMsg) (Command, bool) {
	for _, binding := range mb.Bindings {
		if binding.Matches(msg) {
			return binding.Command, true
		}
	}
	return "", false
}

// Keymap contains all key bindings organized by mode.
type Keymap struct {
	Name        string
	Description string
	Modes       map[Mode]*ModeBindings
}

// GetBinding looks up a command for a key in a specific mode.
func (km *Keymap) GetBinding(msg tea.KeyMsg, mode Mode) (Command, bool) {
	mb, ok := km.Modes[mode]
	if !ok {
		return "", false
	}
	return mb.GetBinding(msg)
}

// GetModeBindings returns all bindings for a specific mode.
func (km *Keymap) GetModeBindings(mode Mode) []KeyBinding {
	mb, ok := km.Modes[mode]
	if !ok {
		return nil
	}
	return mb.Bindings
}

// GetBindingsForCommand returns all bindings that trigger a specific command.
func (km *Keymap) GetBindingsForCommand(cmd Command, mode Mode) []KeyBinding {
	mb, ok := km.Modes[mode]
	if !ok {
		return nil
	}

	var result []KeyBinding
	for _, binding := range mb.Bindings {
		if binding.Command == cmd {
			result = append(result, binding)
		}
	}
	return result
}

// KeyLabel returns the first key bound to cmd in mode, for inline hints
// such as "[space] pause". Returns "" when cmd is unbound.
func (km *Keymap) KeyLabel(cmd Command, mode Mode) string {
	bindings := km.GetBindingsForCommand(cmd, mode)
	if len(bindings) == 0 {
		return ""
	}
	return bindings[0].String()
}

// GetCategories returns all unique categories in a mode's bindings.
func (km *Keymap) GetCategories(mode Mode) []string {
	mb, ok := km.Modes[mode]
	if !ok {
		return nil
	}

	seen := make(map[string]bool)
	var categories []string

	for _, binding := range mb.Bindings {
		if binding.Category != "" && !seen[binding.Category] {
			seen[binding.Category] = true
			categories = append(categories, binding.Category)
		}
	}
	return categories
}

// Override rebinds commands to the keys in overrides (command name to key
// spec, e.g. {"skip": "s"}). The new key replaces every existing binding for
// that command in each mode where the command appears. Unknown commands and
// unparseable key specs are reported together and leave the keymap unchanged.
func (km *Keymap) Override(overrides map[string]string) error {
	type parsed struct {
		cmd     Command
		keyType tea.KeyType
		r       rune
		mods    Modifier
	}

	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	var problems []string
	var changes []parsed
	for _, name := range names {
		cmd := Command(name)
		if !km.hasCommand(cmd) {
			problems = append(problems, fmt.Sprintf("unknown command %q", name))
			continue
		}
		keyType, r, mods, err := ParseKeySpec(overrides[name])
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		changes = append(changes, parsed{cmd: cmd, keyType: keyType, r: r, mods: mods})
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid key overrides: %s", strings.Join(problems, "; "))
	}

	for _, ch := range changes {
		for _, mb := range km.Modes {
			var kept []KeyBinding
			var template *KeyBinding
			for i, b := range mb.Bindings {
				if b.Command == ch.cmd {
					if template == nil {
						template = &mb.Bindings[i]
					}
					continue
				}
				kept = append(kept, b)
			}
			if template == nil {
				continue
			}
			rebound := *template
			rebound.KeyType, rebound.Rune, rebound.Modifiers = ch.keyType, ch.r, ch.mods
			// Overrides take precedence over any binding sharing the key.
			mb.Bindings = append([]KeyBinding{rebound}, kept...)
		}
	}
	return nil
}

func (km *Keymap) hasCommand(cmd Command) bool {
	for _, mb := range km.Modes {
		for _, b := range mb.Bindings {
			if b.Command == cmd {
				return true
			}
		}
	}
	return false
}

// ParseKeySpec parses a key specification string into KeyType, Rune, and Modifiers.
// Examples: "ctrl+r", "shift+tab", "j", "enter", "space"
func ParseKeySpec(spec string) (keyType tea.KeyType, r rune, mods Modifier, err error) {
	remaining := spec
	for {
		switch {
		case len(remaining) > 5 && remaining[:5] == "ctrl+":
			mods |= ModCtrl
			remaining = remaining[5:]
		case len(remaining) > 4 && remaining[:4] == "alt+":
			mods |= ModAlt
			remaining = remaining[4:]
		case len(remaining) > 6 && remaining[:6] == "shift+":
			mods |= ModShift
			remaining = remaining[6:]
		default:
			goto parseKey
		}
	}

parseKey:
	switch remaining {
	case "enter":
		return tea.KeyEnter, 0, mods, nil
	case "tab":
		if mods&ModShift != 0 {
			return tea.KeyShiftTab, 0, mods &^ ModShift, nil
		}
		return tea.KeyTab, 0, mods, nil
	case "esc", "escape":
		return tea.KeyEsc, 0, mods, nil
	case "space":
		return tea.KeySpace, 0, mods, nil
	case "backspace":
		return tea.KeyBackspace, 0, mods, nil
	case "up":
		return tea.KeyUp, 0, mods, nil
	case "down":
		return tea.KeyDown, 0, mods, nil
	case "left":
		return tea.KeyLeft, 0, mods, nil
	case "right":
		return tea.KeyRight, 0, mods, nil
	}

	// ctrl+letter maps to tea.KeyCtrlA through tea.KeyCtrlZ
	if mods&ModCtrl != 0 && len(remaining) == 1 {
		ch := remaining[0]
		if ch >= 'a' && ch <= 'z' {
			return tea.KeyCtrlA + tea.KeyType(ch-'a'), 0, mods &^ ModCtrl, nil
		}
	}

	if len(remaining) == 1 {
		return tea.KeyRunes, rune(remaining[0]), mods, nil
	}

	return 0, 0, 0, fmt.Errorf("unrecognized key spec: %s", spec)
}
