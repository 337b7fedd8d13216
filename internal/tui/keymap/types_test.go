package keymap

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyBindingMatches(t *testing.T) {
	tests := []struct {
		name     string
		binding  KeyBinding
		msg      tea.KeyMsg
		expected bool
	}{
		{
			name:     "simple rune match",
			binding:  KeyBinding{KeyType: tea.KeyRunes, Rune: 'n'},
			msg:      runeKey('n'),
			expected: true,
		},
		{
			name:     "simple rune mismatch",
			binding:  KeyBinding{KeyType: tea.KeyRunes, Rune: 'n'},
			msg:      runeKey('p'),
			expected: false,
		},
		{
			name:     "special key match",
			binding:  KeyBinding{KeyType: tea.KeyEnter},
			msg:      tea.KeyMsg{Type: tea.KeyEnter},
			expected: true,
		},
		{
			name:     "special key mismatch",
			binding:  KeyBinding{KeyType: tea.KeyEnter},
			msg:      tea.KeyMsg{Type: tea.KeyEsc},
			expected: false,
		},
		{
			name:     "alt required but missing",
			binding:  KeyBinding{KeyType: tea.KeyRunes, Rune: 'n', Modifiers: ModAlt},
			msg:      runeKey('n'),
			expected: false,
		},
		{
			name:     "alt present and required",
			binding:  KeyBinding{KeyType: tea.KeyRunes, Rune: 'n', Modifiers: ModAlt},
			msg:      tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}, Alt: true},
			expected: true,
		},
		{
			name:     "catch-all rune",
			binding:  KeyBinding{KeyType: tea.KeyRunes},
			msg:      runeKey('x'),
			expected: true,
		},
		{
			name:     "rune binding vs special key",
			binding:  KeyBinding{KeyType: tea.KeyRunes, Rune: 'n'},
			msg:      tea.KeyMsg{Type: tea.KeyEnter},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.binding.Matches(tt.msg); got != tt.expected {
				t.Errorf("Matches() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestKeymapGetBinding(t *testing.T) {
	km := DefaultKeymap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		mode Mode
		want Command
	}{
		{"enter starts in setup", tea.KeyMsg{Type: tea.KeyEnter}, ModeSetup, CmdStart},
		{"digit selects length", runeKey('5'), ModeSetup, CmdSelectLength},
		{"space pauses", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, ModeActive, CmdTogglePause},
		{"n skips", runeKey('n'), ModeActive, CmdSkip},
		{"enter skips while active", tea.KeyMsg{Type: tea.KeyEnter}, ModeActive, CmdSkip},
		{"r resets while active", runeKey('r'), ModeActive, CmdReset},
		{"r restarts when complete", runeKey('r'), ModeComplete, CmdRestart},
		{"ctrl+c quits everywhere", tea.KeyMsg{Type: tea.KeyCtrlC}, ModeComplete, CmdQuit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := km.GetBinding(tt.msg, tt.mode)
			if !ok {
				t.Fatalf("no binding found")
			}
			if got != tt.want {
				t.Errorf("GetBinding() = %q, want %q", got, tt.want)
			}
		})
	}

	if _, ok := km.GetBinding(runeKey('z'), ModeActive); ok {
		t.Error("unbound key should not match")
	}
	if _, ok := km.GetBinding(runeKey('q'), Mode("bogus")); ok {
		t.Error("unknown mode should not match")
	}
}

func TestModifiersString(t *testing.T) {
	tests := []struct {
		mods Modifier
		want string
	}{
		{ModNone, ""},
		{ModCtrl, "ctrl+"},
		{ModAlt, "alt+"},
		{ModCtrl | ModShift, "ctrl+shift+"},
	}
	for _, tt := range tests {
		if got := tt.mods.String(); got != tt.want {
			t.Errorf("Modifier(%d).String() = %q, want %q", tt.mods, got, tt.want)
		}
	}
}

func TestKeyBindingString(t *testing.T) {
	tests := []struct {
		binding KeyBinding
		want    string
	}{
		{KeyBinding{KeyType: tea.KeyRunes, Rune: 'n'}, "n"},
		{KeyBinding{KeyType: tea.KeyRunes, Rune: ' '}, "space"},
		{KeyBinding{KeyType: tea.KeyEnter}, "enter"},
		{KeyBinding{KeyType: tea.KeyRunes, Rune: 'x', Modifiers: ModAlt}, "alt+x"},
	}
	for _, tt := range tests {
		if got := tt.binding.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseKeySpec(t *testing.T) {
	tests := []struct {
		spec    string
		keyType tea.KeyType
		r       rune
		mods    Modifier
		wantErr bool
	}{
		{spec: "s", keyType: tea.KeyRunes, r: 's'},
		{spec: "enter", keyType: tea.KeyEnter},
		{spec: "space", keyType: tea.KeySpace},
		{spec: "ctrl+r", keyType: tea.KeyCtrlR},
		{spec: "shift+tab", keyType: tea.KeyShiftTab},
		{spec: "alt+n", keyType: tea.KeyRunes, r: 'n', mods: ModAlt},
		{spec: "hyper+zz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			keyType, r, mods, err := ParseKeySpec(tt.spec)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if keyType != tt.keyType || r != tt.r || mods != tt.mods {
				t.Errorf("ParseKeySpec(%q) = (%v, %q, %v), want (%v, %q, %v)",
					tt.spec, keyType, r, mods, tt.keyType, tt.r, tt.mods)
			}
		})
	}
}

func TestGetBindingsForCommand(t *testing.T) {
	km := DefaultKeymap()

	bindings := km.GetBindingsForCommand(CmdTogglePause, ModeActive)
	if len(bindings) != 2 {
		t.Errorf("expected 2 bindings for toggle_pause, got %d", len(bindings))
	}
	if km.KeyLabel(CmdTogglePause, ModeActive) != "space" {
		t.Errorf("KeyLabel() = %q, want %q", km.KeyLabel(CmdTogglePause, ModeActive), "space")
	}
	if km.KeyLabel(CmdStart, ModeActive) != "" {
		t.Error("KeyLabel for an unbound command should be empty")
	}
}

func TestGetCategories(t *testing.T) {
	km := DefaultKeymap()
	cats := km.GetCategories(ModeActive)
	if len(cats) != 2 || cats[0] != "Control" || cats[1] != "Application" {
		t.Errorf("GetCategories() = %v, want [Control Application]", cats)
	}
}

func TestOverride(t *testing.T) {
	km := DefaultKeymap()
	if err := km.Override(map[string]string{"skip": "s", "toggle_pause": "ctrl+p"}); err != nil {
		t.Fatalf("Override() error = %v", err)
	}

	if cmd, ok := km.GetBinding(runeKey('s'), ModeActive); !ok || cmd != CmdSkip {
		t.Errorf("s should now skip, got %q", cmd)
	}
	if _, ok := km.GetBinding(runeKey('n'), ModeActive); ok {
		t.Error("old skip binding should be removed")
	}
	if cmd, ok := km.GetBinding(tea.KeyMsg{Type: tea.KeyCtrlP}, ModeActive); !ok || cmd != CmdTogglePause {
		t.Errorf("ctrl+p should toggle pause, got %q", cmd)
	}
	// Setup still starts on s: skip is not bound there.
	if cmd, _ := km.GetBinding(runeKey('s'), ModeSetup); cmd != CmdStart {
		t.Errorf("setup binding for s changed to %q", cmd)
	}
}

func TestOverride_Errors(t *testing.T) {
	km := DefaultKeymap()
	before := len(km.GetModeBindings(ModeActive))

	err := km.Override(map[string]string{"fly": "f", "skip": "hyper+zz"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), `unknown command "fly"`) || !strings.Contains(err.Error(), "skip:") {
		t.Errorf("error should list every problem, got %v", err)
	}
	if len(km.GetModeBindings(ModeActive)) != before {
		t.Error("failed override should leave the keymap unchanged")
	}
}

func TestDefaultKeymapCompleteness(t *testing.T) {
	km := DefaultKeymap()

	for _, mode := range []Mode{ModeSetup, ModeActive, ModeComplete} {
		if _, ok := km.Modes[mode]; !ok {
			t.Errorf("Default keymap missing mode: %s", mode)
		}
		if len(km.GetBindingsForCommand(CmdQuit, mode)) == 0 {
			t.Errorf("mode %s has no quit binding", mode)
		}
	}

	for _, cmd := range []Command{CmdTogglePause, CmdSkip, CmdReset} {
		if len(km.GetBindingsForCommand(cmd, ModeActive)) == 0 {
			t.Errorf("active mode missing %s", cmd)
		}
	}
}
