package tui

import (
	"slices"

	"github.com/Iron-Ham/limber/internal/logging"
	"github.com/Iron-Ham/limber/internal/routine"
	"github.com/Iron-Ham/limber/internal/tui/keymap"
	"github.com/Iron-Ham/limber/internal/tui/styles"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// Layout constants
const (
	defaultWidth     = 60
	minProgressWidth = 20
	maxProgressWidth = 60
	boxChrome        = 8 // ContentBox border and padding
)

// Options configures a Model.
type Options struct {
	// Engine is driven by the model. Its clock must be Clock.
	Engine *routine.Engine
	Clock  *Clock

	Keymap *keymap.Keymap
	Styles *styles.Styles
	Logger *logging.Logger

	// DefaultLength is preselected on the setup screen.
	DefaultLength int
	// FlashThreshold highlights the timer during the last seconds of a stretch.
	FlashThreshold int
	// CatalogSource describes where the catalog came from, e.g. a file path.
	CatalogSource string
}

// Model is the Bubble Tea model for a stretching session. All engine
// mutations happen inside Update, which serializes ticks, key presses and
// catalog reloads.
type Model struct {
	engine *routine.Engine
	clock  *Clock
	keymap *keymap.Keymap
	styles *styles.Styles
	logger *logging.Logger

	progress progress.Model

	lengths  []int
	selected int // index into lengths

	flashThreshold int
	catalogSource  string

	showHelp bool
	notice   string
	err      error

	width  int
	height int

	quitting bool
}

// NewModel creates a Model on the setup screen.
func NewModel(opts Options) Model {
	km := opts.Keymap
	if km == nil {
		km = keymap.DefaultKeymap()
	}
	st := opts.Styles
	if st == nil {
		st = styles.New(nil)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	clock := opts.Clock
	if clock == nil {
		clock = NewClock(DefaultTickInterval)
	}

	lengths := opts.Engine.AllowedLengths()
	selected := slices.Index(lengths, opts.DefaultLength)
	if selected < 0 {
		selected = 0
	}

	bar := progress.New(
		progress.WithGradient(string(st.Palette.Primary), string(st.Palette.Secondary)),
		progress.WithoutPercentage(),
		progress.WithWidth(defaultWidth-boxChrome),
	)

	return Model{
		engine:         opts.Engine,
		clock:          clock,
		keymap:         km,
		styles:         st,
		logger:         logger,
		progress:       bar,
		lengths:        lengths,
		selected:       selected,
		flashThreshold: opts.FlashThreshold,
		catalogSource:  opts.CatalogSource,
	}
}

// Init implements tea.Model. Ticks start only once a routine is started.
func (m Model) Init() tea.Cmd {
	return nil
}

// mode maps the engine phase to the keymap screen.
func (m Model) mode() keymap.Mode {
	switch m.engine.Phase() {
	case routine.PhaseSetup:
		return keymap.ModeSetup
	case routine.PhaseComplete:
		return keymap.ModeComplete
	default:
		return keymap.ModeActive
	}
}

// SelectedLength returns the routine length highlighted on the setup screen.
func (m Model) SelectedLength() int {
	if len(m.lengths) == 0 {
		return 0
	}
	return m.lengths[m.selected]
}

// contentWidth is the usable width inside the content box.
func (m Model) contentWidth() int {
	w := m.width
	if w <= 0 {
		w = defaultWidth
	}
	return max(w-boxChrome, 10)
}

// resize fits the progress bar to the terminal.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.progress.Width = min(max(m.contentWidth(), minProgressWidth), maxProgressWidth)
}
