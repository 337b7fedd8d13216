// Package feedback plays the cue that marks the end of each stretch side.
//
// A [Chime] subscribes to side.completed events and, for each one, rings
// the terminal bell and optionally plays a sound. All work happens off the
// publisher's goroutine; failures and panics are logged and never reach the
// routine engine.
package feedback

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"sync"
	"time"

	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"

	"github.com/Iron-Ham/limber/internal/event"
	"github.com/Iron-Ham/limber/internal/logging"
)

// Bell is the terminal bell character.
const Bell = "\a"

// soundTimeout bounds how long a sound command may run.
const soundTimeout = 5 * time.Second

// linuxDefaultSound is played by paplay when no sound path is configured.
const linuxDefaultSound = "/usr/share/sounds/freedesktop/stereo/complete.oga"

// Config controls which cues the chime produces.
type Config struct {
	Enabled   bool
	Bell      bool
	UseSound  bool
	SoundPath string
}

// CommandRunner runs an external command to completion.
type CommandRunner func(ctx context.Context, name string, args ...string) error

func runCommand(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// Chime consumes the completion signal.
type Chime struct {
	cfg    Config
	logger *logging.Logger
	goos   string
	run    CommandRunner

	outMu sync.Mutex
	out   io.Writer

	wg conc.WaitGroup

	mu    sync.Mutex
	bus   *event.Bus
	subID string
}

// Option configures a Chime.
type Option func(*Chime)

// WithCommandRunner replaces how sound commands are executed.
func WithCommandRunner(r CommandRunner) Option {
	return func(c *Chime) { c.run = r }
}

// WithGOOS overrides the operating system used to pick a sound command.
func WithGOOS(goos string) Option {
	return func(c *Chime) { c.goos = goos }
}

// New creates a Chime that writes the bell to out.
func New(cfg Config, out io.Writer, logger *logging.Logger, opts ...Option) *Chime {
	if logger == nil {
		logger = logging.NopLogger()
	}
	c := &Chime{
		cfg:    cfg,
		logger: logger,
		goos:   runtime.GOOS,
		run:    runCommand,
		out:    out,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Attach subscribes the chime to side.completed on bus. A disabled chime
// does not subscribe.
func (c *Chime) Attach(bus *event.Bus) {
	if !c.cfg.Enabled {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.bus != nil {
		c.bus.Unsubscribe(c.subID)
	}
	c.bus = bus
	c.subID = bus.Subscribe(event.TypeSideCompleted, func(e event.Event) {
		if done, ok := e.(event.SideCompletedEvent); ok {
			c.Notify(done)
		}
	})
}

// Detach removes the subscription made by Attach.
func (c *Chime) Detach() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.bus != nil {
		c.bus.Unsubscribe(c.subID)
		c.bus = nil
		c.subID = ""
	}
}

// Notify plays the cue for one finished side without blocking the caller.
func (c *Chime) Notify(done event.SideCompletedEvent) {
	if !c.cfg.Enabled {
		return
	}
	c.wg.Go(func() {
		var pc panics.Catcher
		pc.Try(func() { c.play(done) })
		if r := pc.Recovered(); r != nil {
			c.logger.Error("chime panicked",
				"exercise", done.Exercise,
				"error", r.AsError().Error())
		}
	})
}

// Wait blocks until every in-flight cue has finished.
func (c *Chime) Wait() {
	c.wg.Wait()
}

func (c *Chime) play(done event.SideCompletedEvent) {
	if c.cfg.Bell && c.out != nil {
		c.outMu.Lock()
		_, err := io.WriteString(c.out, Bell)
		c.outMu.Unlock()
		if err != nil {
			c.logger.Warn("failed to ring bell", "error", err.Error())
		}
	}

	if !c.cfg.UseSound {
		return
	}
	name, args, ok := SoundCommand(c.goos, c.cfg.SoundPath)
	if !ok {
		c.logger.Debug("no sound command for platform", "goos", c.goos)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), soundTimeout)
	defer cancel()
	if err := c.run(ctx, name, args...); err != nil {
		c.logger.Warn("sound command failed",
			"command", name,
			"exercise", done.Exercise,
			"error", err.Error())
		return
	}
	c.logger.Debug("chime played", "exercise", done.Exercise, "side", done.Side)
}

// SoundCommand returns the command that plays soundPath on goos. An empty
// path selects the platform's default alert.
func SoundCommand(goos, soundPath string) (string, []string, bool) {
	switch goos {
	case "darwin":
		if soundPath == "" {
			return "osascript", []string{"-e", "beep"}, true
		}
		return "afplay", []string{soundPath}, true
	case "linux", "freebsd", "openbsd", "netbsd":
		if soundPath == "" {
			soundPath = linuxDefaultSound
		}
		return "paplay", []string{soundPath}, true
	default:
		return "", nil, false
	}
}

// Describe summarizes the configured cues for `limber config show` style output.
func (c Config) Describe() string {
	if !c.Enabled {
		return "off"
	}
	switch {
	case c.Bell && c.UseSound:
		return fmt.Sprintf("bell + sound (%s)", soundLabel(c.SoundPath))
	case c.UseSound:
		return fmt.Sprintf("sound (%s)", soundLabel(c.SoundPath))
	case c.Bell:
		return "bell"
	default:
		return "silent"
	}
}

func soundLabel(path string) string {
	if path == "" {
		return "system default"
	}
	return path
}
