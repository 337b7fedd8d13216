package tui

import (
	"io"
	"os"
	"sync"
)

// TerminalOutput is the program's output file with writes serialized, so
// other writers (the completion bell) never interleave with a frame. It
// keeps the file's descriptor visible for terminal size detection.
type TerminalOutput struct {
	*os.File
	mu sync.Mutex
}

// NewTerminalOutput wraps f, usually os.Stdout.
func NewTerminalOutput(f *os.File) *TerminalOutput {
	return &TerminalOutput{File: f}
}

// Write implements io.Writer.
func (o *TerminalOutput) Write(p []byte) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.File.Write(p)
}

// WriteString implements io.StringWriter. It shadows the file's own method,
// which would bypass the lock.
func (o *TerminalOutput) WriteString(s string) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.File.WriteString(s)
}

// ReadFrom implements io.ReaderFrom for the same reason.
func (o *TerminalOutput) ReadFrom(r io.Reader) (int64, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.File.ReadFrom(r)
}
