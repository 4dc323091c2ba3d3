// Package output handles console output for pairrename, including verbose mode.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// Config holds output configuration.
type Config struct {
	Verbose   bool      // Enable verbose output
	Writer    io.Writer // Output destination (default: os.Stdout)
	ErrWriter io.Writer // Error output destination (default: os.Stderr)
	IsTTY     bool      // Whether output is a terminal; enables color
}

// Output handles formatted output with verbose support.
type Output struct {
	config Config
	mu     sync.Mutex
}

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
)

// New creates a new Output instance with the given configuration.
func New(config Config) *Output {
	if config.Writer == nil {
		config.Writer = os.Stdout
	}
	if config.ErrWriter == nil {
		config.ErrWriter = os.Stderr
	}
	return &Output{
		config: config,
	}
}

// DefaultConfig returns a Config with sensible defaults and TTY detection.
func DefaultConfig() Config {
	return Config{
		Verbose:   false,
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		IsTTY:     term.IsTerminal(int(os.Stdout.Fd())),
	}
}

// Verbose prints a message only when verbose mode is enabled.
func (o *Output) Verbose(format string, args ...interface{}) {
	if !o.config.Verbose {
		return
	}
	o.write(o.config.Writer, "", format, args...)
}

// Info prints an informational message (always shown).
func (o *Output) Info(format string, args ...interface{}) {
	o.write(o.config.Writer, "", format, args...)
}

// Status prints a bracketed status tag such as [BACKED UP FILES].
func (o *Output) Status(tag string) {
	o.write(o.config.Writer, colorGreen, "[%s]", tag)
}

// Warn prints a warning to stderr.
func (o *Output) Warn(format string, args ...interface{}) {
	o.write(o.config.ErrWriter, colorYellow, "Warning: "+format, args...)
}

// Error prints an error message to stderr.
func (o *Output) Error(format string, args ...interface{}) {
	o.write(o.config.ErrWriter, colorRed, format, args...)
}

// Writer returns the standard output destination.
func (o *Output) Writer() io.Writer {
	return o.config.Writer
}

func (o *Output) write(w io.Writer, color, format string, args ...interface{}) {
	o.mu.Lock()
	defer o.mu.Unlock()

	msg := strings.TrimSuffix(fmt.Sprintf(format, args...), "\n")
	if color != "" && o.config.IsTTY {
		msg = color + msg + colorReset
	}
	fmt.Fprint(w, msg+"\n")
}
