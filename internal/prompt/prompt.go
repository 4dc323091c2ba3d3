// Package prompt asks the user yes/no questions on a terminal.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Default is the answer assumed when the user just presses Enter.
type Default int

const (
	// DefaultYes assumes "yes" on empty input.
	DefaultYes Default = iota
	// DefaultNo assumes "no" on empty input.
	DefaultNo
	// DefaultNone requires an explicit answer.
	DefaultNone
)

var answers = map[string]bool{
	"yes": true,
	"y":   true,
	"ye":  true,
	"no":  false,
	"n":   false,
}

// IsInteractive returns true if stdin is a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Prompter reads answers from reader and writes questions to writer.
type Prompter struct {
	scanner *bufio.Scanner
	writer  io.Writer
	def     Default
}

// New creates a Prompter. Use os.Stdin and os.Stdout for normal operation,
// or buffers for testing.
func New(reader io.Reader, writer io.Writer, def Default) *Prompter {
	return &Prompter{
		scanner: bufio.NewScanner(reader),
		writer:  writer,
		def:     def,
	}
}

// YesNo asks question until it gets a recognizable answer.
// End of input yields the default answer, or an error when there is none.
func (p *Prompter) YesNo(question string) (bool, error) {
	for {
		fmt.Fprint(p.writer, question+p.suffix())

		if !p.scanner.Scan() {
			if err := p.scanner.Err(); err != nil {
				return false, fmt.Errorf("error reading input: %w", err)
			}
			if p.def == DefaultNone {
				return false, io.ErrUnexpectedEOF
			}
			fmt.Fprintln(p.writer)
			return p.def == DefaultYes, nil
		}

		choice := strings.ToLower(strings.TrimSpace(p.scanner.Text()))
		if choice == "" && p.def != DefaultNone {
			return p.def == DefaultYes, nil
		}
		if answer, ok := answers[choice]; ok {
			return answer, nil
		}
		fmt.Fprint(p.writer, "Please respond with 'yes' or 'no' (or 'y' or 'n').\n")
	}
}

func (p *Prompter) suffix() string {
	switch p.def {
	case DefaultYes:
		return " [Y/n] "
	case DefaultNo:
		return " [y/N] "
	default:
		return " [y/n] "
	}
}
