package config

// Flags may appear before, between or after the two positional arguments,
// so parsing resumes after each positional until the arguments run out.

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

// Options holds everything parsed from the command line.
type Options struct {
	HeaderFile string
	NewName    string

	Debug      bool
	Verbose    bool
	Confirm    bool
	History    bool
	ConfigPath string
	JournalDir string
	InitConfig string
}

// ErrHelp is returned when -h or --help was given; usage has already been printed.
var ErrHelp = errors.New("help requested")

// ParseFlags parses args (without the program name) into Options.
func ParseFlags(args []string, stderr io.Writer) (*Options, error) {
	opts := &Options{}

	fs := flag.NewFlagSet("pairrename", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stderr) }

	fs.BoolVar(&opts.Debug, "debug", false, "Parse arguments and exit")
	fs.BoolVar(&opts.Debug, "d", false, "Same as --debug")
	fs.BoolVar(&opts.Verbose, "verbose", false, "Print each step")
	fs.BoolVar(&opts.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&opts.Confirm, "confirm", false, "Show a diff and ask before keeping the changes")
	fs.BoolVar(&opts.Confirm, "c", false, "Same as --confirm")
	fs.BoolVar(&opts.History, "history", false, "List renames recorded in the journal and exit")
	fs.StringVar(&opts.ConfigPath, "config", "", "JSON configuration file")
	fs.StringVar(&opts.JournalDir, "journal", "", "Record the rename in a journal in this directory")
	fs.StringVar(&opts.InitConfig, "init-config", "", "Write the default configuration to this file and exit")

	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return nil, ErrHelp
			}
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			break
		}
		positional = append(positional, args[0])
		args = args[1:]
	}

	if opts.History || opts.InitConfig != "" {
		return opts, nil
	}
	if len(positional) != 2 {
		return nil, fmt.Errorf("need exactly header_file and new_name")
	}
	opts.HeaderFile = positional[0]
	opts.NewName = positional[1]
	return opts, nil
}

func printUsage(w io.Writer) {
	lines := []string{
		"Rename a C++ header and source file pair.",
		"",
		"  pairrename [OPTIONS] <header_file> <new_name>",
		"",
		"  header_file          Absolute or relative path to an existing header file. ex: ./thing.h",
		"  new_name             New base name for the pair. ex: something",
		"",
		"  -d, --debug          Parse arguments and exit",
		"  -v, --verbose        Print each step",
		"  -c, --confirm        Show a diff and ask before keeping the changes",
		"  --config <file>      JSON configuration file",
		"  --journal <dir>      Record the rename in a journal in this directory",
		"  --history            List renames recorded in the journal and exit",
		"  --init-config <file> Write the default configuration to this file and exit",
		"  -h, --help           Show this help",
	}
	fmt.Fprintln(w, strings.Join(lines, "\n"))
}
