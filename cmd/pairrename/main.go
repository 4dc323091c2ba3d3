// Command pairrename renames a C++ header/source file pair, updating the
// header's include guard and the source's include of the header.
//
//	pairrename ./source/something.h somethingelse
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"pairrename/internal/config"
	"pairrename/internal/journal"
	"pairrename/internal/output"
	"pairrename/internal/pair"
	"pairrename/internal/prompt"
	"pairrename/internal/renamer"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, config.ErrHelp) {
			os.Exit(0)
		}
		output.New(output.DefaultConfig()).Error("pairrename: %v", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	opts, err := config.ParseFlags(args, os.Stderr)
	if err != nil {
		return err
	}

	// Debug only checks that the arguments parse.
	if opts.Debug {
		return nil
	}

	if opts.InitConfig != "" {
		return config.Save(config.Default(), opts.InitConfig)
	}

	cfg := config.Default()
	if opts.ConfigPath != "" {
		if cfg, err = config.Load(opts.ConfigPath); err != nil {
			return err
		}
	}
	if opts.JournalDir != "" {
		cfg.Journal.Enabled = true
		cfg.Journal.Directory = opts.JournalDir
	}

	outCfg := output.DefaultConfig()
	outCfg.Verbose = opts.Verbose
	out := output.New(outCfg)

	if opts.History {
		return printHistory(out, cfg.Journal.Directory)
	}

	p, err := pair.NewLocator(cfg.HeaderExtensions, cfg.SourceExtensions).Locate(opts.HeaderFile)
	if pair.IsNotFound(err) {
		return fmt.Errorf("no header/source pair for %s: %w", opts.HeaderFile, err)
	}
	if err != nil {
		return err
	}
	out.Verbose("Header: %s", p.HeaderPath)
	out.Verbose("Source: %s", p.SourcePath)

	renamerOpts := renamer.Options{
		GuardSuffix:  cfg.GuardSuffix,
		BackupMarker: cfg.BackupMarker,
		Output:       out,
		AppVersion:   version,
	}

	if cfg.Journal.Enabled {
		w, err := journal.NewWriter(cfg.Journal.Directory)
		if err != nil {
			return err
		}
		defer w.Close()
		renamerOpts.Journal = w
	}

	if opts.Confirm {
		if !prompt.IsInteractive() {
			out.Warn("stdin is not a terminal; an empty answer keeps the changes")
		}
		renamerOpts.Confirm = prompt.New(os.Stdin, os.Stdout, prompt.DefaultYes).YesNo
	}

	r, err := renamer.New(p, opts.NewName, renamerOpts)
	if err != nil {
		return err
	}
	res, err := r.Rename()
	if err != nil {
		return err
	}

	if res.Confirmed {
		out.Info("%s -> %s", filepath.Base(p.HeaderPath), filepath.Base(res.HeaderPath))
		out.Info("%s -> %s", filepath.Base(p.SourcePath), filepath.Base(res.SourcePath))
	}
	return nil
}

// printHistory lists the renames recorded in the journal, one run at a time, oldest first.
func printHistory(out *output.Output, dir string) error {
	events, err := journal.ReadEvents(dir)
	if err != nil {
		return err
	}

	for _, start := range events {
		if start.EventType != journal.EventRunStart {
			continue
		}
		status := "INCOMPLETE"
		var renames []journal.Event
		for _, e := range journal.FilterRun(events, start.RunID) {
			switch e.EventType {
			case journal.EventRename:
				renames = append(renames, e)
			case journal.EventRunEnd:
				status = e.Metadata["status"]
			}
		}

		out.Info("%s  %s  %s", start.Timestamp.Local().Format("2006-01-02 15:04:05"), start.RunID, status)
		for _, e := range renames {
			out.Info("    %s -> %s", e.SourcePath, e.DestinationPath)
		}
	}
	return nil
}
