package main

import (
	"fmt"

	flag "github.com/spf13/pflag"
)

// cliFlags holds all parsed command-line flags.
type cliFlags struct {
	output  string
	outDir  string
	target  string
	format  string
	config  string
	workers int
	verbose bool
	version bool

	// Pipeline option toggles. Negative flags exist for stages that
	// default to on.
	breaks      bool
	typographer bool
	noLinkify   bool
	noStyles    bool
	noHighlight bool
}

// parseFlags parses args (including the program name) and returns the
// flags plus the positional input paths.
func parseFlags(args []string) (*cliFlags, []string, error) {
	f := &cliFlags{}
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)

	fs.StringVarP(&f.output, "output", "o", "", "output file path (single input only)")
	fs.StringVar(&f.outDir, "out-dir", "", "output directory for batch conversion")
	fs.StringVarP(&f.target, "target", "t", "", "paste target: universal, gdocs, word, gmail, slack")
	fs.StringVarP(&f.format, "format", "f", "", "export format: html, word, rtf, text")
	fs.StringVarP(&f.config, "config", "c", "", "YAML config file path")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers for batch conversion (0 = auto)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "verbose logging to stderr")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	fs.BoolVar(&f.breaks, "breaks", false, "treat single newlines as line breaks")
	fs.BoolVar(&f.typographer, "typographer", false, "smart quotes, dashes, ellipsis")
	fs.BoolVar(&f.noLinkify, "no-linkify", false, "disable autolinking of bare URLs")
	fs.BoolVar(&f.noStyles, "no-styles", false, "omit inline styles from output")
	fs.BoolVar(&f.noHighlight, "no-highlight", false, "disable code syntax highlighting")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags] <input.md> [more.md ...]\n\nFlags:\n", args[0])
		fs.PrintDefaults()
	}

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
