package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	md2rich "github.com/richclip/go-md2rich"
	"github.com/richclip/go-md2rich/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInputs      = errors.New("no input files given")
	ErrOutputInBatch = errors.New("--output cannot be used with multiple inputs")
)

// formatExtensions maps export formats to output file extensions.
var formatExtensions = map[string]string{
	"html": ".html",
	"word": ".doc",
	"rtf":  ".rtf",
	"text": ".txt",
}

// run converts every input file, in parallel for batch invocations.
// Per-file failures do not abort the batch; they are collected and
// reported together at the end.
func run(ctx context.Context, flags *cliFlags, inputs []string, pool *converterPool) error {
	if len(inputs) == 0 {
		return ErrNoInputs
	}
	if len(inputs) > 1 && flags.output != "" {
		return ErrOutputInBatch
	}

	cfg, err := resolveConfig(flags)
	if err != nil {
		return err
	}

	for _, in := range inputs {
		if err := fileutil.ValidateMarkdownPath(in); err != nil {
			return fmt.Errorf("%s: %w", in, err)
		}
	}

	var (
		mu       sync.Mutex
		failures []error
		wg       sync.WaitGroup
	)
	for _, input := range inputs {
		wg.Add(1)
		go func(input string) {
			defer wg.Done()
			conv := pool.acquire()
			defer pool.release(conv)

			if err := convertFile(ctx, conv, flags, cfg, input); err != nil {
				mu.Lock()
				failures = append(failures, fmt.Errorf("%s: %w", input, err))
				mu.Unlock()
				return
			}
			if flags.verbose {
				fmt.Fprintf(os.Stderr, "converted %s\n", input)
			}
		}(input)
	}
	wg.Wait()

	return errors.Join(failures...)
}

// resolveConfig loads the config file (when given) and applies flag
// overrides on top.
func resolveConfig(flags *cliFlags) (*Config, error) {
	cfg := DefaultConfig()
	if flags.config != "" {
		loaded, err := LoadConfig(flags.config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if flags.target != "" {
		cfg.Target = flags.target
	}
	if flags.format != "" {
		cfg.Format = flags.format
	}
	if flags.breaks {
		cfg.Options.Breaks = true
	}
	if flags.typographer {
		cfg.Options.Typographer = true
	}
	if flags.noLinkify {
		cfg.Options.Linkify = false
	}
	if flags.noStyles {
		cfg.Options.IncludeStyles = false
	}
	if flags.noHighlight {
		cfg.Options.HighlightCode = false
	}
	return cfg, cfg.Validate()
}

// pipelineOptions converts config toggles to library options.
func pipelineOptions(cfg *Config) md2rich.Options {
	return md2rich.Options{
		Breaks:        cfg.Options.Breaks,
		Linkify:       cfg.Options.Linkify,
		Typographer:   cfg.Options.Typographer,
		IncludeStyles: cfg.Options.IncludeStyles,
		HighlightCode: cfg.Options.HighlightCode,
	}
}

// convertFile converts one markdown file and writes the output next to it
// (or to --output / --out-dir).
func convertFile(ctx context.Context, conv *md2rich.Converter, flags *cliFlags, cfg *Config, inputPath string) error {
	content, err := os.ReadFile(inputPath) // #nosec G304 -- input path is user-provided
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	opts := pipelineOptions(cfg)
	input := md2rich.Input{
		Markdown: string(content),
		Target:   md2rich.Target(cfg.Target),
		Options:  &opts,
	}

	ext := formatExtensions[cfg.Format]
	outPath := fileutil.OutputPath(inputPath, flags.output, firstNonEmpty(flags.outDir, cfg.Output.DefaultDir), ext)

	var payload []byte
	switch cfg.Format {
	case "text":
		result, err := conv.Convert(ctx, input)
		if err != nil {
			return err
		}
		payload = []byte(result.Text)
	case "html", "word", "rtf":
		artifact, err := conv.Export(ctx, input, md2rich.Format(cfg.Format))
		if err != nil {
			return err
		}
		payload = artifact.Data
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, cfg.Format)
	}

	if err := os.WriteFile(outPath, payload, 0o644); err != nil { // #nosec G306 -- converted documents are not secrets
		return fmt.Errorf("writing output: %w", err)
	}
	if !flags.verbose {
		fmt.Printf("Created %s\n", outPath)
	}
	return nil
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
