// Package fileutil provides file and path utility functions for the CLI.
package fileutil

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrNotMarkdown = errors.New("file must have .md or .markdown extension")
	ErrEmptyPath   = errors.New("path cannot be empty")
)

// IsFilePath reports whether s looks like a path rather than a bare name.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, `/\`)
}

// ValidateMarkdownPath checks that path has a markdown extension.
func ValidateMarkdownPath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return nil
	}
	return fmt.Errorf("%w: got %q", ErrNotMarkdown, filepath.Ext(path))
}

// ReplaceExt swaps the extension of path for ext (with leading dot).
func ReplaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// OutputPath resolves where converted output lands: explicit out wins;
// otherwise the input path with its extension replaced, placed in dir
// when dir is non-empty.
func OutputPath(input, out, dir, ext string) string {
	if out != "" {
		return out
	}
	name := ReplaceExt(filepath.Base(input), ext)
	if dir != "" {
		return filepath.Join(dir, name)
	}
	return filepath.Join(filepath.Dir(input), name)
}
