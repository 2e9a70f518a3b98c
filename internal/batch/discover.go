// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch implements the batch conversion driver: it discovers legacy
// documents in a folder, derives one conversion job per file, and runs the
// jobs sequentially through an office automation session.
// See docs/ARCHITECTURE § Batch Driver.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/pdiddy/docbatch/pkg/types"
)

// DefaultPattern matches the legacy Word document extension.
const DefaultPattern = "*.doc"

// Discover lists the files in dir whose names match pattern. Matching is
// case-insensitive and non-recursive; directories and Word owner files
// (the "~$" lock files the application leaves next to open documents) are
// skipped. The returned paths are in directory listing order.
func Discover(dir, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading source folder %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, "~$") {
			continue
		}
		matched, err := doublestar.Match(strings.ToLower(pattern), strings.ToLower(name))
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		if !matched {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}

	return files, nil
}

// DeriveJob builds the conversion job for one source file: same directory,
// same base name and casing, new extension. Every job saves .docx; with
// exportHTML it additionally saves filtered HTML as .htm.
func DeriveJob(source string, exportHTML bool) types.Job {
	base := strings.TrimSuffix(source, filepath.Ext(source))

	targets := []types.Target{
		{Path: base + ".docx", Format: types.FormatDocx},
	}
	if exportHTML {
		targets = append(targets, types.Target{Path: base + ".htm", Format: types.FormatFilteredHTML})
	}

	return types.Job{Source: source, Targets: targets}
}
