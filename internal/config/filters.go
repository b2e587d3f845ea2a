package config

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"ucs/internal/filter"
)

const (
	excludeFileName = "exclude"
	includeFileName = "include"
)

// FilterFiles reads the persisted exclude and include patterns from dir.
// Each non-blank line is one pattern. A missing file contributes nothing.
// Patterns are returned unvalidated; filter.Build compiles them.
func FilterFiles(dir string) (filter.Patterns, error) {
	exclude, err := readPatternFile(filepath.Join(dir, excludeFileName))
	if err != nil {
		return filter.Patterns{}, err
	}
	include, err := readPatternFile(filepath.Join(dir, includeFileName))
	if err != nil {
		return filter.Patterns{}, err
	}
	return filter.Patterns{Exclude: exclude, Include: include}, nil
}

func readPatternFile(path string) ([]filter.Pattern, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, newConfigurationError(path, "filter", "io", err)
	}
	defer f.Close()

	var patterns []filter.Pattern
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		patterns = append(patterns, filter.Pattern{Expression: line, Path: path})
	}
	if err := scanner.Err(); err != nil {
		return nil, newConfigurationError(path, "filter", "io", err)
	}
	return patterns, nil
}
