package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"observable-generator/internal/analyze"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes every file into its package directory, skipping files
// whose content is unchanged. It returns the paths written.
func WriteFiles(files []GeneratedFile) ([]string, error) {
	var written []string

	for _, file := range files {
		if err := os.MkdirAll(file.Dir, dirPerm); err != nil {
			return written, fmt.Errorf("creating output directory: %w", err)
		}

		outputPath := file.Path()

		current, err := os.ReadFile(outputPath)
		if err == nil && bytes.Equal(current, file.Content) {
			continue
		}

		if err := os.WriteFile(outputPath, file.Content, filePerm); err != nil {
			return written, fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
		written = append(written, outputPath)
	}

	return written, nil
}

// CheckFiles returns the paths of files that are missing on disk or whose
// content differs.
func CheckFiles(files []GeneratedFile) ([]string, error) {
	var outdated []string

	for _, file := range files {
		current, err := os.ReadFile(file.Path())
		if errors.Is(err, fs.ErrNotExist) {
			outdated = append(outdated, file.Path())
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading file %s: %w", file.Path(), err)
		}

		if !bytes.Equal(current, file.Content) {
			outdated = append(outdated, file.Path())
		}
	}

	return outdated, nil
}

// StaleFiles returns the previously generated files of prog that files no
// longer produce, sorted.
func StaleFiles(prog *analyze.Program, files []GeneratedFile) []string {
	produced := make(map[string]bool, len(files))
	for _, file := range files {
		produced[filepath.Clean(file.Path())] = true
	}

	var stale []string
	for _, path := range prog.Generated {
		if !produced[filepath.Clean(path)] {
			stale = append(stale, path)
		}
	}
	slices.Sort(stale)

	return stale
}

// RemoveFiles deletes the given files. Missing files are ignored.
func RemoveFiles(paths []string) error {
	for _, path := range paths {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("removing file %s: %w", path, err)
		}
	}

	return nil
}
