package typegen

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/teranos/taxogen/errors"
)

// CheckResult holds the result of an up-to-date check
type CheckResult struct {
	UpToDate    bool
	Differences map[string][]string // language -> files with differences
	// Diffs maps a differing file (relative to the version directory) to a
	// line diff, "-" existing and "+" regenerated
	Diffs map[string]string
}

// Check regenerates the plan into a temporary directory and compares it
// with the committed output under root.
func Check(plan *Plan, root string) (*CheckResult, error) {
	tempDir, err := os.MkdirTemp("", "taxogen-check-*")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create temp directory")
	}
	defer os.RemoveAll(tempDir)

	if _, err := plan.Write(tempDir); err != nil {
		return nil, err
	}

	dirs := make(map[string]string, len(plan.Outputs))
	for _, out := range plan.Outputs {
		dirs[out.Language] = out.Dir
	}
	return CompareDirectories(tempDir, root, dirs)
}

// CompareDirectories compares generated files in tempDir with existing ones.
// dirs maps a language to its directory, relative to both roots.
// Provenance header lines are ignored.
func CompareDirectories(tempDir, existingDir string, dirs map[string]string) (*CheckResult, error) {
	result := &CheckResult{
		Differences: make(map[string][]string),
		Diffs:       make(map[string]string),
	}

	for lang, dir := range dirs {
		diffs, err := compareDirectory(filepath.Join(tempDir, dir), filepath.Join(existingDir, dir), result.Diffs, dir)
		if err != nil {
			return nil, err
		}
		if len(diffs) > 0 {
			result.Differences[lang] = diffs
		}
	}

	result.UpToDate = len(result.Differences) == 0
	return result, nil
}

// compareDirectory compares two directories and returns files with differences.
func compareDirectory(tempDir, existingDir string, diffText map[string]string, prefix string) ([]string, error) {
	var diffs []string

	if _, err := os.Stat(tempDir); os.IsNotExist(err) {
		return diffs, nil
	}

	err := filepath.Walk(tempDir, func(tempPath string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}

		relPath, err := filepath.Rel(tempDir, tempPath)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(filepath.Join(prefix, relPath))

		existingPath := filepath.Join(existingDir, relPath)
		if _, err := os.Stat(existingPath); os.IsNotExist(err) {
			diffs = append(diffs, relPath+" (missing)")
			return nil
		}

		diff, err := fileDiff(tempPath, existingPath)
		if err != nil {
			diffs = append(diffs, relPath+" (error: "+err.Error()+")")
		} else if diff != "" {
			diffs = append(diffs, relPath)
			diffText[key] = diff
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to walk %s", tempDir)
	}
	return diffs, nil
}

// fileDiff compares two files ignoring provenance lines. It returns an
// empty string when they match.
func fileDiff(generated, existing string) (string, error) {
	content1, err := os.ReadFile(generated)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s", generated)
	}
	content2, err := os.ReadFile(existing)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s", existing)
	}

	lines1, err := filterMetadataLines(content1)
	if err != nil {
		return "", err
	}
	lines2, err := filterMetadataLines(content2)
	if err != nil {
		return "", err
	}
	return cmp.Diff(lines2, lines1), nil
}

// filterMetadataLines splits content into lines, dropping the provenance
// lines that change on every commit. Comment markers ("//", "#", "<!--")
// before the prefix are allowed.
func filterMetadataLines(content []byte) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(content))

	for scanner.Scan() {
		line := scanner.Text()
		if isMetadataLine(line) {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to scan generated file")
	}
	return lines, nil
}

func isMetadataLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, marker := range []string{"//", "#", "<!--"} {
		if strings.HasPrefix(trimmed, marker) {
			trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, marker))
			break
		}
	}
	return strings.HasPrefix(trimmed, ProvenanceVersionPrefix) ||
		strings.HasPrefix(trimmed, ProvenanceModifiedPrefix)
}
