// Package report renders the uncovered-snippet markdown document.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/multimediallc/uncovered/pkg/coverage"
	f "github.com/multimediallc/uncovered/pkg/functional"
)

type Options struct {
	// Root resolves relative file identifiers from the coverage data.
	Root string
	// Context is the number of source lines shown around each uncovered line.
	Context int
	// Ignore holds doublestar globs; matching identifiers are left out of the
	// report entirely.
	Ignore []string
	// Warnings receives per-file diagnostics (unreadable sources, bad ignore
	// patterns). Defaults to io.Discard.
	Warnings io.Writer
}

var fenceLanguages = map[string]string{
	".rs":   "rust",
	".go":   "go",
	".py":   "python",
	".js":   "javascript",
	".ts":   "typescript",
	".c":    "c",
	".h":    "c",
	".cpp":  "cpp",
	".cc":   "cpp",
	".hpp":  "cpp",
	".java": "java",
	".rb":   "ruby",
	".sh":   "bash",
	".toml": "toml",
}

func fenceLanguage(file string) string {
	return fenceLanguages[strings.ToLower(filepath.Ext(file))]
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// resolvePath locates a file identifier on disk. Absolute identifiers are
// used directly; relative ones are tried under root first, then as given.
// When nothing exists the last candidate is returned so the read failure
// surfaces as a per-file warning.
func resolvePath(root, ident string) string {
	if filepath.IsAbs(ident) {
		return ident
	}
	candidates := []string{filepath.Join(root, ident), ident}
	if found, ok := f.Find(candidates, fileExists); ok {
		return found
	}
	return candidates[len(candidates)-1]
}

// readSource reads a source file as UTF-8 text, dropping byte sequences that
// do not decode. Trailing newline does not produce an empty final line.
func readSource(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := strings.ToValidUTF8(string(data), "")
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines, nil
}

func ignored(ident string, globs []string, warnings io.Writer) bool {
	for _, glob := range globs {
		match, err := doublestar.Match(glob, filepath.ToSlash(ident))
		if err != nil {
			_, _ = fmt.Fprintf(warnings, "WARNING: invalid ignore pattern %q: %v\n", glob, err)
			continue
		}
		if match {
			return true
		}
	}
	return false
}

// Files returns the report's file identifiers in output order: files with
// uncovered lines, minus ignored ones, sorted.
func Files(profile coverage.Profile, opts Options) []string {
	warnings := opts.Warnings
	if warnings == nil {
		warnings = io.Discard
	}
	return f.Filtered(profile.Files(), func(ident string) bool {
		return !ignored(ident, opts.Ignore, warnings)
	})
}

// Generate renders the full markdown document.
func Generate(profile coverage.Profile, opts Options) string {
	if opts.Warnings == nil {
		opts.Warnings = io.Discard
	}
	files := Files(profile, opts)

	totalUncovered := 0
	for _, ident := range files {
		totalUncovered += len(profile.UncoveredLines(ident))
	}

	var b strings.Builder
	b.WriteString("# Uncovered Code Snippets\n\n")
	b.WriteString("This document contains all code snippets that are not covered by tests.\n\n")
	fmt.Fprintf(&b, "Context: %d lines before/after each uncovered line.\n", opts.Context)

	b.WriteString("\n## Summary\n\n")
	fmt.Fprintf(&b, "- **Total Files**: %d\n", len(files))
	fmt.Fprintf(&b, "- **Total Uncovered Lines**: %d\n", totalUncovered)

	for _, ident := range files {
		writeFileSection(&b, profile, ident, opts)
	}

	b.WriteString("\n---\n\n*Report generated by uncovered*\n")
	return b.String()
}

func writeFileSection(b *strings.Builder, profile coverage.Profile, ident string, opts Options) {
	uncovered := profile.UncoveredLines(ident)
	resolved := resolvePath(opts.Root, ident)

	fmt.Fprintf(b, "\n## %s\n\n", ident)

	sourceLines, err := readSource(resolved)
	if err != nil {
		_, _ = fmt.Fprintf(opts.Warnings, "WARNING: unable to read source file %s: %v\n", resolved, err)
		b.WriteString("⚠️ **Unable to read source file**\n\n")
		fmt.Fprintf(b, "Uncovered lines: %s\n", coverage.CompactRanges(uncovered))
		return
	}

	fmt.Fprintf(b, "**Uncovered Lines**: %s\n", coverage.CompactRanges(uncovered))

	for i, group := range coverage.GroupLines(uncovered, opts.Context) {
		start, end := coverage.Window(group, opts.Context, len(sourceLines))

		inGroup := f.NewSet[int]()
		for _, lineNum := range group {
			inGroup.Add(lineNum)
		}

		fmt.Fprintf(b, "\n### Snippet %d (Lines %d-%d)\n\n", i+1, start, end)
		fmt.Fprintf(b, "```%s\n", fenceLanguage(ident))
		for lineNum := start; lineNum <= end; lineNum++ {
			marker := "  "
			if inGroup.Contains(lineNum) {
				marker = "❌"
			}
			fmt.Fprintf(b, "%s %4d | %s\n", marker, lineNum, sourceLines[lineNum-1])
		}
		b.WriteString("```\n")
	}
}
