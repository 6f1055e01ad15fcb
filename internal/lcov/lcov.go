// Package lcov reads LCOV-style coverage data into a coverage.Profile.
package lcov

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/multimediallc/uncovered/pkg/coverage"
)

type lineKind int

const (
	kindOther lineKind = iota
	kindSectionStart
	kindDataLine
	kindEndOfRecord
)

// taggedLine is the classified form of one input line. Only the fields
// relevant to the kind are set.
type taggedLine struct {
	kind lineKind
	file string
	line int
	hits int
}

var dataPattern = regexp.MustCompile(`^DA:(\d+),(\d+)`)

// classify tags a raw input line. Malformed DA: lines classify as Other so
// the parse loop skips them without special-casing.
func classify(line string) taggedLine {
	switch {
	case strings.HasPrefix(line, "SF:"):
		return taggedLine{kind: kindSectionStart, file: line[len("SF:"):]}
	case strings.HasPrefix(line, "DA:"):
		match := dataPattern.FindStringSubmatch(line)
		if match == nil {
			return taggedLine{kind: kindOther}
		}
		lineNum, _ := strconv.Atoi(match[1])
		hits, _ := strconv.Atoi(match[2])
		return taggedLine{kind: kindDataLine, line: lineNum, hits: hits}
	case line == "end_of_record":
		return taggedLine{kind: kindEndOfRecord}
	}
	return taggedLine{kind: kindOther}
}

func excluded(file string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(file, marker) {
			return true
		}
	}
	return false
}

// Parse reads coverage data and collects zero-hit line numbers per file.
// Identifiers containing any exclude marker are out of scope: their data
// lines are never collected. In-scope identifiers are registered even when
// fully covered, so the profile also records which files were measured.
func Parse(r io.Reader, excludeMarkers []string) (coverage.Profile, error) {
	profile := make(coverage.Profile)
	currentFile := ""
	inScope := false

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		tagged := classify(scanner.Text())
		switch tagged.kind {
		case kindSectionStart:
			currentFile = tagged.file
			inScope = !excluded(tagged.file, excludeMarkers)
			if inScope {
				profile.Init(currentFile)
			}
		case kindDataLine:
			if currentFile != "" && inScope && tagged.hits == 0 {
				profile.Add(currentFile, tagged.line)
			}
		case kindEndOfRecord:
			currentFile = ""
			inScope = false
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading coverage data: %w", err)
	}

	return profile, nil
}

// ParseFile opens and parses a coverage data file. An open failure is
// returned to the caller; the CLI treats it as fatal.
func ParseFile(path string, excludeMarkers []string) (coverage.Profile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening coverage file: %w", err)
	}
	defer file.Close()
	return Parse(file, excludeMarkers)
}
