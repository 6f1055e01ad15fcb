package coverage

import (
	"slices"

	f "github.com/multimediallc/uncovered/pkg/functional"
)

// Profile maps a source file identifier to the line numbers recorded with a
// zero hit count. Identifiers are kept exactly as they appear in the coverage
// data; line slices are unsorted and may contain duplicates until read through
// UncoveredLines.
type Profile map[string][]int

// Init registers a file with an empty uncovered list. Repeated sections for
// the same identifier accumulate into the same entry, so Init is a no-op for
// identifiers already present.
func (p Profile) Init(file string) {
	if _, found := p[file]; !found {
		p[file] = []int{}
	}
}

func (p Profile) Add(file string, line int) {
	p[file] = append(p[file], line)
}

// Files returns the identifiers that have at least one uncovered line, sorted
// for deterministic report order.
func (p Profile) Files() []string {
	withUncovered := f.FilteredMap(p, func(lines []int) bool {
		return len(lines) > 0
	})
	files := make([]string, 0, len(withUncovered))
	for file := range withUncovered {
		files = append(files, file)
	}
	slices.Sort(files)
	return files
}

// Measured reports every identifier that appeared in the coverage data,
// including fully covered files.
func (p Profile) Measured() f.Set[string] {
	measured := f.NewSet[string]()
	for file := range p {
		measured.Add(file)
	}
	return measured
}

// UncoveredLines returns the uncovered lines for a file, sorted ascending with
// duplicates from repeated data records removed.
func (p Profile) UncoveredLines(file string) []int {
	lines := slices.Clone(p[file])
	slices.Sort(lines)
	return f.RemoveDuplicates(lines)
}

// TotalUncovered counts uncovered lines across all files, after
// de-duplication.
func (p Profile) TotalUncovered() int {
	total := 0
	for file := range p {
		total += len(p.UncoveredLines(file))
	}
	return total
}
