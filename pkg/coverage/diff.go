package coverage

import f "github.com/multimediallc/uncovered/pkg/functional"

// HunkRange is an inclusive 1-based line span on the new side of a diff.
type HunkRange struct {
	Start int
	End   int
}

func (h HunkRange) Contains(line int) bool {
	return line >= h.Start && line <= h.End
}

type DiffFile struct {
	FileName string
	Hunks    []HunkRange
}

// FilterLines restricts the profile to uncovered lines that fall inside a
// changed hunk of the matching file. File identifiers are matched exactly
// against the diff's new-side names. Files absent from the diff are dropped.
func (p Profile) FilterLines(files []DiffFile) Profile {
	hunksByFile := make(map[string][]HunkRange, len(files))
	for _, file := range files {
		hunksByFile[file.FileName] = file.Hunks
	}

	filtered := make(Profile, len(p))
	for file, lines := range p {
		hunks, found := hunksByFile[file]
		if !found {
			continue
		}
		filtered[file] = f.Filtered(lines, func(line int) bool {
			for _, hunk := range hunks {
				if hunk.Contains(line) {
					return true
				}
			}
			return false
		})
	}
	return filtered
}
