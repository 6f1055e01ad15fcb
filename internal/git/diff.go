// Package git turns unified diffs into changed-line ranges, used to restrict
// a report to recently changed code.
package git

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/multimediallc/uncovered/pkg/coverage"
	"github.com/sourcegraph/go-diff/diff"
)

type DiffContext struct {
	// Base is the ref the working tree is compared against.
	Base string
	// Dir is the repository root the diff is taken in.
	Dir string
}

// NewGitDiff shells out to git and parses the resulting diff into per-file
// changed-line ranges.
func NewGitDiff(context DiffContext) ([]coverage.DiffFile, error) {
	cmd := exec.Command("git", "diff", "-U0", fmt.Sprintf("%s...HEAD", context.Base))
	cmd.Dir = context.Dir
	cmdOutput, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("git diff failed: %w\n%s", err, cmdOutput)
	}
	fileDiffs, err := diff.ParseMultiFileDiff(cmdOutput)
	if err != nil {
		return nil, fmt.Errorf("parsing git diff output: %w", err)
	}
	return toDiffFiles(fileDiffs), nil
}

// NewFileDiff parses a saved unified diff file into per-file changed-line
// ranges.
func NewFileDiff(path string) ([]coverage.DiffFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading diff file: %w", err)
	}
	fileDiffs, err := diff.ParseMultiFileDiff(data)
	if err != nil {
		return nil, fmt.Errorf("parsing diff file: %w", err)
	}
	return toDiffFiles(fileDiffs), nil
}

// toDiffFiles extracts the new-side file names and hunk ranges.
func toDiffFiles(fileDiffs []*diff.FileDiff) []coverage.DiffFile {
	diffFiles := make([]coverage.DiffFile, 0, len(fileDiffs))

	for _, d := range fileDiffs {
		newDiffFile := coverage.DiffFile{
			FileName: stripDiffPrefix(d.NewName),
			Hunks:    make([]coverage.HunkRange, 0, len(d.Hunks)),
		}
		for _, hunk := range d.Hunks {
			newHunkRange := coverage.HunkRange{
				Start: int(hunk.NewStartLine),
				End:   int(hunk.NewStartLine + hunk.NewLines - 1),
			}
			newDiffFile.Hunks = append(newDiffFile.Hunks, newHunkRange)
		}
		diffFiles = append(diffFiles, newDiffFile)
	}
	return diffFiles
}

// stripDiffPrefix drops the "b/" prefix git puts on new-side names.
func stripDiffPrefix(name string) string {
	if strings.HasPrefix(name, "a/") || strings.HasPrefix(name, "b/") {
		return name[2:]
	}
	return name
}
