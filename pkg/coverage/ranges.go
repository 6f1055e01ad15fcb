package coverage

import (
	"fmt"
	"strings"
)

// CompactRanges renders a sorted ascending line list as comma-separated range
// notation, collapsing maximal consecutive runs: [213,214,215,216,222] becomes
// "213-216, 222". Empty input yields an empty string.
func CompactRanges(lineNumbers []int) string {
	if len(lineNumbers) == 0 {
		return ""
	}

	ranges := make([]string, 0)
	start := lineNumbers[0]
	end := lineNumbers[0]

	closeRange := func() {
		if start == end {
			ranges = append(ranges, fmt.Sprintf("%d", start))
		} else {
			ranges = append(ranges, fmt.Sprintf("%d-%d", start, end))
		}
	}

	for _, num := range lineNumbers[1:] {
		if num == end+1 {
			end = num
			continue
		}
		closeRange()
		start = num
		end = num
	}
	closeRange()

	return strings.Join(ranges, ", ")
}
