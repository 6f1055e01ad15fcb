package coverage

// GroupLines partitions sorted uncovered lines into groups whose context
// windows would overlap or touch. A new group starts whenever the gap from the
// previous line exceeds 2*context; otherwise the group is extended.
func GroupLines(sortedLines []int, context int) [][]int {
	groups := make([][]int, 0)
	for _, lineNum := range sortedLines {
		if len(groups) > 0 {
			last := groups[len(groups)-1]
			if lineNum-last[len(last)-1] <= 2*context {
				groups[len(groups)-1] = append(last, lineNum)
				continue
			}
		}
		groups = append(groups, []int{lineNum})
	}
	return groups
}

// Window computes the 1-indexed snippet bounds for a group: the group's span
// extended by context lines on both sides, clamped to [1, totalLines].
func Window(group []int, context, totalLines int) (start, end int) {
	start = group[0] - context
	if start < 1 {
		start = 1
	}
	end = group[len(group)-1] + context
	if end > totalLines {
		end = totalLines
	}
	return start, end
}
