// Package linediff classifies every line of two versions of a document as
// unchanged, added or removed.
//
// The alignment is greedy with a bounded lookahead, not a minimum edit
// script: after a mismatch it looks at most 9 lines ahead on each side for a
// line to resynchronize on, checking the modified side (insertions) before
// the original side (deletions).
package linediff

import "strings"

// LookaheadWindow is the exclusive bound of the forward scan after a
// mismatch, so at most LookaheadWindow-1 lines past the cursor are examined.
const LookaheadWindow = 10

// Split breaks text into lines on '\n'. Trailing empty fragments are kept and
// '\r' is left in place. Empty text is the empty document.
func Split(text string) []string {
	if text == "" {
		return []string{}
	}
	return strings.Split(text, "\n")
}

// Diff aligns original against modified line by line.
func Diff(original, modified []string) []Change {
	changes := make([]Change, 0, max(len(original), len(modified)))
	i, j := 0, 0

	for i < len(original) && j < len(modified) {
		origLine, modLine := original[i], modified[j]

		if origLine == modLine {
			changes = append(changes, unchanged(origLine, i+1, j+1))
			i++
			j++
			continue
		}

		if k := scanAhead(modified, j, origLine); k != -1 {
			for ; j < k; j++ {
				changes = append(changes, added(modified[j], j+1))
			}
			continue
		}

		if k := scanAhead(original, i, modLine); k != -1 {
			for ; i < k; i++ {
				changes = append(changes, removed(original[i], i+1))
			}
			continue
		}

		changes = append(changes, removed(origLine, i+1), added(modLine, j+1))
		i++
		j++
	}

	for ; i < len(original); i++ {
		changes = append(changes, removed(original[i], i+1))
	}
	for ; j < len(modified); j++ {
		changes = append(changes, added(modified[j], j+1))
	}

	return changes
}

// scanAhead returns the first index k in (from, from+LookaheadWindow) with
// lines[k] == target, or -1.
func scanAhead(lines []string, from int, target string) int {
	end := min(from+LookaheadWindow, len(lines))
	for k := from + 1; k < end; k++ {
		if lines[k] == target {
			return k
		}
	}
	return -1
}

// Result is one comparison: the ordered changes and their counts.
type Result struct {
	Changes []Change `json:"changes"`
	Stats   Stats    `json:"stats"`
}

// Compare splits both texts and diffs them.
func Compare(original, modified string) Result {
	changes := Diff(Split(original), Split(modified))
	return Result{
		Changes: changes,
		Stats:   StatsOf(changes),
	}
}
