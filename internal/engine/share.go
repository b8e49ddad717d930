package engine

import (
	"fmt"
	"strings"
)

const (
	shareTitle = "Memaday"
	shareURL   = "hippomemory.com"
)

// ShareText renders the copy/paste summary. Each round line shows the
// running total of correct tiles after that round.
func ShareText(roundScores []int, tileCount, score int, won bool, winStreak int) string {
	lines := []string{shareTitle, ""}

	found := 0
	for i, s := range roundScores {
		found += s
		found = min(found, tileCount)
		lines = append(lines, fmt.Sprintf("Round %d: %s%s (%d/%d)",
			i+1, strings.Repeat("🟩", found), strings.Repeat("⬜", tileCount-found), found, tileCount))
	}

	lines = append(lines, "", fmt.Sprintf("Total: %d/%d correct", score, tileCount))
	if won {
		lines = append(lines, "🎉 Perfect!")
	}
	lines = append(lines, fmt.Sprintf("Streak: %d", winStreak), "", "Play at: "+shareURL)
	return strings.Join(lines, "\n")
}
