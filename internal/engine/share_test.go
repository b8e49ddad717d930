package engine_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vytor/hippomemory/internal/engine"
)

func squares(green, white int) string {
	return strings.Repeat("🟩", green) + strings.Repeat("⬜", white)
}

func TestShareText_WonInTwoRounds(t *testing.T) {
	want := strings.Join([]string{
		"Memaday",
		"",
		"Round 1: " + squares(10, 6) + " (10/16)",
		"Round 2: " + squares(16, 0) + " (16/16)",
		"",
		"Total: 16/16 correct",
		"🎉 Perfect!",
		"Streak: 3",
		"",
		"Play at: hippomemory.com",
	}, "\n")

	assert.Equal(t, want, engine.ShareText([]int{10, 6}, 16, 16, true, 3))
}

func TestShareText_Lost(t *testing.T) {
	got := engine.ShareText([]int{9, 2, 0, 0}, 12, 11, false, 0)

	lines := strings.Split(got, "\n")
	assert.Equal(t, "Round 1: "+squares(9, 3)+" (9/12)", lines[2])
	assert.Equal(t, "Round 4: "+squares(11, 1)+" (11/12)", lines[5])
	assert.Contains(t, got, "\nTotal: 11/12 correct\nStreak: 0\n")
	assert.NotContains(t, got, "Perfect")
	assert.Equal(t, "Streak: 0", lines[len(lines)-3])
}

func TestResult_ShareText(t *testing.T) {
	res := engine.Result{RoundScores: []int{12}, TileCount: 12, Score: 12, Won: true, WinStreak: 1}
	assert.Equal(t, engine.ShareText([]int{12}, 12, 12, true, 1), res.ShareText())
	assert.True(t, strings.HasPrefix(res.ShareText(), "Memaday\n\nRound 1: "+squares(12, 0)))
}
