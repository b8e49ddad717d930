package terminal_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vytor/hippomemory/internal/engine"
	"github.com/vytor/hippomemory/internal/models"
	"github.com/vytor/hippomemory/internal/terminal"
)

func TestFormatGrid(t *testing.T) {
	tiles := []engine.Tile{
		{Index: 0, State: engine.TileHidden},
		{Index: 1, State: engine.TileAssigned, Item: models.TextItem("Kiwi")},
		{Index: 2, State: engine.TileCorrect, Item: models.TextItem("Fig")},
	}

	got := terminal.FormatGrid(tiles, 2)

	assert.Equal(t, " 1 ·     |  2 Kiwi?\n 3 Fig ✓\n", got)
}

func TestFormatGrid_Empty(t *testing.T) {
	assert.Equal(t, "", terminal.FormatGrid(nil, 4))
}

func TestPresenter_SubmitHintOnlyOnRisingEdge(t *testing.T) {
	var out bytes.Buffer
	p := terminal.NewPresenter(&out)

	p.SubmitEnabled(true)
	p.SubmitEnabled(true)
	p.SubmitEnabled(false)
	p.SubmitEnabled(true)

	assert.Equal(t, 2, bytes.Count(out.Bytes(), []byte(`Type "submit"`)))
}

func TestPresenter_CountdownIsSparse(t *testing.T) {
	var out bytes.Buffer
	p := terminal.NewPresenter(&out)

	for s := 44; s >= 0; s-- {
		p.Tick(engine.RevealCountdown, s)
	}
	p.Tick(engine.ElapsedTime, 12)

	assert.Equal(t, "30s left to memorize\n15s left to memorize\n5s left to memorize\n4s left to memorize\n3s left to memorize\n2s left to memorize\n1s left to memorize\n0s left to memorize\n", out.String())
	assert.Equal(t, 12, p.Elapsed())
}

func TestPresenter_Completed(t *testing.T) {
	var out bytes.Buffer
	p := terminal.NewPresenter(&out)

	p.Completed(engine.Result{Won: true, RoundsCompleted: 2, Score: 12, TileCount: 12, TimeToComplete: 75, RoundScores: []int{8, 4}, WinStreak: 4})

	assert.Contains(t, out.String(), "Solved in 2 rounds.")
	assert.Contains(t, out.String(), "Time: 1:15  Streak: 4")
	assert.Contains(t, out.String(), "Play at: hippomemory.com")
}
