package terminal_test

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vytor/hippomemory/internal/engine"
	"github.com/vytor/hippomemory/internal/models"
	"github.com/vytor/hippomemory/internal/puzzle"
	"github.com/vytor/hippomemory/internal/repository/memory"
	"github.com/vytor/hippomemory/internal/services"
	"github.com/vytor/hippomemory/internal/terminal"
	"github.com/vytor/hippomemory/internal/worker"
)

// directRunner runs commands on the caller's goroutine.
type directRunner struct{}

func (directRunner) Do(ctx context.Context, _ string, fn func(context.Context) error) error {
	return fn(ctx)
}

// 2026-02-03 is day 15 from the default epoch.
var now = time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC)

func authored() map[int]models.Puzzle {
	answers := make(map[int]models.Item, models.PuzzleSize)
	for i := 1; i <= models.PuzzleSize; i++ {
		answers[i] = models.TextItem("W" + strconv.Itoa(i))
	}
	return map[int]models.Puzzle{15: {Category: "Words", Answers: answers}}
}

func newSession(t *testing.T) (*terminal.Session, services.ProgressService, *bytes.Buffer) {
	t.Helper()
	cal := puzzle.MustCalendar(puzzle.DefaultEpoch, time.UTC)
	progress := services.NewProgressService(memory.NewKeyValueStore(), cal,
		services.WithClock(func() time.Time { return now }),
	)
	var out bytes.Buffer
	presenter := terminal.NewPresenter(&out)
	eng := engine.New(puzzle.NewProvider(cal, puzzle.WithAuthored(authored())), progress, worker.NewManual(),
		engine.WithPresenter(presenter),
		engine.WithClock(func() time.Time { return now }),
		engine.WithShuffle(func(int, func(i, j int)) {}),
	)
	return terminal.NewSession(eng, presenter, &out), progress, &out
}

func TestSession_PlaysEasyPuzzle(t *testing.T) {
	s, progress, out := newSession(t)

	lines := []string{"start easy", "skip"}
	for i := 1; i <= 12; i++ {
		lines = append(lines, strconv.Itoa(i))
	}
	lines = append(lines, "submit", "share", "review")

	err := s.Run(context.Background(), strings.NewReader(strings.Join(lines, "\n")), directRunner{})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, `Round 1: Find "W1"`)
	assert.Contains(t, text, "Perfect! Round 1 complete: 12/12 correct")
	assert.Contains(t, text, "Perfect! Every tile matched in round one.")
	assert.Contains(t, text, "Total: 12/12 correct")
	assert.Contains(t, text, "Day 15 (2026-02-03) Words on easy: won, 12 correct, 1 rounds")
	assert.NotContains(t, text, "Progress saved")

	status, err := progress.CheckCompletion(context.Background(), 15, models.Easy)
	require.NoError(t, err)
	assert.True(t, status.Completed)
	assert.True(t, status.Won)
}

func TestSession_QuitSavesLiveGame(t *testing.T) {
	s, progress, out := newSession(t)

	err := s.Run(context.Background(), strings.NewReader("start medium\nskip\n1\nquit\n5\n"), directRunner{})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Progress saved.")
	has, err := progress.HasInProgress(context.Background(), 15)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestSession_ReportsErrorsAndContinues(t *testing.T) {
	s, _, out := newSession(t)

	err := s.Run(context.Background(), strings.NewReader("dance\nsubmit\nshare\nstart hard\nreveal\n"), directRunner{})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, `unknown command "dance"`)
	assert.Contains(t, text, "! submit is not allowed while idle")
	assert.Contains(t, text, "! share is not allowed while the puzzle is unfinished")
	assert.Contains(t, text, "! reveal all is not allowed while playing hard")
	assert.Contains(t, text, "Memorize the tiles!")
}

func recordWonDay(t *testing.T, progress services.ProgressService) {
	t.Helper()
	_, err := progress.RecordCompletion(context.Background(), models.GameOutcome{
		DayNumber:       15,
		Difficulty:      models.Medium,
		Won:             true,
		Score:           16,
		RoundsCompleted: 1,
		TimeToComplete:  50,
	})
	require.NoError(t, err)
}

func TestSession_ResetNeedsConfirmation(t *testing.T) {
	s, progress, out := newSession(t)
	recordWonDay(t, progress)

	err := s.Run(context.Background(), strings.NewReader("reset\n"), directRunner{})
	require.NoError(t, err)

	assert.Contains(t, out.String(), `Type "reset yes" to confirm.`)
	assert.NotContains(t, out.String(), "Today's progress was reset.")

	status, err := progress.CheckCompletion(context.Background(), 15, models.Medium)
	require.NoError(t, err)
	assert.True(t, status.Completed)
	p, err := progress.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, p.TotalGamesPlayed)
	assert.Equal(t, 1, p.TotalGamesWon)
}

func TestSession_ConfirmedResetErasesToday(t *testing.T) {
	s, progress, out := newSession(t)
	recordWonDay(t, progress)

	err := s.Run(context.Background(), strings.NewReader("reset\nreset yes\n"), directRunner{})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Today's progress was reset.")
	status, err := progress.CheckCompletion(context.Background(), 15, models.Medium)
	require.NoError(t, err)
	assert.False(t, status.Completed)
}

