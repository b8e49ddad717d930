package engine

import (
	"context"

	"github.com/vytor/hippomemory/internal/errors"
	"github.com/vytor/hippomemory/internal/logger"
	"github.com/vytor/hippomemory/internal/models"
)

type ReviewTile struct {
	Index   int
	Answer  models.Item
	Guess   models.Item
	Correct bool
}

// Review is a finished day rebuilt from its completion record.
type Review struct {
	DayNumber       int
	Date            string
	Category        string
	Difficulty      models.Difficulty
	Won             bool
	Score           int
	RoundsCompleted int
	TimeToComplete  int
	RoundScores     []int
	Tiles           []ReviewTile
}

// BuildReview lays rec's guesses over view. A missing guess shows the
// answer. Records without guesses show every tile correct when the day was
// won, and none otherwise.
func BuildReview(view *models.DailyPuzzleView, rec models.CompletionRecord) Review {
	r := Review{
		DayNumber:       view.DayNumber,
		Date:            view.Date,
		Category:        view.Category,
		Difficulty:      view.Difficulty,
		Won:             rec.Won,
		Score:           rec.Score,
		RoundsCompleted: max(rec.RoundsCompleted, 1),
		TimeToComplete:  rec.TimeToComplete,
		RoundScores:     rec.RoundScores,
		Tiles:           make([]ReviewTile, len(view.Items)),
	}

	for i, answer := range view.Items {
		t := ReviewTile{Index: i, Answer: answer, Guess: answer}
		switch {
		case len(rec.UserGuesses) == 0:
			t.Correct = rec.Won
		default:
			if i < len(rec.UserGuesses) && !rec.UserGuesses[i].IsEmpty() {
				t.Guess = rec.UserGuesses[i]
			}
			t.Correct = models.SameItem(t.Guess, answer)
		}
		r.Tiles[i] = t
	}
	return r
}

// Review loads a completed day for display. It does not touch the live
// session.
func (e *Engine) Review(ctx context.Context, dayNumber int) (*Review, error) {
	logger.FromContext(ctx).WithPrefix("engine").Debug("review requested for day %d", dayNumber)

	p, err := e.progress.Load(ctx)
	if err != nil {
		return nil, err
	}
	rec, ok := p.Completions[dayNumber]
	if !ok || !rec.Completed {
		return nil, errors.NewNotFoundError("completed puzzle", dayNumber)
	}

	view, err := e.puzzles.LoadDaily(ctx, dayNumber, rec.Difficulty)
	if err != nil {
		return nil, err
	}
	r := BuildReview(view, rec)
	return &r, nil
}

// ShareText rebuilds the day's share card. It reports false for completions
// recorded without their per-round scores.
func (r Review) ShareText(winStreak int) (string, bool) {
	if len(r.RoundScores) == 0 {
		return "", false
	}
	return ShareText(r.RoundScores, len(r.Tiles), r.Score, r.Won, winStreak), true
}
