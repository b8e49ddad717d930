package engine

import (
	"context"
	"fmt"

	"github.com/vytor/hippomemory/internal/errors"
	"github.com/vytor/hippomemory/internal/logger"
	"github.com/vytor/hippomemory/internal/models"
)

// Result is the terminal outcome of a session.
type Result struct {
	DayNumber       int
	Date            string
	Category        string
	Difficulty      models.Difficulty
	Won             bool
	Perfect         bool
	Score           int
	TileCount       int
	RoundsCompleted int
	TimeToComplete  int
	RoundScores     []int
	UserGuesses     []models.Item
	WinStreak       int
}

func (r Result) ShareText() string {
	return ShareText(r.RoundScores, r.TileCount, r.Score, r.Won, r.WinStreak)
}

// Submit scores the round's assignments. The session completes when every
// tile is correct or the last round has been played.
func (e *Engine) Submit(ctx context.Context) error {
	log := logger.FromContext(ctx).WithPrefix("engine")

	if e.phase != PhaseMemorizing {
		return errors.NewInvalidStateError("submit", e.phase.String())
	}
	if !e.CanSubmit() {
		return errors.NewValidationError("board", "every open tile needs an item before submitting")
	}

	found := 0
	for _, tile := range e.board.assignedTiles() {
		slot, _ := e.board.occupant(tile)
		placed := e.board.targets[slot]
		e.lastGuess[tile] = placed
		if models.SameItem(placed, e.view.Items[tile]) {
			e.correct[tile] = true
			found++
			continue
		}
		e.incorrect[guessKey{identity: placed.Identity(), tile: tile}] = struct{}{}
	}

	e.score += found
	e.roundScores = append(e.roundScores, found)
	e.phase = PhaseEvaluated
	log.Debug("round %d scored %d (total %d/%d)", e.round, found, len(e.correct), e.TileCount())

	msg := fmt.Sprintf("Round %d complete: %d/%d correct", e.round, len(e.correct), e.TileCount())
	if e.allCorrect() {
		msg = "Perfect! " + msg
	}
	e.presenter.Message(msg)
	e.render()

	if e.allCorrect() || e.round >= models.MaxRounds {
		return e.finalize(ctx)
	}
	return e.persist(ctx)
}

// Continue moves from an evaluated round to the next one.
func (e *Engine) Continue(ctx context.Context) error {
	if e.phase != PhaseEvaluated {
		return errors.NewInvalidStateError("continue", e.phase.String())
	}
	e.round++
	e.startRound()
	return e.persist(ctx)
}

func (e *Engine) allCorrect() bool {
	return len(e.correct) == e.TileCount()
}

func (e *Engine) finalize(ctx context.Context) error {
	log := logger.FromContext(ctx).WithPrefix("engine")

	e.stopTimers()
	e.phase = PhaseComplete

	won := e.allCorrect()
	guesses := make([]models.Item, e.TileCount())
	for tile := range guesses {
		if e.correct[tile] {
			guesses[tile] = e.view.Items[tile]
		} else {
			guesses[tile] = e.lastGuess[tile]
		}
	}

	result := Result{
		DayNumber:       e.view.DayNumber,
		Date:            e.view.Date,
		Category:        e.view.Category,
		Difficulty:      e.view.Difficulty,
		Won:             won,
		Perfect:         won && e.round == 1,
		Score:           e.score,
		TileCount:       e.TileCount(),
		RoundsCompleted: e.round,
		TimeToComplete:  e.elapsed,
		RoundScores:     append([]int(nil), e.roundScores...),
		UserGuesses:     guesses,
	}

	recorded, err := e.progress.RecordCompletion(ctx, models.GameOutcome{
		DayNumber:       result.DayNumber,
		Difficulty:      result.Difficulty,
		Won:             result.Won,
		Score:           result.Score,
		RoundsCompleted: result.RoundsCompleted,
		TimeToComplete:  result.TimeToComplete,
		UserGuesses:     guesses,
		RoundScores:     result.RoundScores,
	})
	switch {
	case err == nil:
		e.winStreak = recorded.WinStreak
		err = e.progress.ClearInProgress(ctx)
	case won:
		e.winStreak++
	}
	if err != nil {
		log.Error("failed to record completion for day %d: %v", result.DayNumber, err)
	}
	result.WinStreak = e.winStreak
	e.result = &result

	log.Info("day %d complete: won=%t score=%d rounds=%d time=%ds", result.DayNumber, won, result.Score, result.RoundsCompleted, result.TimeToComplete)
	e.presenter.Completed(result)
	return err
}
