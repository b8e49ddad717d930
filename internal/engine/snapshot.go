package engine

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/vytor/hippomemory/internal/errors"
	"github.com/vytor/hippomemory/internal/logger"
	"github.com/vytor/hippomemory/internal/models"
)

type savedGuess struct {
	Identity string `json:"identity"`
	Tile     int    `json:"tile"`
}

// savedState is the engine's part of an in-progress snapshot.
type savedState struct {
	Phase       string              `json:"phase"`
	Round       int                 `json:"round"`
	Score       int                 `json:"score"`
	RoundScores []int               `json:"roundScores"`
	Correct     []int               `json:"correct"`
	Incorrect   []savedGuess        `json:"incorrect"`
	LastGuesses map[int]models.Item `json:"lastGuesses"`
	Targets     []models.Item       `json:"targets"`
	Assignments map[int]int         `json:"assignments"` // tile -> target slot
	Active      int                 `json:"active"`
	Swapping    bool                `json:"swapping"`
	Elapsed     int                 `json:"elapsed"`
}

// Snapshot serializes the live round state.
func (e *Engine) Snapshot() (models.InProgressSnapshot, error) {
	if e.phase != PhaseMemorizing && e.phase != PhaseEvaluated {
		return models.InProgressSnapshot{}, errors.NewInvalidStateError("snapshot", e.phase.String())
	}

	st := savedState{
		Phase:       e.phase.String(),
		Round:       e.round,
		Score:       e.score,
		RoundScores: e.roundScores,
		Correct:     sortedTiles(e.correct),
		LastGuesses: e.lastGuess,
		Targets:     e.board.targets,
		Assignments: e.board.slotAt,
		Active:      e.board.active,
		Swapping:    e.board.swapping,
		Elapsed:     e.elapsed,
	}
	for key := range e.incorrect {
		st.Incorrect = append(st.Incorrect, savedGuess{Identity: key.identity, Tile: key.tile})
	}

	raw, err := json.Marshal(st)
	if err != nil {
		return models.InProgressSnapshot{}, errors.NewInternalError(err)
	}
	return models.InProgressSnapshot{
		DayNumber:  e.view.DayNumber,
		Difficulty: e.view.Difficulty,
		State:      raw,
	}, nil
}

// Resume rebuilds a session from snap, skipping the viewing phase.
func (e *Engine) Resume(ctx context.Context, snap models.InProgressSnapshot) error {
	log := logger.FromContext(ctx).WithPrefix("engine")

	if e.phase.playing() {
		return errors.NewInvalidStateError("resume", e.phase.String())
	}

	var st savedState
	if err := json.Unmarshal(snap.State, &st); err != nil {
		return errors.NewPersistenceCorruptError("in-progress session", err)
	}

	view, err := e.puzzles.LoadDaily(ctx, snap.DayNumber, snap.Difficulty)
	if err != nil {
		return err
	}
	if err := st.check(len(view.Items)); err != nil {
		return errors.NewPersistenceCorruptError("in-progress session", err)
	}
	if err := e.begin(ctx, view); err != nil {
		return err
	}

	e.round = st.Round
	e.score = st.Score
	e.roundScores = append([]int(nil), st.RoundScores...)
	e.elapsed = st.Elapsed
	for _, tile := range st.Correct {
		e.correct[tile] = true
	}
	for _, g := range st.Incorrect {
		e.incorrect[guessKey{identity: g.Identity, tile: g.Tile}] = struct{}{}
	}
	for tile, item := range st.LastGuesses {
		e.lastGuess[tile] = item
	}
	e.board = newBoard(append([]models.Item(nil), st.Targets...))
	for tile, slot := range st.Assignments {
		e.board.assign(slot, tile)
	}
	e.board.active = st.Active
	e.board.swapping = st.Swapping

	e.phase = PhaseMemorizing
	if st.Phase == PhaseEvaluated.String() {
		e.phase = PhaseEvaluated
	}
	log.Debug("resumed day %d at round %d (%s)", view.DayNumber, e.round, e.phase)

	e.startClock()
	if e.phase == PhaseEvaluated {
		e.presenter.Message(fmt.Sprintf("Round %d complete: %d/%d correct", e.round, len(e.correct), e.TileCount()))
	} else {
		e.prompt()
	}
	e.render()
	return nil
}

func (st savedState) check(tileCount int) error {
	if st.Phase != PhaseMemorizing.String() && st.Phase != PhaseEvaluated.String() {
		return fmt.Errorf("unexpected phase %q", st.Phase)
	}
	if st.Round < 1 || st.Round > models.MaxRounds {
		return fmt.Errorf("round %d out of range", st.Round)
	}
	inRange := func(tile int) bool { return tile >= 0 && tile < tileCount }
	for _, tile := range st.Correct {
		if !inRange(tile) {
			return fmt.Errorf("correct tile %d out of range", tile)
		}
	}
	seen := make(map[int]bool, len(st.Assignments))
	for tile, slot := range st.Assignments {
		if !inRange(tile) || slot < 0 || slot >= len(st.Targets) || seen[slot] {
			return fmt.Errorf("bad assignment %d -> %d", tile, slot)
		}
		seen[slot] = true
	}
	if len(st.Targets) > 0 && (st.Active < 0 || st.Active >= len(st.Targets)) {
		return fmt.Errorf("active slot %d out of range", st.Active)
	}
	return nil
}
