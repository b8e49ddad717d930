package engine

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/vytor/hippomemory/internal/errors"
	"github.com/vytor/hippomemory/internal/logger"
	"github.com/vytor/hippomemory/internal/models"
	"github.com/vytor/hippomemory/internal/puzzle"
	"github.com/vytor/hippomemory/internal/services"
	"github.com/vytor/hippomemory/internal/worker"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseViewing
	PhaseMemorizing
	PhaseEvaluated
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseViewing:
		return "viewing"
	case PhaseMemorizing:
		return "memorizing"
	case PhaseEvaluated:
		return "evaluated"
	case PhaseComplete:
		return "complete"
	default:
		return "idle"
	}
}

// playing is true between Start and Complete.
func (p Phase) playing() bool {
	return p == PhaseViewing || p == PhaseMemorizing || p == PhaseEvaluated
}

const (
	DefaultRevealInterval = 2 * time.Second
	firstRevealDelay      = time.Second
)

// PuzzleSource supplies day numbers and daily views. *puzzle.Provider
// satisfies it.
type PuzzleSource interface {
	Calendar() *puzzle.Calendar
	LoadDaily(ctx context.Context, dayNumber int, difficulty models.Difficulty) (*models.DailyPuzzleView, error)
}

type guessKey struct {
	identity string
	tile     int
}

// Engine runs one player's daily session. All methods must be called from
// the goroutine that delivers the scheduler's callbacks.
type Engine struct {
	puzzles   PuzzleSource
	progress  services.ProgressService
	presenter Presenter
	shuffle   func(n int, swap func(i, j int))
	now       func() time.Time

	revealInterval time.Duration
	reveals        timerGroup
	countdown      timerGroup
	clock          timerGroup
	sessionCtx     context.Context

	phase       Phase
	view        *models.DailyPuzzleView
	round       int
	score       int
	roundScores []int
	correct     map[int]bool
	incorrect   map[guessKey]struct{}
	lastGuess   map[int]models.Item
	board       *board

	revealed        map[int]bool
	revealRemaining int
	readyToStart    bool
	elapsed         int
	visible         bool
	winStreak       int
	result          *Result
}

type Option func(*Engine)

func WithPresenter(p Presenter) Option {
	return func(e *Engine) {
		e.presenter = p
	}
}

// WithShuffle replaces the permutation used to order each round's queue.
func WithShuffle(shuffle func(n int, swap func(i, j int))) Option {
	return func(e *Engine) {
		e.shuffle = shuffle
	}
}

// WithClock sets the wall clock used to find today's day number.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

func WithRevealInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.revealInterval = d
		}
	}
}

func New(puzzles PuzzleSource, progress services.ProgressService, sched worker.Scheduler, opts ...Option) *Engine {
	e := &Engine{
		puzzles:        puzzles,
		progress:       progress,
		presenter:      NopPresenter{},
		shuffle:        rand.Shuffle,
		now:            time.Now,
		revealInterval: DefaultRevealInterval,
		reveals:        timerGroup{sched: sched},
		countdown:      timerGroup{sched: sched},
		clock:          timerGroup{sched: sched},
		sessionCtx:     context.Background(),
		visible:        true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Today is the day number for the engine's wall clock.
func (e *Engine) Today() int {
	return e.puzzles.Calendar().DayNumberForDate(e.now())
}

// Start begins today's puzzle at difficulty, resuming a saved session when
// one exists for the same difficulty.
func (e *Engine) Start(ctx context.Context, difficulty models.Difficulty) error {
	log := logger.FromContext(ctx).WithPrefix("engine")

	if !difficulty.Valid() {
		return errors.NewValidationError("difficulty", "must be easy, medium, or hard")
	}
	if e.phase.playing() {
		return errors.NewInvalidStateError("start", e.phase.String())
	}

	day := e.Today()
	log.Debug("start requested: day=%d difficulty=%s", day, difficulty)

	status, err := e.progress.CheckCompletion(ctx, day, difficulty)
	if err != nil {
		return err
	}
	if status.Completed {
		if status.Difficulty == difficulty || status.Difficulty == "" {
			return errors.NewDifficultyConflictError(fmt.Sprintf("day %d is already complete on %s; review it instead", day, difficulty))
		}
		return errors.NewDifficultyConflictError(fmt.Sprintf("day %d was already completed on %s", day, status.Difficulty))
	}

	snap, err := e.progress.GetInProgress(ctx)
	if err != nil {
		return err
	}
	if snap != nil && snap.DayNumber == day {
		if snap.Difficulty != difficulty {
			return errors.NewDifficultyConflictError(fmt.Sprintf("a %s game is already in progress today; resume it or reset the day", snap.Difficulty))
		}
		log.Info("resuming saved %s session for day %d", difficulty, day)
		return e.Resume(ctx, *snap)
	}

	view, err := e.puzzles.LoadDaily(ctx, day, difficulty)
	if err != nil {
		log.Error("failed to load day %d: %v", day, err)
		return err
	}
	if err := e.begin(ctx, view); err != nil {
		return err
	}
	e.enterViewing()
	return nil
}

// begin resets the session state for view.
func (e *Engine) begin(ctx context.Context, view *models.DailyPuzzleView) error {
	e.stopTimers()

	p, err := e.progress.Load(ctx)
	if err != nil {
		return err
	}

	e.sessionCtx = ctx
	e.view = view
	e.round = 0
	e.score = 0
	e.roundScores = nil
	e.correct = make(map[int]bool)
	e.incorrect = make(map[guessKey]struct{})
	e.lastGuess = make(map[int]models.Item)
	e.board = newBoard(nil)
	e.revealed = nil
	e.revealRemaining = 0
	e.readyToStart = false
	e.elapsed = 0
	e.winStreak = p.WinStreak
	e.result = nil
	return nil
}

// SkipReveal ends the viewing phase early.
func (e *Engine) SkipReveal(ctx context.Context) error {
	if e.phase != PhaseViewing {
		return errors.NewInvalidStateError("skip reveal", e.phase.String())
	}
	return e.beginMemorizing(ctx)
}

// RevealAll shows every tile at once and enables starting. The countdown
// keeps running. Hard difficulty does not offer it.
func (e *Engine) RevealAll() error {
	if e.phase != PhaseViewing {
		return errors.NewInvalidStateError("reveal all", e.phase.String())
	}
	if e.view.Difficulty == models.Hard {
		return errors.NewInvalidStateError("reveal all", "playing hard")
	}

	e.reveals.cancel()
	for i := range e.view.Items {
		e.revealed[i] = true
	}
	e.readyToStart = true
	e.presenter.Message("All tiles revealed. Start when you are ready.")
	e.render()
	return nil
}

func (e *Engine) beginMemorizing(ctx context.Context) error {
	e.reveals.cancel()
	e.countdown.cancel()
	e.revealRemaining = 0
	e.round = 1
	e.startRound()
	return e.persist(ctx)
}

// prepareRound queues the items of every tile not yet correct, shuffled.
func (e *Engine) prepareRound() {
	open := lo.Filter(lo.Range(len(e.view.Items)), func(tile int, _ int) bool { return !e.correct[tile] })
	targets := lo.Map(open, func(tile int, _ int) models.Item { return e.view.Items[tile] })
	e.shuffle(len(targets), func(i, j int) { targets[i], targets[j] = targets[j], targets[i] })
	e.board = newBoard(targets)
	e.phase = PhaseMemorizing
}

func (e *Engine) startRound() {
	e.prepareRound()
	e.prompt()
	e.render()
}

func (e *Engine) prompt() {
	if e.board.full() {
		e.presenter.Message(`All tiles matched! Review your choices and click "Submit" when ready.`)
		return
	}
	if target, ok := e.Target(); ok {
		e.presenter.Message(fmt.Sprintf("Round %d: Find \"%s\"", e.round, target.Display()))
	}
}

func (e *Engine) render() {
	e.presenter.Board(e.Tiles())
	e.presenter.SubmitEnabled(e.CanSubmit())
}

func (e *Engine) persist(ctx context.Context) error {
	snap, err := e.Snapshot()
	if err != nil {
		return err
	}
	if err := e.progress.SaveInProgress(ctx, snap); err != nil {
		logger.FromContext(ctx).WithPrefix("engine").Error("failed to save session: %v", err)
		return err
	}
	return nil
}

// Abandon saves the live session for a later Resume and stops it.
func (e *Engine) Abandon(ctx context.Context) error {
	switch e.phase {
	case PhaseViewing:
		e.round = 1
		e.prepareRound()
	case PhaseMemorizing, PhaseEvaluated:
	default:
		return errors.NewInvalidStateError("abandon", e.phase.String())
	}

	err := e.persist(ctx)
	e.stopTimers()
	e.phase = PhaseIdle
	return err
}

// ResetToday erases today's result and saved session. A live session for
// today is stopped.
func (e *Engine) ResetToday(ctx context.Context) (bool, error) {
	day := e.Today()
	if e.view != nil && e.view.DayNumber == day && e.phase != PhaseIdle {
		e.stopTimers()
		e.phase = PhaseIdle
		e.view = nil
	}
	return e.progress.ResetDay(ctx, day)
}

func (e *Engine) Phase() Phase {
	return e.phase
}

func (e *Engine) View() *models.DailyPuzzleView {
	return e.view
}

func (e *Engine) Round() int {
	return e.round
}

func (e *Engine) Score() int {
	return e.score
}

func (e *Engine) Elapsed() int {
	return e.elapsed
}

func (e *Engine) RevealRemaining() int {
	return e.revealRemaining
}

// ReadyToStart is set once every tile has been revealed by RevealAll.
func (e *Engine) ReadyToStart() bool {
	return e.phase == PhaseViewing && e.readyToStart
}

func (e *Engine) TileCount() int {
	if e.view == nil {
		return 0
	}
	return len(e.view.Items)
}

func (e *Engine) CorrectCount() int {
	return len(e.correct)
}

// Result is set once the session is complete.
func (e *Engine) Result() *Result {
	return e.result
}

// Target is the item the player is placing now.
func (e *Engine) Target() (models.Item, bool) {
	if e.phase != PhaseMemorizing || e.board == nil {
		return models.Item{}, false
	}
	slot, ok := e.board.current()
	if !ok {
		return models.Item{}, false
	}
	return e.board.targets[slot], true
}

// Swapping reports whether the item to place was displaced from a tile.
func (e *Engine) Swapping() bool {
	return e.phase == PhaseMemorizing && e.board != nil && e.board.swapping
}

func (e *Engine) CanSubmit() bool {
	return e.phase == PhaseMemorizing && e.board != nil && e.board.full() && !e.board.swapping
}

// Tiles renders the grid in tile order.
func (e *Engine) Tiles() []Tile {
	if e.view == nil {
		return nil
	}
	tiles := make([]Tile, len(e.view.Items))
	for i, answer := range e.view.Items {
		t := Tile{Index: i, State: TileHidden}
		switch {
		case e.correct[i]:
			t.State, t.Item = TileCorrect, answer
		case e.phase == PhaseViewing:
			if e.revealed[i] {
				t.State, t.Item = TileRevealed, answer
			}
		case e.phase == PhaseMemorizing || e.phase == PhaseEvaluated:
			if slot, ok := e.board.occupant(i); ok {
				t.State, t.Item = TileAssigned, e.board.targets[slot]
				if e.phase == PhaseEvaluated {
					t.State = TileIncorrect
				}
			}
		case e.phase == PhaseComplete:
			if guess, ok := e.lastGuess[i]; ok {
				t.State, t.Item = TileIncorrect, guess
			}
		}
		tiles[i] = t
	}
	return tiles
}

func sortedTiles(set map[int]bool) []int {
	tiles := lo.Keys(set)
	sort.Ints(tiles)
	return tiles
}
