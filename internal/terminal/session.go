package terminal

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/vytor/hippomemory/internal/engine"
	"github.com/vytor/hippomemory/internal/errors"
	"github.com/vytor/hippomemory/internal/logger"
)

// Runner executes a function on the engine's event thread. *worker.Loop
// satisfies it.
type Runner interface {
	Do(ctx context.Context, name string, fn func(context.Context) error) error
}

// Session feeds typed commands to an engine.
type Session struct {
	eng       *engine.Engine
	presenter *Presenter
	out       io.Writer
}

func NewSession(eng *engine.Engine, presenter *Presenter, out io.Writer) *Session {
	return &Session{eng: eng, presenter: presenter, out: out}
}

// Run reads commands from in until quit or end of input. Live sessions are
// saved on the way out.
func (s *Session) Run(ctx context.Context, in io.Reader, runner Runner) error {
	log := logger.FromContext(ctx).WithPrefix("terminal")
	fmt.Fprintln(s.out, Help)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		cmd, err := ParseCommand(line)
		if err != nil {
			s.report(err)
			continue
		}
		if cmd.Kind == CmdQuit {
			break
		}
		err = runner.Do(ctx, "command", func(ctx context.Context) error {
			return s.Execute(ctx, cmd)
		})
		if err != nil {
			s.report(err)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Warn("input closed with error: %v", err)
	}

	return runner.Do(ctx, "abandon", func(ctx context.Context) error {
		return s.saveOnExit(ctx)
	})
}

func (s *Session) saveOnExit(ctx context.Context) error {
	switch s.eng.Phase() {
	case engine.PhaseViewing, engine.PhaseMemorizing, engine.PhaseEvaluated:
		if err := s.eng.Abandon(ctx); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Progress saved. Start the same difficulty to pick up where you left off.")
	}
	return nil
}

// Execute runs one command. It must be called on the event thread.
func (s *Session) Execute(ctx context.Context, cmd Command) error {
	switch cmd.Kind {
	case CmdHelp:
		fmt.Fprintln(s.out, Help)
	case CmdStart:
		return s.eng.Start(ctx, cmd.Difficulty)
	case CmdSkip:
		return s.eng.SkipReveal(ctx)
	case CmdRevealAll:
		return s.eng.RevealAll()
	case CmdClick:
		if err := s.eng.Click(ctx, cmd.Tile); err != nil && !errors.IsCode(err, errors.ErrCodeAlreadyGuessed) {
			return err
		}
	case CmdSubmit:
		return s.eng.Submit(ctx)
	case CmdContinue:
		return s.eng.Continue(ctx)
	case CmdBoard:
		fmt.Fprint(s.out, FormatGrid(s.eng.Tiles(), gridColumns))
		if target, ok := s.eng.Target(); ok {
			fmt.Fprintf(s.out, "Place: %s\n", target.Display())
		}
	case CmdShare:
		res := s.eng.Result()
		if res == nil {
			return errors.NewInvalidStateError("share", "the puzzle is unfinished")
		}
		fmt.Fprintln(s.out, res.ShareText())
	case CmdReview:
		day := cmd.Day
		if day == 0 {
			day = s.eng.Today()
		}
		r, err := s.eng.Review(ctx, day)
		if err != nil {
			return err
		}
		fmt.Fprint(s.out, FormatReview(r))
	case CmdReset:
		if !cmd.Confirmed {
			fmt.Fprintln(s.out, `Reset today's attempt? Your result and streak progress for today will be lost. Type "reset yes" to confirm.`)
			return nil
		}
		reset, err := s.eng.ResetToday(ctx)
		if err != nil {
			return err
		}
		if reset {
			fmt.Fprintln(s.out, "Today's progress was reset.")
		} else {
			fmt.Fprintln(s.out, "Nothing to reset today.")
		}
	case CmdHide:
		s.eng.SetVisible(false)
	case CmdShow:
		s.eng.SetVisible(true)
	}
	return nil
}

// report prints recoverable errors without the code prefix.
func (s *Session) report(err error) {
	msg := err.Error()
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		msg = appErr.Message
	}
	fmt.Fprintf(s.out, "! %s\n", msg)
}

// FormatReview prints a finished day with each guess next to its answer.
func FormatReview(r *engine.Review) string {
	tiles := make([]engine.Tile, len(r.Tiles))
	for i, t := range r.Tiles {
		state := engine.TileIncorrect
		if t.Correct {
			state = engine.TileCorrect
		}
		tiles[i] = engine.Tile{Index: t.Index, State: state, Item: t.Guess}
	}
	result := "lost"
	if r.Won {
		result = "won"
	}
	return fmt.Sprintf("Day %d (%s) %s on %s: %s, %d correct, %d rounds\n%s",
		r.DayNumber, r.Date, r.Category, r.Difficulty, result, r.Score, r.RoundsCompleted, FormatGrid(tiles, gridColumns))
}
