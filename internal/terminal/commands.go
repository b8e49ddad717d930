package terminal

import (
	"strconv"
	"strings"

	"github.com/vytor/hippomemory/internal/errors"
	"github.com/vytor/hippomemory/internal/models"
)

type CommandKind int

const (
	CmdHelp CommandKind = iota
	CmdStart
	CmdSkip
	CmdRevealAll
	CmdClick
	CmdSubmit
	CmdContinue
	CmdBoard
	CmdShare
	CmdReview
	CmdReset
	CmdHide
	CmdShow
	CmdQuit
)

type Command struct {
	Kind       CommandKind
	Difficulty models.Difficulty
	Tile       int // zero-based
	Day        int
	Confirmed  bool
}

var aliases = map[string]CommandKind{
	"help":     CmdHelp,
	"?":        CmdHelp,
	"start":    CmdStart,
	"skip":     CmdSkip,
	"go":       CmdSkip,
	"reveal":   CmdRevealAll,
	"click":    CmdClick,
	"submit":   CmdSubmit,
	"next":     CmdContinue,
	"continue": CmdContinue,
	"board":    CmdBoard,
	"share":    CmdShare,
	"review":   CmdReview,
	"reset":    CmdReset,
	"hide":     CmdHide,
	"show":     CmdShow,
	"quit":     CmdQuit,
	"exit":     CmdQuit,
}

const Help = `Commands:
  start <easy|medium|hard>   begin today's puzzle
  skip                       stop memorizing and start round 1
  reveal                     show every tile now (easy and medium)
  <n> | click <n>            place the current item on tile n
  submit                     score the round
  next                       go to the next round
  board                      print the grid
  share                      print the share text
  review [day]               show a finished day
  reset yes                  erase today's result
  hide | show                pause or resume the clock
  quit                       save and leave`

// ParseCommand reads one input line. A bare number is a click on that tile.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Command{}, errors.NewValidationError("command", "empty input")
	}

	if n, err := strconv.Atoi(fields[0]); err == nil {
		return clickCommand(n)
	}

	kind, ok := aliases[fields[0]]
	if !ok {
		return Command{}, errors.NewValidationError("command", "unknown command "+strconv.Quote(fields[0]))
	}

	switch kind {
	case CmdStart:
		if len(fields) < 2 {
			return Command{}, errors.NewValidationError("difficulty", "start needs easy, medium, or hard")
		}
		d, err := models.ParseDifficulty(fields[1])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CmdStart, Difficulty: d}, nil
	case CmdClick:
		if len(fields) < 2 {
			return Command{}, errors.NewValidationError("tile", "click needs a tile number")
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return Command{}, errors.NewValidationError("tile", "must be a number")
		}
		return clickCommand(n)
	case CmdReview:
		if len(fields) < 2 {
			return Command{Kind: CmdReview}, nil
		}
		day, err := strconv.Atoi(fields[1])
		if err != nil || day < 1 {
			return Command{}, errors.NewValidationError("day", "must be a positive number")
		}
		return Command{Kind: CmdReview, Day: day}, nil
	case CmdReset:
		if len(fields) < 2 {
			return Command{Kind: CmdReset}, nil
		}
		if fields[1] != "yes" {
			return Command{}, errors.NewValidationError("reset", `confirm with "reset yes"`)
		}
		return Command{Kind: CmdReset, Confirmed: true}, nil
	default:
		return Command{Kind: kind}, nil
	}
}

func clickCommand(n int) (Command, error) {
	if n < 1 {
		return Command{}, errors.NewValidationError("tile", "tiles are numbered from 1")
	}
	return Command{Kind: CmdClick, Tile: n - 1}, nil
}
