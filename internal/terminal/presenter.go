package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/vytor/hippomemory/internal/engine"
	"github.com/vytor/hippomemory/internal/stats"
)

const gridColumns = 4

// Presenter prints engine output as plain text.
type Presenter struct {
	out         io.Writer
	canSubmit   bool
	lastElapsed int
	last        []engine.Tile
}

func NewPresenter(out io.Writer) *Presenter {
	return &Presenter{out: out}
}

func (p *Presenter) Message(text string) {
	fmt.Fprintln(p.out, text)
}

func (p *Presenter) Board(tiles []engine.Tile) {
	p.last = tiles
	fmt.Fprint(p.out, FormatGrid(tiles, gridColumns))
}

func (p *Presenter) SubmitEnabled(enabled bool) {
	if enabled && !p.canSubmit {
		fmt.Fprintln(p.out, `Type "submit" to score the round.`)
	}
	p.canSubmit = enabled
}

func (p *Presenter) Tick(kind engine.TimerKind, seconds int) {
	switch kind {
	case engine.RevealCountdown:
		if seconds%15 == 0 || seconds <= 5 {
			fmt.Fprintf(p.out, "%ds left to memorize\n", seconds)
		}
	case engine.ElapsedTime:
		p.lastElapsed = seconds
	}
}

func (p *Presenter) AlreadyGuessed(display string) {
	fmt.Fprintf(p.out, "Already guessed! Try another spot. (%s)\n", display)
}

func (p *Presenter) Completed(r engine.Result) {
	switch {
	case r.Perfect:
		fmt.Fprintf(p.out, "Perfect! Every tile matched in round one.\n")
	case r.Won:
		fmt.Fprintf(p.out, "Solved in %d rounds.\n", r.RoundsCompleted)
	default:
		fmt.Fprintf(p.out, "Out of rounds: %d/%d tiles matched.\n", r.Score, r.TileCount)
	}
	fmt.Fprintf(p.out, "Time: %s  Streak: %d\n\n%s\n", stats.FormatClock(r.TimeToComplete), r.WinStreak, r.ShareText())
}

// Elapsed is the last overall-timer value seen.
func (p *Presenter) Elapsed() int {
	return p.lastElapsed
}

// LastBoard returns the most recent grid.
func (p *Presenter) LastBoard() []engine.Tile {
	return p.last
}

// FormatGrid lays tiles out in rows, numbering them from 1.
func FormatGrid(tiles []engine.Tile, columns int) string {
	if len(tiles) == 0 {
		return ""
	}
	width := 0
	for _, t := range tiles {
		width = max(width, len([]rune(cellText(t))))
	}

	var b strings.Builder
	for i, t := range tiles {
		text := cellText(t)
		fmt.Fprintf(&b, "%2d %s%s", t.Index+1, text, strings.Repeat(" ", width-len([]rune(text))))
		if (i+1)%columns == 0 || i == len(tiles)-1 {
			b.WriteString("\n")
		} else {
			b.WriteString(" | ")
		}
	}
	return b.String()
}

func cellText(t engine.Tile) string {
	switch t.State {
	case engine.TileRevealed:
		return t.Item.Display()
	case engine.TileAssigned:
		return t.Item.Display() + "?"
	case engine.TileCorrect:
		return t.Item.Display() + " ✓"
	case engine.TileIncorrect:
		return t.Item.Display() + " ✗"
	default:
		return "·"
	}
}
