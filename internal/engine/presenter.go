package engine

import "github.com/vytor/hippomemory/internal/models"

type TileState int

const (
	TileHidden TileState = iota
	TileRevealed
	TileAssigned
	TileCorrect
	TileIncorrect
)

func (s TileState) String() string {
	switch s {
	case TileRevealed:
		return "revealed"
	case TileAssigned:
		return "assigned"
	case TileCorrect:
		return "correct"
	case TileIncorrect:
		return "incorrect"
	default:
		return "hidden"
	}
}

// Tile is one grid cell as the player should see it. Item is the true item
// for revealed and correct tiles, and the placed item for assigned and
// incorrect ones.
type Tile struct {
	Index int
	State TileState
	Item  models.Item
}

type TimerKind int

const (
	RevealCountdown TimerKind = iota
	ElapsedTime
)

// Presenter is the UI side of the engine. Calls arrive on the event thread.
type Presenter interface {
	Message(text string)
	Board(tiles []Tile)
	SubmitEnabled(enabled bool)
	Tick(kind TimerKind, seconds int)
	AlreadyGuessed(display string)
	Completed(result Result)
}

// NopPresenter discards everything.
type NopPresenter struct{}

func (NopPresenter) Message(string) {}
func (NopPresenter) Board([]Tile) {}
func (NopPresenter) SubmitEnabled(bool) {}
func (NopPresenter) Tick(TimerKind, int) {}
func (NopPresenter) AlreadyGuessed(string) {}
func (NopPresenter) Completed(Result) {}
