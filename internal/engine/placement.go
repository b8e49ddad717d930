package engine

import (
	"context"
	"fmt"

	"github.com/vytor/hippomemory/internal/errors"
	"github.com/vytor/hippomemory/internal/logger"
	"github.com/vytor/hippomemory/internal/models"
)

// Click places the current item on tile. A tile that already holds an item
// gives it up, and that item becomes the next one to place.
func (e *Engine) Click(ctx context.Context, tile int) error {
	if e.phase != PhaseMemorizing {
		return errors.NewInvalidStateError("click", e.phase.String())
	}
	if tile < 0 || tile >= e.TileCount() {
		return errors.NewValidationError("tile", fmt.Sprintf("must be between 1 and %d", e.TileCount()))
	}
	slot, ok := e.board.current()
	if !ok {
		return errors.NewInvalidStateError("click", "no item left to place")
	}

	target := e.board.targets[slot]
	if !e.canPlace(target, tile) {
		logger.FromContext(ctx).WithPrefix("engine").Debug("rejected %q on tile %d", target.Identity(), tile)
		e.presenter.AlreadyGuessed(target.Display())
		return errors.NewAlreadyGuessedError(target.Display(), tile)
	}

	if displaced, ok := e.board.place(slot, tile); ok {
		name := e.board.targets[displaced].Display()
		e.presenter.Message(fmt.Sprintf("\"%s\" was replaced. Click a tile to place \"%s\" there.", name, name))
	} else {
		e.prompt()
	}
	e.render()
	return nil
}

// canPlace applies the correct-tile and incorrectness-memory rules. Hard
// difficulty keeps no memory.
func (e *Engine) canPlace(item models.Item, tile int) bool {
	if e.correct[tile] {
		return false
	}
	if e.view.Difficulty == models.Hard {
		return true
	}
	_, wrongBefore := e.incorrect[guessKey{identity: item.Identity(), tile: tile}]
	return !wrongBefore
}
