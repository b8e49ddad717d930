package engine

import (
	"sort"

	"github.com/samber/lo"
	"github.com/vytor/hippomemory/internal/models"
)

// board is the assignment table for one round. Targets are addressed by
// slot (their index in the round's queue) so duplicate items stay distinct.
// tileOf and slotAt are kept as exact inverses.
type board struct {
	targets  []models.Item
	tileOf   map[int]int
	slotAt   map[int]int
	active   int
	swapping bool
}

func newBoard(targets []models.Item) *board {
	b := &board{
		targets: targets,
		tileOf:  make(map[int]int, len(targets)),
		slotAt:  make(map[int]int, len(targets)),
		active:  -1,
	}
	if len(targets) > 0 {
		b.active = 0
	}
	return b
}

// current is the slot whose item the player is placing.
func (b *board) current() (int, bool) {
	if b.active < 0 || b.active >= len(b.targets) {
		return 0, false
	}
	return b.active, true
}

func (b *board) full() bool {
	return len(b.targets) > 0 && len(b.tileOf) == len(b.targets)
}

func (b *board) occupant(tile int) (int, bool) {
	slot, ok := b.slotAt[tile]
	return slot, ok
}

func (b *board) assign(slot, tile int) {
	b.tileOf[slot] = tile
	b.slotAt[tile] = slot
}

func (b *board) release(slot int) {
	if tile, ok := b.tileOf[slot]; ok {
		delete(b.tileOf, slot)
		delete(b.slotAt, tile)
	}
}

func (b *board) nextUnplaced() (int, bool) {
	for slot := range b.targets {
		if _, placed := b.tileOf[slot]; !placed {
			return slot, true
		}
	}
	return 0, false
}

// place puts slot on tile. If the slot already sat elsewhere that tile is
// cleared. If tile held another slot, that slot is displaced, becomes the
// one to place next, and is returned.
func (b *board) place(slot, tile int) (int, bool) {
	if cur, ok := b.slotAt[tile]; ok && cur == slot {
		return 0, false
	}

	b.release(slot)
	displaced, occupied := b.slotAt[tile]
	if occupied {
		b.release(displaced)
	}
	b.assign(slot, tile)

	if occupied {
		b.active = displaced
		b.swapping = true
		return displaced, true
	}

	b.swapping = false
	if next, ok := b.nextUnplaced(); ok {
		b.active = next
	} else {
		b.active = slot
	}
	return 0, false
}

// assignedTiles lists occupied tiles in ascending order.
func (b *board) assignedTiles() []int {
	tiles := lo.Keys(b.slotAt)
	sort.Ints(tiles)
	return tiles
}
