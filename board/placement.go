package board

import (
	"github.com/rblankley/solver2/mask"
	"github.com/rblankley/solver2/tiles"
)

// Placement is one board cell. Its lookup key starts out seeded from
// the board's border type and is rewritten by the left and top
// neighbors as tiles land there. Off-board neighbor pointers target the
// board's junk cell, which absorbs those writes harmlessly.
type Placement[M mask.Bits[M]] struct {
	lookup uint64
	tile   *tiles.Tile[M]

	left, top, right, bottom *Placement[M]

	prev, next *Placement[M]
}

// Tile returns the tile currently placed in the cell, if any.
func (p *Placement[M]) Tile() *tiles.Tile[M] { return p.tile }

// place puts t into the cell and pushes its right and bottom edge
// patterns into the neighboring keys. It returns the next cell in
// traversal order, or nil when the board is full. Nothing is undone on
// backtrack: the next candidate overwrites the same fields, and a stale
// neighbor key is never read before its left or top neighbor is placed
// again.
func (p *Placement[M]) place(g tiles.Geometry, t *tiles.Tile[M]) *Placement[M] {
	p.tile = t

	p.right.lookup = p.right.lookup&^g.MaskLeft | g.MaskLeft&t.Out()
	p.bottom.lookup = p.bottom.lookup&^g.MaskTop | g.MaskTop&t.Out()

	return p.next
}
