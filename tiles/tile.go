package tiles

import "github.com/rblankley/solver2/mask"

// Tile is one rotation of a (possibly composed) rectangular unit. The
// in word packs the left and top edge patterns, the out word packs the
// right and bottom patterns in the same field layout, so the out word
// of a placed tile can be merged straight into the keys of the two
// placements it constrains.
type Tile[M mask.Bits[M]] struct {
	in, out uint64

	// Mask marks the input pieces the tile is made of.
	Mask M

	random uint64
}

// New packs a tile from its four edge patterns.
func New[M mask.Bits[M]](g Geometry, left, top, right, bottom uint64, m M) Tile[M] {
	return Tile[M]{
		in:   left | top<<g.LeftBits,
		out:  right | bottom<<g.LeftBits,
		Mask: m,
	}
}

// Left returns the left edge pattern.
func (t Tile[M]) Left(g Geometry) uint64 { return t.in & g.MaskLeft }

// Top returns the top edge pattern.
func (t Tile[M]) Top(g Geometry) uint64 { return (t.in & g.MaskTop) >> g.LeftBits }

// Right returns the right edge pattern.
func (t Tile[M]) Right(g Geometry) uint64 { return t.out & g.MaskLeft }

// Bottom returns the bottom edge pattern.
func (t Tile[M]) Bottom(g Geometry) uint64 { return (t.out & g.MaskTop) >> g.LeftBits }

// Out returns the packed right/bottom word used to update neighbor
// placement keys.
func (t Tile[M]) Out() uint64 { return t.out }

// Key returns the tile's own lookup key: its left and top patterns plus
// the non-border flags of its right and bottom edges.
func (t Tile[M]) Key(g Geometry) uint64 {
	key := t.in
	if t.out&g.MaskLeft != 0 {
		key |= g.FlagRight
	}
	if t.out&g.MaskTop != 0 {
		key |= g.FlagBottom
	}
	return key
}

// less orders tiles by their in word, then their out word. Rotations of
// a piece are sorted this way before de-duplication so the canonical
// top-left rotation comes first.
func (t Tile[M]) less(other Tile[M]) bool {
	if t.in == other.in {
		return t.out < other.out
	}
	return t.in < other.in
}
