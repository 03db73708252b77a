package solver

import (
	"github.com/rblankley/solver2/board"
	"github.com/rblankley/solver2/mask"
	"github.com/rblankley/solver2/pieces"
	"github.com/rblankley/solver2/tiles"
)

// Validate exercises the mask, key, tile and board layers against known
// results and reports whether everything checks out. It backs the CLI's
// --validate option.
func Validate() bool {
	return validateMasks() &&
		validateGeometries() &&
		validateTiles() &&
		validateBoards()
}

func validateMasks() bool {
	return checkMask[mask.M32](31) &&
		checkMask[mask.M64](63) &&
		checkMask[mask.M128](127) &&
		checkMask[mask.M256](255) &&
		checkMask[mask.M512](511)
}

func checkMask[M mask.Bits[M]](high uint) bool {
	var zero M

	a := zero.With(0)
	b := zero.With(high)

	if a.Intersects(b) || b.Intersects(a) {
		return false
	}
	if !a.Intersects(a) || zero.Intersects(a) {
		return false
	}

	u := a.Union(b)
	if !u.Intersects(a) || !u.Intersects(b) {
		return false
	}

	members := u.Members()
	return len(members) == 2 && members[0] == 0 && members[1] == int(high)
}

var validateShapes = []tiles.Shape{
	{W: 1, H: 1}, {W: 1, H: 2}, {W: 2, H: 1}, {W: 2, H: 2},
	{W: 2, H: 4}, {W: 4, H: 2}, {W: 4, H: 4}, {W: 4, H: 8}, {W: 8, H: 4},
}

var validateClasses = []tiles.Class{tiles.Class8, tiles.Class16, tiles.Class32}

func validateGeometries() bool {
	for _, class := range validateClasses {
		for _, shape := range validateShapes {
			g := tiles.NewGeometry(class, shape)

			if g.MaskLeft == 0 || g.MaskTop == 0 {
				return false
			}
			if g.MaskLeft&g.MaskTop != 0 {
				return false
			}
			if g.FlagRight != (g.MaskLeft|g.MaskTop)+1 {
				return false
			}
			if g.FlagBottom != g.FlagRight<<1 {
				return false
			}
			if g.MaxKeys() != g.FlagRight<<2 {
				return false
			}
		}
	}
	return true
}

func validateTiles() bool {
	for _, class := range validateClasses {
		for _, shape := range validateShapes {
			if !checkTile[mask.M32](class, shape) ||
				!checkTile[mask.M512](class, shape) {
				return false
			}
		}
	}
	return true
}

// checkTile verifies that packing a tile and reading its edge fields
// back is the identity, and that the tile's key carries its left/top
// patterns plus the right/bottom non-border flags.
func checkTile[M mask.Bits[M]](class tiles.Class, shape tiles.Shape) bool {
	var zero M

	g := tiles.NewGeometry(class, shape)

	left := g.MaskLeft >> 1 // arbitrary in-range patterns
	top := g.MaskTop >> (g.LeftBits + 1) << 1
	right := uint64(1)
	bottom := uint64(2)

	t := tiles.New(g, left, top, right, bottom, zero.With(3))
	if t.Left(g) != left || t.Top(g) != top ||
		t.Right(g) != right || t.Bottom(g) != bottom {
		return false
	}
	if t.Key(g) != left|top<<g.LeftBits|g.FlagRight|g.FlagBottom {
		return false
	}

	borderless := tiles.New(g, left, top, 0, 0, zero.With(3))
	return borderless.Key(g) == left|top<<g.LeftBits
}

// canonicalPieces is the 16 piece fixture with known rotation and
// solution counts on a 4x4 board.
func canonicalPieces() pieces.List {
	return pieces.List{
		{Left: 0, Top: 0, Right: 1, Bottom: 2},
		{Left: 1, Top: 0, Right: 2, Bottom: 3},
		{Left: 2, Top: 0, Right: 1, Bottom: 3},
		{Left: 1, Top: 0, Right: 0, Bottom: 1},

		{Left: 0, Top: 2, Right: 3, Bottom: 2},
		{Left: 3, Top: 3, Right: 4, Bottom: 4},
		{Left: 4, Top: 3, Right: 3, Bottom: 3},
		{Left: 3, Top: 1, Right: 0, Bottom: 1},

		{Left: 0, Top: 2, Right: 4, Bottom: 2},
		{Left: 4, Top: 4, Right: 3, Bottom: 4},
		{Left: 3, Top: 3, Right: 4, Bottom: 4},
		{Left: 4, Top: 1, Right: 0, Bottom: 2},

		{Left: 0, Top: 2, Right: 1, Bottom: 0},
		{Left: 1, Top: 4, Right: 1, Bottom: 0},
		{Left: 1, Top: 4, Right: 2, Bottom: 0},
		{Left: 2, Top: 2, Right: 0, Bottom: 0},
	}
}

func validateBoards() bool {
	for _, class := range validateClasses {
		if !checkBoards[mask.M32](class) ||
			!checkBoards[mask.M512](class) {
			return false
		}
	}
	return true
}

// checkBoards runs the canonical fixture through every tile size up to
// 2x2 and both threading modes, expecting the known rotation counts and
// 640 solutions throughout.
func checkBoards[M mask.Bits[M]](class tiles.Class) bool {
	ps := canonicalPieces()

	newStore := func(w, h int) *tiles.Store[M] {
		return tiles.NewStore[M](tiles.NewGeometry(class, tiles.Shape{W: w, H: h}))
	}
	solutions := func(w, h int, s *tiles.Store[M], threaded bool) uint64 {
		b := board.New[M](w, h, s)
		b.Threaded = threaded
		b.Solve()
		return b.Solutions()
	}

	st1x1 := newStore(1, 1)
	tiles.BuildRotations(st1x1, ps)
	if st1x1.Len() != 58 {
		return false
	}
	if solutions(4, 4, st1x1, false) != 640 {
		return false
	}
	if solutions(4, 4, st1x1, true) != 640 {
		return false
	}

	st1x2 := newStore(1, 2)
	board.ComposeVertical(st1x1, st1x2, false)
	if st1x2.Len() != 316 {
		return false
	}
	if solutions(4, 2, st1x2, false) != 640 {
		return false
	}

	st2x1 := newStore(2, 1)
	board.ComposeHorizontal(st1x1, st2x1, true)
	if st2x1.Len() != 316 {
		return false
	}
	if solutions(2, 4, st2x1, true) != 640 {
		return false
	}

	// the two composition orders must agree
	st2x2v := newStore(2, 2)
	board.ComposeVertical(st2x1, st2x2v, false)
	if st2x2v.Len() != 3472 {
		return false
	}

	st2x2h := newStore(2, 2)
	board.ComposeHorizontal(st1x2, st2x2h, true)
	if st2x2h.Len() != 3472 {
		return false
	}

	return solutions(2, 2, st2x2v, false) == 640 &&
		solutions(2, 2, st2x2h, true) == 640
}
