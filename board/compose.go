package board

import (
	"golang.org/x/sync/errgroup"

	"github.com/rblankley/solver2/mask"
	"github.com/rblankley/solver2/tiles"
)

// composeKinds are the nine border contexts a super-tile may later be
// used in. Fusing under every one of them materializes corner, edge and
// middle variants alike.
var composeKinds = [...]Borders{
	TopLeftCorner, TopEdge, TopRightCorner,
	LeftEdge, Middle, RightEdge,
	BottomLeftCorner, BottomEdge, BottomRightCorner,
}

// ComposeVertical solves a 1×2 board over the input store for all nine
// border contexts and inserts every filled pair into out as a single
// tile of twice the height. The shared inner edge is dropped; the outer
// edges concatenate, lower tile in the high bits.
func ComposeVertical[M mask.Bits[M]](in, out *tiles.Store[M], threaded bool) {
	g := in.Geometry()
	og := out.Geometry()

	emit := func(b *Board[M]) {
		t0 := b.cells[0].tile // top
		t1 := b.cells[1].tile // bottom
		out.Insert(tiles.New(og,
			t1.Left(g)<<g.LeftBits|t0.Left(g),
			t0.Top(g),
			t1.Right(g)<<g.LeftBits|t0.Right(g),
			t1.Bottom(g),
			t0.Mask.Union(t1.Mask),
		))
	}

	compose(1, 2, in, emit, threaded)

	Log.WithFields(map[string]any{
		"shape": og.Shape.String(),
		"tiles": out.Len(),
	}).Debug("composed vertical store")
}

// ComposeHorizontal solves a 2×1 board over the input store for all
// nine border contexts and inserts every filled pair into out as a
// single tile of twice the width, right tile in the high bits.
func ComposeHorizontal[M mask.Bits[M]](in, out *tiles.Store[M], threaded bool) {
	g := in.Geometry()
	og := out.Geometry()

	emit := func(b *Board[M]) {
		t0 := b.cells[0].tile // left
		t1 := b.cells[1].tile // right
		out.Insert(tiles.New(og,
			t0.Left(g),
			t1.Top(g)<<g.TopBits|t0.Top(g),
			t1.Right(g),
			t1.Bottom(g)<<g.TopBits|t0.Bottom(g),
			t0.Mask.Union(t1.Mask),
		))
	}

	compose(2, 1, in, emit, threaded)

	Log.WithFields(map[string]any{
		"shape": og.Shape.String(),
		"tiles": out.Len(),
	}).Debug("composed horizontal store")
}

func compose[M mask.Bits[M]](w, h int, in *tiles.Store[M], emit func(*Board[M]), threaded bool) {
	run := func(kind Borders) {
		var zero M
		b := New[M](w, h, in)
		b.emit = emit
		b.SetBorders(kind)
		b.solveFrom(&b.cells[0], zero)
	}

	if !threaded {
		for _, kind := range composeKinds {
			run(kind)
		}
		return
	}

	var g errgroup.Group
	for _, kind := range composeKinds {
		g.Go(func() error {
			run(kind)
			return nil
		})
	}
	g.Wait()
}
