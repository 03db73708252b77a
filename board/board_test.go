package board

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rblankley/solver2/mask"
	"github.com/rblankley/solver2/pieces"
	"github.com/rblankley/solver2/tiles"
)

func TestMain(m *testing.M) {
	Log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	tiles.Log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	m.Run()
}

func newStore(class tiles.Class, w, h int) *tiles.Store[mask.M32] {
	return tiles.NewStore[mask.M32](tiles.NewGeometry(class, tiles.Shape{W: w, H: h}))
}

func TestPlacementUpdatesNeighbors(t *testing.T) {
	g := tiles.NewGeometry(tiles.Class32, tiles.Shape{W: 1, H: 1})

	var (
		cells [3]Placement[mask.M32]
		m     mask.M32
	)
	cells[0].right = &cells[1]
	cells[0].bottom = &cells[2]

	tile := tiles.New(g, 1, 2, 3, 4, m)
	next := cells[0].place(g, &tile)

	assert.Nil(t, next)
	assert.Equal(t, &tile, cells[0].tile)

	// the placed cell's own key is untouched
	assert.Equal(t, uint64(0), cells[0].lookup)

	// the right neighbor sees the tile's right edge as its left pattern
	assert.Equal(t, uint64(3), cells[1].lookup&g.MaskLeft)
	assert.Equal(t, uint64(0), cells[1].lookup&^g.MaskLeft)

	// the bottom neighbor sees the tile's bottom edge as its top pattern
	assert.Equal(t, uint64(4)<<g.LeftBits, cells[2].lookup&g.MaskTop)
	assert.Equal(t, uint64(0), cells[2].lookup&^g.MaskTop)
}

func TestSetBorders(t *testing.T) {
	s := newStore(tiles.Class16, 1, 1)
	g := s.Geometry()

	b := New[mask.M32](3, 3, s)

	// top left corner: both patterns pinned to border, both flags open
	assert.Equal(t, g.FlagRight|g.FlagBottom, b.at(0, 0).lookup)

	// middle: wildcard patterns, open flags
	assert.Equal(t, g.MaskLeft|g.MaskTop|g.FlagRight|g.FlagBottom, b.at(1, 1).lookup)

	// bottom left: border left pattern and bottom flag
	assert.Equal(t, g.MaskTop|g.FlagRight, b.at(0, 2).lookup)

	// bottom right: only the incoming patterns stay open
	assert.Equal(t, g.MaskLeft|g.MaskTop, b.at(2, 2).lookup)

	b.SetBorders(Middle)
	assert.Equal(t, g.MaskLeft|g.MaskTop|g.FlagRight|g.FlagBottom, b.at(0, 0).lookup)

	b.SetBorders(TopLeftCorner)
	assert.Equal(t, g.FlagRight|g.FlagBottom, b.at(0, 0).lookup)
	assert.Equal(t, g.MaskLeft|g.MaskTop|g.FlagRight|g.FlagBottom, b.at(2, 2).lookup)
}

func TestTraversalOrder(t *testing.T) {
	s := newStore(tiles.Class8, 1, 1)
	b := New[mask.M32](2, 3, s)

	// column-major: walk each column top to bottom, then the next
	var walked []*Placement[mask.M32]
	for p := &b.cells[0]; p != nil; p = p.next {
		walked = append(walked, p)
	}
	require.Len(t, walked, 6)
	assert.Equal(t, b.at(0, 0), walked[0])
	assert.Equal(t, b.at(0, 2), walked[2])
	assert.Equal(t, b.at(1, 0), walked[3])
	assert.Equal(t, b.at(1, 2), walked[5])

	assert.Nil(t, b.at(1, 2).next)
	assert.Nil(t, b.at(0, 0).prev)

	// off-board neighbors all target the junk cell
	assert.Equal(t, &b.junk, b.at(0, 0).left)
	assert.Equal(t, &b.junk, b.at(0, 0).top)
	assert.Equal(t, &b.junk, b.at(1, 2).right)
	assert.Equal(t, &b.junk, b.at(1, 2).bottom)
}

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

func solve(t *testing.T, w, h int, s *tiles.Store[mask.M32], threaded bool) uint64 {
	t.Helper()
	b := New[mask.M32](w, h, s)
	b.Threaded = threaded
	b.Solve()
	return b.Solutions()
}

func TestSolveCanonical(t *testing.T) {
	st1x1 := newStore(tiles.Class8, 1, 1)
	tiles.BuildRotations(st1x1, canonicalPieces())
	require.Equal(t, 58, st1x1.Len())

	assert.Equal(t, uint64(640), solve(t, 4, 4, st1x1, false))
	assert.Equal(t, uint64(640), solve(t, 4, 4, st1x1, true))
}

func TestComposeCanonical(t *testing.T) {
	st1x1 := newStore(tiles.Class8, 1, 1)
	tiles.BuildRotations(st1x1, canonicalPieces())

	st1x2 := newStore(tiles.Class8, 1, 2)
	ComposeVertical(st1x1, st1x2, false)
	require.Equal(t, 316, st1x2.Len())
	assert.Equal(t, uint64(640), solve(t, 4, 2, st1x2, false))

	st2x1 := newStore(tiles.Class8, 2, 1)
	ComposeHorizontal(st1x1, st2x1, true)
	require.Equal(t, 316, st2x1.Len())
	assert.Equal(t, uint64(640), solve(t, 2, 4, st2x1, true))

	// both composition orders must yield the same 2x2 store
	st2x2v := newStore(tiles.Class8, 2, 2)
	ComposeVertical(st2x1, st2x2v, false)
	require.Equal(t, 3472, st2x2v.Len())

	st2x2h := newStore(tiles.Class8, 2, 2)
	ComposeHorizontal(st1x2, st2x2h, false)
	require.Equal(t, 3472, st2x2h.Len())

	assert.Equal(t, uint64(640), solve(t, 2, 2, st2x2v, false))
	assert.Equal(t, uint64(640), solve(t, 2, 2, st2x2h, true))
}

func TestSolveAllZeroPuzzle(t *testing.T) {
	ps := pieces.List{{}, {}, {}, {}}

	s := newStore(tiles.Class8, 1, 1)
	tiles.BuildRotations(s, ps)
	// one pinned corner rotation plus three for each remaining piece
	require.Equal(t, 10, s.Len())

	// edge value zero strictly means border, so a puzzle whose interior
	// edges are all zero has no placements that satisfy the open-side
	// flags of the inner cells
	assert.Equal(t, uint64(0), solve(t, 2, 2, s, false))
}

func TestSolveTinyPuzzle(t *testing.T) {
	// a 2x2 puzzle whose interior edges are all color 1: the pinned
	// first corner fixes the orientation, the other three corner
	// pieces permute freely over the remaining cells
	ps := pieces.List{
		{Left: 0, Top: 0, Right: 1, Bottom: 1},
		{Left: 1, Top: 0, Right: 0, Bottom: 1},
		{Left: 0, Top: 1, Right: 1, Bottom: 0},
		{Left: 1, Top: 1, Right: 0, Bottom: 0},
	}

	s := newStore(tiles.Class8, 1, 1)
	tiles.BuildRotations(s, ps)
	require.Equal(t, 10, s.Len())

	assert.Equal(t, uint64(6), solve(t, 2, 2, s, false))
	assert.Equal(t, uint64(6), solve(t, 2, 2, s, true))
}

func TestQuitFirst(t *testing.T) {
	s := newStore(tiles.Class8, 1, 1)
	tiles.BuildRotations(s, canonicalPieces())

	b := New[mask.M32](4, 4, s)
	b.QuitFirst = true
	b.Solve()

	assert.Equal(t, uint64(1), b.Solutions())
	assert.True(t, b.Stop.Load())
}

func TestPrintSolution(t *testing.T) {
	s := newStore(tiles.Class8, 1, 1)
	tiles.BuildRotations(s, canonicalPieces())

	var buf bytes.Buffer
	b := New[mask.M32](4, 4, s)
	b.Print = true
	b.QuitFirst = true
	b.SetPrintTo(&buf)
	b.Solve()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 16)
	for _, line := range lines {
		assert.Regexp(t, `^\[ \d+ \]$`, line)
	}
}

func TestOnSolution(t *testing.T) {
	s := newStore(tiles.Class8, 1, 1)
	tiles.BuildRotations(s, canonicalPieces())

	var seen [][]int
	b := New[mask.M32](4, 4, s)
	b.QuitFirst = true
	b.OnSolution = func(placed []*tiles.Tile[mask.M32]) {
		for _, tile := range placed {
			seen = append(seen, tile.Mask.Members())
		}
	}
	b.Solve()

	require.Len(t, seen, 16)

	used := make(map[int]bool)
	for _, members := range seen {
		require.Len(t, members, 1)
		used[members[0]] = true
	}
	assert.Len(t, used, 16)
}
