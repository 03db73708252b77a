package tiles

import (
	"sort"

	"github.com/rblankley/solver2/mask"
	"github.com/rblankley/solver2/pieces"
)

// BuildRotations fills a single-cell store with the rotations of every
// piece. Rotations that would only produce solutions differing by a
// whole-board rotation or reflection are suppressed:
//
//   - the first corner piece is pinned to its top-left rotation, fixing
//     the board orientation; later corner pieces contribute the other
//     three rotations,
//   - a piece with four equal edges contributes one rotation,
//   - a piece whose opposite edges match contributes two,
//   - anything else contributes all four.
func BuildRotations[M mask.Bits[M]](s *Store[M], ps pieces.List) {
	var (
		g       = s.Geometry()
		corners = 0
		zero    M
	)

	for num, p := range ps {
		var (
			m = zero.With(uint(num))
			e = [4]uint64{p.Left, p.Top, p.Right, p.Bottom}
			t [4]Tile[M]
		)
		for k := range t {
			t[k] = New(g, e[k], e[(k+3)%4], e[(k+2)%4], e[(k+1)%4], m)
		}
		sort.Slice(t[:], func(i, j int) bool { return t[i].less(t[j]) })

		switch {
		case t[0].Left(g) == 0 && t[0].Top(g) == 0:
			if corners == 0 {
				s.InsertAll(t[:1])
			} else {
				s.InsertAll(t[1:])
			}
			corners++

		case t[0].Left(g) == t[0].Right(g) && t[0].Top(g) == t[0].Bottom(g):
			if t[0].Left(g) == t[0].Top(g) {
				s.InsertAll(t[:1])
			} else {
				// sorted rotations come in two identical pairs
				s.InsertAll([]Tile[M]{t[0], t[2]})
			}

		default:
			s.InsertAll(t[:])
		}
	}

	Log.WithField("tiles", s.Len()).Debug("built piece rotations")
}
