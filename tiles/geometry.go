// Package tiles implements tile rotations, their packed edge layout and
// the indexed stores the solver queries during placement.
//
// A tile packs its edges into two machine words. The out word holds the
// right and bottom edge patterns (right in the low bits), the in word
// holds the left and top patterns in the same layout. A lookup key is
// the in word plus two flag bits recording whether the right and bottom
// edges are borders. Placement cells build their keys with the very
// same layout, so matching a cell against candidate tiles is a single
// bucket lookup.
package tiles

import (
	"strconv"

	"github.com/sirupsen/logrus"
)

// Log collects debug output of this package.
var Log = logrus.New()

// Class fixes how many bits a single cell edge occupies. The highest
// representable value of an edge field is reserved as the "any
// non-border edge" wildcard, so a class supports colors 0..Colors()-2.
type Class struct {
	CellBits uint
}

// The three supported edge classes.
var (
	Class8  = Class{CellBits: 3}
	Class16 = Class{CellBits: 4}
	Class32 = Class{CellBits: 5}
)

// Colors returns the size of the class edge-value space, wildcard
// included.
func (c Class) Colors() uint64 { return 1 << c.CellBits }

// ClassFor selects the smallest class able to hold edges distinct
// values plus the wildcard reserve. ok is false when even Class32 is
// too small.
func ClassFor(edges uint64) (_ Class, ok bool) {
	switch {
	case edges < 8:
		return Class8, true
	case edges < 16:
		return Class16, true
	case edges < 32:
		return Class32, true
	}
	return Class{}, false
}

// Shape is the cell footprint of a tile, W across and H down.
type Shape struct {
	W, H int
}

// Taller returns the shape of two vertically fused tiles.
func (s Shape) Taller() Shape { return Shape{W: s.W, H: 2 * s.H} }

// Wider returns the shape of two horizontally fused tiles.
func (s Shape) Wider() Shape { return Shape{W: 2 * s.W, H: s.H} }

// Cells returns the number of board cells the shape covers.
func (s Shape) Cells() int { return s.W * s.H }

func (s Shape) String() string {
	return strconv.Itoa(s.W) + "x" + strconv.Itoa(s.H)
}

// Geometry is the resolved bit layout for one (class, shape) pair. All
// values the solver's inner loop needs are precomputed.
type Geometry struct {
	Class Class
	Shape Shape

	LeftBits uint // bits in the left and right edge patterns
	TopBits  uint // bits in the top and bottom edge patterns

	MaskLeft   uint64 // left pattern field of a key, also the left wildcard
	MaskTop    uint64 // top pattern field of a key, also the top wildcard
	FlagRight  uint64 // key bit set when the right edge is not a border
	FlagBottom uint64 // key bit set when the bottom edge is not a border
}

// NewGeometry lays out keys for tiles of the given class and shape.
// Left and right patterns span Shape.H cell edges, top and bottom
// patterns span Shape.W.
func NewGeometry(c Class, s Shape) Geometry {
	g := Geometry{
		Class:    c,
		Shape:    s,
		LeftBits: uint(s.H) * c.CellBits,
		TopBits:  uint(s.W) * c.CellBits,
	}
	g.MaskLeft = 1<<g.LeftBits - 1
	g.MaskTop = (1<<g.TopBits - 1) << g.LeftBits
	g.FlagRight = 1 << (g.LeftBits + g.TopBits)
	g.FlagBottom = g.FlagRight << 1
	return g
}

// MaxKeys returns the size of the key space, the upper bound for a
// directly indexed store.
func (g Geometry) MaxKeys() uint64 {
	return ((g.MaskLeft | g.MaskTop) + 1) << 2
}
