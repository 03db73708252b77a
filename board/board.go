// Package board places tile rotations onto a rectangular grid. The
// same backtracker solves the final board and, via the compose boards,
// fuses small tiles into larger ones.
package board

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rblankley/solver2/mask"
	"github.com/rblankley/solver2/tiles"
)

// Log collects debug output of this package.
var Log = logrus.New()

// printMu serializes solution printing across all boards and workers.
var printMu sync.Mutex

// Borders is a bit set of board sides that are borders (edge value 0).
type Borders uint8

const (
	BorderLeft Borders = 1 << iota
	BorderTop
	BorderRight
	BorderBottom
)

// The ten border types. The numbered edge and corner variants follow
// the numeric-keypad layout used by the CLI's --bt flags.
const (
	Normal            = BorderLeft | BorderTop | BorderRight | BorderBottom
	TopLeftCorner     = BorderTop | BorderLeft
	TopEdge           = BorderTop
	TopRightCorner    = BorderTop | BorderRight
	LeftEdge          = BorderLeft
	Middle            = Borders(0)
	RightEdge         = BorderRight
	BottomLeftCorner  = BorderBottom | BorderLeft
	BottomEdge        = BorderBottom
	BottomRightCorner = BorderBottom | BorderRight
)

// Board is a W×H placement grid over one tile store. Cells are laid
// out column-major so the traversal order walks each column top to
// bottom before moving right.
type Board[M mask.Bits[M]] struct {
	// Print writes every solution found, serialized process-wide.
	Print bool
	// QuitFirst raises Stop at the first solution.
	QuitFirst bool
	// Threaded fans the top-level cell out over worker goroutines.
	Threaded bool
	// Stop aborts the search when set. Boards solved together may
	// share one flag.
	Stop *atomic.Bool
	// OnSolution, when set, receives the placed tiles of each solution
	// in traversal order. Called under the print lock.
	OnSolution func([]*tiles.Tile[M])

	width, height int
	store         *tiles.Store[M]
	geo           tiles.Geometry

	cells []Placement[M]
	junk  Placement[M]

	borders   Borders
	solutions uint64

	// emit replaces solution accounting on compose boards.
	emit func(*Board[M])

	printTo io.Writer
}

// New creates a board of w×h cells placing tiles from s, with all four
// sides borders.
func New[M mask.Bits[M]](w, h int, s *tiles.Store[M]) *Board[M] {
	b := &Board[M]{
		Stop:    new(atomic.Bool),
		width:   w,
		height:  h,
		store:   s,
		geo:     s.Geometry(),
		cells:   make([]Placement[M], w*h),
		printTo: os.Stdout,
	}

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			p := b.at(x, y)
			p.left, p.top, p.right, p.bottom = &b.junk, &b.junk, &b.junk, &b.junk
			if x > 0 {
				p.left = b.at(x-1, y)
			}
			if y > 0 {
				p.top = b.at(x, y-1)
			}
			if x < w-1 {
				p.right = b.at(x+1, y)
			}
			if y < h-1 {
				p.bottom = b.at(x, y+1)
			}
		}
	}
	for i := range b.cells {
		if i > 0 {
			b.cells[i].prev = &b.cells[i-1]
		}
		if i < len(b.cells)-1 {
			b.cells[i].next = &b.cells[i+1]
		}
	}

	b.SetBorders(Normal)
	return b
}

// at returns the cell at column x, row y.
func (b *Board[M]) at(x, y int) *Placement[M] {
	return &b.cells[x*b.height+y]
}

// Width returns the board width in cells.
func (b *Board[M]) Width() int { return b.width }

// Height returns the board height in cells.
func (b *Board[M]) Height() int { return b.height }

// Solutions returns the number of solutions found so far.
func (b *Board[M]) Solutions() uint64 { return b.solutions }

// SetBorders seeds every cell's lookup key for the given border type.
// Border sides get pattern 0, open sides the wildcard pattern; the
// right and bottom flag bits never change during search.
func (b *Board[M]) SetBorders(value Borders) {
	b.borders = value

	for x := 0; x < b.width; x++ {
		for y := 0; y < b.height; y++ {
			var key uint64
			if x > 0 || value&BorderLeft == 0 {
				key |= b.geo.MaskLeft
			}
			if y > 0 || value&BorderTop == 0 {
				key |= b.geo.MaskTop
			}
			if x < b.width-1 || value&BorderRight == 0 {
				key |= b.geo.FlagRight
			}
			if y < b.height-1 || value&BorderBottom == 0 {
				key |= b.geo.FlagBottom
			}
			b.at(x, y).lookup = key
		}
	}
}

// clone deep-copies the board for an independent worker. The copy gets
// its own cells with freshly wired internal pointers; only placement
// keys and placed-tile pointers carry over. The Stop flag is shared.
func (b *Board[M]) clone() *Board[M] {
	c := New[M](b.width, b.height, b.store)
	c.Print = b.Print
	c.QuitFirst = b.QuitFirst
	c.Stop = b.Stop
	c.OnSolution = b.OnSolution
	c.emit = b.emit
	c.printTo = b.printTo
	c.borders = b.borders

	for i := range b.cells {
		c.cells[i].lookup = b.cells[i].lookup
		c.cells[i].tile = b.cells[i].tile
	}
	return c
}

// Solve runs the backtracker from the top-left cell. When Threaded is
// set, each candidate tile of the first cell is searched on its own
// deep copy of the board, with concurrency bounded by a multiple of
// the core count.
func (b *Board[M]) Solve() {
	var zero M
	first := &b.cells[0]

	if !b.Threaded {
		b.solveFrom(first, zero)
		return
	}

	var (
		bucket = b.store.At(first.lookup)
		clones = make([]*Board[M], 0, len(bucket))
		g      errgroup.Group
	)
	g.SetLimit(4 * runtime.NumCPU())

	for i := len(bucket) - 1; i >= 0; i-- {
		if b.QuitFirst && b.Stop.Load() {
			break
		}
		t := bucket[i]
		c := b.clone()
		clones = append(clones, c)
		g.Go(func() error {
			if next := c.cells[0].place(c.geo, t); next != nil {
				c.solveFrom(next, zero.Union(t.Mask))
			} else {
				c.complete()
			}
			return nil
		})
	}
	g.Wait()

	for _, c := range clones {
		b.solutions += c.solutions
	}
}

// solveFrom tries every candidate of the cell's bucket whose pieces are
// still free, recursing down the traversal order.
func (b *Board[M]) solveFrom(p *Placement[M], m M) {
	bucket := b.store.At(p.lookup)

	for i := len(bucket) - 1; i >= 0; i-- {
		if b.QuitFirst && b.Stop.Load() {
			return
		}

		t := bucket[i]
		if m.Intersects(t.Mask) {
			continue
		}

		if next := p.place(b.geo, t); next != nil {
			b.solveFrom(next, m.Union(t.Mask))
		} else {
			b.complete()
		}
	}
}

// complete records a filled board.
func (b *Board[M]) complete() {
	if b.emit != nil {
		b.emit(b)
		return
	}

	b.solutions++

	if b.Print || b.OnSolution != nil {
		printMu.Lock()
		if b.Print {
			b.printSolution()
		}
		if b.OnSolution != nil {
			placed := make([]*tiles.Tile[M], len(b.cells))
			for i := range b.cells {
				placed[i] = b.cells[i].tile
			}
			b.OnSolution(placed)
		}
		printMu.Unlock()
	}

	if b.QuitFirst {
		b.Stop.Store(true)
	}
}

// printSolution writes one line per placed tile, listing the 1-based
// numbers of the pieces it is made of, then a separating blank line.
func (b *Board[M]) printSolution() {
	for i := range b.cells {
		fmt.Fprint(b.printTo, "[ ")
		for _, n := range b.cells[i].tile.Mask.Members() {
			fmt.Fprintf(b.printTo, "%d ", n+1)
		}
		fmt.Fprintln(b.printTo, "]")
	}
	fmt.Fprintln(b.printTo)
}

// SetPrintTo redirects solution printing, mainly for tests and the
// daemon.
func (b *Board[M]) SetPrintTo(w io.Writer) { b.printTo = w }
