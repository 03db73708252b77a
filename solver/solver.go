// Package solver drives a full solve: it sizes the edge class and
// piece mask for the input, chains the pre-composition stores up to the
// requested super-tile cap, and runs the board (plus its transposed
// twin for non-square dimensions).
package solver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rblankley/solver2/board"
	"github.com/rblankley/solver2/mask"
	"github.com/rblankley/solver2/pieces"
	"github.com/rblankley/solver2/tiles"
)

// Log collects debug output of this package.
var Log = logrus.New()

// Capacity limits of the largest supported configuration.
var (
	ErrTooManyPieces = errors.New("too many pieces")
	ErrTooManyEdges  = errors.New("too many edges")
)

// Options selects what to solve and how.
type Options struct {
	// Width and Height of the board, both at least 2.
	Width, Height int

	// MaxTileCells caps pre-composed super-tiles by total cell count
	// (1, 2, 4, 8, 16 or 32). Zero or one means no pre-composition.
	MaxTileCells int

	// BorderType selects the border policy: 0 solves a normal board
	// with all four borders, 1-9 pick the edge or corner context laid
	// out like the numeric keypad.
	BorderType int

	Print     bool
	QuitFirst bool
	Randomize bool
	Threaded  bool

	// Output receives the progress lines; defaults to stdout.
	Output io.Writer

	// OnSolution, when set, receives the piece indices of every placed
	// tile of each solution, in traversal order.
	OnSolution func([][]int)
}

func (o Options) borders() board.Borders {
	switch o.BorderType {
	case 1:
		return board.BottomLeftCorner
	case 2:
		return board.BottomEdge
	case 3:
		return board.BottomRightCorner
	case 4:
		return board.LeftEdge
	case 5:
		return board.Middle
	case 6:
		return board.RightEdge
	case 7:
		return board.TopLeftCorner
	case 8:
		return board.TopEdge
	case 9:
		return board.TopRightCorner
	}
	return board.Normal
}

// Stage records how many rotations one tile-store build produced.
type Stage struct {
	Shape string `json:"shape"`
	Tiles int    `json:"tiles"`
}

// Result summarizes a finished solve.
type Result struct {
	Pieces    int           `json:"pieces"`
	Stages    []Stage       `json:"stages"`
	Solutions uint64        `json:"solutions"`
	Elapsed   time.Duration `json:"elapsed"`
}

// Run solves the puzzle described by ps and opt. It returns
// ErrTooManyPieces above 512 pieces and ErrTooManyEdges when the
// highest edge value is 31 or more (the top value of each class is
// reserved for the wildcard).
func Run(ps pieces.List, opt Options) (*Result, error) {
	switch n := len(ps); {
	case n <= 32:
		return run[mask.M32](ps, opt)
	case n <= 64:
		return run[mask.M64](ps, opt)
	case n <= 128:
		return run[mask.M128](ps, opt)
	case n <= 256:
		return run[mask.M256](ps, opt)
	case n <= 512:
		return run[mask.M512](ps, opt)
	}
	return nil, ErrTooManyPieces
}

func run[M mask.Bits[M]](ps pieces.List, opt Options) (*Result, error) {
	out := opt.Output
	if out == nil {
		out = os.Stdout
	}

	class, ok := tiles.ClassFor(ps.EdgeCount())
	if !ok {
		return nil, ErrTooManyEdges
	}

	Log.WithFields(logrus.Fields{
		"pieces":    len(ps),
		"edge_bits": class.CellBits,
		"board":     fmt.Sprintf("%dx%d", opt.Width, opt.Height),
	}).Debug("starting solve")

	res := &Result{Pieces: len(ps)}

	lenMax := max(opt.Width, opt.Height)
	lenMin := min(opt.Width, opt.Height)
	square := lenMax == lenMin

	useCells := max(opt.MaxTileCells, 1)

	need2 := lenMax >= 4 && lenMax%2 == 0 && useCells >= 2
	need4 := need2 && lenMin >= 4 && lenMin%2 == 0 && useCells >= 4
	need8 := need4 && lenMax >= 8 && lenMax%4 == 0 && useCells >= 8
	need16 := need8 && lenMin >= 8 && lenMin%4 == 0 && useCells >= 16
	need32 := need16 && lenMax >= 16 && lenMax%8 == 0 && useCells >= 32

	shape := func(w, h int) tiles.Geometry {
		return tiles.NewGeometry(class, tiles.Shape{W: w, H: h})
	}
	report := func(s *tiles.Store[M]) {
		stage := Stage{Shape: s.Geometry().Shape.String(), Tiles: s.Len()}
		res.Stages = append(res.Stages, stage)
		fmt.Fprintf(out, "%s: %d rotations\n", stage.Shape, stage.Tiles)
	}

	// build rotations, smallest tiles first
	var st1x2, st2x1, st2x2, st2x4, st4x2, st4x4, st4x8, st8x4 *tiles.Store[M]

	st1x1 := tiles.NewStore[M](shape(1, 1))
	tiles.BuildRotations(st1x1, ps)
	report(st1x1)

	if need2 {
		st1x2 = tiles.NewStore[M](shape(1, 2))
		board.ComposeVertical(st1x1, st1x2, opt.Threaded)
		report(st1x2)
	}
	if need2 && !need4 && !square {
		st2x1 = tiles.NewStore[M](shape(2, 1))
		board.ComposeHorizontal(st1x1, st2x1, opt.Threaded)
		report(st2x1)
	}
	if need4 {
		st2x2 = tiles.NewStore[M](shape(2, 2))
		board.ComposeHorizontal(st1x2, st2x2, opt.Threaded)
		report(st2x2)
	}
	if need8 {
		st2x4 = tiles.NewStore[M](shape(2, 4))
		board.ComposeVertical(st2x2, st2x4, opt.Threaded)
		report(st2x4)
	}
	if need8 && !need16 && !square {
		st4x2 = tiles.NewStore[M](shape(4, 2))
		board.ComposeHorizontal(st2x2, st4x2, opt.Threaded)
		report(st4x2)
	}
	if need16 {
		st4x4 = tiles.NewStore[M](shape(4, 4))
		board.ComposeHorizontal(st2x4, st4x4, opt.Threaded)
		report(st4x4)
	}
	if need32 {
		st4x8 = tiles.NewStore[M](shape(4, 8))
		board.ComposeVertical(st4x4, st4x8, opt.Threaded)
		report(st4x8)
	}
	if need32 && !square {
		st8x4 = tiles.NewStore[M](shape(8, 4))
		board.ComposeHorizontal(st4x4, st8x4, opt.Threaded)
		report(st8x4)
	}

	nonEmpty := func(s *tiles.Store[M]) bool { return s != nil && s.Len() > 0 }
	randomize := func(ss ...*tiles.Store[M]) {
		for _, s := range ss {
			if s != nil {
				s.Randomize()
			}
		}
	}

	// randomize only the store pair the boards will use
	if opt.Randomize {
		fmt.Fprintln(out, "randomizing...")
		switch {
		case nonEmpty(st4x8):
			randomize(st4x8, st8x4)
		case nonEmpty(st4x4):
			randomize(st4x4)
		case nonEmpty(st2x4):
			randomize(st2x4, st4x2)
		case nonEmpty(st2x2):
			randomize(st2x2)
		case nonEmpty(st1x2):
			randomize(st1x2, st2x1)
		default:
			randomize(st1x1)
		}
	}

	// board over the largest store built, plus the transposed
	// dimensions when the board is not square
	var boards []*board.Board[M]

	addBoard := func(w, h int, s *tiles.Store[M]) {
		boards = append(boards, board.New[M](w, h, s))
	}

	switch {
	case nonEmpty(st4x8):
		addBoard(lenMin/4, lenMax/8, st4x8)
		if !square {
			addBoard(lenMax/8, lenMin/4, st8x4)
		}
	case nonEmpty(st4x4):
		addBoard(lenMin/4, lenMax/4, st4x4)
		if !square {
			addBoard(lenMax/4, lenMin/4, st4x4)
		}
	case nonEmpty(st2x4):
		addBoard(lenMin/2, lenMax/4, st2x4)
		if !square {
			addBoard(lenMax/4, lenMin/2, st4x2)
		}
	case nonEmpty(st2x2):
		addBoard(lenMin/2, lenMax/2, st2x2)
		if !square {
			addBoard(lenMax/2, lenMin/2, st2x2)
		}
	case nonEmpty(st1x2):
		addBoard(lenMin, lenMax/2, st1x2)
		if !square {
			addBoard(lenMax/2, lenMin, st2x1)
		}
	default:
		addBoard(lenMin, lenMax, st1x1)
		if !square {
			addBoard(lenMax, lenMin, st1x1)
		}
	}

	stop := boards[0].Stop
	for _, b := range boards {
		b.Print = opt.Print
		b.QuitFirst = opt.QuitFirst
		b.Threaded = opt.Threaded
		b.Stop = stop
		b.SetBorders(opt.borders())
		b.SetPrintTo(out)
		if opt.OnSolution != nil {
			b.OnSolution = func(placed []*tiles.Tile[M]) {
				sol := make([][]int, len(placed))
				for i, t := range placed {
					sol[i] = t.Mask.Members()
				}
				opt.OnSolution(sol)
			}
		}
	}

	fmt.Fprintln(out, "solving...")
	start := time.Now()

	if !opt.Threaded {
		for _, b := range boards {
			b.Solve()
		}
	} else {
		var g errgroup.Group
		for _, b := range boards {
			g.Go(func() error {
				b.Solve()
				return nil
			})
		}
		g.Wait()
	}

	res.Elapsed = time.Since(start)
	for _, b := range boards {
		res.Solutions += b.Solutions()
	}

	fmt.Fprintf(out, "found %d solutions in %d ms\n",
		res.Solutions, res.Elapsed.Milliseconds())

	return res, nil
}
