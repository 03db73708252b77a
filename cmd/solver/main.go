package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/rblankley/solver2/board"
	"github.com/rblankley/solver2/pieces"
	"github.com/rblankley/solver2/solver"
	"github.com/rblankley/solver2/tiles"
)

const version = "2.0.0 rc1"

var log = logrus.New()

var (
	showHelp    = flag.Bool("help", false, "show usage")
	showVersion = flag.Bool("version", false, "show version information")
	runValidate = flag.Bool("validate", false, "run validation suite")

	use2  = flag.Bool("u2", false, "use 1x2 or 2x1 tiles and smaller")
	use4  = flag.Bool("u4", false, "use 2x2 tiles and smaller")
	use8  = flag.Bool("u8", false, "use 2x4 or 4x2 tiles and smaller")
	use16 = flag.Bool("u16", false, "use 4x4 tiles and smaller")
	use32 = flag.Bool("u32", false, "use 4x8 or 8x4 tiles and smaller")

	bt = [10]*bool{
		flag.Bool("bt0", false, "solve a normal board (all edges are borders)"),
		flag.Bool("bt1", false, "solve for bottom left corner only"),
		flag.Bool("bt2", false, "solve for bottom edge only"),
		flag.Bool("bt3", false, "solve for bottom right corner only"),
		flag.Bool("bt4", false, "solve for left edge only"),
		flag.Bool("bt5", false, "solve a board with no borders"),
		flag.Bool("bt6", false, "solve for right edge only"),
		flag.Bool("bt7", false, "solve for top left corner only"),
		flag.Bool("bt8", false, "solve for top edge only"),
		flag.Bool("bt9", false, "solve for top right corner only"),
	}

	printSolutions = flag.Bool("p", false, "print solutions")
	quitFirst      = flag.Bool("q", false, "quit after first solution found")
	randomize      = flag.Bool("r", false, "randomize tiles before solving")
	threaded       = flag.Bool("t", false, "use threaded solving")

	verbose = flag.Bool("v", false, "enable debug logging")
)

func init() {
	flag.Usage = usage
}

func usage() {
	fmt.Println("Usage: solver [options] bw bh pieces")
	fmt.Println()
	fmt.Println("Required:")
	fmt.Println("    bw              board width")
	fmt.Println("    bh              board height")
	fmt.Println("    pieces          filename where pieces are stored")
	fmt.Println()
	fmt.Println("Optional:")
	fmt.Println("    --help          show usage")
	fmt.Println("    --version       show version information")
	fmt.Println("    --validate      run validation suite")
	fmt.Println()
	fmt.Println("    --u2            use 1x2 or 2x1 tiles and smaller")
	fmt.Println("    --u4            use 2x2 tiles and smaller")
	fmt.Println("    --u8            use 2x4 or 4x2 tiles and smaller")
	fmt.Println("    --u16           use 4x4 tiles and smaller")
	fmt.Println("    --u32           use 4x8 or 8x4 tiles and smaller")
	fmt.Println()
	fmt.Println("    --bt0           solve a normal board (all edges are borders)")
	fmt.Println("    --bt1           solve for bottom left corner only")
	fmt.Println("    --bt2           solve for bottom edge only")
	fmt.Println("    --bt3           solve for bottom right corner only")
	fmt.Println("    --bt4           solve for left edge only")
	fmt.Println("    --bt5           solve a board with no borders")
	fmt.Println("    --bt6           solve for right edge only")
	fmt.Println("    --bt7           solve for top left corner only")
	fmt.Println("    --bt8           solve for top edge only")
	fmt.Println("    --bt9           solve for top right corner only")
	fmt.Println()
	fmt.Println("    -p              print solutions")
	fmt.Println("    -q              quit after first solution found")
	fmt.Println("    -r              randomize tiles before solving")
	fmt.Println("    -t              use threaded solving")
	fmt.Println()
}

func setupLogging() {
	level := logrus.WarnLevel
	if *verbose {
		level = logrus.DebugLevel
	}
	for _, l := range []*logrus.Logger{log, tiles.Log, board.Log, solver.Log} {
		l.SetLevel(level)
		l.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	}
}

// maxTileCells maps the --uN options to a super-tile cap. When several
// are given, the smallest cap wins.
func maxTileCells() int {
	switch {
	case *use2:
		return 2
	case *use4:
		return 4
	case *use8:
		return 8
	case *use16:
		return 16
	case *use32:
		return 32
	}
	return 1
}

// borderType maps the --btN options to a keypad number. When several
// are given, the first in keypad reading order (7 8 9 4 5 6 1 2 3)
// wins; --bt0 or no option gives 0.
func borderType() int {
	for _, n := range []int{7, 8, 9, 4, 5, 6, 1, 2, 3} {
		if *bt[n] {
			return n
		}
	}
	return 0
}

func main() {
	flag.Parse()
	setupLogging()

	switch {
	case *runValidate:
		fmt.Print("running validation suite... ")
		if solver.Validate() {
			fmt.Println("success")
		} else {
			fmt.Println("FAIL!")
		}
		return

	case *showVersion:
		fmt.Println("solver", version)
		return
	}

	args := flag.Args()
	if *showHelp || len(args) != 3 {
		usage()
		return
	}

	bw, errw := strconv.Atoi(args[0])
	bh, errh := strconv.Atoi(args[1])
	if errw != nil || errh != nil || bw < 2 || bh < 2 {
		fmt.Println("invalid board size!")
		return
	}

	ps, err := pieces.Load(args[2])
	if err != nil {
		log.WithError(err).Debug("piece load failed")
		fmt.Println("failed to load pieces!")
		return
	}
	fmt.Printf("loaded %d pieces\n", len(ps))

	_, err = solver.Run(ps, solver.Options{
		Width:        bw,
		Height:       bh,
		MaxTileCells: maxTileCells(),
		BorderType:   borderType(),
		Print:        *printSolutions,
		QuitFirst:    *quitFirst,
		Randomize:    *randomize,
		Threaded:     *threaded,
		Output:       os.Stdout,
	})
	switch {
	case errors.Is(err, solver.ErrTooManyPieces):
		fmt.Println("too many pieces!")
	case errors.Is(err, solver.ErrTooManyEdges):
		fmt.Println("too many edges!")
	}
}
