// Package pieces loads puzzle pieces from their plain-text file format:
// one piece per line, four whitespace-separated edge values in
// left/top/right/bottom order, lines beginning with `/` are comments.
package pieces

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrNoPieces is returned when a pieces file yields no usable lines.
var ErrNoPieces = errors.New("no pieces")

// Piece holds the four edge values of an input piece. Edge value zero
// marks a board border.
type Piece struct {
	Left, Top, Right, Bottom uint64
}

// List is an ordered collection of pieces. Piece indices are assigned
// in file order starting at zero.
type List []Piece

// EdgeCount returns one past the highest edge value in use.
func (l List) EdgeCount() uint64 {
	var edge uint64
	for _, p := range l {
		edge = max(edge, p.Left, p.Top, p.Right, p.Bottom)
	}
	return edge + 1
}

// Load reads pieces from a file.
func Load(filename string) (List, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("unable to open pieces file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads pieces from r. Lines shorter than 7 characters and
// comment lines are skipped, as are lines with fewer than four values.
func Parse(r io.Reader) (List, error) {
	var (
		list List
		sc   = bufio.NewScanner(r)
	)
	for sc.Scan() {
		line := sc.Text()
		if len(line) < 7 || line[0] == '/' {
			continue
		}
		var (
			p     Piece
			count int
		)
		for _, field := range strings.Fields(line) {
			value, err := strconv.ParseUint(field, 10, 64)
			if err != nil {
				break
			}
			switch count {
			case 0:
				p.Left = value
			case 1:
				p.Top = value
			case 2:
				p.Right = value
			case 3:
				p.Bottom = value
			}
			count++
		}
		if count >= 4 {
			list = append(list, p)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrNoPieces
	}
	return list, nil
}
