package solver

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rblankley/solver2/board"
	"github.com/rblankley/solver2/pieces"
	"github.com/rblankley/solver2/tiles"
)

func TestMain(m *testing.M) {
	for _, l := range []*logrus.Logger{Log, tiles.Log, board.Log} {
		l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	m.Run()
}

func TestValidate(t *testing.T) {
	assert.True(t, Validate())
}

func TestRunCanonical(t *testing.T) {
	tests := []struct {
		name     string
		maxCells int
		stages   []Stage
	}{
		{
			name:     "1x1 tiles",
			maxCells: 1,
			stages:   []Stage{{Shape: "1x1", Tiles: 58}},
		},
		{
			name:     "up to 1x2 tiles",
			maxCells: 2,
			stages: []Stage{
				{Shape: "1x1", Tiles: 58},
				{Shape: "1x2", Tiles: 316},
			},
		},
		{
			name:     "up to 2x2 tiles",
			maxCells: 4,
			stages: []Stage{
				{Shape: "1x1", Tiles: 58},
				{Shape: "1x2", Tiles: 316},
				{Shape: "2x2", Tiles: 3472},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var buf bytes.Buffer
			res, err := Run(canonicalPieces(), Options{
				Width:        4,
				Height:       4,
				MaxTileCells: test.maxCells,
				Output:       &buf,
			})
			require.NoError(t, err)

			assert.Equal(t, uint64(640), res.Solutions)
			assert.Equal(t, test.stages, res.Stages)
			assert.Contains(t, buf.String(), "1x1: 58 rotations\n")
			assert.Contains(t, buf.String(), "solving...\n")
			assert.Contains(t, buf.String(), "found 640 solutions in")
		})
	}
}

func TestRunThreaded(t *testing.T) {
	var buf bytes.Buffer
	res, err := Run(canonicalPieces(), Options{
		Width:        4,
		Height:       4,
		MaxTileCells: 4,
		Threaded:     true,
		Output:       &buf,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(640), res.Solutions)
}

func TestRunRandomize(t *testing.T) {
	var buf bytes.Buffer
	res, err := Run(canonicalPieces(), Options{
		Width:     4,
		Height:    4,
		Randomize: true,
		Output:    &buf,
	})
	require.NoError(t, err)

	// randomizing reorders buckets but never changes the count
	assert.Equal(t, uint64(640), res.Solutions)
	assert.Contains(t, buf.String(), "randomizing...\n")
}

func TestRunQuitFirst(t *testing.T) {
	var buf bytes.Buffer
	res, err := Run(canonicalPieces(), Options{
		Width:     4,
		Height:    4,
		Print:     true,
		QuitFirst: true,
		Output:    &buf,
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(1), res.Solutions)
	assert.Contains(t, buf.String(), "found 1 solutions in")

	// exactly one printed solution: sixteen single piece tiles
	printed := 0
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.HasPrefix(line, "[ ") {
			printed++
		}
	}
	assert.Equal(t, 16, printed)
}

func TestRunOnSolution(t *testing.T) {
	var solutions [][][]int
	_, err := Run(canonicalPieces(), Options{
		Width:      4,
		Height:     4,
		QuitFirst:  true,
		Output:     new(bytes.Buffer),
		OnSolution: func(sol [][]int) { solutions = append(solutions, sol) },
	})
	require.NoError(t, err)

	require.Len(t, solutions, 1)
	assert.Len(t, solutions[0], 16)
}

func TestRunTooManyPieces(t *testing.T) {
	ps := make(pieces.List, 600)
	_, err := Run(ps, Options{Width: 4, Height: 4, Output: new(bytes.Buffer)})
	assert.ErrorIs(t, err, ErrTooManyPieces)
}

func TestRunTooManyEdges(t *testing.T) {
	ps := pieces.List{{Left: 0, Top: 0, Right: 31, Bottom: 1}}
	_, err := Run(ps, Options{Width: 4, Height: 4, Output: new(bytes.Buffer)})
	assert.ErrorIs(t, err, ErrTooManyEdges)
}

func TestBorderTypeMapping(t *testing.T) {
	tests := []struct {
		bt      int
		borders board.Borders
	}{
		{bt: 0, borders: board.Normal},
		{bt: 1, borders: board.BottomLeftCorner},
		{bt: 2, borders: board.BottomEdge},
		{bt: 3, borders: board.BottomRightCorner},
		{bt: 4, borders: board.LeftEdge},
		{bt: 5, borders: board.Middle},
		{bt: 6, borders: board.RightEdge},
		{bt: 7, borders: board.TopLeftCorner},
		{bt: 8, borders: board.TopEdge},
		{bt: 9, borders: board.TopRightCorner},
	}

	for _, test := range tests {
		opt := Options{BorderType: test.bt}
		assert.Equal(t, test.borders, opt.borders(), "bt %d", test.bt)
	}
}
