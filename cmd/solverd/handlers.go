package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rblankley/solver2/pieces"
	"github.com/rblankley/solver2/solver"
)

// SolveParams are the query parameters of a solve request. The pieces
// themselves travel in the request body, in the same text format the
// CLI reads from file.
type SolveParams struct {
	Width      int  `schema:"width,required"`
	Height     int  `schema:"height,required"`
	MaxCells   int  `schema:"max_cells"`
	BorderType int  `schema:"border_type"`
	Randomize  bool `schema:"randomize"`
	Threaded   bool `schema:"threaded"`
}

func handleStatus(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// parseSolveRequest validates parameters and body of a solve request.
func parseSolveRequest(r *http.Request) (SolveParams, pieces.List, error) {
	var params SolveParams
	if err := decoder.Decode(&params, r.URL.Query()); err != nil {
		return params, nil, err
	}
	if params.Width < 2 || params.Height < 2 {
		return params, nil, errors.New("invalid board size")
	}
	if params.BorderType < 0 || params.BorderType > 9 {
		return params, nil, errors.New("invalid border type")
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return params, nil, err
	}
	ps, err := pieces.Parse(bytes.NewReader(body))
	if err != nil {
		return params, nil, err
	}
	if len(ps) > config.MaxPieces {
		return params, nil, solver.ErrTooManyPieces
	}
	return params, ps, nil
}

func (p SolveParams) options() solver.Options {
	return solver.Options{
		Width:        p.Width,
		Height:       p.Height,
		MaxTileCells: p.MaxCells,
		BorderType:   p.BorderType,
		Randomize:    p.Randomize,
		Threaded:     p.Threaded,
		Output:       io.Discard,
	}
}

func handleSolve(w http.ResponseWriter, r *http.Request) {
	params, ps, err := parseSolveRequest(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(err.Error()))
		return
	}

	log.WithFields(map[string]any{
		"params": params,
		"pieces": len(ps),
	}).Info("solve request")

	res, err := solver.Run(ps, params.options())
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(err.Error()))
		return
	}

	j, err := json.Marshal(res)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	w.Write(j)
}
