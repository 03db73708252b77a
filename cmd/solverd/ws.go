package main

import (
	"bytes"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/rblankley/solver2/pieces"
	"github.com/rblankley/solver2/solver"
)

var upgrader websocket.Upgrader

// SolveFrame is one message of a streamed solve: every solution as it
// is found, then a final frame carrying the result summary.
type SolveFrame struct {
	Solution [][]int        `json:"solution,omitempty"`
	Result   *solver.Result `json:"result,omitempty"`
}

// handleSolveWs streams a solve over a websocket. Parameters arrive in
// the query string as for POST /v1/solve; the first text message holds
// the pieces.
func handleSolveWs(w http.ResponseWriter, r *http.Request) {
	var params SolveParams
	if err := decoder.Decode(&params, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if params.Width < 2 || params.Height < 2 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("upgrade: ", err)
		return
	}
	defer c.Close()

	mt, message, err := c.ReadMessage()
	if err != nil {
		if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
			log.Warn("read: ", err)
		}
		return
	}
	if mt != websocket.TextMessage {
		return
	}

	ps, err := pieces.Parse(bytes.NewReader(message))
	if err != nil || len(ps) > config.MaxPieces {
		c.WriteJSON(SolveFrame{})
		return
	}

	log.WithFields(map[string]any{
		"params": params,
		"pieces": len(ps),
	}).Info("streamed solve request")

	// solutions are discovered on solver goroutines; funnel them into
	// the single connection writer here
	solutions := make(chan [][]int, 64)

	opt := params.options()
	opt.OnSolution = func(sol [][]int) { solutions <- sol }

	done := make(chan *solver.Result, 1)
	go func() {
		defer close(solutions)
		res, err := solver.Run(ps, opt)
		if err != nil {
			log.Error("solve: ", err)
		}
		done <- res
	}()

	for sol := range solutions {
		if err := c.WriteJSON(SolveFrame{Solution: sol}); err != nil {
			log.Error("write: ", err)
			return
		}
	}

	if res := <-done; res != nil {
		if err := c.WriteJSON(SolveFrame{Result: res}); err != nil {
			log.Error("write: ", err)
		}
	}
}
