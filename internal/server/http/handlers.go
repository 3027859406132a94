package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"xiangqi/internal/engine"
	"xiangqi/internal/notation"
	"xiangqi/internal/server/game"
	"xiangqi/internal/storage"
	"xiangqi/internal/xiangqi"
)

// Store receives finished games. *storage.Storage implements it.
type Store interface {
	RecordResult(r storage.Result) (bool, error)
	Stats() (*storage.Stats, error)
}

// Handler 实现 http.Handler，用于 /api/* 路由
type Handler struct {
	games   *game.Manager
	mover   engine.Mover
	store   Store // 可以为 nil
	timeout time.Duration
}

// NewHandler wires the API to its collaborators. store may be nil; timeout 0
// leaves engine calls bounded only by the request context.
func NewHandler(games *game.Manager, mover engine.Mover, store Store, timeout time.Duration) *Handler {
	return &Handler{games: games, mover: mover, store: store, timeout: timeout}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/stats" {
		if r.Method != http.MethodGet && r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.handleStats(w, r)
		return
	}

	var handle func(http.ResponseWriter, *http.Request)
	switch r.URL.Path {
	case "/api/new_game":
		handle = h.handleNewGame
	case "/api/state":
		handle = h.handleState
	case "/api/legal_moves":
		handle = h.handleLegalMoves
	case "/api/play":
		handle = h.handlePlay
	case "/api/ai_move":
		handle = h.handleAiMove
	case "/api/reset":
		handle = h.handleReset
	case "/api/record":
		handle = h.handleRecord
	case "/api/piece_counts":
		handle = h.handlePieceCounts
	default:
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	handle(w, r)
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	var start *xiangqi.Position
	if req.FEN != "" {
		pos, err := xiangqi.DecodePosition(req.FEN)
		if err == nil {
			err = pos.ValidateSetup()
		}
		if err != nil {
			writeError(w, err)
			return
		}
		start = pos
	}

	id := h.games.NewGame(start)
	h.respondState(w, id)
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if !decode(w, r, &req) {
		return
	}
	h.respondState(w, req.GameID)
}

// handlePieceCounts 统计双方子力，并检查是否超出开局数量
func (h *Handler) handlePieceCounts(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if !decode(w, r, &req) {
		return
	}
	var resp PieceCountsResponse
	err := h.games.Do(req.GameID, func(g *game.GameState) error {
		resp = pieceCountsOf(&g.Position().Board)
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, resp)
}

func (h *Handler) handleLegalMoves(w http.ResponseWriter, r *http.Request) {
	var req LegalMovesRequest
	if !decode(w, r, &req) {
		return
	}
	sq, err := req.Square.square()
	if err != nil {
		writeError(w, err)
		return
	}

	var moves []xiangqi.Move
	err = h.games.Do(req.GameID, func(g *game.GameState) error {
		var err error
		moves, err = g.LegalMovesFrom(sq)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, LegalMovesResponse{Moves: movesToDTO(moves)})
}

func (h *Handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if !decode(w, r, &req) {
		return
	}
	from, err := req.From.square()
	if err != nil {
		writeError(w, err)
		return
	}
	to, err := req.To.square()
	if err != nil {
		writeError(w, err)
		return
	}

	err = h.games.Do(req.GameID, func(g *game.GameState) error {
		_, err := g.Play(from, to)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}
	h.recordIfOver(req.GameID)
	h.respondState(w, req.GameID)
}

func (h *Handler) handleAiMove(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if !decode(w, r, &req) {
		return
	}
	if h.mover == nil {
		http.Error(w, "no engine configured", http.StatusServiceUnavailable)
		return
	}

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	start := time.Now()
	rec, err := h.games.EngineTurn(ctx, req.GameID, h.mover)
	if err != nil {
		writeError(w, err)
		return
	}
	log.Printf("game %s: engine played %s in %v", req.GameID, rec.Move, time.Since(start).Round(time.Millisecond))
	h.recordIfOver(req.GameID)
	h.respondState(w, req.GameID)
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if !decode(w, r, &req) {
		return
	}
	err := h.games.Do(req.GameID, func(g *game.GameState) error {
		return g.Reset()
	})
	if err != nil {
		writeError(w, err)
		return
	}
	h.respondState(w, req.GameID)
}

func (h *Handler) handleRecord(w http.ResponseWriter, r *http.Request) {
	var req RecordRequest
	if !decode(w, r, &req) {
		return
	}
	style, err := notation.ParseStyle(req.Style)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var start *xiangqi.Position
	var moves []xiangqi.Move
	err = h.games.Do(req.GameID, func(g *game.GameState) error {
		start, moves = g.Start(), g.Moves()
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}

	lines, err := notation.Transcript(start, moves, style)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := RecordResponse{ICCS: make([]string, 0, len(moves)), Lines: lines}
	for _, mv := range moves {
		resp.ICCS = append(resp.ICCS, notation.ICCS(mv))
	}
	if resp.Lines == nil {
		resp.Lines = []string{}
	}
	writeJSON(w, resp)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeJSON(w, storage.NewStats())
		return
	}
	stats, err := h.store.Stats()
	if err != nil {
		log.Printf("load stats: %v", err)
		http.Error(w, "stats unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, stats)
}

// recordIfOver stores the result once the game has a terminal verdict.
func (h *Handler) recordIfOver(id string) {
	if h.store == nil {
		return
	}
	var res storage.Result
	over := false
	_ = h.games.Do(id, func(g *game.GameState) error {
		v := g.Verdict()
		if v.State.IsTerminal() {
			over = true
			res = storage.NewResult(g.ID, v, len(g.Records()), g.Position())
		}
		return nil
	})
	if !over {
		return
	}
	if _, err := h.store.RecordResult(res); err != nil {
		log.Printf("game %s: record result: %v", id, err)
	}
}

func (h *Handler) respondState(w http.ResponseWriter, id string) {
	var resp StateResponse
	err := h.games.Do(id, func(g *game.GameState) error {
		resp = stateOf(g)
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, resp)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("writeJSON error:", err)
	}
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrGameOver),
		errors.Is(err, game.ErrAwaitingEngine),
		errors.Is(err, game.ErrNotAwaiting),
		errors.Is(err, game.ErrStaleTurn),
		errors.Is(err, engine.ErrNoMoves):
		return http.StatusConflict
	case errors.Is(err, xiangqi.ErrInvalidSquare),
		errors.Is(err, xiangqi.ErrInvalidFEN),
		errors.Is(err, xiangqi.ErrInvalidMaterial),
		errors.Is(err, xiangqi.ErrIllegalPosition),
		errors.Is(err, xiangqi.ErrNoPiece),
		errors.Is(err, xiangqi.ErrWrongSide),
		errors.Is(err, xiangqi.ErrIllegalMove):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
	}
	http.Error(w, err.Error(), code)
}
