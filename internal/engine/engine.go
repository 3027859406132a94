package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"xiangqi/internal/xiangqi"
)

var ErrNoMoves = errors.New("engine: side to move has no legal moves")

// Request is what a move generator gets to see of a game: the board as FEN, who
// moves, how many half-moves have been played and the last one. Turn identifies
// the request within its game.
type Request struct {
	FEN        string        `json:"fen"`
	SideToMove xiangqi.Color `json:"side_to_move"`
	MoveCount  int           `json:"move_count"`
	LastMove   *xiangqi.Move `json:"last_move,omitempty"`
	Turn       uint64        `json:"turn,omitempty"` // 对局内请求序号
}

// Proposal is a move suggested by a Mover. The session re-validates it before
// committing anything.
type Proposal struct {
	From  xiangqi.Square `json:"from"`
	To    xiangqi.Square `json:"to"`
	Piece xiangqi.Piece  `json:"piece"`
}

// Mover proposes the next move for a position.
type Mover interface {
	ProposeMove(ctx context.Context, req Request) (Proposal, error)
}

// MoverFunc adapts a plain function to Mover.
type MoverFunc func(ctx context.Context, req Request) (Proposal, error)

func (f MoverFunc) ProposeMove(ctx context.Context, req Request) (Proposal, error) {
	return f(ctx, req)
}

type Engine struct {
	cfg SearchConfig

	mu    sync.Mutex // 保护 tt
	tt    map[uint64]ttEntry
	nodes int64
}

func NewEngine(cfg SearchConfig) *Engine {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultDepth
	}
	return &Engine{
		cfg: cfg,
		tt:  make(map[uint64]ttEntry, 1<<14),
	}
}

// ProposeMove decodes the request and searches it. SideToMove in the request wins
// over the FEN's own field.
func (e *Engine) ProposeMove(ctx context.Context, req Request) (Proposal, error) {
	pos, err := xiangqi.DecodePosition(req.FEN)
	if err != nil {
		return Proposal{}, fmt.Errorf("engine: %w", err)
	}
	if req.SideToMove == xiangqi.Red || req.SideToMove == xiangqi.Black {
		pos.SideToMove = req.SideToMove
		pos.Hash = pos.CalculateHash()
	}

	res, err := e.Search(ctx, pos, req.MoveCount)
	if err != nil {
		return Proposal{}, err
	}
	return Proposal{
		From:  res.BestMove.From,
		To:    res.BestMove.To,
		Piece: res.BestMove.Piece,
	}, nil
}
