package game

import (
	"errors"
	"time"

	"xiangqi/internal/engine"
	"xiangqi/internal/xiangqi"
)

var (
	ErrGameOver       = errors.New("game is over")
	ErrAwaitingEngine = errors.New("waiting for engine move")
	ErrNotAwaiting    = errors.New("no engine move was requested")
	ErrStaleTurn      = errors.New("engine move answers an earlier request")
)

// Record is one committed half-move.
type Record struct {
	Ply   int           `json:"ply"`
	Move  xiangqi.Move  `json:"move"`
	Mover xiangqi.Color `json:"mover"`
	FEN   string        `json:"fen"` // 走完之后的局面
}

// GameState is one game: its own board, history and turn discipline. It is not
// safe for concurrent use; Manager serialises access per game.
type GameState struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	start   *xiangqi.Position
	pos     *xiangqi.Position
	history *xiangqi.History
	records []Record
	verdict xiangqi.Verdict

	// 等待引擎出招期间拒绝其它走子
	awaitingEngine bool
	turn           uint64 // 每次 BeginEngineTurn 加一
}

func NewGameState(id string, start *xiangqi.Position) *GameState {
	if start == nil {
		start = xiangqi.NewInitialPosition()
	}
	now := time.Now()
	g := &GameState{ID: id, CreatedAt: now, start: start}
	g.reset(now)
	return g
}

func (g *GameState) reset(now time.Time) {
	pos := *g.start
	pos.EnsureHash()
	g.pos = &pos
	g.history = xiangqi.NewHistory(g.pos)
	g.records = nil
	g.awaitingEngine = false
	g.verdict = xiangqi.Evaluate(g.pos, g.history)
	g.UpdatedAt = now
}

// Reset returns the game to its starting position. It is refused while an
// engine move is pending.
func (g *GameState) Reset() error {
	if g.awaitingEngine {
		return ErrAwaitingEngine
	}
	g.reset(time.Now())
	return nil
}

// Position returns a copy of the current position.
func (g *GameState) Position() *xiangqi.Position {
	pos := *g.pos
	return &pos
}

func (g *GameState) Start() *xiangqi.Position {
	pos := *g.start
	return &pos
}

func (g *GameState) Verdict() xiangqi.Verdict { return g.verdict }

func (g *GameState) AwaitingEngine() bool { return g.awaitingEngine }

func (g *GameState) Records() []Record {
	return append([]Record(nil), g.records...)
}

func (g *GameState) Moves() []xiangqi.Move {
	moves := make([]xiangqi.Move, len(g.records))
	for i, r := range g.records {
		moves[i] = r.Move
	}
	return moves
}

func (g *GameState) LastMove() *xiangqi.Move {
	if len(g.records) == 0 {
		return nil
	}
	mv := g.records[len(g.records)-1].Move
	return &mv
}

// LegalMovesFrom lists the moves of the piece on sq. Pieces of the side not on
// move, empty squares and finished games yield nothing.
func (g *GameState) LegalMovesFrom(sq xiangqi.Square) ([]xiangqi.Move, error) {
	if !sq.Valid() {
		return nil, xiangqi.ErrInvalidSquare
	}
	if g.verdict.State.IsTerminal() {
		return nil, nil
	}
	pc := g.pos.Board.PieceAt(sq)
	if pc == xiangqi.NoPiece || pc.Color() != g.pos.SideToMove {
		return nil, nil
	}
	return g.pos.Board.LegalMovesFrom(sq), nil
}

// Play commits a human move. A rejected move leaves the game untouched.
func (g *GameState) Play(from, to xiangqi.Square) (Record, error) {
	if err := g.canMove(); err != nil {
		return Record{}, err
	}
	if g.awaitingEngine {
		return Record{}, ErrAwaitingEngine
	}
	return g.commit(from, to)
}

func (g *GameState) canMove() error {
	if g.verdict.State.IsTerminal() {
		return ErrGameOver
	}
	return nil
}

func (g *GameState) commit(from, to xiangqi.Square) (Record, error) {
	ply := len(g.records) + 1
	mv, err := g.pos.FindLegal(from, to)
	if err != nil {
		return Record{}, &xiangqi.MoveError{Ply: ply, From: from, To: to, Err: err}
	}
	mover := g.pos.SideToMove
	next, ok := g.pos.ApplyMove(mv)
	if !ok {
		return Record{}, &xiangqi.MoveError{Ply: ply, From: from, To: to, Err: xiangqi.ErrIllegalMove}
	}

	g.history.RecordMove(g.pos, mv, next)
	g.pos = next
	rec := Record{Ply: ply, Move: mv, Mover: mover, FEN: next.Encode()}
	g.records = append(g.records, rec)
	g.verdict = xiangqi.Evaluate(g.pos, g.history)
	g.UpdatedAt = time.Now()
	return rec, nil
}

// EngineRequest describes the current position for a move generator.
func (g *GameState) EngineRequest() engine.Request {
	return engine.Request{
		FEN:        g.pos.Encode(),
		SideToMove: g.pos.SideToMove,
		MoveCount:  len(g.records),
		LastMove:   g.LastMove(),
	}
}

// BeginEngineTurn marks the game as waiting for an engine move and returns the
// request to send. Until SubmitEngineMove or CancelEngineTurn, Play is refused.
func (g *GameState) BeginEngineTurn() (engine.Request, error) {
	if err := g.canMove(); err != nil {
		return engine.Request{}, err
	}
	if g.awaitingEngine {
		return engine.Request{}, ErrAwaitingEngine
	}
	g.awaitingEngine = true
	g.turn++
	req := g.EngineRequest()
	req.Turn = g.turn
	return req, nil
}

// SubmitEngineMove validates and commits the engine's proposal for the request
// stamped turn. An answer to an earlier request is refused with ErrStaleTurn and
// leaves the pending turn alone; otherwise the waiting flag is cleared whether
// or not the proposal is accepted.
func (g *GameState) SubmitEngineMove(turn uint64, p engine.Proposal) (Record, error) {
	if !g.awaitingEngine {
		return Record{}, ErrNotAwaiting
	}
	if turn != g.turn {
		return Record{}, ErrStaleTurn
	}
	g.awaitingEngine = false
	if err := g.canMove(); err != nil {
		return Record{}, err
	}
	if p.Piece != xiangqi.NoPiece && p.From.Valid() && g.pos.Board.PieceAt(p.From) != p.Piece {
		return Record{}, &xiangqi.MoveError{Ply: len(g.records) + 1, From: p.From, To: p.To, Err: xiangqi.ErrIllegalMove}
	}
	return g.commit(p.From, p.To)
}

// CancelEngineTurn gives up the pending request stamped turn. Other turns are
// left alone.
func (g *GameState) CancelEngineTurn(turn uint64) {
	if turn == g.turn {
		g.awaitingEngine = false
	}
}
