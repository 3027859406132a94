package xiangqi

import "fmt"

// Position = 棋盘 + 轮到谁走 + 计数
type Position struct {
	Board         Board
	SideToMove    Color
	HalfmoveClock int // 自上次吃子或动兵以来的半回合数
	Fullmove      int
	Hash          uint64
}

func NewInitialPosition() *Position {
	pos := &Position{
		Board:      NewInitialBoard(),
		SideToMove: Red, // 红先
		Fullmove:   1,
	}
	pos.Hash = pos.CalculateHash()
	return pos
}

// ValidateSetup rejects a position no game can reach: too many pieces of a
// kind, Generals facing each other, or the side that just moved still in check.
// A missing General is left to Evaluate.
func (p *Position) ValidateSetup() error {
	if err := p.Board.ValidateMaterial(); err != nil {
		return err
	}
	if p.Board.GeneralsFacing() {
		return fmt.Errorf("%w: generals face each other", ErrIllegalPosition)
	}
	moved := p.SideToMove.Opponent()
	if _, ok := p.Board.FindGeneral(moved); ok && p.Board.IsInCheck(moved) {
		return fmt.Errorf("%w: %s is in check with %s to move", ErrIllegalPosition, moved, p.SideToMove)
	}
	return nil
}

// LegalMoves 当前走子方的全部合法走法
func (p *Position) LegalMoves() []Move {
	return p.Board.AllLegalMoves(p.SideToMove)
}

// FindLegal resolves from/to into the fully described legal move for the side to
// move. The board is never touched.
func (p *Position) FindLegal(from, to Square) (Move, error) {
	if !from.Valid() || !to.Valid() {
		return Move{}, ErrInvalidSquare
	}
	pc := p.Board.Squares[from]
	if pc == NoPiece {
		return Move{}, ErrNoPiece
	}
	if pc.Color() != p.SideToMove {
		return Move{}, ErrWrongSide
	}
	for _, mv := range p.Board.LegalMovesFrom(from) {
		if mv.To == to {
			return mv, nil
		}
	}
	return Move{}, ErrIllegalMove
}

// ApplyMove 走子：默认传进来的是合法招（由上层检查）。返回新局面，原局面不变。
// Piece and Captured are read from the board, not trusted from m.
func (p *Position) ApplyMove(m Move) (*Position, bool) {
	if !m.From.Valid() || !m.To.Valid() || m.From == m.To {
		return nil, false
	}
	pc := p.Board.Squares[m.From]
	if pc == NoPiece || pc.Color() != p.SideToMove {
		return nil, false
	}
	captured := p.Board.Squares[m.To]
	if captured != NoPiece && captured.Color() == pc.Color() {
		return nil, false
	}

	np := *p
	np.Board.Squares[m.To] = pc
	np.Board.Squares[m.From] = NoPiece
	np.SideToMove = p.SideToMove.Opponent()
	if captured != NoPiece || pc.Type() == Pawn {
		np.HalfmoveClock = 0
	} else {
		np.HalfmoveClock = p.HalfmoveClock + 1
	}
	if p.SideToMove == Black {
		np.Fullmove = p.Fullmove + 1
	}

	// 增量 Zobrist：移除 from 的子、移除被吃子（若有）、加入 to 的子、切换走子方。
	h := p.EnsureHash()
	h ^= pieceHashKey(pc, m.From)
	if captured != NoPiece {
		h ^= pieceHashKey(captured, m.To)
	}
	h ^= pieceHashKey(pc, m.To)
	h ^= zobristSide
	np.Hash = h

	return &np, true
}

// Perft 统计 depth 层合法走法叶子数，用于校验走法生成。
func Perft(p *Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := p.LegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var n uint64
	for _, mv := range moves {
		np, ok := p.ApplyMove(mv)
		if !ok {
			continue
		}
		n += Perft(np, depth-1)
	}
	return n
}
