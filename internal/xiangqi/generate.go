package xiangqi

// targets appends every square the piece on from reaches under its movement rule,
// excluding squares held by its own side. With attacks set the General uses the
// flying-general file instead of its palace steps; every other piece attacks
// exactly where it moves.
func (b *Board) targets(from Square, attacks bool, out *[]Square) {
	pc := b.Squares[from]
	side := pc.Color()
	switch pc.Type() {
	case General:
		if attacks {
			genFlyingGeneralTargets(b, from, side, out)
		} else {
			genGeneralTargets(b, from, side, out)
		}
	case Advisor:
		genAdvisorTargets(b, from, side, out)
	case Elephant:
		genElephantTargets(b, from, side, out)
	case Horse:
		genHorseTargets(b, from, side, out)
	case Chariot:
		genChariotTargets(b, from, side, out)
	case Cannon:
		genCannonTargets(b, from, side, out)
	case Pawn:
		genPawnTargets(b, from, side, out)
	}
}

// RawMoves 伪合法走法：只看棋子走法规则，不管自己是否被将军。
func (b *Board) RawMoves(sq Square) []Move {
	pc := b.PieceAt(sq)
	if pc == NoPiece {
		return nil
	}
	var buf [32]Square
	tos := buf[:0]
	b.targets(sq, false, &tos)

	moves := make([]Move, 0, len(tos))
	for _, to := range tos {
		moves = append(moves, Move{From: sq, To: to, Piece: pc, Captured: b.Squares[to]})
	}
	return moves
}

// LegalMovesFrom 合法走法：在 RawMoves 基础上去掉走后自己被将军或王对脸的着法。
// 顺序与 RawMoves 一致。
func (b *Board) LegalMovesFrom(sq Square) []Move {
	moves := b.RawMoves(sq)
	if len(moves) == 0 {
		return moves
	}
	scratch := *b
	side := moves[0].Piece.Color()
	out := moves[:0]
	for _, mv := range moves {
		if scratch.keepsGeneralSafe(mv, side) {
			out = append(out, mv)
		}
	}
	return out
}

// AllLegalMoves 收集 c 一方全部合法走法，按格子顺序。
func (b *Board) AllLegalMoves(c Color) []Move {
	var out []Move
	for sq := Square(0); sq < NumSquares; sq++ {
		pc := b.Squares[sq]
		if pc == NoPiece || pc.Color() != c {
			continue
		}
		out = append(out, b.LegalMovesFrom(sq)...)
	}
	return out
}

// HasLegalMove is AllLegalMoves(c) != empty without building the list.
func (b *Board) HasLegalMove(c Color) bool {
	scratch := *b
	for sq := Square(0); sq < NumSquares; sq++ {
		pc := b.Squares[sq]
		if pc == NoPiece || pc.Color() != c {
			continue
		}
		for _, mv := range b.RawMoves(sq) {
			if scratch.keepsGeneralSafe(mv, c) {
				return true
			}
		}
	}
	return false
}

// keepsGeneralSafe plays mv on b, tests it, and takes it back.
func (b *Board) keepsGeneralSafe(mv Move, side Color) bool {
	b.makeMove(mv)
	ok := !b.GeneralsFacing() && !b.IsInCheck(side)
	b.unmakeMove(mv)
	return ok
}
