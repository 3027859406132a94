package xiangqi

// IsSquareAttacked 判断 sq 是否被 by 一方攻击：对方任何一个棋子的攻击范围里有 sq 即可。
// 将帅的攻击范围按飞将规则计算（同列且中间无子），而不是九宫内的一步。
func (b *Board) IsSquareAttacked(sq Square, by Color) bool {
	mustBeOnBoard(sq)
	var buf [32]Square
	for from := Square(0); from < NumSquares; from++ {
		pc := b.Squares[from]
		if pc == NoPiece || pc.Color() != by {
			continue
		}
		targets := buf[:0]
		b.targets(from, true, &targets)
		for _, to := range targets {
			if to == sq {
				return true
			}
		}
	}
	return false
}

// IsInCheck reports whether c's General is attacked. A color without a General
// counts as in check; Evaluate reports that case as KingCaptured before it ever
// consults this predicate.
func (b *Board) IsInCheck(c Color) bool {
	sq, ok := b.FindGeneral(c)
	if !ok {
		return true
	}
	return b.IsSquareAttacked(sq, c.Opponent())
}

// GeneralsFacing reports the illegal "王对脸" position: both Generals present, on
// the same file, nothing between them.
func (b *Board) GeneralsFacing() bool {
	red, ok := b.FindGeneral(Red)
	if !ok {
		return false
	}
	black, ok := b.FindGeneral(Black)
	if !ok {
		return false
	}
	if red.Col() != black.Col() {
		return false
	}

	lo, hi := black.Row(), red.Row()
	if lo > hi {
		lo, hi = hi, lo
	}
	for r := lo + 1; r < hi; r++ {
		if b.Squares[NewSquare(r, red.Col())] != NoPiece {
			return false // 中间有子，不算对脸
		}
	}
	return true
}
