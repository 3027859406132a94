package engine

import "xiangqi/internal/xiangqi"

// Evaluate 从红方视角：score = 红方子力 - 黑方子力，子力价值随对局阶段变化
func Evaluate(pos *xiangqi.Position, plies int) int {
	ph := xiangqi.PhaseOf(&pos.Board, plies)
	score := 0
	for sq, pc := range pos.Board.Squares {
		if pc == xiangqi.NoPiece {
			continue
		}
		v := pc.Value(ph, xiangqi.Square(sq))
		if pc.Color() == xiangqi.Red {
			score += v
		} else {
			score -= v
		}
	}
	return score
}
