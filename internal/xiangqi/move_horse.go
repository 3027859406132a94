package xiangqi

// 马走日：终点 + 马腿（长边方向上紧挨的那一格）
var horseLegMoves = [8]struct {
	Dr, Dc int // 终点
	Br, Bc int // 马腿
}{
	{-2, -1, -1, 0},
	{-2, +1, -1, 0},
	{-1, -2, 0, -1},
	{-1, +2, 0, +1},
	{+1, -2, 0, -1},
	{+1, +2, 0, +1},
	{+2, -1, +1, 0},
	{+2, +1, +1, 0},
}

func genHorseTargets(b *Board, from Square, side Color, out *[]Square) {
	row, col := from.Row(), from.Col()
	for _, m := range horseLegMoves {
		r, c := row+m.Dr, col+m.Dc
		if !InBoard(r, c) {
			continue
		}
		if b.Squares[NewSquare(row+m.Br, col+m.Bc)] != NoPiece {
			continue // 蹩马腿
		}
		if b.canLand(r, c, side) {
			*out = append(*out, NewSquare(r, c))
		}
	}
}
