package xiangqi

var (
	orthoDirs = [4][2]int{{-1, 0}, {+1, 0}, {0, -1}, {0, +1}}
	diagDirs  = [4][2]int{{-1, -1}, {-1, +1}, {+1, -1}, {+1, +1}}
)

// canLand: 空格或敌子
func (b *Board) canLand(row, col int, side Color) bool {
	dst := b.Squares[NewSquare(row, col)]
	return dst == NoPiece || dst.Color() != side
}

// 车：横竖直走，遇子即停，敌子可吃
func genChariotTargets(b *Board, from Square, side Color, out *[]Square) {
	row, col := from.Row(), from.Col()
	for _, d := range orthoDirs {
		r, c := row+d[0], col+d[1]
		for InBoard(r, c) {
			to := NewSquare(r, c)
			pc := b.Squares[to]
			if pc == NoPiece {
				*out = append(*out, to)
			} else {
				if pc.Color() != side {
					*out = append(*out, to)
				}
				break
			}
			r += d[0]
			c += d[1]
		}
	}
}

// 炮：不吃子时同车；吃子须隔一子（炮架）
func genCannonTargets(b *Board, from Square, side Color, out *[]Square) {
	row, col := from.Row(), from.Col()
	for _, d := range orthoDirs {
		r, c := row+d[0], col+d[1]

		// 走子阶段：直到第一个棋子（炮架）
		for InBoard(r, c) {
			to := NewSquare(r, c)
			r += d[0]
			c += d[1]
			if b.Squares[to] != NoPiece {
				break
			}
			*out = append(*out, to)
		}

		// 吃子阶段：越过炮架，遇到第一子可吃
		for InBoard(r, c) {
			to := NewSquare(r, c)
			pc := b.Squares[to]
			if pc != NoPiece {
				if pc.Color() != side {
					*out = append(*out, to)
				}
				break
			}
			r += d[0]
			c += d[1]
		}
	}
}

// 相：田字，塞象眼不能走，不过河
func genElephantTargets(b *Board, from Square, side Color, out *[]Square) {
	row, col := from.Row(), from.Col()
	for _, d := range diagDirs {
		r, c := row+2*d[0], col+2*d[1]
		if !InBoard(r, c) || !ownHalf(side, r) {
			continue
		}
		if b.Squares[NewSquare(row+d[0], col+d[1])] != NoPiece {
			continue
		}
		if b.canLand(r, c, side) {
			*out = append(*out, NewSquare(r, c))
		}
	}
}

// 士：九宫内斜走一格
func genAdvisorTargets(b *Board, from Square, side Color, out *[]Square) {
	row, col := from.Row(), from.Col()
	for _, d := range diagDirs {
		r, c := row+d[0], col+d[1]
		if !inPalace(side, r, c) {
			continue
		}
		if b.canLand(r, c, side) {
			*out = append(*out, NewSquare(r, c))
		}
	}
}

// 将：九宫内上下左右一格
func genGeneralTargets(b *Board, from Square, side Color, out *[]Square) {
	row, col := from.Row(), from.Col()
	for _, d := range orthoDirs {
		r, c := row+d[0], col+d[1]
		if !inPalace(side, r, c) {
			continue
		}
		if b.canLand(r, c, side) {
			*out = append(*out, NewSquare(r, c))
		}
	}
}

// 飞将：只用于判断将军。沿本列上下扫描，直到第一个棋子为止的格子都算被攻击。
// 这不是可以走的着法。
func genFlyingGeneralTargets(b *Board, from Square, side Color, out *[]Square) {
	row, col := from.Row(), from.Col()
	for _, dr := range [2]int{-1, +1} {
		for r := row + dr; InBoard(r, col); r += dr {
			to := NewSquare(r, col)
			pc := b.Squares[to]
			if pc == NoPiece {
				*out = append(*out, to)
				continue
			}
			if pc.Color() != side {
				*out = append(*out, to)
			}
			break
		}
	}
}
