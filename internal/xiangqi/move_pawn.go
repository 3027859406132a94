package xiangqi

// 兵：未过河只能前进一格；过河后可左右平移一格；永不后退
func genPawnTargets(b *Board, from Square, side Color, out *[]Square) {
	row, col := from.Row(), from.Col()

	if r := row + pawnDir(side); InBoard(r, col) && b.canLand(r, col, side) {
		*out = append(*out, NewSquare(r, col))
	}

	if !crossedRiver(side, row) {
		return
	}
	for _, dc := range [2]int{-1, +1} {
		c := col + dc
		if InBoard(row, c) && b.canLand(row, c, side) {
			*out = append(*out, NewSquare(row, c))
		}
	}
}
