package xiangqi

import "fmt"

const (
	Rows       = 10
	Cols       = 9
	NumSquares = Rows * Cols

	// 楚河汉界在第 4、5 行之间
	riverLastBlackRow = 4
	riverFirstRedRow  = 5
)

// Square indexes the board row-major: row 0 is black's back rank, row 9 red's.
type Square int

const NoSquare Square = -1

// NewSquare builds a square from in-range coordinates. Use SquareAt for input
// that has not been validated.
func NewSquare(row, col int) Square { return Square(row*Cols + col) }

// SquareAt is the checked form of NewSquare.
func SquareAt(row, col int) (Square, error) {
	if !InBoard(row, col) {
		return NoSquare, fmt.Errorf("%w: (%d,%d)", ErrInvalidSquare, row, col)
	}
	return NewSquare(row, col), nil
}

func (s Square) Row() int    { return int(s) / Cols }
func (s Square) Col() int    { return int(s) % Cols }
func (s Square) Valid() bool { return s >= 0 && s < NumSquares }

// String renders the ICCS coordinate: file a-i from red's left, rank 0 at red's
// back rank.
func (s Square) String() string {
	if !s.Valid() {
		return "--"
	}
	return string([]byte{byte('a' + s.Col()), byte('0' + (Rows - 1 - s.Row()))})
}

// ParseSquare reads an ICCS coordinate such as "e0".
func ParseSquare(str string) (Square, error) {
	if len(str) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, str)
	}
	col := int(str[0] - 'a')
	rank := int(str[1] - '0')
	if str[0] < 'a' || str[1] < '0' {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, str)
	}
	return SquareAt(Rows-1-rank, col)
}

func InBoard(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

// 是否在九宫
func inPalace(c Color, row, col int) bool {
	if col < 3 || col > 5 {
		return false
	}
	switch c {
	case Red:
		return row >= 7 && row <= 9
	case Black:
		return row >= 0 && row <= 2
	}
	return false
}

// InPalace reports whether sq lies in c's palace.
func InPalace(sq Square, c Color) bool {
	mustBeOnBoard(sq)
	return inPalace(c, sq.Row(), sq.Col())
}

// 兵的前进方向：红向上(-1)，黑向下(+1)
func pawnDir(c Color) int {
	switch c {
	case Red:
		return -1
	case Black:
		return +1
	}
	return 0
}

// 是否已经过河
func crossedRiver(c Color, row int) bool {
	switch c {
	case Red:
		return row <= riverLastBlackRow
	case Black:
		return row >= riverFirstRedRow
	}
	return false
}

// ownHalf reports whether row is on c's side of the river.
func ownHalf(c Color, row int) bool {
	return !crossedRiver(c, row)
}

func mustBeOnBoard(sq Square) {
	if !sq.Valid() {
		panic(fmt.Sprintf("xiangqi: square %d out of range", int(sq)))
	}
}
