package xiangqi

import (
	"strings"
)

// Board is a fixed-size array so it copies by value and compares with ==.
type Board struct {
	Squares [NumSquares]Piece
}

// PieceAt returns the piece on sq, or NoPiece. sq must be on the board.
func (b *Board) PieceAt(sq Square) Piece {
	mustBeOnBoard(sq)
	return b.Squares[sq]
}

// Put places p on sq, replacing whatever was there.
func (b *Board) Put(sq Square, p Piece) {
	mustBeOnBoard(sq)
	b.Squares[sq] = p
}

// FindGeneral scans the board for c's General.
func (b *Board) FindGeneral(c Color) (Square, bool) {
	want := MakePiece(c, General)
	for sq, pc := range b.Squares {
		if pc == want {
			return Square(sq), true
		}
	}
	return NoSquare, false
}

// Count returns the number of pieces on the board.
func (b *Board) Count() int {
	n := 0
	for _, pc := range b.Squares {
		if pc != 0 {
			n++
		}
	}
	return n
}

// makeMove and unmakeMove form the apply/undo pair used for legality checks.
func (b *Board) makeMove(m Move) {
	b.Squares[m.To] = m.Piece
	b.Squares[m.From] = NoPiece
}

func (b *Board) unmakeMove(m Move) {
	b.Squares[m.From] = m.Piece
	b.Squares[m.To] = m.Captured
}

func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			sb.WriteRune(b.Squares[NewSquare(r, c)].Letter())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

const initialBoardString = `rnbakabnr
.........
.c.....c.
p.p.p.p.p
.........
.........
P.P.P.P.P
.C.....C.
.........
RNBAKABNR`

func parseInitialBoard() Board {
	var b Board
	lines := strings.Split(initialBoardString, "\n")
	if len(lines) != Rows {
		panic("initialBoardString 行数不为 10")
	}
	for r, line := range lines {
		if len(line) != Cols {
			panic("initialBoardString 列数不为 9")
		}
		for c, ch := range line {
			if ch == '.' {
				continue
			}
			pc, ok := pieceFromLetter(ch)
			if !ok {
				panic("unknown piece letter: " + string(ch))
			}
			b.Squares[NewSquare(r, c)] = pc
		}
	}
	return b
}

// NewInitialBoard returns the standard opening layout.
func NewInitialBoard() Board {
	return parseInitialBoard()
}
