package xiangqi

import (
	"fmt"
	"strconv"
	"strings"
)

const InitialFEN = "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w - - 0 1"

// Encode 标准象棋 FEN：10 行用“/”隔开，空位用数字压缩；其后为走子方、两个占位符、半回合计数、回合数
func (p *Position) Encode() string {
	var sb strings.Builder
	sb.WriteString(p.Board.placement())
	sb.WriteByte(' ')
	if p.SideToMove == Black {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('w')
	}
	fullmove := p.Fullmove
	if fullmove < 1 {
		fullmove = 1
	}
	fmt.Fprintf(&sb, " - - %d %d", p.HalfmoveClock, fullmove)
	return sb.String()
}

func (b *Board) placement() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for c := 0; c < Cols; c++ {
			pc := b.Squares[NewSquare(r, c)]
			if pc == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteRune(pc.Letter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	return sb.String()
}

// DecodePosition parses a FEN. Only the placement is required; the side to move
// defaults to red and the counters to "0 1".
func DecodePosition(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) == 0 {
		return nil, ErrInvalidFEN
	}
	b, err := decodePlacement(parts[0])
	if err != nil {
		return nil, err
	}
	pos := &Position{Board: b, SideToMove: Red, Fullmove: 1}
	if len(parts) > 1 {
		switch parts[1] {
		case "w", "r":
			pos.SideToMove = Red
		case "b":
			pos.SideToMove = Black
		default:
			return nil, fmt.Errorf("%w: side to move %q", ErrInvalidFEN, parts[1])
		}
	}
	if len(parts) > 4 {
		n, err := strconv.Atoi(parts[4])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: halfmove clock %q", ErrInvalidFEN, parts[4])
		}
		pos.HalfmoveClock = n
	}
	if len(parts) > 5 {
		n, err := strconv.Atoi(parts[5])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: fullmove number %q", ErrInvalidFEN, parts[5])
		}
		pos.Fullmove = n
	}
	pos.Hash = pos.CalculateHash()
	return pos, nil
}

func decodePlacement(s string) (Board, error) {
	var b Board
	rows := strings.Split(s, "/")
	if len(rows) != Rows {
		return b, fmt.Errorf("%w: %d ranks", ErrInvalidFEN, len(rows))
	}
	for r, row := range rows {
		c := 0
		for _, ch := range row {
			if c >= Cols {
				return b, fmt.Errorf("%w: rank %d too long", ErrInvalidFEN, r)
			}
			if ch >= '1' && ch <= '9' {
				c += int(ch - '0')
				continue
			}
			pc, ok := pieceFromLetter(ch)
			if !ok {
				return b, fmt.Errorf("%w: unknown piece %q", ErrInvalidFEN, ch)
			}
			b.Squares[NewSquare(r, c)] = pc
			c++
		}
		if c != Cols {
			return b, fmt.Errorf("%w: rank %d has %d files", ErrInvalidFEN, r, c)
		}
	}
	return b, nil
}
