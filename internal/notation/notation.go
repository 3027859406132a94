// Package notation renders moves for people: ICCS coordinates for machines and
// logs, traditional file/direction records for transcripts.
package notation

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/width"

	"xiangqi/internal/xiangqi"
)

// Style 记谱风格
type Style int8

const (
	Chinese Style = iota // 炮二平五
	WXF                  // C2=5
)

func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(s) {
	case "", "chinese", "zh":
		return Chinese, nil
	case "wxf":
		return WXF, nil
	}
	return Chinese, fmt.Errorf("unknown notation style %q", s)
}

// ICCS formats m as four coordinates, e.g. "h2e2".
func ICCS(m xiangqi.Move) string {
	return m.From.String() + m.To.String()
}

// ParseICCS reads "h2e2" or "h2-e2".
func ParseICCS(s string) (from, to xiangqi.Square, err error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "-", "")
	if len(s) != 4 {
		return xiangqi.NoSquare, xiangqi.NoSquare, fmt.Errorf("%w: move %q", xiangqi.ErrInvalidSquare, s)
	}
	if from, err = xiangqi.ParseSquare(s[:2]); err != nil {
		return xiangqi.NoSquare, xiangqi.NoSquare, err
	}
	if to, err = xiangqi.ParseSquare(s[2:]); err != nil {
		return xiangqi.NoSquare, xiangqi.NoSquare, err
	}
	return from, to, nil
}

var (
	chineseNumerals = [10]string{"", "一", "二", "三", "四", "五", "六", "七", "八", "九"}

	wxfLetters = map[xiangqi.PieceType]string{
		xiangqi.General:  "K",
		xiangqi.Advisor:  "A",
		xiangqi.Elephant: "E",
		xiangqi.Horse:    "H",
		xiangqi.Chariot:  "R",
		xiangqi.Cannon:   "C",
		xiangqi.Pawn:     "P",
	}
)

// file 路数：红方从右往左数 1-9，黑方从自己右手数 1-9
func file(c xiangqi.Color, col int) int {
	if c == xiangqi.Red {
		return xiangqi.Cols - col
	}
	return col + 1
}

// number prints n the way side c writes it: Chinese numerals for red, full-width
// digits for black. WXF always uses ASCII.
func number(style Style, c xiangqi.Color, n int) string {
	if style == WXF {
		return strconv.Itoa(n)
	}
	if c == xiangqi.Red && n > 0 && n < len(chineseNumerals) {
		return chineseNumerals[n]
	}
	return width.Widen.String(strconv.Itoa(n))
}

type direction int8

const (
	advance direction = iota
	retreat
	traverse
)

func (d direction) token(style Style) string {
	if style == WXF {
		return [...]string{"+", "-", "="}[d]
	}
	return [...]string{"进", "退", "平"}[d]
}

// Traditional formats m, played on before, in the chosen style.
func Traditional(before *xiangqi.Board, m xiangqi.Move, style Style) (string, error) {
	if !m.From.Valid() || !m.To.Valid() {
		return "", xiangqi.ErrInvalidSquare
	}
	pc := before.PieceAt(m.From)
	if pc == xiangqi.NoPiece {
		return "", fmt.Errorf("%w: %s", xiangqi.ErrNoPiece, m.From)
	}
	side := pc.Color()
	pt := pc.Type()

	var dir direction
	var magnitude int
	fromRow, toRow := m.From.Row(), m.To.Row()
	switch {
	case fromRow == toRow:
		dir = traverse
		magnitude = file(side, m.To.Col())
	default:
		forward := toRow < fromRow
		if side == xiangqi.Black {
			forward = toRow > fromRow
		}
		dir = retreat
		if forward {
			dir = advance
		}
		switch pt {
		case xiangqi.Advisor, xiangqi.Elephant, xiangqi.Horse:
			magnitude = file(side, m.To.Col())
		default:
			magnitude = abs(toRow - fromRow)
		}
	}

	var sb strings.Builder
	sb.WriteString(pieceName(before, m.From, pc, style))
	sb.WriteString(dir.token(style))
	sb.WriteString(number(style, side, magnitude))
	return sb.String(), nil
}

// pieceName 棋子名 + 路数；同一路上有两个以上同种子时改用前/中/后
func pieceName(b *xiangqi.Board, from xiangqi.Square, pc xiangqi.Piece, style Style) string {
	side := pc.Color()
	symbol := pc.Glyph()
	if style == WXF {
		symbol = wxfLetters[pc.Type()]
	}
	plain := func() string {
		return symbol + number(style, side, file(side, from.Col()))
	}

	idx, n := tandemIndex(b, from, pc)
	if n < 2 {
		return plain()
	}
	if style == WXF {
		switch idx {
		case 0:
			return symbol + "+"
		case n - 1:
			return symbol + "-"
		}
		return plain()
	}
	switch {
	case idx == 0:
		return "前" + symbol
	case idx == n-1:
		return "后" + symbol
	case n == 3:
		return "中" + symbol
	}
	return chineseNumerals[idx+1] + symbol
}

// tandemIndex returns the position of from among same-kind pieces on its file,
// counted from the one nearest the enemy, and how many there are. Advisors,
// Elephants and Generals never need it.
func tandemIndex(b *xiangqi.Board, from xiangqi.Square, pc xiangqi.Piece) (int, int) {
	switch pc.Type() {
	case xiangqi.Chariot, xiangqi.Horse, xiangqi.Cannon, xiangqi.Pawn:
	default:
		return 0, 1
	}
	var rows []int
	for r := 0; r < xiangqi.Rows; r++ {
		if b.PieceAt(xiangqi.NewSquare(r, from.Col())) == pc {
			rows = append(rows, r)
		}
	}
	// rows 从小到大；红方行号小的在前，黑方行号大的在前
	idx := 0
	for i, r := range rows {
		if r == from.Row() {
			idx = i
		}
	}
	if pc.Color() == xiangqi.Black {
		idx = len(rows) - 1 - idx
	}
	return idx, len(rows)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
