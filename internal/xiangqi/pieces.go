package xiangqi

import (
	"fmt"
	"unicode"
)

// FEN 字母（小写为黑）。h/e 是旧记谱里马、象的写法，只在解析时接受。
var letterToPieceType = map[rune]PieceType{
	'k': General,
	'a': Advisor,
	'b': Elephant,
	'e': Elephant,
	'n': Horse,
	'h': Horse,
	'r': Chariot,
	'c': Cannon,
	'p': Pawn,
}

var pieceTypeToLetter = [numPieceTypes]rune{'.', 'k', 'a', 'b', 'n', 'r', 'c', 'p'}

var pieceGlyphs = [2][numPieceTypes]string{
	Red:   {"", "帥", "仕", "相", "傌", "俥", "炮", "兵"},
	Black: {"", "將", "士", "象", "馬", "車", "砲", "卒"},
}

func pieceFromLetter(ch rune) (Piece, bool) {
	pt, ok := letterToPieceType[unicode.ToLower(ch)]
	if !ok {
		return NoPiece, false
	}
	if unicode.IsUpper(ch) {
		return MakePiece(Red, pt), true
	}
	return MakePiece(Black, pt), true
}

// Letter returns the FEN letter: upper case for red, '.' when empty.
func (p Piece) Letter() rune {
	pt := p.Type()
	if p == NoPiece || pt >= numPieceTypes {
		return '.'
	}
	ch := pieceTypeToLetter[pt]
	if p.Color() == Red {
		return unicode.ToUpper(ch)
	}
	return ch
}

// Glyph returns the traditional character for the piece.
func (p Piece) Glyph() string {
	pt := p.Type()
	if p == NoPiece || pt >= numPieceTypes {
		return ""
	}
	return pieceGlyphs[p.Color()][pt]
}

// Phase 对局阶段，决定子力价值
type Phase int8

const (
	Opening Phase = iota
	Midgame
	Endgame
)

func (ph Phase) String() string {
	switch ph {
	case Opening:
		return "opening"
	case Midgame:
		return "midgame"
	}
	return "endgame"
}

// PhaseOf classifies a position by material left and half-moves played.
func PhaseOf(b *Board, plies int) Phase {
	n := b.Count()
	if plies < 20 && n > 22 {
		return Opening
	}
	if n <= 16 || plies > 60 {
		return Endgame
	}
	return Midgame
}

const GeneralValue = 100000

// 子力价值（十分制 ×10），按开局/中局/残局
var pieceValues = [numPieceTypes][3]int{
	Advisor:  {20, 25, 25},
	Elephant: {20, 25, 25},
	Horse:    {40, 45, 50},
	Chariot:  {90, 90, 100},
	Cannon:   {45, 45, 40},
}

// Value returns the material value of p standing on sq in the given phase.
// Pawns are worth more once across the river, and more still deep in the
// enemy palace ranks during the endgame.
func (p Piece) Value(ph Phase, sq Square) int {
	switch p.Type() {
	case PieceNone:
		return 0
	case General:
		return GeneralValue
	case Pawn:
		return pawnValue(p.Color(), ph, sq.Row())
	}
	return pieceValues[p.Type()][ph]
}

func pawnValue(c Color, ph Phase, row int) int {
	crossed := crossedRiver(c, row)
	switch ph {
	case Opening:
		return 10
	case Midgame:
		if crossed {
			return 20
		}
		return 10
	}
	if !crossed {
		return 15
	}
	if (c == Red && row <= 2) || (c == Black && row >= 7) {
		return 35
	}
	return 25
}

// 每方各兵种数量上限
var maxPieceCount = [numPieceTypes]int{
	General:  1,
	Advisor:  2,
	Elephant: 2,
	Horse:    2,
	Chariot:  2,
	Cannon:   2,
	Pawn:     5,
}

// PieceCounts tallies the board by colour and type: counts[Red][Chariot] is
// the number of red chariots. Index PieceNone is always zero.
func (b *Board) PieceCounts() [2][numPieceTypes]int {
	var counts [2][numPieceTypes]int
	for _, pc := range b.Squares {
		if pc == NoPiece {
			continue
		}
		counts[pc.Color()][pc.Type()]++
	}
	return counts
}

// MaxPieceCount is how many pieces of type pt one side starts with.
func MaxPieceCount(pt PieceType) int {
	if pt <= PieceNone || pt >= numPieceTypes {
		return 0
	}
	return maxPieceCount[pt]
}

// ValidateMaterial rejects boards holding more pieces of a kind than a game can
// start with. A missing General is not an error here; see Evaluate.
func (b *Board) ValidateMaterial() error {
	counts := b.PieceCounts()
	for _, c := range []Color{Red, Black} {
		for pt := General; pt < numPieceTypes; pt++ {
			if counts[c][pt] > maxPieceCount[pt] {
				return fmt.Errorf("%w: %s has %d %s (max %d)",
					ErrInvalidMaterial, c, counts[c][pt], pt, maxPieceCount[pt])
			}
		}
	}
	return nil
}
