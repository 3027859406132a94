package xiangqi

// Color 执子方
type Color int8

const (
	NoColor Color = -1
	Red     Color = 0
	Black   Color = 1
)

// Opponent returns the other side; NoColor stays NoColor.
func (c Color) Opponent() Color {
	switch c {
	case Red:
		return Black
	case Black:
		return Red
	}
	return NoColor
}

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Black:
		return "black"
	}
	return "none"
}

type PieceType int8

const (
	PieceNone PieceType = iota
	General             // 帥 / 將
	Advisor             // 仕 / 士
	Elephant            // 相 / 象
	Horse               // 傌 / 馬
	Chariot             // 俥 / 車
	Cannon              // 炮 / 砲
	Pawn                // 兵 / 卒

	numPieceTypes = 8
)

var pieceTypeNames = [numPieceTypes]string{
	"none", "general", "advisor", "elephant", "horse", "chariot", "cannon", "pawn",
}

func (pt PieceType) String() string {
	if pt < 0 || pt >= numPieceTypes {
		return "invalid"
	}
	return pieceTypeNames[pt]
}

// Piece 0=空；>0 红；<0 黑；abs=PieceType
type Piece int8

const NoPiece Piece = 0

func MakePiece(c Color, pt PieceType) Piece {
	if pt == PieceNone || c == NoColor {
		return NoPiece
	}
	if c == Red {
		return Piece(pt)
	}
	return -Piece(pt)
}

func (p Piece) Type() PieceType {
	if p < 0 {
		return PieceType(-p)
	}
	return PieceType(p)
}

func (p Piece) Color() Color {
	if p == 0 {
		return NoColor
	}
	if p > 0 {
		return Red
	}
	return Black
}

// String returns the FEN letter, or "." for an empty square.
func (p Piece) String() string {
	return string(p.Letter())
}

// Move is a fully described half-move. Piece and Captured are filled in by the
// generator so a move can be undone without consulting the board.
type Move struct {
	From     Square `json:"from"`
	To       Square `json:"to"`
	Piece    Piece  `json:"piece"`
	Captured Piece  `json:"captured,omitempty"`
}

func (m Move) IsCapture() bool { return m.Captured != NoPiece }

// String returns the ICCS coordinate form, e.g. "h2e2".
func (m Move) String() string {
	return m.From.String() + m.To.String()
}
