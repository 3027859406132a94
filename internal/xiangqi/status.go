package xiangqi

// GameState is the outcome of Evaluate. Exactly one holds for any position.
type GameState int8

const (
	InProgress GameState = iota
	Checkmate
	Stalemate
	RepetitionDraw
	KingCaptured
	ForbiddenRepetition // 长将或长捉，重复一方判负
)

var gameStateNames = [...]string{
	InProgress:          "in_progress",
	Checkmate:           "checkmate",
	Stalemate:           "stalemate",
	RepetitionDraw:      "repetition_draw",
	KingCaptured:        "king_captured",
	ForbiddenRepetition: "forbidden_repetition",
}

func (s GameState) String() string {
	if s < 0 || int(s) >= len(gameStateNames) {
		return "unknown"
	}
	return gameStateNames[s]
}

func (s GameState) IsTerminal() bool { return s != InProgress }

// Verdict 终局判定：Winner 为 NoColor 表示和棋或未结束
type Verdict struct {
	State  GameState
	Winner Color
}

func (v Verdict) IsDraw() bool {
	return v.State == Stalemate || v.State == RepetitionDraw
}

// Evaluate judges the position from the side to move. h may be nil, in which
// case repetition is never reported. A repeated check or chase by one side is
// judged before a plain repetition draw.
func Evaluate(p *Position, h *History) Verdict {
	side := p.SideToMove
	if _, ok := p.Board.FindGeneral(side); !ok {
		return Verdict{State: KingCaptured, Winner: side.Opponent()}
	}
	if !p.Board.HasLegalMove(side) {
		if p.Board.IsInCheck(side) {
			return Verdict{State: Checkmate, Winner: side.Opponent()}
		}
		return Verdict{State: Stalemate, Winner: NoColor}
	}
	if offender, ok := h.PerpetualOffender(p); ok {
		return Verdict{State: ForbiddenRepetition, Winner: offender.Opponent()}
	}
	if h.IsRepetition(p) {
		return Verdict{State: RepetitionDraw, Winner: NoColor}
	}
	return Verdict{State: InProgress, Winner: NoColor}
}
