package httpserver

import (
	"xiangqi/internal/server/game"
	"xiangqi/internal/xiangqi"
)

// 前端用的坐标：row 0 是黑方底线，col 0 是红方左手第一路
type SquareDTO struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func squareToDTO(sq xiangqi.Square) SquareDTO {
	return SquareDTO{Row: sq.Row(), Col: sq.Col()}
}

func (s SquareDTO) square() (xiangqi.Square, error) {
	return xiangqi.SquareAt(s.Row, s.Col)
}

// 前端用的招法结构
type MoveDTO struct {
	From     SquareDTO `json:"from"`
	To       SquareDTO `json:"to"`
	Piece    string    `json:"piece"`
	Captured string    `json:"captured,omitempty"`
	ICCS     string    `json:"iccs"`
}

func moveToDTO(m xiangqi.Move) MoveDTO {
	d := MoveDTO{
		From:  squareToDTO(m.From),
		To:    squareToDTO(m.To),
		Piece: m.Piece.String(),
		ICCS:  m.String(),
	}
	if m.IsCapture() {
		d.Captured = m.Captured.String()
	}
	return d
}

func movesToDTO(moves []xiangqi.Move) []MoveDTO {
	out := make([]MoveDTO, 0, len(moves))
	for _, m := range moves {
		out = append(out, moveToDTO(m))
	}
	return out
}

type StatusDTO struct {
	State  string `json:"state"`  // in_progress / checkmate / stalemate / repetition_draw / king_captured / forbidden_repetition
	Winner string `json:"winner"` // red / black / none
}

type GameRequest struct {
	GameID string `json:"game_id"`
}

type NewGameRequest struct {
	FEN string `json:"fen,omitempty"` // 空则标准开局
}

type LegalMovesRequest struct {
	GameID string    `json:"game_id"`
	Square SquareDTO `json:"square"`
}

type LegalMovesResponse struct {
	Moves []MoveDTO `json:"moves"`
}

type PlayRequest struct {
	GameID string    `json:"game_id"`
	From   SquareDTO `json:"from"`
	To     SquareDTO `json:"to"`
}

type RecordRequest struct {
	GameID string `json:"game_id"`
	Style  string `json:"style,omitempty"` // chinese / wxf
}

type RecordResponse struct {
	ICCS  []string `json:"iccs"`
	Lines []string `json:"lines"`
}

// StateResponse 是所有会改变对局的接口的统一返回
type StateResponse struct {
	GameID    string    `json:"game_id"`
	Position  string    `json:"position"` // FEN
	Board     []string  `json:"board"`    // 10 行，每行 9 个 FEN 字母，空位为 '.'
	ToMove    string    `json:"to_move"`
	InCheck   bool      `json:"in_check"`
	MoveCount int       `json:"move_count"`
	LastMove  *MoveDTO  `json:"last_move,omitempty"`
	Status    StatusDTO `json:"status"`
	Awaiting  bool      `json:"awaiting_engine"`
}

func stateOf(g *game.GameState) StateResponse {
	pos := g.Position()
	rows := make([]string, 0, xiangqi.Rows)
	var row []rune
	for r := 0; r < xiangqi.Rows; r++ {
		row = row[:0]
		for c := 0; c < xiangqi.Cols; c++ {
			row = append(row, pos.Board.PieceAt(xiangqi.NewSquare(r, c)).Letter())
		}
		rows = append(rows, string(row))
	}

	v := g.Verdict()
	resp := StateResponse{
		GameID:    g.ID,
		Position:  pos.Encode(),
		Board:     rows,
		ToMove:    pos.SideToMove.String(),
		MoveCount: len(g.Records()),
		Status:    StatusDTO{State: v.State.String(), Winner: v.Winner.String()},
		Awaiting:  g.AwaitingEngine(),
	}
	if _, ok := pos.Board.FindGeneral(pos.SideToMove); ok {
		resp.InCheck = pos.Board.IsInCheck(pos.SideToMove)
	}
	if lm := g.LastMove(); lm != nil {
		d := moveToDTO(*lm)
		resp.LastMove = &d
	}
	return resp
}

// PieceCountsResponse: counts[颜色][兵种] = 数量
type PieceCountsResponse struct {
	Counts  map[string]map[string]int `json:"counts"`
	IsLegal bool                      `json:"is_legal"`
	Message string                    `json:"message"`
}

func pieceCountsOf(b *xiangqi.Board) PieceCountsResponse {
	counts := b.PieceCounts()
	resp := PieceCountsResponse{
		Counts:  make(map[string]map[string]int, 2),
		IsLegal: true,
		Message: "ok",
	}
	for _, c := range []xiangqi.Color{xiangqi.Red, xiangqi.Black} {
		byType := make(map[string]int, int(xiangqi.Pawn))
		for pt := xiangqi.General; pt <= xiangqi.Pawn; pt++ {
			byType[pt.String()] = counts[c][pt]
		}
		resp.Counts[c.String()] = byType
	}
	if err := b.ValidateMaterial(); err != nil {
		resp.IsLegal = false
		resp.Message = err.Error()
	}
	return resp
}
