package notation

import (
	"fmt"
	"strings"

	"xiangqi/internal/xiangqi"
)

// Transcript replays moves from start and returns one line per move number,
// "1. 炮二平五 馬８进７". A game that starts with black to move opens with
// "N. ... <black>".
func Transcript(start *xiangqi.Position, moves []xiangqi.Move, style Style) ([]string, error) {
	pos := start
	number := start.Fullmove
	if number < 1 {
		number = 1
	}

	var lines []string
	var line strings.Builder
	flush := func() {
		if line.Len() > 0 {
			lines = append(lines, line.String())
			line.Reset()
		}
	}

	for i, mv := range moves {
		text, err := Traditional(&pos.Board, mv, style)
		if err != nil {
			return lines, &xiangqi.MoveError{Ply: i + 1, From: mv.From, To: mv.To, Err: err}
		}
		next, ok := pos.ApplyMove(mv)
		if !ok {
			return lines, &xiangqi.MoveError{Ply: i + 1, From: mv.From, To: mv.To, Err: xiangqi.ErrIllegalMove}
		}

		if pos.SideToMove == xiangqi.Red {
			flush()
			fmt.Fprintf(&line, "%d. %s", number, text)
		} else {
			if line.Len() == 0 {
				fmt.Fprintf(&line, "%d. ...", number)
			}
			line.WriteByte(' ')
			line.WriteString(text)
			flush()
			number++
		}
		pos = next
	}
	flush()
	return lines, nil
}
