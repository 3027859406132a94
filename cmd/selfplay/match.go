package main

import (
	"context"
	"fmt"
	"io"
	"log"

	"xiangqi/internal/engine"
	"xiangqi/internal/notation"
	"xiangqi/internal/server/game"
	"xiangqi/internal/storage"
	"xiangqi/internal/xiangqi"
)

type Player struct {
	Name  string
	Mover engine.Mover
}

type Score struct {
	A, B, Draws int
}

// Match 两个引擎轮流执红对弈
type Match struct {
	MaxPlies int
	Style    notation.Style
	Store    *storage.Storage // 可以为 nil
	Out      io.Writer
}

// Run plays games between a and b, swapping colours every game.
func (m *Match) Run(ctx context.Context, a, b Player, games int) (Score, error) {
	var score Score
	for g := 0; g < games; g++ {
		red, black := a, b
		if g%2 == 1 {
			red, black = b, a
		}
		fmt.Fprintf(m.Out, "\n=== Game %d: Red [%s] vs Black [%s] ===\n", g+1, red.Name, black.Name)

		v, err := m.PlayGame(ctx, red, black)
		if err != nil {
			return score, err
		}
		switch {
		case v.Winner == xiangqi.Red && g%2 == 0, v.Winner == xiangqi.Black && g%2 == 1:
			score.A++
			fmt.Fprintf(m.Out, "Result: %s Wins! (%s)\n", a.Name, v.State)
		case v.Winner == xiangqi.NoColor:
			score.Draws++
			fmt.Fprintf(m.Out, "Result: Draw (%s)\n", v.State)
		default:
			score.B++
			fmt.Fprintf(m.Out, "Result: %s Wins! (%s)\n", b.Name, v.State)
		}
	}
	return score, nil
}

// PlayGame runs one game to a terminal verdict or the ply cap and prints its
// transcript. A game cut off by the cap counts as a draw.
func (m *Match) PlayGame(ctx context.Context, red, black Player) (xiangqi.Verdict, error) {
	games := game.NewManager()
	id := games.NewGame(nil)
	defer games.Delete(id)

	var v xiangqi.Verdict
	for ply := 0; m.MaxPlies <= 0 || ply < m.MaxPlies; ply++ {
		var toMove xiangqi.Color
		_ = games.Do(id, func(g *game.GameState) error {
			v = g.Verdict()
			toMove = g.Position().SideToMove
			return nil
		})
		if v.State.IsTerminal() {
			break
		}
		p := red
		if toMove == xiangqi.Black {
			p = black
		}
		if _, err := games.EngineTurn(ctx, id, p.Mover); err != nil {
			return v, fmt.Errorf("ply %d (%s): %w", ply+1, p.Name, err)
		}
	}

	var start *xiangqi.Position
	var moves []xiangqi.Move
	_ = games.Do(id, func(g *game.GameState) error {
		v = g.Verdict()
		start, moves = g.Start(), g.Moves()
		if m.Store != nil && v.State.IsTerminal() {
			res := storage.NewResult(g.ID, v, len(moves), g.Position())
			if _, err := m.Store.RecordResult(res); err != nil {
				log.Printf("record result: %v", err)
			}
		}
		return nil
	})

	lines, err := notation.Transcript(start, moves, m.Style)
	if err != nil {
		return v, err
	}
	for _, line := range lines {
		fmt.Fprintln(m.Out, line)
	}
	return v, nil
}
