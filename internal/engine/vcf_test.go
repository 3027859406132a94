package engine

import (
	"context"
	"testing"

	"xiangqi/internal/xiangqi"
)

// 车沿 d 路将军，黑车只能垫 d2，再吃车将死
const chariotLadder = "3k5/9/9/9/9/9/9/r8/9/R3K4 w"

func TestVCFFindsChariotLadder(t *testing.T) {
	pos := decode(t, chariotLadder)
	res := VCFSearch(context.Background(), pos, 5)
	if !res.CanWin {
		t.Fatal("no forced mate found")
	}
	if res.Move.From != xiangqi.NewSquare(9, 0) || res.Move.To != xiangqi.NewSquare(9, 3) {
		t.Fatalf("Move = %v, want a0d0", res.Move)
	}
	if res.Plies != 3 {
		t.Errorf("Plies = %d, want 3", res.Plies)
	}
}

func TestVCFTooShallow(t *testing.T) {
	pos := decode(t, chariotLadder)
	if res := VCFSearch(context.Background(), pos, 1); res.CanWin {
		t.Fatalf("depth 1 found %v", res.Move)
	}
}

func TestVCFNoChecksAvailable(t *testing.T) {
	if res := VCFSearch(context.Background(), xiangqi.NewInitialPosition(), 5); res.CanWin {
		t.Fatalf("opening position reported a forced mate: %v", res.Move)
	}
}

func TestVCFCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if res := VCFSearch(ctx, decode(t, chariotLadder), 5); res.CanWin {
		t.Fatal("cancelled search reported a win")
	}
}

func TestSearchUsesVCFWhenEnabled(t *testing.T) {
	pos := decode(t, chariotLadder)
	res, err := NewEngine(SearchConfig{MaxDepth: 1, VCFDepth: 5}).Search(context.Background(), pos, 50)
	if err != nil {
		t.Fatal(err)
	}
	if res.BestMove.To != xiangqi.NewSquare(9, 3) {
		t.Fatalf("BestMove = %v, want a0d0", res.BestMove)
	}
	if res.Score < mateScore/2 {
		t.Errorf("Score = %d, want a mate score", res.Score)
	}
}
