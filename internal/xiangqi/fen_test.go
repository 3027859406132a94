package xiangqi

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInitialFENMatchesInitialPosition(t *testing.T) {
	decoded := mustDecode(t, InitialFEN)
	if diff := cmp.Diff(NewInitialPosition(), decoded); diff != "" {
		t.Fatalf("decoded initial FEN (-want +got):\n%s", diff)
	}
	if got := NewInitialPosition().Encode(); got != InitialFEN {
		t.Fatalf("Encode() = %q, want %q", got, InitialFEN)
	}
}

func TestFENRoundTripAfterMoves(t *testing.T) {
	g := newGame(t, NewInitialPosition())
	g.play("h2e2", "h9g7", "h0g2", "i9h9", "i0h0")
	fen := g.pos.Encode()
	want := "rnbakabr1/9/1c4nc1/p1p1p1p1p/9/9/P1P1P1P1P/1C2C1N2/9/RNBAKABR1 b - - 5 3"
	if fen != want {
		t.Fatalf("Encode() = %q, want %q", fen, want)
	}
	again := mustDecode(t, fen)
	if diff := cmp.Diff(g.pos, again); diff != "" {
		t.Fatalf("round trip (-want +got):\n%s", diff)
	}
}

func TestDecodeDefaultsAndAliases(t *testing.T) {
	pos := mustDecode(t, "rheakaehr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RHEAKAEHR")
	if pos.SideToMove != Red || pos.HalfmoveClock != 0 || pos.Fullmove != 1 {
		t.Fatalf("defaults: side=%v half=%d full=%d", pos.SideToMove, pos.HalfmoveClock, pos.Fullmove)
	}
	if pos.Board != NewInitialBoard() {
		t.Fatal("h/e letters not read as horse/elephant")
	}
	if pos.Hash != pos.CalculateHash() {
		t.Fatal("hash not initialised")
	}

	black := mustDecode(t, "4k4/9/9/9/9/9/9/9/9/4K4 b - - 12 40")
	if black.SideToMove != Black || black.HalfmoveClock != 12 || black.Fullmove != 40 {
		t.Fatalf("fields: side=%v half=%d full=%d", black.SideToMove, black.HalfmoveClock, black.Fullmove)
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"empty", ""},
		{"nine ranks", "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/RNBAKABNR w"},
		{"long rank", "rnbakabnrr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w"},
		{"short rank", "rnbakabn/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w"},
		{"digit overflow", "rnbakabnr/55/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w"},
		{"unknown piece", "rnbakabnx/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w"},
		{"bad side", InitialFEN[:len(InitialFEN)-len(" w - - 0 1")] + " x"},
		{"bad halfmove", "4k4/9/9/9/9/9/9/9/9/4K4 w - - x 1"},
		{"zero fullmove", "4k4/9/9/9/9/9/9/9/9/4K4 w - - 0 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodePosition(tt.fen); !errors.Is(err, ErrInvalidFEN) {
				t.Fatalf("DecodePosition err = %v, want ErrInvalidFEN", err)
			}
		})
	}
}
