package xiangqi

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func destinations(moves []Move) []Square {
	out := make([]Square, 0, len(moves))
	for _, mv := range moves {
		out = append(out, mv.To)
	}
	return out
}

func sq(row, col int) Square { return NewSquare(row, col) }

func mustDecode(t *testing.T, fen string) *Position {
	t.Helper()
	pos, err := DecodePosition(fen)
	if err != nil {
		t.Fatalf("DecodePosition(%q): %v", fen, err)
	}
	return pos
}

func TestOpeningHorseMoves(t *testing.T) {
	b := NewInitialBoard()
	got := destinations(b.LegalMovesFrom(sq(9, 1)))
	want := []Square{sq(7, 0), sq(7, 2)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("horse b0 destinations (-want +got):\n%s", diff)
	}
}

func TestOpeningMoveCount(t *testing.T) {
	pos := NewInitialPosition()
	if got := len(pos.LegalMoves()); got != 44 {
		t.Fatalf("len(LegalMoves) = %d, want 44", got)
	}
}

func TestRawMovesPerPiece(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		from Square
		want []Square
	}{
		{
			name: "cannon jumps screen to capture",
			fen:  InitialFEN,
			from: sq(7, 1),
			want: []Square{
				sq(6, 1), sq(5, 1), sq(4, 1), sq(3, 1), sq(0, 1),
				sq(8, 1),
				sq(7, 0),
				sq(7, 2), sq(7, 3), sq(7, 4), sq(7, 5), sq(7, 6),
			},
		},
		{
			name: "chariot stops at first piece",
			fen:  "4k4/9/9/9/4p4/9/9/9/9/R3K4 w",
			from: sq(9, 0),
			want: []Square{
				sq(8, 0), sq(7, 0), sq(6, 0), sq(5, 0), sq(4, 0), sq(3, 0), sq(2, 0), sq(1, 0), sq(0, 0),
				sq(9, 1), sq(9, 2), sq(9, 3),
			},
		},
		{
			name: "elephant eye blocked",
			fen:  "4k4/9/9/9/9/9/9/9/3P5/2B1K4 w",
			from: sq(9, 2),
			want: []Square{sq(7, 0)},
		},
		{
			name: "elephant stays home",
			fen:  "4k4/9/9/9/9/2B6/9/9/9/4K4 w",
			from: sq(5, 2),
			want: []Square{sq(7, 0), sq(7, 4)},
		},
		{
			name: "horse leg blocked",
			fen:  "4k4/9/9/9/9/4P4/4N4/9/9/4K4 w",
			from: sq(6, 4),
			want: []Square{sq(5, 2), sq(5, 6), sq(7, 2), sq(7, 6), sq(8, 3), sq(8, 5)},
		},
		{
			name: "advisor confined to palace",
			fen:  "4k4/9/9/9/9/9/9/9/9/3AK4 w",
			from: sq(9, 3),
			want: []Square{sq(8, 4)},
		},
		{
			name: "general one step inside palace",
			fen:  "4k4/9/9/9/9/9/9/9/9/4K4 w",
			from: sq(9, 4),
			want: []Square{sq(8, 4), sq(9, 3), sq(9, 5)},
		},
		{
			name: "pawn before river",
			fen:  "4k4/9/9/9/9/9/P8/9/9/4K4 w",
			from: sq(6, 0),
			want: []Square{sq(5, 0)},
		},
		{
			name: "pawn across river",
			fen:  "4k4/9/9/9/4P4/9/9/9/9/3K5 w",
			from: sq(4, 4),
			want: []Square{sq(3, 4), sq(4, 3), sq(4, 5)},
		},
		{
			name: "black pawn across river",
			fen:  "4k4/9/9/9/9/8p/9/9/9/3K5 b",
			from: sq(5, 8),
			want: []Square{sq(6, 8), sq(5, 7)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := mustDecode(t, tt.fen)
			got := destinations(pos.Board.RawMoves(tt.from))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("RawMoves(%v) (-want +got):\n%s", tt.from, diff)
			}
		})
	}
}

func TestRawMovesFillCaptured(t *testing.T) {
	b := NewInitialBoard()
	for _, mv := range b.RawMoves(sq(7, 1)) {
		if mv.To == sq(0, 1) {
			if mv.Captured != MakePiece(Black, Horse) || !mv.IsCapture() {
				t.Fatalf("capture on b9 = %+v", mv)
			}
			if mv.Piece != MakePiece(Red, Cannon) {
				t.Fatalf("moving piece = %v", mv.Piece)
			}
			return
		}
	}
	t.Fatal("cannon capture on b9 not generated")
}

func TestRawMovesEmptySquare(t *testing.T) {
	b := NewInitialBoard()
	if got := b.RawMoves(sq(4, 4)); len(got) != 0 {
		t.Fatalf("RawMoves(empty) = %v", got)
	}
}

func TestFacingGeneralsFilter(t *testing.T) {
	// 马是两将之间唯一的子，走开就对脸
	pos := mustDecode(t, "4k4/9/9/9/9/4N4/9/9/9/4K4 w")
	if len(pos.Board.RawMoves(sq(5, 4))) == 0 {
		t.Fatal("pinned horse has no raw moves")
	}
	if got := pos.Board.LegalMovesFrom(sq(5, 4)); len(got) != 0 {
		t.Fatalf("pinned horse legal moves = %v, want none", destinations(got))
	}
	if pos.Board.GeneralsFacing() {
		t.Fatal("GeneralsFacing with a blocker")
	}

	// 帅不能走到与将同列且中间无子的位置
	pos = mustDecode(t, "4k4/9/9/9/9/9/9/9/9/3K5 w")
	got := destinations(pos.Board.LegalMovesFrom(sq(9, 3)))
	if diff := cmp.Diff([]Square{sq(8, 3)}, got); diff != "" {
		t.Fatalf("general legal moves (-want +got):\n%s", diff)
	}
}

func TestLegalMovesEscapeCheck(t *testing.T) {
	// 黑车将军，红方只能应将
	pos := mustDecode(t, "3k5/9/9/9/9/R8/9/9/9/r3K4 w")
	if !pos.Board.IsInCheck(Red) {
		t.Fatal("red should be in check")
	}
	for _, mv := range pos.LegalMoves() {
		np, ok := pos.ApplyMove(mv)
		if !ok {
			t.Fatalf("ApplyMove(%v) rejected a legal move", mv)
		}
		if np.Board.IsInCheck(Red) {
			t.Errorf("%v leaves red in check", mv)
		}
	}
	got := map[string]bool{}
	for _, mv := range pos.LegalMoves() {
		got[mv.String()] = true
	}
	// 吃车、上宫顶
	for _, want := range []string{"a4a0", "e0e1"} {
		if !got[want] {
			t.Errorf("missing legal move %s", want)
		}
	}
	if got["e0d0"] {
		t.Error("e0d0 walks onto the checking file")
	}
}

// 随机对局中逐个检验：合法着法走后不被将军、不对脸；被过滤掉的着法走后一定被将军或对脸。
func TestLegalFilterSoundAndComplete(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for game := 0; game < 8; game++ {
		pos := NewInitialPosition()
		for ply := 0; ply < 120; ply++ {
			side := pos.SideToMove
			for from := Square(0); from < NumSquares; from++ {
				pc := pos.Board.Squares[from]
				if pc == NoPiece || pc.Color() != side {
					continue
				}
				legal := map[Square]bool{}
				for _, mv := range pos.Board.LegalMovesFrom(from) {
					legal[mv.To] = true
				}
				for _, mv := range pos.Board.RawMoves(from) {
					after := pos.Board
					after.makeMove(mv)
					bad := after.IsInCheck(side) || after.GeneralsFacing()
					if bad == legal[mv.To] {
						t.Fatalf("game %d ply %d: %v legal=%v but exposes=%v\n%s",
							game, ply, mv, legal[mv.To], bad, pos.Board.String())
					}
				}
			}

			moves := pos.LegalMoves()
			if len(moves) == 0 {
				break
			}
			next, ok := pos.ApplyMove(moves[rng.Intn(len(moves))])
			if !ok {
				t.Fatalf("game %d ply %d: ApplyMove rejected a legal move", game, ply)
			}
			pos = next
		}
	}
}

func TestApplyMoveRejects(t *testing.T) {
	pos := NewInitialPosition()
	tests := []struct {
		name string
		mv   Move
	}{
		{"empty source", Move{From: sq(4, 4), To: sq(3, 4)}},
		{"wrong side", Move{From: sq(0, 1), To: sq(2, 2)}},
		{"own capture", Move{From: sq(9, 0), To: sq(9, 1)}},
		{"null move", Move{From: sq(9, 0), To: sq(9, 0)}},
		{"off board", Move{From: sq(9, 0), To: Square(NumSquares)}},
	}
	for _, tt := range tests {
		if _, ok := pos.ApplyMove(tt.mv); ok {
			t.Errorf("%s: ApplyMove accepted %+v", tt.name, tt.mv)
		}
	}
}

func TestApplyMoveCounters(t *testing.T) {
	pos := NewInitialPosition()
	before := pos.Encode()

	np, ok := pos.ApplyMove(Move{From: sq(9, 1), To: sq(7, 2)})
	if !ok {
		t.Fatal("b0c2 rejected")
	}
	if pos.Encode() != before {
		t.Fatal("ApplyMove mutated its receiver")
	}
	if np.SideToMove != Black || np.HalfmoveClock != 1 || np.Fullmove != 1 {
		t.Fatalf("after b0c2: side=%v half=%d full=%d", np.SideToMove, np.HalfmoveClock, np.Fullmove)
	}

	np, ok = np.ApplyMove(Move{From: sq(3, 4), To: sq(4, 4)})
	if !ok {
		t.Fatal("e6e5 rejected")
	}
	if np.SideToMove != Red || np.HalfmoveClock != 0 || np.Fullmove != 2 {
		t.Fatalf("after e6e5: side=%v half=%d full=%d", np.SideToMove, np.HalfmoveClock, np.Fullmove)
	}
}
