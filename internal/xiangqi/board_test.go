package xiangqi

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSquareCoordinates(t *testing.T) {
	tests := []struct {
		row, col int
		iccs     string
	}{
		{9, 0, "a0"},
		{0, 8, "i9"},
		{7, 7, "h2"},
		{0, 4, "e9"},
	}
	for _, tt := range tests {
		t.Run(tt.iccs, func(t *testing.T) {
			sq := NewSquare(tt.row, tt.col)
			if sq.Row() != tt.row || sq.Col() != tt.col {
				t.Fatalf("NewSquare(%d,%d) = (%d,%d)", tt.row, tt.col, sq.Row(), sq.Col())
			}
			if got := sq.String(); got != tt.iccs {
				t.Errorf("String() = %q, want %q", got, tt.iccs)
			}
			parsed, err := ParseSquare(tt.iccs)
			if err != nil {
				t.Fatalf("ParseSquare(%q): %v", tt.iccs, err)
			}
			if parsed != sq {
				t.Errorf("ParseSquare(%q) = %d, want %d", tt.iccs, parsed, sq)
			}
		})
	}
}

func TestParseSquareRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "a", "j0", "a10", "A0", "e#"} {
		if _, err := ParseSquare(s); !errors.Is(err, ErrInvalidSquare) {
			t.Errorf("ParseSquare(%q) err = %v, want ErrInvalidSquare", s, err)
		}
	}
}

func TestSquareAtBounds(t *testing.T) {
	if _, err := SquareAt(10, 0); !errors.Is(err, ErrInvalidSquare) {
		t.Errorf("SquareAt(10,0) err = %v", err)
	}
	if _, err := SquareAt(0, -1); !errors.Is(err, ErrInvalidSquare) {
		t.Errorf("SquareAt(0,-1) err = %v", err)
	}
	sq, err := SquareAt(9, 8)
	if err != nil || sq != NumSquares-1 {
		t.Errorf("SquareAt(9,8) = %d, %v", sq, err)
	}
}

func TestPieceAtPanicsOffBoard(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("PieceAt(90) did not panic")
		}
	}()
	b := NewInitialBoard()
	b.PieceAt(NumSquares)
}

func TestPieceEncoding(t *testing.T) {
	tests := []struct {
		pc     Piece
		color  Color
		typ    PieceType
		letter rune
		glyph  string
	}{
		{MakePiece(Red, General), Red, General, 'K', "帥"},
		{MakePiece(Black, General), Black, General, 'k', "將"},
		{MakePiece(Red, Elephant), Red, Elephant, 'B', "相"},
		{MakePiece(Black, Horse), Black, Horse, 'n', "馬"},
		{MakePiece(Black, Pawn), Black, Pawn, 'p', "卒"},
		{NoPiece, NoColor, PieceNone, '.', ""},
	}
	for _, tt := range tests {
		if tt.pc.Color() != tt.color || tt.pc.Type() != tt.typ {
			t.Errorf("%v: color/type = %v/%v, want %v/%v", tt.pc, tt.pc.Color(), tt.pc.Type(), tt.color, tt.typ)
		}
		if tt.pc.Letter() != tt.letter {
			t.Errorf("%v: Letter() = %q, want %q", tt.pc, tt.pc.Letter(), tt.letter)
		}
		if tt.pc.Glyph() != tt.glyph {
			t.Errorf("%v: Glyph() = %q, want %q", tt.pc, tt.pc.Glyph(), tt.glyph)
		}
	}
}

func TestPieceFromLetterAcceptsAliases(t *testing.T) {
	for ch, want := range map[rune]Piece{
		'H': MakePiece(Red, Horse),
		'e': MakePiece(Black, Elephant),
		'N': MakePiece(Red, Horse),
		'b': MakePiece(Black, Elephant),
	} {
		got, ok := pieceFromLetter(ch)
		if !ok || got != want {
			t.Errorf("pieceFromLetter(%q) = %v, %v; want %v", ch, got, ok, want)
		}
	}
	if _, ok := pieceFromLetter('x'); ok {
		t.Error("pieceFromLetter('x') accepted")
	}
}

func TestInitialBoard(t *testing.T) {
	b := NewInitialBoard()
	if b.Count() != 32 {
		t.Fatalf("Count() = %d, want 32", b.Count())
	}
	red, ok := b.FindGeneral(Red)
	if !ok || red != NewSquare(9, 4) {
		t.Errorf("red general at %v, %v", red, ok)
	}
	black, ok := b.FindGeneral(Black)
	if !ok || black != NewSquare(0, 4) {
		t.Errorf("black general at %v, %v", black, ok)
	}
	if err := b.ValidateMaterial(); err != nil {
		t.Errorf("ValidateMaterial: %v", err)
	}
	if got := b.PieceAt(NewSquare(7, 1)); got != MakePiece(Red, Cannon) {
		t.Errorf("(7,1) = %v, want red cannon", got)
	}
}

func TestValidateMaterialTooManyPawns(t *testing.T) {
	b := NewInitialBoard()
	b.Put(NewSquare(5, 4), MakePiece(Red, Pawn))
	if err := b.ValidateMaterial(); !errors.Is(err, ErrInvalidMaterial) {
		t.Fatalf("ValidateMaterial err = %v, want ErrInvalidMaterial", err)
	}
}

func TestPieceCounts(t *testing.T) {
	b := NewInitialBoard()
	b.Put(NewSquare(9, 0), NoPiece) // 去掉红车
	b.Put(NewSquare(3, 4), NoPiece) // 去掉黑中卒
	got := b.PieceCounts()

	var want [2][numPieceTypes]int
	for _, c := range []Color{Red, Black} {
		for pt := General; pt < numPieceTypes; pt++ {
			want[c][pt] = MaxPieceCount(pt)
		}
	}
	want[Red][Chariot]--
	want[Black][Pawn]--
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("PieceCounts (-want +got):\n%s", diff)
	}
	if MaxPieceCount(PieceNone) != 0 || MaxPieceCount(numPieceTypes) != 0 {
		t.Error("MaxPieceCount out of range should be 0")
	}
}

func TestValidateSetup(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want error
	}{
		{"initial", InitialFEN, nil},
		{"checked side to move", "R2k5/9/9/9/9/9/9/9/9/4K4 b", nil},
		{"generals facing", "4k4/9/9/9/9/9/9/9/9/4K4 w", ErrIllegalPosition},
		{"side that moved is in check", "R2k5/9/9/9/9/9/9/9/9/4K4 w", ErrIllegalPosition},
		{"too many cannons", "4k4/9/9/9/9/9/9/9/CCC6/3K5 w", ErrInvalidMaterial},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mustDecode(t, tt.fen).ValidateSetup()
			if !errors.Is(err, tt.want) {
				t.Fatalf("ValidateSetup() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPalaceAndRiver(t *testing.T) {
	if !InPalace(NewSquare(8, 4), Red) || InPalace(NewSquare(8, 4), Black) {
		t.Error("(8,4) should be in red's palace only")
	}
	if InPalace(NewSquare(9, 2), Red) {
		t.Error("(9,2) is outside the palace")
	}
	if crossedRiver(Red, 5) || !crossedRiver(Red, 4) {
		t.Error("red crosses the river at row 4")
	}
	if crossedRiver(Black, 4) || !crossedRiver(Black, 5) {
		t.Error("black crosses the river at row 5")
	}
}

func TestPhaseAndValues(t *testing.T) {
	b := NewInitialBoard()
	if got := PhaseOf(&b, 0); got != Opening {
		t.Errorf("PhaseOf(initial, 0) = %v", got)
	}
	if got := PhaseOf(&b, 30); got != Midgame {
		t.Errorf("PhaseOf(initial, 30) = %v", got)
	}
	var sparse Board
	sparse.Put(NewSquare(9, 4), MakePiece(Red, General))
	sparse.Put(NewSquare(0, 4), MakePiece(Black, General))
	if got := PhaseOf(&sparse, 5); got != Endgame {
		t.Errorf("PhaseOf(sparse, 5) = %v", got)
	}

	redPawn := MakePiece(Red, Pawn)
	got := []int{
		redPawn.Value(Opening, NewSquare(3, 4)),
		redPawn.Value(Midgame, NewSquare(6, 4)),
		redPawn.Value(Midgame, NewSquare(4, 4)),
		redPawn.Value(Endgame, NewSquare(6, 4)),
		redPawn.Value(Endgame, NewSquare(4, 4)),
		redPawn.Value(Endgame, NewSquare(1, 4)),
		MakePiece(Black, Chariot).Value(Endgame, NewSquare(0, 0)),
	}
	want := []int{10, 10, 20, 15, 25, 35, 100}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestMoveErrorUnwraps(t *testing.T) {
	err := error(&MoveError{Ply: 3, From: NewSquare(9, 1), To: NewSquare(5, 1), Err: ErrIllegalMove})
	if !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("errors.Is(%v, ErrIllegalMove) = false", err)
	}
	var me *MoveError
	if !errors.As(err, &me) || me.Ply != 3 {
		t.Fatalf("errors.As failed: %v", err)
	}
	if got, want := err.Error(), "ply 3, move b0b4: illegal move"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
