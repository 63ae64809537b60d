package chess

import (
	"testing"
)

func TestParsePosition(t *testing.T) {
	tests := []struct {
		in   string
		want Position
		ok   bool
	}{
		{"a1", Position{1, 1}, true},
		{"h8", Position{8, 8}, true},
		{"e4", Position{5, 4}, true},
		{"i1", NoPosition, false},
		{"a9", NoPosition, false},
		{"A1", NoPosition, false},
		{"a", NoPosition, false},
		{"a10", NoPosition, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePosition(tt.in)
			if (err == nil) != tt.ok {
				t.Fatalf("ParsePosition(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("ParsePosition(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if tt.ok && got.String() != tt.in {
				t.Fatalf("String() = %s, want %s", got, tt.in)
			}
		})
	}
}

func TestPositionColorAndOffset(t *testing.T) {
	if !(Position{1, 1}).IsDark() || (Position{8, 1}).IsDark() || !(Position{8, 8}).IsDark() {
		t.Fatal("a1 and h8 are dark, h1 is light")
	}
	if _, ok := (Position{8, 4}).Offset(1, 0); ok {
		t.Fatal("offset off the h file should fail")
	}
	if p, ok := (Position{2, 1}).Offset(1, 2); !ok || p != (Position{3, 3}) {
		t.Fatalf("b1 + (1, 2) = %s, want c3", p)
	}
	if n := len(AllPositions()); n != 64 {
		t.Fatalf("expected 64 positions but got %d", n)
	}
	if NoPosition.IsValid() || NoPosition.String() != "-" {
		t.Fatal("the zero position lies off the board")
	}
}

func TestPieceLetters(t *testing.T) {
	for _, letter := range []string{"K", "Q", "R", "B", "N", "P", "k", "q", "r", "b", "n", "p"} {
		if got := PieceFromLetter(letter).Letter(); got != letter {
			t.Fatalf("round trip of %s gave %s", letter, got)
		}
	}
	if !PieceFromLetter("x").IsNone() {
		t.Fatal("x is not a piece")
	}
	if PieceFromLetter("n") != NewPiece(Knight, Black) {
		t.Fatal("lowercase letters are black")
	}
	if NewPiece(Queen, White).Symbol() != "♕" || NewPiece(Pawn, Black).Symbol() != "♟" {
		t.Fatal("unexpected glyphs")
	}
	if NewPiece(Rook, White).Value() != 5 {
		t.Fatal("a rook is worth five")
	}
}

func TestStandardBoard(t *testing.T) {
	b := StandardBoard()
	if n := len(b.Pieces()); n != 32 {
		t.Fatalf("expected 32 pieces but got %d", n)
	}
	if b.Piece(Position{4, 1}) != NewPiece(Queen, White) || b.Piece(Position{5, 8}) != NewPiece(King, Black) {
		t.Fatal("queens and kings are misplaced")
	}
	if king, ok := b.King(White); !ok || king != (Position{5, 1}) {
		t.Fatalf("white king on %s, want e1", king)
	}
	if n := len(b.Find(NewPiece(Pawn, Black))); n != 8 {
		t.Fatalf("expected 8 black pawns but got %d", n)
	}
	if sq := b.Square(Position{5, 4}); sq.IsNotEmpty() || sq.Position != (Position{5, 4}) {
		t.Fatal("e4 should be empty")
	}
	if n := len(b.Squares()); n != 64 {
		t.Fatalf("expected 64 squares but got %d", n)
	}
}

func TestBoardIsValue(t *testing.T) {
	b := StandardBoard()
	moved := b.Without(Position{5, 2}).With(Position{5, 4}, NewPiece(Pawn, White))
	if b.Piece(Position{5, 2}).IsNone() || !b.Piece(Position{5, 4}).IsNone() {
		t.Fatal("original board must not change")
	}
	if moved.Piece(Position{5, 4}) != NewPiece(Pawn, White) || !moved.Piece(Position{5, 2}).IsNone() {
		t.Fatal("copy should hold the moved pawn")
	}
	if moved == b {
		t.Fatal("boards should differ")
	}
}

func TestNewBoardIgnoresInvalidPositions(t *testing.T) {
	b := NewBoard(map[Position]Piece{
		{File: 0, Rank: 3}: NewPiece(Queen, White),
		{File: 1, Rank: 1}: NewPiece(King, White),
	})
	if n := len(b.Pieces()); n != 1 {
		t.Fatalf("expected one piece but got %d", n)
	}
}

func TestSufficientMaterialTable(t *testing.T) {
	tests := []struct {
		fen        string
		sufficient bool
	}{
		{"8/2k5/8/8/8/3K4/8/8 w - - 0 1", false},
		{"8/2k5/8/8/8/3K4/4N3/8 w - - 0 1", false},
		{"8/2k5/8/8/8/3K4/4B3/8 w - - 0 1", false},
		{"8/2k2b2/8/8/8/3K4/4B3/8 w - - 0 1", false},
		{"8/2k5/3b4/8/8/3K4/4B3/8 w - - 0 1", true},
		{"8/2k5/8/8/8/3K4/3NN3/8 w - - 0 1", true},
		{"8/2k5/8/8/8/3K4/4P3/8 w - - 0 1", true},
		{"8/2kr4/8/8/8/3K4/8/8 w - - 0 1", true},
	}
	for _, tt := range tests {
		t.Run(tt.fen, func(t *testing.T) {
			s := mustDecodeFEN(t, tt.fen)
			if got := s.Board().hasSufficientMaterial(); got != tt.sufficient {
				t.Fatalf("sufficient material = %v, want %v%s", got, tt.sufficient, s.Board().Draw())
			}
		})
	}
}
