package chess

import "math"

// A Set is the side a piece belongs to.
type Set uint8

const (
	// NoSet represents the lack of a side.
	NoSet Set = iota
	// White is the side that moves first.
	White
	// Black is the side that moves second.
	Black
)

// Opposite returns the other side. NoSet stays NoSet.
func (s Set) Opposite() Set {
	switch s {
	case White:
		return Black
	case Black:
		return White
	}
	return NoSet
}

// String implements the fmt.Stringer interface.
func (s Set) String() string {
	switch s {
	case White:
		return "White"
	case Black:
		return "Black"
	}
	return "NoSet"
}

func (s Set) letter() string {
	if s == Black {
		return "b"
	}
	return "w"
}

// A Kind is the type of a piece.
type Kind uint8

const (
	// NoKind represents the lack of a piece.
	NoKind Kind = iota
	King
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

// PromotionKinds lists the kinds a pawn may promote to, strongest first.
var PromotionKinds = []Kind{Queen, Rook, Bishop, Knight}

// String implements the fmt.Stringer interface.
func (k Kind) String() string {
	switch k {
	case King:
		return "King"
	case Queen:
		return "Queen"
	case Rook:
		return "Rook"
	case Bishop:
		return "Bishop"
	case Knight:
		return "Knight"
	case Pawn:
		return "Pawn"
	}
	return "NoKind"
}

// Letter returns the uppercase algebraic letter of the kind ("" for NoKind).
func (k Kind) Letter() string {
	switch k {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return "P"
	}
	return ""
}

// KindFromLetter parses an algebraic piece letter in either case.
func KindFromLetter(s string) Kind {
	switch s {
	case "K", "k":
		return King
	case "Q", "q":
		return Queen
	case "R", "r":
		return Rook
	case "B", "b":
		return Bishop
	case "N", "n":
		return Knight
	case "P", "p":
		return Pawn
	}
	return NoKind
}

// A Piece is a kind tagged with its side. Pieces carry no position: the
// board is the only source of truth for where a piece stands.
type Piece struct {
	Kind Kind
	Set  Set
}

// NoPiece is the zero Piece and marks an empty square.
var NoPiece = Piece{}

// NewPiece returns the piece of the given kind and side.
func NewPiece(kind Kind, set Set) Piece {
	return Piece{Kind: kind, Set: set}
}

// IsNone returns true for NoPiece.
func (p Piece) IsNone() bool {
	return p.Kind == NoKind
}

// Value returns the material value of the piece. The king is priceless and
// reports math.MaxInt. Values are informational and play no part in legality.
func (p Piece) Value() int {
	switch p.Kind {
	case King:
		return math.MaxInt
	case Queen:
		return 9
	case Rook:
		return 5
	case Bishop, Knight:
		return 3
	case Pawn:
		return 1
	}
	return 0
}

// Symbol returns the unicode chess glyph of the piece.
func (p Piece) Symbol() string {
	white := p.Set == White
	switch p.Kind {
	case King:
		return pick(white, "♔", "♚")
	case Queen:
		return pick(white, "♕", "♛")
	case Rook:
		return pick(white, "♖", "♜")
	case Bishop:
		return pick(white, "♗", "♝")
	case Knight:
		return pick(white, "♘", "♞")
	case Pawn:
		return pick(white, "♙", "♟")
	}
	return ""
}

// Letter returns the FEN letter: uppercase for white, lowercase for black.
func (p Piece) Letter() string {
	l := p.Kind.Letter()
	if l != "" && p.Set == Black {
		return string(rune(l[0]) + ('a' - 'A'))
	}
	return l
}

// String implements the fmt.Stringer interface.
func (p Piece) String() string {
	if p.IsNone() {
		return "-"
	}
	return p.Set.String() + " " + p.Kind.String()
}

// PieceFromLetter parses a FEN letter. Case selects the side.
func PieceFromLetter(s string) Piece {
	kind := KindFromLetter(s)
	if kind == NoKind {
		return NoPiece
	}
	if s[0] >= 'a' {
		return NewPiece(kind, Black)
	}
	return NewPiece(kind, White)
}

func pick(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}
