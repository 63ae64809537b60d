package chess

// A Square is a position together with whatever occupies it.
type Square struct {
	Position Position
	Piece    Piece
}

// File returns the file of the square (1..8).
func (s Square) File() int {
	return s.Position.File
}

// Rank returns the rank of the square (1..8).
func (s Square) Rank() int {
	return s.Position.Rank
}

// IsDark returns true if the square is dark.
func (s Square) IsDark() bool {
	return s.Position.IsDark()
}

// IsEmpty returns true if no piece stands on the square.
func (s Square) IsEmpty() bool {
	return s.Piece.IsNone()
}

// IsNotEmpty returns true if a piece stands on the square.
func (s Square) IsNotEmpty() bool {
	return !s.IsEmpty()
}

// HasPiece returns true if a piece of the given set stands on the square.
func (s Square) HasPiece(set Set) bool {
	return !s.Piece.IsNone() && s.Piece.Set == set
}

// HasWhitePiece returns true if a white piece stands on the square.
func (s Square) HasWhitePiece() bool {
	return s.HasPiece(White)
}

// HasBlackPiece returns true if a black piece stands on the square.
func (s Square) HasBlackPiece() bool {
	return s.HasPiece(Black)
}

// String implements the fmt.Stringer interface.
func (s Square) String() string {
	return s.Position.String()
}
