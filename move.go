package chess

import "fmt"

// A PrimaryMove is the geometric core of a move: one piece travelling from
// one square to another.
type PrimaryMove struct {
	From  Position
	To    Position
	Piece Piece
}

// String implements the fmt.Stringer interface.
func (m PrimaryMove) String() string {
	return m.From.String() + m.To.String()
}

// A PreMove is a board mutation performed together with the primary move,
// such as the rook's jump when castling.
type PreMove = PrimaryMove

// A ConsequenceKind tells how a Consequence changes the board.
type ConsequenceKind uint8

const (
	// RemovePiece empties a square (the pawn taken en passant).
	RemovePiece ConsequenceKind = iota + 1
	// PromotePiece replaces the arriving pawn with another piece.
	PromotePiece
)

// A Consequence is a board mutation that follows from the primary move.
type Consequence struct {
	Kind     ConsequenceKind
	Position Position
	Piece    Piece
}

// A BoardMove fully describes one transformation of a board. It knows
// nothing about check or mate.
type BoardMove struct {
	Move        PrimaryMove
	PreMove     *PreMove
	Consequence *Consequence
}

// From returns the origin of the primary move.
func (m BoardMove) From() Position {
	return m.Move.From
}

// To returns the target of the primary move.
func (m BoardMove) To() Position {
	return m.Move.To
}

// Piece returns the moving piece.
func (m BoardMove) Piece() Piece {
	return m.Move.Piece
}

// IsCastling returns true if the move relocates a rook alongside the king.
func (m BoardMove) IsCastling() bool {
	return m.PreMove != nil && m.Move.Piece.Kind == King
}

// IsKingSideCastling returns true for O-O.
func (m BoardMove) IsKingSideCastling() bool {
	return m.IsCastling() && m.Move.To.File > m.Move.From.File
}

// IsEnPassant returns true if the move captures a pawn en passant.
func (m BoardMove) IsEnPassant() bool {
	return m.Consequence != nil && m.Consequence.Kind == RemovePiece
}

// Promotion returns the kind the pawn promotes to, or NoKind.
func (m BoardMove) Promotion() Kind {
	if m.Consequence != nil && m.Consequence.Kind == PromotePiece {
		return m.Consequence.Piece.Kind
	}
	return NoKind
}

// Captured returns the position of the piece the move captures on the
// given board and true, or false if the move captures nothing.
func (m BoardMove) Captured(b Board) (Position, bool) {
	if m.IsEnPassant() {
		return m.Consequence.Position, true
	}
	target := b.Piece(m.Move.To)
	if !target.IsNone() && target.Set != m.Move.Piece.Set {
		return m.Move.To, true
	}
	return NoPosition, false
}

// IsCapture returns true if the move takes a piece on the given board.
func (m BoardMove) IsCapture(b Board) bool {
	_, ok := m.Captured(b)
	return ok
}

// Apply returns the board after the move: pre-move first, then the
// primary move, then the consequence.
func (m BoardMove) Apply(b Board) Board {
	if m.PreMove != nil {
		b = b.Without(m.PreMove.From).With(m.PreMove.To, m.PreMove.Piece)
	}
	b = b.Without(m.Move.From).With(m.Move.To, m.Move.Piece)
	if c := m.Consequence; c != nil {
		switch c.Kind {
		case RemovePiece:
			b = b.Without(c.Position)
		case PromotePiece:
			b = b.With(c.Position, c.Piece)
		}
	}
	return b
}

// String implements the fmt.Stringer interface and returns the move in UCI
// coordinate form, e.g. "e2e4" or "e7e8q".
func (m BoardMove) String() string {
	s := m.Move.String()
	if promo := m.Promotion(); promo != NoKind {
		s += NewPiece(promo, Black).Letter()
	}
	return s
}

func (m BoardMove) matches(intention MoveIntention) bool {
	return m.Move.From == intention.From && m.Move.To == intention.To && m.Promotion() == intention.Promotion
}

// A MoveEffect is the post-condition a move leaves the opponent in.
type MoveEffect uint8

const (
	// EffectNone means the game simply continues.
	EffectNone MoveEffect = iota
	// EffectCheck means the opponent's king is attacked.
	EffectCheck
	// EffectCheckmate means the opponent is mated.
	EffectCheckmate
	// EffectDraw means the move ended the game in a draw.
	EffectDraw
)

// String implements the fmt.Stringer interface.
func (e MoveEffect) String() string {
	switch e {
	case EffectCheck:
		return "Check"
	case EffectCheckmate:
		return "Checkmate"
	case EffectDraw:
		return "Draw"
	}
	return "None"
}

// An AppliedMove is a completed move together with its effect and its
// standard algebraic notation.
type AppliedMove struct {
	BoardMove BoardMove
	Effect    MoveEffect
	Notation  string
}

// From returns the origin square of the move.
func (m AppliedMove) From() Position {
	return m.BoardMove.From()
}

// To returns the target square of the move.
func (m AppliedMove) To() Position {
	return m.BoardMove.To()
}

// Piece returns the moved piece.
func (m AppliedMove) Piece() Piece {
	return m.BoardMove.Piece()
}

// String implements the fmt.Stringer interface.
func (m AppliedMove) String() string {
	switch m.Effect {
	case EffectCheckmate:
		result := WhiteWon
		if m.Piece().Set == Black {
			result = BlackWon
		}
		return fmt.Sprintf("%s  %s", m.Notation, result)
	case EffectDraw:
		return fmt.Sprintf("%s  %s", m.Notation, Draw)
	}
	return m.Notation
}

// A MoveIntention is raw, unvalidated user intent. Promotion must name the
// promotion kind when a pawn reaches its last rank; it is NoKind otherwise.
type MoveIntention struct {
	From      Position
	To        Position
	Promotion Kind
}

// String implements the fmt.Stringer interface.
func (i MoveIntention) String() string {
	s := i.From.String() + i.To.String()
	if i.Promotion != NoKind {
		s += NewPiece(i.Promotion, Black).Letter()
	}
	return s
}
