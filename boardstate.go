package chess

import (
	"fmt"
	"strings"
)

// CastlingRights records which castling moves are still available.
type CastlingRights uint8

const (
	WhiteKingSide CastlingRights = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide

	// NoCastlingRights means neither side may castle.
	NoCastlingRights CastlingRights = 0
	// AllCastlingRights is the value of the starting position.
	AllCastlingRights = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
)

// CastlingRight returns the right for the given side and wing.
func CastlingRight(set Set, kingSide bool) CastlingRights {
	switch {
	case set == White && kingSide:
		return WhiteKingSide
	case set == White:
		return WhiteQueenSide
	case set == Black && kingSide:
		return BlackKingSide
	case set == Black:
		return BlackQueenSide
	}
	return NoCastlingRights
}

// Has returns true if all the given rights are present.
func (c CastlingRights) Has(rights CastlingRights) bool {
	return rights != NoCastlingRights && c&rights == rights
}

// String implements the fmt.Stringer interface and returns the FEN field.
func (c CastlingRights) String() string {
	var sb strings.Builder
	for _, r := range []struct {
		right  CastlingRights
		letter string
	}{{WhiteKingSide, "K"}, {WhiteQueenSide, "Q"}, {BlackKingSide, "k"}, {BlackQueenSide, "q"}} {
		if c.Has(r.right) {
			sb.WriteString(r.letter)
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// ParseCastlingRights parses the castling field of a FEN string.
func ParseCastlingRights(s string) (CastlingRights, error) {
	if s == "-" {
		return NoCastlingRights, nil
	}
	rights := NoCastlingRights
	for _, r := range s {
		var right CastlingRights
		switch r {
		case 'K':
			right = WhiteKingSide
		case 'Q':
			right = WhiteQueenSide
		case 'k':
			right = BlackKingSide
		case 'q':
			right = BlackQueenSide
		default:
			return NoCastlingRights, fmt.Errorf("chess: invalid castling rights %q", s)
		}
		if rights.Has(right) {
			return NoCastlingRights, fmt.Errorf("chess: invalid castling rights %q", s)
		}
		rights |= right
	}
	return rights, nil
}

// A BoardState is the full state of one ply: the board, the side to move,
// castling rights, the en-passant target and the move clocks. BoardStates
// are values; Apply returns a new one.
type BoardState struct {
	board          Board
	toMove         Set
	castlingRights CastlingRights
	enPassant      Position
	halfMoveClock  int
	fullMoveNumber int
}

// NewBoardState returns a board state from its parts. Pass NoPosition when
// there is no en-passant target.
func NewBoardState(board Board, toMove Set, rights CastlingRights, enPassant Position, halfMoveClock, fullMoveNumber int) BoardState {
	if fullMoveNumber < 1 {
		fullMoveNumber = 1
	}
	return BoardState{
		board:          board,
		toMove:         toMove,
		castlingRights: rights,
		enPassant:      enPassant,
		halfMoveClock:  halfMoveClock,
		fullMoveNumber: fullMoveNumber,
	}
}

// StartingBoardState returns the standard starting position.
func StartingBoardState() BoardState {
	return NewBoardState(StandardBoard(), White, AllCastlingRights, NoPosition, 0, 1)
}

// Board returns the board.
func (s BoardState) Board() Board {
	return s.board
}

// ToMove returns the side to move.
func (s BoardState) ToMove() Set {
	return s.toMove
}

// CastlingRights returns the remaining castling rights.
func (s BoardState) CastlingRights() CastlingRights {
	return s.castlingRights
}

// EnPassantTarget returns the square a pawn may capture onto en passant
// and true, or false when there is none.
func (s BoardState) EnPassantTarget() (Position, bool) {
	return s.enPassant, s.enPassant.IsValid()
}

// HalfMoveClock returns the number of plies since the last capture or pawn move.
func (s BoardState) HalfMoveClock() int {
	return s.halfMoveClock
}

// FullMoveNumber returns the move number, starting at 1 and incremented
// after every black move.
func (s BoardState) FullMoveNumber() int {
	return s.fullMoveNumber
}

// Square returns the square at the given position.
func (s BoardState) Square(p Position) Square {
	return s.board.Square(p)
}

// IsAttacked returns true if any piece of the given set could capture on p.
func (s BoardState) IsAttacked(p Position, by Set) bool {
	return s.board.isAttacked(p, by)
}

// InCheck returns true if the side to move has its king attacked.
func (s BoardState) InCheck() bool {
	return s.kingAttacked(s.board, s.toMove)
}

func (s BoardState) kingAttacked(b Board, set Set) bool {
	king, ok := b.King(set)
	if !ok {
		panic(fmt.Sprintf("chess: no %s king on board%s", set, b.Draw()))
	}
	return b.isAttacked(king, set.Opposite())
}

// CandidateMoves returns the pseudo-legal moves of the piece at p. Moves
// that leave the mover's own king in check are included.
func (s BoardState) CandidateMoves(p Position) []BoardMove {
	piece := s.board.Piece(p)
	if piece.IsNone() {
		return nil
	}
	return piece.CandidateMoves(s, p)
}

// LegalMovesFrom returns the legal moves of the piece at p. It returns nil
// if p is not occupied by a piece of the side to move.
func (s BoardState) LegalMovesFrom(p Position) []BoardMove {
	piece := s.board.Piece(p)
	if piece.IsNone() || piece.Set != s.toMove {
		return nil
	}
	var legal []BoardMove
	for _, m := range piece.CandidateMoves(s, p) {
		if s.isLegal(m) {
			legal = append(legal, m)
		}
	}
	return legal
}

// LegalCapturesFrom returns the legal moves from p that take a piece,
// en-passant captures included.
func (s BoardState) LegalCapturesFrom(p Position) []BoardMove {
	var captures []BoardMove
	for _, m := range s.LegalMovesFrom(p) {
		if m.IsCapture(s.board) {
			captures = append(captures, m)
		}
	}
	return captures
}

// LegalMoves returns every legal move of the side to move.
func (s BoardState) LegalMoves() []BoardMove {
	var moves []BoardMove
	for i, piece := range s.board.pieces {
		if piece.IsNone() || piece.Set != s.toMove {
			continue
		}
		moves = append(moves, s.LegalMovesFrom(positionAt(i))...)
	}
	return moves
}

// HasLegalMoves returns true if the side to move can move at all. It stops
// at the first legal move found.
func (s BoardState) HasLegalMoves() bool {
	for i, piece := range s.board.pieces {
		if piece.IsNone() || piece.Set != s.toMove {
			continue
		}
		for _, m := range piece.CandidateMoves(s, positionAt(i)) {
			if s.isLegal(m) {
				return true
			}
		}
	}
	return false
}

// isLegal simulates the move on a copy of the board and reports whether the
// mover's king is safe afterwards. The receiver's board is never touched.
func (s BoardState) isLegal(m BoardMove) bool {
	return !s.kingAttacked(m.Apply(s.board), m.Piece().Set)
}

// Resolve finds the legal move matching the intention.
func (s BoardState) Resolve(intention MoveIntention) (BoardMove, error) {
	promotionMissing := false
	for _, m := range s.LegalMovesFrom(intention.From) {
		if m.matches(intention) {
			return m, nil
		}
		if m.To() == intention.To && m.Promotion() != NoKind && intention.Promotion == NoKind {
			promotionMissing = true
		}
	}
	if promotionMissing {
		return BoardMove{}, ErrPromotionRequired
	}
	return BoardMove{}, &IllegalMoveError{Intention: intention}
}

// Apply returns the state after the move. The move is assumed legal.
func (s BoardState) Apply(m BoardMove) BoardState {
	next := s
	next.board = m.Apply(s.board)
	next.toMove = s.toMove.Opposite()
	next.castlingRights = s.castlingRights &^ lostCastlingRights(m)
	next.enPassant = NoPosition
	if m.Piece().Kind == Pawn && abs(m.To().Rank-m.From().Rank) == 2 {
		skipped := Position{File: m.From().File, Rank: (m.From().Rank + m.To().Rank) / 2}
		if next.board.hasAdjacentPawn(m.To(), next.toMove) {
			next.enPassant = skipped
		}
	}
	if m.Piece().Kind == Pawn || m.IsCapture(s.board) {
		next.halfMoveClock = 0
	} else {
		next.halfMoveClock = s.halfMoveClock + 1
	}
	if s.toMove == Black {
		next.fullMoveNumber = s.fullMoveNumber + 1
	}
	return next
}

// SamePosition returns true if both states have the same board, side to
// move, castling rights and en-passant target. Clocks are ignored.
func (s BoardState) SamePosition(other BoardState) bool {
	return s.board == other.board &&
		s.toMove == other.toMove &&
		s.castlingRights == other.castlingRights &&
		s.enPassant == other.enPassant
}

// String implements the fmt.Stringer interface and returns the FEN.
func (s BoardState) String() string {
	return encodeFEN(s)
}

var castlingCorners = map[Position]CastlingRights{
	{File: 1, Rank: 1}: WhiteQueenSide,
	{File: 8, Rank: 1}: WhiteKingSide,
	{File: 1, Rank: 8}: BlackQueenSide,
	{File: 8, Rank: 8}: BlackKingSide,
}

// lostCastlingRights returns the rights a move gives up: all rights of a
// moving king, and the right tied to any corner a piece leaves or lands on.
func lostCastlingRights(m BoardMove) CastlingRights {
	lost := NoCastlingRights
	if m.Piece().Kind == King {
		lost |= CastlingRight(m.Piece().Set, true) | CastlingRight(m.Piece().Set, false)
	}
	lost |= castlingCorners[m.From()] | castlingCorners[m.To()]
	return lost
}

func (b Board) hasAdjacentPawn(p Position, set Set) bool {
	pawn := NewPiece(Pawn, set)
	for _, df := range []int{-1, 1} {
		if side, ok := p.Offset(df, 0); ok && b.Piece(side) == pawn {
			return true
		}
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
