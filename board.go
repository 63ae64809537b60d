package chess

import "strings"

const boardSize = 64

// A Board maps every position to exactly one square. It is a value type:
// the methods that change occupancy return a new Board and leave the
// receiver untouched.
type Board struct {
	pieces [boardSize]Piece
}

// NewBoard returns a board holding the given pieces. Entries with invalid
// positions or NoPiece are ignored.
func NewBoard(pieces map[Position]Piece) Board {
	var b Board
	for pos, piece := range pieces {
		if pos.IsValid() {
			b.pieces[pos.index()] = piece
		}
	}
	return b
}

// StandardBoard returns the board of the standard starting position.
func StandardBoard() Board {
	var b Board
	backRank := []Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file := minCoord; file <= maxCoord; file++ {
		kind := backRank[file-1]
		b.pieces[Position{file, 1}.index()] = NewPiece(kind, White)
		b.pieces[Position{file, 2}.index()] = NewPiece(Pawn, White)
		b.pieces[Position{file, 7}.index()] = NewPiece(Pawn, Black)
		b.pieces[Position{file, 8}.index()] = NewPiece(kind, Black)
	}
	return b
}

// Square returns the square at the given position. Off-board positions
// yield an empty square carrying the position.
func (b Board) Square(p Position) Square {
	return Square{Position: p, Piece: b.Piece(p)}
}

// Piece returns the piece at the given position or NoPiece.
func (b Board) Piece(p Position) Piece {
	if !p.IsValid() {
		return NoPiece
	}
	return b.pieces[p.index()]
}

// With returns a copy of the board with the piece placed at p.
func (b Board) With(p Position, piece Piece) Board {
	if p.IsValid() {
		b.pieces[p.index()] = piece
	}
	return b
}

// Without returns a copy of the board with the square at p emptied.
func (b Board) Without(p Position) Board {
	return b.With(p, NoPiece)
}

// Squares returns all 64 squares ordered a1, b1 ... h8.
func (b Board) Squares() []Square {
	squares := make([]Square, boardSize)
	for i := range b.pieces {
		squares[i] = Square{Position: positionAt(i), Piece: b.pieces[i]}
	}
	return squares
}

// Pieces returns the occupied positions and their pieces.
func (b Board) Pieces() map[Position]Piece {
	m := make(map[Position]Piece)
	for i, piece := range b.pieces {
		if !piece.IsNone() {
			m[positionAt(i)] = piece
		}
	}
	return m
}

// Find returns every position holding the given piece. The lookup is
// recomputed on every call; pieces never remember where they stand.
func (b Board) Find(piece Piece) []Position {
	var positions []Position
	for i, p := range b.pieces {
		if p == piece && !p.IsNone() {
			positions = append(positions, positionAt(i))
		}
	}
	return positions
}

// King returns the position of the king of the given set.
func (b Board) King(set Set) (Position, bool) {
	king := NewPiece(King, set)
	for i, p := range b.pieces {
		if p == king {
			return positionAt(i), true
		}
	}
	return NoPosition, false
}

func (b Board) count(piece Piece) int {
	n := 0
	for _, p := range b.pieces {
		if p == piece {
			n++
		}
	}
	return n
}

// Draw returns a visual representation of the board useful for debugging.
func (b Board) Draw() string {
	var sb strings.Builder
	sb.WriteString("\n A B C D E F G H\n")
	for rank := maxCoord; rank >= minCoord; rank-- {
		sb.WriteByte(byte('0' + rank))
		for file := minCoord; file <= maxCoord; file++ {
			piece := b.Piece(Position{file, rank})
			if piece.IsNone() {
				sb.WriteString("-")
			} else {
				sb.WriteString(piece.Symbol())
			}
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// hasSufficientMaterial reports whether either side could still deliver
// mate. Bare kings, king and minor piece, and kings with same coloured
// bishops only are insufficient.
func (b Board) hasSufficientMaterial() bool {
	var minors, lightBishops, darkBishops int
	for i, p := range b.pieces {
		switch p.Kind {
		case Queen, Rook, Pawn:
			return true
		case Knight:
			minors++
		case Bishop:
			minors++
			if positionAt(i).IsDark() {
				darkBishops++
			} else {
				lightBishops++
			}
		}
	}
	if minors <= 1 {
		return false
	}
	bishopsOnly := lightBishops+darkBishops == minors
	if bishopsOnly && (lightBishops == 0 || darkBishops == 0) {
		return false
	}
	return true
}
