package chess

type delta struct {
	file int
	rank int
}

var (
	rookDirections   = []delta{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	bishopDirections = []delta{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	queenDirections  = append(append([]delta{}, rookDirections...), bishopDirections...)
	kingDeltas       = queenDirections
	knightDeltas     = []delta{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
)

// CandidateMoves returns the pseudo-legal moves of the piece standing at
// from. Generation ignores whether the mover's own king ends up in check;
// BoardState filters those out.
func (p Piece) CandidateMoves(s BoardState, from Position) []BoardMove {
	switch p.Kind {
	case King:
		return append(stepMoves(s.board, from, p, kingDeltas), castlingMoves(s, from, p)...)
	case Queen:
		return lineMoves(s.board, from, p, queenDirections)
	case Rook:
		return lineMoves(s.board, from, p, rookDirections)
	case Bishop:
		return lineMoves(s.board, from, p, bishopDirections)
	case Knight:
		return stepMoves(s.board, from, p, knightDeltas)
	case Pawn:
		return pawnMoves(s, from, p)
	}
	return nil
}

// stepMoves handles pieces that jump exactly once per delta: a target is a
// candidate if it is on the board and empty or held by the opposite set.
func stepMoves(b Board, from Position, piece Piece, deltas []delta) []BoardMove {
	var moves []BoardMove
	for _, d := range deltas {
		target, ok := from.Offset(d.file, d.rank)
		if !ok || b.Square(target).HasPiece(piece.Set) {
			continue
		}
		moves = append(moves, simpleMove(from, target, piece))
	}
	return moves
}

// lineMoves slides outward along each direction. It stops before a piece of
// the same set and on a piece of the opposite set.
func lineMoves(b Board, from Position, piece Piece, directions []delta) []BoardMove {
	var moves []BoardMove
	for _, d := range directions {
		target, ok := from.Offset(d.file, d.rank)
		for ok {
			square := b.Square(target)
			if square.HasPiece(piece.Set) {
				break
			}
			moves = append(moves, simpleMove(from, target, piece))
			if square.IsNotEmpty() {
				break
			}
			target, ok = target.Offset(d.file, d.rank)
		}
	}
	return moves
}

func pawnMoves(s BoardState, from Position, pawn Piece) []BoardMove {
	forward, startRank, lastRank := pawnGeometry(pawn.Set)
	var moves []BoardMove

	if one, ok := from.Offset(0, forward); ok && s.board.Square(one).IsEmpty() {
		moves = append(moves, pawnMove(from, one, pawn, lastRank)...)
		if two, ok := one.Offset(0, forward); ok && from.Rank == startRank && s.board.Square(two).IsEmpty() {
			moves = append(moves, simpleMove(from, two, pawn))
		}
	}

	for _, df := range []int{-1, 1} {
		target, ok := from.Offset(df, forward)
		if !ok {
			continue
		}
		square := s.board.Square(target)
		switch {
		case square.HasPiece(pawn.Set.Opposite()):
			moves = append(moves, pawnMove(from, target, pawn, lastRank)...)
		case square.IsEmpty() && target == s.enPassant && pawn.Set == s.toMove:
			passed := Position{File: target.File, Rank: from.Rank}
			if s.board.Piece(passed) != NewPiece(Pawn, pawn.Set.Opposite()) {
				continue
			}
			moves = append(moves, BoardMove{
				Move:        PrimaryMove{From: from, To: target, Piece: pawn},
				Consequence: &Consequence{Kind: RemovePiece, Position: passed},
			})
		}
	}
	return moves
}

// pawnMove returns the plain move, or one move per promotion kind when the
// pawn arrives on its last rank.
func pawnMove(from, to Position, pawn Piece, lastRank int) []BoardMove {
	if to.Rank != lastRank {
		return []BoardMove{simpleMove(from, to, pawn)}
	}
	moves := make([]BoardMove, 0, len(PromotionKinds))
	for _, kind := range PromotionKinds {
		moves = append(moves, BoardMove{
			Move: PrimaryMove{From: from, To: to, Piece: pawn},
			Consequence: &Consequence{
				Kind:     PromotePiece,
				Position: to,
				Piece:    NewPiece(kind, pawn.Set),
			},
		})
	}
	return moves
}

func pawnGeometry(set Set) (forward, startRank, lastRank int) {
	if set == Black {
		return -1, 7, 1
	}
	return 1, 2, 8
}

type castlingWing struct {
	kingSide bool
	rookFile int
	rookTo   int
	kingTo   int
	between  []int
	kingPath []int
}

var castlingWings = []castlingWing{
	{kingSide: true, rookFile: 8, rookTo: 6, kingTo: 7, between: []int{6, 7}, kingPath: []int{6, 7}},
	{kingSide: false, rookFile: 1, rookTo: 4, kingTo: 3, between: []int{2, 3, 4}, kingPath: []int{4, 3}},
}

// castlingMoves returns the castling moves available to the king at from.
// Each requires the right, the rook in its corner, empty squares between
// them, and a king that neither starts, passes nor lands on an attacked
// square.
func castlingMoves(s BoardState, from Position, king Piece) []BoardMove {
	rank := 1
	if king.Set == Black {
		rank = 8
	}
	if from != (Position{File: 5, Rank: rank}) {
		return nil
	}
	enemy := king.Set.Opposite()
	rook := NewPiece(Rook, king.Set)
	var moves []BoardMove
	for _, wing := range castlingWings {
		if !s.castlingRights.Has(CastlingRight(king.Set, wing.kingSide)) {
			continue
		}
		rookFrom := Position{File: wing.rookFile, Rank: rank}
		if s.board.Piece(rookFrom) != rook || !emptyFiles(s.board, rank, wing.between) {
			continue
		}
		if s.board.isAttacked(from, enemy) || attackedFiles(s.board, rank, wing.kingPath, enemy) {
			continue
		}
		moves = append(moves, BoardMove{
			Move:    PrimaryMove{From: from, To: Position{File: wing.kingTo, Rank: rank}, Piece: king},
			PreMove: &PreMove{From: rookFrom, To: Position{File: wing.rookTo, Rank: rank}, Piece: rook},
		})
	}
	return moves
}

func emptyFiles(b Board, rank int, files []int) bool {
	for _, f := range files {
		if b.Square(Position{File: f, Rank: rank}).IsNotEmpty() {
			return false
		}
	}
	return true
}

func attackedFiles(b Board, rank int, files []int, by Set) bool {
	for _, f := range files {
		if b.isAttacked(Position{File: f, Rank: rank}, by) {
			return true
		}
	}
	return false
}

func simpleMove(from, to Position, piece Piece) BoardMove {
	return BoardMove{Move: PrimaryMove{From: from, To: to, Piece: piece}}
}

// isAttacked answers "could a piece of set by capture on target". It walks
// the same geometry as candidate generation: pawns by their diagonals,
// kings and knights by their deltas, sliders up to the first blocker.
// Castling never captures and is not considered.
func (b Board) isAttacked(target Position, by Set) bool {
	for i, piece := range b.pieces {
		if piece.IsNone() || piece.Set != by {
			continue
		}
		if b.attacks(positionAt(i), piece, target) {
			return true
		}
	}
	return false
}

func (b Board) attacks(from Position, piece Piece, target Position) bool {
	df, dr := target.File-from.File, target.Rank-from.Rank
	switch piece.Kind {
	case Pawn:
		forward, _, _ := pawnGeometry(piece.Set)
		return dr == forward && abs(df) == 1
	case Knight:
		return containsDelta(knightDeltas, df, dr)
	case King:
		return containsDelta(kingDeltas, df, dr)
	case Rook:
		return b.slidesTo(from, target, rookDirections)
	case Bishop:
		return b.slidesTo(from, target, bishopDirections)
	case Queen:
		return b.slidesTo(from, target, queenDirections)
	}
	return false
}

func (b Board) slidesTo(from, target Position, directions []delta) bool {
	for _, d := range directions {
		p, ok := from.Offset(d.file, d.rank)
		for ok {
			if p == target {
				return true
			}
			if b.Square(p).IsNotEmpty() {
				break
			}
			p, ok = p.Offset(d.file, d.rank)
		}
	}
	return false
}

func containsDelta(deltas []delta, df, dr int) bool {
	for _, d := range deltas {
		if d.file == df && d.rank == dr {
			return true
		}
	}
	return false
}
