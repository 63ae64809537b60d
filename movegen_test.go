package chess

import (
	"sort"
	"testing"

	notnil "github.com/notnil/chess"
)

func perft(s BoardState, depth int) int {
	if depth == 0 {
		return 1
	}
	moves := s.LegalMoves()
	if depth == 1 {
		return len(moves)
	}
	nodes := 0
	for _, m := range moves {
		nodes += perft(s.Apply(m), depth-1)
	}
	return nodes
}

func mustDecodeFEN(t *testing.T, fen string) BoardState {
	t.Helper()
	s, err := decodeFEN(fen)
	if err != nil {
		t.Fatalf("decode %s: %v", fen, err)
	}
	return s
}

const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func TestPerft(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		nodes []int
	}{
		{
			name:  "starting position",
			fen:   "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
			nodes: []int{20, 400, 8902},
		},
		{
			name:  "kiwipete",
			fen:   kiwipete,
			nodes: []int{48, 2039},
		},
		{
			name:  "en passant pins",
			fen:   "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
			nodes: []int{14, 191, 2812},
		},
		{
			name:  "promotions and castling",
			fen:   "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
			nodes: []int{6, 264},
		},
		{
			name:  "discovered checks",
			fen:   "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
			nodes: []int{44, 1486},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustDecodeFEN(t, tt.fen)
			for i, want := range tt.nodes {
				if testing.Short() && want > 5000 {
					continue
				}
				if got := perft(s, i+1); got != want {
					t.Fatalf("perft(%d) = %d, want %d", i+1, got, want)
				}
			}
		})
	}
}

func uciMoves(moves []BoardMove) []string {
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.String())
	}
	sort.Strings(out)
	return out
}

func referenceMoves(position *notnil.Position) []string {
	moves := position.ValidMoves()
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.String())
	}
	sort.Strings(out)
	return out
}

func equalMoves(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TestLegalMovesMatchReference compares the legal moves of every position
// two plies deep against an independent move generator.
func TestLegalMovesMatchReference(t *testing.T) {
	fens := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		kiwipete,
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			opt, err := notnil.FEN(fen)
			if err != nil {
				t.Fatal(err)
			}
			ref := notnil.NewGame(opt).Position()
			s := mustDecodeFEN(t, fen)

			got, want := uciMoves(s.LegalMoves()), referenceMoves(ref)
			if !equalMoves(got, want) {
				t.Fatalf("moves differ\n got %v\nwant %v", got, want)
			}

			refByUCI := make(map[string]*notnil.Move)
			for _, m := range ref.ValidMoves() {
				refByUCI[m.String()] = m
			}
			for _, m := range s.LegalMoves() {
				refMove, ok := refByUCI[m.String()]
				if !ok {
					t.Fatalf("reference has no move %s", m)
				}
				next, refNext := s.Apply(m), ref.Update(refMove)
				got, want := uciMoves(next.LegalMoves()), referenceMoves(refNext)
				if !equalMoves(got, want) {
					t.Fatalf("after %s moves differ\n got %v\nwant %v", m, got, want)
				}
			}
		})
	}
}

func TestSlidingPiecesStopAtBlockers(t *testing.T) {
	s := mustDecodeFEN(t, "4k3/8/8/2p5/8/2R1P3/8/4K3 w - - 0 1")
	got := uciMoves(s.LegalMovesFrom(Position{3, 3}))
	want := []string{"c3a3", "c3b3", "c3c1", "c3c2", "c3c4", "c3c5", "c3d3"}
	if !equalMoves(got, want) {
		t.Fatalf("rook moves = %v, want %v", got, want)
	}
	captures := uciMoves(s.LegalCapturesFrom(Position{3, 3}))
	if !equalMoves(captures, []string{"c3c5"}) {
		t.Fatalf("rook captures = %v, want [c3c5]", captures)
	}
}

func TestPinnedPieceCannotMove(t *testing.T) {
	s := mustDecodeFEN(t, "4r1k1/8/8/8/8/8/4B3/4K3 w - - 0 1")
	if moves := s.LegalMovesFrom(Position{5, 2}); len(moves) != 0 {
		t.Fatalf("pinned bishop should have no moves but has %v", uciMoves(moves))
	}
	if n := len(s.CandidateMoves(Position{5, 2})); n == 0 {
		t.Fatal("candidate moves ignore pins")
	}
}

func TestLegalMovesFromOpponentPiece(t *testing.T) {
	s := StartingBoardState()
	if moves := s.LegalMovesFrom(Position{5, 7}); moves != nil {
		t.Fatalf("expected no moves for the side not to move but got %v", uciMoves(moves))
	}
	if moves := s.LegalMovesFrom(Position{5, 4}); moves != nil {
		t.Fatal("expected no moves from an empty square")
	}
}

func TestCastlingPreconditions(t *testing.T) {
	tests := []struct {
		name      string
		fen       string
		kingSide  bool
		queenSide bool
	}{
		{name: "both available", fen: "4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1", kingSide: true, queenSide: true},
		{name: "no rights", fen: "4k3/8/8/8/8/8/8/R3K2R w - - 0 1"},
		{name: "king side right only", fen: "4k3/8/8/8/8/8/8/R3K2R w K - 0 1", kingSide: true},
		{name: "blocked by knight", fen: "4k3/8/8/8/8/8/8/RN2K1NR w KQ - 0 1"},
		{name: "b1 blocked only matters queen side", fen: "4k3/8/8/8/8/8/8/RN2K2R w KQ - 0 1", kingSide: true},
		{name: "king in check", fen: "4k3/8/8/8/8/8/4r3/R3K2R w KQ - 0 1"},
		{name: "passing square attacked", fen: "4k3/8/8/8/8/8/5r2/R3K2R w KQ - 0 1", queenSide: true},
		{name: "landing square attacked", fen: "4k3/8/8/8/8/8/2r5/R3K2R w KQ - 0 1", kingSide: true},
		{name: "b1 attacked does not matter", fen: "4k3/8/8/8/8/8/1r6/R3K2R w KQ - 0 1", kingSide: true, queenSide: true},
		{name: "rook missing", fen: "4k3/8/8/8/8/8/8/4K2R w KQ - 0 1", kingSide: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustDecodeFEN(t, tt.fen)
			var kingSide, queenSide bool
			for _, m := range s.LegalMovesFrom(Position{5, 1}) {
				if m.IsCastling() {
					if m.IsKingSideCastling() {
						kingSide = true
					} else {
						queenSide = true
					}
				}
			}
			if kingSide != tt.kingSide || queenSide != tt.queenSide {
				t.Fatalf("castling O-O %v O-O-O %v, want %v %v", kingSide, queenSide, tt.kingSide, tt.queenSide)
			}
		})
	}
}

func TestCastlingMovesRook(t *testing.T) {
	s := mustDecodeFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1")
	m, err := s.Resolve(MoveIntention{From: Position{5, 8}, To: Position{3, 8}})
	if err != nil {
		t.Fatal(err)
	}
	next := s.Apply(m)
	b := next.Board()
	if b.Piece(Position{3, 8}) != NewPiece(King, Black) || b.Piece(Position{4, 8}) != NewPiece(Rook, Black) {
		t.Fatalf("unexpected board after O-O-O%s", b.Draw())
	}
	if !b.Square(Position{1, 8}).IsEmpty() || !b.Square(Position{5, 8}).IsEmpty() {
		t.Fatal("king and rook should have left their squares")
	}
	if next.CastlingRights() != WhiteKingSide|WhiteQueenSide {
		t.Fatalf("expected KQ but got %s", next.CastlingRights())
	}
}

func TestCastlingRightsLostWhenRookCaptured(t *testing.T) {
	s := mustDecodeFEN(t, "r3k2r/8/8/8/8/8/6b1/R3K2R b KQkq - 0 1")
	m, err := s.Resolve(MoveIntention{From: Position{7, 2}, To: Position{8, 1}})
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Apply(m).CastlingRights(); got.Has(WhiteKingSide) || !got.Has(WhiteQueenSide) {
		t.Fatalf("expected white to lose only O-O but got %s", got)
	}
}

func TestEnPassant(t *testing.T) {
	s := StartingBoardState()
	for _, uci := range []string{"e2e4", "a7a6", "e4e5", "d7d5"} {
		m, err := UCINotation{}.Decode(s, uci)
		if err != nil {
			t.Fatal(err)
		}
		s = s.Apply(m)
	}
	target, ok := s.EnPassantTarget()
	if !ok || target != (Position{4, 6}) {
		t.Fatalf("expected en passant target d6 but got %s", target)
	}
	m, err := s.Resolve(MoveIntention{From: Position{5, 5}, To: Position{4, 6}})
	if err != nil {
		t.Fatal(err)
	}
	if !m.IsEnPassant() || !m.IsCapture(s.Board()) {
		t.Fatal("expected an en passant capture")
	}
	found := false
	for _, c := range s.LegalCapturesFrom(Position{5, 5}) {
		found = found || c.IsEnPassant()
	}
	if !found {
		t.Fatal("legal captures should include en passant")
	}
	next := s.Apply(m)
	if !next.Square(Position{4, 5}).IsEmpty() {
		t.Fatal("the passed pawn should be removed")
	}
	if next.HalfMoveClock() != 0 {
		t.Fatal("a capture resets the half move clock")
	}

	// one ply later the right is gone
	s = s.Apply(mustResolve(t, s, "g1f3"))
	s = s.Apply(mustResolve(t, s, "a6a5"))
	if _, ok := s.EnPassantTarget(); ok {
		t.Fatal("en passant must be taken immediately")
	}
	if _, err := s.Resolve(MoveIntention{From: Position{5, 5}, To: Position{4, 6}}); err == nil {
		t.Fatal("en passant should have expired")
	}
}

func TestEnPassantTargetNeedsCapturer(t *testing.T) {
	s := StartingBoardState().Apply(mustResolve(t, StartingBoardState(), "e2e4"))
	if _, ok := s.EnPassantTarget(); ok {
		t.Fatal("no black pawn can capture, so no target is recorded")
	}
}

func TestPromotionGeneratesEveryKind(t *testing.T) {
	s := mustDecodeFEN(t, "1r5k/P7/8/8/8/8/8/K7 w - - 0 1")
	got := uciMoves(s.LegalMovesFrom(Position{1, 7}))
	want := []string{"a7a8b", "a7a8n", "a7a8q", "a7a8r", "a7b8b", "a7b8n", "a7b8q", "a7b8r"}
	if !equalMoves(got, want) {
		t.Fatalf("promotions = %v, want %v", got, want)
	}
}

func TestIsAttacked(t *testing.T) {
	s := mustDecodeFEN(t, "4k3/8/8/3p4/8/8/8/4K3 w - - 0 1")
	if !s.IsAttacked(Position{3, 4}, Black) || !s.IsAttacked(Position{5, 4}, Black) {
		t.Fatal("black pawn on d5 attacks c4 and e4")
	}
	if s.IsAttacked(Position{4, 4}, Black) {
		t.Fatal("pawns do not attack straight ahead")
	}
}

func mustResolve(t *testing.T, s BoardState, uci string) BoardMove {
	t.Helper()
	m, err := UCINotation{}.Decode(s, uci)
	if err != nil {
		t.Fatalf("%s: %v", uci, err)
	}
	return m
}
