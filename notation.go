package chess

import (
	"fmt"
	"regexp"
	"strings"
)

// Notation encodes and decodes moves of a given BoardState.
type Notation interface {
	Encode(s BoardState, m BoardMove) string
	Decode(s BoardState, text string) (BoardMove, error)
}

// AlgebraicNotation (or Standard Algebraic Notation) is the format used by
// PGN, e.g. "Nf3", "exd6", "O-O", "e8=Q#".
type AlgebraicNotation struct{}

// UCINotation is the coordinate format used by the UCI protocol, e.g.
// "e2e4" or "e7e8q".
type UCINotation struct{}

// String implements the fmt.Stringer interface.
func (AlgebraicNotation) String() string {
	return "Algebraic Notation"
}

// String implements the fmt.Stringer interface.
func (UCINotation) String() string {
	return "UCI Notation"
}

// Encode implements the Notation interface. The check or mate suffix is
// derived by playing the move.
func (AlgebraicNotation) Encode(s BoardState, m BoardMove) string {
	next := s.Apply(m)
	effect := EffectNone
	if next.InCheck() {
		effect = EffectCheck
		if !next.HasLegalMoves() {
			effect = EffectCheckmate
		}
	}
	return encodeSAN(s, m, effect)
}

var sanPattern = regexp.MustCompile(`^([KQRBN])?([a-h])?([1-8])?(x)?([a-h][1-8])(=?([QRBNqrbn]))?$`)

type sanParts struct {
	kind       Kind
	originFile string
	originRank string
	capture    bool
	target     Position
	promotion  Kind
	kingSide   bool
	castle     bool
}

func algebraicNotationParts(text string) (sanParts, error) {
	s := strings.TrimRight(strings.TrimSpace(text), "+#!?")
	switch s {
	case "O-O", "0-0":
		return sanParts{castle: true, kingSide: true, kind: King}, nil
	case "O-O-O", "0-0-0":
		return sanParts{castle: true, kind: King}, nil
	}
	match := sanPattern.FindStringSubmatch(s)
	if match == nil {
		return sanParts{}, fmt.Errorf("chess: invalid algebraic notation %q", text)
	}
	target, err := ParsePosition(match[5])
	if err != nil {
		return sanParts{}, err
	}
	parts := sanParts{
		kind:       Pawn,
		originFile: match[2],
		originRank: match[3],
		capture:    match[4] == "x",
		target:     target,
		promotion:  KindFromLetter(match[7]),
	}
	if match[1] != "" {
		parts.kind = KindFromLetter(match[1])
	}
	if parts.promotion != NoKind && parts.kind != Pawn {
		return sanParts{}, fmt.Errorf("chess: only pawns promote in %q", text)
	}
	return parts, nil
}

// ValidateSAN checks the syntax of a SAN move. It does not check whether the
// move is legal in any position.
func ValidateSAN(s string) error {
	_, err := algebraicNotationParts(s)
	return err
}

// Decode implements the Notation interface.
func (AlgebraicNotation) Decode(s BoardState, text string) (BoardMove, error) {
	parts, err := algebraicNotationParts(text)
	if err != nil {
		return BoardMove{}, err
	}
	var found []BoardMove
	promotionMissing := false
	for _, m := range s.LegalMoves() {
		if parts.castle {
			if m.IsCastling() && m.IsKingSideCastling() == parts.kingSide {
				found = append(found, m)
			}
			continue
		}
		if m.Piece().Kind != parts.kind || m.To() != parts.target {
			continue
		}
		if parts.originFile != "" && m.From().FileLetter() != parts.originFile {
			continue
		}
		if parts.originRank != "" && fmt.Sprint(m.From().Rank) != parts.originRank {
			continue
		}
		if m.Promotion() != parts.promotion {
			promotionMissing = promotionMissing || parts.promotion == NoKind
			continue
		}
		if parts.capture && !m.IsCapture(s.board) {
			continue
		}
		found = append(found, m)
	}
	switch {
	case len(found) == 1:
		return found[0], nil
	case len(found) > 1:
		return BoardMove{}, fmt.Errorf("chess: ambiguous move %q", text)
	case promotionMissing:
		return BoardMove{}, fmt.Errorf("chess: move %q: %w", text, ErrPromotionRequired)
	}
	return BoardMove{}, fmt.Errorf("chess: move %q is not legal in %s", text, s)
}

// encodeSAN writes the move in SAN with the suffix matching effect.
func encodeSAN(s BoardState, m BoardMove, effect MoveEffect) string {
	var sb strings.Builder
	switch {
	case m.IsCastling() && m.IsKingSideCastling():
		sb.WriteString("O-O")
	case m.IsCastling():
		sb.WriteString("O-O-O")
	case m.Piece().Kind == Pawn:
		if m.IsCapture(s.board) {
			sb.WriteString(m.From().FileLetter())
			sb.WriteString("x")
		}
		sb.WriteString(m.To().String())
		if promo := m.Promotion(); promo != NoKind {
			sb.WriteString("=")
			sb.WriteString(promo.Letter())
		}
	default:
		sb.WriteString(m.Piece().Kind.Letter())
		sb.WriteString(disambiguation(s, m))
		if m.IsCapture(s.board) {
			sb.WriteString("x")
		}
		sb.WriteString(m.To().String())
	}
	switch effect {
	case EffectCheck:
		sb.WriteString("+")
	case EffectCheckmate:
		sb.WriteString("#")
	}
	return sb.String()
}

// disambiguation returns the origin file, rank or square needed to tell the
// move apart from other legal moves of the same kind to the same target.
func disambiguation(s BoardState, m BoardMove) string {
	var rivals []Position
	for i, piece := range s.board.pieces {
		from := positionAt(i)
		if piece != m.Piece() || from == m.From() {
			continue
		}
		for _, other := range s.LegalMovesFrom(from) {
			if other.To() == m.To() {
				rivals = append(rivals, from)
				break
			}
		}
	}
	if len(rivals) == 0 {
		return ""
	}
	sameFile, sameRank := false, false
	for _, r := range rivals {
		sameFile = sameFile || r.File == m.From().File
		sameRank = sameRank || r.Rank == m.From().Rank
	}
	switch {
	case !sameFile:
		return m.From().FileLetter()
	case !sameRank:
		return fmt.Sprint(m.From().Rank)
	}
	return m.From().String()
}

// Encode implements the Notation interface.
func (UCINotation) Encode(_ BoardState, m BoardMove) string {
	return m.String()
}

// Decode implements the Notation interface.
func (UCINotation) Decode(s BoardState, text string) (BoardMove, error) {
	intention, err := ParseMoveIntention(text)
	if err != nil {
		return BoardMove{}, err
	}
	return s.Resolve(intention)
}

// ParseMoveIntention parses a UCI coordinate move such as "e2e4" or "e7e8q".
func ParseMoveIntention(text string) (MoveIntention, error) {
	t := strings.TrimSpace(text)
	if len(t) != 4 && len(t) != 5 {
		return MoveIntention{}, fmt.Errorf("chess: invalid coordinate move %q", text)
	}
	from, err := ParsePosition(t[0:2])
	if err != nil {
		return MoveIntention{}, err
	}
	to, err := ParsePosition(t[2:4])
	if err != nil {
		return MoveIntention{}, err
	}
	intention := MoveIntention{From: from, To: to}
	if len(t) == 5 {
		intention.Promotion = KindFromLetter(t[4:])
		if intention.Promotion == NoKind || intention.Promotion == King || intention.Promotion == Pawn {
			return MoveIntention{}, fmt.Errorf("chess: invalid promotion in %q", text)
		}
	}
	return intention, nil
}

func isCoordinateMoveToken(t string) bool {
	_, err := ParseMoveIntention(t)
	return err == nil
}
