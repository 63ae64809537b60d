package chess

import (
	"strconv"
	"strings"
)

const (
	fenFields     = 6
	fenMinFields  = 4
	fenBoardField = 0
)

// encodeFEN returns the FEN of the board state.
func encodeFEN(s BoardState) string {
	fields := []string{
		encodeFENBoard(s.board),
		s.toMove.letter(),
		s.castlingRights.String(),
		s.enPassant.String(),
		strconv.Itoa(s.halfMoveClock),
		strconv.Itoa(s.fullMoveNumber),
	}
	return strings.Join(fields, " ")
}

func encodeFENBoard(b Board) string {
	var sb strings.Builder
	for rank := maxCoord; rank >= minCoord; rank-- {
		empty := 0
		for file := minCoord; file <= maxCoord; file++ {
			piece := b.Piece(Position{File: file, Rank: rank})
			if piece.IsNone() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.Letter())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > minCoord {
			sb.WriteString("/")
		}
	}
	return sb.String()
}

// decodeFEN parses a FEN string. The clocks may be omitted and default to
// "0 1". ParseError.Position is the index of the offending field.
func decodeFEN(fen string) (BoardState, error) {
	fields := strings.Fields(fen)
	if len(fields) != fenFields && len(fields) != fenMinFields {
		return BoardState{}, &ParseError{Message: "FEN must have 4 or 6 fields", Token: fen}
	}
	if len(fields) == fenMinFields {
		fields = append(fields, "0", "1")
	}

	board, err := decodeFENBoard(fields[fenBoardField])
	if err != nil {
		return BoardState{}, err
	}

	var toMove Set
	switch fields[1] {
	case "w":
		toMove = White
	case "b":
		toMove = Black
	default:
		return BoardState{}, &ParseError{Message: "invalid side to move", Token: fields[1], Position: 1}
	}

	rights, err := ParseCastlingRights(fields[2])
	if err != nil {
		return BoardState{}, &ParseError{Message: "invalid castling rights", Token: fields[2], Position: 2, Err: err}
	}

	enPassant := NoPosition
	if fields[3] != "-" {
		enPassant, err = ParsePosition(fields[3])
		if err != nil {
			return BoardState{}, &ParseError{Message: "invalid en passant square", Token: fields[3], Position: 3, Err: err}
		}
		wantRank := 6
		if toMove == Black {
			wantRank = 3
		}
		if enPassant.Rank != wantRank {
			return BoardState{}, &ParseError{Message: "en passant square on wrong rank", Token: fields[3], Position: 3}
		}
	}

	halfMoveClock, err := strconv.Atoi(fields[4])
	if err != nil || halfMoveClock < 0 {
		return BoardState{}, &ParseError{Message: "invalid half move clock", Token: fields[4], Position: 4, Err: err}
	}
	fullMoveNumber, err := strconv.Atoi(fields[5])
	if err != nil || fullMoveNumber < 1 {
		return BoardState{}, &ParseError{Message: "invalid full move number", Token: fields[5], Position: 5, Err: err}
	}

	s := NewBoardState(board, toMove, rights, enPassant, halfMoveClock, fullMoveNumber)
	if s.board.isAttacked(mustKing(s.board, toMove.Opposite()), toMove) {
		return BoardState{}, &ParseError{Message: "side not to move is in check", Token: fen}
	}
	return s, nil
}

func decodeFENBoard(field string) (Board, error) {
	ranks := strings.Split(field, "/")
	if len(ranks) != maxCoord {
		return Board{}, &ParseError{Message: "board must have 8 ranks", Token: field}
	}
	var b Board
	for i, row := range ranks {
		rank := maxCoord - i
		file := minCoord
		for _, r := range row {
			if r >= '1' && r <= '8' {
				file += int(r - '0')
				continue
			}
			piece := PieceFromLetter(string(r))
			if piece.IsNone() || file > maxCoord {
				return Board{}, &ParseError{Message: "invalid rank", Token: row}
			}
			b = b.With(Position{File: file, Rank: rank}, piece)
			file++
		}
		if file != maxCoord+1 {
			return Board{}, &ParseError{Message: "rank must have 8 files", Token: row}
		}
	}
	for _, set := range []Set{White, Black} {
		if b.count(NewPiece(King, set)) != 1 {
			return Board{}, &ParseError{Message: "each side needs exactly one king", Token: field}
		}
	}
	return b, nil
}

func mustKing(b Board, set Set) Position {
	p, _ := b.King(set)
	return p
}

// FENConverter imports and exports single positions as FEN. Only the
// board state survives a round trip: exported states come back without
// LastMove or Move and are re-evaluated under the default draw rules, so a
// repetition draw reads as in progress. Use PGNConverter to keep the line.
type FENConverter struct{}

// Import implements the Converter interface.
func (FENConverter) Import(text string) (GameState, error) {
	s, err := decodeFEN(text)
	if err != nil {
		return GameState{}, err
	}
	return NewGameState(s, DrawRules{}), nil
}

// Export implements the Converter interface.
func (FENConverter) Export(state GameState) (string, error) {
	return encodeFEN(state.BoardState), nil
}

// String implements the fmt.Stringer interface.
func (FENConverter) String() string {
	return "FEN"
}
