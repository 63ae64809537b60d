package chess

import (
	"errors"
	"fmt"
)

var (
	// ErrGameOver is returned when a move is attempted on a finished game.
	ErrGameOver = errors.New("chess: game is over")
	// ErrPromotionRequired is returned when a pawn reaches its last rank
	// and the intention does not name the promotion piece.
	ErrPromotionRequired = errors.New("chess: promotion piece required")
	// ErrNoGameFound is wrapped in the ParseError returned for PGN text that
	// holds no game.
	ErrNoGameFound = errors.New("chess: no game found")
	// ErrNoPendingPromotion is returned by Controller.Promote when no pawn
	// move waits for a promotion piece.
	ErrNoPendingPromotion = errors.New("chess: no pending promotion")
	// ErrUnknownPreset is returned when a preset name is not registered.
	ErrUnknownPreset = errors.New("chess: unknown preset")
)

// An IllegalMoveError reports an intention that matches no legal move.
type IllegalMoveError struct {
	Intention MoveIntention
}

// Error implements the error interface.
func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("chess: illegal move %s", e.Intention)
}

// A ParseError reports malformed notation text. Position is the index of
// the offending token, or of the offending field for FEN.
type ParseError struct {
	Message  string
	Token    string
	Position int
	Err      error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	msg := fmt.Sprintf("chess: parse error at %d: %s", e.Position, e.Message)
	if e.Token != "" {
		msg += fmt.Sprintf(" (%q)", e.Token)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error, if any.
func (e *ParseError) Unwrap() error {
	return e.Err
}
