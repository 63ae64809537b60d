package server

import (
	"github.com/mway1/chess"
)

// SquareView is one occupied square of the board.
type SquareView struct {
	Square string `json:"square"`
	Piece  string `json:"piece"`
	Symbol string `json:"symbol"`
}

// MoveView describes a played move.
type MoveView struct {
	From     string `json:"from"`
	To       string `json:"to"`
	UCI      string `json:"uci"`
	Notation string `json:"notation"`
}

// View is the JSON representation of a session sent to the browser board.
type View struct {
	ID               string       `json:"id"`
	FEN              string       `json:"fen"`
	ToMove           string       `json:"toMove"`
	Pieces           []SquareView `json:"pieces"`
	Selected         string       `json:"selected,omitempty"`
	PendingPromotion string       `json:"pendingPromotion,omitempty"`
	Highlighted      []string     `json:"highlighted"`
	Clickable        []string     `json:"clickable"`
	LastMove         *MoveView    `json:"lastMove,omitempty"`
	Moves            []string     `json:"moves"`
	CurrentIndex     int          `json:"currentIndex"`
	CanStepBack      bool         `json:"canStepBack"`
	CanStepForward   bool         `json:"canStepForward"`
	Resolution       string       `json:"resolution"`
	Method           string       `json:"method"`
	Outcome          string       `json:"outcome"`
}

func newView(id string, c *chess.Controller) View {
	state := c.CurrentState()
	board := state.BoardState.Board()
	ui := c.UiState()

	v := View{
		ID:             id,
		FEN:            state.BoardState.String(),
		ToMove:         state.BoardState.ToMove().String(),
		Highlighted:    positionNames(c.HighlightedPositions()),
		Clickable:      positionNames(c.ClickablePositions()),
		Moves:          []string{},
		CurrentIndex:   c.Game().CurrentIndex(),
		CanStepBack:    c.CanStepBack(),
		CanStepForward: c.CanStepForward(),
		Resolution:     state.Resolution.String(),
		Method:         state.Method.String(),
		Outcome:        state.Outcome().String(),
	}
	for _, sq := range board.Squares() {
		if sq.IsNotEmpty() {
			v.Pieces = append(v.Pieces, SquareView{
				Square: sq.Position.String(),
				Piece:  sq.Piece.Letter(),
				Symbol: sq.Piece.Symbol(),
			})
		}
	}
	if ui.HasSelection() {
		v.Selected = ui.Selected.String()
	}
	if ui.PendingPromotion != nil {
		v.PendingPromotion = ui.PendingPromotion.String()
	}
	if last := state.LastMove; last != nil {
		v.LastMove = &MoveView{
			From:     last.From().String(),
			To:       last.To().String(),
			UCI:      last.BoardMove.String(),
			Notation: last.Notation,
		}
	}
	for _, m := range c.Game().Moves() {
		v.Moves = append(v.Moves, m.Notation)
	}
	return v
}

func positionNames(positions []chess.Position) []string {
	names := make([]string, 0, len(positions))
	for _, p := range positions {
		names = append(names, p.String())
	}
	return names
}
