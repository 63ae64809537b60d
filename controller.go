package chess

import (
	"errors"
	"slices"
)

// UiState is the selection state of a board view. Selected is NoPosition
// when nothing is selected. PendingPromotion holds a pawn move that waits
// for the player to choose the promotion piece.
type UiState struct {
	Selected         Position
	PendingPromotion *MoveIntention
}

// HasSelection returns true if a square is selected.
func (u *UiState) HasSelection() bool {
	return u.Selected.IsValid()
}

func (u *UiState) clear() {
	u.Selected = NoPosition
	u.PendingPromotion = nil
}

// A Controller drives a Game from board clicks. It owns the selection
// state and translates clicks into move intentions.
type Controller struct {
	game *Game
	ui   *UiState
}

// NewController returns a controller for the game. A nil game starts a new
// standard game and a nil ui starts with nothing selected. When preset is
// not nil the controller is reset and the preset applied.
func NewController(game *Game, ui *UiState, preset Preset) (*Controller, error) {
	if game == nil {
		game = NewGame()
	}
	if ui == nil {
		ui = &UiState{}
	}
	c := &Controller{game: game, ui: ui}
	if preset != nil {
		if err := c.ApplyPreset(preset); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Game returns the controlled game.
func (c *Controller) Game() *Game {
	return c.game
}

// UiState returns the selection state.
func (c *Controller) UiState() *UiState {
	return c.ui
}

// CurrentState returns the game state at the cursor.
func (c *Controller) CurrentState() GameState {
	return c.game.CurrentState()
}

func (c *Controller) boardState() BoardState {
	return c.game.CurrentState().BoardState
}

// Square returns the square at p in the current position.
func (c *Controller) Square(p Position) Square {
	return c.boardState().Square(p)
}

// HighlightedPositions returns the origin and target of the last move
// followed by the selected square, if any.
func (c *Controller) HighlightedPositions() []Position {
	var positions []Position
	if last := c.CurrentState().LastMove; last != nil {
		positions = append(positions, last.From(), last.To())
	}
	if c.ui.HasSelection() {
		positions = append(positions, c.ui.Selected)
	}
	return positions
}

// ClickablePositions returns the squares of the side to move followed by
// the capture and move targets of the selected piece. A target reachable
// by both a capture and a plain move, or by several promotions, shows up
// once per list it belongs to.
func (c *Controller) ClickablePositions() []Position {
	s := c.boardState()
	var positions []Position
	for _, sq := range s.Board().Squares() {
		if sq.HasPiece(s.ToMove()) {
			positions = append(positions, sq.Position)
		}
	}
	positions = append(positions, targetPositions(c.PossibleCaptures())...)
	positions = append(positions, targetPositions(c.PossibleMoves())...)
	return positions
}

// PossibleMoves returns the legal moves of the selected piece.
func (c *Controller) PossibleMoves() []BoardMove {
	if !c.ui.HasSelection() {
		return nil
	}
	return c.boardState().LegalMovesFrom(c.ui.Selected)
}

// PossibleCaptures returns the legal captures of the selected piece.
func (c *Controller) PossibleCaptures() []BoardMove {
	if !c.ui.HasSelection() {
		return nil
	}
	return c.boardState().LegalCapturesFrom(c.ui.Selected)
}

// targetPositions returns the distinct targets of the moves in order.
func targetPositions(moves []BoardMove) []Position {
	var positions []Position
	for _, m := range moves {
		if !slices.Contains(positions, m.To()) {
			positions = append(positions, m.To())
		}
	}
	return positions
}

// OnClick handles a click on p. Clicks are ignored once the game is over.
// Clicking a piece of the side to move selects it, or clears the selection
// when it is already selected. Clicking a legal target of the selected
// piece plays the move; a pawn reaching its last rank parks the move in
// PendingPromotion instead. Any other click changes nothing.
func (c *Controller) OnClick(p Position) error {
	if c.CurrentState().IsOver() {
		return nil
	}
	c.ui.PendingPromotion = nil
	if c.Square(p).HasPiece(c.boardState().ToMove()) {
		if c.ui.Selected == p {
			c.ui.Selected = NoPosition
		} else {
			c.ui.Selected = p
		}
		return nil
	}
	if !slices.Contains(targetPositions(c.PossibleMoves()), p) {
		return nil
	}
	intention := MoveIntention{From: c.ui.Selected, To: p}
	_, err := c.ApplyIntention(intention)
	if errors.Is(err, ErrPromotionRequired) {
		c.ui.PendingPromotion = &intention
		return nil
	}
	return err
}

// Promote completes the pending promotion with the given kind.
func (c *Controller) Promote(kind Kind) (AppliedMove, error) {
	if c.ui.PendingPromotion == nil {
		return AppliedMove{}, ErrNoPendingPromotion
	}
	intention := *c.ui.PendingPromotion
	intention.Promotion = kind
	return c.ApplyIntention(intention)
}

// CancelPromotion drops the pending promotion and keeps the selection.
func (c *Controller) CancelPromotion() {
	c.ui.PendingPromotion = nil
}

// ApplyMove plays the move from one square to another.
func (c *Controller) ApplyMove(from, to Position) (AppliedMove, error) {
	return c.ApplyIntention(MoveIntention{From: from, To: to})
}

// ApplyIntention plays the intention at the game cursor and clears the
// selection. On error neither the game nor the selection changes.
func (c *Controller) ApplyIntention(intention MoveIntention) (AppliedMove, error) {
	m, err := c.game.ApplyMove(intention)
	if err != nil {
		return AppliedMove{}, err
	}
	c.ui.clear()
	return m, nil
}

// CanStepBack returns true if there is an earlier state.
func (c *Controller) CanStepBack() bool {
	return c.game.CanStepBack()
}

// CanStepForward returns true if there is a later state.
func (c *Controller) CanStepForward() bool {
	return c.game.CanStepForward()
}

// StepBackward moves one state back and clears the selection.
func (c *Controller) StepBackward() bool {
	if !c.game.StepBackward() {
		return false
	}
	c.ui.clear()
	return true
}

// StepForward moves one state forward and clears the selection.
func (c *Controller) StepForward() bool {
	if !c.game.StepForward() {
		return false
	}
	c.ui.clear()
	return true
}

// Reset replaces the history with the single given state and clears the
// selection.
func (c *Controller) Reset(state GameState) {
	c.game.ResetTo(state)
	c.ui.clear()
}

// ApplyPreset resets the game to the standard starting position and
// applies the preset. The preset runs on a copy of the game, so on error
// the game and the selection are left as they were.
func (c *Controller) ApplyPreset(preset Preset) error {
	scratch := &Controller{game: c.game.Clone(), ui: &UiState{}}
	scratch.Reset(NewGameState(StartingBoardState(), scratch.game.rules))
	if err := preset.Apply(scratch); err != nil {
		return err
	}
	c.game.copy(scratch.game)
	c.ui.clear()
	return nil
}
