package chess

import (
	"errors"
	"slices"
	"testing"
)

func pos(t *testing.T, s string) Position {
	t.Helper()
	p, err := ParsePosition(s)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func newTestController(t *testing.T, preset string) *Controller {
	t.Helper()
	var p Preset
	if preset != "" {
		var err error
		if p, err = PresetByName(preset); err != nil {
			t.Fatal(err)
		}
	}
	c, err := NewController(nil, nil, p)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestControllerDefaults(t *testing.T) {
	c := newTestController(t, "")
	if c.UiState().HasSelection() {
		t.Fatal("nothing should be selected")
	}
	if n := len(c.ClickablePositions()); n != 16 {
		t.Fatalf("expected the 16 white pieces to be clickable but got %d", n)
	}
	if len(c.HighlightedPositions()) != 0 {
		t.Fatal("nothing should be highlighted")
	}
	if c.PossibleMoves() != nil || c.PossibleCaptures() != nil {
		t.Fatal("no moves without a selection")
	}
}

func TestControllerSelection(t *testing.T) {
	c := newTestController(t, "")
	e2 := pos(t, "e2")
	if err := c.OnClick(e2); err != nil {
		t.Fatal(err)
	}
	if c.UiState().Selected != e2 {
		t.Fatalf("expected e2 selected but got %s", c.UiState().Selected)
	}
	if n := len(c.PossibleMoves()); n != 2 {
		t.Fatalf("expected 2 moves but got %d", n)
	}
	clickable := c.ClickablePositions()
	if len(clickable) != 18 || !slices.Contains(clickable, pos(t, "e4")) {
		t.Fatalf("unexpected clickable squares %v", clickable)
	}
	if got := c.HighlightedPositions(); !slices.Equal(got, []Position{e2}) {
		t.Fatalf("highlighted = %v, want [e2]", got)
	}

	// clicking another own piece moves the selection
	if err := c.OnClick(pos(t, "g1")); err != nil {
		t.Fatal(err)
	}
	if c.UiState().Selected != pos(t, "g1") {
		t.Fatal("selection should move to g1")
	}

	// clicking it again clears it
	if err := c.OnClick(pos(t, "g1")); err != nil {
		t.Fatal(err)
	}
	if c.UiState().HasSelection() {
		t.Fatal("selection should be cleared")
	}

	// enemy pieces and empty squares do nothing without a selection
	for _, p := range []string{"e7", "e4"} {
		if err := c.OnClick(pos(t, p)); err != nil {
			t.Fatal(err)
		}
		if c.UiState().HasSelection() || c.Game().CurrentIndex() != 0 {
			t.Fatalf("click on %s should be ignored", p)
		}
	}
}

func TestControllerClickToMove(t *testing.T) {
	c := newTestController(t, "")
	if err := c.OnClick(pos(t, "e2")); err != nil {
		t.Fatal(err)
	}
	// not a target
	if err := c.OnClick(pos(t, "e5")); err != nil {
		t.Fatal(err)
	}
	if c.Game().CurrentIndex() != 0 || c.UiState().Selected != pos(t, "e2") {
		t.Fatal("a click on a non target square should change nothing")
	}

	if err := c.OnClick(pos(t, "e4")); err != nil {
		t.Fatal(err)
	}
	if c.UiState().HasSelection() {
		t.Fatal("selection should be cleared after a move")
	}
	if got := c.HighlightedPositions(); !slices.Equal(got, []Position{pos(t, "e2"), pos(t, "e4")}) {
		t.Fatalf("highlighted = %v, want [e2 e4]", got)
	}
	if c.CurrentState().BoardState.ToMove() != Black {
		t.Fatal("black should be to move")
	}
}

func TestControllerCaptures(t *testing.T) {
	c := newTestController(t, "en-passant")
	if err := c.OnClick(pos(t, "e5")); err != nil {
		t.Fatal(err)
	}
	captures := c.PossibleCaptures()
	if len(captures) != 1 || !captures[0].IsEnPassant() {
		t.Fatalf("expected the en passant capture but got %v", captures)
	}
	if _, err := c.ApplyMove(pos(t, "e5"), pos(t, "d6")); err != nil {
		t.Fatal(err)
	}
	if !c.Square(pos(t, "d5")).IsEmpty() {
		t.Fatal("the captured pawn should be gone")
	}
}

func TestControllerPromotion(t *testing.T) {
	c := newTestController(t, "promotion")
	e7, e8 := pos(t, "e7"), pos(t, "e8")

	if _, err := c.Promote(Queen); !errors.Is(err, ErrNoPendingPromotion) {
		t.Fatalf("expected ErrNoPendingPromotion but got %v", err)
	}

	if err := c.OnClick(e7); err != nil {
		t.Fatal(err)
	}
	if err := c.OnClick(e8); err != nil {
		t.Fatal(err)
	}
	pending := c.UiState().PendingPromotion
	if pending == nil || pending.From != e7 || pending.To != e8 {
		t.Fatalf("expected a pending promotion e7e8 but got %v", pending)
	}
	if c.Game().CurrentIndex() != 0 {
		t.Fatal("no move should be played before the piece is chosen")
	}

	c.CancelPromotion()
	if c.UiState().PendingPromotion != nil || c.UiState().Selected != e7 {
		t.Fatal("cancel drops the promotion and keeps the selection")
	}

	if err := c.OnClick(e8); err != nil {
		t.Fatal(err)
	}
	m, err := c.Promote(Queen)
	if err != nil {
		t.Fatal(err)
	}
	if m.Notation != "e8=Q+" {
		t.Fatalf("expected e8=Q+ but got %s", m.Notation)
	}
	if c.UiState().PendingPromotion != nil || c.UiState().HasSelection() {
		t.Fatal("ui state should be cleared")
	}
	if c.Square(e8).Piece != NewPiece(Queen, White) {
		t.Fatal("expected a white queen on e8")
	}
}

func TestControllerIgnoresClicksWhenOver(t *testing.T) {
	c := newTestController(t, "fools-mate")
	m, err := c.ApplyMove(pos(t, "d8"), pos(t, "h4"))
	if err != nil {
		t.Fatal(err)
	}
	if m.Effect != EffectCheckmate {
		t.Fatalf("expected mate but got %s", m.Effect)
	}
	if err := c.OnClick(pos(t, "e2")); err != nil {
		t.Fatal(err)
	}
	if c.UiState().HasSelection() {
		t.Fatal("clicks should be ignored once the game is over")
	}
	var illegal *IllegalMoveError
	if _, err := c.ApplyMove(pos(t, "e2"), pos(t, "e4")); !errors.As(err, &illegal) {
		t.Fatalf("expected IllegalMoveError but got %v", err)
	}
}

func TestControllerFailedMoveKeepsSelection(t *testing.T) {
	c := newTestController(t, "")
	if err := c.OnClick(pos(t, "b1")); err != nil {
		t.Fatal(err)
	}
	var illegal *IllegalMoveError
	if _, err := c.ApplyMove(pos(t, "b1"), pos(t, "b3")); !errors.As(err, &illegal) {
		t.Fatalf("expected IllegalMoveError but got %v", err)
	}
	if c.UiState().Selected != pos(t, "b1") || c.Game().CurrentIndex() != 0 {
		t.Fatal("a failed move should change nothing")
	}
}

func TestControllerHistory(t *testing.T) {
	c := newTestController(t, "scholars")
	if !c.CanStepBack() || c.CanStepForward() {
		t.Fatal("expected to be at the end of the history")
	}
	if err := c.OnClick(pos(t, "h5")); err != nil {
		t.Fatal(err)
	}
	if !c.StepBackward() {
		t.Fatal("expected to step back")
	}
	if c.UiState().HasSelection() {
		t.Fatal("stepping clears the selection")
	}
	if !c.StepForward() || c.StepForward() {
		t.Fatal("expected exactly one step forward")
	}

	// playing from an earlier state drops the later ones
	c.StepBackward()
	c.StepBackward()
	if _, err := c.ApplyMove(pos(t, "g1"), pos(t, "f3")); err != nil {
		t.Fatal(err)
	}
	if c.CanStepForward() || len(c.Game().States()) != 6 {
		t.Fatalf("expected the later states to be dropped, have %d", len(c.Game().States()))
	}

	c.Reset(StartingGameState())
	if c.CanStepBack() || c.Game().FEN() != StartingBoardState().String() {
		t.Fatal("reset should leave only the starting position")
	}
}

func TestPresets(t *testing.T) {
	names := Presets()
	if !slices.IsSorted(names) || !slices.Contains(names, "standard") {
		t.Fatalf("unexpected preset names %v", names)
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			newTestController(t, name)
		})
	}
	if _, err := PresetByName("nope"); !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset but got %v", err)
	}
}

func TestPresetPositions(t *testing.T) {
	tests := []struct {
		preset string
		fen    string
		method Method
	}{
		{"en-passant", "rnbqkbnr/1pp1pppp/p7/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3", NoMethod},
		{"stalemate", "7k/8/6Q1/8/8/8/8/K7 b - - 0 1", Stalemate},
		{"fools-mate", "rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq - 0 2", NoMethod},
	}
	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			c := newTestController(t, tt.preset)
			if got := c.Game().FEN(); got != tt.fen {
				t.Fatalf("FEN() = %s, want %s", got, tt.fen)
			}
			if got := c.Game().Method(); got != tt.method {
				t.Fatalf("Method() = %s, want %s", got, tt.method)
			}
		})
	}
}

func TestMovesPresetError(t *testing.T) {
	c := newTestController(t, "")
	if _, err := c.ApplyMove(pos(t, "d2"), pos(t, "d4")); err != nil {
		t.Fatal(err)
	}
	if err := c.OnClick(pos(t, "g8")); err != nil {
		t.Fatal(err)
	}
	before := c.Game().FEN()

	err := c.ApplyPreset(MovesPreset{Moves: []string{"e2e4", "e7e5", "e4e5"}})
	var parseErr *ParseError
	if !errors.As(err, &parseErr) || parseErr.Position != 2 {
		t.Fatalf("expected a ParseError at move 2 but got %v", err)
	}
	var illegal *IllegalMoveError
	if !errors.As(err, &illegal) {
		t.Fatal("the cause should be an IllegalMoveError")
	}
	if c.Game().FEN() != before || len(c.Game().States()) != 2 || c.UiState().Selected != pos(t, "g8") {
		t.Fatal("a failed preset should leave the game and the selection alone")
	}
}
