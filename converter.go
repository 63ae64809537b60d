package chess

import "strings"

// A Converter moves a GameState in and out of a text format.
type Converter interface {
	Import(text string) (GameState, error)
	Export(state GameState) (string, error)
}

var (
	_ Converter = FENConverter{}
	_ Converter = PGNConverter{}
)

// PGNConverter writes a state as the game line that led to it, from the
// position the game started at. When the state has a Move the line runs
// one ply further and a Ply tag marks the exported state. Import replays
// the line and returns the marked state, or the last one, so that LastMove,
// Move and any repetition draw come back as they were.
type PGNConverter struct {
	// Rules are the draw rules used while replaying the line.
	Rules DrawRules
}

// Import implements the Converter interface.
func (c PGNConverter) Import(text string) (GameState, error) {
	game, err := parseGame(text, c.Rules)
	if err != nil {
		return GameState{}, err
	}
	return game.CurrentState(), nil
}

// Export implements the Converter interface.
func (c PGNConverter) Export(state GameState) (string, error) {
	states := state.Line()
	cursor := len(states) - 1
	if m := state.Move; m != nil {
		boardStates := make([]BoardState, len(states))
		for i, s := range states {
			boardStates[i] = s.BoardState
		}
		intention := MoveIntention{From: m.From(), To: m.To(), Promotion: m.BoardMove.Promotion()}
		t, err := state.CalculateAppliedMove(intention, boardStates, c.Rules)
		if err != nil {
			return "", err
		}
		states = append(states, t.NewState)
	}
	game := &Game{states: states, currentIndex: cursor, rules: c.Rules}
	return game.String(), nil
}

// String implements the fmt.Stringer interface.
func (PGNConverter) String() string {
	return "PGN"
}

// ConverterFor returns the converter registered under the given name,
// matched case-insensitively.
func ConverterFor(name string) (Converter, bool) {
	switch strings.ToLower(name) {
	case "fen":
		return FENConverter{}, true
	case "pgn":
		return PGNConverter{}, true
	}
	return nil, false
}
