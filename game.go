/*
Package chess provides a chess rules engine: board model, legal move
generation with castling, en passant and promotion, check, checkmate and draw
detection, and a linear game history with undo and redo.

Every board and state value is immutable once built. A Game keeps the
sequence of snapshots and a cursor into it; playing a move from an earlier
snapshot discards the snapshots after it.
Example usage:

	// Create new game
	game := NewGame()

	// Make moves
	game.PushMove("e4")
	game.PushMove("e5")

	// Step through history
	game.StepBackward()
	game.StepForward()

	// Check game status
	if game.Outcome() != NoOutcome {
		fmt.Printf("Game ended: %s by %s\n", game.Outcome(), game.Method())
	}
*/
package chess

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
)

// A Outcome is the result of a game.
type Outcome string

const (
	// NoOutcome indicates that a game is in progress.
	NoOutcome Outcome = "*"
	// WhiteWon indicates that white won the game.
	WhiteWon Outcome = "1-0"
	// BlackWon indicates that black won the game.
	BlackWon Outcome = "0-1"
	// Draw indicates that game was a draw.
	Draw Outcome = "1/2-1/2"
)

// String implements the fmt.Stringer interface.
func (o Outcome) String() string {
	return string(o)
}

// TagPairs represents a collection of PGN tag pairs.
type TagPairs map[string]string

// A Game is a linear history of immutable game states with a cursor.
// states[0] is always the initial position and the cursor never leaves
// [0, len(states)).
type Game struct {
	states       []GameState
	currentIndex int
	rules        DrawRules
	tagPairs     TagPairs
}

// PGN takes a reader and returns a function that updates the game to
// reflect the PGN data. A bare list of UCI coordinate moves is accepted as
// well. The returned function is designed to be used in the NewGame
// constructor.
func PGN(r io.Reader) (func(*Game), error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	game, err := parseGame(string(raw), DrawRules{})
	if err != nil {
		return nil, err
	}
	return func(g *Game) {
		g.copy(game)
	}, nil
}

// FEN takes a string and returns a function that updates the game to
// start from the FEN position. The move history will be empty.
func FEN(fen string) (func(*Game), error) {
	s, err := decodeFEN(fen)
	if err != nil {
		return nil, err
	}
	return func(g *Game) {
		g.states = []GameState{{BoardState: s}}
		g.currentIndex = 0
	}, nil
}

// FromState returns a function that starts the game from the given state.
// The line that led to the state is forgotten.
func FromState(state GameState) func(*Game) {
	return func(g *Game) {
		g.ResetTo(state)
	}
}

// WithDrawRules returns a function that replaces the game's draw rules.
func WithDrawRules(rules DrawRules) func(*Game) {
	return func(g *Game) {
		g.rules = rules
	}
}

// WithFiftyMoveRule returns a Game option that draws the game automatically
// once one hundred plies pass without a pawn move or capture.
func WithFiftyMoveRule() func(*Game) {
	return func(g *Game) {
		g.rules.FiftyMoveRule = true
	}
}

// WithInsufficientMaterialDraw returns a Game option that draws the game
// automatically when neither side has mating material left.
func WithInsufficientMaterialDraw() func(*Game) {
	return func(g *Game) {
		g.rules.InsufficientMaterial = true
	}
}

// IgnoreRepetitionDraw returns a Game option that disables the automatic
// draw on threefold repetition.
func IgnoreRepetitionDraw() func(*Game) {
	return func(g *Game) {
		g.rules.IgnoreRepetition = true
	}
}

// NewGame returns a new game in the standard starting position.
// Optional functions can be provided to configure the initial game state.
//
// Example:
//
//	// Standard game
//	game := NewGame()
//
//	// Game from FEN
//	fen, _ := FEN("8/8/8/8/8/8/1k6/K7 w - - 0 1")
//	game := NewGame(fen, WithInsufficientMaterialDraw())
func NewGame(options ...func(*Game)) *Game {
	game := &Game{
		states:   []GameState{{BoardState: StartingBoardState()}},
		tagPairs: make(TagPairs),
	}
	for _, f := range options {
		if f != nil {
			f(game)
		}
	}
	// a lone start state is evaluated once the rules are final
	if len(game.states) == 1 && game.states[0].LastMove == nil {
		start := game.states[0]
		evaluated := NewGameState(start.BoardState, game.rules)
		evaluated.Move = start.Move
		game.states[0] = evaluated
	}
	return game
}

// Rules returns the draw rules of the game.
func (g *Game) Rules() DrawRules {
	return g.rules
}

// CurrentState returns the state at the cursor.
func (g *Game) CurrentState() GameState {
	return g.states[g.currentIndex]
}

// CurrentIndex returns the cursor.
func (g *Game) CurrentIndex() int {
	return g.currentIndex
}

// States returns a copy of the whole history, including states after the
// cursor that can be stepped forward to.
func (g *Game) States() []GameState {
	return slices.Clone(g.states)
}

// BoardStates returns the board states from the start up to and including
// the cursor.
func (g *Game) BoardStates() []BoardState {
	boardStates := make([]BoardState, 0, g.currentIndex+1)
	for _, s := range g.states[:g.currentIndex+1] {
		boardStates = append(boardStates, s.BoardState)
	}
	return boardStates
}

// Moves returns the moves played from the start up to the cursor.
func (g *Game) Moves() []AppliedMove {
	moves := make([]AppliedMove, 0, g.currentIndex)
	for _, s := range g.states[1 : g.currentIndex+1] {
		moves = append(moves, *s.LastMove)
	}
	return moves
}

// ValidMoves returns all legal moves at the cursor.
func (g *Game) ValidMoves() []BoardMove {
	if g.CurrentState().IsOver() {
		return nil
	}
	return g.CurrentState().BoardState.LegalMoves()
}

// Outcome returns the game outcome at the cursor.
func (g *Game) Outcome() Outcome {
	return g.CurrentState().Outcome()
}

// Method returns the method in which the outcome occurred.
func (g *Game) Method() Method {
	return g.CurrentState().Method
}

// FEN returns the FEN notation of the position at the cursor.
func (g *Game) FEN() string {
	return encodeFEN(g.CurrentState().BoardState)
}

// ApplyMove plays the intention from the state at the cursor. The state at
// the cursor is replaced by its updated variant, every state after it is
// discarded, and the new state is appended and becomes current. On error
// the history is left untouched.
func (g *Game) ApplyMove(intention MoveIntention) (AppliedMove, error) {
	t, err := g.CurrentState().CalculateAppliedMove(intention, g.BoardStates(), g.rules)
	if err != nil {
		return AppliedMove{}, err
	}
	g.states[g.currentIndex] = t.UpdatedCurrentState
	g.states = append(g.states[:g.currentIndex+1], t.NewState)
	g.currentIndex = len(g.states) - 1
	return t.Move, nil
}

// PushMove adds a move in algebraic notation to the game. Coordinate moves
// such as "e2e4" are accepted as well.
//
// Example:
//
//	err := game.PushMove("Nf3")
func (g *Game) PushMove(move string) error {
	if isCoordinateMoveToken(move) {
		return g.PushNotationMove(move, UCINotation{})
	}
	return g.PushNotationMove(move, AlgebraicNotation{})
}

// PushNotationMove adds a move to the game using the given notation.
//
// Example:
//
//	err := game.PushNotationMove("e7e5", chess.UCINotation{})
func (g *Game) PushNotationMove(move string, notation Notation) error {
	m, err := notation.Decode(g.CurrentState().BoardState, move)
	if err != nil {
		return err
	}
	_, err = g.ApplyMove(MoveIntention{From: m.From(), To: m.To(), Promotion: m.Promotion()})
	return err
}

// CanStepBack returns true if there is an earlier state to go back to.
func (g *Game) CanStepBack() bool {
	return g.currentIndex > 0
}

// CanStepForward returns true if there is a later state to go forward to.
func (g *Game) CanStepForward() bool {
	return g.currentIndex < len(g.states)-1
}

// StepBackward moves the cursor one state back. It returns false, and does
// nothing, at the start of the game.
func (g *Game) StepBackward() bool {
	if !g.CanStepBack() {
		return false
	}
	g.currentIndex--
	return true
}

// StepForward moves the cursor one state forward. It returns false, and
// does nothing, at the end of the history.
func (g *Game) StepForward() bool {
	if !g.CanStepForward() {
		return false
	}
	g.currentIndex++
	return true
}

// IsAtStart returns true if the cursor is on the initial state.
func (g *Game) IsAtStart() bool {
	return g.currentIndex == 0
}

// IsAtEnd returns true if the cursor is on the last state.
func (g *Game) IsAtEnd() bool {
	return g.currentIndex == len(g.states)-1
}

// Reset replaces the whole history with the standard starting position.
func (g *Game) Reset() {
	g.ResetTo(NewGameState(StartingBoardState(), g.rules))
}

// ResetTo replaces the whole history with a single state, which becomes
// the start of the game's line.
func (g *Game) ResetTo(state GameState) {
	state.previous = nil
	g.states = []GameState{state}
	g.currentIndex = 0
}

// plyTag records the cursor when it is not on the last state.
const plyTag = "Ply"

// String implements the fmt.Stringer interface and returns the game's PGN.
// The whole history is written; a cursor short of the last state is kept
// in a Ply tag holding the number of plies played up to it.
func (g *Game) String() string {
	var sb strings.Builder

	tags := maps.Clone(g.tagPairs)
	if tags == nil {
		tags = make(TagPairs)
	}
	start := g.states[0].BoardState
	if !start.SamePosition(StartingBoardState()) || start.FullMoveNumber() != 1 {
		tags["SetUp"] = "1"
		tags["FEN"] = encodeFEN(start)
	}
	last := g.states[len(g.states)-1]
	tags["Result"] = last.Outcome().String()
	delete(tags, plyTag)
	if !g.IsAtEnd() {
		tags[plyTag] = strconv.Itoa(g.currentIndex)
	}

	tagPairList := make([]sortableTagPair, 0, len(tags))
	for tag, value := range tags {
		tagPairList = append(tagPairList, sortableTagPair{Key: tag, Value: value})
	}
	slices.SortFunc(tagPairList, cmpTags)

	// Write tag pairs.
	for _, tagPair := range tagPairList {
		sb.WriteString(fmt.Sprintf("[%s \"%s\"]\n", tagPair.Key, tagPair.Value))
	}
	sb.WriteString("\n")

	if writeMoves(g.states, &sb) {
		sb.WriteString(" ")
	}
	sb.WriteString(last.Outcome().String())
	return sb.String()
}

// sortableTagPair is its own
type sortableTagPair struct {
	Key   string
	Value string
}

// Compares two tags to determine in which order they should be brought up
func cmpTags(a, b sortableTagPair) int {
	// Don't re-order duplicate keys
	if a.Key == b.Key {
		return 0
	}

	// PGN defined tags take priority
	for _, req := range []string{
		"Event",
		"Site",
		"Date",
		"Round",
		"White",
		"Black",
		"Result",
	} {
		if a.Key == req {
			return -1
		}
		if b.Key == req {
			return +1
		}
	}

	// Finally compare the keys directly and sort by ascending
	return strings.Compare(a.Key, b.Key)
}

// writeMoves writes the movetext of the whole history and reports whether
// anything was written.
func writeMoves(states []GameState, sb *strings.Builder) bool {
	wrote := false
	for i, s := range states[1:] {
		prev := states[i].BoardState
		if wrote {
			sb.WriteString(" ")
		}
		if prev.ToMove() == White {
			sb.WriteString(fmt.Sprintf("%d. ", prev.FullMoveNumber()))
		} else if i == 0 {
			sb.WriteString(fmt.Sprintf("%d... ", prev.FullMoveNumber()))
		}
		sb.WriteString(s.LastMove.Notation)
		wrote = true
	}
	return wrote
}

// MarshalText implements the encoding.TextMarshaler interface and
// encodes the game's PGN, cursor included.
func (g *Game) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface and
// assumes the data is in the PGN format. The cursor is restored from the
// Ply tag, or left on the last state.
func (g *Game) UnmarshalText(text []byte) error {
	game, err := parseGame(string(text), g.rules)
	if err != nil {
		return err
	}
	g.copy(game)
	return nil
}

// AddTagPair adds or updates a tag pair with the given key and
// value and returns true if the value is overwritten.
func (g *Game) AddTagPair(k, v string) bool {
	if g.tagPairs == nil {
		g.tagPairs = make(TagPairs)
	}
	_, existing := g.tagPairs[k]
	g.tagPairs[k] = v
	return existing
}

// GetTagPair returns the tag pair for the given key or "" if it is not
// present.
func (g *Game) GetTagPair(k string) string {
	return g.tagPairs[k]
}

// TagPairs returns a copy of the tag pairs.
func (g *Game) TagPairs() TagPairs {
	return maps.Clone(g.tagPairs)
}

// RemoveTagPair removes the tag pair for the given key and
// returns true if a tag pair was removed.
func (g *Game) RemoveTagPair(k string) bool {
	if _, existing := g.tagPairs[k]; existing {
		delete(g.tagPairs, k)
		return true
	}
	return false
}

// copy copies the game state from the given game.
func (g *Game) copy(game *Game) {
	g.tagPairs = make(TagPairs)
	maps.Copy(g.tagPairs, game.tagPairs)
	g.states = slices.Clone(game.states)
	g.currentIndex = game.currentIndex
	g.rules = game.rules
}

// Clone returns a copy of the game. States are immutable, so only the
// history slice and the tag pairs are duplicated.
func (g *Game) Clone() *Game {
	ret := &Game{}
	ret.copy(g)
	return ret
}

// replay plays the moves in order, used by the parsers. The failing token
// and its index are reported in a ParseError that wraps the cause.
func (g *Game) replay(moves []string, notation Notation) error {
	for i, m := range moves {
		if err := g.PushNotationMove(m, notation); err != nil {
			return &ParseError{Message: "invalid move", Token: m, Position: i, Err: err}
		}
	}
	return nil
}
