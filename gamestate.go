package chess

// A Resolution is the terminal or in-progress status of a GameState.
type Resolution uint8

const (
	// ResolutionInProgress means the side to move may play on.
	ResolutionInProgress Resolution = iota
	// ResolutionCheckmate means the side to move is mated.
	ResolutionCheckmate
	// ResolutionDraw means the game is drawn; Method tells why.
	ResolutionDraw
)

// String implements the fmt.Stringer interface.
func (r Resolution) String() string {
	switch r {
	case ResolutionCheckmate:
		return "Checkmate"
	case ResolutionDraw:
		return "Draw"
	}
	return "In progress"
}

// A Method is the method that generated the resolution.
type Method uint8

const (
	// NoMethod indicates that the game is still in progress.
	NoMethod Method = iota
	// Checkmate indicates that the game was won by checkmate.
	Checkmate
	// Stalemate indicates that the side to move has no legal move and is
	// not in check.
	Stalemate
	// ThreefoldRepetition indicates that the same position occurred three
	// times.
	ThreefoldRepetition
	// FiftyMoveRule indicates that one hundred plies passed without a
	// capture or pawn move.
	FiftyMoveRule
	// InsufficientMaterial indicates that neither side can mate.
	InsufficientMaterial
)

// String implements the fmt.Stringer interface.
func (m Method) String() string {
	switch m {
	case Checkmate:
		return "Checkmate"
	case Stalemate:
		return "Stalemate"
	case ThreefoldRepetition:
		return "ThreefoldRepetition"
	case FiftyMoveRule:
		return "FiftyMoveRule"
	case InsufficientMaterial:
		return "InsufficientMaterial"
	}
	return "NoMethod"
}

const (
	repetitionsForDraw        = 3
	halfMoveClockForFiftyMove = 100
)

// DrawRules selects the automatic draw conditions besides stalemate.
// The zero value draws on threefold repetition only.
type DrawRules struct {
	// IgnoreRepetition disables the threefold repetition draw.
	IgnoreRepetition bool
	// FiftyMoveRule draws once the half move clock reaches 100.
	FiftyMoveRule bool
	// InsufficientMaterial draws when neither side can deliver mate.
	InsufficientMaterial bool
}

// A GameState is an immutable snapshot of the game at one ply.
// LastMove is the move that produced the snapshot; Move is the move later
// played from it, filled in when the game continues from this state.
// A state reached by playing a move remembers its predecessor, so the
// line leading to it can be recovered.
type GameState struct {
	BoardState BoardState
	LastMove   *AppliedMove
	Move       *AppliedMove
	Resolution Resolution
	Method     Method

	previous *GameState
}

// NewGameState wraps a board state and evaluates its resolution.
func NewGameState(s BoardState, rules DrawRules) GameState {
	resolution, method := evaluate(s, []BoardState{s}, rules)
	return GameState{BoardState: s, Resolution: resolution, Method: method}
}

// StartingGameState returns the standard starting position.
func StartingGameState() GameState {
	return NewGameState(StartingBoardState(), DrawRules{})
}

// IsOver returns true if the game cannot continue from this state.
func (g GameState) IsOver() bool {
	return g.Resolution != ResolutionInProgress
}

// Outcome returns the result of the game at this state.
func (g GameState) Outcome() Outcome {
	switch g.Resolution {
	case ResolutionCheckmate:
		if g.BoardState.ToMove() == White {
			return BlackWon
		}
		return WhiteWon
	case ResolutionDraw:
		return Draw
	}
	return NoOutcome
}

// A Transition is the result of playing a move from a GameState.
type Transition struct {
	Move                AppliedMove
	UpdatedCurrentState GameState
	NewState            GameState
}

// CalculateAppliedMove resolves the intention against the legal moves of
// the state, plays it and evaluates the resulting position. boardStatesSoFar
// holds the board states of the game up to and including this one and is
// used for repetition detection.
func (g GameState) CalculateAppliedMove(intention MoveIntention, boardStatesSoFar []BoardState, rules DrawRules) (Transition, error) {
	move, err := g.BoardState.Resolve(intention)
	if err != nil {
		return Transition{}, err
	}
	if g.IsOver() {
		return Transition{}, ErrGameOver
	}

	next := g.BoardState.Apply(move)
	history := make([]BoardState, 0, len(boardStatesSoFar)+1)
	history = append(history, boardStatesSoFar...)
	history = append(history, next)
	resolution, method := evaluate(next, history, rules)

	effect := EffectNone
	switch {
	case resolution == ResolutionCheckmate:
		effect = EffectCheckmate
	case resolution == ResolutionDraw:
		effect = EffectDraw
	case next.InCheck():
		effect = EffectCheck
	}
	sanEffect := effect
	if effect == EffectDraw && next.InCheck() {
		sanEffect = EffectCheck
	}

	applied := AppliedMove{
		BoardMove: move,
		Effect:    effect,
		Notation:  encodeSAN(g.BoardState, move, sanEffect),
	}
	updated := g
	updated.Move = &applied
	return Transition{
		Move:                applied,
		UpdatedCurrentState: updated,
		NewState: GameState{
			BoardState: next,
			LastMove:   &applied,
			Resolution: resolution,
			Method:     method,
			previous:   &updated,
		},
	}, nil
}

// Line returns the states leading to g, oldest first and ending with g.
// The first state is the one the game was started or reset from.
func (g GameState) Line() []GameState {
	n := 1
	for p := g.previous; p != nil; p = p.previous {
		n++
	}
	states := make([]GameState, n)
	states[n-1] = g
	i := n - 2
	for p := g.previous; p != nil; p = p.previous {
		states[i] = *p
		i--
	}
	return states
}

// evaluate computes the resolution of s, the last entry of history.
func evaluate(s BoardState, history []BoardState, rules DrawRules) (Resolution, Method) {
	if !s.HasLegalMoves() {
		if s.InCheck() {
			return ResolutionCheckmate, Checkmate
		}
		return ResolutionDraw, Stalemate
	}
	if !rules.IgnoreRepetition && repetitions(s, history) >= repetitionsForDraw {
		return ResolutionDraw, ThreefoldRepetition
	}
	if rules.FiftyMoveRule && s.HalfMoveClock() >= halfMoveClockForFiftyMove {
		return ResolutionDraw, FiftyMoveRule
	}
	if rules.InsufficientMaterial && !s.Board().hasSufficientMaterial() {
		return ResolutionDraw, InsufficientMaterial
	}
	return ResolutionInProgress, NoMethod
}

func repetitions(s BoardState, history []BoardState) int {
	count := 0
	for _, h := range history {
		if s.SamePosition(h) {
			count++
		}
	}
	return count
}
