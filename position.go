package chess

import "fmt"

// A Position is a coordinate on the board. File and Rank both run from 1
// to 8, so a1 is {1, 1} and h8 is {8, 8}.
type Position struct {
	File int
	Rank int
}

// NoPosition is the zero Position and lies outside the board.
var NoPosition = Position{}

const (
	minCoord = 1
	maxCoord = 8
)

// IsValid returns true if the position lies on the board.
func (p Position) IsValid() bool {
	return p.File >= minCoord && p.File <= maxCoord && p.Rank >= minCoord && p.Rank <= maxCoord
}

// IsDark returns true for dark squares. a1 is dark.
func (p Position) IsDark() bool {
	return (p.File+p.Rank)%2 == 0
}

// Offset returns the position shifted by the given file and rank deltas.
// The boolean is false when the result falls off the board.
func (p Position) Offset(deltaFile, deltaRank int) (Position, bool) {
	target := Position{File: p.File + deltaFile, Rank: p.Rank + deltaRank}
	return target, target.IsValid()
}

// FileLetter returns the file as a lowercase letter.
func (p Position) FileLetter() string {
	if p.File < minCoord || p.File > maxCoord {
		return "-"
	}
	return string(rune('a' + p.File - 1))
}

// String implements the fmt.Stringer interface and returns the square name
// in algebraic form, e.g. "e4".
func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%s%d", p.FileLetter(), p.Rank)
}

// ParsePosition converts a square name (e.g. "e4") into a Position.
func ParsePosition(s string) (Position, error) {
	const squareLen = 2
	if len(s) != squareLen {
		return NoPosition, fmt.Errorf("chess: invalid square %q", s)
	}
	p := Position{File: int(s[0]-'a') + 1, Rank: int(s[1]-'1') + 1}
	if !p.IsValid() {
		return NoPosition, fmt.Errorf("chess: invalid square %q", s)
	}
	return p, nil
}

// AllPositions returns the 64 positions of the board ordered a1, b1 ... h8.
func AllPositions() []Position {
	positions := make([]Position, 0, boardSize)
	for rank := minCoord; rank <= maxCoord; rank++ {
		for file := minCoord; file <= maxCoord; file++ {
			positions = append(positions, Position{File: file, Rank: rank})
		}
	}
	return positions
}

func (p Position) index() int {
	return (p.Rank-1)*8 + (p.File - 1)
}

func positionAt(index int) Position {
	return Position{File: index%8 + 1, Rank: index/8 + 1}
}
