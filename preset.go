package chess

import (
	"fmt"
	"sort"
)

// A Preset sets a controller up with a starting position or opening line.
// ApplyPreset resets the controller before calling Apply.
type Preset interface {
	Apply(c *Controller) error
}

// StandardPreset leaves the standard starting position in place.
type StandardPreset struct{}

// Apply implements the Preset interface.
func (StandardPreset) Apply(*Controller) error {
	return nil
}

// FENPreset starts from a FEN position, e.g. a puzzle.
type FENPreset struct {
	FEN string
}

// Apply implements the Preset interface.
func (p FENPreset) Apply(c *Controller) error {
	s, err := decodeFEN(p.FEN)
	if err != nil {
		return err
	}
	c.Reset(NewGameState(s, c.game.rules))
	return nil
}

// MovesPreset plays a list of UCI coordinate moves from the current state.
type MovesPreset struct {
	Moves []string
}

// Apply implements the Preset interface.
func (p MovesPreset) Apply(c *Controller) error {
	for i, m := range p.Moves {
		intention, err := ParseMoveIntention(m)
		if err != nil {
			return &ParseError{Message: "invalid preset move", Token: m, Position: i, Err: err}
		}
		if _, err := c.ApplyIntention(intention); err != nil {
			return &ParseError{Message: "invalid preset move", Token: m, Position: i, Err: err}
		}
	}
	return nil
}

var presets = map[string]Preset{
	"standard":    StandardPreset{},
	"castling":    FENPreset{FEN: "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1"},
	"promotion":   FENPreset{FEN: "k7/4P3/8/8/8/8/3p4/K7 w - - 0 1"},
	"en-passant":  MovesPreset{Moves: []string{"e2e4", "a7a6", "e4e5", "d7d5"}},
	"fools-mate":  MovesPreset{Moves: []string{"f2f3", "e7e5", "g2g4"}},
	"scholars":    MovesPreset{Moves: []string{"e2e4", "e7e5", "f1c4", "b8c6", "d1h5", "g8f6"}},
	"stalemate":   FENPreset{FEN: "7k/8/6Q1/8/8/8/8/K7 b - - 0 1"},
	"mate-in-one": FENPreset{FEN: "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1"},
}

// Presets returns the names of the built-in presets in sorted order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PresetByName returns the built-in preset registered under name.
func PresetByName(name string) (Preset, error) {
	p, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return p, nil
}
