// Package image draws static SVG diagrams of chess positions.
package image

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/mway1/chess"
)

const (
	sqWidth  = 45
	sqHeight = 45
	margin   = 20
	boardW   = 8 * sqWidth
	boardH   = 8 * sqHeight
)

// Encoder holds the drawing options of a diagram.
type Encoder struct {
	light        color.Color
	dark         color.Color
	perspective  chess.Set
	marks        map[chess.Position]color.Color
	markLastMove color.Color
	coordinates  bool
}

// SVG writes an SVG diagram of the state's board to w. Options change the
// colours, the perspective and the highlighted squares.
func SVG(w io.Writer, state chess.GameState, options ...func(*Encoder)) error {
	e := &Encoder{
		light:       color.RGBA{R: 235, G: 209, B: 166, A: 255},
		dark:        color.RGBA{R: 165, G: 117, B: 81, A: 255},
		perspective: chess.White,
		marks:       map[chess.Position]color.Color{},
		coordinates: true,
	}
	for _, opt := range options {
		opt(e)
	}
	return e.encode(w, state)
}

// SquareColors sets the colours of the light and dark squares.
func SquareColors(light, dark color.Color) func(*Encoder) {
	return func(e *Encoder) {
		e.light = light
		e.dark = dark
	}
}

// Perspective draws the board from the given side. Black puts h1 at the
// top left.
func Perspective(set chess.Set) func(*Encoder) {
	return func(e *Encoder) {
		e.perspective = set
	}
}

// MarkSquares fills the given squares with c.
func MarkSquares(c color.Color, positions ...chess.Position) func(*Encoder) {
	return func(e *Encoder) {
		for _, p := range positions {
			e.marks[p] = c
		}
	}
}

// MarkLastMove fills the origin and target of the state's last move with c.
func MarkLastMove(c color.Color) func(*Encoder) {
	return func(e *Encoder) {
		e.markLastMove = c
	}
}

// HideCoordinates leaves out the file letters and rank numbers.
func HideCoordinates() func(*Encoder) {
	return func(e *Encoder) {
		e.coordinates = false
	}
}

func (e *Encoder) encode(w io.Writer, state chess.GameState) error {
	marks := make(map[chess.Position]color.Color, len(e.marks)+2)
	if e.markLastMove != nil && state.LastMove != nil {
		marks[state.LastMove.From()] = e.markLastMove
		marks[state.LastMove.To()] = e.markLastMove
	}
	for p, c := range e.marks {
		marks[p] = c
	}

	var buf strings.Builder
	canvas := svg.New(&buf)
	canvas.Start(boardW+2*margin, boardH+2*margin)
	board := state.BoardState.Board()
	for _, p := range chess.AllPositions() {
		x, y := e.origin(p)
		fill := e.light
		if p.IsDark() {
			fill = e.dark
		}
		if c, ok := marks[p]; ok {
			fill = c
		}
		canvas.Rect(x, y, sqWidth, sqHeight, "fill: "+hex(fill))

		piece := board.Piece(p)
		if piece.IsNone() {
			continue
		}
		canvas.Text(x+sqWidth/2, y+sqHeight*3/4, piece.Symbol(),
			"text-anchor:middle;font-size:36px;font-family:serif")
	}
	if e.coordinates {
		e.drawCoordinates(canvas)
	}
	canvas.End()

	_, err := io.WriteString(w, buf.String())
	return err
}

func (e *Encoder) drawCoordinates(canvas *svg.SVG) {
	style := "text-anchor:middle;font-size:12px;font-family:sans-serif"
	for i := 1; i <= 8; i++ {
		file := chess.Position{File: i, Rank: 1}
		x, _ := e.origin(file)
		canvas.Text(x+sqWidth/2, boardH+margin+14, file.FileLetter(), style)

		rank := chess.Position{File: 1, Rank: i}
		_, y := e.origin(rank)
		canvas.Text(margin/2, y+sqHeight/2+4, fmt.Sprint(i), style)
	}
}

// origin returns the top left corner of the square at p.
func (e *Encoder) origin(p chess.Position) (int, int) {
	col, row := p.File-1, 8-p.Rank
	if e.perspective == chess.Black {
		col, row = 8-p.File, p.Rank-1
	}
	return margin + col*sqWidth, margin + row*sqHeight
}

func hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
