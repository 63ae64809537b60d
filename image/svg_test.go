package image

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/mway1/chess"
)

func TestSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := SVG(&buf, chess.StartingGameState()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "<?xml") || !strings.Contains(out, "</svg>") {
		t.Fatalf("not an svg document: %.80s", out)
	}
	if n := strings.Count(out, "<rect"); n != 64 {
		t.Fatalf("expected 64 squares but got %d", n)
	}
	for _, glyph := range []string{"♔", "♚", "♕", "♛"} {
		if strings.Count(out, glyph) != 1 {
			t.Fatalf("expected exactly one %s", glyph)
		}
	}
	if strings.Count(out, "♙") != 8 {
		t.Fatal("expected eight white pawns")
	}
	if !strings.Contains(out, ">a</text>") || !strings.Contains(out, ">8</text>") {
		t.Fatal("expected coordinates")
	}
}

func TestSVGOptions(t *testing.T) {
	g := chess.NewGame()
	if err := g.PushMove("e4"); err != nil {
		t.Fatal(err)
	}
	mark := color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xff}
	square := color.RGBA{R: 0xab, G: 0xcd, B: 0xef, A: 0xff}
	e5, _ := chess.ParsePosition("e5")

	var buf bytes.Buffer
	err := SVG(&buf, g.CurrentState(),
		MarkLastMove(mark),
		MarkSquares(square, e5),
		HideCoordinates(),
	)
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if n := strings.Count(out, "#123456"); n != 2 {
		t.Fatalf("expected the two last move squares marked but got %d", n)
	}
	if n := strings.Count(out, "#abcdef"); n != 1 {
		t.Fatalf("expected one marked square but got %d", n)
	}
	if strings.Contains(out, ">a</text>") {
		t.Fatal("coordinates should be hidden")
	}
}

func TestSVGPerspective(t *testing.T) {
	var white, black bytes.Buffer
	light := color.RGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff}
	dark := color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff}
	if err := SVG(&white, chess.StartingGameState(), SquareColors(light, dark)); err != nil {
		t.Fatal(err)
	}
	if err := SVG(&black, chess.StartingGameState(), SquareColors(light, dark), Perspective(chess.Black)); err != nil {
		t.Fatal(err)
	}
	if white.String() == black.String() {
		t.Fatal("perspectives should differ")
	}
	if strings.Count(white.String(), "#111111") != 32 || strings.Count(white.String(), "#222222") != 32 {
		t.Fatal("expected 32 light and 32 dark squares")
	}

	e := &Encoder{perspective: chess.Black}
	h1, _ := chess.ParsePosition("h1")
	if x, y := e.origin(h1); x != margin || y != margin {
		t.Fatalf("h1 should be top left from black's side, got %d,%d", x, y)
	}
}
