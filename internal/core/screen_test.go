package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.GetCell(x, y).Rune != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.GetCell(x, y).Rune, x, y)
			}
		}
	}
}

func TestNewScreenNegativeSize(t *testing.T) {
	s := NewScreen(-5, -1)
	if s.Width() != 0 || s.Height() != 0 {
		t.Errorf("negative dimensions should clamp to 0x0, got %dx%d", s.Width(), s.Height())
	}
	if s.String() != "" {
		t.Errorf("empty screen String() = %q, expected empty", s.String())
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.GetCell(5, 5).Rune != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.GetCell(5, 5).Rune)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.GetCell(-1, 0).Rune != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.GetCell(100, 0).Rune != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenColoredCells(t *testing.T) {
	s := NewScreen(10, 3)
	s.DrawTextColored(1, 1, "2048", ColorBrightMagenta)

	cell := s.GetCell(1, 1)
	if cell.Rune != '2' || cell.Color != ColorBrightMagenta {
		t.Errorf("GetCell(1, 1) = %+v, expected '2' in bright magenta", cell)
	}

	if s.GetCell(0, 1).Color != ColorDefault {
		t.Error("cells outside the text should keep the default color")
	}

	s.Clear()
	if s.GetCell(1, 1) != (Cell{Rune: ' ', Color: ColorDefault}) {
		t.Errorf("Clear should reset colors, got %+v", s.GetCell(1, 1))
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "Hello")

	for i, ch := range "Hello" {
		if s.GetCell(2+i, 1).Rune != ch {
			t.Errorf("DrawText: expected %q at (%d, 1), got %q", ch, 2+i, s.GetCell(2+i, 1).Rune)
		}
	}

	// Only "He" fits
	s.DrawText(18, 0, "Hello")
	if s.GetCell(18, 0).Rune != 'H' || s.GetCell(19, 0).Rune != 'e' {
		t.Error("Text should be clipped at right boundary")
	}
}

func TestScreenDrawTextMultibyte(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawText(0, 0, "█2█")

	if s.GetCell(1, 0).Rune != '2' {
		t.Errorf("multibyte runes should occupy one cell each, got %q at x=1", s.GetCell(1, 0).Rune)
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(2, "Hi")

	x := (20 - 2) / 2
	if s.GetCell(x, 2).Rune != 'H' || s.GetCell(x+1, 2).Rune != 'i' {
		t.Errorf("DrawTextCentered failed, text not at expected position")
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawRect(NewRect(2, 2, 3, 3), '#')

	for y := 2; y < 5; y++ {
		for x := 2; x < 5; x++ {
			if s.GetCell(x, y).Rune != '#' {
				t.Errorf("DrawRect: expected '#' at (%d, %d), got %q", x, y, s.GetCell(x, y).Rune)
			}
		}
	}

	if s.GetCell(1, 1).Rune != ' ' || s.GetCell(5, 5).Rune != ' ' {
		t.Error("DrawRect should not affect outside area")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4))

	corners := []struct {
		x, y int
		want rune
	}{
		{1, 1, '┌'},
		{5, 1, '┐'},
		{1, 4, '└'},
		{5, 4, '┘'},
	}
	for _, c := range corners {
		if got := s.GetCell(c.x, c.y).Rune; got != c.want {
			t.Errorf("corner at (%d, %d) = %q, expected %q", c.x, c.y, got, c.want)
		}
	}

	for x := 2; x < 5; x++ {
		if s.GetCell(x, 1).Rune != '─' || s.GetCell(x, 4).Rune != '─' {
			t.Errorf("horizontal edges should be '─' at x=%d", x)
		}
	}
	for y := 2; y < 4; y++ {
		if s.GetCell(1, y).Rune != '│' || s.GetCell(5, y).Rune != '│' {
			t.Errorf("vertical edges should be '│' at y=%d", y)
		}
	}
}

func TestScreenColoredLines(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawHLineColored(1, 0, 4, '─', ColorGray)
	s.DrawVLineColored(0, 1, 3, '│', ColorGray)

	for x := 1; x < 5; x++ {
		if c := s.GetCell(x, 0); c != (Cell{Rune: '─', Color: ColorGray}) {
			t.Errorf("hline cell (%d, 0) = %+v", x, c)
		}
	}
	for y := 1; y < 4; y++ {
		if c := s.GetCell(0, y); c != (Cell{Rune: '│', Color: ColorGray}) {
			t.Errorf("vline cell (0, %d) = %+v", y, c)
		}
	}
	if s.GetCell(5, 0).Rune != ' ' || s.GetCell(0, 4).Rune != ' ' {
		t.Error("lines should stop at their length")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA")
	s.DrawText(0, 1, "BBBBB")
	s.DrawText(0, 2, "CCCCC")

	expected := "AAAAA\nBBBBB\nCCCCC"
	if result := s.String(); result != expected {
		t.Errorf("String() = %q, expected %q", result, expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello")
	s.DrawText(0, 5, "World")

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("After resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}
	if out := s.String(); !strings.HasPrefix(out, "Hello") {
		t.Errorf("Content should be preserved, got %q", out)
	}

	s.Resize(15, 8)
	if out := s.String(); !strings.HasPrefix(out, "Hello") {
		t.Errorf("Content should be preserved after enlarging, got %q", out)
	}
}

func TestActionString(t *testing.T) {
	tests := map[Action]string{
		ActionNone:       "None",
		ActionUp:         "Up",
		ActionScores:     "Scores",
		ActionScreenshot: "Screenshot",
	}
	for a, want := range tests {
		if a.String() != want {
			t.Errorf("Action(%d).String() = %q, expected %q", int(a), a.String(), want)
		}
	}

	if Action(99).String() != "Unknown" {
		t.Errorf("unexpected name for out-of-range action: %s", Action(99))
	}
}
