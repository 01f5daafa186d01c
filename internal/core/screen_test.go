package core

import (
	"strings"
	"testing"
)

// rows splits the plain text of s for comparisons.
func rows(s *Screen) []string {
	return strings.Split(s.String(), "\n")
}

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(6, 3)

	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, expected 6x3", s.Width(), s.Height())
	}
	if got := s.String(); got != "      \n      \n      " {
		t.Errorf("String() = %q, expected three blank rows", got)
	}
}

func TestScreenClipsDrawing(t *testing.T) {
	s := NewScreen(5, 2)

	s.DrawText(3, 0, "Hello")
	s.DrawText(-2, 1, "Hey!")
	s.SetColor(0, 5, 'X', ColorRed)

	want := []string{"   He", "y!   "}
	for i, row := range rows(s) {
		if row != want[i] {
			t.Errorf("row %d = %q, expected %q", i, row, want[i])
		}
	}
	if c := s.GetCell(-1, 0); c != blank {
		t.Errorf("GetCell outside = %+v, expected blank", c)
	}
}

func TestScreenColors(t *testing.T) {
	s := NewScreen(8, 1)
	s.DrawTextColor(1, 0, "2048", ColorBrightCyan)

	if c := s.GetCell(1, 0); c.Rune != '2' || c.Color != ColorBrightCyan {
		t.Errorf("GetCell(1, 0) = %+v", c)
	}
	if c := s.GetCell(0, 0); c.Color != ColorDefault {
		t.Errorf("untouched cell colored %d", c.Color)
	}

	s.Clear()
	if c := s.GetCell(1, 0); c != blank {
		t.Errorf("Clear left %+v", c)
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawTextCentered(0, "→ok")

	if got := rows(s)[0]; got != "   →ok    " {
		t.Errorf("centered row = %q", got)
	}
}

func TestScreenBoxAndRect(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawRect(NewRect(0, 0, 6, 4), '.')
	s.DrawBoxColor(NewRect(1, 0, 4, 3), ColorGray)

	want := []string{
		".┌──┐.",
		".│..│.",
		".└──┘.",
		"......",
	}
	for i, row := range rows(s) {
		if row != want[i] {
			t.Errorf("row %d = %q, expected %q", i, row, want[i])
		}
	}
	if c := s.GetCell(1, 0); c.Color != ColorGray {
		t.Errorf("corner color = %d, expected gray", c.Color)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawTextColor(0, 0, "abcd", ColorGreen)
	s.DrawText(0, 1, "efgh")

	s.Resize(2, 3)
	want := []string{"ab", "ef", "  "}
	for i, row := range rows(s) {
		if row != want[i] {
			t.Errorf("shrunk row %d = %q, expected %q", i, row, want[i])
		}
	}
	if s.GetCell(1, 0).Color != ColorGreen {
		t.Error("resize dropped colors")
	}

	s.Resize(3, 1)
	if got := s.String(); got != "ab " {
		t.Errorf("after grow = %q, expected %q", got, "ab ")
	}

	s.Resize(-1, 2)
	if s.Width() != 0 || s.String() != "" {
		t.Errorf("negative width gave %dx%d %q", s.Width(), s.Height(), s.String())
	}
}
