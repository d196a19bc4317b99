package ui

import (
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"CIRCUIT", 10, "CIRCUIT"},
		{"CIRCUIT", 7, "CIRCUIT"},
		{"CIRCUIT", 5, "CIRC…"},
		{"仮想回路", 5, "仮想…"},
		{"仮想回路", 1, "…"},
		{"abc", 0, ""},
	}
	for _, tc := range tests {
		if got := truncate(tc.in, tc.width); got != tc.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}

func TestSpread(t *testing.T) {
	got := spread("left", "right", 20)
	if runewidth.StringWidth(got) != 20 {
		t.Fatalf("width = %d: %q", runewidth.StringWidth(got), got)
	}
	if got[:4] != "left" || got[len(got)-5:] != "right" {
		t.Errorf("unexpected layout %q", got)
	}
	if got := spread("a long status message", "footer", 10); runewidth.StringWidth(got) > 10 {
		t.Errorf("overflow: %q", got)
	}
}
