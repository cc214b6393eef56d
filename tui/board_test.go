package tui

import (
	"testing"

	"github.com/brensch/gridsnake/game"
)

func TestBoardRowsLayout(t *testing.T) {
	snap := game.Snapshot{
		Rows:  3,
		Cols:  4,
		Snake: []game.Point{{X: 1, Y: 1}, {X: 0, Y: 1}},
		Food:  game.Point{X: 3, Y: 0},
	}

	rows := BoardRows(snap)
	want := []string{
		"   *",
		"#@  ",
		"    ",
	}
	if len(rows) != len(want) {
		t.Fatalf("rows = %d, want %d", len(rows), len(want))
	}
	for y := range want {
		if rows[y] != want[y] {
			t.Errorf("row %d = %q, want %q", y, rows[y], want[y])
		}
	}
}

func TestBoardRowsHeadWinsOverFood(t *testing.T) {
	// When the head has just landed on the food cell, draw the head.
	snap := game.Snapshot{
		Rows:  2,
		Cols:  2,
		Snake: []game.Point{{X: 0, Y: 0}},
		Food:  game.Point{X: 0, Y: 0},
	}
	rows := BoardRows(snap)
	if rows[0][0] != glyphHead {
		t.Fatalf("cell = %q, want head glyph", rows[0][0])
	}
}
