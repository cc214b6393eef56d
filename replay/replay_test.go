package replay

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/brensch/gridsnake/game"
)

func TestRecordFinalizeRead(t *testing.T) {
	dir := t.TempDir()

	rec, err := NewRecorder(dir, "test_session")
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}

	captured := time.UnixMilli(1700000000000)
	snaps := []game.Snapshot{
		{
			Rows: 17, Cols: 17, Tick: 1, Score: 0, SpeedMs: 70,
			Snake: []game.Point{{X: 9, Y: 8}},
			Food:  game.Point{X: 9, Y: 9},
		},
		{
			Rows: 17, Cols: 17, Tick: 2, Score: 1, SpeedMs: 69,
			Snake: []game.Point{{X: 9, Y: 9}, {X: 9, Y: 8}},
			Food:  game.Point{X: 3, Y: 4},
		},
	}
	for i, snap := range snaps {
		row := NewRow("test_session", snap, game.DirDown, i == 1, false, captured)
		if err := rec.Record(row); err != nil {
			t.Fatalf("Record tick %d: %v", i+1, err)
		}
	}

	outPath, rows, err := rec.Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if rows != 2 {
		t.Fatalf("Finalize rows = %d, want 2", rows)
	}
	if outPath != filepath.Join(dir, "test_session.parquet") {
		t.Fatalf("unexpected outPath %q", outPath)
	}

	got, err := Read(outPath)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("read %d rows, want 2", len(got))
	}

	if got[0].Tick != 1 || got[1].Tick != 2 {
		t.Fatalf("rows out of order: %d, %d", got[0].Tick, got[1].Tick)
	}
	if got[1].Score != 1 || !got[1].Ate {
		t.Fatalf("eating row mismatch: %+v", got[1])
	}
	if got[0].CapturedMs != 1700000000000 {
		t.Fatalf("captured_ms = %d", got[0].CapturedMs)
	}

	snap := got[1].Snapshot()
	if len(snap.Snake) != 2 || snap.Snake[0] != (game.Point{X: 9, Y: 9}) {
		t.Fatalf("reconstructed snake = %v", snap.Snake)
	}
	if snap.Food != (game.Point{X: 3, Y: 4}) {
		t.Fatalf("reconstructed food = %+v", snap.Food)
	}
}

func TestFinalizeEmptySessionLeavesNothing(t *testing.T) {
	dir := t.TempDir()

	rec, err := NewRecorder(dir, "empty")
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}

	outPath, rows, err := rec.Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if outPath != "" || rows != 0 {
		t.Fatalf("Finalize = %q, %d; want empty", outPath, rows)
	}
	if _, err := os.Stat(filepath.Join(dir, "empty.parquet")); !os.IsNotExist(err) {
		t.Fatalf("empty session left a file: %v", err)
	}
}

func TestRecorderRejectsMissingArgs(t *testing.T) {
	if _, err := NewRecorder("", "s"); err == nil {
		t.Fatal("NewRecorder accepted empty outDir")
	}
	if _, err := NewRecorder(t.TempDir(), ""); err == nil {
		t.Fatal("NewRecorder accepted empty sessionID")
	}
}
