// Package replay persists game sessions as Parquet files, one row per
// applied tick, so finished games can be played back or analyzed
// offline.
package replay

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/brensch/gridsnake/game"
)

// TickRow is a single applied tick of a session.
//
// The row is self-contained: body coordinates are stored as parallel
// column slices (compresses far better than one row per cell), and
// board dimensions repeat on every row so a file can be read from any
// offset.
type TickRow struct {
	SessionID  string `parquet:"session_id,dict"`
	Tick       int32  `parquet:"tick"`
	CapturedMs int64  `parquet:"captured_ms"`

	Rows int32 `parquet:"rows"`
	Cols int32 `parquet:"cols"`

	Score   int32 `parquet:"score"`
	SpeedMs int32 `parquet:"speed_ms"`

	DirX int32 `parquet:"dir_x"`
	DirY int32 `parquet:"dir_y"`

	Ate      bool `parquet:"ate"`
	Collided bool `parquet:"collided"`

	BodyX []int32 `parquet:"body_x"`
	BodyY []int32 `parquet:"body_y"`

	FoodX int32 `parquet:"food_x"`
	FoodY int32 `parquet:"food_y"`
}

// NewRow flattens a snapshot into a tick row.
func NewRow(sessionID string, snap game.Snapshot, dir game.Direction, ate, collided bool, captured time.Time) TickRow {
	row := TickRow{
		SessionID:  sessionID,
		Tick:       snap.Tick,
		CapturedMs: captured.UnixMilli(),
		Rows:       snap.Rows,
		Cols:       snap.Cols,
		Score:      snap.Score,
		SpeedMs:    snap.SpeedMs,
		DirX:       dir.DX,
		DirY:       dir.DY,
		Ate:        ate,
		Collided:   collided,
		FoodX:      snap.Food.X,
		FoodY:      snap.Food.Y,
		BodyX:      make([]int32, len(snap.Snake)),
		BodyY:      make([]int32, len(snap.Snake)),
	}
	for i, p := range snap.Snake {
		row.BodyX[i] = p.X
		row.BodyY[i] = p.Y
	}
	return row
}

// Snapshot reconstructs the snapshot recorded in the row.
func (r TickRow) Snapshot() game.Snapshot {
	snake := make([]game.Point, len(r.BodyX))
	for i := range r.BodyX {
		snake[i] = game.Point{X: r.BodyX[i], Y: r.BodyY[i]}
	}
	phase := game.PhaseRunning
	if r.Collided {
		phase = game.PhaseGameOver
	}
	return game.Snapshot{
		Rows:    r.Rows,
		Cols:    r.Cols,
		Tick:    r.Tick,
		Score:   r.Score,
		SpeedMs: r.SpeedMs,
		Phase:   phase.String(),
		Snake:   snake,
		Food:    game.Point{X: r.FoodX, Y: r.FoodY},
	}
}

// Read loads every tick row from a session file in recorded order.
// Rows are not re-sorted by tick: a mid-session reset restarts the
// tick counter, and file order is the true chronology.
func Read(path string) ([]TickRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open replay: %w", err)
	}
	defer f.Close()

	reader := parquet.NewGenericReader[TickRow](f)
	defer reader.Close()

	var out []TickRow
	buf := make([]TickRow, 256)
	for {
		n, err := reader.Read(buf)
		for i := 0; i < n; i++ {
			// The reader may reuse slice storage between calls; keep
			// our own copies of the body columns.
			row := buf[i]
			row.BodyX = append([]int32(nil), buf[i].BodyX...)
			row.BodyY = append([]int32(nil), buf[i].BodyY...)
			out = append(out, row)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read replay rows: %w", err)
		}
	}

	return out, nil
}
