package engine

import (
	"time"

	"github.com/brensch/gridsnake/game"
)

// Advance applies at most one tick at the given timestamp.
//
// It returns Skipped without touching state when the game is not
// Running, when no direction has been set yet, or when less than one
// tick interval has elapsed since the last applied tick. Otherwise the
// snake moves one cell: the head advances in the current direction,
// wall policy is applied, and a collision ends the game. On a
// successful move the result reports the new head, whether food was
// eaten, and the vacated tail cell if the snake did not grow.
func (e *Engine) Advance(now time.Time) TickResult {
	if e.phase != game.PhaseRunning {
		return TickResult{Outcome: Skipped}
	}
	// A stationary snake does not tick. Without this, a zero direction
	// would "move" the head onto itself and end the game immediately.
	if e.dir.IsZero() {
		return TickResult{Outcome: Skipped}
	}
	if !e.lastTick.IsZero() && now.Sub(e.lastTick) < e.speed {
		return TickResult{Outcome: Skipped}
	}
	e.lastTick = now

	head := e.snake[0]
	newHead := game.Point{X: head.X + e.dir.DX, Y: head.Y + e.dir.DY}

	if e.outOfBounds(newHead) {
		if e.cfg.DieFromWalls {
			e.phase = game.PhaseGameOver
			return TickResult{Outcome: Collided, Head: newHead}
		}
		newHead = e.wrap(newHead)
	}

	// Self-collision. A length-1 snake cannot hit itself: the new head
	// simply replaces the sole cell.
	if len(e.snake) > 1 && e.occupied(newHead) {
		e.phase = game.PhaseGameOver
		return TickResult{Outcome: Collided, Head: newHead}
	}

	body := make([]game.Point, 0, len(e.snake)+1)
	body = append(body, newHead)
	body = append(body, e.snake...)
	e.snake = body
	e.tick++

	res := TickResult{Outcome: Moved, Head: newHead}

	if newHead == e.food {
		res.Ate = true
		e.score++
		if e.speed-speedStep >= speedFloor {
			e.speed -= speedStep
		} else {
			e.speed = speedFloor
		}
		if !e.placeFood() {
			res.BoardFull = true
			e.phase = game.PhaseGameOver
		}
		return res
	}

	tail := e.snake[len(e.snake)-1]
	e.snake = e.snake[:len(e.snake)-1]
	res.RemovedTail = &tail
	return res
}

func (e *Engine) outOfBounds(p game.Point) bool {
	return p.X < 0 || p.X >= int32(e.cfg.Cols) || p.Y < 0 || p.Y >= int32(e.cfg.Rows)
}

// wrap reduces each coordinate modulo the board dimension so the snake
// re-enters from the opposite edge. Negative coordinates are shifted
// up by one dimension first; moves are single steps so one shift is
// always enough.
func (e *Engine) wrap(p game.Point) game.Point {
	cols, rows := int32(e.cfg.Cols), int32(e.cfg.Rows)
	if p.X < 0 {
		p.X += cols
	} else if p.X >= cols {
		p.X -= cols
	}
	if p.Y < 0 {
		p.Y += rows
	} else if p.Y >= rows {
		p.Y -= rows
	}
	return p
}

func (e *Engine) occupied(p game.Point) bool {
	for _, c := range e.snake {
		if c == p {
			return true
		}
	}
	return false
}
