// Package engine implements the snake game state machine.
//
// The engine performs no scheduling and no I/O: a host advances it by
// calling Advance with a monotonically non-decreasing timestamp on
// whatever cadence it likes (typically a frame timer), and queries the
// resulting state to update its view. All operations are synchronous
// and must be invoked from a single goroutine; Advance must not be
// re-entered.
package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/brensch/gridsnake/game"
)

// ErrInvalidConfig is wrapped by New for any rejected configuration.
var ErrInvalidConfig = errors.New("invalid engine config")

const (
	// speedFloor is the fastest the game gets; eating food shaves
	// speedStep off the tick interval until the floor is reached.
	speedFloor = 30 * time.Millisecond
	speedStep  = 1 * time.Millisecond
)

// Config holds the immutable game parameters accepted at construction.
type Config struct {
	Rows int
	Cols int

	// InitialSpeed is the starting tick interval.
	InitialSpeed time.Duration

	// DieFromWalls makes out-of-bounds moves lethal. When false the
	// board wraps and the snake re-enters from the opposite edge.
	DieFromWalls bool

	// Rand supplies food placement randomness. Nil seeds from the wall
	// clock; tests pass a fixed-seed source for determinism.
	Rand *rand.Rand
}

// DefaultConfig returns the standard 17x17 board with lethal walls.
func DefaultConfig() Config {
	return Config{
		Rows:         17,
		Cols:         17,
		InitialSpeed: 70 * time.Millisecond,
		DieFromWalls: true,
	}
}

// Outcome classifies the result of one Advance call.
type Outcome int32

const (
	// Skipped means no tick was applied: the game is not running, the
	// snake has no direction yet, or the tick interval has not elapsed.
	Skipped Outcome = iota
	// Moved means the snake advanced one cell.
	Moved
	// Collided means the move hit a wall or the snake's own body and
	// the game is now over.
	Collided
)

func (o Outcome) String() string {
	switch o {
	case Skipped:
		return "Skipped"
	case Moved:
		return "Moved"
	case Collided:
		return "Collided"
	}
	return "Unknown"
}

// TickResult carries everything a host needs to update its view
// incrementally after one Advance call.
type TickResult struct {
	Outcome Outcome

	// Head is the cell the snake moved (or crashed) into. Only
	// meaningful when Outcome is Moved or Collided.
	Head game.Point

	// RemovedTail is the cell vacated by the tail, for the host to
	// clear. Nil when the snake grew or did not move.
	RemovedTail *game.Point

	// Ate reports whether Head landed on food this tick.
	Ate bool

	// BoardFull is set when the snake ate the last free cell and no
	// food could be placed; the game is over with the board filled.
	BoardFull bool
}

// Engine owns all mutable game state. The zero value is not usable;
// construct with New.
type Engine struct {
	cfg Config
	rng *rand.Rand

	phase    game.Phase
	snake    []game.Point // head first
	food     game.Point
	dir      game.Direction
	score    int
	speed    time.Duration
	lastTick time.Time
	tick     int32
}

// New validates cfg and returns an engine in the Idle phase with the
// snake and food already placed. Call Start (or Reset) to begin play.
func New(cfg Config) (*Engine, error) {
	if cfg.Rows <= 0 || cfg.Cols <= 0 {
		return nil, fmt.Errorf("%w: board %dx%d", ErrInvalidConfig, cfg.Cols, cfg.Rows)
	}
	if cfg.Rows*cfg.Cols < 2 {
		return nil, fmt.Errorf("%w: board must have room for snake and food", ErrInvalidConfig)
	}
	if cfg.InitialSpeed <= 0 {
		return nil, fmt.Errorf("%w: initial speed %v", ErrInvalidConfig, cfg.InitialSpeed)
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	e := &Engine{cfg: cfg, rng: rng}
	e.resetBoard()
	return e, nil
}

// resetBoard restores the initial board: a length-1 snake at the board
// center, no direction, score zero, initial speed, fresh food.
func (e *Engine) resetBoard() {
	e.snake = []game.Point{{X: int32(e.cfg.Cols / 2), Y: int32(e.cfg.Rows / 2)}}
	e.dir = game.DirNone
	e.score = 0
	e.speed = e.cfg.InitialSpeed
	e.tick = 0
	e.lastTick = time.Time{}
	e.placeFood()
}

// Start transitions the engine to Running. It is idempotent while
// Running; from any other phase it (re)enters Running without touching
// the board, and arms the tick gate so the next Advance applies a move
// immediately.
func (e *Engine) Start() {
	if e.phase == game.PhaseRunning {
		return
	}
	e.phase = game.PhaseRunning
	e.lastTick = time.Time{}
}

// Pause suspends ticking. Snake, food, and score are untouched.
func (e *Engine) Pause() {
	if e.phase == game.PhaseRunning {
		e.phase = game.PhasePaused
	}
}

// Resume continues a paused game.
func (e *Engine) Resume() {
	if e.phase == game.PhasePaused {
		e.phase = game.PhaseRunning
	}
}

// TogglePause flips between Running and Paused. No effect in other phases.
func (e *Engine) TogglePause() {
	switch e.phase {
	case game.PhaseRunning:
		e.phase = game.PhasePaused
	case game.PhasePaused:
		e.phase = game.PhaseRunning
	}
}

// Stop forces the engine back to Idle from any phase. It is a teardown
// signal, not a game-over: the board is left as-is and a subsequent
// Reset always succeeds.
func (e *Engine) Stop() {
	e.phase = game.PhaseIdle
}

// Reset restores the initial board and starts a new game immediately,
// regardless of the current phase.
func (e *Engine) Reset() {
	e.resetBoard()
	e.phase = game.PhaseRunning
}

// SetDirection requests a new movement direction. The request is
// silently ignored if the game is neither Running nor Paused, if
// (dx,dy) is not a unit vector, or if it would reverse a snake of
// length > 1 straight into its own neck. A length-1 snake may reverse
// freely. Direction changes made while Paused persist across the pause.
func (e *Engine) SetDirection(dx, dy int) {
	if e.phase != game.PhaseRunning && e.phase != game.PhasePaused {
		return
	}
	d := game.Direction{DX: int32(dx), DY: int32(dy)}
	if !d.Valid() {
		return
	}
	if len(e.snake) > 1 && d == e.dir.Opposite() {
		return
	}
	e.dir = d
}

// Score returns the number of food items eaten this game.
func (e *Engine) Score() int { return e.score }

// SnakeLength returns the current body length (always >= 1).
func (e *Engine) SnakeLength() int { return len(e.snake) }

// SnakeCells returns a copy of the body, head first.
func (e *Engine) SnakeCells() []game.Point {
	out := make([]game.Point, len(e.snake))
	copy(out, e.snake)
	return out
}

// FoodCell returns the current food position.
func (e *Engine) FoodCell() game.Point { return e.food }

// Direction returns the current movement vector (zero until the first
// SetDirection after a reset).
func (e *Engine) Direction() game.Direction { return e.dir }

// Speed returns the current tick interval.
func (e *Engine) Speed() time.Duration { return e.speed }

// State returns the current phase.
func (e *Engine) State() game.Phase { return e.phase }

// IsRunning reports whether the game is actively ticking.
func (e *Engine) IsRunning() bool { return e.phase == game.PhaseRunning }

// IsPaused reports whether the game is paused.
func (e *Engine) IsPaused() bool { return e.phase == game.PhasePaused }

// Snapshot returns a deep copy of the visible state for recording,
// streaming, or rendering.
func (e *Engine) Snapshot() game.Snapshot {
	snake := make([]game.Point, len(e.snake))
	copy(snake, e.snake)
	return game.Snapshot{
		Rows:    int32(e.cfg.Rows),
		Cols:    int32(e.cfg.Cols),
		Tick:    e.tick,
		Score:   int32(e.score),
		SpeedMs: int32(e.speed / time.Millisecond),
		Phase:   e.phase.String(),
		Snake:   snake,
		Food:    e.food,
	}
}
