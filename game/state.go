// Package game defines the core value types for the snake simulation.
//
// These types are pure data: the engine package owns all mutation, and
// snapshots handed to hosts are deep copies so no caller can alias
// engine-internal state.
package game

// Point is a board coordinate.
// (0,0) is the top-left cell; Y grows downward, X grows rightward.
type Point struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// Direction is a unit step vector. The zero value means "not yet moving".
type Direction struct {
	DX int32 `json:"dx"`
	DY int32 `json:"dy"`
}

var (
	DirNone  = Direction{}
	DirUp    = Direction{DX: 0, DY: -1}
	DirDown  = Direction{DX: 0, DY: 1}
	DirLeft  = Direction{DX: -1, DY: 0}
	DirRight = Direction{DX: 1, DY: 0}
)

// IsZero reports whether the direction is the "not yet moving" vector.
func (d Direction) IsZero() bool {
	return d.DX == 0 && d.DY == 0
}

// Valid reports whether d is one of the four unit vectors.
func (d Direction) Valid() bool {
	switch d {
	case DirUp, DirDown, DirLeft, DirRight:
		return true
	}
	return false
}

// Opposite returns the reversed vector. The zero direction is its own opposite.
func (d Direction) Opposite() Direction {
	return Direction{DX: -d.DX, DY: -d.DY}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	case DirNone:
		return "None"
	}
	return "Invalid"
}

// Phase is the lifecycle state of a game session.
type Phase int32

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhasePaused
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseRunning:
		return "Running"
	case PhasePaused:
		return "Paused"
	case PhaseGameOver:
		return "GameOver"
	}
	return "Unknown"
}

// Snapshot is a self-contained copy of the visible game state for a
// single tick. It is what recorders, spectator streams, and renderers
// consume; the Snake slice is never shared with the engine.
type Snapshot struct {
	Rows    int32   `json:"rows"`
	Cols    int32   `json:"cols"`
	Tick    int32   `json:"tick"`
	Score   int32   `json:"score"`
	SpeedMs int32   `json:"speed_ms"`
	Phase   string  `json:"phase"`
	Snake   []Point `json:"snake"`
	Food    Point   `json:"food"`
}

// Clone performs a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := s
	if len(s.Snake) > 0 {
		out.Snake = make([]Point, len(s.Snake))
		copy(out.Snake, s.Snake)
	}
	return out
}

// Head returns the snake's head cell, or false if the body is empty.
func (s Snapshot) Head() (Point, bool) {
	if len(s.Snake) == 0 {
		return Point{}, false
	}
	return s.Snake[0], true
}
