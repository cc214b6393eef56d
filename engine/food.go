// food.go implements food placement.

package engine

import "github.com/brensch/gridsnake/game"

// placeFood puts the food on a uniformly random free cell. It returns
// false, leaving the old food in place, when the snake occupies the
// entire board.
//
// Placement enumerates free cells rather than rejection-sampling so a
// nearly full board cannot stall the tick.
func (e *Engine) placeFood() bool {
	occupied := make(map[game.Point]struct{}, len(e.snake))
	for _, p := range e.snake {
		occupied[p] = struct{}{}
	}

	free := make([]game.Point, 0, e.cfg.Rows*e.cfg.Cols-len(e.snake))
	for y := int32(0); y < int32(e.cfg.Rows); y++ {
		for x := int32(0); x < int32(e.cfg.Cols); x++ {
			p := game.Point{X: x, Y: y}
			if _, ok := occupied[p]; ok {
				continue
			}
			free = append(free, p)
		}
	}

	if len(free) == 0 {
		return false
	}
	e.food = free[e.rng.Intn(len(free))]
	return true
}
