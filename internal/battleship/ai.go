package battleship

import (
	"slices"

	"github.com/rocketscienceinc/pencilgames-backend/internal/entity"
	"github.com/rocketscienceinc/pencilgames-backend/internal/pkg/random"
)

// neighbours in the order they are queued: up, down, left, right.
var neighbours = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// hunter is the AI's targeting memory for one game.
type hunter struct {
	queue   []entity.Coord
	lastHit *entity.Coord
}

// nextTarget pops the first usable queued cell (hunt), or falls back to a random untried cell (search).
func (that *hunter) nextTarget(rnd random.Source, board *Board) (entity.Coord, bool) {
	for len(that.queue) > 0 {
		next := that.queue[0]
		that.queue = that.queue[1:]

		if next.In(board.size) && !board.fired(next) {
			return next, true
		}
	}

	untried := board.untried()
	if len(untried) == 0 {
		return entity.Coord{}, false
	}

	return random.Pick(rnd, untried), true
}

// record updates the hunt state after a shot at target.
func (that *hunter) record(board *Board, target entity.Coord, result shotResult) {
	if result == shotMiss {
		return
	}

	if result == shotSunk {
		that.queue = nil
		that.lastHit = nil
		return
	}

	hit := target
	that.lastHit = &hit

	for _, d := range neighbours {
		next := target.Add(d[0], d[1])
		if !next.In(board.size) || board.fired(next) || slices.Contains(that.queue, next) {
			continue
		}

		that.queue = append(that.queue, next)
	}
}

func (that *hunter) reset() {
	that.queue = nil
	that.lastHit = nil
}
