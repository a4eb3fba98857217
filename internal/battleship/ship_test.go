package battleship

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/pencilgames-backend/internal/entity"
	"github.com/rocketscienceinc/pencilgames-backend/internal/pkg/random"
)

func TestPlacedShip_Positions(t *testing.T) {
	t.Run("Horizontal", func(t *testing.T) {
		ship := PlacedShip{Size: 2, Orientation: Horizontal, Anchor: entity.Coord{}}

		assert.Equal(t, []entity.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}}, ship.Positions())
	})

	t.Run("Vertical", func(t *testing.T) {
		ship := PlacedShip{Size: 3, Orientation: Vertical, Anchor: entity.Coord{Row: 4, Col: 7}}

		expected := []entity.Coord{{Row: 4, Col: 7}, {Row: 5, Col: 7}, {Row: 6, Col: 7}}
		assert.Equal(t, expected, ship.Positions())
	})
}

func TestPlacedShip_Sunk(t *testing.T) {
	// Given: a size-3 ship
	ship := &PlacedShip{Size: 3, Orientation: Horizontal}
	require.False(t, ship.Sunk())

	// When: two of three positions are hit
	ship.hit(0)
	ship.hit(2)

	// Then: it is not sunk until the last one is hit
	assert.False(t, ship.Sunk())

	ship.hit(1)
	assert.True(t, ship.Sunk())
}

func TestMirroredAnchor(t *testing.T) {
	assert.Equal(t, entity.Coord{Row: 3, Col: 6}, mirroredAnchor(entity.Coord{Row: 3, Col: 9}, 4, Horizontal))
	assert.Equal(t, entity.Coord{Row: 6, Col: 3}, mirroredAnchor(entity.Coord{Row: 9, Col: 3}, 4, Vertical))
}

func TestPlaceFleet(t *testing.T) {
	t.Run("Fleet fits", func(t *testing.T) {
		// When: the default fleet is placed on a 10x10 board
		board, err := placeFleet(random.New(7), DefaultBoardSize, DefaultFleet)
		require.NoError(t, err)

		// Then: every ship is in bounds, in order, and no cell is shared
		require.Len(t, board.ships, len(DefaultFleet))

		seen := make(map[entity.Coord]bool)
		for i, ship := range board.ships {
			assert.Equal(t, DefaultFleet[i], ship.Size)

			positions := ship.Positions()
			assert.Len(t, positions, ship.Size)

			for _, position := range positions {
				assert.True(t, position.In(DefaultBoardSize))
				assert.False(t, seen[position], "cell %+v used twice", position)
				seen[position] = true
			}
		}
	})

	t.Run("Fleet does not fit", func(t *testing.T) {
		// When: a ship longer than the board is placed
		_, err := placeFleet(random.New(7), 2, []int{3})

		// Then: the placement error is reported
		require.ErrorIs(t, err, ErrFleetPlacement)
	})
}

func TestHunter(t *testing.T) {
	t.Run("Hit queues neighbours", func(t *testing.T) {
		// Given: a ship at (5,5)-(5,7)
		board := newBoard(DefaultBoardSize)
		board.add(PlacedShip{Size: 3, Orientation: Horizontal, Anchor: entity.Coord{Row: 5, Col: 5}})

		var ai hunter
		target := entity.Coord{Row: 5, Col: 6}

		// When: the middle cell is hit
		result, _ := board.receive(target)
		ai.record(board, target, result)

		// Then: up, down, left, right are queued
		expected := []entity.Coord{{Row: 4, Col: 6}, {Row: 6, Col: 6}, {Row: 5, Col: 5}, {Row: 5, Col: 7}}
		assert.Equal(t, expected, ai.queue)
		assert.Equal(t, &target, ai.lastHit)

		next, ok := ai.nextTarget(random.New(1), board)
		require.True(t, ok)
		assert.Equal(t, entity.Coord{Row: 4, Col: 6}, next)
	})

	t.Run("Corner hit skips out of bounds", func(t *testing.T) {
		board := newBoard(DefaultBoardSize)
		board.add(PlacedShip{Size: 2, Orientation: Horizontal, Anchor: entity.Coord{}})

		var ai hunter
		result, _ := board.receive(entity.Coord{})
		ai.record(board, entity.Coord{}, result)

		assert.Equal(t, []entity.Coord{{Row: 1, Col: 0}, {Row: 0, Col: 1}}, ai.queue)
	})

	t.Run("Sinking clears the hunt", func(t *testing.T) {
		board := newBoard(DefaultBoardSize)
		board.add(PlacedShip{Size: 2, Orientation: Horizontal, Anchor: entity.Coord{}})

		var ai hunter
		for _, target := range []entity.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}} {
			result, _ := board.receive(target)
			ai.record(board, target, result)
		}

		assert.Empty(t, ai.queue)
		assert.Nil(t, ai.lastHit)
	})

	t.Run("Queue never holds attacked cells", func(t *testing.T) {
		// Given: a randomly placed fleet
		rnd := random.New(42)
		board, err := placeFleet(rnd, DefaultBoardSize, DefaultFleet)
		require.NoError(t, err)

		var ai hunter

		// When: the AI plays until the fleet is sunk
		for shots := 0; !board.allSunk(); shots++ {
			require.Less(t, shots, DefaultBoardSize*DefaultBoardSize)

			target, ok := ai.nextTarget(rnd, board)
			require.True(t, ok)
			require.False(t, board.fired(target))

			result, _ := board.receive(target)
			ai.record(board, target, result)

			// Then: after every shot the queue only holds fresh, distinct, in-bounds cells
			seen := make(map[entity.Coord]bool)
			for _, queued := range ai.queue {
				assert.True(t, queued.In(DefaultBoardSize))
				assert.False(t, board.fired(queued))
				assert.False(t, seen[queued])
				seen[queued] = true
			}
		}
	})
}
