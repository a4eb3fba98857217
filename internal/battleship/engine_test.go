package battleship

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/pencilgames-backend/internal/entity"
	"github.com/rocketscienceinc/pencilgames-backend/internal/pkg/random"
)

func newTestEngine() *Engine {
	return New(WithRandom(random.New(3)))
}

// placeInventory puts every inventory ship horizontally at the start of its own row.
func placeInventory(t *testing.T, engine *Engine) {
	t.Helper()

	for row := 0; len(engine.State().Inventory) > 0; row++ {
		engine.SelectShip(0)
		engine.PlaceShip(row, 0)
		require.Len(t, engine.State().PlayerShips, row+1)
	}
}

func TestNew(t *testing.T) {
	// When: a new engine is created
	state := newTestEngine().State()

	// Then: it waits for placement with the fleet in ascending order
	expected := []Ship{
		{Size: 2, Orientation: Horizontal},
		{Size: 2, Orientation: Horizontal},
		{Size: 2, Orientation: Horizontal},
		{Size: 3, Orientation: Horizontal},
		{Size: 3, Orientation: Horizontal},
		{Size: 4, Orientation: Horizontal},
	}

	assert.Equal(t, PhasePlacement, state.Phase)
	assert.Equal(t, expected, state.Inventory)
	assert.Equal(t, -1, state.Selected)
	assert.Empty(t, state.PlayerShips)
	assert.True(t, state.PlayerTurn)
	assert.Len(t, state.PlayerBoard, DefaultBoardSize)
}

func TestEngine_Placement(t *testing.T) {
	t.Run("PlaceShip", func(t *testing.T) {
		// Given: the first size-2 ship is selected
		engine := newTestEngine()
		engine.SelectShip(0)

		// When: it is placed at (0,0)
		state := engine.PlaceShip(0, 0)

		// Then: it occupies (0,0) and (0,1) and leaves the inventory
		require.Len(t, state.PlayerShips, 1)
		assert.Equal(t, []entity.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}}, state.PlayerShips[0].Positions())
		assert.Len(t, state.Inventory, 5)
		assert.Equal(t, -1, state.Selected)
		assert.Equal(t, CellShip, state.PlayerBoard[0][1])
	})

	t.Run("Mirrored anchor at the edge", func(t *testing.T) {
		// Given: the size-4 ship is selected
		engine := newTestEngine()
		engine.SelectShip(5)

		// When: it is placed on the last column
		state := engine.PlaceShip(2, 9)

		// Then: it ends on the clicked cell instead
		require.Len(t, state.PlayerShips, 1)
		assert.Equal(t, entity.Coord{Row: 2, Col: 6}, state.PlayerShips[0].Anchor)
	})

	t.Run("Rotated ship is placed vertically", func(t *testing.T) {
		engine := newTestEngine()
		engine.SelectShip(3)

		state := engine.RotateSelected()
		require.Equal(t, Vertical, state.Inventory[3].Orientation)

		state = engine.PlaceShip(9, 0)

		require.Len(t, state.PlayerShips, 1)
		assert.Equal(t, Vertical, state.PlayerShips[0].Orientation)
		assert.Equal(t, entity.Coord{Row: 7, Col: 0}, state.PlayerShips[0].Anchor)
	})

	t.Run("Overlap is rejected", func(t *testing.T) {
		// Given: a ship at (0,0)-(0,1)
		engine := newTestEngine()
		engine.SelectShip(0)
		engine.PlaceShip(0, 0)

		// When: another size-2 ship is dropped on (0,1)
		engine.SelectShip(0)
		state := engine.PlaceShip(0, 1)

		// Then: neither the anchor nor the mirrored anchor fits, nothing changes
		assert.Len(t, state.PlayerShips, 1)
		assert.Len(t, state.Inventory, 5)
		assert.Equal(t, 0, state.Selected)
	})

	t.Run("Nothing selected", func(t *testing.T) {
		engine := newTestEngine()

		state := engine.PlaceShip(0, 0)

		assert.Empty(t, state.PlayerShips)
		assert.Len(t, state.Inventory, 6)
	})

	t.Run("Invalid selection clears", func(t *testing.T) {
		engine := newTestEngine()
		engine.SelectShip(2)

		state := engine.SelectShip(17)

		assert.Equal(t, -1, state.Selected)
	})
}

func TestEngine_ToggleOrientation(t *testing.T) {
	t.Run("Re-anchors at the edge", func(t *testing.T) {
		// Given: the size-4 ship on the bottom row
		engine := newTestEngine()
		engine.SelectShip(5)
		engine.PlaceShip(9, 0)

		// When: it is toggled to vertical
		state := engine.ToggleOrientation(9, 2)

		// Then: it grows upwards so that it ends on the bottom row
		require.Len(t, state.PlayerShips, 1)
		assert.Equal(t, Vertical, state.PlayerShips[0].Orientation)
		assert.Equal(t, entity.Coord{Row: 6, Col: 0}, state.PlayerShips[0].Anchor)
	})

	t.Run("Toggles in place", func(t *testing.T) {
		engine := newTestEngine()
		engine.SelectShip(0)
		engine.PlaceShip(4, 4)

		state := engine.ToggleOrientation(4, 5)

		assert.Equal(t, Vertical, state.PlayerShips[0].Orientation)
		assert.Equal(t, entity.Coord{Row: 4, Col: 4}, state.PlayerShips[0].Anchor)
	})

	t.Run("Reverted when blocked", func(t *testing.T) {
		// Given: two stacked horizontal ships in the top-left corner
		engine := newTestEngine()
		engine.SelectShip(0)
		engine.PlaceShip(0, 0)
		engine.SelectShip(0)
		engine.PlaceShip(1, 0)

		// When: the upper one is toggled
		state := engine.ToggleOrientation(0, 0)

		// Then: vertical overlaps the lower ship and the mirror is off the board, so it stays horizontal
		assert.Equal(t, Horizontal, state.PlayerShips[0].Orientation)
		assert.Equal(t, entity.Coord{}, state.PlayerShips[0].Anchor)
	})
}

func TestEngine_RemoveShip(t *testing.T) {
	// Given: a vertical ship on the board
	engine := newTestEngine()
	engine.SelectShip(5)
	engine.RotateSelected()
	engine.PlaceShip(0, 0)

	// When: it is removed
	state := engine.RemoveShip(3, 0)

	// Then: it returns to the end of the inventory, horizontal again
	assert.Empty(t, state.PlayerShips)
	require.Len(t, state.Inventory, 6)
	assert.Equal(t, Ship{Size: 4, Orientation: Horizontal}, state.Inventory[5])
}

func TestEngine_StartBattle(t *testing.T) {
	t.Run("Incomplete placement", func(t *testing.T) {
		engine := newTestEngine()
		engine.SelectShip(0)
		engine.PlaceShip(0, 0)

		state, err := engine.StartBattle()

		require.NoError(t, err)
		assert.Equal(t, PhasePlacement, state.Phase)
		assert.Empty(t, state.EnemyShips)
	})

	t.Run("Start", func(t *testing.T) {
		// Given: the whole inventory is placed
		engine := newTestEngine()
		placeInventory(t, engine)

		// When: the battle starts
		state, err := engine.StartBattle()
		require.NoError(t, err)

		// Then: the enemy fleet is deployed and the player shoots first
		assert.Equal(t, PhaseBattle, state.Phase)
		assert.True(t, state.PlayerTurn)
		require.Len(t, state.EnemyShips, len(DefaultFleet))

		for i, ship := range state.EnemyShips {
			assert.Equal(t, DefaultFleet[i], ship.Size)
		}

		// And: placement actions are ignored from now on
		after := engine.RemoveShip(0, 0)
		assert.Len(t, after.PlayerShips, len(DefaultFleet))
	})

	t.Run("Enemy fleet does not fit", func(t *testing.T) {
		// Given: a tiny board whose fleet cannot be deployed
		engine := New(WithRandom(random.New(1)), WithBoardSize(2), WithFleet(2, 3))
		err := engine.Restore(State{
			Phase:       PhasePlacement,
			BoardSize:   2,
			Selected:    -1,
			PlayerTurn:  true,
			PlayerShips: []PlacedShip{{Size: 2, Orientation: Horizontal}},
		})
		require.NoError(t, err)

		// When: the battle starts
		state, err := engine.StartBattle()

		// Then: it fails loudly and the game stays in placement
		require.ErrorIs(t, err, ErrFleetPlacement)
		assert.Equal(t, PhasePlacement, state.Phase)
	})
}

// battleState is a game in progress: one player ship at (0,0)-(0,1), one enemy ship at (5,5)-(5,6).
func battleState() State {
	return State{
		Phase:       PhaseBattle,
		BoardSize:   DefaultBoardSize,
		Selected:    -1,
		PlayerTurn:  true,
		PlayerShips: []PlacedShip{{Size: 2, Orientation: Horizontal}},
		EnemyShips:  []PlacedShip{{Size: 2, Orientation: Horizontal, Anchor: entity.Coord{Row: 5, Col: 5}}},
	}
}

func TestEngine_Attack(t *testing.T) {
	t.Run("Miss and reply", func(t *testing.T) {
		// Given: a battle in progress
		engine := newTestEngine()
		require.NoError(t, engine.Restore(battleState()))

		// When: the player misses
		state := engine.Attack(9, 9)

		// Then: the AI replies at once and the turn is back to the player
		assert.Equal(t, []entity.Coord{{Row: 9, Col: 9}}, state.PlayerShots)
		assert.Len(t, state.EnemyShots, 1)
		assert.Equal(t, state.EnemyShots[0], *state.LastAIShot)
		assert.Equal(t, CellMiss, state.EnemyBoard[9][9])
		assert.True(t, state.PlayerTurn)
		assert.Equal(t, PhaseBattle, state.Phase)
	})

	t.Run("Same cell twice", func(t *testing.T) {
		engine := newTestEngine()
		require.NoError(t, engine.Restore(battleState()))
		engine.Attack(5, 5)

		// When: the player fires at a cell already attacked
		state := engine.Attack(5, 5)

		// Then: nothing happens
		assert.Len(t, state.PlayerShots, 1)
		assert.Len(t, state.EnemyShots, 1)
		assert.Equal(t, CellHit, state.EnemyBoard[5][5])
	})

	t.Run("During placement", func(t *testing.T) {
		engine := newTestEngine()

		state := engine.Attack(0, 0)

		assert.Empty(t, state.PlayerShots)
		assert.Equal(t, PhasePlacement, state.Phase)
	})

	t.Run("Player wins", func(t *testing.T) {
		// Given: the enemy ship is hit once
		given := battleState()
		given.PlayerShots = []entity.Coord{{Row: 5, Col: 5}}

		engine := newTestEngine()
		require.NoError(t, engine.Restore(given))

		// When: the player hits its last cell
		state := engine.Attack(5, 6)

		// Then: the game is over and the AI did not fire
		assert.Equal(t, PhaseGameOver, state.Phase)
		assert.Equal(t, SidePlayer, state.Winner)
		assert.Empty(t, state.EnemyShots)
		assert.Equal(t, CellSunk, state.EnemyBoard[5][6])
	})

	t.Run("AI wins", func(t *testing.T) {
		// Given: the AI hit (0,0) and queued (0,1)
		given := battleState()
		given.EnemyShots = []entity.Coord{{Row: 0, Col: 0}}
		given.AIQueue = []entity.Coord{{Row: 0, Col: 1}}
		given.AILastHit = &entity.Coord{}

		engine := newTestEngine()
		require.NoError(t, engine.Restore(given))

		// When: the player misses
		state := engine.Attack(9, 9)

		// Then: the AI sinks the last ship
		assert.Equal(t, PhaseGameOver, state.Phase)
		assert.Equal(t, SideAI, state.Winner)
		assert.Equal(t, entity.Coord{Row: 0, Col: 1}, *state.LastAIShot)
		assert.Equal(t, CellSunk, state.PlayerBoard[0][0])
		assert.Empty(t, state.AIQueue)

		// And: further attacks are ignored
		assert.Equal(t, state, engine.Attack(0, 0))
	})
}

func TestEngine_FireAndEnemyTurn(t *testing.T) {
	// Given: a battle in progress
	engine := newTestEngine()
	require.NoError(t, engine.Restore(battleState()))

	// When: the player fires without an immediate reply
	state := engine.Fire(9, 9)

	// Then: the AI owes a turn and the player cannot fire again
	assert.False(t, state.PlayerTurn)
	assert.True(t, engine.IsAITurn())
	assert.Len(t, engine.Fire(8, 8).PlayerShots, 1)

	// When: the AI plays
	state = engine.EnemyTurn()

	// Then: the turn is back to the player
	assert.True(t, state.PlayerTurn)
	assert.False(t, engine.IsAITurn())
	assert.Len(t, state.EnemyShots, 1)

	// And: a stray enemy turn does nothing
	assert.Equal(t, state, engine.EnemyTurn())
}

func TestEngine_Reset(t *testing.T) {
	engine := newTestEngine()
	require.NoError(t, engine.Restore(battleState()))
	engine.Attack(9, 9)

	state := engine.Reset()

	assert.Equal(t, uint64(1), state.Round)
	assert.Equal(t, PhasePlacement, state.Phase)
	assert.Len(t, state.Inventory, len(DefaultFleet))
	assert.Empty(t, state.PlayerShips)
	assert.Empty(t, state.EnemyShips)
	assert.Empty(t, state.EnemyShots)
	assert.Nil(t, state.LastAIShot)
}

func TestEngine_Restore(t *testing.T) {
	t.Run("Round trip", func(t *testing.T) {
		// Given: a game with some shots
		engine := newTestEngine()
		require.NoError(t, engine.Restore(battleState()))
		engine.Attack(5, 5)
		engine.Attack(2, 2)

		// When: its state is restored into another engine
		restored := New(WithRandom(random.New(9)))
		require.NoError(t, restored.Restore(engine.State()))

		// Then: both report the same game
		assert.Equal(t, engine.State(), restored.State())
	})

	t.Run("Overlapping ships", func(t *testing.T) {
		given := battleState()
		given.PlayerShips = append(given.PlayerShips, PlacedShip{Size: 2, Orientation: Vertical})

		err := newTestEngine().Restore(given)

		require.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("Unknown phase", func(t *testing.T) {
		given := battleState()
		given.Phase = "sailing"

		err := newTestEngine().Restore(given)

		require.ErrorIs(t, err, ErrInvalidState)
	})
}

func TestState_View(t *testing.T) {
	// Given: a battle where one enemy ship is sunk and the other intact
	given := battleState()
	given.EnemyShips = append(given.EnemyShips, PlacedShip{Size: 2, Orientation: Vertical, Anchor: entity.Coord{Row: 0, Col: 9}})
	given.PlayerShots = []entity.Coord{{Row: 0, Col: 9}, {Row: 1, Col: 9}}
	given.AIQueue = []entity.Coord{{Row: 1, Col: 1}}

	engine := newTestEngine()
	require.NoError(t, engine.Restore(given))

	// When: the player's view is taken
	view := engine.State().View()

	// Then: only the sunk enemy ship and no AI memory is visible
	require.Len(t, view.EnemyShips, 1)
	assert.Equal(t, entity.Coord{Row: 0, Col: 9}, view.EnemyShips[0].Anchor)
	assert.Empty(t, view.AIQueue)
	assert.Equal(t, CellEmpty, view.EnemyBoard[5][5])
	assert.Equal(t, CellSunk, view.EnemyBoard[1][9])
}
