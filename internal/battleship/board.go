package battleship

import (
	"fmt"

	"github.com/rocketscienceinc/pencilgames-backend/internal/entity"
)

type CellState string

const (
	CellEmpty CellState = "empty"
	CellShip  CellState = "ship"
	CellHit   CellState = "hit"
	CellMiss  CellState = "miss"
	CellSunk  CellState = "sunk"
)

type shotResult int

const (
	shotMiss shotResult = iota
	shotHit
	shotSunk
)

// Board is one side's waters: its ships and the shots it received.
type Board struct {
	size  int
	ships []*PlacedShip
	shots map[entity.Coord]bool
}

func newBoard(size int) *Board {
	return &Board{
		size:  size,
		shots: make(map[entity.Coord]bool),
	}
}

func (that *Board) shipAt(c entity.Coord) *PlacedShip {
	for _, ship := range that.ships {
		if _, ok := ship.Covers(c); ok {
			return ship
		}
	}

	return nil
}

// fits reports whether ship lies inside the board without touching any ship except ignore.
func (that *Board) fits(ship PlacedShip, ignore *PlacedShip) bool {
	for _, position := range ship.Positions() {
		if !position.In(that.size) {
			return false
		}

		if other := that.shipAt(position); other != nil && other != ignore {
			return false
		}
	}

	return true
}

func (that *Board) add(ship PlacedShip) *PlacedShip {
	placed := ship
	that.ships = append(that.ships, &placed)

	return &placed
}

func (that *Board) remove(ship *PlacedShip) {
	for i, other := range that.ships {
		if other == ship {
			that.ships = append(that.ships[:i], that.ships[i+1:]...)
			return
		}
	}
}

func (that *Board) fired(c entity.Coord) bool {
	return that.shots[c]
}

func (that *Board) untried() []entity.Coord {
	cells := make([]entity.Coord, 0, that.size*that.size-len(that.shots))
	for row := range that.size {
		for col := range that.size {
			c := entity.Coord{Row: row, Col: col}
			if !that.shots[c] {
				cells = append(cells, c)
			}
		}
	}

	return cells
}

// receive resolves a shot at c.
func (that *Board) receive(c entity.Coord) (shotResult, *PlacedShip) {
	that.shots[c] = true

	ship := that.shipAt(c)
	if ship == nil {
		return shotMiss, nil
	}

	offset, _ := ship.Covers(c)
	ship.hit(offset)

	if ship.Sunk() {
		return shotSunk, ship
	}

	return shotHit, ship
}

func (that *Board) allSunk() bool {
	if len(that.ships) == 0 {
		return false
	}

	for _, ship := range that.ships {
		if !ship.Sunk() {
			return false
		}
	}

	return true
}

// cells renders the board; unhit ships are only shown when reveal is set.
func (that *Board) cells(reveal bool) [][]CellState {
	grid := make([][]CellState, that.size)
	for row := range that.size {
		grid[row] = make([]CellState, that.size)
		for col := range that.size {
			c := entity.Coord{Row: row, Col: col}
			ship := that.shipAt(c)

			switch {
			case that.shots[c] && ship == nil:
				grid[row][col] = CellMiss
			case that.shots[c] && ship.Sunk():
				grid[row][col] = CellSunk
			case that.shots[c]:
				grid[row][col] = CellHit
			case ship != nil && reveal:
				grid[row][col] = CellShip
			default:
				grid[row][col] = CellEmpty
			}
		}
	}

	return grid
}

func (that *Board) shipList() []PlacedShip {
	ships := make([]PlacedShip, 0, len(that.ships))
	for _, ship := range that.ships {
		copied := *ship
		copied.Hits = append([]bool(nil), ship.Hits...)
		ships = append(ships, copied)
	}

	return ships
}

// shotList returns the received shots in row-major order.
func (that *Board) shotList() []entity.Coord {
	shots := make([]entity.Coord, 0, len(that.shots))
	for row := range that.size {
		for col := range that.size {
			c := entity.Coord{Row: row, Col: col}
			if that.shots[c] {
				shots = append(shots, c)
			}
		}
	}

	return shots
}

// restoreBoard rebuilds a board from ships and shots, recomputing damage from the shots.
func restoreBoard(size int, ships []PlacedShip, shots []entity.Coord) (*Board, error) {
	board := newBoard(size)

	for _, ship := range ships {
		ship.Hits = nil
		if ship.Size <= 0 || (ship.Orientation != Horizontal && ship.Orientation != Vertical) {
			return nil, fmt.Errorf("%w: malformed ship %+v", ErrInvalidState, ship)
		}

		if !board.fits(ship, nil) {
			return nil, fmt.Errorf("%w: ship at %+v does not fit", ErrInvalidState, ship.Anchor)
		}

		board.add(ship)
	}

	for _, shot := range shots {
		if !shot.In(size) {
			return nil, fmt.Errorf("%w: shot %+v out of bounds", ErrInvalidState, shot)
		}

		board.receive(shot)
	}

	return board, nil
}
