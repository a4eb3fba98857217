package battleship

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/pencilgames-backend/internal/entity"
	"github.com/rocketscienceinc/pencilgames-backend/internal/pkg/random"
)

var ErrFleetPlacement = errors.New("no legal placement for ship")

// placeFleet lays out sizes in order, each ship chosen uniformly among every legal
// horizontal and vertical placement left by the ships before it.
func placeFleet(rnd random.Source, size int, sizes []int) (*Board, error) {
	board := newBoard(size)

	for _, shipSize := range sizes {
		candidates := legalPlacements(board, shipSize)
		if len(candidates) == 0 {
			return nil, fmt.Errorf("%w: size %d on a %dx%d board", ErrFleetPlacement, shipSize, size, size)
		}

		board.add(random.Pick(rnd, candidates))
	}

	return board, nil
}

func legalPlacements(board *Board, shipSize int) []PlacedShip {
	var candidates []PlacedShip

	for row := range board.size {
		for col := range board.size {
			for _, orientation := range []Orientation{Horizontal, Vertical} {
				ship := PlacedShip{
					Size:        shipSize,
					Orientation: orientation,
					Anchor:      entity.Coord{Row: row, Col: col},
				}

				if board.fits(ship, nil) {
					candidates = append(candidates, ship)
				}
			}
		}
	}

	return candidates
}
