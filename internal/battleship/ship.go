package battleship

import "github.com/rocketscienceinc/pencilgames-backend/internal/entity"

type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

func (that Orientation) Flip() Orientation {
	if that == Horizontal {
		return Vertical
	}
	return Horizontal
}

func (that Orientation) step() (int, int) {
	if that == Horizontal {
		return 0, 1
	}
	return 1, 0
}

// Ship is an inventory ship waiting to be placed.
type Ship struct {
	Size        int         `json:"size"`
	Orientation Orientation `json:"orientation"`
}

// PlacedShip occupies Size contiguous cells from Anchor along Orientation.
// Hits records the damage of each of those cells, in position order.
type PlacedShip struct {
	Size        int          `json:"size"`
	Orientation Orientation  `json:"orientation"`
	Anchor      entity.Coord `json:"anchor"`
	Hits        []bool       `json:"hits,omitempty"`
}

func (that PlacedShip) Positions() []entity.Coord {
	dRow, dCol := that.Orientation.step()

	positions := make([]entity.Coord, 0, that.Size)
	for i := range that.Size {
		positions = append(positions, that.Anchor.Add(i*dRow, i*dCol))
	}

	return positions
}

// Covers returns the offset of c along the ship.
func (that PlacedShip) Covers(c entity.Coord) (int, bool) {
	for i, position := range that.Positions() {
		if position == c {
			return i, true
		}
	}

	return 0, false
}

func (that PlacedShip) Sunk() bool {
	if len(that.Hits) != that.Size {
		return false
	}

	for _, hit := range that.Hits {
		if !hit {
			return false
		}
	}

	return true
}

func (that *PlacedShip) hit(offset int) {
	if len(that.Hits) != that.Size {
		that.Hits = make([]bool, that.Size)
	}

	that.Hits[offset] = true
}

// mirroredAnchor is the anchor that puts the far end of the ship on at instead of its head.
func mirroredAnchor(at entity.Coord, size int, orientation Orientation) entity.Coord {
	if orientation == Horizontal {
		return entity.Coord{Row: at.Row, Col: at.Col - (size - 1)}
	}
	return entity.Coord{Row: at.Row - (size - 1), Col: at.Col}
}
