package entity

// Coord is a zero-based grid position.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Coord) Add(dRow, dCol int) Coord {
	return Coord{Row: that.Row + dRow, Col: that.Col + dCol}
}

// In reports whether the coordinate lies inside a size x size grid.
func (that Coord) In(size int) bool {
	return that.Row >= 0 && that.Row < size && that.Col >= 0 && that.Col < size
}
