package tictactoe

import "github.com/rocketscienceinc/pencilgames-backend/internal/entity"

type Mark string

const (
	Empty Mark = ""
	X     Mark = "X"
	O     Mark = "O"
)

const Size = 3

// WinCombos lists the 8 lines in evaluation order: rows, columns, diagonals.
var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is the 3x3 grid stored row-major.
type Board [Size * Size]Mark

// Cell is a board square as seen by a client.
type Cell struct {
	Row  int  `json:"row"`
	Col  int  `json:"col"`
	Mark Mark `json:"mark"`
}

func (that Board) At(row, col int) Mark {
	return that[index(row, col)]
}

// Winner returns the mark and the line of the first completed combo.
func (that Board) Winner() (Mark, [3]int, bool) {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != Empty && a == b && b == c {
			return a, combo, true
		}
	}

	return Empty, [3]int{}, false
}

func (that Board) Full() bool {
	for _, cell := range that {
		if cell == Empty {
			return false
		}
	}

	return true
}

func (that Board) EmptyCells() []entity.Coord {
	cells := make([]entity.Coord, 0, len(that))
	for i, cell := range that {
		if cell == Empty {
			cells = append(cells, coord(i))
		}
	}

	return cells
}

func (that Board) Cells() [Size][Size]Cell {
	var cells [Size][Size]Cell
	for i, mark := range that {
		c := coord(i)
		cells[c.Row][c.Col] = Cell{Row: c.Row, Col: c.Col, Mark: mark}
	}

	return cells
}

func index(row, col int) int {
	return row*Size + col
}

func coord(i int) entity.Coord {
	return entity.Coord{Row: i / Size, Col: i % Size}
}

func inBounds(row, col int) bool {
	return entity.Coord{Row: row, Col: col}.In(Size)
}

func toggleMark(current Mark) Mark {
	if current == X {
		return O
	}
	return X
}
