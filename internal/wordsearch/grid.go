package wordsearch

import (
	"strings"

	"github.com/rocketscienceinc/pencilgames-backend/internal/entity"
	"github.com/rocketscienceinc/pencilgames-backend/internal/pkg/random"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Grid is a square of letters; an unfilled cell holds 0.
type Grid [][]byte

func newGrid(size int) Grid {
	grid := make(Grid, size)
	for row := range grid {
		grid[row] = make([]byte, size)
	}

	return grid
}

func (that Grid) size() int {
	return len(that)
}

func (that Grid) at(c entity.Coord) byte {
	return that[c.Row][c.Col]
}

// place tries to put word at random anchors along a random axis.
// A cell accepts a letter when it is empty or already holds the same letter.
func (that Grid) place(rnd random.Source, word string, attempts int) ([]entity.Coord, bool) {
	size := that.size()
	if len(word) == 0 || len(word) > size {
		return nil, false
	}

	dRow, dCol := 0, 1
	if rnd.Intn(2) == 1 {
		dRow, dCol = 1, 0
	}

	for range attempts {
		anchor := entity.Coord{
			Row: rnd.Intn(size - dRow*(len(word)-1)),
			Col: rnd.Intn(size - dCol*(len(word)-1)),
		}

		path := make([]entity.Coord, 0, len(word))
		fits := true

		for i := range len(word) {
			c := anchor.Add(i*dRow, i*dCol)
			if letter := that.at(c); letter != 0 && letter != word[i] {
				fits = false
				break
			}

			path = append(path, c)
		}

		if !fits {
			continue
		}

		for i, c := range path {
			that[c.Row][c.Col] = word[i]
		}

		return path, true
	}

	return nil, false
}

// fill puts a random letter in every empty cell.
func (that Grid) fill(rnd random.Source) {
	for row := range that {
		for col := range that[row] {
			if that[row][col] == 0 {
				that[row][col] = alphabet[rnd.Intn(len(alphabet))]
			}
		}
	}
}

// word spells path, or reports false when it leaves the grid.
func (that Grid) word(path []entity.Coord) (string, bool) {
	var b strings.Builder
	for _, c := range path {
		if !c.In(that.size()) {
			return "", false
		}

		b.WriteByte(that.at(c))
	}

	return b.String(), true
}

// Rows renders the grid as one string per row.
func (that Grid) Rows() []string {
	rows := make([]string, 0, len(that))
	for _, row := range that {
		rows = append(rows, string(row))
	}

	return rows
}

func gridFromRows(rows []string) (Grid, bool) {
	grid := newGrid(len(rows))
	for i, row := range rows {
		if len(row) != len(rows) {
			return nil, false
		}

		for j := range len(row) {
			if !isUpperLetter(row[j]) {
				return nil, false
			}

			grid[i][j] = row[j]
		}
	}

	return grid, true
}

func isUpperLetter(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

// IsLinearPath reports whether path has at least two cells and a constant step between them.
func IsLinearPath(path []entity.Coord) bool {
	if len(path) < 2 {
		return false
	}

	dRow := path[1].Row - path[0].Row
	dCol := path[1].Col - path[0].Col

	for i := 2; i < len(path); i++ {
		if path[i].Row-path[i-1].Row != dRow || path[i].Col-path[i-1].Col != dCol {
			return false
		}
	}

	return true
}
