package seating

import "sort"

// Block is a run of consecutive seats in one row. Start is inclusive and
// End is exclusive.
type Block struct {
	Row   int
	Start int
	End   int
}

// Len returns the number of seats in the block.
func (b Block) Len() int { return b.End - b.Start }

// Seats lists every seat covered by the block, left to right.
func (b Block) Seats() []Seat {
	out := make([]Seat, 0, b.Len())
	for c := b.Start; c < b.End; c++ {
		out = append(out, Seat{Row: b.Row, Column: c})
	}
	return out
}

// distance measures a seat against the reference point, which is always
// row 0 at the middle column, regardless of how many rows the grid has.
func (g *Grid) distance(row, col int) int {
	center := g.columns / 2
	d := center - col
	if d < 0 {
		d = -d
	}
	return row + d
}

// blockCost sums the distance of every seat in the block.
func (g *Grid) blockCost(b Block) int {
	total := 0
	for c := b.Start; c < b.End; c++ {
		total += g.distance(b.Row, c)
	}
	return total
}

// candidates enumerates every free block of n seats in row-major order,
// ascending start column within a row.
func (g *Grid) candidates(n int) []Block {
	var out []Block
	for r := 0; r < g.rows; r++ {
		for c := 0; c+n <= g.columns; c++ {
			if g.runFree(r, c, c+n) {
				out = append(out, Block{Row: r, Start: c, End: c + n})
			}
		}
	}
	return out
}

func (g *Grid) runFree(row, start, end int) bool {
	for c := start; c < end; c++ {
		if g.cells[row][c] == Occupied {
			return false
		}
	}
	return true
}

// rank orders candidates by cost. The sort is stable so equal costs keep
// scan order and the earliest (row, start) wins.
func (g *Grid) rank(blocks []Block) {
	sort.SliceStable(blocks, func(i, j int) bool {
		return g.blockCost(blocks[i]) < g.blockCost(blocks[j])
	})
}
