package seating

import (
	"fmt"
	"strings"
)

// Cell is the occupancy state of a single seat.
type Cell int

const (
	Free     Cell = 0
	Occupied Cell = 1
)

// Grid is a rows×columns seating layout. Its dimensions never change after
// New. A Grid is not safe for concurrent use; hosts that share one must
// serialize Reserve and ReserveBestAvailable behind a single lock.
type Grid struct {
	rows    int
	columns int
	cells   [][]Cell
}

// New allocates a grid with every seat free.
func New(rows, columns int) (*Grid, error) {
	if rows <= 0 || columns <= 0 {
		return nil, fmt.Errorf("%w: rows=%d columns=%d, both must be positive", ErrInvalidDimension, rows, columns)
	}
	cells := make([][]Cell, rows)
	for r := range cells {
		cells[r] = make([]Cell, columns)
	}
	return &Grid{rows: rows, columns: columns, cells: cells}, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Columns returns the number of seats per row.
func (g *Grid) Columns() int { return g.columns }

// At reports the state of a seat, or ErrOutOfRange.
func (g *Grid) At(s Seat) (Cell, error) {
	if !g.contains(s) {
		return Free, fmt.Errorf("%w: %s", ErrOutOfRange, s.Label())
	}
	return g.cells[s.Row][s.Column], nil
}

// Reserve takes the seats named by a space separated list of tokens such
// as "R1C4 R1C6 R2C3". An empty string is a no-op and taking an already
// occupied seat is not an error.
//
// Tokens are applied left to right. The first malformed or out of range
// token stops the call; seats taken by earlier tokens stay taken.
func (g *Grid) Reserve(tokens string) error {
	_, err := g.ReserveSeats(tokens)
	return err
}

// ReserveSeats is Reserve that also returns the seats it applied, in token
// order, including seats that were already occupied.
func (g *Grid) ReserveSeats(tokens string) ([]Seat, error) {
	var applied []Seat
	for _, tok := range splitTokens(tokens) {
		s, err := ParseToken(tok)
		if err != nil {
			return applied, err
		}
		if !g.contains(s) {
			return applied, fmt.Errorf("%w: %q on a %dx%d grid", ErrOutOfRange, tok, g.rows, g.columns)
		}
		g.cells[s.Row][s.Column] = Occupied
		applied = append(applied, s)
	}
	return applied, nil
}

// BestAvailable finds the block of n free consecutive seats in one row with
// the lowest total distance from the reference point, without taking it.
// A block may never span a whole row, so n >= Columns() never succeeds.
func (g *Grid) BestAvailable(n int) (Block, bool) {
	if n <= 0 || n >= g.columns {
		return Block{}, false
	}
	blocks := g.candidates(n)
	if len(blocks) == 0 {
		return Block{}, false
	}
	g.rank(blocks)
	return blocks[0], true
}

// ReserveBestAvailable takes the block chosen by BestAvailable and reports
// whether one was found. Either every seat of the block is taken or none.
func (g *Grid) ReserveBestAvailable(n int) bool {
	_, ok := g.ReserveBestBlock(n)
	return ok
}

// ReserveBestBlock is ReserveBestAvailable that also returns the block it
// took.
func (g *Grid) ReserveBestBlock(n int) (Block, bool) {
	b, ok := g.BestAvailable(n)
	if !ok {
		return Block{}, false
	}
	for c := b.Start; c < b.End; c++ {
		g.cells[b.Row][c] = Occupied
	}
	return b, true
}

// Snapshot returns a copy of the grid, row-major.
func (g *Grid) Snapshot() [][]Cell {
	out := make([][]Cell, g.rows)
	for r, row := range g.cells {
		out[r] = append([]Cell(nil), row...)
	}
	return out
}

// FreeCount returns the number of free seats.
func (g *Grid) FreeCount() int {
	n := 0
	for _, row := range g.cells {
		for _, c := range row {
			if c == Free {
				n++
			}
		}
	}
	return n
}

// String dumps the grid one row per line, e.g. "[0, 0, 1, 0]".
func (g *Grid) String() string {
	var b strings.Builder
	for _, row := range g.cells {
		b.WriteByte('[')
		for c, cell := range row {
			if c > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%d", cell)
		}
		b.WriteString("]\n")
	}
	return b.String()
}

func (g *Grid) contains(s Seat) bool {
	return s.Row >= 0 && s.Row < g.rows && s.Column >= 0 && s.Column < g.columns
}
