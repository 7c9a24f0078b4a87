package seating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGrid(t *testing.T, rows, cols int) *Grid {
	t.Helper()
	g, err := New(rows, cols)
	require.NoError(t, err)
	return g
}

func occupiedCount(g *Grid) int {
	return g.Rows()*g.Columns() - g.FreeCount()
}

func TestNew_AllFree(t *testing.T) {
	for _, dims := range [][2]int{{1, 1}, {3, 11}, {7, 2}, {20, 40}} {
		g := newGrid(t, dims[0], dims[1])
		assert.Equal(t, dims[0], g.Rows())
		assert.Equal(t, dims[1], g.Columns())
		assert.Equal(t, dims[0]*dims[1], g.FreeCount())
		for _, row := range g.Snapshot() {
			assert.Len(t, row, dims[1])
			for _, c := range row {
				assert.Equal(t, Free, c)
			}
		}
	}
}

func TestNew_InvalidDimension(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
	}{
		{"both zero", 0, 0},
		{"zero columns", 3, 0},
		{"zero rows", 0, 3},
		{"negative rows", -1, 3},
		{"negative columns", 3, -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.rows, tt.cols)
			assert.Nil(t, g)
			assert.ErrorIs(t, err, ErrInvalidDimension)
		})
	}
}

func TestReserve_TakesNamedSeats(t *testing.T) {
	g := newGrid(t, 3, 11)
	require.NoError(t, g.Reserve("R1C4 R1C6 R2C3 R2C7 R3C9 R3C10"))
	assert.Equal(t, 6, occupiedCount(g))

	want := []Seat{{0, 3}, {0, 5}, {1, 2}, {1, 6}, {2, 8}, {2, 9}}
	for _, s := range want {
		c, err := g.At(s)
		require.NoError(t, err)
		assert.Equal(t, Occupied, c, s.Label())
	}
}

func TestReserve_EmptyIsNoop(t *testing.T) {
	g := newGrid(t, 3, 11)
	require.NoError(t, g.Reserve(""))
	assert.Equal(t, 0, occupiedCount(g))
}

func TestReserve_Idempotent(t *testing.T) {
	g := newGrid(t, 3, 11)
	require.NoError(t, g.Reserve("R2C5"))
	before := g.Snapshot()
	require.NoError(t, g.Reserve("R2C5"))
	assert.Equal(t, before, g.Snapshot())
	assert.Equal(t, 1, occupiedCount(g))
}

func TestReserve_Errors(t *testing.T) {
	tests := []struct {
		name   string
		tokens string
		want   error
	}{
		{"one number", "R1", ErrMalformedToken},
		{"three numbers", "R1C2C3", ErrMalformedToken},
		{"no numbers", "RC", ErrMalformedToken},
		{"double space", "R1C4  R1C6", ErrMalformedToken},
		{"row past end", "R4C1", ErrOutOfRange},
		{"column past end", "R1C12", ErrOutOfRange},
		{"row zero", "R0C1", ErrOutOfRange},
		{"overflow", "R99999999999999999999999C1", ErrOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGrid(t, 3, 11)
			assert.ErrorIs(t, g.Reserve(tt.tokens), tt.want)
		})
	}
}

func TestReserve_StopsAtFirstBadTokenWithoutRollback(t *testing.T) {
	g := newGrid(t, 3, 11)
	err := g.Reserve("R1C1 R9C9 R1C2")
	require.ErrorIs(t, err, ErrOutOfRange)

	first, _ := g.At(Seat{0, 0})
	third, _ := g.At(Seat{0, 1})
	assert.Equal(t, Occupied, first)
	assert.Equal(t, Free, third)
	assert.Equal(t, 1, occupiedCount(g))
}

func TestAt_OutOfRange(t *testing.T) {
	g := newGrid(t, 2, 2)
	_, err := g.At(Seat{Row: 2, Column: 0})
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestString(t *testing.T) {
	g := newGrid(t, 2, 3)
	require.NoError(t, g.Reserve("R2C2"))
	assert.Equal(t, "[0, 0, 0]\n[0, 1, 0]\n", g.String())
}

func TestSnapshot_IsACopy(t *testing.T) {
	g := newGrid(t, 2, 2)
	snap := g.Snapshot()
	snap[0][0] = Occupied
	assert.Equal(t, 4, g.FreeCount())
}

func TestReserveSeats_ReturnsAppliedPrefix(t *testing.T) {
	g := newGrid(t, 3, 11)
	applied, err := g.ReserveSeats("R1C1 R1C1 R2C3 X R3C3")
	require.ErrorIs(t, err, ErrMalformedToken)
	assert.Equal(t, []Seat{{0, 0}, {0, 0}, {1, 2}}, applied)
	assert.Equal(t, 2, occupiedCount(g))
}
