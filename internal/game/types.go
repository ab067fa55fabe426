// internal/game/types.go
//
// Core type definitions for the word-search engine.
// Defines:
//   - Cell: a (row, col) coordinate inside the grid.
//   - Direction: one of the 8 unit steps a word can be laid along.
//   - Placement: a word committed to the grid with its geometry.
//   - Grid: the square letter matrix produced by the generator.

package game

import (
	"encoding/json"
	"math/rand"
)

// Cell is a 0-indexed grid coordinate.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Step returns the cell reached after n steps along d.
func (c Cell) Step(d Direction, n int) Cell {
	return Cell{Row: c.Row + n*d.DRow, Col: c.Col + n*d.DCol}
}

// Direction is a unit step vector. Name is only used for diagnostics.
type Direction struct {
	DRow int    `json:"dr"`
	DCol int    `json:"dc"`
	Name string `json:"name"`
}

var (
	orthogonal = []Direction{
		{DRow: 0, DCol: 1, Name: "right"},
		{DRow: 1, DCol: 0, Name: "down"},
		{DRow: 0, DCol: -1, Name: "left"},
		{DRow: -1, DCol: 0, Name: "up"},
	}
	diagonal = []Direction{
		{DRow: 1, DCol: 1, Name: "diag-down-right"},
		{DRow: 1, DCol: -1, Name: "diag-down-left"},
		{DRow: -1, DCol: 1, Name: "diag-up-right"},
		{DRow: -1, DCol: -1, Name: "diag-up-left"},
	}
)

// Directions returns the active direction set: the 4 orthogonal steps,
// plus the 4 diagonal ones when allowDiagonal is set.
func Directions(allowDiagonal bool) []Direction {
	out := make([]Direction, 0, len(orthogonal)+len(diagonal))
	out = append(out, orthogonal...)
	if allowDiagonal {
		out = append(out, diagonal...)
	}
	return out
}

// Placement records one word embedded in the grid.
// End == Start.Step(Direction, len(Word)-1).
type Placement struct {
	Word      string    `json:"word"`
	Start     Cell      `json:"start"`
	End       Cell      `json:"end"`
	Direction Direction `json:"direction"`
}

// Len is the word length in letters.
func (p Placement) Len() int { return len([]rune(p.Word)) }

// Grid is a square letter matrix. A zero rune marks an unset cell, which
// only exists while the generator is running.
type Grid struct {
	size  int
	cells []rune
}

// NewGrid returns an empty size×size grid. Non-positive sizes yield an empty grid.
func NewGrid(size int) Grid {
	if size < 0 {
		size = 0
	}
	return Grid{size: size, cells: make([]rune, size*size)}
}

// Size is the grid dimension N.
func (g Grid) Size() int { return g.size }

// In reports whether c lies inside the grid.
func (g Grid) In(c Cell) bool {
	return c.Row >= 0 && c.Row < g.size && c.Col >= 0 && c.Col < g.size
}

// At returns the letter at c, or 0 when c is unset or out of bounds.
func (g Grid) At(c Cell) rune {
	if !g.In(c) {
		return 0
	}
	return g.cells[c.Row*g.size+c.Col]
}

func (g *Grid) set(c Cell, r rune) { g.cells[c.Row*g.size+c.Col] = r }

// Rows renders the grid as one string per row.
func (g Grid) Rows() []string {
	out := make([]string, g.size)
	for r := 0; r < g.size; r++ {
		out[r] = string(g.cells[r*g.size : (r+1)*g.size])
	}
	return out
}

// String renders the grid one row per line.
func (g Grid) String() string {
	var b []rune
	for r := 0; r < g.size; r++ {
		b = append(b, g.cells[r*g.size:(r+1)*g.size]...)
		b = append(b, '\n')
	}
	return string(b)
}

// MarshalJSON encodes the grid as a list of row strings.
func (g Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Rows())
}

// Rand is the random source consumed by the generator.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a deterministic random source for seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
