// internal/game/generator.go
//
// Procedural word-search grid generator.
// Responsibilities:
//   - Normalize the requested words (uppercase, whitespace stripped).
//   - Place words longest-first under a bounded retry budget.
//   - Fill every remaining cell with a random A–Z letter.
//
// Placement is best effort: a word that exhausts its attempts is logged and
// left out of the returned placements. There is no error path.

package game

import (
	"sort"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"
)

const (
	// MaxAttempts is the retry budget per word.
	MaxAttempts = 100

	// DefaultSize is the grid dimension used when none is configured.
	DefaultSize = 10

	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Normalize upper-cases w and strips all whitespace.
func Normalize(w string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, w)
}

// Generate lays words into a size×size grid and returns the filled grid
// together with the committed placements, in commit order.
//
// Words are attempted longest-first (stable for equal lengths). Words that
// normalize to the empty string are ignored. The result is a pure function
// of the inputs and the sequence drawn from rng.
func Generate(rng Rand, words []string, size int, allowDiagonal bool) (Grid, []Placement) {
	queue := make([][]rune, 0, len(words))
	for _, w := range words {
		if n := Normalize(w); n != "" {
			queue = append(queue, []rune(n))
		}
	}
	sort.SliceStable(queue, func(i, j int) bool { return len(queue[i]) > len(queue[j]) })

	grid := NewGrid(size)
	dirs := Directions(allowDiagonal)
	placed := make([]Placement, 0, len(queue))

	for _, w := range queue {
		p, ok := grid.place(rng, w, dirs)
		if !ok {
			log.Warn().Str("word", string(w)).Int("size", size).Msg("could not place word")
			continue
		}
		placed = append(placed, p)
	}

	grid.fill(rng)
	return grid, placed
}

// place tries up to MaxAttempts random positions for word and commits the
// first one that fits.
func (g *Grid) place(rng Rand, word []rune, dirs []Direction) (Placement, bool) {
	n := len(word)
	for attempt := 0; attempt < MaxAttempts; attempt++ {
		d := dirs[rng.Intn(len(dirs))]

		rowLo, rowHi := startRange(g.size, n, d.DRow)
		colLo, colHi := startRange(g.size, n, d.DCol)
		if rowHi < rowLo || colHi < colLo {
			continue
		}

		start := Cell{
			Row: rowLo + rng.Intn(rowHi-rowLo+1),
			Col: colLo + rng.Intn(colHi-colLo+1),
		}
		if !g.fits(word, start, d) {
			continue
		}

		for i, r := range word {
			g.set(start.Step(d, i), r)
		}
		return Placement{
			Word:      string(word),
			Start:     start,
			End:       start.Step(d, n-1),
			Direction: d,
		}, true
	}
	return Placement{}, false
}

// startRange returns the inclusive range of start indices on one axis such
// that n letters stepped by step stay in [0, size). An empty range has hi < lo.
func startRange(size, n, step int) (lo, hi int) {
	switch {
	case step > 0:
		return 0, size - n
	case step < 0:
		return n - 1, size - 1
	default:
		return 0, size - 1
	}
}

// fits reports whether word can be written from start along d without
// leaving the grid or overwriting a different letter.
func (g *Grid) fits(word []rune, start Cell, d Direction) bool {
	for i, r := range word {
		c := start.Step(d, i)
		if !g.In(c) {
			return false
		}
		if cur := g.At(c); cur != 0 && cur != r {
			return false
		}
	}
	return true
}

// fill writes a random letter into every unset cell, row-major.
func (g *Grid) fill(rng Rand) {
	for i, r := range g.cells {
		if r == 0 {
			g.cells[i] = rune(alphabet[rng.Intn(len(alphabet))])
		}
	}
}

// Unplaced returns the normalized words that have no placement, in input order.
func Unplaced(words []string, placements []Placement) []string {
	have := make(map[string]int, len(placements))
	for _, p := range placements {
		have[p.Word]++
	}
	var out []string
	for _, w := range words {
		n := Normalize(w)
		if n == "" {
			continue
		}
		if have[n] > 0 {
			have[n]--
			continue
		}
		out = append(out, n)
	}
	return out
}
