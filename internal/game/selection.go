// internal/game/selection.go
//
// Selection validation and cell enumeration.

package game

// Found is the set of words already discovered. The validator only reads it.
type Found map[string]struct{}

// Has reports whether w has been found. Safe on a nil set.
func (f Found) Has(w string) bool {
	_, ok := f[w]
	return ok
}

// Add marks w as found.
func (f Found) Add(w string) { f[w] = struct{}{} }

// Validate interprets a two-cell selection as a word discovery.
//
// It returns false when either cell is missing, when both cells are the same,
// or when no unfound placement has the selection as its endpoints in either
// orientation. Placements are scanned in order and the first match wins.
func Validate(start, end *Cell, placements []Placement, found Found) (string, bool) {
	if start == nil || end == nil {
		return "", false
	}
	if *start == *end {
		return "", false
	}
	for _, p := range placements {
		if found.Has(p.Word) {
			continue
		}
		if *start == p.Start && *end == p.End {
			return p.Word, true
		}
		if *start == p.End && *end == p.Start {
			return p.Word, true
		}
	}
	return "", false
}

// CellsOf expands a placement into its cells, start to end.
func CellsOf(p Placement) []Cell {
	n := p.Len()
	out := make([]Cell, n)
	for i := 0; i < n; i++ {
		out[i] = p.Start.Step(p.Direction, i)
	}
	return out
}
