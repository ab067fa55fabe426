// internal/game/engine.go
//
// Puzzle session built on top of the generator and validator.
// Responsibilities:
//   - Create a puzzle instance from a word list, grid size and diagonal flag.
//   - Apply two-cell selections and grow the found-set.
//   - Track state transitions: playing → won, or playing → revealed (skip).
//   - Compute highlight overlays for found words.
//
// Notes:
//   - The generator is seeded per game; a stored seed regenerates the grid.
//   - Words are deduplicated after normalization before generation.
//   - A game is won once every placed word is found; words the generator
//     could not place never block a win.

package game

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"sync"
	"time"
)

// State is the coarse lifecycle of a puzzle session.
type State string

const (
	StatePlaying  State = "playing"
	StateWon      State = "won"
	StateRevealed State = "revealed"
)

// ErrFinished is returned when a finished session receives input.
var ErrFinished = errors.New("game finished")

// Options configure a new puzzle session.
type Options struct {
	Words         []string
	Size          int    // grid dimension; DefaultSize when <= 0
	AllowDiagonal bool   // enables the 4 diagonal directions
	Seed          int64  // 0 picks a fresh random seed
	Owner         string // opaque tag of the player the session belongs to
}

// Game holds the state of a single puzzle session.
type Game struct {
	ID            string
	Owner         string
	Seed          int64
	Words         []string // normalized, deduplicated request order
	Size          int
	AllowDiagonal bool
	Grid          Grid
	Placements    []Placement
	Unplaced      []string
	StartedAt     time.Time
	FinishedAt    time.Time

	mu         sync.Mutex
	found      Found
	index      map[string]int // word → first placement index
	selections int
	state      State
}

// Selection is the outcome of one two-cell pick.
type Selection struct {
	Word    string `json:"word,omitempty"`
	Matched bool   `json:"matched"`
	Cells   []Cell `json:"cells,omitempty"`
	State   State  `json:"state"`
}

// View is a read-only snapshot suitable for rendering.
type View struct {
	ID         string   `json:"gameId"`
	Size       int      `json:"size"`
	Grid       Grid     `json:"grid"`
	Words      []string `json:"words"`
	Found      []string `json:"found"`
	Remaining  []string `json:"remaining"`
	Unplaced   []string `json:"unplaced"`
	Highlights []Cell   `json:"highlights"`
	Selections int      `json:"selections"`
	State      State    `json:"state"`
}

// New generates a fresh puzzle session.
func New(opts Options) *Game {
	size := opts.Size
	if size <= 0 {
		size = DefaultSize
	}
	seed := opts.Seed
	if seed == 0 {
		seed = NewSeed()
	}
	words := Dedupe(opts.Words)
	grid, placed := Generate(NewRand(seed), words, size, opts.AllowDiagonal)

	index := make(map[string]int, len(placed))
	for i, p := range placed {
		if _, ok := index[p.Word]; !ok {
			index[p.Word] = i
		}
	}

	return &Game{
		ID:            randomID(),
		Owner:         opts.Owner,
		Seed:          seed,
		Words:         words,
		Size:          size,
		AllowDiagonal: opts.AllowDiagonal,
		Grid:          grid,
		Placements:    placed,
		Unplaced:      Unplaced(words, placed),
		StartedAt:     time.Now().UTC(),
		found:         make(Found),
		index:         index,
		state:         StatePlaying,
	}
}

// Select validates a selection against the unfound placements.
// A miss is not an error; only a finished session returns ErrFinished.
func (g *Game) Select(start, end *Cell) (Selection, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StatePlaying {
		return Selection{State: g.state}, ErrFinished
	}
	g.selections++

	word, ok := Validate(start, end, g.Placements, g.found)
	if !ok {
		return Selection{State: g.state}, nil
	}
	g.found.Add(word)
	if g.allFound() {
		g.finish(StateWon)
	}
	return Selection{
		Word:    word,
		Matched: true,
		Cells:   CellsOf(g.Placements[g.index[word]]),
		State:   g.state,
	}, nil
}

// Reveal marks every placed word as found and ends the session.
func (g *Game) Reveal() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StatePlaying {
		return ErrFinished
	}
	for _, p := range g.Placements {
		g.found.Add(p.Word)
	}
	g.finish(StateRevealed)
	return nil
}

// State reports the current lifecycle state.
func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Selections reports how many selections were submitted while playing.
func (g *Game) Selections() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.selections
}

// FoundCount reports the number of distinct words found.
func (g *Game) FoundCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.found)
}

// Snapshot returns a consistent view of the session.
func (g *Game) Snapshot() View {
	g.mu.Lock()
	defer g.mu.Unlock()

	v := View{
		ID:         g.ID,
		Size:       g.Size,
		Grid:       g.Grid,
		Words:      g.Words,
		Found:      []string{},
		Remaining:  []string{},
		Unplaced:   g.Unplaced,
		Highlights: []Cell{},
		Selections: g.selections,
		State:      g.state,
	}
	if v.Unplaced == nil {
		v.Unplaced = []string{}
	}
	for i, p := range g.Placements {
		if g.index[p.Word] != i {
			continue
		}
		if g.found.Has(p.Word) {
			v.Found = append(v.Found, p.Word)
			v.Highlights = append(v.Highlights, CellsOf(p)...)
		} else {
			v.Remaining = append(v.Remaining, p.Word)
		}
	}
	return v
}

// allFound reports whether every placed word is in the found-set.
func (g *Game) allFound() bool {
	for _, p := range g.Placements {
		if !g.found.Has(p.Word) {
			return false
		}
	}
	return true
}

func (g *Game) finish(s State) {
	g.state = s
	g.FinishedAt = time.Now().UTC()
}

// Dedupe normalizes words and drops empty strings and repeats, keeping the
// first occurrence.
func Dedupe(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		n := Normalize(w)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// NewSeed returns a non-zero seed from crypto/rand.
func NewSeed() int64 {
	var b [8]byte
	for {
		_, _ = rand.Read(b[:])
		if s := int64(binary.BigEndian.Uint64(b[:]) >> 1); s != 0 {
			return s
		}
	}
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
