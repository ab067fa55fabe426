package game

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewDedupesAndDefaults(t *testing.T) {
	g := New(Options{Words: []string{"love", "LOVE", " l o v e", "aditi"}, Seed: 5})
	if g.Size != DefaultSize {
		t.Fatalf("size = %d, want %d", g.Size, DefaultSize)
	}
	if !reflect.DeepEqual(g.Words, []string{"LOVE", "ADITI"}) {
		t.Fatalf("words = %v", g.Words)
	}
	if g.ID == "" || g.Seed != 5 {
		t.Fatalf("id %q seed %d", g.ID, g.Seed)
	}
	if g.State() != StatePlaying {
		t.Fatalf("state = %s", g.State())
	}
}

func TestNewSameSeedSameGrid(t *testing.T) {
	opts := Options{Words: []string{"ADITI", "ASHISH", "LOVE", "WEDDING"}, Size: 10, Seed: 99}
	a, b := New(opts), New(opts)
	if !reflect.DeepEqual(a.Grid.Rows(), b.Grid.Rows()) || !reflect.DeepEqual(a.Placements, b.Placements) {
		t.Fatal("same seed produced different puzzles")
	}
	if a.ID == b.ID {
		t.Fatal("sessions share an ID")
	}
}

func TestSelectUntilWon(t *testing.T) {
	g := New(Options{Words: []string{"ADITI", "ASHISH", "LOVE", "WEDDING"}, Size: 10, Seed: 1})
	if len(g.Placements) == 0 {
		t.Fatal("nothing placed")
	}

	miss, err := g.Select(cell(0, 0), cell(0, 0))
	if err != nil || miss.Matched {
		t.Fatalf("zero-length selection = %+v, %v", miss, err)
	}

	for i, p := range g.Placements {
		start, end := p.End, p.Start
		sel, err := g.Select(&start, &end)
		if err != nil {
			t.Fatalf("select %s: %v", p.Word, err)
		}
		if !sel.Matched || sel.Word != p.Word {
			t.Fatalf("select %s = %+v", p.Word, sel)
		}
		if !reflect.DeepEqual(sel.Cells, CellsOf(p)) {
			t.Fatalf("cells = %v, want %v", sel.Cells, CellsOf(p))
		}
		last := i == len(g.Placements)-1
		if last && sel.State != StateWon {
			t.Fatalf("state after last word = %s, want won", sel.State)
		}
		if !last && sel.State != StatePlaying {
			t.Fatalf("state after %s = %s, want playing", p.Word, sel.State)
		}
	}

	if _, err := g.Select(cell(0, 0), cell(0, 1)); !errors.Is(err, ErrFinished) {
		t.Fatalf("select after win: err = %v, want ErrFinished", err)
	}
	if g.Selections() != len(g.Placements)+1 {
		t.Fatalf("selections = %d", g.Selections())
	}
	if g.FinishedAt.IsZero() {
		t.Fatal("FinishedAt not set")
	}
}

func TestSelectRepeatDoesNotMatch(t *testing.T) {
	g := New(Options{Words: []string{"CAT", "DOG", "EMU"}, Size: 6, Seed: 8})
	p := g.Placements[0]
	if sel, _ := g.Select(&p.Start, &p.End); !sel.Matched {
		t.Fatalf("first selection missed %s", p.Word)
	}
	if g.State() == StatePlaying {
		if sel, _ := g.Select(&p.Start, &p.End); sel.Matched {
			t.Fatalf("repeat selection matched %s", sel.Word)
		}
	}
	if g.FoundCount() != 1 {
		t.Fatalf("found count = %d, want 1", g.FoundCount())
	}
}

func TestRevealAndSnapshot(t *testing.T) {
	g := New(Options{Words: []string{"ALPHA", "BRAVO", "SUPERCALIFRAGILISTIC"}, Size: 6, Seed: 4})
	if !reflect.DeepEqual(g.Unplaced, []string{"SUPERCALIFRAGILISTIC"}) {
		t.Fatalf("unplaced = %v", g.Unplaced)
	}

	v := g.Snapshot()
	if len(v.Found) != 0 || len(v.Highlights) != 0 || len(v.Remaining) != len(g.Placements) {
		t.Fatalf("fresh snapshot = %+v", v)
	}

	if err := g.Reveal(); err != nil {
		t.Fatal(err)
	}
	if err := g.Reveal(); !errors.Is(err, ErrFinished) {
		t.Fatalf("second reveal: %v", err)
	}
	v = g.Snapshot()
	if v.State != StateRevealed {
		t.Fatalf("state = %s", v.State)
	}
	want := 0
	for _, p := range g.Placements {
		want += len(p.Word)
	}
	if len(v.Highlights) != want || len(v.Remaining) != 0 {
		t.Fatalf("revealed snapshot: %d highlights (want %d), remaining %v", len(v.Highlights), want, v.Remaining)
	}
}

func TestDedupe(t *testing.T) {
	got := Dedupe([]string{"a b", "AB", "", "cd", "  "})
	if !reflect.DeepEqual(got, []string{"AB", "CD"}) {
		t.Fatalf("Dedupe = %v", got)
	}
}
