package words

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/robalobadob/wordsearch/internal/game"
)

func TestInitEmbedded(t *testing.T) {
	t.Setenv("WORDS_FILE", "")
	Reset()
	defer Reset()

	if err := Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if Stats() == 0 {
		t.Fatal("embedded bank is empty")
	}
	if !Contains("wedding") || !Contains("Wed Ding") {
		t.Fatal("expected WEDDING in the embedded bank")
	}
	for _, w := range bank {
		if len(w) < MinLen || len(w) > MaxLen || !isAlpha(w) {
			t.Fatalf("bank holds invalid word %q", w)
		}
	}
}

func TestInitFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	body := "# comment\nalpha\n\nBravo\nalpha\nno\nwaytoolongforthegrid\nx-ray\nnew york\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("WORDS_FILE", path)
	Reset()
	defer Reset()

	if err := Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	want := []string{"ALPHA", "BRAVO", "NEWYORK"}
	if !reflect.DeepEqual(bank, want) {
		t.Fatalf("bank = %v, want %v", bank, want)
	}
}

func TestInitMissingFile(t *testing.T) {
	t.Setenv("WORDS_FILE", filepath.Join(t.TempDir(), "nope.txt"))
	Reset()
	defer Reset()

	if err := Init(); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestPickDistinctAndDeterministic(t *testing.T) {
	list := []string{"ONE", "TWO", "SIX", "TEN", "FOUR", "FIVE"}

	a := pickFrom(game.NewRand(10), list, 4)
	b := pickFrom(game.NewRand(10), list, 4)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same seed gave %v and %v", a, b)
	}
	seen := map[string]bool{}
	for _, w := range a {
		if seen[w] {
			t.Fatalf("duplicate %q in %v", w, a)
		}
		seen[w] = true
	}
	if len(a) != 4 {
		t.Fatalf("len = %d, want 4", len(a))
	}

	if got := pickFrom(game.NewRand(1), list, 50); len(got) != len(list) {
		t.Fatalf("oversized pick returned %d words", len(got))
	}
	if got := pickFrom(game.NewRand(1), list, 0); len(got) != 0 {
		t.Fatalf("zero pick returned %v", got)
	}
	if list[0] != "ONE" {
		t.Fatal("pickFrom modified its input")
	}
}
