// internal/words/words.go
//
// Word bank used to build puzzles when the host does not supply a list.
//
// Responsibilities:
//   - Load candidate words from a file named by WORDS_FILE, or fall back to
//     the embedded default list in assets/words.txt.
//   - Normalize to uppercase, keep only A–Z words of MinLen..MaxLen letters,
//     drop duplicates (first occurrence wins).
//   - Supply Contains and Stats lookups; Pick draws puzzle words.
//
// Initialization runs once (sync.Once). Reset re-arms it for tests.

package words

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/assets"
	"github.com/robalobadob/wordsearch/internal/game"
)

const (
	MinLen = 3
	MaxLen = 12
)

var (
	initOnce   sync.Once
	bank       []string
	bankSet    map[string]struct{}
	initialErr error
)

// Init loads the word bank exactly once.
// Returns an error if the bank ends up empty.
func Init() error {
	initOnce.Do(func() {
		var raw []string
		var err error
		if path := os.Getenv("WORDS_FILE"); path != "" {
			raw, err = readWordFile(path)
		} else {
			raw, err = assets.WordList()
		}
		if err != nil {
			initialErr = fmt.Errorf("words: load bank: %w", err)
			return
		}

		bank = filter(raw)
		bankSet = toSet(bank)
		if len(bank) == 0 {
			initialErr = errors.New("words: bank is empty")
			return
		}
		log.Debug().Int("words", len(bank)).Msg("word bank loaded")
	})
	return initialErr
}

// Reset forgets the loaded bank so the next Init reloads it.
func Reset() {
	initOnce = sync.Once{}
	bank, bankSet, initialErr = nil, nil, nil
}

// readWordFile loads one entry per line from path.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return assets.ReadLines(f)
}

// filter normalizes, validates and deduplicates raw entries.
func filter(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, w := range game.Dedupe(raw) {
		if len(w) >= MinLen && len(w) <= MaxLen && isAlpha(w) {
			out = append(out, w)
		}
	}
	return out
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// isAlpha reports whether s is all uppercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// Contains reports whether w (in any case/spacing) is in the bank.
func Contains(w string) bool {
	_, ok := bankSet[game.Normalize(w)]
	return ok
}

// Stats returns the number of loaded words.
func Stats() int { return len(bank) }
