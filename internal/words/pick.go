// internal/words/pick.go
//
// Random selection of puzzle words from the bank. The caller supplies the
// random source, so a daily seed always yields the same word set.

package words

import "github.com/robalobadob/wordsearch/internal/game"

// Pick returns n distinct words from the bank, drawn with rng.
// If the bank holds fewer than n words, all of them are returned in
// shuffled order.
func Pick(rng game.Rand, n int) []string {
	return pickFrom(rng, bank, n)
}

// ForSeed picks n words with a generator seeded by seed.
func ForSeed(seed int64, n int) []string {
	return Pick(game.NewRand(seed), n)
}

// pickFrom runs a partial Fisher–Yates shuffle over a copy of list.
func pickFrom(rng game.Rand, list []string, n int) []string {
	if n <= 0 || len(list) == 0 {
		return []string{}
	}
	if n > len(list) {
		n = len(list)
	}
	cp := append([]string(nil), list...)
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(cp)-i)
		cp[i], cp[j] = cp[j], cp[i]
	}
	return cp[:n]
}
