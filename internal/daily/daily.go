// internal/daily/daily.go
//
// Deterministic daily puzzle parameters. Every player gets the same grid
// for a given UTC date because the word pick and the generator are both
// driven by Seed(date, salt).

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed derives a positive generator seed from HMAC(salt, YYYY-MM-DD).
func Seed(date time.Time, salt string) int64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// top bit cleared so the seed is non-negative
	s := int64(binary.BigEndian.Uint64(sum[:8]) >> 1)
	if s == 0 {
		return 1
	}
	return s
}
