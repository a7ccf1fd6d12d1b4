// internal/daily/daily.go
//
// Deterministic seeds for the "daily" game: every player who starts a daily
// game on the same UTC date gets the same word sequence.
//
// Seed = first 8 bytes of HMAC-SHA256(salt, "YYYY-MM-DD"), read big-endian.

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

// Seed derives the random seed for the day containing t.
func Seed(t time.Time, salt string) int64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(t)))
	sum := h.Sum(nil)
	return int64(binary.BigEndian.Uint64(sum[:8]))
}
