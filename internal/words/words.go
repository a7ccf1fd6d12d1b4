// internal/words/words.go
//
// Word bank management for the game engine.
//
// Responsibilities:
//   - Hold one ordered word list per Difficulty.
//   - Load lists from the embedded default, a text file, or SQLite (sql.go).
//   - Normalise entries: upper-case, A–Z only, no duplicates per difficulty.
//
// Text format (embedded default and WORDS_FILE):
//
//	# comment
//	[easy]
//	GATO
//	CASA
//	[medium]
//	...
//
// Entries that are not pure letters after upper-casing are skipped, the same
// way a malformed line in a word file is skipped rather than failing the load.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/fingerspell/assets"
)

// ErrEmptyBank is returned when a loader finds no usable words at all.
var ErrEmptyBank = errors.New("words: bank is empty")

// Bank maps each difficulty to its ordered word list.
// A Bank is immutable after construction and safe to share between games.
type Bank struct {
	lists map[Difficulty][]string
}

// NewBank builds a Bank from raw lists, normalising and de-duplicating them.
func NewBank(lists map[Difficulty][]string) *Bank {
	b := &Bank{lists: make(map[Difficulty][]string, len(lists))}
	for d, list := range lists {
		b.lists[d] = normalizeList(list)
	}
	return b
}

// Words returns a copy of the list for d (nil if d has no words).
func (b *Bank) Words(d Difficulty) []string {
	list := b.lists[d]
	if len(list) == 0 {
		return nil
	}
	return append([]string(nil), list...)
}

// Len reports the number of distinct words for d.
func (b *Bank) Len(d Difficulty) int { return len(b.lists[d]) }

// Stats returns word counts per known difficulty.
func (b *Bank) Stats() map[Difficulty]int {
	out := make(map[Difficulty]int, len(b.lists))
	for _, d := range Difficulties() {
		out[d] = len(b.lists[d])
	}
	return out
}

func (b *Bank) empty() bool {
	for _, list := range b.lists {
		if len(list) > 0 {
			return false
		}
	}
	return true
}

var (
	defaultOnce sync.Once
	defaultBank *Bank
	defaultErr  error
)

// Default returns the bank embedded in the binary. It is parsed once.
func Default() (*Bank, error) {
	defaultOnce.Do(func() {
		raw, err := assets.WordBank()
		if err != nil {
			defaultErr = err
			return
		}
		defaultBank, defaultErr = Parse(strings.NewReader(raw))
	})
	return defaultBank, defaultErr
}

// LoadFile reads a bank in the sectioned text format from path.
func LoadFile(path string) (*Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	b, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// Parse reads a bank in the sectioned text format.
func Parse(r io.Reader) (*Bank, error) {
	lists := make(map[Difficulty][]string)
	var current Difficulty
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
			d, err := ParseDifficulty(s[1 : len(s)-1])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			current = d
			continue
		}
		if current == "" {
			return nil, fmt.Errorf("line %d: word %q outside of a [difficulty] section", line, s)
		}
		lists[current] = append(lists[current], s)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	b := NewBank(lists)
	if b.empty() {
		return nil, ErrEmptyBank
	}
	return b, nil
}

// normalizeList upper-cases entries, drops non-letter entries and keeps the
// first occurrence of each word.
func normalizeList(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, w := range list {
		w = strings.ToUpper(strings.TrimSpace(w))
		if w == "" || !isUpperAlpha(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// isUpperAlpha reports whether s is all upper-case ASCII letters.
func isUpperAlpha(s string) bool {
	for _, r := range s {
		if !IsLetter(r) {
			return false
		}
	}
	return true
}
