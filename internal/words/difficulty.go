// internal/words/difficulty.go
//
// Difficulty levels used to key the word bank. Order matters: a game walks
// the levels easy → medium → hard.

package words

import (
	"fmt"
	"strings"
)

// Difficulty names one word pool.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Difficulties returns every difficulty in play order.
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

// ParseDifficulty accepts a difficulty name in any case.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case Easy, Medium, Hard:
		return d, nil
	}
	return "", fmt.Errorf("words: unknown difficulty %q", s)
}

func (d Difficulty) String() string { return string(d) }
