// internal/words/letters.go
//
// Letter helpers shared by the engine boundary and the HTTP layer:
// on-screen key layout, input normalisation and per-letter reference
// metadata (the hand-shape image the client zooms into).

package words

import (
	"path"
	"strings"
	"unicode/utf8"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// IsLetter reports whether r is an upper-case ASCII letter.
func IsLetter(r rune) bool { return r >= 'A' && r <= 'Z' }

// Keyboard returns the on-screen key layout, one key per letter.
func Keyboard() []string {
	keys := make([]string, 0, len(alphabet))
	for _, r := range alphabet {
		keys = append(keys, string(r))
	}
	return keys
}

// Normalize turns raw key input into a single upper-case letter.
// ok is false for anything other than exactly one A–Z character.
func Normalize(s string) (letter rune, ok bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if utf8.RuneCountInString(s) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s)
	if !IsLetter(r) {
		return 0, false
	}
	return r, true
}

// LetterReference describes the sign-language reference image for a letter.
type LetterReference struct {
	Letter string `json:"letter"`
	Image  string `json:"image"`
	Alt    string `json:"alt"`
}

// Reference builds the reference entry for letter, with the image addressed
// as <base>/<LETTER>.png.
func Reference(letter rune, base string) LetterReference {
	l := string(letter)
	return LetterReference{
		Letter: l,
		Image:  path.Join(base, l+".png"),
		Alt:    "Letra " + l + " em Libras",
	}
}
