// internal/game/engine.go
//
// Core engine for a single finger-spelling game.
// Responsibilities:
//   - Draw words per difficulty band without repeats inside a game.
//   - Verify submitted letters in order against the active word.
//   - Credit completed words (scoring.go) and report the end-of-game summary.
//   - Track state transitions: not_started → playing → finished.
//
// Notes:
//   - A Game is not safe for concurrent use; callers serialize access
//     (the store does this for the HTTP layer).
//   - The random source is injected so tests and daily games are
//     reproducible.
//   - Nothing here touches presentation: delays, feedback toasts and modals
//     belong to the caller.

package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/fingerspell/internal/words"
)

// Game holds the state of one play-through.
type Game struct {
	ID string

	bank   *words.Bank
	levels []Level
	rng    *rand.Rand

	currentWord     string
	level           Level
	progress        []rune
	score           int
	attempts        int
	totalAttempts   int
	correctAttempts int
	wordsCompleted  int
	usedWords       map[words.Difficulty][]string
	started         bool
	credited        bool // current word already counted by CompleteWord
}

// Option customizes a Game at construction.
type Option func(*Game)

// WithRand sets the random source used for word selection.
func WithRand(r *rand.Rand) Option {
	return func(g *Game) { g.rng = r }
}

// WithSeed is WithRand over a fresh source seeded with seed.
func WithSeed(seed int64) Option {
	return func(g *Game) { g.rng = rand.New(rand.NewSource(seed)) }
}

// WithLevels replaces the level table.
func WithLevels(levels []Level) Option {
	return func(g *Game) { g.levels = append([]Level(nil), levels...) }
}

// WithID fixes the game identifier (a random UUID otherwise).
func WithID(id string) Option {
	return func(g *Game) { g.ID = id }
}

// New constructs a game over bank. No word is selected yet; call Reset (or
// SelectRandomWord) to start playing.
//
// The bank must hold at least Level.Words distinct words for every level, so
// a normal play-through can never run a pool dry.
func New(bank *words.Bank, opts ...Option) (*Game, error) {
	g := &Game{
		ID:     uuid.NewString(),
		bank:   bank,
		levels: DefaultLevels(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if bank == nil {
		return nil, fmt.Errorf("%w: nil bank", ErrInvalidBank)
	}
	if len(g.levels) == 0 {
		return nil, fmt.Errorf("%w: no levels", ErrInvalidBank)
	}
	for _, lvl := range g.levels {
		if lvl.Words <= 0 {
			return nil, fmt.Errorf("%w: level %s draws no words", ErrInvalidBank, lvl.Difficulty)
		}
		if n := bank.Len(lvl.Difficulty); n < lvl.Words {
			return nil, fmt.Errorf("%w: %s has %d words, need %d", ErrInvalidBank, lvl.Difficulty, n, lvl.Words)
		}
	}
	g.clear()
	return g, nil
}

// clear restores creation defaults.
func (g *Game) clear() {
	g.currentWord = ""
	g.level = g.levels[0]
	g.progress = nil
	g.score = 0
	g.attempts = 0
	g.totalAttempts = 0
	g.correctAttempts = 0
	g.wordsCompleted = 0
	g.usedWords = make(map[words.Difficulty][]string, len(g.levels))
	g.started = false
	g.credited = false
}

// levelFor maps a completed-word count to its band. Counts at or past the
// end of the table stay in the last band.
func (g *Game) levelFor(completed int) Level {
	upTo := 0
	for _, lvl := range g.levels {
		upTo += lvl.Words
		if completed < upTo {
			return lvl
		}
	}
	return g.levels[len(g.levels)-1]
}

// SelectRandomWord draws the next word for the band implied by
// WordsCompleted and makes it active, clearing progress and attempts.
//
// Errors:
//   - ErrGameFinished once every word has been completed.
//   - ErrExhaustedWordBank if the band has no unused word left; the game is
//     left exactly as it was.
func (g *Game) SelectRandomWord() error {
	if g.wordsCompleted >= g.TotalWords() {
		return ErrGameFinished
	}
	lvl := g.levelFor(g.wordsCompleted)
	used := g.usedWords[lvl.Difficulty]

	var candidates []string
	for _, w := range g.bank.Words(lvl.Difficulty) {
		if !contains(used, w) {
			candidates = append(candidates, w)
		}
	}
	if len(candidates) == 0 {
		return fmt.Errorf("%w: %s", ErrExhaustedWordBank, lvl.Difficulty)
	}

	w := candidates[g.rng.Intn(len(candidates))]
	g.usedWords[lvl.Difficulty] = append(used, w)
	g.currentWord = w
	g.level = lvl
	g.progress = nil
	g.attempts = 0
	g.started = true
	g.credited = false
	return nil
}

// CheckLetter submits one letter for the active word and reports whether it
// was the expected next letter. Every call counts as an attempt.
//
// Comparison is exact; callers upper-case input first. A letter sent when no
// character is expected (no word yet, or the word is already spelled) is a
// wrong guess.
func (g *Game) CheckLetter(letter rune) bool {
	g.attempts++
	g.totalAttempts++

	word := []rune(g.currentWord)
	i := len(g.progress)
	if i >= len(word) || word[i] != letter {
		return false
	}
	g.progress = append(g.progress, letter)
	g.correctAttempts++
	return true
}

// WordComplete reports whether the active word is fully spelled and still
// waiting for CompleteWord.
func (g *Game) WordComplete() bool {
	return g.currentWord != "" && !g.credited &&
		len(g.progress) == len([]rune(g.currentWord))
}

// WordCredited reports whether the active word has been counted by
// CompleteWord and the game is waiting for the next selection.
func (g *Game) WordCredited() bool { return g.credited }

// CompleteWord credits the fully spelled active word.
func (g *Game) CompleteWord() (CompletionResult, error) {
	if g.Phase() == PhaseFinished {
		return CompletionResult{}, ErrGameFinished
	}
	if !g.WordComplete() {
		return CompletionResult{}, ErrWordIncomplete
	}

	g.credited = true
	g.wordsCompleted++
	points := Points(g.attempts, len([]rune(g.currentWord)), g.level.Multiplier)
	g.score += points

	return CompletionResult{
		Word:          g.currentWord,
		Difficulty:    g.level.Difficulty,
		AttemptsUsed:  g.attempts,
		PointsAwarded: points,
		Score:         g.score,
		GameOver:      g.wordsCompleted >= g.TotalWords(),
	}, nil
}

// Summary reports score and accuracy for the game so far. It is meant for
// the end of a game but may be asked for at any point once a letter has been
// submitted.
func (g *Game) Summary() (Summary, error) {
	acc, err := Accuracy(g.correctAttempts, g.totalAttempts)
	if err != nil {
		return Summary{}, err
	}
	tier := TierFor(acc)
	return Summary{
		Score:           g.score,
		WordsCompleted:  g.wordsCompleted,
		AccuracyPercent: acc,
		Tier:            tier,
		Message:         tier.Message(),
	}, nil
}

// ResetCurrentWord clears progress and attempts on the active word only.
func (g *Game) ResetCurrentWord() {
	g.progress = nil
	g.attempts = 0
}

// Reset starts a brand-new game on the same bank and levels.
func (g *Game) Reset() error {
	g.clear()
	return g.SelectRandomWord()
}

// --- read accessors ---

func (g *Game) CurrentWord() string { return g.currentWord }
func (g *Game) Progress() string { return string(g.progress) }
func (g *Game) Score() int { return g.score }
func (g *Game) Level() Level { return g.level }
func (g *Game) Difficulty() words.Difficulty { return g.level.Difficulty }
func (g *Game) Attempts() int { return g.attempts }
func (g *Game) TotalAttempts() int { return g.totalAttempts }
func (g *Game) CorrectAttempts() int { return g.correctAttempts }
func (g *Game) WordsCompleted() int { return g.wordsCompleted }
func (g *Game) Levels() []Level { return append([]Level(nil), g.levels...) }

// TotalWords is the number of words in a full game.
func (g *Game) TotalWords() int {
	n := 0
	for _, lvl := range g.levels {
		n += lvl.Words
	}
	return n
}

// UsedWords returns the words drawn from d so far, in draw order.
func (g *Game) UsedWords(d words.Difficulty) []string {
	return append([]string(nil), g.usedWords[d]...)
}

// Phase reports the game lifecycle stage.
func (g *Game) Phase() Phase {
	switch {
	case !g.started:
		return PhaseNotStarted
	case g.wordsCompleted >= g.TotalWords():
		return PhaseFinished
	default:
		return PhasePlaying
	}
}

// Snapshot returns a read-only view of the whole state.
func (g *Game) Snapshot() Snapshot {
	total := g.TotalWords()
	num := g.wordsCompleted + 1
	if num > total {
		num = total
	}
	return Snapshot{
		Phase:          g.Phase(),
		CurrentWord:    g.currentWord,
		Progress:       string(g.progress),
		Level:          g.level,
		Score:          g.score,
		Attempts:       g.attempts,
		WordsCompleted: g.wordsCompleted,
		WordNumber:     num,
		TotalWords:     total,
		WordComplete:   g.WordComplete(),
	}
}

func contains(list []string, w string) bool {
	for _, x := range list {
		if x == w {
			return true
		}
	}
	return false
}
