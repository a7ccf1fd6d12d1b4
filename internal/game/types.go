// internal/game/types.go
//
// Core type definitions for the finger-spelling engine.
// Defines:
//   - Level: per-difficulty display data, quota and score multiplier.
//   - Phase: NotStarted → Playing → Finished.
//   - CompletionResult / Summary: values handed back to the presentation layer.
//   - Snapshot: read-only view of the whole state for rendering.

package game

import (
	"errors"

	"github.com/robalobadob/fingerspell/internal/words"
)

var (
	// ErrExhaustedWordBank: no unused word remains for the current difficulty.
	ErrExhaustedWordBank = errors.New("word bank exhausted for difficulty")
	// ErrNoAttempts guards the accuracy division when nothing was submitted.
	ErrNoAttempts = errors.New("no attempts recorded")
	// ErrWordIncomplete: CompleteWord called before every letter was confirmed.
	ErrWordIncomplete = errors.New("word not fully spelled")
	// ErrGameFinished: command issued after the last word was completed.
	ErrGameFinished = errors.New("game finished")
	// ErrInvalidBank: the bank cannot supply a full game.
	ErrInvalidBank = errors.New("invalid word bank")
)

// Level describes one difficulty band of a game.
type Level struct {
	Difficulty words.Difficulty `json:"difficulty"`
	Name       string           `json:"name"`
	Words      int              `json:"words"` // words drawn from this level per game
	Color      string           `json:"color"`
	Multiplier float64          `json:"multiplier"`
}

// DefaultLevels returns the standard three-band table (5 words each).
func DefaultLevels() []Level {
	return []Level{
		{Difficulty: words.Easy, Name: "Fácil", Words: 5, Color: "#4CAF50", Multiplier: 1},
		{Difficulty: words.Medium, Name: "Médio", Words: 5, Color: "#FFA500", Multiplier: 1.5},
		{Difficulty: words.Hard, Name: "Difícil", Words: 5, Color: "#E74C3C", Multiplier: 2},
	}
}

// Phase is the coarse lifecycle of a game.
type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhasePlaying    Phase = "playing"
	PhaseFinished   Phase = "finished"
)

// CompletionResult is returned by CompleteWord.
type CompletionResult struct {
	Word          string           `json:"word"`
	Difficulty    words.Difficulty `json:"difficulty"`
	AttemptsUsed  int              `json:"attemptsUsed"`
	PointsAwarded int              `json:"pointsAwarded"`
	Score         int              `json:"score"`
	GameOver      bool             `json:"gameOver"`
}

// Tier buckets end-of-game accuracy.
type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierProgress  Tier = "progress"
	TierEffort    Tier = "effort"
)

// Summary is the end-of-game report.
type Summary struct {
	Score           int    `json:"score"`
	WordsCompleted  int    `json:"wordsCompleted"`
	AccuracyPercent int    `json:"accuracyPercent"`
	Tier            Tier   `json:"tier"`
	Message         string `json:"message"`
}

// Snapshot is everything a client needs to draw the board.
type Snapshot struct {
	Phase          Phase  `json:"phase"`
	CurrentWord    string `json:"currentWord"`
	Progress       string `json:"progress"`
	Level          Level  `json:"level"`
	Score          int    `json:"score"`
	Attempts       int    `json:"attempts"`
	WordsCompleted int    `json:"wordsCompleted"`
	WordNumber     int    `json:"wordNumber"` // 1-based position shown in the HUD
	TotalWords     int    `json:"totalWords"`
	WordComplete   bool   `json:"wordComplete"`
}
