package game

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/fingerspell/internal/words"
)

func defaultBank(t *testing.T) *words.Bank {
	t.Helper()
	b, err := words.Default()
	require.NoError(t, err)
	return b
}

// singleWordGame builds a game whose levels draw exactly one word each from
// a bank holding exactly those words.
func singleWordGame(t *testing.T, easy, medium, hard string) *Game {
	t.Helper()
	bank := words.NewBank(map[words.Difficulty][]string{
		words.Easy:   {easy},
		words.Medium: {medium},
		words.Hard:   {hard},
	})
	levels := DefaultLevels()
	for i := range levels {
		levels[i].Words = 1
	}
	g, err := New(bank, WithLevels(levels), WithSeed(1))
	require.NoError(t, err)
	return g
}

func spell(g *Game) {
	for _, r := range g.CurrentWord() {
		g.CheckLetter(r)
	}
}

func TestNew(t *testing.T) {
	t.Run("default bank", func(t *testing.T) {
		g, err := New(defaultBank(t), WithSeed(7))
		require.NoError(t, err)
		assert.NotEmpty(t, g.ID)
		assert.Equal(t, PhaseNotStarted, g.Phase())
		assert.Equal(t, 15, g.TotalWords())
		assert.Empty(t, g.CurrentWord())
		assert.Equal(t, words.Easy, g.Difficulty())
	})

	t.Run("bank too small for a level", func(t *testing.T) {
		bank := words.NewBank(map[words.Difficulty][]string{
			words.Easy:   {"GATO", "CASA", "BOLA", "MESA", "PATO"},
			words.Medium: {"PORTA", "SUCO"},
			words.Hard:   {"IRMAO", "BRANCO", "PRETO", "PIZZA", "ARROZ"},
		})
		_, err := New(bank)
		assert.ErrorIs(t, err, ErrInvalidBank)
		assert.ErrorContains(t, err, "medium")
	})

	t.Run("nil bank", func(t *testing.T) {
		_, err := New(nil)
		assert.ErrorIs(t, err, ErrInvalidBank)
	})

	t.Run("fixed id", func(t *testing.T) {
		g, err := New(defaultBank(t), WithID("abc"))
		require.NoError(t, err)
		assert.Equal(t, "abc", g.ID)
	})
}

func TestSelectRandomWord(t *testing.T) {
	t.Run("draws from the band implied by words completed", func(t *testing.T) {
		bank := defaultBank(t)
		g, err := New(bank, WithSeed(3))
		require.NoError(t, err)
		require.NoError(t, g.Reset())

		for n := 0; n < g.TotalWords(); n++ {
			want := words.Easy
			switch {
			case n >= 10:
				want = words.Hard
			case n >= 5:
				want = words.Medium
			}
			assert.Equal(t, want, g.Difficulty(), "word %d", n)
			assert.Contains(t, bank.Words(want), g.CurrentWord())

			spell(g)
			res, err := g.CompleteWord()
			require.NoError(t, err)
			if !res.GameOver {
				require.NoError(t, g.SelectRandomWord())
			}
		}
		assert.Equal(t, PhaseFinished, g.Phase())
	})

	t.Run("never repeats a word within a difficulty", func(t *testing.T) {
		for seed := int64(0); seed < 50; seed++ {
			g, err := New(defaultBank(t), WithSeed(seed))
			require.NoError(t, err)
			require.NoError(t, g.Reset())
			for {
				spell(g)
				res, err := g.CompleteWord()
				require.NoError(t, err)
				if res.GameOver {
					break
				}
				require.NoError(t, g.SelectRandomWord())
			}
			for _, d := range words.Difficulties() {
				used := g.UsedWords(d)
				seen := map[string]bool{}
				for _, w := range used {
					assert.False(t, seen[w], "seed %d: %s repeated in %s", seed, w, d)
					seen[w] = true
				}
				assert.Len(t, used, 5)
			}
		}
	})

	t.Run("skipping a word still marks it used", func(t *testing.T) {
		g, err := New(defaultBank(t), WithSeed(11))
		require.NoError(t, err)
		require.NoError(t, g.Reset())
		first := g.CurrentWord()
		g.CheckLetter('Z')
		require.NoError(t, g.SelectRandomWord())
		assert.NotEqual(t, first, g.CurrentWord())
		assert.Equal(t, 0, g.Attempts())
		assert.Equal(t, 1, g.TotalAttempts())
		assert.Equal(t, []string{first, g.CurrentWord()}, g.UsedWords(words.Easy))
	})

	t.Run("exhausted pool leaves state unchanged", func(t *testing.T) {
		g := singleWordGame(t, "CASA", "PORTA", "PRETO")
		require.NoError(t, g.Reset())
		g.CheckLetter('C')
		before := g.Snapshot()

		err := g.SelectRandomWord()
		assert.ErrorIs(t, err, ErrExhaustedWordBank)
		assert.Equal(t, before, g.Snapshot())
		assert.Equal(t, []string{"CASA"}, g.UsedWords(words.Easy))
	})

	t.Run("same seed same sequence", func(t *testing.T) {
		a, err := New(defaultBank(t), WithRand(rand.New(rand.NewSource(42))))
		require.NoError(t, err)
		b, err := New(defaultBank(t), WithSeed(42))
		require.NoError(t, err)
		require.NoError(t, a.Reset())
		require.NoError(t, b.Reset())
		for i := 0; i < 4; i++ {
			assert.Equal(t, a.CurrentWord(), b.CurrentWord())
			require.NoError(t, a.SelectRandomWord())
			require.NoError(t, b.SelectRandomWord())
		}
	})
}

func TestCheckLetter(t *testing.T) {
	t.Run("correct letters extend progress as a prefix", func(t *testing.T) {
		g := singleWordGame(t, "CASA", "PORTA", "PRETO")
		require.NoError(t, g.Reset())

		for i, r := range "CASA" {
			assert.True(t, g.CheckLetter(r))
			assert.Equal(t, "CASA"[:i+1], g.Progress())
			assert.True(t, strings.HasPrefix(g.CurrentWord(), g.Progress()))
		}
		assert.True(t, g.WordComplete())
		assert.Equal(t, 4, g.Attempts())
		assert.Equal(t, 4, g.CorrectAttempts())
	})

	t.Run("wrong letters only count attempts", func(t *testing.T) {
		g := singleWordGame(t, "CASA", "PORTA", "PRETO")
		require.NoError(t, g.Reset())
		require.True(t, g.CheckLetter('C'))

		const n = 7
		for i := 0; i < n; i++ {
			assert.False(t, g.CheckLetter('X'))
		}
		assert.Equal(t, "C", g.Progress())
		assert.Equal(t, 1+n, g.Attempts())
		assert.Equal(t, 1+n, g.TotalAttempts())
		assert.Equal(t, 1, g.CorrectAttempts())
	})

	t.Run("comparison is case sensitive", func(t *testing.T) {
		g := singleWordGame(t, "CASA", "PORTA", "PRETO")
		require.NoError(t, g.Reset())
		assert.False(t, g.CheckLetter('c'))
		assert.Empty(t, g.Progress())
	})

	t.Run("letters after the word is spelled are wrong guesses", func(t *testing.T) {
		g := singleWordGame(t, "PE", "PORTA", "PRETO")
		require.NoError(t, g.Reset())
		spell(g)
		assert.False(t, g.CheckLetter('E'))
		assert.Equal(t, "PE", g.Progress())
		assert.Equal(t, 3, g.Attempts())
	})

	t.Run("before any word is selected", func(t *testing.T) {
		g, err := New(defaultBank(t))
		require.NoError(t, err)
		assert.False(t, g.CheckLetter('A'))
		assert.Equal(t, 1, g.TotalAttempts())
	})
}

func TestCompleteWord(t *testing.T) {
	t.Run("requires a fully spelled word", func(t *testing.T) {
		g := singleWordGame(t, "CASA", "PORTA", "PRETO")
		require.NoError(t, g.Reset())
		g.CheckLetter('C')
		_, err := g.CompleteWord()
		assert.ErrorIs(t, err, ErrWordIncomplete)
		assert.Equal(t, 0, g.WordsCompleted())
	})

	t.Run("credits a word once", func(t *testing.T) {
		g := singleWordGame(t, "CASA", "PORTA", "PRETO")
		require.NoError(t, g.Reset())
		spell(g)
		assert.False(t, g.WordCredited())
		res, err := g.CompleteWord()
		require.NoError(t, err)
		assert.True(t, g.WordCredited())
		assert.Equal(t, CompletionResult{
			Word: "CASA", Difficulty: words.Easy, AttemptsUsed: 4,
			PointsAwarded: 50, Score: 50, GameOver: false,
		}, res)

		_, err = g.CompleteWord()
		assert.ErrorIs(t, err, ErrWordIncomplete)

		g.ResetCurrentWord()
		spell(g)
		_, err = g.CompleteWord()
		assert.ErrorIs(t, err, ErrWordIncomplete)
		assert.Equal(t, 1, g.WordsCompleted())
		assert.Equal(t, 50, g.Score())

		require.NoError(t, g.SelectRandomWord())
		assert.False(t, g.WordCredited())
	})

	t.Run("casa scoring", func(t *testing.T) {
		cases := []struct {
			name   string
			wrong  int
			points int
		}{
			{"minimum attempts", 0, 50},
			{"five extra", 5, 25},
			{"sixteen extra clamps", 16, 10},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				g := singleWordGame(t, "CASA", "PORTA", "PRETO")
				require.NoError(t, g.Reset())
				for i := 0; i < tc.wrong; i++ {
					g.CheckLetter('Z')
				}
				spell(g)
				res, err := g.CompleteWord()
				require.NoError(t, err)
				assert.Equal(t, 4+tc.wrong, res.AttemptsUsed)
				assert.Equal(t, tc.points, res.PointsAwarded)
				assert.Equal(t, tc.points, g.Score())
			})
		}
	})

	t.Run("medium multiplier", func(t *testing.T) {
		g := singleWordGame(t, "CASA", "PORTA", "PRETO")
		require.NoError(t, g.Reset())
		spell(g)
		_, err := g.CompleteWord()
		require.NoError(t, err)
		require.NoError(t, g.SelectRandomWord())
		require.Equal(t, words.Medium, g.Difficulty())

		spell(g)
		res, err := g.CompleteWord()
		require.NoError(t, err)
		assert.Equal(t, "PORTA", res.Word)
		assert.Equal(t, 75, res.PointsAwarded)
		assert.Equal(t, 125, g.Score())
	})

	t.Run("score never decreases", func(t *testing.T) {
		g, err := New(defaultBank(t), WithSeed(5))
		require.NoError(t, err)
		require.NoError(t, g.Reset())
		last := 0
		for {
			for i := 0; i < 12; i++ {
				g.CheckLetter('Q')
			}
			spell(g)
			res, err := g.CompleteWord()
			require.NoError(t, err)
			assert.GreaterOrEqual(t, res.PointsAwarded, MinPoints)
			assert.GreaterOrEqual(t, g.Score(), last)
			last = g.Score()
			if res.GameOver {
				break
			}
			require.NoError(t, g.SelectRandomWord())
		}
	})
}

func TestGameEnd(t *testing.T) {
	t.Run("full default game", func(t *testing.T) {
		g, err := New(defaultBank(t), WithSeed(9))
		require.NoError(t, err)
		require.NoError(t, g.Reset())

		var res CompletionResult
		for i := 0; i < 15; i++ {
			assert.Equal(t, PhasePlaying, g.Phase())
			spell(g)
			res, err = g.CompleteWord()
			require.NoError(t, err)
			assert.Equal(t, i == 14, res.GameOver)
			if !res.GameOver {
				require.NoError(t, g.SelectRandomWord())
			}
		}
		assert.Equal(t, PhaseFinished, g.Phase())
		assert.Equal(t, g.TotalWords(), g.WordsCompleted())
		assert.Equal(t, 15, g.Snapshot().WordNumber)

		assert.ErrorIs(t, g.SelectRandomWord(), ErrGameFinished)
		_, err = g.CompleteWord()
		assert.ErrorIs(t, err, ErrGameFinished)

		sum, err := g.Summary()
		require.NoError(t, err)
		assert.Equal(t, 100, sum.AccuracyPercent)
		assert.Equal(t, TierExcellent, sum.Tier)
		// 5*50 + 5*75 + 5*100
		assert.Equal(t, 1125, sum.Score)
		assert.Equal(t, 15, sum.WordsCompleted)
	})

	t.Run("eighteen of twenty", func(t *testing.T) {
		g := singleWordGame(t, "CASA", "CACHORRO", "BRANCO")
		require.NoError(t, g.Reset())
		g.CheckLetter('X')
		g.CheckLetter('Y')
		for {
			spell(g)
			res, err := g.CompleteWord()
			require.NoError(t, err)
			if res.GameOver {
				break
			}
			require.NoError(t, g.SelectRandomWord())
		}
		assert.Equal(t, 20, g.TotalAttempts())
		assert.Equal(t, 18, g.CorrectAttempts())

		sum, err := g.Summary()
		require.NoError(t, err)
		assert.Equal(t, 90, sum.AccuracyPercent)
		assert.Equal(t, TierExcellent, sum.Tier)
		assert.Equal(t, TierExcellent.Message(), sum.Message)
	})

	t.Run("summary without attempts", func(t *testing.T) {
		g, err := New(defaultBank(t))
		require.NoError(t, err)
		_, err = g.Summary()
		assert.ErrorIs(t, err, ErrNoAttempts)
	})
}

func TestResets(t *testing.T) {
	t.Run("reset current word keeps totals", func(t *testing.T) {
		g := singleWordGame(t, "CASA", "PORTA", "PRETO")
		require.NoError(t, g.Reset())
		g.CheckLetter('C')
		g.CheckLetter('X')
		g.ResetCurrentWord()

		assert.Empty(t, g.Progress())
		assert.Equal(t, 0, g.Attempts())
		assert.Equal(t, 2, g.TotalAttempts())
		assert.Equal(t, 1, g.CorrectAttempts())
		assert.Equal(t, "CASA", g.CurrentWord())
		assert.Equal(t, []string{"CASA"}, g.UsedWords(words.Easy))
	})

	t.Run("reset game restores defaults", func(t *testing.T) {
		g, err := New(defaultBank(t), WithSeed(21))
		require.NoError(t, err)
		require.NoError(t, g.Reset())
		for i := 0; i < 7; i++ {
			g.CheckLetter('Z')
			spell(g)
			_, err := g.CompleteWord()
			require.NoError(t, err)
			require.NoError(t, g.SelectRandomWord())
		}
		require.NotZero(t, g.Score())

		require.NoError(t, g.Reset())
		assert.Equal(t, 0, g.Score())
		assert.Equal(t, 0, g.WordsCompleted())
		assert.Equal(t, 0, g.TotalAttempts())
		assert.Equal(t, 0, g.CorrectAttempts())
		assert.Equal(t, words.Easy, g.Difficulty())
		assert.Equal(t, PhasePlaying, g.Phase())
		assert.Equal(t, []string{g.CurrentWord()}, g.UsedWords(words.Easy))
		assert.Empty(t, g.UsedWords(words.Medium))
		assert.Empty(t, g.UsedWords(words.Hard))
	})
}
