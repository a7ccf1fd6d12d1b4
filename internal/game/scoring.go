// internal/game/scoring.go
//
// Word points and end-of-game accuracy.
//
// Points per word:
//
//	extra  = attempts - len(word)
//	points = max(MinPoints, floor((BasePoints - extra*PenaltyPerExtra) * multiplier))
//
// Accuracy is correct/total across the whole game, rounded to a whole
// percent, then bucketed into four message tiers.

package game

import "math"

const (
	BasePoints      = 50
	PenaltyPerExtra = 5
	MinPoints       = 10
)

// Points scores one completed word.
func Points(attempts, wordLen int, multiplier float64) int {
	extra := attempts - wordLen
	p := int(math.Floor(float64(BasePoints-extra*PenaltyPerExtra) * multiplier))
	if p < MinPoints {
		return MinPoints
	}
	return p
}

// Accuracy returns round(correct/total*100). total == 0 yields ErrNoAttempts.
func Accuracy(correct, total int) (int, error) {
	if total == 0 {
		return 0, ErrNoAttempts
	}
	return int(math.Round(float64(correct) / float64(total) * 100)), nil
}

// Inclusive lower bounds of each tier.
const (
	excellentFrom = 90
	goodFrom      = 75
	progressFrom  = 60
)

// TierFor buckets an accuracy percentage.
func TierFor(accuracy int) Tier {
	switch {
	case accuracy >= excellentFrom:
		return TierExcellent
	case accuracy >= goodFrom:
		return TierGood
	case accuracy >= progressFrom:
		return TierProgress
	default:
		return TierEffort
	}
}

var tierMessages = map[Tier]string{
	TierExcellent: "🌟 Excepcional! Você domina a datilologia!",
	TierGood:      "🎉 Muito bom! Continue praticando!",
	TierProgress:  "👍 Bom trabalho! Você está progredindo!",
	TierEffort:    "💪 Continue tentando! A prática leva à perfeição!",
}

// Message is the player-facing text for the tier.
func (t Tier) Message() string { return tierMessages[t] }
