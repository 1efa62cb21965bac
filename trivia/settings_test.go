package trivia

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	s := DefaultSettings()

	tests := []struct {
		name       string
		correct    bool
		timeLeft   int
		wantPoints int
		wantBonus  int
	}{
		{name: "fast correct answer", correct: true, timeLeft: 25, wantPoints: 130, wantBonus: 30},
		{name: "full time left", correct: true, timeLeft: 30, wantPoints: 140, wantBonus: 40},
		{name: "at the bonus floor", correct: true, timeLeft: 10, wantPoints: 100},
		{name: "below the bonus floor", correct: true, timeLeft: 3, wantPoints: 100},
		{name: "negative time left", correct: true, timeLeft: -4, wantPoints: 100},
		{name: "more time than the question allows", correct: true, timeLeft: 31, wantPoints: 140, wantBonus: 40},
		{name: "overflowing time left", correct: true, timeLeft: math.MaxInt64/2 + 10, wantPoints: 140, wantBonus: 40},
		{name: "minimum time left", correct: true, timeLeft: math.MinInt64, wantPoints: 100},
		{name: "wrong answer", correct: false, timeLeft: 25},
		{name: "wrong answer with no time", correct: false, timeLeft: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, bonus := s.Score(tt.correct, tt.timeLeft)

			assert.Equal(t, tt.wantPoints, points)
			assert.Equal(t, tt.wantBonus, bonus)
			assert.GreaterOrEqual(t, points, 0)
		})
	}
}

func TestScoreUsesSettings(t *testing.T) {
	s := DefaultSettings()
	s.BaseScore = 50
	s.BonusMultiplier = 5
	s.BonusFloor = 20

	points, bonus := s.Score(true, 22)

	assert.Equal(t, 60, points)
	assert.Equal(t, 10, bonus)
}
