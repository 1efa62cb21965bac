/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package trivia

import "time"

// Settings are the tunable game constants.
type Settings struct {
	QuestionTime     int // seconds per question
	TickInterval     time.Duration
	StartDelay       time.Duration
	QuestionDelay    time.Duration
	BaseScore        int
	BonusMultiplier  int
	BonusFloor       int // trailing seconds that earn no bonus
	MinPlayers       int
	MaxPlayers       int // 0 disables the cap
	QuestionCount    int
	ReconnectGrace   time.Duration
	SessionTimeout   time.Duration
	MaxNameLength    int
	MinNameLength    int
	OutboundCapacity int
	MessageRate      float64 // inbound messages per second per connection, 0 disables
	MessageBurst     int
}

func DefaultSettings() Settings {
	return Settings{
		QuestionTime:     30,
		TickInterval:     time.Second,
		StartDelay:       3 * time.Second,
		QuestionDelay:    3 * time.Second,
		BaseScore:        100,
		BonusMultiplier:  2,
		BonusFloor:       10,
		MinPlayers:       2,
		MaxPlayers:       8,
		QuestionCount:    10,
		ReconnectGrace:   30 * time.Second,
		SessionTimeout:   60 * time.Minute,
		MaxNameLength:    20,
		MinNameLength:    2,
		OutboundCapacity: 32,
		MessageRate:      10,
		MessageBurst:     20,
	}
}

// Score returns the points and time bonus for one answer. Wrong answers earn
// nothing; correct ones earn the base score plus a bonus for every second
// remaining above the floor. The reported time is clamped to the question
// window.
func (s Settings) Score(correct bool, timeLeft int) (points, bonus int) {
	if !correct {
		return 0, 0
	}

	timeLeft = min(max(timeLeft, 0), s.QuestionTime)
	bonus = max(0, timeLeft-s.BonusFloor) * s.BonusMultiplier

	return s.BaseScore + bonus, bonus
}
