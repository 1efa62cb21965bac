/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package questions holds the trivia question bank and the sampling helper
// used to assign a fixed question sequence to each room.
package questions

//go:generate mockgen -package=mocks -destination=mocks/mock_source.go github.com/Seednode/quizbox/questions Source

// Difficulty of a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Option is one selectable answer.
type Option struct {
	ID   int    `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
	Icon string `json:"icon,omitempty" yaml:"icon"`
}

// Question is a full question record, including the correct answer index.
type Question struct {
	ID            string     `json:"id" yaml:"id"`
	Text          string     `json:"text" yaml:"text"`
	Options       []Option   `json:"options" yaml:"options"`
	CorrectAnswer int        `json:"correctAnswer" yaml:"correct_answer"`
	Category      string     `json:"category" yaml:"category"`
	Difficulty    Difficulty `json:"difficulty" yaml:"difficulty"`
}

// PublicQuestion is what players see while a question is open.
type PublicQuestion struct {
	ID         string     `json:"id"`
	Text       string     `json:"text"`
	Options    []Option   `json:"options"`
	Category   string     `json:"category"`
	Difficulty Difficulty `json:"difficulty"`
}

// Public strips the correct answer.
func (q Question) Public() PublicQuestion {
	options := make([]Option, len(q.Options))
	copy(options, q.Options)

	return PublicQuestion{
		ID:         q.ID,
		Text:       q.Text,
		Options:    options,
		Category:   q.Category,
		Difficulty: q.Difficulty,
	}
}

// Source supplies an order-randomized question sequence of up to n questions.
type Source interface {
	Sample(n int) []Question
}
