/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package questions

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

//go:embed bank.yaml
var defaultBank []byte

var (
	ErrEmptyBank         = errors.New("question bank is empty")
	ErrDuplicateQuestion = errors.New("duplicate question id")
	ErrInvalidQuestion   = errors.New("invalid question")
)

type bankFile struct {
	Questions []Question `yaml:"questions"`
}

// Bank is an immutable, validated set of questions.
type Bank struct {
	questions []Question
	shuffle   func(n int, swap func(i, j int))
}

// NewBank validates qs and wraps them in a Bank.
func NewBank(qs []Question) (*Bank, error) {
	if len(qs) == 0 {
		return nil, ErrEmptyBank
	}

	seen := make(map[string]bool, len(qs))

	for i, q := range qs {
		if err := validate(q); err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}

		if seen[q.ID] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateQuestion, q.ID)
		}
		seen[q.ID] = true
	}

	stored := make([]Question, len(qs))
	copy(stored, qs)

	return &Bank{
		questions: stored,
		shuffle:   rand.Shuffle,
	}, nil
}

func validate(q Question) error {
	switch {
	case strings.TrimSpace(q.ID) == "":
		return fmt.Errorf("%w: missing id", ErrInvalidQuestion)
	case strings.TrimSpace(q.Text) == "":
		return fmt.Errorf("%w: %q has no text", ErrInvalidQuestion, q.ID)
	case len(q.Options) < 2:
		return fmt.Errorf("%w: %q needs at least two options", ErrInvalidQuestion, q.ID)
	case q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options):
		return fmt.Errorf("%w: %q correct answer %d out of range", ErrInvalidQuestion, q.ID, q.CorrectAnswer)
	}

	return nil
}

// Parse decodes a YAML bank document.
func Parse(data []byte) (*Bank, error) {
	var f bankFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}

	return NewBank(f.Questions)
}

// Load reads a YAML bank from path, or the built-in bank when path is empty.
func Load(path string) (*Bank, error) {
	if path == "" {
		return Parse(defaultBank)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int {
	return len(b.questions)
}

// Sample returns min(n, Len()) distinct questions in random order.
func (b *Bank) Sample(n int) []Question {
	if n <= 0 {
		return []Question{}
	}

	shuffled := make([]Question, len(b.questions))
	copy(shuffled, b.questions)

	b.shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if n > len(shuffled) {
		n = len(shuffled)
	}

	return shuffled[:n]
}
