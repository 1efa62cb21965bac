package questions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleQuestions(n int) []Question {
	qs := make([]Question, 0, n)
	for i := 0; i < n; i++ {
		qs = append(qs, Question{
			ID:            string(rune('a' + i)),
			Text:          "question",
			Options:       []Option{{ID: 0, Text: "no"}, {ID: 1, Text: "yes"}},
			CorrectAnswer: 1,
		})
	}
	return qs
}

func TestLoadDefaultBank(t *testing.T) {
	bank, err := Load("")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, bank.Len(), 10)
}

func TestSampleReturnsDistinctSubset(t *testing.T) {
	bank, err := NewBank(sampleQuestions(12))
	require.NoError(t, err)

	got := bank.Sample(10)
	require.Len(t, got, 10)

	seen := map[string]bool{}
	for _, q := range got {
		assert.False(t, seen[q.ID], "duplicate %s", q.ID)
		seen[q.ID] = true
	}
}

func TestSampleCapsAtBankSize(t *testing.T) {
	bank, err := NewBank(sampleQuestions(3))
	require.NoError(t, err)

	assert.Len(t, bank.Sample(10), 3)
	assert.Empty(t, bank.Sample(0))
}

func TestSampleDoesNotMutateBank(t *testing.T) {
	bank, err := NewBank(sampleQuestions(5))
	require.NoError(t, err)

	bank.shuffle = func(n int, swap func(i, j int)) {
		swap(0, n-1)
	}

	first := bank.Sample(5)
	assert.Equal(t, "e", first[0].ID)

	second := bank.Sample(5)
	assert.Equal(t, "e", second[0].ID, "each sample starts from the stored order")
}

func TestNewBankValidation(t *testing.T) {
	_, err := NewBank(nil)
	assert.ErrorIs(t, err, ErrEmptyBank)

	dup := sampleQuestions(2)
	dup[1].ID = dup[0].ID
	_, err = NewBank(dup)
	assert.ErrorIs(t, err, ErrDuplicateQuestion)

	bad := sampleQuestions(1)
	bad[0].CorrectAnswer = 5
	_, err = NewBank(bad)
	assert.ErrorIs(t, err, ErrInvalidQuestion)

	oneOption := sampleQuestions(1)
	oneOption[0].Options = oneOption[0].Options[:1]
	oneOption[0].CorrectAnswer = 0
	_, err = NewBank(oneOption)
	assert.ErrorIs(t, err, ErrInvalidQuestion)
}

func TestParseYAML(t *testing.T) {
	doc := []byte(`
questions:
  - id: q1
    text: "Pick yes"
    correct_answer: 1
    options:
      - id: 0
        text: "no"
      - id: 1
        text: "yes"
`)

	bank, err := Parse(doc)
	require.NoError(t, err)

	got := bank.Sample(1)
	require.Len(t, got, 1)
	assert.Equal(t, "q1", got[0].ID)
	assert.Equal(t, 1, got[0].CorrectAnswer)
}

func TestPublicHidesAnswer(t *testing.T) {
	q := sampleQuestions(1)[0]
	pub := q.Public()

	assert.Equal(t, q.ID, pub.ID)
	assert.Equal(t, q.Options, pub.Options)
}
