package trivia

import (
	"fmt"
	"time"

	"github.com/Seednode/quizbox/questions"
)

type sentMessage struct {
	conn string
	msg  any
}

type recordingSender struct {
	sent []sentMessage
}

func (s *recordingSender) Send(connID string, msg any) {
	s.sent = append(s.sent, sentMessage{conn: connID, msg: msg})
}

func (s *recordingSender) reset() {
	s.sent = nil
}

func (s *recordingSender) to(connID string) []any {
	var out []any
	for _, m := range s.sent {
		if m.conn == connID {
			out = append(out, m.msg)
		}
	}
	return out
}

func messagesOf[T any](s *recordingSender, connID string) []T {
	var out []T
	for _, m := range s.sent {
		if m.conn != connID {
			continue
		}
		if v, ok := m.msg.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func lastOf[T any](s *recordingSender, connID string) (T, bool) {
	all := messagesOf[T](s, connID)
	if len(all) == 0 {
		var zero T
		return zero, false
	}
	return all[len(all)-1], true
}

type scheduledTask struct {
	after time.Duration
	task  func()
}

// manualScheduler holds tasks until a test fires them.
type manualScheduler struct {
	tasks map[string]scheduledTask
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{tasks: make(map[string]scheduledTask)}
}

func (s *manualScheduler) Schedule(key string, after time.Duration, task func()) {
	s.tasks[key] = scheduledTask{after: after, task: task}
}

func (s *manualScheduler) Cancel(key string) {
	delete(s.tasks, key)
}

func (s *manualScheduler) fire(key string) bool {
	t, ok := s.tasks[key]
	if !ok {
		return false
	}
	delete(s.tasks, key)
	t.task()
	return true
}

func (s *manualScheduler) delay(key string) (time.Duration, bool) {
	t, ok := s.tasks[key]
	return t.after, ok
}

// pick returns a pointer to an answer choice.
func pick(choice int) *int {
	return &choice
}

func makeQuestions(n int) []questions.Question {
	qs := make([]questions.Question, 0, n)
	for i := 0; i < n; i++ {
		qs = append(qs, questions.Question{
			ID:   fmt.Sprintf("q%d", i),
			Text: fmt.Sprintf("question %d", i),
			Options: []questions.Option{
				{ID: 0, Text: "zero"},
				{ID: 1, Text: "one"},
				{ID: 2, Text: "two"},
			},
			CorrectAnswer: 1,
			Category:      "test",
			Difficulty:    questions.DifficultyEasy,
		})
	}
	return qs
}
