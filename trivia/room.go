/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package trivia

import (
	"cmp"
	"slices"
	"time"

	"github.com/Seednode/quizbox/questions"
	"github.com/google/uuid"
)

type GameMode string

const (
	ModeOneVsOne   GameMode = "1v1"
	ModeAllVsAll   GameMode = "all-vs-all"
	ModeTournament GameMode = "tournament"
)

type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusStarting Status = "starting"
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
)

// Room is one quiz session. It is not safe for concurrent use; the hub loop
// owns every room.
type Room struct {
	ID            string
	Code          string
	HostID        string
	Players       []*Player
	Mode          GameMode
	Status        Status
	Questions     []questions.Question
	QuestionIndex int
	TimeLeft      int
	Results       []Result

	// Open is true between a question's reveal and its end.
	Open bool

	CreatedAt  time.Time
	LastActive time.Time

	timeLimit  int
	minPlayers int
}

func newRoom(id, code string, mode GameMode, qs []questions.Question, timeLimit, minPlayers int, now time.Time) *Room {
	return &Room{
		ID:         id,
		Code:       code,
		Mode:       mode,
		Status:     StatusWaiting,
		Questions:  qs,
		TimeLeft:   timeLimit,
		Results:    []Result{},
		CreatedAt:  now,
		LastActive: now,
		timeLimit:  timeLimit,
		minPlayers: minPlayers,
	}
}

// AddPlayer appends a new player; the first player becomes host.
func (r *Room) AddPlayer(profile Profile, connID string) *Player {
	p := newPlayer(uuid.NewString(), uuid.NewString(), profile, connID)

	if len(r.Players) == 0 {
		r.HostID = p.ID
	}

	r.Players = append(r.Players, p)

	return p
}

// RemovePlayer drops the player from the roster and reports whether it was
// present. A departing host is replaced by the oldest remaining player.
func (r *Room) RemovePlayer(playerID string) bool {
	i := slices.IndexFunc(r.Players, func(p *Player) bool { return p.ID == playerID })
	if i < 0 {
		return false
	}

	r.Players = slices.Delete(r.Players, i, i+1)

	switch {
	case len(r.Players) == 0:
		r.HostID = ""
	case r.HostID == playerID:
		r.HostID = r.Players[0].ID
	}

	return true
}

func (r *Room) Player(playerID string) *Player {
	for _, p := range r.Players {
		if p.ID == playerID {
			return p
		}
	}

	return nil
}

func (r *Room) PlayerByConnection(connID string) *Player {
	if connID == "" {
		return nil
	}

	for _, p := range r.Players {
		if p.ConnID == connID {
			return p
		}
	}

	return nil
}

func (r *Room) SetReady(playerID string, ready bool) {
	if p := r.Player(playerID); p != nil {
		p.Ready = ready
	}
}

// CanStart reports whether enough players are connected and all of them are
// ready. Players waiting out their reconnect grace block the start.
func (r *Room) CanStart() bool {
	connected := 0

	for _, p := range r.Players {
		if !p.Connected || !p.Ready {
			return false
		}
		connected++
	}

	return connected >= r.minPlayers
}

// Start moves the room to playing on its first question.
func (r *Room) Start() {
	r.Status = StatusPlaying
	r.QuestionIndex = 0
	r.TimeLeft = r.timeLimit
	r.Open = false
}

// CurrentQuestion is defined while playing and, once finished, points at the
// last question asked.
func (r *Room) CurrentQuestion() *questions.Question {
	if len(r.Questions) == 0 {
		return nil
	}

	switch r.Status {
	case StatusPlaying:
		if r.QuestionIndex < len(r.Questions) {
			return &r.Questions[r.QuestionIndex]
		}
	case StatusFinished:
		return &r.Questions[min(r.QuestionIndex, len(r.Questions)-1)]
	}

	return nil
}

// AdvanceQuestion moves to the next question and reports whether one exists.
// Running off the end finishes the game.
func (r *Room) AdvanceQuestion() bool {
	r.Open = false

	if r.QuestionIndex < len(r.Questions) {
		r.QuestionIndex++
	}

	if r.QuestionIndex < len(r.Questions) {
		r.TimeLeft = r.timeLimit
		return true
	}

	r.Finish()

	return false
}

// Finish freezes the final standings, highest score first.
func (r *Room) Finish() {
	r.Status = StatusFinished
	r.Open = false

	results := make([]Result, 0, len(r.Players))
	for _, p := range r.Players {
		results = append(results, p.result())
	}

	slices.SortStableFunc(results, func(a, b Result) int {
		return cmp.Compare(b.Score, a.Score)
	})

	r.Results = results
}

// ApplyAnswer adds points to the player's score.
func (r *Room) ApplyAnswer(playerID string, points int) {
	if p := r.Player(playerID); p != nil {
		p.AddScore(points)
	}
}

func (r *Room) TotalQuestions() int {
	return len(r.Questions)
}

// Snapshot renders the public view of the room.
func (r *Room) Snapshot() RoomSnapshot {
	players := make([]PlayerSnapshot, 0, len(r.Players))
	for _, p := range r.Players {
		players = append(players, p.snapshot())
	}

	results := make([]Result, len(r.Results))
	copy(results, r.Results)

	s := RoomSnapshot{
		ID:             r.ID,
		Code:           r.Code,
		HostID:         r.HostID,
		Players:        players,
		GameMode:       r.Mode,
		Status:         r.Status,
		QuestionIndex:  r.QuestionIndex,
		TotalQuestions: len(r.Questions),
		TimeLeft:       r.TimeLeft,
		Results:        results,
	}

	if q := r.CurrentQuestion(); q != nil && (r.Open || r.Status == StatusFinished) {
		pub := q.Public()
		s.CurrentQuestion = &pub
	}

	if r.Status == StatusFinished {
		s.Questions = make([]questions.Question, len(r.Questions))
		copy(s.Questions, r.Questions)
	}

	return s
}
