/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package trivia

import "time"

// Profile is the self-description a client sends on join.
type Profile struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Age    string `json:"age"`
}

// Answer is one recorded submission for one question.
type Answer struct {
	QuestionID string
	Choice     int
	Correct    bool
	Points     int
	TimeBonus  int
}

// Player is one participant of a room. The room owns it.
type Player struct {
	ID        string
	Token     string
	ConnID    string
	Profile   Profile
	Score     int
	Ready     bool
	Connected bool

	DisconnectedAt time.Time

	answers []Answer
}

func newPlayer(id, token string, profile Profile, connID string) *Player {
	return &Player{
		ID:        id,
		Token:     token,
		ConnID:    connID,
		Profile:   profile,
		Connected: true,
	}
}

// AddScore adds non-negative points; scores never decrease.
func (p *Player) AddScore(points int) {
	if points > 0 {
		p.Score += points
	}
}

// AnswerFor returns the recorded answer for questionID, if any.
func (p *Player) AnswerFor(questionID string) (Answer, bool) {
	for _, a := range p.answers {
		if a.QuestionID == questionID {
			return a, true
		}
	}

	return Answer{}, false
}

func (p *Player) record(a Answer) {
	p.answers = append(p.answers, a)
}

func (p *Player) disconnect(at time.Time) {
	p.Connected = false
	p.ConnID = ""
	p.DisconnectedAt = at
}

func (p *Player) reconnect(connID string) {
	p.Connected = true
	p.ConnID = connID
	p.DisconnectedAt = time.Time{}
}

func (p *Player) snapshot() PlayerSnapshot {
	return PlayerSnapshot{
		ID:          p.ID,
		Name:        p.Profile.Name,
		Avatar:      p.Profile.Avatar,
		Age:         p.Profile.Age,
		Score:       p.Score,
		IsReady:     p.Ready,
		IsConnected: p.Connected,
	}
}

func (p *Player) result() Result {
	r := Result{
		PlayerID:     p.ID,
		PlayerName:   p.Profile.Name,
		Score:        p.Score,
		TotalAnswers: len(p.answers),
	}

	for _, a := range p.answers {
		if a.Correct {
			r.CorrectAnswers++
		}
		r.TimeBonus += a.TimeBonus
	}

	return r
}
