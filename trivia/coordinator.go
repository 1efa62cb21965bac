/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package trivia

import (
	"crypto/subtle"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Seednode/quizbox/questions"
	"github.com/rs/zerolog"
)

// Sender delivers one outbound message to one connection. Delivery is best
// effort.
type Sender interface {
	Send(connID string, msg any)
}

// Coordinator interprets client events against the room directory and fans
// out the results. Every method must run on the hub loop.
type Coordinator struct {
	settings  Settings
	dir       *Directory
	source    questions.Source
	sender    Sender
	scheduler Scheduler
	log       zerolog.Logger
	now       func() time.Time
}

func NewCoordinator(settings Settings, dir *Directory, source questions.Source, sender Sender, scheduler Scheduler, logger zerolog.Logger) *Coordinator {
	return &Coordinator{
		settings:  settings,
		dir:       dir,
		source:    source,
		sender:    sender,
		scheduler: scheduler,
		log:       logger,
		now:       time.Now,
	}
}

func roomKey(roomID string) string     { return "room:" + roomID }
func playerKey(playerID string) string { return "player:" + playerID }

// Handle routes one inbound event.
func (c *Coordinator) Handle(connID string, msg ClientMessage) {
	switch msg.Type {
	case EventJoin:
		c.Join(connID, msg)
	case EventLeave:
		c.Leave(connID)
	case EventReadyToggle:
		c.ToggleReady(connID)
	case EventStart:
		c.Start(connID)
	case EventAnswer:
		c.Answer(connID, msg)
	default:
		c.log.Debug().Str("conn", connID).Str("type", msg.Type).Msg("ignoring unknown event")
	}
}

// Join places the connection in the room named by msg.RoomCode, creating a
// fresh room when the code matches no live room.
func (c *Coordinator) Join(connID string, msg ClientMessage) {
	code := NormalizeCode(msg.RoomCode)
	if code == "" {
		c.sendError(connID, "A room code is required.")
		return
	}

	if bound := c.dir.RoomForConnection(connID); bound != nil {
		p := bound.PlayerByConnection(connID)
		switch {
		case p == nil:
			c.dir.UnbindConnection(connID)
		case bound.Code == code:
			c.touch(bound)
			c.sender.Send(connID, JoinedMessage{Type: EventJoined, Room: bound.Snapshot(), PlayerID: p.ID, Token: p.Token})
			return
		default:
			c.removePlayer(bound, p)
		}
	}

	room := c.dir.FindByCode(code)

	if room != nil && msg.PlayerID != "" {
		p := room.Player(msg.PlayerID)
		if p != nil && !p.Connected && subtle.ConstantTimeCompare([]byte(p.Token), []byte(msg.Token)) == 1 {
			c.reconnect(room, p, connID)
			return
		}
	}

	var profile Profile
	if msg.Player != nil {
		profile = *msg.Player
	}
	profile.Name = strings.TrimSpace(profile.Name)

	if n := utf8.RuneCountInString(profile.Name); n < c.settings.MinNameLength || n > c.settings.MaxNameLength {
		c.sendError(connID, fmt.Sprintf("Player names must be between %d and %d characters.", c.settings.MinNameLength, c.settings.MaxNameLength))
		return
	}

	if room == nil {
		room = c.dir.CreateRoom(ModeAllVsAll, c.source.Sample(c.settings.QuestionCount))

		c.log.Info().Str("room", room.Code).Int("questions", room.TotalQuestions()).Msg("GAMES: Created room")
	} else if c.settings.MaxPlayers > 0 && len(room.Players) >= c.settings.MaxPlayers {
		c.sendError(connID, "This room is full.")
		return
	}

	player := room.AddPlayer(profile, connID)
	c.dir.BindConnection(connID, room.ID)
	c.touch(room)

	c.sender.Send(connID, JoinedMessage{Type: EventJoined, Room: room.Snapshot(), PlayerID: player.ID, Token: player.Token})
	c.broadcastExcept(room, connID, PlayerJoinedMessage{Type: EventPlayerJoined, Player: player.snapshot()})
	c.broadcastRoom(room)

	c.log.Info().Str("room", room.Code).Str("player", player.Profile.Name).Msg("GAMES: Player joined")
}

func (c *Coordinator) reconnect(room *Room, p *Player, connID string) {
	c.scheduler.Cancel(playerKey(p.ID))

	p.reconnect(connID)
	c.dir.BindConnection(connID, room.ID)
	c.touch(room)

	c.sender.Send(connID, JoinedMessage{Type: EventJoined, Room: room.Snapshot(), PlayerID: p.ID, Token: p.Token})
	c.broadcastRoom(room)

	c.log.Info().Str("room", room.Code).Str("player", p.Profile.Name).Msg("GAMES: Player reconnected")
}

// Leave removes the caller from its room.
func (c *Coordinator) Leave(connID string) {
	room, p := c.resolve(connID)
	if p == nil {
		return
	}

	c.removePlayer(room, p)

	c.sender.Send(connID, LeftMessage{Type: EventLeft})
}

// Disconnect handles a dropped transport. The player is kept for the
// reconnect grace period, then removed as if it had left.
func (c *Coordinator) Disconnect(connID string) {
	room, p := c.resolve(connID)
	if p == nil {
		c.dir.UnbindConnection(connID)
		return
	}

	if c.settings.ReconnectGrace <= 0 {
		c.removePlayer(room, p)
		return
	}

	c.dir.UnbindConnection(connID)
	p.disconnect(c.now())
	c.touch(room)

	c.broadcastRoom(room)

	roomID, playerID := room.ID, p.ID
	c.scheduler.Schedule(playerKey(playerID), c.settings.ReconnectGrace, func() {
		c.expire(roomID, playerID)
	})

	c.log.Info().Str("room", room.Code).Str("player", p.Profile.Name).Msg("GAMES: Player disconnected")
}

func (c *Coordinator) expire(roomID, playerID string) {
	room := c.dir.Room(roomID)
	if room == nil {
		return
	}

	p := room.Player(playerID)
	if p == nil || p.Connected {
		return
	}

	c.removePlayer(room, p)
}

// ToggleReady flips the caller's ready flag.
func (c *Coordinator) ToggleReady(connID string) {
	room, p := c.resolve(connID)
	if p == nil {
		return
	}

	room.SetReady(p.ID, !p.Ready)
	c.touch(room)

	c.broadcast(room, ReadyChangedMessage{Type: EventReadyChanged, PlayerID: p.ID, Ready: p.Ready})
	c.broadcastRoom(room)
}

// Start begins the game if the caller is host and every player is ready.
func (c *Coordinator) Start(connID string) {
	room, p := c.resolve(connID)
	if p == nil {
		return
	}

	if room.HostID != p.ID {
		c.sendError(connID, "Only the host can start the game.")
		return
	}

	if room.Status != StatusWaiting {
		c.sendError(connID, "The game has already started.")
		return
	}

	if !room.CanStart() {
		c.sendError(connID, fmt.Sprintf("The game cannot start yet. At least %d players are needed and everyone must be ready.", c.settings.MinPlayers))
		return
	}

	room.Start()
	c.touch(room)

	c.broadcastRoom(room)
	c.broadcast(room, GameStartedMessage{Type: EventGameStarted, Room: room.Snapshot()})

	roomID := room.ID
	c.scheduler.Schedule(roomKey(roomID), c.settings.StartDelay, func() {
		c.revealQuestion(roomID)
	})

	c.log.Info().Str("room", room.Code).Int("players", len(room.Players)).Msg("GAMES: Game started")
}

// Answer scores a submission for the open question. Anything else is a
// stale submission and is dropped without a reply.
func (c *Coordinator) Answer(connID string, msg ClientMessage) {
	room, p := c.resolve(connID)
	if p == nil {
		return
	}

	q := room.CurrentQuestion()
	if room.Status != StatusPlaying || q == nil || !room.Open || q.ID != msg.QuestionID {
		c.log.Debug().Str("room", room.Code).Str("question", msg.QuestionID).Msg("dropping stale answer")
		return
	}

	if msg.Answer == nil {
		c.log.Debug().Str("room", room.Code).Str("question", q.ID).Msg("dropping answer without a choice")
		return
	}

	if _, answered := p.AnswerFor(q.ID); answered {
		return
	}

	choice := *msg.Answer
	correct := choice == q.CorrectAnswer
	points, bonus := c.settings.Score(correct, msg.TimeLeft)

	room.ApplyAnswer(p.ID, points)
	p.record(Answer{
		QuestionID: q.ID,
		Choice:     choice,
		Correct:    correct,
		Points:     points,
		TimeBonus:  bonus,
	})
	c.touch(room)

	c.sender.Send(connID, AnswerAckMessage{Type: EventAnswerAck, IsCorrect: correct, Score: points, TimeBonus: bonus})

	c.log.Debug().Str("room", room.Code).Str("player", p.Profile.Name).Bool("correct", correct).Int("points", points).Msg("GAMES: Answer received")
}

func (c *Coordinator) revealQuestion(roomID string) {
	room := c.dir.Room(roomID)
	if room == nil || room.Status != StatusPlaying || len(room.Players) == 0 {
		return
	}

	q := room.CurrentQuestion()
	if q == nil {
		c.endGame(room)
		return
	}

	room.Open = true
	c.touch(room)

	c.broadcast(room, QuestionRevealedMessage{
		Type:          EventQuestionRevealed,
		Question:      q.Public(),
		QuestionIndex: room.QuestionIndex,
		TimeLeft:      room.TimeLeft,
	})

	c.scheduleTick(room)
}

func (c *Coordinator) scheduleTick(room *Room) {
	roomID, index := room.ID, room.QuestionIndex

	c.scheduler.Schedule(roomKey(roomID), c.settings.TickInterval, func() {
		c.tick(roomID, index)
	})
}

func (c *Coordinator) tick(roomID string, index int) {
	room := c.dir.Room(roomID)
	if room == nil || room.Status != StatusPlaying || !room.Open || room.QuestionIndex != index || len(room.Players) == 0 {
		return
	}

	room.TimeLeft--
	if room.TimeLeft > 0 {
		c.scheduleTick(room)
		return
	}

	room.TimeLeft = 0
	c.endQuestion(room)
}

func (c *Coordinator) endQuestion(room *Room) {
	q := room.CurrentQuestion()
	if q == nil {
		return
	}

	room.Open = false

	outcomes := make([]PlayerOutcome, 0, len(room.Players))
	for _, p := range room.Players {
		a, answered := p.AnswerFor(q.ID)
		outcomes = append(outcomes, PlayerOutcome{
			PlayerID:  p.ID,
			Answered:  answered,
			IsCorrect: a.Correct,
			Score:     p.Score,
		})
	}

	c.broadcast(room, QuestionEndedMessage{
		Type:          EventQuestionEnded,
		QuestionID:    q.ID,
		CorrectAnswer: q.CorrectAnswer,
		PerPlayer:     outcomes,
	})

	roomID, index := room.ID, room.QuestionIndex
	c.scheduler.Schedule(roomKey(roomID), c.settings.QuestionDelay, func() {
		c.advance(roomID, index)
	})
}

func (c *Coordinator) advance(roomID string, index int) {
	room := c.dir.Room(roomID)
	if room == nil || room.Status != StatusPlaying || room.QuestionIndex != index {
		return
	}

	if room.AdvanceQuestion() {
		c.revealQuestion(roomID)
		return
	}

	c.endGame(room)
}

func (c *Coordinator) endGame(room *Room) {
	if room.Status != StatusFinished {
		room.Finish()
	}
	c.touch(room)

	results := make([]Result, len(room.Results))
	copy(results, room.Results)

	c.broadcast(room, GameEndedMessage{Type: EventGameEnded, Results: results})
	c.broadcastRoom(room)

	c.log.Info().Str("room", room.Code).Msg("GAMES: Game finished")
}

// Reap deletes rooms idle since before now minus the session timeout and
// returns how many were removed.
func (c *Coordinator) Reap(now time.Time) int {
	if c.settings.SessionTimeout <= 0 {
		return 0
	}

	cutoff := now.Add(-c.settings.SessionTimeout)
	reaped := 0

	for _, room := range c.dir.Rooms() {
		if !room.LastActive.Before(cutoff) {
			continue
		}

		c.broadcast(room, ErrorMessage{Type: EventError, Message: "This session has expired."})
		c.deleteRoom(room)
		reaped++

		c.log.Info().Str("room", room.Code).Msg("GAMES: Reaped idle room")
	}

	return reaped
}

// resolve finds the caller's room and player. A binding whose player is gone
// is dropped.
func (c *Coordinator) resolve(connID string) (*Room, *Player) {
	room := c.dir.RoomForConnection(connID)
	if room == nil {
		return nil, nil
	}

	p := room.PlayerByConnection(connID)
	if p == nil {
		c.dir.UnbindConnection(connID)
		return nil, nil
	}

	return room, p
}

func (c *Coordinator) removePlayer(room *Room, p *Player) {
	c.scheduler.Cancel(playerKey(p.ID))

	if p.ConnID != "" {
		c.dir.UnbindConnection(p.ConnID)
	}

	room.RemovePlayer(p.ID)
	c.touch(room)

	c.log.Info().Str("room", room.Code).Str("player", p.Profile.Name).Msg("GAMES: Player left")

	if len(room.Players) == 0 {
		c.deleteRoom(room)

		c.log.Info().Str("room", room.Code).Msg("GAMES: Deleted empty room")
		return
	}

	c.broadcast(room, PlayerLeftMessage{Type: EventPlayerLeft, PlayerID: p.ID})
	c.broadcastRoom(room)
}

func (c *Coordinator) deleteRoom(room *Room) {
	c.scheduler.Cancel(roomKey(room.ID))

	for _, p := range room.Players {
		c.scheduler.Cancel(playerKey(p.ID))
	}

	c.dir.DeleteRoom(room.ID)
}

func (c *Coordinator) touch(room *Room) {
	room.LastActive = c.now()
}

func (c *Coordinator) sendError(connID, message string) {
	c.sender.Send(connID, ErrorMessage{Type: EventError, Message: message})
}

func (c *Coordinator) broadcastRoom(room *Room) {
	c.broadcast(room, RoomUpdatedMessage{Type: EventRoomUpdated, Room: room.Snapshot()})
}

func (c *Coordinator) broadcast(room *Room, msg any) {
	c.broadcastExcept(room, "", msg)
}

func (c *Coordinator) broadcastExcept(room *Room, except string, msg any) {
	for _, p := range room.Players {
		if !p.Connected || p.ConnID == "" || p.ConnID == except {
			continue
		}

		c.sender.Send(p.ConnID, msg)
	}
}
