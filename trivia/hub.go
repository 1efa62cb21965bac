/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package trivia

import (
	"context"
	"time"

	"github.com/Seednode/quizbox/questions"
	"github.com/rs/zerolog"
)

// Hub runs every room on a single goroutine. Inbound events, scheduled tasks
// and queries are all posted to its inbox and run to completion in order.
type Hub struct {
	settings Settings

	inbox chan func()
	done  chan struct{}

	clients map[string]*Client // connection id -> client, loop-owned

	dir   *Directory
	sched *loopScheduler
	coord *Coordinator

	log zerolog.Logger
}

// Stats summarizes the live state of a hub.
type Stats struct {
	Rooms       int `json:"rooms"`
	Players     int `json:"players"`
	Connections int `json:"connections"`
	Timers      int `json:"timers"`
}

func NewHub(settings Settings, source questions.Source, logger zerolog.Logger) *Hub {
	h := &Hub{
		settings: settings,
		inbox:    make(chan func(), 256),
		done:     make(chan struct{}),
		clients:  make(map[string]*Client),
		log:      logger,
	}

	h.dir = NewDirectory(settings.QuestionTime, settings.MinPlayers)
	h.sched = newLoopScheduler(func(task func()) { h.post(task) })
	h.coord = NewCoordinator(settings, h.dir, source, h, h.sched, logger)

	return h
}

// Run processes the inbox until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer h.shutdown()

	var reap <-chan time.Time
	if h.settings.SessionTimeout > 0 {
		ticker := time.NewTicker(h.settings.SessionTimeout / 2)
		defer ticker.Stop()
		reap = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case task := <-h.inbox:
			h.run(task)
		case now := <-reap:
			h.run(func() { h.coord.Reap(now) })
		}
	}
}

func (h *Hub) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error().Interface("panic", r).Msg("event handler failed")
		}
	}()

	task()
}

func (h *Hub) shutdown() {
	close(h.done)
	h.sched.stop()

	for id, c := range h.clients {
		delete(h.clients, id)
		close(c.send)
	}
}

func (h *Hub) post(task func()) bool {
	select {
	case h.inbox <- task:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) postContext(ctx context.Context, task func()) bool {
	select {
	case h.inbox <- task:
		return true
	case <-h.done:
		return false
	case <-ctx.Done():
		return false
	}
}

// Send implements Sender. A client whose buffer is full is dropped.
func (h *Hub) Send(connID string, msg any) {
	c, ok := h.clients[connID]
	if !ok {
		return
	}

	select {
	case c.send <- msg:
	default:
		h.log.Warn().Str("conn", connID).Msg("dropping slow client")
		delete(h.clients, connID)
		close(c.send)
	}
}

func (h *Hub) register(c *Client) bool {
	return h.post(func() {
		h.clients[c.id] = c
	})
}

func (h *Hub) unregister(c *Client) {
	h.post(func() {
		if current, ok := h.clients[c.id]; ok && current == c {
			delete(h.clients, c.id)
			close(c.send)
		}

		h.coord.Disconnect(c.id)
	})
}

func (h *Hub) dispatch(c *Client, msg ClientMessage) {
	h.post(func() {
		if _, ok := h.clients[c.id]; !ok {
			return
		}

		h.coord.Handle(c.id, msg)
	})
}

// Room returns the public snapshot of the live room with the given code.
func (h *Hub) Room(ctx context.Context, code string) (RoomSnapshot, bool) {
	type reply struct {
		snap RoomSnapshot
		ok   bool
	}

	replies := make(chan reply, 1)

	posted := h.postContext(ctx, func() {
		room := h.dir.FindByCode(code)
		if room == nil {
			replies <- reply{}
			return
		}
		replies <- reply{snap: room.Snapshot(), ok: true}
	})
	if !posted {
		return RoomSnapshot{}, false
	}

	select {
	case r := <-replies:
		return r.snap, r.ok
	case <-h.done:
		return RoomSnapshot{}, false
	case <-ctx.Done():
		return RoomSnapshot{}, false
	}
}

// Stats reports room, player, connection and timer counts.
func (h *Hub) Stats(ctx context.Context) (Stats, bool) {
	replies := make(chan Stats, 1)

	posted := h.postContext(ctx, func() {
		s := Stats{
			Rooms:       h.dir.Len(),
			Connections: h.dir.Connections(),
			Timers:      h.sched.pendingCount(),
		}
		for _, r := range h.dir.Rooms() {
			s.Players += len(r.Players)
		}
		replies <- s
	})
	if !posted {
		return Stats{}, false
	}

	select {
	case s := <-replies:
		return s, true
	case <-h.done:
		return Stats{}, false
	case <-ctx.Done():
		return Stats{}, false
	}
}
