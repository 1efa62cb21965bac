/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package trivia

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/Seednode/quizbox/questions"
	"github.com/google/uuid"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 4
)

// Directory indexes live rooms by id, by code and by bound connection. It is
// owned by the hub loop and is not safe for concurrent use.
type Directory struct {
	rooms map[string]*Room  // room id -> room
	codes map[string]string // code -> room id
	conns map[string]string // connection id -> room id

	timeLimit  int
	minPlayers int

	newCode func() string
	now     func() time.Time
}

func NewDirectory(timeLimit, minPlayers int) *Directory {
	return &Directory{
		rooms:      make(map[string]*Room),
		codes:      make(map[string]string),
		conns:      make(map[string]string),
		timeLimit:  timeLimit,
		minPlayers: minPlayers,
		newCode:    randomCode,
		now:        time.Now,
	}
}

// randomCode returns a crypto-random uppercase alphanumeric room code.
func randomCode() string {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		panic("crypto/rand failure: " + err.Error())
	}

	out := make([]byte, codeLength)
	for i := range out {
		out[i] = codeAlphabet[int(buf[i])%len(codeAlphabet)]
	}

	return string(out)
}

// NormalizeCode upper-cases and trims a user-entered room code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CreateRoom registers a new room under a code unused by any live room.
func (d *Directory) CreateRoom(mode GameMode, qs []questions.Question) *Room {
	code := d.newCode()
	for {
		if _, taken := d.codes[code]; !taken {
			break
		}
		code = d.newCode()
	}

	room := newRoom(uuid.NewString(), code, mode, qs, d.timeLimit, d.minPlayers, d.now())

	d.rooms[room.ID] = room
	d.codes[code] = room.ID

	return room
}

func (d *Directory) FindByCode(code string) *Room {
	id, ok := d.codes[NormalizeCode(code)]
	if !ok {
		return nil
	}

	return d.rooms[id]
}

func (d *Directory) Room(roomID string) *Room {
	return d.rooms[roomID]
}

// RoomForConnection resolves the room a connection is bound to.
func (d *Directory) RoomForConnection(connID string) *Room {
	id, ok := d.conns[connID]
	if !ok {
		return nil
	}

	return d.rooms[id]
}

func (d *Directory) BindConnection(connID, roomID string) {
	if _, ok := d.rooms[roomID]; !ok {
		return
	}

	d.conns[connID] = roomID
}

func (d *Directory) UnbindConnection(connID string) {
	delete(d.conns, connID)
}

// DeleteRoom removes the room and every index entry pointing at it.
func (d *Directory) DeleteRoom(roomID string) {
	room, ok := d.rooms[roomID]
	if !ok {
		return
	}

	delete(d.rooms, roomID)

	if d.codes[room.Code] == roomID {
		delete(d.codes, room.Code)
	}

	for conn, id := range d.conns {
		if id == roomID {
			delete(d.conns, conn)
		}
	}
}

// Rooms returns the live rooms in no particular order.
func (d *Directory) Rooms() []*Room {
	out := make([]*Room, 0, len(d.rooms))
	for _, r := range d.rooms {
		out = append(out, r)
	}

	return out
}

func (d *Directory) Len() int {
	return len(d.rooms)
}

// Connections returns the number of bound connections.
func (d *Directory) Connections() int {
	return len(d.conns)
}
