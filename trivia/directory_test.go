package trivia

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codeSequence(codes ...string) func() string {
	i := 0
	return func() string {
		c := codes[min(i, len(codes)-1)]
		i++
		return c
	}
}

func TestRandomCodeShape(t *testing.T) {
	re := regexp.MustCompile(`^[A-Z0-9]{4}$`)
	for i := 0; i < 100; i++ {
		assert.Regexp(t, re, randomCode())
	}
}

func TestCreateRoomAndFindByCode(t *testing.T) {
	d := NewDirectory(30, 2)
	d.newCode = codeSequence("AB12")

	room := d.CreateRoom(ModeAllVsAll, makeQuestions(10))

	assert.Equal(t, "AB12", room.Code)
	assert.Equal(t, StatusWaiting, room.Status)
	assert.Equal(t, 30, room.TimeLeft)
	assert.Same(t, room, d.FindByCode("AB12"))
	assert.Same(t, room, d.FindByCode(" ab12 "))
	assert.Same(t, room, d.Room(room.ID))
	assert.Nil(t, d.FindByCode("ZZZZ"))
	assert.Equal(t, 1, d.Len())
}

func TestCreateRoomRetriesOnCollision(t *testing.T) {
	d := NewDirectory(30, 2)
	d.newCode = codeSequence("AAAA", "AAAA", "AAAA", "BBBB")

	first := d.CreateRoom(ModeAllVsAll, nil)
	second := d.CreateRoom(ModeAllVsAll, nil)

	assert.Equal(t, "AAAA", first.Code)
	assert.Equal(t, "BBBB", second.Code)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestDeleteRoomClearsIndices(t *testing.T) {
	d := NewDirectory(30, 2)
	d.newCode = codeSequence("AAAA", "BBBB", "AAAA")

	room := d.CreateRoom(ModeAllVsAll, nil)
	other := d.CreateRoom(ModeAllVsAll, nil)

	d.BindConnection("c1", room.ID)
	d.BindConnection("c2", room.ID)
	d.BindConnection("c3", other.ID)

	d.DeleteRoom(room.ID)

	assert.Nil(t, d.Room(room.ID))
	assert.Nil(t, d.FindByCode("AAAA"))
	assert.Nil(t, d.RoomForConnection("c1"))
	assert.Nil(t, d.RoomForConnection("c2"))
	assert.Same(t, other, d.RoomForConnection("c3"))
	assert.Equal(t, 1, d.Connections())

	reused := d.CreateRoom(ModeAllVsAll, nil)
	assert.Equal(t, "AAAA", reused.Code, "codes free up when rooms are deleted")
	assert.NotEqual(t, room.ID, reused.ID)
}

func TestBindConnection(t *testing.T) {
	d := NewDirectory(30, 2)
	room := d.CreateRoom(ModeAllVsAll, nil)

	d.BindConnection("c1", "missing")
	assert.Nil(t, d.RoomForConnection("c1"), "binding to an unknown room is ignored")

	d.BindConnection("c1", room.ID)
	require.Same(t, room, d.RoomForConnection("c1"))

	d.UnbindConnection("c1")
	assert.Nil(t, d.RoomForConnection("c1"))
	assert.Zero(t, d.Connections())
}
