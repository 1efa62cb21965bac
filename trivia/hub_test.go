package trivia

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Seednode/quizbox/questions"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastSettings() Settings {
	s := DefaultSettings()
	s.QuestionTime = 3
	s.QuestionCount = 2
	s.TickInterval = 100 * time.Millisecond
	s.StartDelay = 10 * time.Millisecond
	s.QuestionDelay = 10 * time.Millisecond

	return s
}

func startHub(t *testing.T, settings Settings) (*Hub, string, context.CancelFunc) {
	t.Helper()

	bank, err := questions.NewBank(makeQuestions(5))
	require.NoError(t, err)

	hub := NewHub(settings, bank, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http"), cancel
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

// readUntil skips messages until one of the given type arrives and decodes it
// into T.
func readUntil[T any](t *testing.T, conn *websocket.Conn, eventType string) T {
	t.Helper()

	for {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

		_, data, err := conn.ReadMessage()
		require.NoError(t, err, "waiting for %s", eventType)

		var envelope struct {
			Type string `json:"type"`
		}
		require.NoError(t, json.Unmarshal(data, &envelope))

		if envelope.Type != eventType {
			continue
		}

		var out T
		require.NoError(t, json.Unmarshal(data, &out))

		return out
	}
}

func TestHubPlaysGameOverWebsocket(t *testing.T) {
	hub, url, _ := startHub(t, fastSettings())
	ctx := context.Background()

	ana := dial(t, url)
	require.NoError(t, ana.WriteJSON(ClientMessage{Type: EventJoin, RoomCode: "new", Player: &Profile{Name: "Ana", Avatar: "owl", Age: "18-25"}}))
	anaJoined := readUntil[JoinedMessage](t, ana, EventJoined)
	code := anaJoined.Room.Code

	assert.Len(t, code, 4)
	assert.Equal(t, anaJoined.PlayerID, anaJoined.Room.HostID)

	beto := dial(t, url)
	require.NoError(t, beto.WriteJSON(ClientMessage{Type: EventJoin, RoomCode: strings.ToLower(code), Player: &Profile{Name: "Beto"}}))
	betoJoined := readUntil[JoinedMessage](t, beto, EventJoined)
	assert.Equal(t, code, betoJoined.Room.Code)

	joined := readUntil[PlayerJoinedMessage](t, ana, EventPlayerJoined)
	assert.Equal(t, betoJoined.PlayerID, joined.Player.ID)

	require.NoError(t, ana.WriteJSON(ClientMessage{Type: EventReadyToggle}))
	require.NoError(t, beto.WriteJSON(ClientMessage{Type: EventReadyToggle}))

	require.Eventually(t, func() bool {
		snap, ok := hub.Room(ctx, code)
		return ok && len(snap.Players) == 2 && snap.Players[0].IsReady && snap.Players[1].IsReady
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, ana.WriteJSON(ClientMessage{Type: EventStart}))

	readUntil[GameStartedMessage](t, beto, EventGameStarted)
	revealed := readUntil[QuestionRevealedMessage](t, ana, EventQuestionRevealed)
	assert.Equal(t, 0, revealed.QuestionIndex)

	require.NoError(t, ana.WriteJSON(ClientMessage{Type: EventAnswer, QuestionID: revealed.Question.ID, Answer: pick(1), TimeLeft: 3}))
	ack := readUntil[AnswerAckMessage](t, ana, EventAnswerAck)
	assert.True(t, ack.IsCorrect)
	assert.Equal(t, 100, ack.Score)

	ended := readUntil[GameEndedMessage](t, beto, EventGameEnded)
	require.Len(t, ended.Results, 2)
	assert.Equal(t, anaJoined.PlayerID, ended.Results[0].PlayerID)
	assert.Equal(t, 100, ended.Results[0].Score)

	snap, ok := hub.Room(ctx, code)
	require.True(t, ok)
	assert.Equal(t, StatusFinished, snap.Status)
	assert.Len(t, snap.Questions, 2)

	stats, ok := hub.Stats(ctx)
	require.True(t, ok)
	assert.Equal(t, Stats{Rooms: 1, Players: 2, Connections: 2}, stats)

	require.NoError(t, beto.Close())

	assert.Eventually(t, func() bool {
		snap, ok := hub.Room(ctx, code)
		return ok && len(snap.Players) == 2 && !snap.Players[1].IsConnected
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHubIgnoresMalformedMessages(t *testing.T) {
	hub, url, _ := startHub(t, fastSettings())

	conn := dial(t, url)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	require.NoError(t, conn.WriteJSON(map[string]string{"type": "dance"}))
	require.NoError(t, conn.WriteJSON(ClientMessage{Type: EventJoin, RoomCode: "new", Player: &Profile{Name: "Ana"}}))

	joined := readUntil[JoinedMessage](t, conn, EventJoined)
	assert.NotEmpty(t, joined.PlayerID)

	stats, ok := hub.Stats(context.Background())
	require.True(t, ok)
	assert.Equal(t, 1, stats.Rooms)
}

func TestHubRoomLookup(t *testing.T) {
	hub, _, cancel := startHub(t, fastSettings())

	_, ok := hub.Room(context.Background(), "ZZZZ")
	assert.False(t, ok)

	cancel()

	assert.Eventually(t, func() bool {
		_, ok := hub.Stats(context.Background())
		return !ok
	}, 2*time.Second, 10*time.Millisecond, "a stopped hub answers no queries")
}
