/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package trivia

import "github.com/Seednode/quizbox/questions"

// Client -> server event types.
const (
	EventJoin        = "join"
	EventLeave       = "leave"
	EventReadyToggle = "ready-toggle"
	EventStart       = "start"
	EventAnswer      = "answer"
)

// Server -> client event types.
const (
	EventJoined           = "joined"
	EventLeft             = "left"
	EventPlayerJoined     = "player-joined"
	EventPlayerLeft       = "player-left"
	EventReadyChanged     = "ready-changed"
	EventRoomUpdated      = "room-updated"
	EventGameStarted      = "game-started"
	EventQuestionRevealed = "question-revealed"
	EventQuestionEnded    = "question-ended"
	EventGameEnded        = "game-ended"
	EventAnswerAck        = "answer-ack"
	EventError            = "error"
)

// ClientMessage is every inbound event; fields are used per Type.
type ClientMessage struct {
	Type       string   `json:"type"`
	RoomCode   string   `json:"roomCode,omitempty"`   // join
	Player     *Profile `json:"player,omitempty"`     // join
	PlayerID   string   `json:"playerId,omitempty"`   // join, to reclaim a disconnected player
	Token      string   `json:"token,omitempty"`      // join, proves ownership of PlayerID
	QuestionID string   `json:"questionId,omitempty"` // answer
	Answer     *int     `json:"answer,omitempty"`     // answer
	TimeLeft   int      `json:"timeLeft"`             // answer
}

// PlayerSnapshot is the public view of a Player.
type PlayerSnapshot struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Avatar      string `json:"avatar"`
	Age         string `json:"age"`
	Score       int    `json:"score"`
	IsReady     bool   `json:"isReady"`
	IsConnected bool   `json:"isConnected"`
}

// Result is one row of the final standings.
type Result struct {
	PlayerID       string `json:"playerId"`
	PlayerName     string `json:"playerName"`
	Score          int    `json:"score"`
	CorrectAnswers int    `json:"correctAnswers"`
	TotalAnswers   int    `json:"totalAnswers"`
	TimeBonus      int    `json:"timeBonus"`
}

// RoomSnapshot is the public view of a Room. Unrevealed questions are never
// included; the full question list appears only once the game is finished.
type RoomSnapshot struct {
	ID              string                    `json:"id"`
	Code            string                    `json:"code"`
	HostID          string                    `json:"hostId"`
	Players         []PlayerSnapshot          `json:"players"`
	GameMode        GameMode                  `json:"gameMode"`
	Status          Status                    `json:"status"`
	CurrentQuestion *questions.PublicQuestion `json:"currentQuestion,omitempty"`
	QuestionIndex   int                       `json:"questionIndex"`
	TotalQuestions  int                       `json:"totalQuestions"`
	TimeLeft        int                       `json:"timeLeft"`
	Results         []Result                  `json:"results"`
	Questions       []questions.Question      `json:"questions,omitempty"`
}

// JoinedMessage is sent only to the joining connection. Token is the secret
// that reclaims the seat after a disconnect.
type JoinedMessage struct {
	Type     string       `json:"type"`
	Room     RoomSnapshot `json:"room"`
	PlayerID string       `json:"playerId"`
	Token    string       `json:"token"`
}

type LeftMessage struct {
	Type string `json:"type"`
}

type PlayerJoinedMessage struct {
	Type   string         `json:"type"`
	Player PlayerSnapshot `json:"player"`
}

type PlayerLeftMessage struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
}

type ReadyChangedMessage struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
	Ready    bool   `json:"ready"`
}

type RoomUpdatedMessage struct {
	Type string       `json:"type"`
	Room RoomSnapshot `json:"room"`
}

type GameStartedMessage struct {
	Type string       `json:"type"`
	Room RoomSnapshot `json:"room"`
}

type QuestionRevealedMessage struct {
	Type          string                   `json:"type"`
	Question      questions.PublicQuestion `json:"question"`
	QuestionIndex int                      `json:"questionIndex"`
	TimeLeft      int                      `json:"timeLeft"`
}

// PlayerOutcome is one player's line in a question summary.
type PlayerOutcome struct {
	PlayerID  string `json:"playerId"`
	Answered  bool   `json:"answered"`
	IsCorrect bool   `json:"isCorrect"`
	Score     int    `json:"score"`
}

type QuestionEndedMessage struct {
	Type          string          `json:"type"`
	QuestionID    string          `json:"questionId"`
	CorrectAnswer int             `json:"correctAnswer"`
	PerPlayer     []PlayerOutcome `json:"perPlayer"`
}

type GameEndedMessage struct {
	Type    string   `json:"type"`
	Results []Result `json:"results"`
}

type AnswerAckMessage struct {
	Type      string `json:"type"`
	IsCorrect bool   `json:"isCorrect"`
	Score     int    `json:"score"`
	TimeBonus int    `json:"timeBonus"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
