/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package trivia is the realtime multiplayer quiz room manager.
//
// How to play
//   - Each player opens a websocket and sends "join" with a room code, a name,
//     an avatar and an age bracket
//   - An unknown code creates a new room with a fresh code and ten random questions
//   - The first player in a room is its host; if the host leaves, the oldest
//     remaining player takes over
//   - Players toggle "ready"; the host may start once at least two players are
//     in and everyone is ready
//   - After a short countdown each question is revealed to the whole room and
//     runs for thirty seconds
//   - Correct answers earn 100 points plus 2 points for every second left above ten
//   - After the last question the room is finished and the final standings are sent
//
// Implementation details:
//   - One Hub goroutine owns every room, so room state needs no locks
//   - Timers are scheduled tasks keyed by room id; a new task replaces the old one
//   - Dropped players are kept for a grace period and may rejoin with their player id
package trivia
