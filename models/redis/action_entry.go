package redis

import "time"

// ActionEntry is one line of the per-match action log. The log mirrors the
// events broadcast to the room so late joiners and spectators can replay
// what happened.
type ActionEntry struct {
	Event     string                 `json:"event"`
	Payload   map[string]interface{} `json:"payload"`
	Timestamp time.Time              `json:"timestamp"`
}
