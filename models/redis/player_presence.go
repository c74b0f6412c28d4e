package redis

import "time"

// PlayerPresence tracks which match a connected player is attached to, so
// reconnections can route the socket back into the right room.
type PlayerPresence struct {
	Username  string    `json:"username"`
	MatchName string    `json:"match_name"`
	Connected bool      `json:"connected"`
	LastSeen  time.Time `json:"last_seen"`
}
