package postgres

import (
	"time"

	"gorm.io/datatypes"
)

/*
 * 'GameMatch' defines the persistent record of a match. The live state of
 * the ring lives in memory while the match runs; this row only tracks the
 * lobby metadata and, once the match ends, the final result.
 */
type GameMatch struct {
	Name         string    `gorm:"primaryKey;size:50;not null"`
	HostUsername string    `gorm:"size:50;not null;index:idx_game_matches_host"`
	PasswordHash string    `gorm:"size:255"` // empty for open matches
	MinPlayers   int       `gorm:"default:4"`
	MaxPlayers   int       `gorm:"default:12"`
	HasStarted   bool      `gorm:"default:false;index:idx_game_matches_active"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Result columns, written once when the match reaches its terminal state.
	FinishedAt time.Time
	WinReason  string         `gorm:"size:50"`
	Winners    datatypes.JSON // JSON array of usernames

	// Relationships
	Host    User           `gorm:"foreignKey:HostUsername"`
	Players []*MatchPlayer `gorm:"foreignKey:MatchName;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

/*
 * 'MatchPlayer' is one seat of a match, kept for the history screen.
 */
type MatchPlayer struct {
	MatchName string `gorm:"primaryKey;size:50;not null"`
	Username  string `gorm:"primaryKey;size:50;not null"`
	Position  int    `gorm:"default:0"`
	IsHost    bool   `gorm:"default:false"`

	User User `gorm:"foreignKey:Username"`
}
