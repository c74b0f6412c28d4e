package sync

import (
	"LaCosa/services/game"
	"LaCosa/services/redis"
	"database/sql"
	"encoding/json"
	"fmt"
)

type SyncManager struct {
	redisClient *redis.RedisClient
	db          *sql.DB
}

// NewSyncManager creates a new instance of the synchronization manager
func NewSyncManager(redisClient *redis.RedisClient, db *sql.DB) *SyncManager {
	return &SyncManager{
		redisClient: redisClient,
		db:          db,
	}
}

// PersistMatchResult writes the terminal result of a match to PostgreSQL.
// The caller must hold the match lock (or own the only reference).
func (sm *SyncManager) PersistMatchResult(m *game.Match) error {
	winners, err := json.Marshal(m.Winners)
	if err != nil {
		return fmt.Errorf("error marshaling winners: %v", err)
	}

	query := `
		UPDATE game_matches
		SET
			win_reason = $1,
			winners = $2,
			finished_at = NOW()
		WHERE name = $3
	`
	_, err = sm.db.Exec(query, m.WinReason, winners, m.Name)
	if err != nil {
		return fmt.Errorf("error persisting match result in PostgreSQL: %v", err)
	}
	return nil
}

// CleanupMatchData drops the volatile Redis state of a finished match and
// detaches every seated player's presence record.
func (sm *SyncManager) CleanupMatchData(m *game.Match) error {
	if err := sm.redisClient.CleanupMatchKeys(m.Name); err != nil {
		return fmt.Errorf("error cleaning match keys: %v", err)
	}
	for _, p := range m.Players {
		if err := sm.redisClient.DeletePlayerPresence(p.Name); err != nil {
			return fmt.Errorf("error cleaning presence of %s: %v", p.Name, err)
		}
	}
	return nil
}

// FinishMatch is the full teardown of a finished match: persist the result,
// clean Redis and drop the in-memory aggregate from the registry.
func (sm *SyncManager) FinishMatch(m *game.Match, gm *game.MatchManager) error {
	if err := sm.PersistMatchResult(m); err != nil {
		return err
	}
	if err := sm.CleanupMatchData(m); err != nil {
		return err
	}
	gm.Remove(m.Name)
	return nil
}
