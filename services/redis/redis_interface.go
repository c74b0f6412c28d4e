package redis

import (
	redis_models "LaCosa/models/redis"
	redis_utils "LaCosa/services/redis/utils"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Chat history is capped so a chatty match cannot grow without bound.
const maxChatMessages = 200

// RedisClient handles Redis operations
type RedisClient struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(Addr string, DB int) *RedisClient {
	var client *redis.Client
	if Addr != "localhost:6379" {
		log.Println("Connecting to remote Redis...")
		opt, err := redis.ParseURL(Addr)
		if err != nil {
			panic("Error parsing Redis URL")
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: Addr,
			DB:   DB,
		})
	}
	return &RedisClient{
		Client: client,
		Ctx:    context.Background(),
	}
}

// SaveChatMessage appends a message to the match chat log.
// Key format: "match:{name}:chat"
func (rc *RedisClient) SaveChatMessage(matchName string, msg *redis_models.ChatMessage) error {
	key := redis_utils.FormatChatKey(matchName)
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("error marshaling chat message: %v", err)
	}
	pipe := rc.Client.Pipeline()
	pipe.RPush(rc.Ctx, key, data)
	pipe.LTrim(rc.Ctx, key, -maxChatMessages, -1)
	pipe.Expire(rc.Ctx, key, 24*time.Hour)
	_, err = pipe.Exec(rc.Ctx)
	if err != nil {
		return fmt.Errorf("error saving chat message: %v", err)
	}
	return nil
}

// GetChatMessages retrieves the whole chat log of a match, oldest first.
// Key format: "match:{name}:chat"
func (rc *RedisClient) GetChatMessages(matchName string) ([]redis_models.ChatMessage, error) {
	key := redis_utils.FormatChatKey(matchName)
	raw, err := rc.Client.LRange(rc.Ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("error getting chat messages: %v", err)
	}
	messages := make([]redis_models.ChatMessage, 0, len(raw))
	for _, item := range raw {
		var msg redis_models.ChatMessage
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, fmt.Errorf("error unmarshaling chat message: %v", err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// SavePlayerPresence stores which match a player is attached to.
// Key format: "player:{username}:presence"
// TTL: 24 hours
func (rc *RedisClient) SavePlayerPresence(presence *redis_models.PlayerPresence) error {
	key := redis_utils.FormatPresenceKey(presence.Username)
	data, err := json.Marshal(presence)
	if err != nil {
		return fmt.Errorf("error marshaling presence data: %v", err)
	}
	return rc.Client.Set(rc.Ctx, key, data, 24*time.Hour).Err()
}

// GetPlayerPresence retrieves a player's presence record.
// Returns nil without error when the player has no presence key.
func (rc *RedisClient) GetPlayerPresence(username string) (*redis_models.PlayerPresence, error) {
	key := redis_utils.FormatPresenceKey(username)
	data, err := rc.Client.Get(rc.Ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting presence data: %v", err)
	}
	var presence redis_models.PlayerPresence
	if err := json.Unmarshal(data, &presence); err != nil {
		return nil, fmt.Errorf("error unmarshaling presence data: %v", err)
	}
	return &presence, nil
}

// DeletePlayerPresence removes a player's presence record.
func (rc *RedisClient) DeletePlayerPresence(username string) error {
	key := redis_utils.FormatPresenceKey(username)
	if err := rc.Client.Del(rc.Ctx, key).Err(); err != nil {
		return fmt.Errorf("error deleting presence data: %v", err)
	}
	return nil
}

// GetPlayerCurrentMatch returns the match a player is attached to, or ""
// when the player is not in any match.
func (rc *RedisClient) GetPlayerCurrentMatch(username string) (string, error) {
	presence, err := rc.GetPlayerPresence(username)
	if err != nil {
		return "", fmt.Errorf("error getting player's current match: %v", err)
	}
	if presence == nil {
		return "", nil
	}
	return presence.MatchName, nil
}

// LogAction appends one entry to the per-match action log.
// Key format: "match:{name}:actions"
func (rc *RedisClient) LogAction(matchName string, entry *redis_models.ActionEntry) error {
	key := redis_utils.FormatActionLogKey(matchName)
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("error marshaling action entry: %v", err)
	}
	pipe := rc.Client.Pipeline()
	pipe.RPush(rc.Ctx, key, data)
	pipe.Expire(rc.Ctx, key, 24*time.Hour)
	_, err = pipe.Exec(rc.Ctx)
	if err != nil {
		return fmt.Errorf("error logging action: %v", err)
	}
	return nil
}

// GetActionLog retrieves the full action log of a match, oldest first.
func (rc *RedisClient) GetActionLog(matchName string) ([]redis_models.ActionEntry, error) {
	key := redis_utils.FormatActionLogKey(matchName)
	raw, err := rc.Client.LRange(rc.Ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("error getting action log: %v", err)
	}
	entries := make([]redis_models.ActionEntry, 0, len(raw))
	for _, item := range raw {
		var entry redis_models.ActionEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			return nil, fmt.Errorf("error unmarshaling action entry: %v", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
