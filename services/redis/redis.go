package redis

import (
	redis_utils "LaCosa/services/redis/utils"
	"fmt"
)

// CleanupKeys removes the specified keys from Redis
func (rc *RedisClient) CleanupKeys(keys []string) error {
	for _, key := range keys {
		if err := rc.Client.Del(rc.Ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to cleanup Redis key %s: %v", key, err)
		}
	}
	return nil
}

// CleanupMatchKeys drops every Redis key belonging to a finished match.
func (rc *RedisClient) CleanupMatchKeys(matchName string) error {
	return rc.CleanupKeys([]string{
		redis_utils.FormatChatKey(matchName),
		redis_utils.FormatActionLogKey(matchName),
	})
}
