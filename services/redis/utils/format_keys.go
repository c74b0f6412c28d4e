package utils

/**
 * This file contains utility functions to format the keys for Redis
 * (key, value) pairs. It avoids having to call "fmt.Sprintf(...)"
 * with the same format spec every time, potentially confusing the key format.
 */

import "fmt"

func FormatChatKey(matchName string) string {
	return fmt.Sprintf("match:%s:chat", matchName)
}

func FormatPresenceKey(username string) string {
	return fmt.Sprintf("player:%s:presence", username)
}

func FormatActionLogKey(matchName string) string {
	return fmt.Sprintf("match:%s:actions", matchName)
}
