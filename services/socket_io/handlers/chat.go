package handlers

import (
	redis_models "LaCosa/models/redis"
	"LaCosa/services/redis"
	socketio_types "LaCosa/services/socket_io/types"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// HandleChatMessage appends a message to the match chat and forwards it to
// the room.
// Args: message text.
func HandleChatMessage(redisClient *redis.RedisClient, client *socket.Socket, db *gorm.DB,
	username string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		message, ok := stringArg(args, 0)
		if !ok || message == "" {
			client.Emit("error", gin.H{"error": "Missing message"})
			return
		}
		matchName, ok := currentMatch(redisClient, client, username)
		if !ok {
			return
		}

		msg := &redis_models.ChatMessage{
			Message:   message,
			Username:  username,
			Timestamp: time.Now(),
		}
		if err := redisClient.SaveChatMessage(matchName, msg); err != nil {
			log.Printf("[CHAT-ERROR] Usuario %s en %s: %v", username, matchName, err)
			client.Emit("error", gin.H{"error": "Error saving chat message"})
			return
		}
		sio.Broadcast(matchName, "new_chat_message", gin.H{
			"username":  msg.Username,
			"message":   msg.Message,
			"timestamp": msg.Timestamp,
		})
	}
}

// HandleGetChatHistory sends the caller the chat log of their match.
func HandleGetChatHistory(redisClient *redis.RedisClient, client *socket.Socket, db *gorm.DB,
	username string) func(args ...interface{}) {
	return func(args ...interface{}) {
		matchName, ok := currentMatch(redisClient, client, username)
		if !ok {
			return
		}
		messages, err := redisClient.GetChatMessages(matchName)
		if err != nil {
			log.Printf("[CHAT-ERROR] Historial para %s en %s: %v", username, matchName, err)
			client.Emit("error", gin.H{"error": "Error loading chat history"})
			return
		}
		client.Emit("chat_history", gin.H{"match_name": matchName, "messages": messages})
	}
}
