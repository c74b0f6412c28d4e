package handlers

import (
	redis_models "LaCosa/models/redis"
	"LaCosa/services/redis"
	socketio_types "LaCosa/services/socket_io/types"
	"log"
	"time"
)

// HandleDisconnecting marks the user as away and drops the live socket
// mapping. The seat is NOT freed: a reconnect with the same username picks
// the match back up through the presence record.
func HandleDisconnecting(redisClient *redis.RedisClient, username string,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[DISCONNECT] Usuario %s desconectado", username)
		sio.RemoveConnection(username)

		presence, err := redisClient.GetPlayerPresence(username)
		if err != nil || presence == nil {
			return
		}
		presence.Connected = false
		presence.LastSeen = time.Now()
		if err := redisClient.SavePlayerPresence(presence); err != nil {
			log.Printf("[DISCONNECT-ERROR] Error actualizando presencia de %s: %v", username, err)
		}
	}
}

// HandleReconnection re-joins the socket room of the match the user was in
// before the connection dropped. Returns nil when there is nothing to
// restore.
func HandleReconnection(redisClient *redis.RedisClient, username string,
	sio *socketio_types.SocketServer) *redis_models.PlayerPresence {
	presence, err := redisClient.GetPlayerPresence(username)
	if err != nil || presence == nil {
		return nil
	}
	presence.Connected = true
	presence.LastSeen = time.Now()
	if err := redisClient.SavePlayerPresence(presence); err != nil {
		log.Printf("[RECONNECT-ERROR] Error actualizando presencia de %s: %v", username, err)
	}
	return presence
}
