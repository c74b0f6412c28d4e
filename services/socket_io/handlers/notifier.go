package handlers

import (
	redis_models "LaCosa/models/redis"
	"LaCosa/services/game"
	"LaCosa/services/redis"
	socketio_types "LaCosa/services/socket_io/types"
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// matchNotifier forwards state machine events to the socket room and
// mirrors every broadcast into the per-match Redis action log.
type matchNotifier struct {
	sio         *socketio_types.SocketServer
	redisClient *redis.RedisClient
}

func newMatchNotifier(sio *socketio_types.SocketServer, redisClient *redis.RedisClient) game.Notifier {
	return &matchNotifier{sio: sio, redisClient: redisClient}
}

func (n *matchNotifier) Broadcast(matchName string, event string, payload gin.H) {
	n.sio.Broadcast(matchName, event, payload)
	entry := &redis_models.ActionEntry{
		Event:     event,
		Payload:   map[string]interface{}(payload),
		Timestamp: time.Now(),
	}
	if err := n.redisClient.LogAction(matchName, entry); err != nil {
		// The log is best-effort; gameplay never stalls on Redis.
		log.Printf("[ACTION-LOG-ERROR] match %s event %s: %v", matchName, event, err)
	}
}

func (n *matchNotifier) SendToPlayer(username string, event string, payload gin.H) {
	n.sio.SendToPlayer(username, event, payload)
}
