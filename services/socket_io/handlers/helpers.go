package handlers

import (
	"LaCosa/services/game"
	"LaCosa/services/redis"
	"LaCosa/sync"
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// currentMatch resolves which match the socket user is attached to, using
// the presence record written at join time.
func currentMatch(redisClient *redis.RedisClient, client *socket.Socket, username string) (string, bool) {
	matchName, err := redisClient.GetPlayerCurrentMatch(username)
	if err != nil {
		log.Printf("[PRESENCE-ERROR] Usuario %s: %v", username, err)
		client.Emit("error", gin.H{"error": "Error looking up your current match"})
		return "", false
	}
	if matchName == "" {
		client.Emit("error", gin.H{"error": "You are not in a match"})
		return "", false
	}
	return matchName, true
}

// emitGameError translates state machine errors into client emissions. A
// finished match additionally triggers result persistence and teardown.
func emitGameError(client *socket.Socket, err error) {
	var gameErr *game.GameError
	if errors.As(err, &gameErr) {
		client.Emit("error", gin.H{"error": gameErr.Message, "kind": string(gameErr.Kind)})
		return
	}
	client.Emit("error", gin.H{"error": err.Error()})
}

// runMatchAction executes one player action inside the match critical
// section and routes the outcome back to the client. ErrMatchFinished is
// the normal terminal signal, not a failure.
func runMatchAction(gm *game.MatchManager, sm *sync.SyncManager, client *socket.Socket,
	matchName string, action func(m *game.Match) error) {
	var finished *game.Match
	err := gm.WithMatch(matchName, func(m *game.Match) error {
		actErr := action(m)
		if errors.Is(actErr, game.ErrMatchFinished) && m.WinReason != "" {
			finished = m
		}
		return actErr
	})
	if err != nil && !errors.Is(err, game.ErrMatchFinished) {
		emitGameError(client, err)
		return
	}
	if finished != nil {
		if tearErr := sm.FinishMatch(finished, gm); tearErr != nil {
			log.Printf("[SYNC-ERROR] teardown of match %s: %v", matchName, tearErr)
		}
	}
}

// intArg extracts an integer socket.io argument, tolerating the float64
// representation JSON numbers arrive with.
func intArg(args []interface{}, i int) (int, bool) {
	if len(args) <= i {
		return 0, false
	}
	switch v := args[i].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	}
	return 0, false
}

func stringArg(args []interface{}, i int) (string, bool) {
	if len(args) <= i {
		return "", false
	}
	s, ok := args[i].(string)
	return s, ok
}
