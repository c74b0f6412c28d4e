package handlers

import (
	"LaCosa/services/game"
	"LaCosa/services/redis"
	socketio_types "LaCosa/services/socket_io/types"
	"LaCosa/sync"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// HandleDrawCard resolves the draw that opens every turn.
func HandleDrawCard(redisClient *redis.RedisClient, client *socket.Socket, db *gorm.DB,
	username string, sio *socketio_types.SocketServer, gm *game.MatchManager, sm *sync.SyncManager) func(args ...interface{}) {
	return func(args ...interface{}) {
		matchName, ok := currentMatch(redisClient, client, username)
		if !ok {
			return
		}
		log.Printf("[DRAW] Usuario %s roba carta en %s", username, matchName)
		notifier := newMatchNotifier(sio, redisClient)
		runMatchAction(gm, sm, client, matchName, func(m *game.Match) error {
			return m.HandleDraw(username, notifier)
		})
	}
}

// HandlePlayCard plays a card from the hand.
// Args: card id, optional target username.
func HandlePlayCard(redisClient *redis.RedisClient, client *socket.Socket, db *gorm.DB,
	username string, sio *socketio_types.SocketServer, gm *game.MatchManager, sm *sync.SyncManager) func(args ...interface{}) {
	return func(args ...interface{}) {
		cardID, ok := intArg(args, 0)
		if !ok {
			client.Emit("error", gin.H{"error": "Missing card id"})
			return
		}
		target, _ := stringArg(args, 1)
		matchName, ok := currentMatch(redisClient, client, username)
		if !ok {
			return
		}
		log.Printf("[PLAY] Usuario %s juega carta %d (target=%q) en %s", username, cardID, target, matchName)
		notifier := newMatchNotifier(sio, redisClient)
		runMatchAction(gm, sm, client, matchName, func(m *game.Match) error {
			return m.HandlePlayCard(username, cardID, target, notifier)
		})
	}
}

// HandleDiscardCard discards a card from the hand.
// Args: card id.
func HandleDiscardCard(redisClient *redis.RedisClient, client *socket.Socket, db *gorm.DB,
	username string, sio *socketio_types.SocketServer, gm *game.MatchManager, sm *sync.SyncManager) func(args ...interface{}) {
	return func(args ...interface{}) {
		cardID, ok := intArg(args, 0)
		if !ok {
			client.Emit("error", gin.H{"error": "Missing card id"})
			return
		}
		matchName, ok := currentMatch(redisClient, client, username)
		if !ok {
			return
		}
		log.Printf("[DISCARD] Usuario %s descarta carta %d en %s", username, cardID, matchName)
		notifier := newMatchNotifier(sio, redisClient)
		runMatchAction(gm, sm, client, matchName, func(m *game.Match) error {
			return m.HandleDiscard(username, cardID, notifier)
		})
	}
}

// HandleExchangeCard submits a card to whichever exchange protocol is open:
// the end-of-turn offer, the answer to one, or the vuelta y vuelta round.
// Args: card id, optional target username (free-target exchanges only).
func HandleExchangeCard(redisClient *redis.RedisClient, client *socket.Socket, db *gorm.DB,
	username string, sio *socketio_types.SocketServer, gm *game.MatchManager, sm *sync.SyncManager) func(args ...interface{}) {
	return func(args ...interface{}) {
		cardID, ok := intArg(args, 0)
		if !ok {
			client.Emit("error", gin.H{"error": "Missing card id"})
			return
		}
		target, _ := stringArg(args, 1)
		matchName, ok := currentMatch(redisClient, client, username)
		if !ok {
			return
		}
		log.Printf("[EXCHANGE] Usuario %s ofrece carta %d en %s", username, cardID, matchName)
		notifier := newMatchNotifier(sio, redisClient)
		runMatchAction(gm, sm, client, matchName, func(m *game.Match) error {
			return m.HandleExchangeCard(username, cardID, target, notifier)
		})
	}
}

// HandleDefend answers an open defense window or exchange offer with a
// defense card.
// Args: card id.
func HandleDefend(redisClient *redis.RedisClient, client *socket.Socket, db *gorm.DB,
	username string, sio *socketio_types.SocketServer, gm *game.MatchManager, sm *sync.SyncManager) func(args ...interface{}) {
	return func(args ...interface{}) {
		cardID, ok := intArg(args, 0)
		if !ok {
			client.Emit("error", gin.H{"error": "Missing card id"})
			return
		}
		matchName, ok := currentMatch(redisClient, client, username)
		if !ok {
			return
		}
		log.Printf("[DEFEND] Usuario %s se defiende con carta %d en %s", username, cardID, matchName)
		notifier := newMatchNotifier(sio, redisClient)
		runMatchAction(gm, sm, client, matchName, func(m *game.Match) error {
			return m.HandleDefend(username, cardID, notifier)
		})
	}
}

// HandleSkipDefense lets the pending attack resolve unresisted.
func HandleSkipDefense(redisClient *redis.RedisClient, client *socket.Socket, db *gorm.DB,
	username string, sio *socketio_types.SocketServer, gm *game.MatchManager, sm *sync.SyncManager) func(args ...interface{}) {
	return func(args ...interface{}) {
		matchName, ok := currentMatch(redisClient, client, username)
		if !ok {
			return
		}
		log.Printf("[DEFEND] Usuario %s no se defiende en %s", username, matchName)
		notifier := newMatchNotifier(sio, redisClient)
		runMatchAction(gm, sm, client, matchName, func(m *game.Match) error {
			return m.HandleSkipDefense(username, notifier)
		})
	}
}

// HandleDeclare resolves the thing's claim that no humans remain.
func HandleDeclare(redisClient *redis.RedisClient, client *socket.Socket, db *gorm.DB,
	username string, sio *socketio_types.SocketServer, gm *game.MatchManager, sm *sync.SyncManager) func(args ...interface{}) {
	return func(args ...interface{}) {
		matchName, ok := currentMatch(redisClient, client, username)
		if !ok {
			return
		}
		log.Printf("[DECLARE] Usuario %s declara en %s", username, matchName)
		notifier := newMatchNotifier(sio, redisClient)
		runMatchAction(gm, sm, client, matchName, func(m *game.Match) error {
			return m.HandleDeclare(username, notifier)
		})
	}
}

// HandleRevealDecision advances the Revelaciones ritual.
// Args: decision ("omitir", "mostrar_mano" or "mostrar_infectado").
func HandleRevealDecision(redisClient *redis.RedisClient, client *socket.Socket, db *gorm.DB,
	username string, sio *socketio_types.SocketServer, gm *game.MatchManager, sm *sync.SyncManager) func(args ...interface{}) {
	return func(args ...interface{}) {
		decision, ok := stringArg(args, 0)
		if !ok {
			client.Emit("error", gin.H{"error": "Missing reveal decision"})
			return
		}
		matchName, ok := currentMatch(redisClient, client, username)
		if !ok {
			return
		}
		log.Printf("[REVEAL] Usuario %s decide %q en %s", username, decision, matchName)
		notifier := newMatchNotifier(sio, redisClient)
		runMatchAction(gm, sm, client, matchName, func(m *game.Match) error {
			return m.HandleRevealDecision(username, decision, notifier)
		})
	}
}

// HandleGetMatchState sends the caller a private snapshot of the match:
// their own hand plus the public board.
func HandleGetMatchState(redisClient *redis.RedisClient, client *socket.Socket, db *gorm.DB,
	username string, sio *socketio_types.SocketServer, gm *game.MatchManager) func(args ...interface{}) {
	return func(args ...interface{}) {
		matchName, ok := currentMatch(redisClient, client, username)
		if !ok {
			return
		}
		err := gm.WithMatch(matchName, func(m *game.Match) error {
			player, err := m.GetPlayer(username)
			if err != nil {
				return err
			}
			players := make([]gin.H, 0, len(m.Players))
			for _, p := range m.Players {
				players = append(players, gin.H{
					"name":       p.Name,
					"position":   p.Position,
					"is_alive":   p.IsAlive,
					"is_host":    p.IsHost,
					"quarantine": m.QuarantineLevel(p),
					"hand_size":  len(p.Hand),
				})
			}
			snapshot := gin.H{
				"match_name": m.Name,
				"state":      string(m.State),
				"clockwise":  m.Clockwise,
				"players":    players,
				"obstacles":  m.Obstacles,
				"hand":       player.Hand,
			}
			if m.Initiated {
				snapshot["turn_player"] = m.TurnOwner().Name
				snapshot["deck_size"] = len(m.Deck.DrawPile)
			}
			client.Emit("match_state", snapshot)
			return nil
		})
		if err != nil {
			emitGameError(client, err)
		}
	}
}
