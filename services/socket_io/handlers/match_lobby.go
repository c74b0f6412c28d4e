package handlers

import (
	redis_models "LaCosa/models/redis"
	"LaCosa/services/game"
	"LaCosa/services/redis"
	socketio_types "LaCosa/services/socket_io/types"
	"LaCosa/sync"
	"LaCosa/utils"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// HandleJoinMatch seats the user in a lobby and joins the socket room.
// Args: match name, optional password for private matches.
func HandleJoinMatch(redisClient *redis.RedisClient, client *socket.Socket, db *gorm.DB,
	username string, sio *socketio_types.SocketServer, gm *game.MatchManager) func(args ...interface{}) {
	return func(args ...interface{}) {
		matchName, ok := stringArg(args, 0)
		if !ok {
			log.Printf("[JOIN-ERROR] Faltan argumentos para usuario %s", username)
			client.Emit("error", gin.H{"error": "Missing match name"})
			return
		}
		password, _ := stringArg(args, 1)
		log.Printf("[JOIN] Usuario %s entrando a la partida %s, Socket ID: %s", username, matchName, client.Id())

		if _, err := utils.CheckMatchExists(db, matchName); err != nil {
			client.Emit("error", gin.H{"error": "Match does not exist"})
			return
		}

		err := gm.WithMatch(matchName, func(m *game.Match) error {
			if m.PasswordHash != "" {
				if bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(password)) != nil {
					return game.NewGameRule("wrong match password")
				}
			}
			return m.AddPlayer(username)
		})
		if err != nil {
			emitGameError(client, err)
			return
		}

		presence := &redis_models.PlayerPresence{
			Username:  username,
			MatchName: matchName,
			Connected: true,
			LastSeen:  time.Now(),
		}
		if err := redisClient.SavePlayerPresence(presence); err != nil {
			log.Printf("[JOIN-ERROR] Error guardando presencia de %s: %v", username, err)
		}

		client.Join(socket.Room(matchName))
		log.Printf("[JOIN-SUCCESS] Usuario %s unido a la partida %s", username, matchName)
		sio.Broadcast(matchName, "player_joined", gin.H{"player": username})
		client.Emit("match_joined", gin.H{
			"match_name": matchName,
			"message":    "¡Bienvenido a la partida!",
		})
	}
}

// HandleLeaveMatch detaches the user from their current match. Before the
// match starts this frees the seat; mid-game the seat dies.
func HandleLeaveMatch(redisClient *redis.RedisClient, client *socket.Socket, db *gorm.DB,
	username string, sio *socketio_types.SocketServer, gm *game.MatchManager, sm *sync.SyncManager) func(args ...interface{}) {
	return func(args ...interface{}) {
		matchName, ok := currentMatch(redisClient, client, username)
		if !ok {
			return
		}
		log.Printf("[LEAVE] Usuario %s saliendo de la partida %s", username, matchName)

		notifier := newMatchNotifier(sio, redisClient)
		runMatchAction(gm, sm, client, matchName, func(m *game.Match) error {
			return m.HandleLeave(username, notifier)
		})

		client.Leave(socket.Room(matchName))
		if err := redisClient.DeletePlayerPresence(username); err != nil {
			log.Printf("[LEAVE-ERROR] Error borrando presencia de %s: %v", username, err)
		}
		sio.Broadcast(matchName, "player_left", gin.H{"player": username})
	}
}

// HandleStartGame deals the hands and opens the first turn. Host only.
func HandleStartGame(redisClient *redis.RedisClient, client *socket.Socket, db *gorm.DB,
	username string, sio *socketio_types.SocketServer, gm *game.MatchManager) func(args ...interface{}) {
	return func(args ...interface{}) {
		matchName, ok := currentMatch(redisClient, client, username)
		if !ok {
			return
		}
		log.Printf("[START] Usuario %s arrancando la partida %s", username, matchName)

		notifier := newMatchNotifier(sio, redisClient)
		var seats []struct {
			name     string
			position int
			isHost   bool
		}
		err := gm.WithMatch(matchName, func(m *game.Match) error {
			player, err := m.GetPlayer(username)
			if err != nil {
				return err
			}
			if !player.IsHost {
				return game.NewGameRule("only the host can start the match")
			}
			if err := m.StartGame(notifier); err != nil {
				return err
			}
			for _, p := range m.Players {
				seats = append(seats, struct {
					name     string
					position int
					isHost   bool
				}{p.Name, p.Position, p.IsHost})
			}
			return nil
		})
		if err != nil {
			emitGameError(client, err)
			return
		}

		// Persist the final seating so the match history survives restarts.
		if err := utils.MarkMatchStarted(db, matchName); err != nil {
			log.Printf("[START-ERROR] Error marcando partida %s como iniciada: %v", matchName, err)
		}
		for _, seat := range seats {
			if err := utils.SaveMatchPlayer(db, matchName, seat.name, seat.position, seat.isHost); err != nil {
				log.Printf("[START-ERROR] Error guardando asiento de %s: %v", seat.name, err)
			}
		}
	}
}
