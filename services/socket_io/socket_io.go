package socket_io

import (
	"LaCosa/services/game"
	"LaCosa/services/redis"
	"LaCosa/services/socket_io/handlers"
	"LaCosa/sync"

	socketio_types "LaCosa/services/socket_io/types"
	socketio_utils "LaCosa/services/socket_io/utils"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/gorm"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type MySocketServer socketio_types.SocketServer

func (sio *MySocketServer) Start(router *gin.Engine, db *gorm.DB, redisClient *redis.RedisClient,
	gm *game.MatchManager, sm *sync.SyncManager) {
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// NOTE: higher ping interval and timeout to 1) reduce network load and 2) support slower networks
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	// KEY: inicializar el map, sino panikea
	sio.UserConnections = make(map[string]*socket.Socket)

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)

		// Check if the client is authenticated
		success, username := socketio_utils.VerifyUserConnection(client, db)
		if !success {
			return
		}

		server := (*socketio_types.SocketServer)(sio)
		server.AddConnection(username, client)
		fmt.Println("An individual just connected!: ", username)

		// Re-attach the socket to the match room after a dropped connection
		if presence := handlers.HandleReconnection(redisClient, username, server); presence != nil {
			client.Join(socket.Room(presence.MatchName))
		}

		// Lobby lifecycle
		client.On("join_match", handlers.HandleJoinMatch(redisClient, client, db, username, server, gm))
		client.On("leave_match", handlers.HandleLeaveMatch(redisClient, client, db, username, server, gm, sm))
		client.On("start_game", handlers.HandleStartGame(redisClient, client, db, username, server, gm))

		// Turn actions
		client.On("draw_card", handlers.HandleDrawCard(redisClient, client, db, username, server, gm, sm))
		client.On("play_card", handlers.HandlePlayCard(redisClient, client, db, username, server, gm, sm))
		client.On("discard_card", handlers.HandleDiscardCard(redisClient, client, db, username, server, gm, sm))
		client.On("exchange_card", handlers.HandleExchangeCard(redisClient, client, db, username, server, gm, sm))
		client.On("defend", handlers.HandleDefend(redisClient, client, db, username, server, gm, sm))
		client.On("skip_defense", handlers.HandleSkipDefense(redisClient, client, db, username, server, gm, sm))
		client.On("declare", handlers.HandleDeclare(redisClient, client, db, username, server, gm, sm))
		client.On("reveal_decision", handlers.HandleRevealDecision(redisClient, client, db, username, server, gm, sm))

		// Match snapshot for reconnecting clients
		client.On("get_match_state", handlers.HandleGetMatchState(redisClient, client, db, username, server, gm))

		// Chat
		client.On("chat_message", handlers.HandleChatMessage(redisClient, client, db, username, server))
		client.On("get_chat_history", handlers.HandleGetChatHistory(redisClient, client, db, username))

		// NOTE: will remove sio connection from map
		client.On("disconnecting", handlers.HandleDisconnecting(redisClient, username, server))
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	SignalC := make(chan os.Signal, 1)

	signal.Notify(SignalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range SignalC {
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				sio.Sio_server.Close(nil)
				os.Exit(0)
			}
		}
	}()

	fmt.Println("Socket server started")
}
