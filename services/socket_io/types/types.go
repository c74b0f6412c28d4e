package socketio_types

import (
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// SocketServer is a struct that contains the socket.io server and a map of socket connections.
// It is used to handle socket.io connections.
type SocketServer struct {
	Sio_server *socket.Server
	// Map to track username -> socket connections
	UserConnections map[string]*socket.Socket
	mutex           sync.RWMutex
}

func NewSocketServer() *SocketServer {
	return &SocketServer{
		UserConnections: make(map[string]*socket.Socket),
	}
}

// Add methods to manage connections
func (s *SocketServer) AddConnection(username string, socket *socket.Socket) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.UserConnections[username] = socket
}

func (s *SocketServer) RemoveConnection(username string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.UserConnections, username)
}

func (s *SocketServer) GetConnection(username string) (*socket.Socket, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	socket, exists := s.UserConnections[username]
	return socket, exists
}

// Broadcast emits an event to every client in the match room. Delivery is
// fire-and-forget: a dropped client never blocks a state transition.
func (s *SocketServer) Broadcast(matchName string, event string, payload gin.H) {
	if s.Sio_server == nil {
		return
	}
	s.Sio_server.To(socket.Room(matchName)).Emit(event, payload)
}

// SendToPlayer emits an event to a single connected user, if any.
func (s *SocketServer) SendToPlayer(username string, event string, payload gin.H) {
	client, exists := s.GetConnection(username)
	if !exists {
		return
	}
	client.Emit(event, payload)
}
