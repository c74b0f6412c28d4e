package socketio_utils

import (
	models "LaCosa/models/postgres"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// VerifyUserConnection authenticates a socket.io client. The handshake auth
// payload must carry the username of a registered account.
func VerifyUserConnection(client *socket.Socket, db *gorm.DB) (success bool, username string) {
	// Checks if we have auth data in the connection
	authData, ok := client.Handshake().Auth.(map[string]interface{})
	if !ok {
		fmt.Println("No auth data provided in handshake!")
		client.Emit("error", gin.H{"error": "Authentication failed: missing auth data"})
		return false, ""
	}

	username, exists := authData["username"].(string)
	if !exists || username == "" {
		fmt.Println("No username provided in handshake!")
		client.Emit("error", gin.H{"error": "Authentication failed: missing username"})
		return false, ""
	}

	var user models.User
	result := db.Where("username = ?", username).First(&user)
	if result.Error != nil {
		fmt.Println("Error fetching user from database:", result.Error)
		client.Emit("error", gin.H{"error": "Authentication failed: could not find user"})
		return false, ""
	}

	return true, user.Username
}
