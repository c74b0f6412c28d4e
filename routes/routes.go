package routes

import (
	"LaCosa/controllers"
	"LaCosa/middleware"
	"LaCosa/services/game"
	"LaCosa/services/redis"
	"LaCosa/sync"
	utils "LaCosa/utils"
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, redisClient *redis.RedisClient,
	gm *game.MatchManager, syncManager *sync.SyncManager) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Error reading GORM PostgreSQL instance: %v", err)
	}

	matchController := &controllers.MatchController{
		DB:          sqlDB,
		RedisClient: redisClient,
		SyncManager: syncManager,
		Matches:     gm,
	}

	// utils global
	router.Use(utils.ErrorHandler())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes group
	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	api.POST("/signup", controllers.SignUp(db))

	api.POST("/login", controllers.Login(db))

	api.GET("/users/:username", controllers.GetUserPublicInfo(db))

	api.GET("/matches", matchController.ListMatches)

	api.GET("/matches/:name", matchController.GetMatchInfo)

	api.GET("/matches/:name/result", matchController.GetMatchResult)

	authentication := api.Group("/auth")
	authentication.Use(middleware.AuthRequired)
	{
		authentication.DELETE("/logout", controllers.Logout)

		authentication.POST("/matches", matchController.CreateMatch)

		authentication.DELETE("/matches/:name", matchController.DeleteMatch)
	}
}
