package main

import (
	"log/slog"
	"time"

	"github.com/0himanshu3/CiviK-Link/services/user-api/apihandlers"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var conf UserApiConfig

func main() {
	// Start webserver
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		// AllowAllOrigins: true,
		AllowOrigins:     conf.GinConfig.AllowOrigins,
		AllowMethods:     []string{"POST", "GET", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Content-Length"},
		ExposeHeaders:    []string{"Authorization", "Content-Type", "Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Add handlers
	router.GET("/", apihandlers.HealthCheckHandle)
	v1Root := router.Group("/v1")

	v1APIHandlers := apihandlers.NewHTTPHandler(
		conf.UserManagementConfig.UserJWTConfig.SignKey,
		conf.UserManagementConfig.UserJWTConfig.ExpiresIn,
		accountDBService,
		conf.AdminConfig.Email,
		conf.AdminConfig.Password,
		conf.FrontendURL,
		conf.Environment == environmentProduction,
		conf.UserManagementConfig.MaxNewUsersPer5Minutes,
	)
	v1APIHandlers.AddUserAuthAPI(v1Root)
	v1APIHandlers.AddAccountsAPI(v1Root)

	// Start the server
	slog.Info("Starting User API on port " + conf.GinConfig.Port)
	err := router.Run(":" + conf.GinConfig.Port)
	if err != nil {
		slog.Error("Exited User API", slog.String("error", err.Error()))
		return
	}
}
