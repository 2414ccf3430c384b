package main

import (
	"log"

	"github.com/SanketMhamal/GoogleClassroom-Integration-app/internal/config"
	"github.com/SanketMhamal/GoogleClassroom-Integration-app/internal/database"
	"github.com/SanketMhamal/GoogleClassroom-Integration-app/internal/google"
	"github.com/SanketMhamal/GoogleClassroom-Integration-app/internal/handlers"
	"github.com/SanketMhamal/GoogleClassroom-Integration-app/internal/middleware"
	"github.com/SanketMhamal/GoogleClassroom-Integration-app/internal/services"
	"github.com/SanketMhamal/GoogleClassroom-Integration-app/internal/ws"

	_ "github.com/SanketMhamal/GoogleClassroom-Integration-app/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Classroom Analytics API
// @version         1.0
// @description     Syncs Google Classroom courses, form-linked assignments and form responses into a local store and serves analytics views
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	hub := ws.NewHub()
	oauthCfg := google.OAuthConfig(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)

	authService := services.NewAuthService(db, cfg.JWTSecret)
	credentialService := services.NewCredentialService(db)
	syncService := services.NewSyncService(db, credentialService, oauthCfg, hub)
	analyticsService := services.NewAnalyticsService(db)

	authHandler := handlers.NewAuthHandler(authService, credentialService, oauthCfg, cfg.FrontendURL)
	syncHandler := handlers.NewSyncHandler(syncService)
	dashboardHandler := handlers.NewDashboardHandler(analyticsService)
	wsHandler := handlers.NewWSHandler(hub, authService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/sync", wsHandler.HandleSyncWebSocket)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.GET("/google/login", authHandler.GoogleLogin)
			auth.GET("/google/callback", authHandler.GoogleCallback)
			auth.GET("/me", middleware.JWTAuth(authService), authHandler.Me)
			auth.POST("/disconnect", middleware.JWTAuth(authService), authHandler.Disconnect)
		}

		api.POST("/sync", middleware.JWTAuth(authService), syncHandler.Sync)

		dashboard := api.Group("")
		dashboard.Use(middleware.JWTAuth(authService))
		{
			dashboard.GET("/dashboard", dashboardHandler.GetDashboard)
			dashboard.GET("/assignments/:id", dashboardHandler.GetAssignment)
		}
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
