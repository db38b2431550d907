package main

import (
	"os"

	"bluffpot/internal/db"
	"bluffpot/internal/middleware"
	"bluffpot/internal/router"
	"bluffpot/internal/services"
	"bluffpot/internal/utils/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, reading env vars from system")
	}

	// Initialize Database
	db.Init()

	// Make sure today's and yesterday's rounds exist before serving, then keep
	// the background sweep and daily round creation running.
	if err := services.EnsureCurrentRounds(); err != nil {
		logger.Errorf("ensuring rounds at startup: %v", err)
	}
	services.GetSweepService().Start()

	// Initialize Gin
	r := gin.Default()

	// CORS for the separately hosted frontend
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowCredentials = true
	if origin := os.Getenv("FRONTEND_ORIGIN"); origin != "" {
		corsConfig.AllowOrigins = []string{origin}
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:5173"}
	}
	r.Use(cors.New(corsConfig))

	// Setup Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("bluffpot_session", store))

	// Middleware
	r.Use(middleware.LoadUser())

	// Routes
	router.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Infof("bluffpot server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		logger.Fatalf("server exited: %v", err)
	}
}
