package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"fairdice-backend/internal/config"
	"fairdice-backend/internal/fair"
	"fairdice-backend/internal/handlers"
	"fairdice-backend/internal/middleware"
	"fairdice-backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	chain, err := loadOrGenerateChain(cfg)
	if err != nil {
		log.Fatalf("Failed to set up seed chain: %v", err)
	}

	dealer, err := fair.NewDealer(chain)
	if err != nil {
		log.Fatalf("Failed to initialize dealer: %v", err)
	}
	log.Printf("Seed chain ready: anchor=%s, %d seeds remaining", dealer.CurrentAnchor(), dealer.Remaining())

	redisService, err := services.NewRedisService(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisService.Close()

	jwtService := services.NewJWTService(cfg)

	betEngine := services.NewBetEngine(dealer, redisService)
	wsHandler := handlers.NewWebSocketHandler(redisService)
	betEngine.SetBroadcaster(wsHandler)

	authHandler := handlers.NewAuthHandler(redisService, jwtService)
	userHandler := handlers.NewUserHandler(redisService)
	gameHandler := handlers.NewGameHandler(betEngine, redisService)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.POST("/auth/session", authHandler.CreateSession)

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(jwtService))
	{
		protected.GET("/me", userHandler.GetCurrentUser)
		protected.GET("/transactions", userHandler.GetTransactions)
		protected.POST("/logout", userHandler.Logout)

		protected.GET("/ws", wsHandler.HandleWebSocket)
		protected.GET("/balance", gameHandler.GetBalance)

		games := protected.Group("/games")
		{
			games.POST("/bet", gameHandler.PlaceBet)
			games.GET("/state", gameHandler.GetState)
			games.GET("/history", gameHandler.GetBetHistory)
			games.POST("/verify", gameHandler.VerifyBet)
		}
	}

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// loadOrGenerateChain loads the configured chain file, generating and
// saving a fresh chain only when the file does not exist at all. An
// existing file is never regenerated on error: a chain whose anchor may
// already be public has to be replaced by hand.
func loadOrGenerateChain(cfg *config.Config) (fair.Chain, error) {
	if _, err := os.Stat(cfg.ChainFile); os.IsNotExist(err) {
		log.Printf("No chain file at %s, generating a chain of size %d", cfg.ChainFile, cfg.ChainSize)

		chain, err := fair.Generate(cfg.ChainSize)
		if err != nil {
			return nil, err
		}
		if err := fair.SaveChain(cfg.ChainFile, chain); err != nil {
			return nil, err
		}
		return chain, nil
	}

	return fair.LoadChain(cfg.ChainFile)
}
