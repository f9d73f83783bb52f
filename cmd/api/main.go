package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	cacheAdapter "github.com/shuerry/Connectify-sub000/internal/infrastructure/cache/adapter"
	"github.com/shuerry/Connectify-sub000/internal/infrastructure/database"
	queueAdapter "github.com/shuerry/Connectify-sub000/internal/infrastructure/queue/adapter"
	"github.com/shuerry/Connectify-sub000/internal/infrastructure/realtime"
	"github.com/shuerry/Connectify-sub000/internal/pkg/presence"
	userAdapter "github.com/shuerry/Connectify-sub000/internal/repository/adapter"

	v1 "github.com/shuerry/Connectify-sub000/cmd/api/router/v1"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	// Connect to the database on startup
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := database.NewPoolFromEnv(ctx)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	cache, err := cacheAdapter.NewRedisAdapter()
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer cache.Close()

	queueClient, err := queueAdapter.NewAsynqClientFromEnv()
	if err != nil {
		log.Fatalf("failed to create queue client: %v", err)
	}
	defer queueClient.Close()

	rtRouter := realtime.NewRouter()
	defer rtRouter.Close()

	users := userAdapter.NewPgUserRepository(pool)
	tracker := presence.NewTracker(users, rtRouter)

	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "OK",
		})
	})

	v1.RegisterRoutes(r, pool, cache, queueClient, rtRouter, tracker)

	// Start HTTP server (blocks until shutdown)
	_ = r.Run()
}
