package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	"github.com/letsbank/api/internal/docdb"
	"github.com/letsbank/api/internal/events"
	"github.com/letsbank/api/internal/handler"
	"github.com/letsbank/api/internal/ledger"
	"github.com/letsbank/api/internal/middleware"
	"github.com/letsbank/api/internal/service"
)

func main() {
	store := ledger.NewStore()

	// Secondary document database is optional: without MONGO_URI every
	// read and write stays in memory.
	var secondary service.SecondaryStore
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		client, err := docdb.Connect(context.Background(), uri, getEnv("MONGO_DB", "letsbank"))
		if err != nil {
			log.Printf("Document database unavailable, using in-memory store only: %v", err)
		} else {
			defer client.Close(context.Background())
			secondary = client
		}
	} else {
		log.Printf("MONGO_URI not configured, using in-memory store only")
	}

	// Event feed is optional too; a nil publisher publishes nothing.
	var publisher *events.Publisher
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb := goredis.NewClient(&goredis.Options{Addr: addr})
		defer rdb.Close()
		publisher = events.NewPublisher(rdb)
	}

	authHandler := handler.NewAuthHandler(service.NewAuthService(store, secondary, publisher))
	accountHandler := handler.NewAccountHandler(service.NewAccountService(store, secondary))
	adminHandler := handler.NewAdminHandler(service.NewAdminService(store, publisher))

	router := gin.Default()
	router.Use(middleware.Logging())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "X-User-Email")
	router.Use(cors.New(corsConfig))

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
	}

	admin := api.Group("/admin")
	{
		admin.DELETE("/user", adminHandler.DeleteUser)
		admin.POST("/user", adminHandler.CreateUser)
		admin.POST("/credit-by-account", adminHandler.CreditByAccount)
		admin.POST("/credit", adminHandler.Credit)
	}

	account := api.Group("", middleware.Identity())
	{
		account.GET("/account", accountHandler.GetAccount)
		account.GET("/balance", accountHandler.GetBalance)
		account.GET("/transactions", accountHandler.GetTransactions)
	}

	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	port := getEnv("PORT", "5070")
	log.Printf("LetsBank API running on http://localhost:%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
