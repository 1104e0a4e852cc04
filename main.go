package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"resto-qr-pos/cart"
	"resto-qr-pos/config"
	"resto-qr-pos/handlers"
	"resto-qr-pos/notify"
	"resto-qr-pos/payment"
	"resto-qr-pos/projection"
	"resto-qr-pos/qr"
	"resto-qr-pos/routes"
	"resto-qr-pos/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

func main() {
	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database
	config.InitDB()

	// Change-notification bus: redis when reachable, in-process otherwise
	ctx := context.Background()
	var bus interface {
		notify.Publisher
		notify.Subscriber
	}
	redisClient := config.NewRedisClient()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("redis unavailable (%v), using in-process notifications", err)
		bus = notify.NewLocal()
	} else {
		bus = notify.NewRedis(redisClient)
	}

	orders := store.NewOrderStore(config.DB, bus)

	// Live order queue projection for the cashier dashboard
	queue := projection.NewQueue(orders, bus, store.OrdersChannel)
	if err := queue.Start(ctx); err != nil {
		log.Fatal("Failed to start order queue projection:", err)
	}
	defer queue.Stop()

	api := handlers.NewAPI(
		cart.NewRegistry(),
		orders,
		queue,
		payment.NewClient(config.MidtransServerKey),
		qr.DefaultGenerator{BaseURL: config.PublicBaseURL},
	)

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Resto QR POS API",
			"version": "1.0.0",
		})
	})

	// Uploaded menu/promotion images
	r.Static("/uploads", config.UploadDir)

	// Register all routes
	routes.SetupRoutes(r, api)

	// CORS for the ordering and dashboard frontends
	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Authorization", "X-Session-ID"},
	}).Handler(r)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on http://localhost:%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
