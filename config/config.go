package config

import (
	"log"
	"os"

	"resto-qr-pos/models"

	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret used to sign tokens — read from env or fallback
var JWTSecret = []byte(getEnv("JWT_SECRET", "resto_qr_pos_super_secret_2024"))

// MidtransServerKey authenticates calls to the Snap payment API.
// Keys containing "SB-" route to the sandbox host.
var MidtransServerKey = getEnv("MIDTRANS_SERVER_KEY", "")

// PublicBaseURL is the customer-facing origin embedded in table QR codes
var PublicBaseURL = getEnv("PUBLIC_BASE_URL", "http://localhost:8080")

// UploadDir is where menu/promotion images are written and served from
var UploadDir = getEnv("UPLOAD_DIR", "uploads")

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func InitDB() {
	InitDBPath(getEnv("DB_PATH", "resto_qr_pos.db"))
}

// InitDBPath opens and migrates the database at the given path.
// Tests pass ":memory:" here.
func InitDBPath(path string) {
	var err error
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if path == ":memory:" {
		// Each pooled connection would otherwise get its own empty database
		if sqlDB, err := DB.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.Promotion{},
		&models.DiningTable{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("Database connected and migrated")
}

// NewRedisClient connects to the redis instance carrying order change
// notifications.
func NewRedisClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
	})
}
