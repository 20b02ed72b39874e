package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort               string
	MongoURI               string
	MongoDatabase          string
	RedisAddr              string
	RedisPassword          string
	JWTSecret              string
	CloudinaryCloudName    string
	CloudinaryUploadPreset string
	RequestTimeout         time.Duration
	ShutdownTimeout        time.Duration
	MaxUploadSize          int64
	StatsCacheTTL          time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded:", err)
	}

	return &Config{
		HTTPPort:               getEnv("HTTP_PORT", "8080"),
		MongoURI:               getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:          getEnv("MONGO_DATABASE", "backoffice"),
		RedisAddr:              getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:          getEnv("REDIS_PASSWORD", ""),
		JWTSecret:              getEnv("JWT_SECRET", ""),
		CloudinaryCloudName:    getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryUploadPreset: getEnv("CLOUDINARY_UPLOAD_PRESET", ""),
		RequestTimeout:         30 * time.Second,
		ShutdownTimeout:        10 * time.Second,
		MaxUploadSize:          10 << 20, // 10MB
		StatsCacheTTL:          time.Minute,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
