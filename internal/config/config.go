package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port          string
	MongoURI      string
	MongoDatabase string
	JWTSecret     string
	TokenExpiry   time.Duration
	AllowedOrigin string
	EnableCron    bool

	// Optional SMTP settings for the daily reminder digest.
	SMTPHost     string
	SMTPPort     string
	SMTPSender   string
	SMTPPassword string
}

// LoadConfig reads .env when present and falls back to the process
// environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	expiryHours, err := strconv.Atoi(getEnv("TOKEN_EXPIRY_HOURS", "72"))
	if err != nil || expiryHours <= 0 {
		expiryHours = 72
	}

	enableCron, err := strconv.ParseBool(getEnv("ENABLE_CRON", "true"))
	if err != nil {
		enableCron = true
	}

	return &Config{
		Port:          getEnv("PORT", "8080"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DB", "onegoal"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		TokenExpiry:   time.Duration(expiryHours) * time.Hour,
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
		EnableCron:    enableCron,
		SMTPHost:      getEnv("SMTP_HOST", ""),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPSender:    getEnv("SMTP_SENDER", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
