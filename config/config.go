package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port    string
	SiteURL string // base URL used for gateway callback construction
	JWTKey  string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Payment gateway
	GatewayURL           string
	GatewaySecretKey     string
	GatewayWebhookSecret string

	// Object storage (S3-compatible)
	StorageRegion string
	StorageBucket string

	EmailSender   string
	EmailPassword string // SMTP Password

	DownloadURLTTLMinutes int
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:    getEnv("PORT", "3000"),
		SiteURL: getEnv("SITE_URL", "http://localhost:3000"),
		JWTKey:  getEnv("JWT_SECRET_KEY", "defaultSecret"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "podlearn"),

		GatewayURL:           getEnv("GATEWAY_API_URL", "https://api.payments.example.com/v1/"),
		GatewaySecretKey:     getEnv("GATEWAY_SECRET_KEY", ""),
		GatewayWebhookSecret: getEnv("GATEWAY_WEBHOOK_SECRET", ""),

		StorageRegion: getEnv("STORAGE_REGION", "eu-central-1"),
		StorageBucket: getEnv("STORAGE_BUCKET", ""),

		EmailSender:   getEnv("EMAIL_SENDER", ""),
		EmailPassword: getEnv("EMAIL_PASSWORD", ""),

		DownloadURLTTLMinutes: getEnvInt("DOWNLOAD_URL_TTL_MINUTES", 60),
	}

	// Payment keys are required for every entitlement flow; refuse to boot
	// without them rather than failing on the first request.
	if AppConfig.GatewaySecretKey == "" {
		log.Fatal("GATEWAY_SECRET_KEY is not set")
	}
	if AppConfig.GatewayWebhookSecret == "" {
		log.Fatal("GATEWAY_WEBHOOK_SECRET is not set")
	}
	if AppConfig.StorageBucket == "" {
		log.Fatal("STORAGE_BUCKET is not set")
	}
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
