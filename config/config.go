package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	UploadDir string

	PaystackBaseURL   string
	PaystackSecretKey string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	FacebookAppID       string
	FacebookAppSecret   string
	FacebookRedirectURL string

	EmailSender string
	Password    string // SMTP Password
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
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		UploadDir: getEnv("UPLOAD_DIR", "./public/uploads"),

		PaystackBaseURL:   getEnv("PAYSTACK_BASE_URL", "https://api.paystack.co"),
		PaystackSecretKey: getEnv("PAYSTACK_SECRET_KEY", ""),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:3000/api/auth/google/callback"),

		FacebookAppID:       getEnv("FACEBOOK_APP_ID", ""),
		FacebookAppSecret:   getEnv("FACEBOOK_APP_SECRET", ""),
		FacebookRedirectURL: getEnv("FACEBOOK_REDIRECT_URL", "http://localhost:3000/api/auth/facebook/callback"),

		EmailSender: getEnv("EMAIL_SENDER", ""),
		Password:    getEnv("PASSWORD", ""),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.PaystackSecretKey == "" {
		log.Println("Warning: PAYSTACK_SECRET_KEY is not set. Payment routes will fail.")
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
