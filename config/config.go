package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	PORT       string
	DB_URL     string
	JWT_SECRET string

	FRONTEND_URL string
	REDIS_ADDR   string

	PAYPAL_CLIENT_ID string
	PAYPAL_SECRET    string
	PAYPAL_API_BASE  string

	SMTP_FROM     string
	SMTP_PASSWORD string
	SMTP_HOST     string
	SMTP_PORT     string

	GOOGLE_CLIENT_ID         string
	GOOGLE_CLIENT_SECRET     string
	GOOGLE_REDIRECT_URL      string
	GOOGLE_FRONTEND_REDIRECT string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")

	FRONTEND_URL = getEnv("FRONTEND_URL", "http://localhost:5173")
	REDIS_ADDR = getEnv("REDIS_ADDR", "")

	PAYPAL_CLIENT_ID = mustEnv("PAYPAL_CLIENT_ID")
	PAYPAL_SECRET = mustEnv("PAYPAL_SECRET")
	PAYPAL_API_BASE = getEnv("PAYPAL_API_BASE", "https://api-m.sandbox.paypal.com")

	SMTP_FROM = getEnv("SMTP_FROM", "")
	SMTP_PASSWORD = getEnv("SMTP_PASSWORD", "")
	SMTP_HOST = getEnv("SMTP_HOST", "")
	SMTP_PORT = getEnv("SMTP_PORT", "587")

	GOOGLE_CLIENT_ID = getEnv("GOOGLE_CLIENT_ID", "")
	GOOGLE_CLIENT_SECRET = getEnv("GOOGLE_CLIENT_SECRET", "")
	GOOGLE_REDIRECT_URL = getEnv("GOOGLE_REDIRECT_URL", "")
	GOOGLE_FRONTEND_REDIRECT = getEnv("GOOGLE_FRONTEND_REDIRECT", "")
}

// PayPalConfig is handed to the gateway client so it never reads the
// environment on its own.
type PayPalConfig struct {
	ClientID string
	Secret   string
	APIBase  string
}

func PayPal() PayPalConfig {
	return PayPalConfig{
		ClientID: PAYPAL_CLIENT_ID,
		Secret:   PAYPAL_SECRET,
		APIBase:  PAYPAL_API_BASE,
	}
}

// SMTPConfig is handed to the mailer.
type SMTPConfig struct {
	From     string
	Password string
	Host     string
	Port     string
}

func SMTP() SMTPConfig {
	return SMTPConfig{
		From:     SMTP_FROM,
		Password: SMTP_PASSWORD,
		Host:     SMTP_HOST,
		Port:     SMTP_PORT,
	}
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
