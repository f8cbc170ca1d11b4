package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string
	JWTIssuer     string

	// Redis (permission resolver cache). Empty address disables caching.
	RedisAddr string

	// Payment gateway (hosted checkout links)
	PayOSEndpoint       string
	PayOSClientID       string
	PayOSAPIKey         string
	PayOSChecksumKey    string
	PaymentReturnURL    string
	PaymentCancelURL    string
	PaymentTimeout      time.Duration
	CollaboratorTimeout time.Duration

	// File storage for uploaded documents
	StorageEndpoint string
	StorageBucket   string
	StorageAPIKey   string

	// Outbound mail (fire-and-forget notifications)
	SMTPHost   string
	SMTPPort   string
	SMTPUser   string
	SMTPPass   string
	SMTPSender string

	// Analytics
	PosthogAPIKey   string
	PosthogEndpoint string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "notaria-backend")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("PAYOS_ENDPOINT", "https://api-merchant.payos.vn")
	viper.SetDefault("PAYOS_CLIENT_ID", "")
	viper.SetDefault("PAYOS_API_KEY", "")
	viper.SetDefault("PAYOS_CHECKSUM_KEY", "")
	viper.SetDefault("PAYMENT_RETURN_URL", "http://localhost:3000/payment/success")
	viper.SetDefault("PAYMENT_CANCEL_URL", "http://localhost:3000/payment/cancel")
	viper.SetDefault("PAYMENT_TIMEOUT", "10s")
	viper.SetDefault("COLLABORATOR_TIMEOUT", "2s")
	viper.SetDefault("STORAGE_ENDPOINT", "")
	viper.SetDefault("STORAGE_BUCKET", "documents")
	viper.SetDefault("STORAGE_API_KEY", "")
	viper.SetDefault("SMTP_HOST", "")
	viper.SetDefault("SMTP_PORT", "587")
	viper.SetDefault("SMTP_USER", "")
	viper.SetDefault("SMTP_PASS", "")
	viper.SetDefault("SMTP_SENDER", "no-reply@notaria.local")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://app.posthog.com")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	if cfg.RedisAddr == "" {
		log.Println("Warning: REDIS_ADDR not set. Permission lookups will not be cached.")
	}

	cfg.PayOSEndpoint = viper.GetString("PAYOS_ENDPOINT")
	cfg.PayOSClientID = viper.GetString("PAYOS_CLIENT_ID")
	cfg.PayOSAPIKey = viper.GetString("PAYOS_API_KEY")
	cfg.PayOSChecksumKey = viper.GetString("PAYOS_CHECKSUM_KEY")
	if cfg.PayOSClientID == "" || cfg.PayOSAPIKey == "" {
		log.Println("Warning: PAYOS_CLIENT_ID/PAYOS_API_KEY not set. Checkout link creation will fail.")
	}
	cfg.PaymentReturnURL = viper.GetString("PAYMENT_RETURN_URL")
	cfg.PaymentCancelURL = viper.GetString("PAYMENT_CANCEL_URL")

	paymentTimeout, err := time.ParseDuration(viper.GetString("PAYMENT_TIMEOUT"))
	if err != nil {
		paymentTimeout = 10 * time.Second
		log.Printf("Warning: Invalid value for PAYMENT_TIMEOUT. Defaulting to %s.\n", paymentTimeout)
	}
	cfg.PaymentTimeout = paymentTimeout

	collabTimeout, err := time.ParseDuration(viper.GetString("COLLABORATOR_TIMEOUT"))
	if err != nil {
		collabTimeout = 2 * time.Second
		log.Printf("Warning: Invalid value for COLLABORATOR_TIMEOUT. Defaulting to %s.\n", collabTimeout)
	}
	cfg.CollaboratorTimeout = collabTimeout

	cfg.StorageEndpoint = viper.GetString("STORAGE_ENDPOINT")
	cfg.StorageBucket = viper.GetString("STORAGE_BUCKET")
	cfg.StorageAPIKey = viper.GetString("STORAGE_API_KEY")
	if cfg.StorageEndpoint == "" {
		log.Println("Warning: STORAGE_ENDPOINT not set. Document file uploads will fail.")
	}

	cfg.SMTPHost = viper.GetString("SMTP_HOST")
	cfg.SMTPPort = viper.GetString("SMTP_PORT")
	cfg.SMTPUser = viper.GetString("SMTP_USER")
	cfg.SMTPPass = viper.GetString("SMTP_PASS")
	cfg.SMTPSender = viper.GetString("SMTP_SENDER")
	if cfg.SMTPHost == "" {
		log.Println("Warning: SMTP_HOST not set. Notification emails will be skipped.")
	}

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = viper.GetString("POSTHOG_ENDPOINT")

	return cfg, nil
}
