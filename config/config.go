package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	OAuth      OAuthConfig
	Cloudinary CloudinaryConfig
	SMS        SMSConfig
	Gateway    GatewayConfig
	GenAI      GenAIConfig
	Reaper     ReaperConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  []string
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
	Issuer string
}

type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

// SMSConfig for OTP delivery via the Vonage SMS API.
type SMSConfig struct {
	APIKey      string
	APISecret   string
	FromNumber  string
	CountryCode string // E.164 prefix prepended to local numbers, e.g. +91
	OTPExpiry   time.Duration
}

// GatewayConfig holds Razorpay credentials. KeySecret doubles as the HMAC
// key for callback signature verification.
type GatewayConfig struct {
	BaseURL   string
	KeyID     string
	KeySecret string
	Currency  string
}

type GenAIConfig struct {
	APIKey string
	Model  string
}

type ReaperConfig struct {
	Interval time.Duration
	MaxAge   time.Duration
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getenv("PORT", "5000"),
			Env:          getenv("APP_ENV", "development"),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			CORSOrigins:  []string{getenv("FRONTEND_ORIGIN", "http://localhost:3000")},
		},
		Database: DatabaseConfig{
			DSN:             getenv("DATABASE_DSN", "qrmenu:qrmenu@tcp(localhost:3306)/qrmenu?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: time.Hour,
		},
		JWT: JWTConfig{
			Secret: getenv("JWT_SECRET", "change-me-in-production"),
			Expiry: time.Hour,
			Issuer: "qrmenu",
		},
		OAuth: OAuthConfig{
			GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		},
		SMS: SMSConfig{
			APIKey:      os.Getenv("VONAGE_API_KEY"),
			APISecret:   os.Getenv("VONAGE_API_SECRET"),
			FromNumber:  os.Getenv("VONAGE_PHONE_NUMBER"),
			CountryCode: getenv("SMS_COUNTRY_CODE", "+91"),
			OTPExpiry:   5 * time.Minute,
		},
		Gateway: GatewayConfig{
			BaseURL:   getenv("RAZORPAY_BASE_URL", "https://api.razorpay.com"),
			KeyID:     os.Getenv("RAZORPAY_KEY_ID"),
			KeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
			Currency:  getenv("PAYMENT_CURRENCY", "INR"),
		},
		GenAI: GenAIConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  getenv("GEMINI_MODEL", "gemini-2.0-flash"),
		},
		Reaper: ReaperConfig{
			Interval: getminutes("REAPER_INTERVAL_MINUTES", 15),
			MaxAge:   gethours("ORDER_MAX_AGE_HOURS", 3),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getminutes(key string, fallback int64) time.Duration {
	return time.Duration(getint(key, fallback)) * time.Minute
}

func gethours(key string, fallback int64) time.Duration {
	return time.Duration(getint(key, fallback)) * time.Hour
}
