package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Storage driver names accepted in STORAGE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

type Config struct {
	AppHost     string
	AppPort     int
	FrontendURL string

	StorageDriver string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	MongoURI      string
	MongoDatabase string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	// NotifyEmails receives internal copies of new bookings and contact
	// messages.
	NotifyEmails []string

	JWTSecret string

	AdminEmail    string
	AdminPassword string
}

func Load() Config {
	_ = godotenv.Load(".env")

	cfg := Config{}

	cfg.AppHost = cast.ToString(getOrReturnDefault("APP_HOST", "0.0.0.0"))
	cfg.AppPort = cast.ToInt(getOrReturnDefault("APP_PORT", 5000))
	cfg.FrontendURL = cast.ToString(getOrReturnDefault("FRONTEND_URL", "http://localhost:3000"))

	cfg.StorageDriver = cast.ToString(getOrReturnDefault("STORAGE_DRIVER", DriverPostgres))

	cfg.PostgresHost = cast.ToString(getOrReturnDefault("DB_HOST", "localhost"))
	cfg.PostgresPort = cast.ToString(getOrReturnDefault("DB_PORT", "5432"))
	cfg.PostgresUser = cast.ToString(getOrReturnDefault("DB_USERNAME", "postgres"))
	cfg.PostgresPassword = cast.ToString(getOrReturnDefault("DB_PASSWORD", ""))
	cfg.PostgresDB = cast.ToString(getOrReturnDefault("DB_DATABASE", "msc_booking"))
	cfg.PostgresSSLMode = cast.ToString(getOrReturnDefault("DB_SSLMODE", "disable"))

	cfg.MongoURI = cast.ToString(getOrReturnDefault("MONGO_URI", "mongodb://localhost:27017"))
	cfg.MongoDatabase = cast.ToString(getOrReturnDefault("MONGO_DATABASE", "msc_booking"))

	cfg.SMTPHost = cast.ToString(getOrReturnDefault("SMTP_HOST", "localhost"))
	cfg.SMTPPort = cast.ToInt(getOrReturnDefault("SMTP_PORT", 587))
	cfg.SMTPUsername = cast.ToString(getOrReturnDefault("SMTP_USERNAME", ""))
	cfg.SMTPPassword = cast.ToString(getOrReturnDefault("SMTP_PASSWORD", ""))
	cfg.SMTPFrom = cast.ToString(getOrReturnDefault("SMTP_FROM", "no-reply@msctaxi.com"))

	notify := cast.ToString(getOrReturnDefault("NOTIFY_EMAILS", ""))
	for _, addr := range strings.Split(notify, ",") {
		addr = strings.TrimSpace(addr)
		if addr != "" {
			cfg.NotifyEmails = append(cfg.NotifyEmails, addr)
		}
	}

	cfg.JWTSecret = cast.ToString(getOrReturnDefault("JWT_SECRET", ""))

	cfg.AdminEmail = cast.ToString(getOrReturnDefault("ADMIN_EMAIL", "admin@msctaxi.com"))
	cfg.AdminPassword = cast.ToString(getOrReturnDefault("ADMIN_PASSWORD", ""))

	return cfg
}

func getOrReturnDefault(key string, defaultValue interface{}) interface{} {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}
