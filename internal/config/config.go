package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	JWTSecret   string
	MongoURI    string
	DBName      string
	SkipAuth    bool
	Environment string
	AppId       string
	FSPath      string // Physical directory for file uploads
	FSURL       string // URL path prefix for file access

	CartTTL       time.Duration // Idle carts older than this are purged
	CartPurgeSpec string        // Cron spec for the cart purge job

	// External SQL warehouse for order exports. Empty DSN disables the exporter.
	WarehouseDriver string // "postgres" or "mysql"
	WarehouseDSN    string
	WarehouseSpec   string // Cron spec for the nightly export
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		JWTSecret:   getEnv("JWT_SECRET", "secret"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:      getEnv("DB_NAME", "go-storefront"),
		SkipAuth:    getEnv("SKIP_AUTH", "false") == "true",
		Environment: getEnv("ENVIRONMENT", "development"),
		AppId:       getEnv("APP_ID", "go-storefront"),
		FSPath:      getEnv("FS_PATH", "./uploads"),
		FSURL:       getEnv("FS_URL", "/fs/uploads"),

		CartTTL:       getEnvHours("CART_TTL_HOURS", 72),
		CartPurgeSpec: getEnv("CART_PURGE_SPEC", "0 3 * * *"),

		WarehouseDriver: getEnv("WAREHOUSE_DRIVER", "postgres"),
		WarehouseDSN:    getEnv("WAREHOUSE_DSN", ""),
		WarehouseSpec:   getEnv("WAREHOUSE_SPEC", "30 2 * * *"),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvHours(key string, fallback int) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return time.Duration(n) * time.Hour
		}
	}
	return time.Duration(fallback) * time.Hour
}
