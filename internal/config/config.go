package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full environment surface, loaded once at startup.
type Config struct {
	Env  string
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBTimezone string
	DBAutoSync bool

	JWTSecret string
	JWTExpiry time.Duration

	CORSOrigin string

	SeedAdminPassword string
	RunSeeding        bool
	GeorefBaseURL     string
	GeorefTimeout     time.Duration
}

// Load reads .env (when present) and the environment into a Config.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}

	return &Config{
		Env:  getEnv("APP_ENV", "development"),
		Port: getEnv("PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "geo_directory"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBTimezone: getEnv("DB_TIMEZONE", "UTC"),
		DBAutoSync: getEnvBool("DB_AUTO_SYNC", true),

		JWTSecret: getEnv("JWT_SECRET", "supersecret"),
		JWTExpiry: getEnvDuration("JWT_EXPIRES_IN", time.Hour),

		CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:4200"),

		SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", ""),
		RunSeeding:        getEnvBool("RUN_SEEDING", false),
		GeorefBaseURL:     getEnv("GEOREF_BASE_URL", "https://apis.datos.gob.ar/georef/api"),
		GeorefTimeout:     getEnvDuration("GEOREF_TIMEOUT", 30*time.Second),
	}
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	v, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("invalid boolean for %s: %q, using default", key, v)
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	v, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid duration for %s: %q, using default", key, v)
		return defaultValue
	}
	return parsed
}
