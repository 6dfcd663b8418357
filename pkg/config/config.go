package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/dwikikusuma/storefront/pkg/postgres"
	"github.com/dwikikusuma/storefront/pkg/redis"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv    string
	LogLevel  string
	LogFormat string

	GRPCPort int
	HTTPPort int

	CartStore       string
	CatalogStore    string
	CatalogSeedFile string

	Postgres            postgres.Config
	PostgresAutoMigrate bool

	Redis redis.Config

	MongoURI      string
	MongoDatabase string

	Currency           string
	StripeSecretKey    string
	CheckoutSuccessURL string
	CheckoutCancelURL  string

	CORSAllowedOrigins []string
}

// Load reads the environment. Values from a .env file in the working
// directory are used for keys the environment does not already set.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppEnv:    getEnv("APP_ENV", "dev"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
		HTTPPort:  getEnvInt("HTTP_PORT", 8080),
		GRPCPort:  getEnvInt("GRPC_PORT", 8081),

		CartStore:       strings.ToLower(getEnv("CART_STORE", "memory")),
		CatalogStore:    strings.ToLower(getEnv("CATALOG_STORE", "memory")),
		CatalogSeedFile: getEnv("CATALOG_SEED_FILE", ""),

		Postgres: postgres.Config{
			Host:    getEnv("POSTGRES_HOST", "localhost"),
			Port:    getEnvInt("POSTGRES_PORT", 5432),
			User:    getEnv("POSTGRES_USER", "postgres"),
			Pass:    getEnv("POSTGRES_PASSWORD", "postgres"),
			DB:      getEnv("POSTGRES_DB", "storefront"),
			SSLMode: getEnv("POSTGRES_SSLMODE", "disable"),
		},
		PostgresAutoMigrate: getEnvBool("POSTGRES_AUTO_MIGRATE", false),

		Redis: redis.Config{
			Addr:     getEnv("REDIS_ADDRESS", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},

		MongoURI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGODB_DATABASE", "storefront"),

		Currency:           strings.ToUpper(getEnv("STORE_CURRENCY", "USD")),
		StripeSecretKey:    getEnv("STRIPE_SECRET_KEY", ""),
		CheckoutSuccessURL: getEnv("CHECKOUT_SUCCESS_URL", "http://localhost:3000/thankyou?session_id={CHECKOUT_SESSION_ID}"),
		CheckoutCancelURL:  getEnv("CHECKOUT_CANCEL_URL", "http://localhost:3000/cart"),

		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// getEnvList splits a comma separated value, dropping blanks.
func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
