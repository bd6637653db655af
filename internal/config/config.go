// README: Config loader with env defaults for HTTP, Firebase, Maps, Redis, and notifications.
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	Firebase struct {
		ProjectID       string
		CredentialsFile string
	}
	Maps struct {
		APIKey   string
		CacheTTL time.Duration
	}
	Redis struct {
		Addr string
	}
	Store struct {
		Timeout time.Duration
	}
	WhatsApp struct {
		Endpoint string
		Token    string
	}
	Pricing struct {
		// RatesFile optionally points to a JSON vehicle catalog; when empty
		// the built-in catalog is used.
		RatesFile string
	}
	Invoice struct {
		OperatorName  string
		OperatorPhone string
	}
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("TAXI_HTTP_ADDR", ":8080")
	cfg.Firebase.ProjectID = envOrError("TAXI_FIREBASE_PROJECT_ID")
	cfg.Firebase.CredentialsFile = envOrDefault("TAXI_FIREBASE_CREDENTIALS", "")
	cfg.Maps.APIKey = envOrError("GOOGLE_MAPS_API_KEY")
	cfg.Maps.CacheTTL = time.Duration(envOrDefaultInt("TAXI_ROUTE_CACHE_TTL_SECONDS", 600)) * time.Second
	cfg.Redis.Addr = envOrDefault("TAXI_REDIS_ADDR", "localhost:6379")
	cfg.Store.Timeout = time.Duration(envOrDefaultInt("TAXI_STORE_TIMEOUT_SECONDS", 10)) * time.Second
	cfg.WhatsApp.Endpoint = envOrDefault("TAXI_WHATSAPP_ENDPOINT", "")
	cfg.WhatsApp.Token = envOrDefault("TAXI_WHATSAPP_TOKEN", "")
	cfg.Pricing.RatesFile = envOrDefault("TAXI_RATES_FILE", "")
	cfg.Invoice.OperatorName = envOrDefault("TAXI_OPERATOR_NAME", "Pranav Drop Taxi")
	cfg.Invoice.OperatorPhone = envOrDefault("TAXI_OPERATOR_PHONE", "+91 98849 49171")
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrError(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	panic("environment variable " + key + " is required")
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
