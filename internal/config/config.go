package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port            string
	Prod            bool
	MongoURI        string
	MongoDB         string
	JWTSecret       string
	JWTTTLSeconds   int
	BcryptCost      int
	RedisAddr       string
	RateLimitPerMin int
	RabbitURL       string
}

func Load() Config {
	return Config{
		Port:            getenv("APP_PORT", "5000"),
		Prod:            getenv("APP_ENV", "dev") == "prod",
		MongoURI:        getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getenv("MONGO_DB", "devconnecter"),
		JWTSecret:       getenv("JWT_SECRET", "default_secret_key"),
		JWTTTLSeconds:   atoi(getenv("JWT_TTL_SECONDS", "360000")),
		BcryptCost:      atoi(getenv("BCRYPT_COST", "12")),
		RedisAddr:       getenv("REDIS_ADDR", ""),
		RateLimitPerMin: atoi(getenv("RATE_LIMIT_PER_MIN", "0")),
		RabbitURL:       getenv("RABBIT_URL", ""),
	}
}

func atoi(s string) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return 0
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
