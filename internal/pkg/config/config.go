package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,        default=8080"`
	Env       string        `env:"ENV,         default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,   default=24h"`
	LogLevel  string        `env:"LOG_LEVEL,   default=info"`

	// StoreDriver selects the persistence backend: "memory" or "mongo".
	StoreDriver string `env:"STORE_DRIVER, default=memory"`
	// UploadDir is where invoice PDF documents are stored and served from.
	UploadDir string `env:"UPLOAD_DIR,   default=uploads"`

	// BootstrapAdmin seeds a default admin/admin account when no user with
	// that username exists. Disable outside local development.
	BootstrapAdmin bool `env:"BOOTSTRAP_ADMIN, default=true"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=crm_system"`
}

type RedisConfig struct {
	// Addr empty means redis is not used; the in-memory token revoker is
	// wired instead.
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
