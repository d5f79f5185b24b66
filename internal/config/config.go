package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Env       string `env:"APP_ENV" envDefault:"development"`
	Port      string `env:"PORT" envDefault:"3000"`
	APIPrefix string `env:"API_PREFIX" envDefault:"/api/v1"`
	// StoreDriver selects the persistence backend: "mongo" or "memory".
	StoreDriver string `env:"STORE_DRIVER" envDefault:"mongo"`
	// CORSOrigins is a comma separated allow list. Empty allows any origin
	// without credentials.
	CORSOrigins string `env:"CORS_ORIGINS"`

	Mongo   MongoConfig
	JWT     JWTConfig
	Cookie  CookieConfig
	Storage StorageConfig
	Minio   MinioConfig
}

type MongoConfig struct {
	URI      string        `env:"MONGO_URL" envDefault:"mongodb://localhost:27017"`
	Database string        `env:"MONGO_DATABASE" envDefault:"storefront"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT" envDefault:"10s"`
}

// JWTConfig.TTL drives both the token exp claim and the cookie expiry.
type JWTConfig struct {
	Secret string        `env:"JWT_SECRET,notEmpty"`
	TTL    time.Duration `env:"JWT_TTL" envDefault:"1h"`
}

type CookieConfig struct {
	Name   string `env:"COOKIE_NAME" envDefault:"token"`
	Secure bool   `env:"COOKIE_SECURE" envDefault:"false"`
}

type StorageConfig struct {
	Driver       string `env:"STORAGE_DRIVER" envDefault:"local"`
	PublicDir    string `env:"PUBLIC_DIR" envDefault:"./public"`
	MaxImageSize int64  `env:"MAX_IMAGE_SIZE" envDefault:"1048576"`
}

type MinioConfig struct {
	Endpoint  string `env:"MINIO_ENDPOINT" envDefault:"localhost:9000"`
	AccessKey string `env:"MINIO_ACCESS_KEY" envDefault:"minioadmin"`
	SecretKey string `env:"MINIO_SECRET_KEY" envDefault:"minioadmin"`
	Bucket    string `env:"MINIO_BUCKET" envDefault:"product-images"`
	UseSSL    bool   `env:"MINIO_USE_SSL" envDefault:"false"`
}

// Load reads an optional .env file and parses the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it, using environment variables")
	}
	return Parse()
}

// Parse builds a Config from the current process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case "mongo", "memory":
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}
	switch c.Storage.Driver {
	case "local", "minio":
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.Storage.Driver)
	}
	if c.JWT.TTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive, got %s", c.JWT.TTL)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}
