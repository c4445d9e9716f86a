package config

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Database DBConfig
	Redis    RedisConfig
	Token    TokenConfig
	Clients  ClientsConfig
	Log      LogConfig

	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
}

type DBConfig struct {
	Host            string        `env:"DB_HOST" envDefault:"127.0.0.1"`
	Port            int           `env:"DB_PORT" envDefault:"3306"`
	User            string        `env:"DB_USER" envDefault:"fxa"`
	Password        string        `env:"DB_PASSWORD"`
	Name            string        `env:"DB_NAME" envDefault:"fxa_oauth"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"15m"`
	PingTimeout     time.Duration `env:"DB_PING_TIMEOUT" envDefault:"5s"`
	QueryTimeout    time.Duration `env:"DB_QUERY_TIMEOUT" envDefault:"5s"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	Username string `env:"REDIS_USERNAME"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	// Prefix namespaces every key written by this deployment.
	Prefix       string        `env:"REDIS_PREFIX" envDefault:"oauth:"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
	OpTimeout    time.Duration `env:"REDIS_OP_TIMEOUT" envDefault:"2s"`
}

type TokenConfig struct {
	MaxTTL time.Duration `env:"ACCESS_TOKEN_MAX_TTL" envDefault:"336h"`
	// HashKeyHex is decoded into HashKey by Load.
	HashKeyHex string `env:"TOKEN_HASH_KEY"`
	HashKey    []byte
}

type ClientsConfig struct {
	File        string        `env:"CLIENTS_FILE"`
	AutoUpdate  bool          `env:"CLIENTS_AUTO_UPDATE" envDefault:"false"`
	WaitTimeout time.Duration `env:"CLIENT_WAIT_TIMEOUT" envDefault:"10s"`
	RetryMax    int           `env:"CLIENT_RETRY_MAX" envDefault:"3"`
}

type LogConfig struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Level       string `env:"LOG_LEVEL" envDefault:"info"`
	File        string `env:"LOG_FILE"`
	MaxSizeMB   int    `env:"LOG_MAX_SIZE_MB" envDefault:"100"`
	MaxBackups  int    `env:"LOG_MAX_BACKUPS" envDefault:"5"`
	MaxAgeDays  int    `env:"LOG_MAX_AGE_DAYS" envDefault:"28"`
}

// Load reads configuration from the environment, after loading a .env file
// if one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

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
	if err := c.Database.validate(); err != nil {
		return err
	}
	if err := c.Redis.validate(); err != nil {
		return err
	}
	if err := c.Token.validate(); err != nil {
		return err
	}

	if c.Clients.WaitTimeout <= 0 {
		return fmt.Errorf("CLIENT_WAIT_TIMEOUT must be greater than zero")
	}
	if c.Clients.RetryMax < 0 {
		return fmt.Errorf("CLIENT_RETRY_MAX must be zero or a positive integer")
	}
	if strings.TrimSpace(c.HTTPAddr) == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	return nil
}

func (c *DBConfig) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("DB_PORT must be between 1 and 65535")
	}

	if c.MaxOpenConns <= 0 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be greater than zero")
	}

	if c.MaxIdleConns < 0 {
		return fmt.Errorf("DB_MAX_IDLE_CONNS must be zero or a positive integer")
	}

	if c.ConnMaxLifetime < 0 {
		return fmt.Errorf("DB_CONN_MAX_LIFETIME must be zero or a positive duration")
	}

	if c.PingTimeout <= 0 {
		return fmt.Errorf("DB_PING_TIMEOUT must be greater than zero")
	}

	if c.QueryTimeout <= 0 {
		return fmt.Errorf("DB_QUERY_TIMEOUT must be greater than zero")
	}

	return nil
}

func (c *RedisConfig) validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("REDIS_ADDR must not be empty")
	}
	if c.DB < 0 {
		return fmt.Errorf("REDIS_DB must be zero or a positive integer")
	}
	if c.OpTimeout <= 0 {
		return fmt.Errorf("REDIS_OP_TIMEOUT must be greater than zero")
	}
	if c.DialTimeout <= 0 || c.ReadTimeout <= 0 || c.WriteTimeout <= 0 {
		return fmt.Errorf("REDIS_DIAL_TIMEOUT, REDIS_READ_TIMEOUT and REDIS_WRITE_TIMEOUT must be greater than zero")
	}
	return nil
}

func (c *TokenConfig) validate() error {
	if c.MaxTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_MAX_TTL must be greater than zero")
	}

	if c.HashKeyHex == "" {
		return nil
	}
	key, err := hex.DecodeString(c.HashKeyHex)
	if err != nil {
		return fmt.Errorf("invalid TOKEN_HASH_KEY: %w", err)
	}
	if len(key) > 64 {
		return fmt.Errorf("TOKEN_HASH_KEY must be at most 64 bytes")
	}
	c.HashKey = key
	return nil
}
