// Package config загружает конфигурацию сервиса из TOML, .env и переменных окружения
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Auth     AuthConfig     `toml:"auth"`
	Broker   BrokerConfig   `toml:"broker"`
}

// ServerConfig HTTP сервер, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig подключение к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"` // Пусто - только stdout
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// AuthConfig выпуск токенов и хеширование паролей
type AuthConfig struct {
	JWTSecret  string `toml:"jwt_secret"`
	Issuer     string `toml:"issuer"`
	TokenTTL   int    `toml:"token_ttl"` // минуты
	BcryptCost int    `toml:"bcrypt_cost"`
}

// TokenDuration время жизни токена
func (a AuthConfig) TokenDuration() time.Duration {
	return time.Duration(a.TokenTTL) * time.Minute
}

// BrokerConfig публикация уведомлений в RabbitMQ
// При Enabled=false уведомления только пишутся в журнал
type BrokerConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
	Timeout  int    `toml:"timeout"` // секунды
}

// Load читает TOML файл, затем .env (если есть), затем применяет переменные окружения
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: .env: %v", ErrReadConfig, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			ServiceName: "parking-service",
			Path:        "/metrics",
		},
		Auth: AuthConfig{
			Issuer:     "parqhub",
			TokenTTL:   24 * 60,
			BcryptCost: 10,
		},
		Broker: BrokerConfig{
			Exchange: "parqhub.notifications",
			Timeout:  5,
		},
	}
}

// applyEnv переопределяет секреты и адреса из окружения
func (c *Config) applyEnv() error {
	stringVars := map[string]*string{
		"DB_HOST":     &c.Database.Host,
		"DB_USER":     &c.Database.User,
		"DB_PASSWORD": &c.Database.Password,
		"DB_NAME":     &c.Database.DBName,
		"JWT_SECRET":  &c.Auth.JWTSecret,
		"BROKER_URL":  &c.Broker.URL,
		"LOG_LEVEL":   &c.Logs.Level,
	}
	for name, dst := range stringVars {
		if v, ok := os.LookupEnv(name); ok {
			*dst = v
		}
	}

	intVars := map[string]*int{
		"DB_PORT":   &c.Database.Port,
		"HTTP_PORT": &c.Server.HTTPPort,
	}
	for name, dst := range intVars {
		v, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, name, v)
		}
		*dst = n
	}

	if v, ok := os.LookupEnv("BROKER_ENABLED"); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: BROKER_ENABLED=%q is not a boolean", ErrInvalidConfig, v)
		}
		c.Broker.Enabled = enabled
	}
	return nil
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, "server.http_port must be in 1..65535")
	}
	if c.Database.Host == "" || c.Database.User == "" || c.Database.DBName == "" {
		problems = append(problems, "database host, user and dbname are required")
	}
	if len(c.Auth.JWTSecret) < 16 {
		problems = append(problems, "auth.jwt_secret must be at least 16 characters (JWT_SECRET)")
	}
	if c.Auth.TokenTTL <= 0 {
		problems = append(problems, "auth.token_ttl must be positive")
	}
	if c.Broker.Enabled && c.Broker.URL == "" {
		problems = append(problems, "broker.url is required when the broker is enabled (BROKER_URL)")
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		problems = append(problems, "metrics.path must start with /")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
