package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config aggregates everything the service reads from the environment
type Config struct {
	Env      string `env:"ENV" envDefault:"development"`
	Port     string `env:"PORT" envDefault:"8080"`
	Log      Log
	Postgres Postgres
	Drive    Drive
	Redis    Redis
	Company  Company
	Document Document
	Sessions Sessions
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"console"`
}

// Postgres accepts either DATABASE_URL or the individual DB_* parts
type Postgres struct {
	URL             string        `env:"DATABASE_URL" json:"-"`
	Host            string        `env:"DB_HOST"`
	Port            string        `env:"DB_PORT" envDefault:"5432"`
	User            string        `env:"DB_USER"`
	Password        string        `env:"DB_PASSWORD" json:"-"`
	Name            string        `env:"DB_NAME"`
	SSLMode         string        `env:"DB_SSLMODE" envDefault:"disable"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
}

type Drive struct {
	CredentialsPath     string `env:"GOOGLE_APPLICATION_CREDENTIALS"`
	AttachmentsFolderID string `env:"DRIVE_ATTACHMENTS_FOLDER_ID"`
}

// Redis is optional; when Addr is empty the retry outbox is disabled
type Redis struct {
	Addr     string `env:"REDIS_ADDR"`
	Username string `env:"REDIS_USERNAME"`
	Password string `env:"REDIS_PASSWORD" json:"-"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// Company is printed in the header of every generated document
type Company struct {
	Name    string `env:"COMPANY_NAME" envDefault:"Dealdesk Motors"`
	Address string `env:"COMPANY_ADDRESS"`
	Phone   string `env:"COMPANY_PHONE"`
	TaxID   string `env:"COMPANY_TAX_ID"`
}

type Document struct {
	VATRate    float64 `env:"VAT_RATE" envDefault:"0.17"`
	Currency   string  `env:"CURRENCY_SYMBOL" envDefault:"₪"`
	ChromePath string  `env:"CHROME_PATH"`
}

type Sessions struct {
	TTL time.Duration `env:"FORM_SESSION_TTL" envDefault:"2h"`
}

// Load reads .env (outside production) and parses the environment into Config
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	cfg.Port = strings.TrimPrefix(cfg.Port, ":")
	if cfg.Document.VATRate < 0 {
		return Config{}, fmt.Errorf("VAT_RATE must not be negative, got %v", cfg.Document.VATRate)
	}

	return cfg, nil
}

// DSN returns DATABASE_URL or builds a key/value connection string from the DB_* parts
func (p Postgres) DSN() (string, error) {
	if p.URL != "" {
		return p.URL, nil
	}
	if p.Host == "" || p.User == "" || p.Name == "" {
		return "", fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Name, p.SSLMode), nil
}

// RetryEnabled reports whether failed best-effort steps are replayed through asynq
func (c Config) RetryEnabled() bool {
	return c.Redis.Addr != ""
}
