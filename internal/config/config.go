package config // package config loads application configuration from the environment

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable (or a flag bound to the same key).
type Config struct {
	Env             string        // APP_ENV: dev, test or prod
	Port            string        // APP_PORT: HTTP port to listen on
	JWTSecret       string        // JWT_SECRET: signs session and admin tokens
	SessionTTL      time.Duration // SESSION_TTL_MIN: idle lifetime of a guest session
	SweepEvery      time.Duration // SESSION_SWEEP_EVERY: how often idle sessions are evicted
	AdminPassword   string        // ADMIN_PASSWORD: empty disables admin login
	BcryptCost      int           // BCRYPT_COST: cost used to hash the admin password
	TaxPercent      int           // TAX_PERCENT: tax applied at checkout
	RabbitURL       string        // RABBITMQ_URL (or AMQP_URL): empty disables events
	ConsumerEnabled bool          // ORDER_CONSUMER_ENABLED: run the order log consumer
	OrderLogDir     string        // ORDER_LOG_DIR: where the consumer writes orders.log
	DB              DBConfig
}

// DBConfig locates the optional MySQL receipt archive.  An empty Host
// disables the archive.
type DBConfig struct {
	User string
	Pass string
	Host string
	Port string
	Name string
}

// Enabled reports whether a database host was configured.
func (d DBConfig) Enabled() bool { return d.Host != "" }

// ErrMissingSecret is returned when JWT_SECRET is not set.
var ErrMissingSecret = errors.New("missing required env var: JWT_SECRET")

var defaults = map[string]any{
	"APP_ENV":                "dev",
	"APP_PORT":               "8080",
	"SESSION_TTL_MIN":        120,
	"SESSION_SWEEP_EVERY":    "1m",
	"BCRYPT_COST":            10,
	"TAX_PERCENT":            5,
	"ORDER_CONSUMER_ENABLED": true,
	"ORDER_LOG_DIR":          "logs",
	"DB_PORT":                "3306",
}

// NewViper returns a viper instance reading from the environment, after
// loading a .env file when one exists.  Defaults are registered for every
// optional key.
func NewViper() *viper.Viper {
	_ = godotenv.Load()
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	return v
}

// Load builds a Config from v.  JWT_SECRET is the only required key.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Env:             v.GetString("APP_ENV"),
		Port:            v.GetString("APP_PORT"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		SessionTTL:      time.Duration(v.GetInt("SESSION_TTL_MIN")) * time.Minute,
		SweepEvery:      v.GetDuration("SESSION_SWEEP_EVERY"),
		AdminPassword:   v.GetString("ADMIN_PASSWORD"),
		BcryptCost:      v.GetInt("BCRYPT_COST"),
		TaxPercent:      v.GetInt("TAX_PERCENT"),
		RabbitURL:       v.GetString("RABBITMQ_URL"),
		ConsumerEnabled: v.GetBool("ORDER_CONSUMER_ENABLED"),
		OrderLogDir:     v.GetString("ORDER_LOG_DIR"),
		DB: DBConfig{
			User: v.GetString("DB_USER"),
			Pass: v.GetString("DB_PASS"),
			Host: v.GetString("DB_HOST"),
			Port: v.GetString("DB_PORT"),
			Name: v.GetString("DB_NAME"),
		},
	}
	if cfg.RabbitURL == "" {
		cfg.RabbitURL = v.GetString("AMQP_URL")
	}
	if cfg.JWTSecret == "" {
		return Config{}, ErrMissingSecret
	}
	if cfg.TaxPercent < 0 {
		cfg.TaxPercent = 0
	}
	return cfg, nil
}
