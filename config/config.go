package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config armazena todas as configurações do serviço GoStocktake.
type Config struct {
	// Geral
	Port        string
	Environment string
	LogLevel    string

	// Banco de Dados (PostgreSQL)
	DatabaseURL string
	DBTimeout   time.Duration

	// Cache (Redis)
	RedisAddr       string
	CacheTimeout    time.Duration
	SessionCacheTTL time.Duration

	// Segurança (JWT)
	JWTSecretKey string
	TokenExpiry  time.Duration

	// Rate Limiting
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration
}

// IsDevelopment indica se o logger deve usar a saída legível.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente (via Viper).
// DATABASE_URL e JWT_SECRET_KEY são obrigatórias.
func LoadConfig() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	cfg := &Config{
		Port:        v.GetString("PORT"),
		Environment: v.GetString("ENV"),
		LogLevel:    v.GetString("LOG_LEVEL"),

		DatabaseURL: v.GetString("DATABASE_URL"),
		DBTimeout:   time.Duration(v.GetInt("DB_TIMEOUT_SEC")) * time.Second,

		RedisAddr:       v.GetString("REDIS_ADDR"),
		CacheTimeout:    time.Duration(v.GetInt("CACHE_TIMEOUT_SEC")) * time.Second,
		SessionCacheTTL: time.Duration(v.GetInt("SESSION_CACHE_TTL_SEC")) * time.Second,

		JWTSecretKey: v.GetString("JWT_SECRET_KEY"),
		TokenExpiry:  time.Duration(v.GetInt("JWT_EXPIRY_MIN")) * time.Minute,

		RateLimitMaxRequests: v.GetInt("RATE_LIMIT_MAX_REQUESTS"),
		RateLimitPeriod:      time.Duration(v.GetInt("RATE_LIMIT_PERIOD_MIN")) * time.Minute,
	}

	for key, value := range map[string]string{
		"DATABASE_URL":   cfg.DatabaseURL,
		"JWT_SECRET_KEY": cfg.JWTSecretKey,
	} {
		if value == "" {
			return nil, fmt.Errorf("erro de configuração: a variável de ambiente %s deve ser definida", key)
		}
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_TIMEOUT_SEC", 5)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("CACHE_TIMEOUT_SEC", 10)
	v.SetDefault("SESSION_CACHE_TTL_SEC", 60)
	v.SetDefault("JWT_EXPIRY_MIN", 60)
	v.SetDefault("RATE_LIMIT_MAX_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_PERIOD_MIN", 1)
}

// LoadDatabaseURL lê apenas DATABASE_URL, para ferramentas que não sobem a API (cmd/migrate).
func LoadDatabaseURL() (string, error) {
	v := viper.New()
	v.AutomaticEnv()
	dsn := v.GetString("DATABASE_URL")
	if dsn == "" {
		return "", fmt.Errorf("erro de configuração: a variável de ambiente DATABASE_URL deve ser definida")
	}
	return dsn, nil
}
