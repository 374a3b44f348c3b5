package config

import (
	"os"
	"strconv"
	"time"

	"github.com/llshivamsinghll/bank-wallet/internal/services/limits"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Config is the process configuration assembled once in main and passed
// down explicitly.
type Config struct {
	Env               string
	Port              string
	StorageDriver     string
	DatabaseDSN       string
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	CacheTTL          time.Duration
	JWTSecret         string
	TokenTTL          time.Duration
	DefaultCurrency   string
	SettlementDelay   time.Duration
	SettlementWorkers int
	SettlementQueue   int
	AuthRateLimit     int
	CORSOrigins       string
	Limits            limits.Config
}

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("no .env file found: %v", err)
	}
}

// Load reads the full configuration from the environment.
func Load() Config {
	return Config{
		Env:               GetEnv("ENV", "development"),
		Port:              GetEnv("PORT", "3000"),
		StorageDriver:     GetEnv("STORAGE_DRIVER", "postgres"),
		DatabaseDSN:       databaseDSN(),
		RedisAddr:         GetEnv("REDIS_HOST", "localhost") + ":" + GetEnv("REDIS_PORT", "6379"),
		RedisPassword:     GetEnv("REDIS_PASSWORD", ""),
		RedisDB:           GetIntEnv("REDIS_DB", 0),
		CacheTTL:          GetDurationEnv("CACHE_TTL", 5*time.Minute),
		JWTSecret:         GetEnv("JWT_SECRET", ""),
		TokenTTL:          GetDurationEnv("JWT_TTL", time.Hour),
		DefaultCurrency:   GetEnv("WALLET_CURRENCY", "NGN"),
		SettlementDelay:   GetDurationEnv("SETTLEMENT_DELAY", time.Second),
		SettlementWorkers: GetIntEnv("SETTLEMENT_WORKERS", 4),
		SettlementQueue:   GetIntEnv("SETTLEMENT_QUEUE", 256),
		AuthRateLimit:     GetIntEnv("AUTH_RATE_LIMIT", 5),
		CORSOrigins:       GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		Limits:            LoadLimits(),
	}
}

// LoadLimits reads the wallet limits, falling back to the defaults for any
// variable that is unset or not a decimal.
func LoadLimits() limits.Config {
	d := limits.DefaultConfig()
	return limits.Config{
		MinTransaction: GetDecimalEnv("WALLET_MIN_TRANSACTION", d.MinTransaction),
		MaxTransaction: GetDecimalEnv("WALLET_MAX_TRANSACTION", d.MaxTransaction),
		DailyLimit:     GetDecimalEnv("WALLET_DAILY_LIMIT", d.DailyLimit),
		MonthlyLimit:   GetDecimalEnv("WALLET_MONTHLY_LIMIT", d.MonthlyLimit),
		MaxBalance:     GetDecimalEnv("WALLET_MAX_BALANCE", d.MaxBalance),
	}
}

func databaseDSN() string {
	if dsn := GetEnv("DATABASE_URL", ""); dsn != "" {
		return dsn
	}
	return "host=" + GetEnv("DB_HOST", "localhost") +
		" user=" + GetEnv("DB_USER", "postgres") +
		" password=" + GetEnv("DB_PASSWORD", "postgres") +
		" dbname=" + GetEnv("DB_NAME", "bank_wallet") +
		" port=" + GetEnv("DB_PORT", "5432") +
		" sslmode=disable"
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetDurationEnv accepts Go durations ("1s", "250ms") or a bare number of
// milliseconds.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(val); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultVal
}

func GetDecimalEnv(key string, defaultVal decimal.Decimal) decimal.Decimal {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := decimal.NewFromString(val); err == nil {
			return d
		}
	}
	return defaultVal
}

// IsProduction checks if the app runs in production mode.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}
