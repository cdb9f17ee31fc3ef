package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	AppPort    string
	AppVersion string

	DBDriver string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	PostgresDSN string
	SQLitePath  string

	// RedisAddr empty disables the idempotency guard.
	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	LogLevel  string
	LogFormat string

	HTTPReadTimeout     time.Duration
	HTTPWriteTimeout    time.Duration
	HTTPShutdownTimeout time.Duration

	// CreditScoreCron empty disables the refresher.
	CreditScoreCron string

	DataDir         string
	LoadDataOnStart bool
	AutoMigrate     bool
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// lookupenv keeps an explicitly empty value, which disables optional features.
func lookupenv(k, d string) string {
	if v, ok := os.LookupEnv(k); ok {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if n, err := strconv.Atoi(os.Getenv(k)); err == nil {
		return n
	}
	return d
}

func getbool(k string, d bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(k)); err == nil {
		return b
	}
	return d
}

func getduration(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	// bare numbers are seconds
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return d
}

// Load reads .env (when present) into the environment without overriding
// variables that are already set, then builds the Config.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppPort:    getenv("APP_PORT", "8080"),
		AppVersion: getenv("APP_VERSION", "1.0.0"),

		DBDriver: getenv("DB_DRIVER", DriverMySQL),

		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "credit"),
		MySQLUser: getenv("MYSQL_USER", "credit"),
		MySQLPass: getenv("MYSQL_PASS", "credit"),

		PostgresDSN: os.Getenv("POSTGRES_DSN"),
		SQLitePath:  getenv("SQLITE_PATH", "credit.db"),

		RedisAddr:    lookupenv("REDIS_ADDR", "redis:6379"),
		RedisDB:      getint("REDIS_DB", 0),
		IdempTTLSecs: getint("IDEMPOTENCY_TTL_SECONDS", 300),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "json"),

		HTTPReadTimeout:     getduration("HTTP_READ_TIMEOUT", 10*time.Second),
		HTTPWriteTimeout:    getduration("HTTP_WRITE_TIMEOUT", 10*time.Second),
		HTTPShutdownTimeout: getduration("HTTP_SHUTDOWN_TIMEOUT", 15*time.Second),

		CreditScoreCron: lookupenv("CREDIT_SCORE_CRON", "@daily"),

		DataDir:         getenv("DATA_DIR", "data"),
		LoadDataOnStart: getbool("LOAD_DATA_ON_START", false),
		AutoMigrate:     getbool("AUTO_MIGRATE", true),
	}
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.DBDriver {
	case DriverMySQL:
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return errors.New("missing POSTGRES_DSN")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	default:
		return fmt.Errorf("invalid DB_DRIVER %q (want mysql, postgres or sqlite)", c.DBDriver)
	}
	if c.IdempTTLSecs <= 0 {
		return fmt.Errorf("invalid IDEMPOTENCY_TTL_SECONDS %d", c.IdempTTLSecs)
	}
	if c.HTTPReadTimeout <= 0 || c.HTTPWriteTimeout <= 0 {
		return errors.New("HTTP timeouts must be positive")
	}
	return nil
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	switch c.DBDriver {
	case DriverPostgres:
		return c.PostgresDSN
	case DriverSQLite:
		return c.SQLitePath
	default:
		return c.MySQLDSN()
	}
}

func (c *Config) IdempotencyTTL() time.Duration {
	return time.Duration(c.IdempTTLSecs) * time.Second
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATE/DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
