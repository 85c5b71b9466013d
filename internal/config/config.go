package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"kidsafe-backend/internal/safety"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	CatalogBaseURL     string
	CatalogTimeoutSecs int

	IdempTTLSecs int

	// Undo windows: batch actions get the short window, the single-item
	// approve/deny affordance gets its own longer one.
	UndoBatchWindowSecs  int
	UndoSingleWindowSecs int

	// Safety filter term lists, priority-ordered. CSV env overrides the
	// built-in defaults.
	SafetyBlocklist []string
	SafetyWhitelist []string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func getenvCSV(k string, d []string) []string {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return d
	}
	return out
}

func Load() *Config {
	return &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "kidsafe"),
		MySQLUser: getenv("MYSQL_USER", "kidsafe"),
		MySQLPass: getenv("MYSQL_PASS", "kidsafe"),

		RedisAddr: getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:   getenvInt("REDIS_DB", 0),

		CatalogBaseURL:     getenv("CATALOG_BASE_URL", "http://catalog:9090"),
		CatalogTimeoutSecs: getenvInt("CATALOG_TIMEOUT_SECONDS", 5),

		IdempTTLSecs: getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),

		UndoBatchWindowSecs:  getenvInt("UNDO_BATCH_WINDOW_SECONDS", 30),
		UndoSingleWindowSecs: getenvInt("UNDO_SINGLE_WINDOW_SECONDS", 60),

		SafetyBlocklist: getenvCSV("SAFETY_BLOCKLIST", safety.DefaultBlocklist),
		SafetyWhitelist: getenvCSV("SAFETY_WHITELIST", safety.DefaultWhitelist),
	}
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.UndoBatchWindowSecs <= 0 || c.UndoSingleWindowSecs <= 0 {
		return errors.New("undo windows must be positive")
	}
	if len(c.SafetyBlocklist) == 0 {
		return errors.New("safety blocklist must not be empty")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
