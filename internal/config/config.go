package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
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

	// Name-registry lookup service
	RegistryMode         string // "http" or "static"
	RegistryBaseURL      string
	RegistryTimeoutSecs  int
	RegistryCacheTTLSecs int

	IdempTTLSecs int
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

func Load() *Config {
	c := &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "bulkpay"),
		MySQLUser: getenv("MYSQL_USER", "bulkpay"),
		MySQLPass: getenv("MYSQL_PASS", "bulkpay"),

		RedisAddr: getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:   getenvInt("REDIS_DB", 0),

		RegistryMode:         getenv("REGISTRY_MODE", "http"),
		RegistryBaseURL:      getenv("REGISTRY_BASE_URL", ""),
		RegistryTimeoutSecs:  getenvInt("REGISTRY_TIMEOUT_SECONDS", 5),
		RegistryCacheTTLSecs: getenvInt("REGISTRY_CACHE_TTL_SECONDS", 600),

		IdempTTLSecs: getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),
	}
	return c
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.RegistryMode {
	case "static":
	case "http":
		if c.RegistryBaseURL == "" {
			return errors.New("REGISTRY_BASE_URL required when REGISTRY_MODE=http")
		}
	default:
		return fmt.Errorf("invalid REGISTRY_MODE %q (want http or static)", c.RegistryMode)
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
