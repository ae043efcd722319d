package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/scrimhub/scrimbot/pkg/utils"
)

// DefaultMapPool is used when no map pool is configured.
var DefaultMapPool = []string{
	"Ascent", "Bind", "Haven", "Split", "Icebox",
	"Breeze", "Lotus", "Sunset", "Fracture", "Pearl",
}

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Security
	JWTSecret string
	AdminKey  string
	AdminIDs  []string

	// Application
	AppEnv      string
	MetricsPort string
	LogLevel    string

	// Matchmaking
	TeamSize        int
	ReadySeconds    int
	VetoTurnSeconds int
	EloKFactor      int
	BaselineRating  int
	MapPool         []string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "scrimbot"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "scrimbot_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET_KEY", ""),
		AdminKey:  getEnv("ADMIN_KEY", ""),

		AppEnv:      getEnv("APP_ENV", "development"),
		MetricsPort: getEnv("METRICS_PORT", "9090"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		TeamSize:        getEnvInt("TEAM_SIZE", 5),
		ReadySeconds:    getEnvInt("READY_SECONDS", 60),
		VetoTurnSeconds: getEnvInt("VETO_TURN_SECONDS", 90),
		EloKFactor:      getEnvInt("ELO_K_FACTOR", 24),
		BaselineRating:  getEnvInt("BASELINE_RATING", 1000),
	}

	for _, id := range strings.Split(getEnv("ADMIN_IDS", ""), ",") {
		if id = strings.TrimSpace(id); id != "" {
			cfg.AdminIDs = append(cfg.AdminIDs, id)
		}
	}

	pool := getEnv("MAP_POOL", "")
	if pool == "" {
		cfg.MapPool = append([]string(nil), DefaultMapPool...)
	} else {
		for _, m := range strings.Split(pool, ",") {
			if m = strings.TrimSpace(m); m != "" {
				cfg.MapPool = append(cfg.MapPool, m)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DBPassword == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.AdminKey == "" {
		return fmt.Errorf("ADMIN_KEY is required")
	}
	if c.JWTSecret != "" && len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET_KEY must be at least 32 characters")
	}
	if c.TeamSize < 1 {
		return fmt.Errorf("TEAM_SIZE must be positive")
	}
	if c.ReadySeconds < 10 || c.ReadySeconds > 600 {
		return fmt.Errorf("READY_SECONDS must be within 10..600")
	}
	if c.VetoTurnSeconds < 10 || c.VetoTurnSeconds > 600 {
		return fmt.Errorf("VETO_TURN_SECONDS must be within 10..600")
	}
	if len(c.MapPool) < 2 {
		return fmt.Errorf("MAP_POOL needs at least two maps")
	}
	return nil
}

func (c *Config) ValidateProductionSecurity() error {
	if c.AppEnv != "production" {
		return nil
	}

	if c.DBSSLMode != "require" {
		return fmt.Errorf("DB_SSLMODE must be 'require' in production")
	}
	if c.AdminKey == "change_me" {
		return fmt.Errorf("ADMIN_KEY must be changed from default in production")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET_KEY must be set in production")
	}

	return nil
}

func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// IsAdmin reports whether the user id is on the configured admin list.
func (c *Config) IsAdmin(userID string) bool {
	return utils.Contains(c.AdminIDs, userID)
}

// MatchSize is the number of participants needed to start a match.
func (c *Config) MatchSize() int {
	return c.TeamSize * 2
}

func (c *Config) GetReadyTimeout() time.Duration {
	return time.Duration(c.ReadySeconds) * time.Second
}

func (c *Config) GetVetoTurnTimeout() time.Duration {
	return time.Duration(c.VetoTurnSeconds) * time.Second
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
