package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const defaultJWTSecret = "bankist-dev-secret-change-me"

type Config struct {
	Env  string
	Port string

	// Session
	JWTSecret      string
	TokenTTL       time.Duration
	SessionTimeout time.Duration
	LoanDelay      time.Duration

	// Redis (optional: rate limiting and maintenance flag)
	RedisURL          string
	MaintenanceBypass string

	CORSOrigins []string

	// Accounts
	SeedFile    string
	PINHashCost int
}

// Load reads the configuration from the environment. Call godotenv.Load
// beforehand to pick up a .env file.
func Load() (*Config, error) {
	var parseErrs []string

	cfg := &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8080"),

		JWTSecret:      getEnv("JWT_SECRET", defaultJWTSecret),
		TokenTTL:       getEnvDuration("TOKEN_TTL", time.Hour, &parseErrs),
		SessionTimeout: getEnvDuration("SESSION_TIMEOUT", 300*time.Second, &parseErrs),
		LoanDelay:      getEnvDuration("LOAN_DELAY", 2500*time.Millisecond, &parseErrs),

		RedisURL:          getEnv("REDIS_URL", ""),
		MaintenanceBypass: getEnv("MAINTENANCE_BYPASS_TOKEN", ""),

		CORSOrigins: getEnvList("CORS_ORIGINS", []string{"http://localhost:3000"}),

		SeedFile:    getEnv("SEED_FILE", ""),
		PINHashCost: getEnvInt("PIN_HASH_COST", bcrypt.DefaultCost, &parseErrs),
	}

	if err := cfg.validate(parseErrs); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	return c.validate(nil)
}

// validate reports errs, the values that could not be parsed, together with
// every rule the configuration breaks.
func (c *Config) validate(errs []string) error {

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.SessionTimeout < time.Second {
		errs = append(errs, fmt.Sprintf("invalid session timeout %s: must be at least 1s", c.SessionTimeout))
	}
	if c.LoanDelay < 0 {
		errs = append(errs, fmt.Sprintf("invalid loan delay %s: must not be negative", c.LoanDelay))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, fmt.Sprintf("invalid token ttl %s: must be positive", c.TokenTTL))
	}

	if c.IsProduction() && (c.JWTSecret == "" || c.JWTSecret == defaultJWTSecret) {
		errs = append(errs, "JWT_SECRET must be set in production")
	}

	if c.PINHashCost < bcrypt.MinCost || c.PINHashCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Sprintf("invalid PIN hash cost %d: must be between %d and %d", c.PINHashCost, bcrypt.MinCost, bcrypt.MaxCost))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt appends to errs and returns the default when the value is set but
// not an integer.
func getEnvInt(key string, defaultValue int, errs *[]string) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	i, err := strconv.Atoi(value)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid %s '%s': must be a whole number", key, value))
		return defaultValue
	}
	return i
}

// getEnvDuration appends to errs and returns the default when the value is
// set but not a Go duration such as "300s" or "2.5s".
func getEnvDuration(key string, defaultValue time.Duration, errs *[]string) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid %s '%s': must be a duration with a unit, e.g. 300s", key, value))
		return defaultValue
	}
	return d
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
