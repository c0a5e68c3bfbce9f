package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds process configuration. Values come from the environment (after
// an optional .env file) and can be overlaid at runtime, e.g. from SSM.
type Config struct {
	v *viper.Viper
}

var defaults = map[string]any{
	"PORT":                  "8080",
	"DB_TYPE":               "postgres",
	"SQLITE_PATH":           "portfolio.db",
	"READ_TIMEOUT_SECONDS":  180,
	"WRITE_TIMEOUT_SECONDS": 180,
	"IDLE_TIMEOUT_SECONDS":  180,
	"JWT_TTL_HOURS":         24,
	"ENFORCE_ADMIN_AUTH":    false,
	"LOG_LEVEL":             "info",
	"LOG_REQUESTS":          true,
	"AWS_REGION":            "us-east-1",
}

// Load reads the .env file (if any) and returns the environment-backed config
func Load(envFiles ...string) *Config {
	if err := godotenv.Load(envFiles...); err != nil {
		log.Warn().Err(err).Msg("Error loading .env file, using existing environment variables")
	}
	return New()
}

func New() *Config {
	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	return &Config{v: v}
}

// FromMap builds a config from fixed values, ignoring the environment
func FromMap(values map[string]string) *Config {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	for key, value := range values {
		v.Set(key, value)
	}
	return &Config{v: v}
}

// Overlay replaces values, taking precedence over the environment
func (c *Config) Overlay(values map[string]string) {
	for key, value := range values {
		c.v.Set(key, value)
	}
}

func GetString(config *Config, key string, defaultValue string) string {
	if config == nil || !config.v.IsSet(key) {
		return defaultValue
	}
	return config.v.GetString(key)
}

func GetInt(config *Config, key string, defaultValue int) int {
	if config == nil || !config.v.IsSet(key) {
		return defaultValue
	}

	asInt, err := strconv.Atoi(strings.TrimSpace(config.v.GetString(key)))
	if err != nil {
		return defaultValue
	}
	return asInt
}

func GetBool(config *Config, key string, defaultValue bool) bool {
	if config == nil || !config.v.IsSet(key) {
		return defaultValue
	}

	switch strings.ToLower(strings.TrimSpace(config.v.GetString(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return defaultValue
	}
}

// GetSeconds reads an integer number of seconds as a duration
func GetSeconds(config *Config, key string, defaultValue int) time.Duration {
	return time.Duration(GetInt(config, key, defaultValue)) * time.Second
}

// GetList splits a comma separated value, dropping empty entries
func GetList(config *Config, key string) []string {
	var out []string
	for _, item := range strings.Split(GetString(config, key, ""), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
