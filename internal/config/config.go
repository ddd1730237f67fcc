package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration, read from the environment at
// process start.
type Config struct {
	DatabaseURL string
	HTTPAddr    string
	CORSOrigins []string
	LogLevel    string
	LogFormat   string

	AnalyticsEnabled bool
	KafkaBrokers     []string
	KafkaTopic       string

	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables with sane defaults.
// A .env file, when present, is loaded by the caller before Load runs.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("DATABASE_URL", "gridgames.db")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("ANALYTICS_ENABLED", false)
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_TOPIC", "gridgames.events")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	cfg := &Config{
		DatabaseURL:      v.GetString("DATABASE_URL"),
		HTTPAddr:         v.GetString("HTTP_ADDR"),
		CORSOrigins:      splitAndTrim(v.GetString("CORS_ORIGINS")),
		LogLevel:         v.GetString("LOG_LEVEL"),
		LogFormat:        v.GetString("LOG_FORMAT"),
		AnalyticsEnabled: v.GetBool("ANALYTICS_ENABLED"),
		KafkaBrokers:     splitAndTrim(v.GetString("KAFKA_BROKERS")),
		KafkaTopic:       v.GetString("KAFKA_TOPIC"),
		ShutdownTimeout:  v.GetDuration("SHUTDOWN_TIMEOUT"),
	}
	return cfg, nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
