// Package config loads process configuration from environment variables,
// following the teacher's viper-based internal/infrastructure/config.Load,
// adapted to the literal flat env var names spec.md §6 fixes (DATABASE_URL,
// REDIS_URL, JWT_SECRET, ...) instead of the teacher's nested YAML keys.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DatabaseURL  string
	RedisURL     string
	JWTSecret    string
	JWTExpiresIn time.Duration

	APIHost string
	APIPort string

	CORSOrigins []string
	FrontendURL string
	APIBaseURL  string

	LogLevel  string
	LogFormat string

	StripeSecretKey     string
	StripeWebhookSecret string
}

// AgentConfig is the edge-process configuration (spec.md §6 "Agent:").
type AgentConfig struct {
	APIURL                string
	NodeID                uint
	NodeSecret            string
	XrayAPIPort           int
	TrafficReportInterval time.Duration
	HeartbeatInterval     time.Duration
}

// Load reads Config from the process environment, applying the defaults
// spec.md §6 documents.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("REDIS_URL", "redis://127.0.0.1:6379")
	v.SetDefault("JWT_EXPIRATION", 86400)
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", "8080")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	dbURL := v.GetString("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	jwtSecret := v.GetString("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	host, port := v.GetString("API_HOST"), v.GetString("API_PORT")
	// API_HOST/API_PORT may alternatively be given as a single "host:port".
	if combined := v.GetString("API_HOST_PORT"); combined != "" {
		if h, p, ok := strings.Cut(combined, ":"); ok {
			host, port = h, p
		}
	}

	return &Config{
		DatabaseURL:         dbURL,
		RedisURL:            v.GetString("REDIS_URL"),
		JWTSecret:           jwtSecret,
		JWTExpiresIn:        time.Duration(v.GetInt64("JWT_EXPIRATION")) * time.Second,
		APIHost:             host,
		APIPort:             port,
		CORSOrigins:         splitCSV(v.GetString("CORS_ORIGINS")),
		FrontendURL:         v.GetString("FRONTEND_URL"),
		APIBaseURL:          v.GetString("API_BASE_URL"),
		LogLevel:            v.GetString("LOG_LEVEL"),
		LogFormat:           v.GetString("LOG_FORMAT"),
		StripeSecretKey:     v.GetString("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: v.GetString("STRIPE_WEBHOOK_SECRET"),
	}, nil
}

// LoadAgent reads AgentConfig from the process environment.
func LoadAgent() (*AgentConfig, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("XRAY_API_PORT", 10085)
	v.SetDefault("TRAFFIC_REPORT_INTERVAL", 30)
	v.SetDefault("HEARTBEAT_INTERVAL", 60)

	apiURL := v.GetString("API_URL")
	if apiURL == "" {
		return nil, fmt.Errorf("API_URL is required")
	}
	secret := v.GetString("NODE_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("NODE_SECRET is required")
	}

	return &AgentConfig{
		APIURL:                apiURL,
		NodeID:                uint(v.GetUint("NODE_ID")),
		NodeSecret:            secret,
		XrayAPIPort:           v.GetInt("XRAY_API_PORT"),
		TrafficReportInterval: time.Duration(v.GetInt64("TRAFFIC_REPORT_INTERVAL")) * time.Second,
		HeartbeatInterval:     time.Duration(v.GetInt64("HEARTBEAT_INTERVAL")) * time.Second,
	}, nil
}

func splitCSV(s string) []string {
	if s == "" || s == "*" {
		return []string{"*"}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
