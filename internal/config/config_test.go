package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvVars = []string{
	"PORT",
	"GIN_MODE",
	"SHUTDOWN_TIMEOUT",
	"HEALTH_PATH",
	"LOG_LEVEL",
	"LOG_FORMAT",
	"RATE_LIMIT",
	"RATE_LIMIT_PERIOD",
	"CORS_ALLOW_ORIGINS",
}

// cleanEnv clears every variable Load reads for the duration of the test
func cleanEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvVars {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		want    Config
	}{
		{
			name:    "loads defaults",
			envVars: map[string]string{},
			want: Config{
				Server:    ServerConfig{Port: "8080", GinMode: "release", ShutdownTimeout: 10 * time.Second},
				Log:       LogConfig{Level: "info", Format: "json"},
				RateLimit: RateLimitConfig{Limit: 0, Period: time.Minute},
				CORS:      CORSConfig{AllowOrigins: []string{"*"}},
			},
		},
		{
			name: "loads all values set",
			envVars: map[string]string{
				"PORT":               "9090",
				"GIN_MODE":           "debug",
				"SHUTDOWN_TIMEOUT":   "30s",
				"HEALTH_PATH":        "/healthz",
				"LOG_LEVEL":          "DEBUG",
				"LOG_FORMAT":         "text",
				"RATE_LIMIT":         "5",
				"RATE_LIMIT_PERIOD":  "10s",
				"CORS_ALLOW_ORIGINS": "https://a.example.com, https://b.example.com,",
			},
			want: Config{
				Server:    ServerConfig{Port: "9090", GinMode: "debug", ShutdownTimeout: 30 * time.Second, HealthPath: "/healthz"},
				Log:       LogConfig{Level: "debug", Format: "text"},
				RateLimit: RateLimitConfig{Limit: 5, Period: 10 * time.Second},
				CORS:      CORSConfig{AllowOrigins: []string{"https://a.example.com", "https://b.example.com"}},
			},
		},
		{
			name: "falls back on unparsable numbers and durations",
			envVars: map[string]string{
				"RATE_LIMIT":       "lots",
				"SHUTDOWN_TIMEOUT": "soon",
			},
			want: Config{
				Server:    ServerConfig{Port: "8080", GinMode: "release", ShutdownTimeout: 10 * time.Second},
				Log:       LogConfig{Level: "info", Format: "json"},
				RateLimit: RateLimitConfig{Limit: 0, Period: time.Minute},
				CORS:      CORSConfig{AllowOrigins: []string{"*"}},
			},
		},
		{
			name:    "rate limit is opt-in",
			envVars: map[string]string{"RATE_LIMIT": "100"},
			want: Config{
				Server:    ServerConfig{Port: "8080", GinMode: "release", ShutdownTimeout: 10 * time.Second},
				Log:       LogConfig{Level: "info", Format: "json"},
				RateLimit: RateLimitConfig{Limit: 100, Period: time.Minute},
				CORS:      CORSConfig{AllowOrigins: []string{"*"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanEnv(t)
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tt.want, *cfg)
		})
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr string
	}{
		{
			name:    "non-numeric port",
			envVars: map[string]string{"PORT": "http"},
			wantErr: "PORT must be a number between 1 and 65535",
		},
		{
			name:    "port out of range",
			envVars: map[string]string{"PORT": "70000"},
			wantErr: "PORT must be a number between 1 and 65535",
		},
		{
			name:    "unknown gin mode",
			envVars: map[string]string{"GIN_MODE": "loud"},
			wantErr: "GIN_MODE must be one of release, debug, test",
		},
		{
			name:    "unknown log level",
			envVars: map[string]string{"LOG_LEVEL": "trace"},
			wantErr: "LOG_LEVEL must be one of debug, info, warn, error",
		},
		{
			name:    "unknown log format",
			envVars: map[string]string{"LOG_FORMAT": "xml"},
			wantErr: "LOG_FORMAT must be json or text",
		},
		{
			name:    "negative rate limit",
			envVars: map[string]string{"RATE_LIMIT": "-1"},
			wantErr: "RATE_LIMIT must not be negative",
		},
		{
			name:    "zero rate limit period",
			envVars: map[string]string{"RATE_LIMIT": "5", "RATE_LIMIT_PERIOD": "0s"},
			wantErr: "RATE_LIMIT_PERIOD must be positive when RATE_LIMIT is set",
		},
		{
			name:    "health path without leading slash",
			envVars: map[string]string{"HEALTH_PATH": "health"},
			wantErr: "HEALTH_PATH must start with / and must not be the root path",
		},
		{
			name:    "health path on the root path",
			envVars: map[string]string{"HEALTH_PATH": "/"},
			wantErr: "HEALTH_PATH must start with / and must not be the root path",
		},
		{
			name:    "only separators in origins",
			envVars: map[string]string{"CORS_ALLOW_ORIGINS": " , "},
			wantErr: "CORS_ALLOW_ORIGINS must list at least one origin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanEnv(t)
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			cfg, err := Load()
			assert.Nil(t, cfg)
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestServerConfig_Addr(t *testing.T) {
	s := ServerConfig{Port: "8080"}
	if got := s.Addr(); got != ":8080" {
		t.Errorf("Addr() = %q, want %q", got, ":8080")
	}
}
