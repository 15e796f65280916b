package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "GITHUB_WEBHOOK_SECRET", "TRIGGER_PHRASE", "PROMPT",
		"IGNORE_BOTS", "DEDUPE_TTL_SECONDS", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
		check   func(*testing.T, *Config)
	}{
		{
			name: "defaults",
			env:  map[string]string{"GITHUB_WEBHOOK_SECRET": "s3cret"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 8000, cfg.Port)
				assert.Equal(t, "@claude", cfg.TriggerPhrase)
				assert.Equal(t, "", cfg.Prompt)
				assert.True(t, cfg.IgnoreBots)
				assert.Equal(t, 12*time.Hour, cfg.DedupeTTL)
				assert.Equal(t, "info", cfg.LogLevel)
				assert.Equal(t, "console", cfg.LogFormat)
			},
		},
		{
			name: "all fields present",
			env: map[string]string{
				"GITHUB_WEBHOOK_SECRET": "s3cret",
				"PORT":                  "9090",
				"TRIGGER_PHRASE":        "@bot",
				"PROMPT":                "/review",
				"IGNORE_BOTS":           "false",
				"DEDUPE_TTL_SECONDS":    "60",
				"LOG_LEVEL":             "debug",
				"LOG_FORMAT":            "json",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9090, cfg.Port)
				assert.Equal(t, "@bot", cfg.TriggerPhrase)
				assert.Equal(t, "/review", cfg.Prompt)
				assert.False(t, cfg.IgnoreBots)
				assert.Equal(t, time.Minute, cfg.DedupeTTL)
				assert.Equal(t, "debug", cfg.LogLevel)
				assert.Equal(t, "json", cfg.LogFormat)

				in := cfg.Inputs()
				assert.Equal(t, "/review", in.Prompt)
				assert.Equal(t, "@bot", in.TriggerPhrase)
			},
		},
		{
			name: "invalid numbers fall back to defaults",
			env: map[string]string{
				"GITHUB_WEBHOOK_SECRET": "s3cret",
				"PORT":                  "not-a-port",
				"IGNORE_BOTS":           "maybe",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 8000, cfg.Port)
				assert.True(t, cfg.IgnoreBots)
			},
		},
		{
			name:    "missing webhook secret",
			env:     map[string]string{},
			wantErr: "GITHUB_WEBHOOK_SECRET is required",
		},
		{
			name:    "port out of range",
			env:     map[string]string{"GITHUB_WEBHOOK_SECRET": "s", "PORT": "70000"},
			wantErr: "PORT must be between",
		},
		{
			name:    "non-positive dedupe ttl",
			env:     map[string]string{"GITHUB_WEBHOOK_SECRET": "s", "DEDUPE_TTL_SECONDS": "0"},
			wantErr: "DEDUPE_TTL_SECONDS",
		},
		{
			name:    "unknown log format",
			env:     map[string]string{"GITHUB_WEBHOOK_SECRET": "s", "LOG_FORMAT": "xml"},
			wantErr: "invalid LOG_FORMAT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}
