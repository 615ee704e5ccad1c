package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		setEnv       bool
		envValue     string
		expected     string
	}{
		{
			name:         "env variable set",
			key:          "TEST_KEY",
			defaultValue: "default",
			setEnv:       true,
			envValue:     "custom",
			expected:     "custom",
		},
		{
			name:         "env variable not set",
			key:          "TEST_KEY_NOT_SET",
			defaultValue: "default",
			setEnv:       false,
			expected:     "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			}

			result := getEnv(tt.key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "testuser",
			Password: "testpass",
			Name:     "testdb",
		},
	}

	dsn := cfg.DSN()
	assert.Equal(t, "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable", dsn)
}

func TestConfig_RedisAddr(t *testing.T) {
	cfg := &Config{Redis: RedisConfig{Host: "cache", Port: "6379"}}
	assert.Equal(t, "cache:6379", cfg.RedisAddr())

	cfg.Redis.Host = ""
	assert.Equal(t, "", cfg.RedisAddr())
}

func TestLoad_RequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing bot token",
			env:     map[string]string{"GOOGLE_API_KEY": "k", "DB_PASSWORD": "p"},
			wantErr: "BOT_TOKEN is required",
		},
		{
			name:    "missing google api key",
			env:     map[string]string{"BOT_TOKEN": "t", "DB_PASSWORD": "p"},
			wantErr: "GOOGLE_API_KEY is required",
		},
		{
			name:    "missing db password",
			env:     map[string]string{"BOT_TOKEN": "t", "GOOGLE_API_KEY": "k"},
			wantErr: "DB_PASSWORD is required",
		},
		{
			name: "all present",
			env:  map[string]string{"BOT_TOKEN": "t", "GOOGLE_API_KEY": "k", "DB_PASSWORD": "p"},
		},
	}

	keys := []string{"BOT_TOKEN", "GOOGLE_API_KEY", "DB_PASSWORD"}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range keys {
				os.Unsetenv(k)
			}
			for k, v := range tt.env {
				os.Setenv(k, v)
				defer os.Unsetenv(k)
			}

			cfg, err := Load()

			if tt.wantErr != "" {
				assert.Nil(t, cfg)
				assert.EqualError(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "t", cfg.BotToken)
			}
		})
	}
}
