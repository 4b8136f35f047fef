package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unsaidthoughts120-ctrl/Confesssion-Wall-System/internal/relay/config"
)

func TestApplicationConfig_TelegramConfigured(t *testing.T) {
	testCases := []struct {
		name     string
		token    string
		chatID   string
		expected bool
	}{
		{name: "both present", token: "123:abc", chatID: "-100200", expected: true},
		{name: "missing token", token: "", chatID: "-100200", expected: false},
		{name: "missing chat id", token: "123:abc", chatID: "", expected: false},
		{name: "both missing", expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.ApplicationConfig{TelegramBotToken: tc.token, TelegramChatID: tc.chatID}
			assert.Equal(t, tc.expected, cfg.TelegramConfigured())
		})
	}
}

func TestApplicationConfig_Location(t *testing.T) {
	loc, err := config.ApplicationConfig{}.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	loc, err = config.ApplicationConfig{Timezone: "UTC"}.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	_, err = config.ApplicationConfig{Timezone: "Mars/Olympus_Mons"}.Location()
	assert.Error(t, err)
}

func TestServerConfig_Durations(t *testing.T) {
	cfg := config.ServerConfig{
		Port:                   3000,
		ReadTimeoutSeconds:     10,
		WriteTimeoutSeconds:    15,
		ShutdownTimeoutSeconds: 5,
	}

	assert.Equal(t, ":3000", cfg.Address())
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout())
	assert.Equal(t, 15*time.Second, cfg.WriteTimeout())
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout())
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	originalArgs := os.Args
	os.Args = []string{"relay"}
	t.Cleanup(func() { os.Args = originalArgs })

	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-100")
	t.Setenv("PORT", "8080")
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.ApplicationConfig.TelegramBotToken)
	assert.Equal(t, "-100", cfg.ApplicationConfig.TelegramChatID)
	assert.Equal(t, "UTC", cfg.ApplicationConfig.Timezone)
	assert.True(t, cfg.ApplicationConfig.TelegramConfigured())
	assert.Equal(t, "https://api.telegram.org", cfg.ApplicationConfig.TelegramBaseURL)
	assert.Equal(t, 8080, cfg.ServerConfig.Port)
	assert.Equal(t, 10*time.Second, cfg.ServerConfig.ReadTimeout())
}
