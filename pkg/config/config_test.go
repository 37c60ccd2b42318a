package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "test-config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))
	return configPath
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		configContent := `
server:
  listen: ":9090"
  timeout: 45s
hn:
  base_url: https://hn.example.com
  rss_url: https://hn.example.com/rss
  comments_limit: 5
capture:
  dir: /tmp/shots
  viewport_heights: [900, 1800]
  block_phrases: ["go away"]
stream:
  delay: 250ms
llm:
  endpoint: http://localhost:11434/v1
  api_key: key
  model: llama3
  temperature: 0.2
  limits:
    max_content: 5000
`
		cfg, err := Load(writeConfig(t, configContent))
		require.NoError(t, err)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
		assert.Equal(t, "https://hn.example.com", cfg.HN.BaseURL)
		assert.Equal(t, "https://hn.example.com/rss", cfg.HN.RSSURL)
		assert.Equal(t, 5, cfg.HN.CommentsLimit)
		assert.Equal(t, "/tmp/shots", cfg.Capture.Dir)
		assert.Equal(t, []int{900, 1800}, cfg.Capture.ViewportHeights)
		assert.Equal(t, []string{"go away"}, cfg.Capture.BlockPhrases)
		assert.Equal(t, 250*time.Millisecond, cfg.Stream.Delay)
		assert.Equal(t, "llama3", cfg.LLM.Model)
		assert.InDelta(t, 0.2, cfg.LLM.Temperature, 0.0001)
		assert.Equal(t, 5000, cfg.LLM.Limits.MaxContent)
		assert.Equal(t, 50, cfg.LLM.Limits.MinContent)
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "llm:\n  api_key: k\n"))
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.Server.Listen)
		assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
		assert.Equal(t, "https://news.ycombinator.com", cfg.HN.BaseURL)
		assert.Equal(t, 30, cfg.HN.PageSize)
		assert.Equal(t, 10, cfg.HN.CommentsLimit)
		assert.True(t, cfg.Browser.Headless)
		assert.Equal(t, defaultContainerSelectors, cfg.Browser.ContainerSelectors)
		assert.Equal(t, defaultBotPhrases, cfg.Browser.BotPhrases)
		assert.Equal(t, 500, cfg.Browser.MinBlockLength)
		assert.Equal(t, "static/screenshots", cfg.Capture.Dir)
		assert.Equal(t, "/static/screenshots/", cfg.Capture.URLPrefix)
		assert.Equal(t, []int{800, 1200, 1600}, cfg.Capture.ViewportHeights)
		assert.Equal(t, defaultCMSMarkers, cfg.Capture.CMSMarkers)
		assert.Equal(t, "cache", cfg.Cache.Dir)
		assert.Equal(t, 100*time.Millisecond, cfg.Stream.Delay)
		assert.Equal(t, "gemini-1.5-flash", cfg.LLM.Model)
		assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
		assert.Equal(t, 15000, cfg.LLM.Limits.MaxContent)
		assert.Equal(t, 10, cfg.LLM.Limits.MaxComments)
	})

	t.Run("env expansion", func(t *testing.T) {
		t.Setenv("TEST_HNSCOPE_KEY", "secret-key")
		cfg, err := Load(writeConfig(t, "llm:\n  api_key: ${TEST_HNSCOPE_KEY}\n"))
		require.NoError(t, err)
		assert.Equal(t, "secret-key", cfg.LLM.APIKey)
	})

	t.Run("headless can be disabled", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "browser:\n  headless: false\n"))
		require.NoError(t, err)
		assert.False(t, cfg.Browser.Headless)
	})

	t.Run("file not found", func(t *testing.T) {
		cfg, err := Load("/non/existent/file.yml")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "server: [unclosed"))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "parse config")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{name: "temperature too high", content: "llm:\n  temperature: 3\n", errMsg: "llm.temperature must be between 0 and 2"},
		{name: "short llm timeout", content: "llm:\n  timeout: 10ms\n", errMsg: "llm.timeout must be at least 1 second"},
		{name: "bad viewport", content: "capture:\n  viewport_heights: [800, -1]\n", errMsg: "capture.viewport_heights must be positive"},
		{name: "short server timeout", content: "server:\n  timeout: 1ms\n", errMsg: "server timeout must be at least 1 second"},
		{name: "content bounds", content: "llm:\n  limits:\n    min_content: 100\n    max_content: 10\n", errMsg: "min_content must not exceed max_content"},
		{name: "negative delay", content: "stream:\n  delay: -1s\n", errMsg: "stream.delay must be non-negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLimitsConfig_WithDefaults(t *testing.T) {
	l := LimitsConfig{MaxContent: 100}.WithDefaults()
	assert.Equal(t, 100, l.MaxContent)
	assert.Equal(t, 50, l.MinContent)
	assert.Equal(t, 5, l.MinComment)
	assert.Equal(t, defaultErrorPatterns, l.ErrorPatterns)
}

func TestConfig_GetServerConfig(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Listen = ":1234"
	cfg.Server.Timeout = time.Minute
	listen, timeout := cfg.GetServerConfig()
	assert.Equal(t, ":1234", listen)
	assert.Equal(t, time.Minute, timeout)
}
