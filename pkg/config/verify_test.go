package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

func TestVerifyAgainstEmbeddedSchema(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(cfg *Config)
		wantErr string
	}{
		{name: "valid config", modify: func(*Config) {}},
		{name: "missing listen", modify: func(cfg *Config) { cfg.Server.Listen = "" }, wantErr: "server.listen is required"},
		{name: "missing server timeout", modify: func(cfg *Config) { cfg.Server.Timeout = 0 }, wantErr: "server.timeout is required"},
		{name: "missing capture dir", modify: func(cfg *Config) { cfg.Capture.Dir = "" }, wantErr: "capture.dir is required"},
		{name: "missing cache dir", modify: func(cfg *Config) { cfg.Cache.Dir = "" }, wantErr: "cache.dir is required"},
		{name: "missing model", modify: func(cfg *Config) { cfg.LLM.Model = "" }, wantErr: "llm.model is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)
			err := VerifyAgainstEmbeddedSchema(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEmbeddedSchemaMatchesConfig(t *testing.T) {
	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(embeddedSchema), &schema))
	props := schemaProperties(schema)
	for _, key := range []string{"server", "hn", "browser", "capture", "cache", "stream", "llm"} {
		assert.Contains(t, props, key)
	}
}

func TestValidateRequiredFields(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, validateRequiredFields(cfg))

	cfg.HN.BaseURL = ""
	err := validateRequiredFields(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hn.base_url is required")

	cfg = validConfig()
	cfg.Server.Timeout = time.Second
	require.NoError(t, validateRequiredFields(cfg))
}

func TestGenerateSchema(t *testing.T) {
	schema, err := GenerateSchema()
	require.NoError(t, err)
	require.NotNil(t, schema)

	data, err := schema.MarshalJSON()
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	schemaStr := string(data)
	assert.Contains(t, schemaStr, "Config")
	assert.Contains(t, schemaStr, "capture")
	assert.Contains(t, schemaStr, "viewport_heights")
}
