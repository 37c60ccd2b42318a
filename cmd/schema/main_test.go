package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	out := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, generate(out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	type property struct {
		Type    string `json:"type"`
		Pattern string `json:"pattern"`
		Default any    `json:"default"`
	}
	var schema struct {
		Title string `json:"title"`
		Defs  map[string]struct {
			Properties map[string]property `json:"properties"`
		} `json:"$defs"`
	}
	require.NoError(t, json.Unmarshal(data, &schema))
	assert.Equal(t, "hnscope configuration", schema.Title)

	cfg, ok := schema.Defs["Config"]
	require.True(t, ok, "config definition is present")
	for _, key := range []string{"server", "hn", "browser", "capture", "cache", "stream", "llm"} {
		assert.Contains(t, cfg.Properties, key)
	}

	stream, ok := schema.Defs["StreamConfig"]
	require.True(t, ok, "stream definition is present")
	delay := stream.Properties["delay"]
	assert.Equal(t, "string", delay.Type, "durations are strings")
	assert.Equal(t, "100ms", delay.Default)
	assert.Regexp(t, delay.Pattern, "1m30s")
	assert.NotRegexp(t, delay.Pattern, "100")
}

func TestGenerate_BadPath(t *testing.T) {
	err := generate(filepath.Join(t.TempDir(), "missing", "schema.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write schema to")
}
