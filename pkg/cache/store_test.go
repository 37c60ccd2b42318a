package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/hnscope/pkg/domain"
)

func completeStory(id int64) *domain.Story {
	s := domain.NewStory(domain.Story{ID: id, Title: "cached", Author: "alice", Points: 5})
	s.SetArticle(domain.Article{HTML: "<p>x</p>", Text: "x"})
	s.SetScreenshot(domain.ScreenshotResult{Path: "/static/screenshots/1.png"})
	s.SetHook("hook")
	s.SetComments([]domain.Comment{{Author: "bob", Text: "nice"}})
	s.SetAnalysis(domain.Analysis{Text: "analysis", Metadata: domain.AnalysisMetadata{Model: "m"}})
	return s
}

func TestStore_PutGet(t *testing.T) {
	st, err := New(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)

	_, ok := st.Get(1)
	assert.False(t, ok)

	story := completeStory(1)
	st.Put(1, story)
	assert.FileExists(t, filepath.Join(st.dir, "1.json"))

	got, ok := st.Get(1)
	require.True(t, ok)
	assert.Equal(t, story, got)

	// overwrite keeps a single entry and no temp files
	story.Hook = "new hook"
	st.Put(1, story)
	got, ok = st.Get(1)
	require.True(t, ok)
	assert.Equal(t, "new hook", got.Hook)
	entries, err := os.ReadDir(st.dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_GetIncomplete(t *testing.T) {
	st, err := New(t.TempDir())
	require.NoError(t, err)

	full, err := json.Marshal(completeStory(1))
	require.NoError(t, err)

	without := func(key string) []byte {
		var raw map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(full, &raw))
		delete(raw, key)
		data, err := json.Marshal(raw)
		require.NoError(t, err)
		return data
	}
	withVersion := func(v string) []byte {
		var raw map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(full, &raw))
		raw["schema_version"] = json.RawMessage(v)
		data, err := json.Marshal(raw)
		require.NoError(t, err)
		return data
	}

	tests := []struct {
		name string
		data []byte
	}{
		{name: "not json", data: []byte("{broken")},
		{name: "missing hook", data: without("hook")},
		{name: "missing analysis", data: without("analysis")},
		{name: "missing screenshot_error", data: without("screenshot_error")},
		{name: "old schema", data: withVersion("0")},
		{name: "schema not a number", data: withVersion(`"1"`)},
		{name: "legacy record", data: without("schema_version")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, os.WriteFile(st.path(7), tt.data, 0o600))
			_, ok := st.Get(7)
			assert.False(t, ok)
		})
	}
}

func TestStore_GetAllowsNullScreenshot(t *testing.T) {
	st, err := New(t.TempDir())
	require.NoError(t, err)

	story := completeStory(3)
	story.SetScreenshot(domain.ScreenshotResult{Reason: "Screenshot blocked by site"})
	st.Put(3, story)

	got, ok := st.Get(3)
	require.True(t, ok)
	assert.Nil(t, got.ScreenshotPath)
	require.NotNil(t, got.ScreenshotError)
	assert.Equal(t, "Screenshot blocked by site", *got.ScreenshotError)
}

func TestStore_PutFailureIsLogged(t *testing.T) {
	st, err := New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(st.dir))

	assert.NotPanics(t, func() { st.Put(5, completeStory(5)) })
	_, ok := st.Get(5)
	assert.False(t, ok)
}

func TestNew_EmptyDir(t *testing.T) {
	_, err := New("")
	require.Error(t, err)
}
