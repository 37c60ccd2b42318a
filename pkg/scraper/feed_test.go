package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:dc="http://purl.org/dc/elements/1.1/">
<channel>
<title>Hacker News: Front Page</title>
<link>https://news.ycombinator.com/</link>
<item>
  <title>First story</title>
  <description><![CDATA[<p>Article URL: <a href="https://example.com/1">https://example.com/1</a></p>
<p>Comments URL: <a href="https://news.ycombinator.com/item?id=111">https://news.ycombinator.com/item?id=111</a></p>
<p>Points: 120</p><p># Comments: 33</p>]]></description>
  <pubDate>Wed, 01 May 2024 10:00:00 +0000</pubDate>
  <dc:creator>alice</dc:creator>
  <link>https://example.com/1</link>
  <guid isPermaLink="false">https://news.ycombinator.com/item?id=111</guid>
</item>
<item>
  <title>Ask HN: second</title>
  <description><![CDATA[<p>Comments URL: https://news.ycombinator.com/item?id=222</p>]]></description>
  <link>https://news.ycombinator.com/item?id=222</link>
  <guid>https://news.ycombinator.com/item?id=222</guid>
</item>
<item>
  <title>No id</title>
  <link>https://example.com/3</link>
</item>
</channel>
</rss>`

func TestFeedLister_ListStories(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("Accept"), "application/rss+xml")
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(testFeed))
	}))
	defer ts.Close()

	fl, err := NewFeedLister(ts.URL, "https://news.ycombinator.com", time.Second)
	require.NoError(t, err)

	page, err := fl.ListStories(context.Background(), 0, 1)
	require.NoError(t, err)
	assert.True(t, page.HasMore)
	require.Len(t, page.Stories, 1)
	s := page.Stories[0]
	assert.Equal(t, int64(111), s.ID)
	assert.Equal(t, "First story", s.Title)
	assert.Equal(t, "https://example.com/1", s.ArticleURL)
	assert.Equal(t, "https://news.ycombinator.com/item?id=111", s.URL)
	assert.Equal(t, 120, s.Points)
	assert.Equal(t, 33, s.CommentsCount)
	assert.Equal(t, "alice", s.Author)
	assert.Equal(t, int64(1714557600), s.Time)

	page, err = fl.ListStories(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.False(t, page.HasMore)
	require.Len(t, page.Stories, 1, "item without discussion id skipped")
	assert.Equal(t, int64(222), page.Stories[0].ID)
	assert.Equal(t, "unknown", page.Stories[0].Author)
}

func TestFeedLister_Errors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bad" {
			_, _ = w.Write([]byte("not a feed"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	fl, err := NewFeedLister(ts.URL+"/down", "https://news.ycombinator.com", time.Second)
	require.NoError(t, err)
	_, err = fl.ListStories(context.Background(), 0, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")

	fl, err = NewFeedLister(ts.URL+"/bad", "https://news.ycombinator.com", time.Second)
	require.NoError(t, err)
	_, err = fl.ListStories(context.Background(), 0, 5)
	require.Error(t, err)
}
