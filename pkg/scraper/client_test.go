package scraper

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/hnscope/pkg/domain"
	"github.com/umputun/hnscope/pkg/scraper/mocks"
)

// listingPage makes a listing page with one story per id
func listingPage(more bool, ids ...int64) string {
	var sb strings.Builder
	sb.WriteString(`<html><body><table class="itemlist">`)
	for _, id := range ids {
		fmt.Fprintf(&sb, `<tr class="athing submission" id="%d"><td class="title"><span class="titleline">`+
			`<a href="https://example.com/%d">Story %d</a></span></td></tr>`, id, id, id)
		fmt.Fprintf(&sb, `<tr><td class="subtext"><span class="subline"><span class="score">%d points</span> by `+
			`<a href="user?id=u%d" class="hnuser">u%d</a> <span class="age" title="2024-05-01T10:00:00 1714557600">`+
			`<a href="item?id=%d">1 hour ago</a></span> | <a href="hide?id=%d">hide</a> | `+
			`<a href="item?id=%d">%d&nbsp;comments</a></span></td></tr>`, id*10, id, id, id, id, id, id)
	}
	if more {
		sb.WriteString(`<tr><td class="title"><a href="?p=2" class="morelink" rel="next">More</a></td></tr>`)
	}
	sb.WriteString(`</table></body></html>`)
	return sb.String()
}

func newTestClient(t *testing.T, r Renderer, fallback StoryLister) *Client {
	t.Helper()
	c, err := New(r, Config{
		BaseURL:            "https://news.ycombinator.com",
		PageSize:           3,
		BotPhrases:         []string{"Verify you are human", "unusual traffic"},
		ContainerSelectors: []string{"main", "article"},
		MinBlockLength:     50,
		Fallback:           fallback,
	})
	require.NoError(t, err)
	return c
}

func TestNew_InvalidBaseURL(t *testing.T) {
	_, err := New(&mocks.RendererMock{}, Config{BaseURL: "not a url"})
	require.Error(t, err)
}

func TestParseStoryList(t *testing.T) {
	page := `<html><body><table>
<tr class="athing submission" id="101"><td class="title"><span class="titleline"><a href="https://example.com/a">Article A</a></span></td></tr>
<tr><td class="subtext"><span class="score">42 points</span> by <a class="hnuser">alice</a>
<span class="age" title="2024-05-01T10:00:00 1714557600"><a href="item?id=101">2 hours ago</a></span> |
<a href="item?id=101">17&nbsp;comments</a></td></tr>
<tr class="athing submission" id="102"><td class="title"><span class="titleline"><a href="item?id=102">Ask HN: something</a></span></td></tr>
<tr><td class="subtext"><span class="age" title="2024-05-01T11:00:00"><a href="item?id=102">1 hour ago</a></span> |
<a href="item?id=102">discuss</a></td></tr>
</table><a class="morelink" href="?p=2">More</a></body></html>`

	c := newTestClient(t, &mocks.RendererMock{}, nil)
	stories, more, err := parseStoryList(page, c.baseURL)
	require.NoError(t, err)
	assert.True(t, more)
	require.Len(t, stories, 2)

	assert.Equal(t, domain.Story{
		ID: 101, Title: "Article A", URL: "https://news.ycombinator.com/item?id=101",
		ArticleURL: "https://example.com/a", Points: 42, Author: "alice", CommentsCount: 17, Time: 1714557600,
	}, stories[0])

	ask := stories[1]
	assert.Equal(t, int64(102), ask.ID)
	assert.Equal(t, "https://news.ycombinator.com/item?id=102", ask.ArticleURL, "relative link absolutized")
	assert.Equal(t, "unknown", ask.Author)
	assert.Equal(t, 0, ask.Points)
	assert.Equal(t, 0, ask.CommentsCount)
	assert.Equal(t, int64(1714561200), ask.Time)
}

func TestClient_ListStories(t *testing.T) {
	pages := map[string]string{
		"https://news.ycombinator.com/news":     listingPage(true, 1, 2, 3),
		"https://news.ycombinator.com/news?p=2": listingPage(true, 4, 5, 6),
		"https://news.ycombinator.com/news?p=3": listingPage(false, 7),
	}
	r := &mocks.RendererMock{RenderFunc: func(_ context.Context, url string) (string, error) {
		if p, ok := pages[url]; ok {
			return p, nil
		}
		return "", fmt.Errorf("unexpected url %s", url)
	}}
	c := newTestClient(t, r, nil)

	tests := []struct {
		name          string
		offset, limit int
		wantIDs       []int64
		wantMore      bool
	}{
		{name: "first page", offset: 0, limit: 2, wantIDs: []int64{1, 2}, wantMore: true},
		{name: "offset inside page", offset: 1, limit: 2, wantIDs: []int64{2, 3}, wantMore: true},
		{name: "crosses pages", offset: 2, limit: 3, wantIDs: []int64{3, 4, 5}, wantMore: true},
		{name: "second page", offset: 3, limit: 3, wantIDs: []int64{4, 5, 6}, wantMore: true},
		{name: "last story", offset: 6, limit: 5, wantIDs: []int64{7}, wantMore: false},
		{name: "past the end", offset: 7, limit: 5, wantIDs: []int64{}, wantMore: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := c.ListStories(context.Background(), tt.offset, tt.limit)
			require.NoError(t, err)
			ids := []int64{}
			for _, s := range page.Stories {
				ids = append(ids, s.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantMore, page.HasMore)
		})
	}
}

func TestClient_ListStoriesInvalidRange(t *testing.T) {
	c := newTestClient(t, &mocks.RendererMock{}, nil)
	_, err := c.ListStories(context.Background(), -1, 10)
	require.Error(t, err)
	_, err = c.ListStories(context.Background(), 0, 0)
	require.Error(t, err)
}

func TestClient_ListStoriesFallback(t *testing.T) {
	r := &mocks.RendererMock{RenderFunc: func(context.Context, string) (string, error) {
		return "", errors.New("browser crashed")
	}}

	t.Run("no fallback", func(t *testing.T) {
		c := newTestClient(t, r, nil)
		_, err := c.ListStories(context.Background(), 0, 5)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "browser crashed")
	})

	t.Run("fallback used", func(t *testing.T) {
		fb := &mocks.StoryListerMock{ListStoriesFunc: func(_ context.Context, offset, limit int) (domain.StoryPage, error) {
			return domain.StoryPage{Stories: []domain.Story{{ID: 9, Title: "from feed"}}, HasMore: true}, nil
		}}
		c := newTestClient(t, r, fb)
		page, err := c.ListStories(context.Background(), 5, 1)
		require.NoError(t, err)
		require.Len(t, page.Stories, 1)
		assert.Equal(t, int64(9), page.Stories[0].ID)
		require.Len(t, fb.ListStoriesCalls(), 1)
		assert.Equal(t, 5, fb.ListStoriesCalls()[0].Offset)
	})

	t.Run("fallback fails too", func(t *testing.T) {
		fb := &mocks.StoryListerMock{ListStoriesFunc: func(context.Context, int, int) (domain.StoryPage, error) {
			return domain.StoryPage{}, errors.New("feed down")
		}}
		c := newTestClient(t, r, fb)
		_, err := c.ListStories(context.Background(), 0, 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "browser crashed")
		assert.Contains(t, err.Error(), "feed down")
	})
}

func TestClient_FetchArticle(t *testing.T) {
	longText := strings.Repeat("Meaningful article sentence. ", 10)

	tests := []struct {
		name    string
		page    string
		wantErr error
		check   func(t *testing.T, a domain.Article)
	}{
		{
			name: "main container",
			page: `<html><head><title>The Title</title><meta name="description" content="desc">` +
				`<meta property="og:image" content="https://example.com/og.png"></head><body>` +
				`<nav>menu</nav><main><h1>Head</h1><p>` + longText + `</p><img src="/img/a.png">` +
				`<a href="/next">next</a><script>alert(1)</script></main></body></html>`,
			check: func(t *testing.T, a domain.Article) {
				assert.Equal(t, domain.ArticleMetadata{Title: "The Title", Description: "desc",
					OGImage: "https://example.com/og.png"}, a.Metadata)
				assert.Contains(t, a.HTML, `src="https://example.com/img/a.png"`)
				assert.Contains(t, a.HTML, `data-src="https://example.com/img/a.png"`)
				assert.Contains(t, a.HTML, `loading="lazy"`)
				assert.Contains(t, a.HTML, `alt="Article image"`)
				assert.Contains(t, a.HTML, `href="https://example.com/next"`)
				assert.NotContains(t, a.HTML, "alert")
				assert.NotContains(t, a.HTML, "menu")
				assert.True(t, strings.HasPrefix(a.Text, "Head Meaningful"))
				assert.Equal(t, "https://example.com/post", a.URL)
			},
		},
		{
			name: "largest div",
			page: `<html><body><div class="side">short</div><div class="body"><p>` + longText + `</p></div></body></html>`,
			check: func(t *testing.T, a domain.Article) {
				assert.Contains(t, a.Text, "Meaningful article sentence.")
				assert.NotContains(t, a.Text, "short")
			},
		},
		{
			name:    "bot verification",
			page:    `<html><body><main><p>Please verify you are human to continue</p></main></body></html>`,
			wantErr: ErrBotDetected,
		},
		{
			name:    "bot phrase in script only is ignored",
			page:    `<html><body><script>var s="unusual traffic"</script><main><p>` + longText + `</p></main></body></html>`,
			wantErr: nil,
			check: func(t *testing.T, a domain.Article) {
				assert.NotEmpty(t, a.HTML)
			},
		},
		{
			name:    "empty page",
			page:    `<html><body></body></html>`,
			wantErr: ErrNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &mocks.RendererMock{RenderFunc: func(context.Context, string) (string, error) { return tt.page, nil }}
			c := newTestClient(t, r, nil)
			a, err := c.FetchArticle(context.Background(), "https://example.com/post")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, a)
		})
	}
}

func TestClient_FetchArticleExtractorFallback(t *testing.T) {
	// no configured container, and no div long enough for the largest block rule
	page := `<html><head><title>Rust in the kernel</title></head><body>
<div class="nav">Home | About</div>
<section class="entry-content">
<h1>Rust in the kernel, two years later</h1>
<p>The first drivers written in Rust landed upstream two years ago, and the maintainers have been collecting numbers since then.</p>
<p>Memory safety bugs in the new drivers are rare, while review time per patch went up noticeably during the first release cycles.</p>
<p>Most of the friction came from the build system and from bindings that had to be regenerated whenever a C header changed.</p>
<p>The next milestone is a network driver that ships enabled by default in at least one major distribution kernel this year.</p>
</section>
</body></html>`

	r := &mocks.RendererMock{RenderFunc: func(context.Context, string) (string, error) { return page, nil }}
	c := newTestClient(t, r, nil)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)
	require.Nil(t, c.findContainer(doc), "selectors and largest block find nothing")

	a, err := c.FetchArticle(context.Background(), "https://example.com/rust")
	require.NoError(t, err)
	assert.Contains(t, a.Text, "Memory safety bugs in the new drivers are rare")
	assert.Contains(t, a.Text, "network driver that ships enabled by default")
	assert.Contains(t, a.HTML, "review time per patch")
	assert.Equal(t, "Rust in the kernel", a.Metadata.Title)
}

func TestClient_FetchArticleInvalidURL(t *testing.T) {
	r := &mocks.RendererMock{}
	c := newTestClient(t, r, nil)
	for _, u := range []string{"", "ftp://example.com/x", "https://", "item?id=1"} {
		_, err := c.FetchArticle(context.Background(), u)
		require.Error(t, err, u)
	}
	assert.Empty(t, r.RenderCalls())
}

func TestClient_FetchArticleRenderError(t *testing.T) {
	r := &mocks.RendererMock{RenderFunc: func(context.Context, string) (string, error) {
		return "", context.DeadlineExceeded
	}}
	c := newTestClient(t, r, nil)
	_, err := c.FetchArticle(context.Background(), "https://example.com/post")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_FetchComments(t *testing.T) {
	page := `<html><body><table class="comment-tree">
<tr class="athing comtr" id="1"><td><table><tr><td class="ind" indent="0"><img src="s.gif" height="1" width="0"></td>
<td class="default"><a class="hnuser">alice</a><div class="comment"><span class="commtext c00">First <i>comment</i></span>
<div class="reply"><a>reply</a></div></div></td></tr></table></td></tr>
<tr class="athing comtr" id="2"><td><table><tr><td class="ind"><img src="s.gif" height="1" width="40"></td>
<td class="default"><a class="hnuser">bob</a><div class="comment"><span class="commtext c00">Second</span></div></td></tr></table></td></tr>
<tr class="athing comtr" id="3"><td><table><tr><td class="ind" indent="2"></td>
<td class="default"><div class="comment"><span class="commtext c00">[flagged]</span></div></td></tr></table></td></tr>
</table></body></html>`

	r := &mocks.RendererMock{RenderFunc: func(context.Context, string) (string, error) { return page, nil }}
	c := newTestClient(t, r, nil)

	res, err := c.FetchComments(context.Background(), 42, 0, 2)
	require.NoError(t, err)
	assert.True(t, res.HasMore)
	assert.Equal(t, []domain.Comment{
		{Author: "alice", Text: "First comment", Depth: 0},
		{Author: "bob", Text: "Second", Depth: 1},
	}, res.Comments)
	assert.Equal(t, "https://news.ycombinator.com/item?id=42", r.RenderCalls()[0].URL)

	res, err = c.FetchComments(context.Background(), 42, 2, 2)
	require.NoError(t, err)
	assert.False(t, res.HasMore)
	assert.Equal(t, []domain.Comment{{Author: "anonymous", Text: "[flagged]", Depth: 2}}, res.Comments)

	res, err = c.FetchComments(context.Background(), 42, 10, 2)
	require.NoError(t, err)
	assert.Empty(t, res.Comments)
	assert.False(t, res.HasMore)

	_, err = c.FetchComments(context.Background(), 0, 0, 2)
	require.Error(t, err)
}

func TestParseAge(t *testing.T) {
	assert.Equal(t, int64(1714557600), parseAge("2024-05-01T10:00:00 1714557600"))
	assert.Equal(t, int64(1714557600), parseAge("2024-05-01T10:00:00"))
	assert.Equal(t, int64(0), parseAge(""))
	assert.Equal(t, int64(0), parseAge("garbage"))
}
