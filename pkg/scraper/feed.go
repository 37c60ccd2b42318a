package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/umputun/hnscope/pkg/browser"
	"github.com/umputun/hnscope/pkg/domain"
)

var (
	feedIDRe       = regexp.MustCompile(`item\?id=(\d+)`)
	feedPointsRe   = regexp.MustCompile(`Points:\s*(\d+)`)
	feedCommentsRe = regexp.MustCompile(`#\s*Comments:\s*(\d+)`)
)

// FeedLister lists stories from an RSS/Atom feed of the front page
type FeedLister struct {
	client  *http.Client
	feedURL string
	baseURL *url.URL
}

// NewFeedLister makes a feed based story lister
func NewFeedLister(feedURL, baseURL string, timeout time.Duration) (*FeedLister, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", baseURL, err)
	}
	return &FeedLister{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		feedURL: feedURL,
		baseURL: base,
	}, nil
}

// ListStories reads the feed and returns limit stories starting at offset
func (f *FeedLister) ListStories(ctx context.Context, offset, limit int) (domain.StoryPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.feedURL, http.NoBody)
	if err != nil {
		return domain.StoryPage{}, fmt.Errorf("create request: %w", err)
	}
	browser.SetHeaders(req, browser.AcceptFeed)

	resp, err := f.client.Do(req)
	if err != nil {
		return domain.StoryPage{}, fmt.Errorf("fetch feed %s: %w", f.feedURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return domain.StoryPage{}, fmt.Errorf("unexpected status code %d for feed %s", resp.StatusCode, f.feedURL)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return domain.StoryPage{}, fmt.Errorf("parse feed: %w", err)
	}

	stories := make([]domain.Story, 0, len(feed.Items))
	for _, item := range feed.Items {
		if story, ok := f.storyFromItem(item); ok {
			stories = append(stories, story)
		}
	}

	res := domain.StoryPage{Stories: []domain.Story{}, HasMore: offset+limit < len(stories)}
	if offset < len(stories) {
		res.Stories = append(res.Stories, stories[offset:min(offset+limit, len(stories))]...)
	}
	return res, nil
}

// storyFromItem converts a feed item, items without a discussion id are skipped
func (f *FeedLister) storyFromItem(item *gofeed.Item) (domain.Story, bool) {
	var id int64
	for _, s := range []string{item.GUID, item.Description, item.Link} {
		if m := feedIDRe.FindStringSubmatch(s); m != nil {
			id, _ = strconv.ParseInt(m[1], 10, 64)
			break
		}
	}
	if id == 0 {
		return domain.Story{}, false
	}

	story := domain.Story{
		ID:            id,
		Title:         strings.TrimSpace(item.Title),
		URL:           discussionURL(f.baseURL, id),
		ArticleURL:    resolve(f.baseURL, item.Link),
		Author:        "unknown",
		Points:        submatchInt(feedPointsRe, item.Description),
		CommentsCount: submatchInt(feedCommentsRe, item.Description),
	}
	if item.Author != nil && item.Author.Name != "" {
		story.Author = item.Author.Name
	}
	if item.PublishedParsed != nil {
		story.Time = item.PublishedParsed.Unix()
	} else if item.UpdatedParsed != nil {
		story.Time = item.UpdatedParsed.Unix()
	}
	return story, true
}

func submatchInt(re *regexp.Regexp, s string) int {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}
