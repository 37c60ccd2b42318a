// Package scraper fetches the story listing, linked articles and discussion threads.
// Pages are rendered by a headless browser and parsed with goquery.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-pkgz/lgr"
	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/hnscope/pkg/domain"
)

//go:generate moq -out mocks/renderer.go -pkg mocks -skip-ensure -fmt goimports . Renderer StoryLister

var (
	// ErrBotDetected is returned when the page is a bot verification screen
	ErrBotDetected = errors.New("bot detection triggered")
	// ErrNoContent is returned when no article content could be located
	ErrNoContent = errors.New("no content found")
)

// Renderer loads a page in a browser and returns the rendered html
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// StoryLister lists stories from an alternative source
type StoryLister interface {
	ListStories(ctx context.Context, offset, limit int) (domain.StoryPage, error)
}

// Client is the fetch client for the news aggregator and linked articles
type Client struct {
	renderer   Renderer
	fallback   StoryLister
	baseURL    *url.URL
	pageSize   int
	botPhrases []string
	selectors  []string
	minBlock   int
	policy     *bluemonday.Policy
}

// Config holds fetch client parameters
type Config struct {
	BaseURL            string
	PageSize           int
	BotPhrases         []string
	ContainerSelectors []string
	MinBlockLength     int
	Fallback           StoryLister // optional, used when the listing page can't be scraped
}

// New makes a fetch client on top of the shared renderer
func New(renderer Renderer, cfg Config) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", cfg.BaseURL)
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 30
	}
	if cfg.MinBlockLength <= 0 {
		cfg.MinBlockLength = 500
	}
	if len(cfg.ContainerSelectors) == 0 {
		cfg.ContainerSelectors = []string{"main", "article"}
	}

	phrases := make([]string, 0, len(cfg.BotPhrases))
	for _, p := range cfg.BotPhrases {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			phrases = append(phrases, p)
		}
	}

	return &Client{
		renderer:   renderer,
		fallback:   cfg.Fallback,
		baseURL:    base,
		pageSize:   cfg.PageSize,
		botPhrases: phrases,
		selectors:  cfg.ContainerSelectors,
		minBlock:   cfg.MinBlockLength,
		policy:     articlePolicy(),
	}, nil
}

// ListStories returns limit stories starting at offset, and whether more exist
func (c *Client) ListStories(ctx context.Context, offset, limit int) (domain.StoryPage, error) {
	if offset < 0 || limit <= 0 {
		return domain.StoryPage{}, fmt.Errorf("invalid range offset=%d, limit=%d", offset, limit)
	}

	page, err := c.listFromSite(ctx, offset, limit)
	if err == nil {
		return page, nil
	}
	if c.fallback == nil || ctx.Err() != nil {
		return domain.StoryPage{}, err
	}

	lgr.Printf("[WARN] can't scrape story list, trying feed: %v", err)
	page, ferr := c.fallback.ListStories(ctx, offset, limit)
	if ferr != nil {
		return domain.StoryPage{}, errors.Join(err, fmt.Errorf("feed fallback: %w", ferr))
	}
	return page, nil
}

// discussionURL makes the thread url for a story id
func (c *Client) discussionURL(id int64) string {
	return discussionURL(c.baseURL, id)
}

func discussionURL(base *url.URL, id int64) string {
	u := base.ResolveReference(&url.URL{Path: "/item"})
	u.RawQuery = fmt.Sprintf("id=%d", id)
	return u.String()
}

func (c *Client) listURL(page int) string {
	u := c.baseURL.ResolveReference(&url.URL{Path: "/news"})
	if page > 1 {
		u.RawQuery = fmt.Sprintf("p=%d", page)
	}
	return u.String()
}

// detectBot returns the first bot phrase found in text
func (c *Client) detectBot(text string) string {
	text = strings.ToLower(text)
	for _, phrase := range c.botPhrases {
		if strings.Contains(text, phrase) {
			return phrase
		}
	}
	return ""
}

// resolve makes ref absolute against base, refs that can't be parsed are returned as is
func resolve(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(r).String()
}
