package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"

	"github.com/umputun/hnscope/pkg/domain"
)

// maxListPages caps how many listing pages one request may walk through
const maxListPages = 10

// listFromSite reads listing pages until limit stories are collected or the listing ends
func (c *Client) listFromSite(ctx context.Context, offset, limit int) (domain.StoryPage, error) {
	pageNum := offset/c.pageSize + 1
	start := offset % c.pageSize
	res := domain.StoryPage{Stories: []domain.Story{}}

	for i := 0; i < maxListPages && len(res.Stories) < limit; i++ {
		if err := ctx.Err(); err != nil {
			return domain.StoryPage{}, err
		}
		pageURL := c.listURL(pageNum)
		html, err := c.renderer.Render(ctx, pageURL)
		if err != nil {
			if len(res.Stories) > 0 {
				// keep what we have, the next request continues from here
				lgr.Printf("[WARN] can't load listing page %s, returning %d stories: %v", pageURL, len(res.Stories), err)
				res.HasMore = true
				return res, nil
			}
			return domain.StoryPage{}, fmt.Errorf("load listing page %s: %w", pageURL, err)
		}

		stories, more, err := parseStoryList(html, c.baseURL)
		if err != nil {
			return domain.StoryPage{}, fmt.Errorf("parse listing page %s: %w", pageURL, err)
		}
		if start >= len(stories) {
			res.HasMore = false
			break
		}

		end := min(start+limit-len(res.Stories), len(stories))
		res.Stories = append(res.Stories, stories[start:end]...)
		res.HasMore = end < len(stories) || more
		if !more {
			break
		}
		pageNum++
		start = 0
	}

	lgr.Printf("[DEBUG] listed %d stories, offset=%d, limit=%d, has_more=%v", len(res.Stories), offset, limit, res.HasMore)
	return res, nil
}

// parseStoryList extracts stories from a listing page and reports if a next page exists
func parseStoryList(html string, base *url.URL) (stories []domain.Story, more bool, err error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, false, fmt.Errorf("parse html: %w", err)
	}

	doc.Find("tr.athing").Each(func(_ int, row *goquery.Selection) {
		if row.HasClass("comtr") {
			return
		}
		link := row.Find(".titleline > a").First()
		story := domain.Story{
			Title:  strings.TrimSpace(link.Text()),
			Author: "unknown",
		}
		if id, err := strconv.ParseInt(row.AttrOr("id", ""), 10, 64); err == nil {
			story.ID = id
			story.URL = discussionURL(base, id)
		}
		story.ArticleURL = resolve(base, link.AttrOr("href", ""))

		sub := row.Next()
		story.Points = leadingInt(sub.Find(".score").Text())
		if author := strings.TrimSpace(sub.Find(".hnuser").First().Text()); author != "" {
			story.Author = author
		}
		story.Time = parseAge(sub.Find(".age").AttrOr("title", ""))
		if last := strings.ToLower(sub.Find("a").Last().Text()); strings.Contains(last, "comment") {
			story.CommentsCount = leadingInt(last)
		}
		stories = append(stories, story)
	})

	return stories, doc.Find("a.morelink").Length() > 0, nil
}

// leadingInt parses the first word of s as int, "123 points" gives 123
func leadingInt(s string) int {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0
	}
	return n
}

// parseAge reads the age title, "2024-05-01T10:00:00 1714557600" or a bare timestamp
func parseAge(title string) int64 {
	fields := strings.Fields(title)
	if len(fields) == 0 {
		return 0
	}
	if ts, err := strconv.ParseInt(fields[len(fields)-1], 10, 64); err == nil {
		return ts
	}
	if t, err := time.Parse("2006-01-02T15:04:05", fields[0]); err == nil {
		return t.Unix()
	}
	return 0
}
