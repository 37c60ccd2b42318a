package scraper

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/umputun/hnscope/pkg/domain"
)

// indentWidth is the pixel width of one nesting level in the discussion layout
const indentWidth = 40

// FetchComments returns limit comments of the story discussion starting at offset
func (c *Client) FetchComments(ctx context.Context, id int64, offset, limit int) (domain.CommentPage, error) {
	if id <= 0 {
		return domain.CommentPage{}, fmt.Errorf("invalid story id %d", id)
	}
	if offset < 0 || limit <= 0 {
		return domain.CommentPage{}, fmt.Errorf("invalid range offset=%d, limit=%d", offset, limit)
	}

	threadURL := c.discussionURL(id)
	page, err := c.renderer.Render(ctx, threadURL)
	if err != nil {
		return domain.CommentPage{}, fmt.Errorf("load discussion %s: %w", threadURL, err)
	}

	all, err := parseComments(page)
	if err != nil {
		return domain.CommentPage{}, fmt.Errorf("parse discussion %s: %w", threadURL, err)
	}

	res := domain.CommentPage{Comments: []domain.Comment{}, HasMore: offset+limit < len(all)}
	if offset < len(all) {
		res.Comments = append(res.Comments, all[offset:min(offset+limit, len(all))]...)
	}
	return res, nil
}

// parseComments extracts every comment of a discussion page in display order
func parseComments(page string) ([]domain.Comment, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var res []domain.Comment
	doc.Find("tr.athing.comtr").Each(func(_ int, row *goquery.Selection) {
		text := row.Find(".commtext").First()
		text.Find(".reply").Remove()
		cmt := domain.Comment{
			Author: strings.TrimSpace(row.Find(".hnuser").First().Text()),
			Text:   strings.TrimSpace(textOf(text)),
			Depth:  commentDepth(row),
		}
		if cmt.Author == "" {
			cmt.Author = "anonymous"
		}
		res = append(res, cmt)
	})
	return res, nil
}

// commentDepth reads the nesting level from the indent attribute or the spacer image width
func commentDepth(row *goquery.Selection) int {
	ind := row.Find("td.ind").First()
	if v, ok := ind.Attr("indent"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	if w, ok := ind.Find("img").First().Attr("width"); ok {
		if n, err := strconv.Atoi(w); err == nil {
			return n / indentWidth
		}
	}
	return 0
}
