package scraper

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"
	"github.com/markusmobius/go-trafilatura"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/umputun/hnscope/pkg/domain"
)

// FetchArticle renders the article page and extracts its main content fragment
func (c *Client) FetchArticle(ctx context.Context, articleURL string) (domain.Article, error) {
	u, err := url.Parse(articleURL)
	if err != nil {
		return domain.Article{}, fmt.Errorf("parse URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return domain.Article{}, fmt.Errorf("invalid URL: %s", articleURL)
	}

	page, err := c.renderer.Render(ctx, articleURL)
	if err != nil {
		return domain.Article{}, fmt.Errorf("load article %s: %w", articleURL, err)
	}

	article, err := c.extractArticle(page, u)
	if err != nil {
		return domain.Article{}, fmt.Errorf("extract article %s: %w", articleURL, err)
	}
	lgr.Printf("[DEBUG] extracted article %s, html=%d, text=%d", articleURL, len(article.HTML), len(article.Text))
	return article, nil
}

// extractArticle locates the main content of a rendered page and returns a sanitized fragment
func (c *Client) extractArticle(page string, pageURL *url.URL) (domain.Article, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return domain.Article{}, fmt.Errorf("parse html: %w", err)
	}

	meta := extractMetadata(doc)
	doc.Find("script, style, noscript, template").Remove()

	if phrase := c.detectBot(textOf(doc.Find("body"))); phrase != "" {
		return domain.Article{}, fmt.Errorf("%w: %q", ErrBotDetected, phrase)
	}

	container := c.findContainer(doc)
	if container == nil {
		container = trafilaturaContainer(page, pageURL)
	}
	if container == nil {
		return domain.Article{}, ErrNoContent
	}

	absolutize(container, pageURL)
	fragment, err := goquery.OuterHtml(container)
	if err != nil {
		return domain.Article{}, fmt.Errorf("render fragment: %w", err)
	}
	fragment = strings.TrimSpace(c.policy.Sanitize(fragment))
	text := textOf(container)
	if fragment == "" || text == "" {
		return domain.Article{}, ErrNoContent
	}

	return domain.Article{URL: pageURL.String(), HTML: fragment, Text: text, Metadata: meta}, nil
}

// findContainer tries configured selectors first, then the largest text block
func (c *Client) findContainer(doc *goquery.Document) *goquery.Selection {
	for _, sel := range c.selectors {
		found := doc.Find(sel).First()
		if found.Length() > 0 && textOf(found) != "" {
			return found
		}
	}

	var best *goquery.Selection
	bestLen := c.minBlock
	doc.Find("div").Each(func(_ int, s *goquery.Selection) {
		if l := len(textOf(s)); l > bestLen {
			best, bestLen = s, l
		}
	})
	return best
}

// trafilaturaContainer is the last resort when the page has no recognizable container
func trafilaturaContainer(page string, pageURL *url.URL) *goquery.Selection {
	res, err := trafilatura.Extract(strings.NewReader(page), trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		IncludeImages:   true,
		IncludeLinks:    true,
		Deduplicate:     true,
		OriginalURL:     pageURL,
	})
	if err != nil || res == nil || res.ContentNode == nil {
		return nil
	}
	sel := goquery.NewDocumentFromNode(res.ContentNode).Selection
	if textOf(sel) == "" {
		return nil
	}
	return sel
}

func extractMetadata(doc *goquery.Document) domain.ArticleMetadata {
	return domain.ArticleMetadata{
		Title:       strings.TrimSpace(doc.Find("title").First().Text()),
		Description: strings.TrimSpace(doc.Find(`meta[name="description"]`).AttrOr("content", "")),
		OGImage:     strings.TrimSpace(doc.Find(`meta[property="og:image"]`).AttrOr("content", "")),
	}
}

// absolutize rewrites media and link references to absolute urls
func absolutize(sel *goquery.Selection, base *url.URL) {
	sel.Find("img[src]").Each(func(_ int, img *goquery.Selection) {
		src := resolve(base, img.AttrOr("src", ""))
		img.SetAttr("src", src)
		img.SetAttr("data-src", src)
		img.SetAttr("loading", "lazy")
		if _, ok := img.Attr("alt"); !ok {
			img.SetAttr("alt", "Article image")
		}
	})
	sel.Find("video[src], source[src]").Each(func(_ int, s *goquery.Selection) {
		s.SetAttr("src", resolve(base, s.AttrOr("src", "")))
	})
	sel.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := a.AttrOr("href", "")
		if strings.HasPrefix(href, "#") || strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") {
			return
		}
		a.SetAttr("href", resolve(base, href))
	})
}

// articlePolicy keeps the usual article markup plus lazy loaded media
func articlePolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("loading", "data-src").OnElements("img")
	p.AllowElements("video", "source", "figure", "figcaption")
	p.AllowAttrs("src", "controls", "poster").OnElements("video")
	p.AllowAttrs("src", "type").OnElements("source")
	return p
}

// textOf returns the visible text of the selection with whitespace collapsed
func textOf(sel *goquery.Selection) string {
	var buf bytes.Buffer
	for _, n := range sel.Nodes {
		collectText(n, &buf)
	}
	return strings.Join(strings.Fields(buf.String()), " ")
}

func collectText(n *html.Node, buf *bytes.Buffer) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "noscript", "template":
			return
		}
	}
	if n.Type == html.TextNode {
		buf.WriteString(n.Data)
		buf.WriteByte(' ')
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, buf)
	}
}
