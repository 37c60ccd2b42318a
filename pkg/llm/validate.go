package llm

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/umputun/hnscope/pkg/config"
	"github.com/umputun/hnscope/pkg/domain"
)

// Validation is the result of checking model input
type Validation struct {
	OK      bool
	Content string // normalized and truncated content, set when OK
	Reason  string // why the content was rejected
}

// ValidateContent normalizes whitespace, enforces length bounds and rejects error pages.
// Content longer than maxLen is truncated, not rejected.
func ValidateContent(content string, minLen, maxLen int, errorPatterns []string) Validation {
	content = strings.Join(strings.Fields(content), " ")
	if content == "" {
		return Validation{Reason: "Content is empty"}
	}
	if len([]rune(content)) < minLen {
		return Validation{Reason: fmt.Sprintf("Content too short (min %d chars)", minLen)}
	}
	if r := []rune(content); maxLen > 0 && len(r) > maxLen {
		content = string(r[:maxLen])
	}

	lower := strings.ToLower(content)
	for _, p := range errorPatterns {
		if p != "" && strings.Contains(lower, strings.ToLower(p)) {
			return Validation{Reason: fmt.Sprintf("Content contains error pattern: %s", p)}
		}
	}
	return Validation{OK: true, Content: content}
}

// ValidateComments keeps comments with acceptable text, at most limits.MaxComments of them
func ValidateComments(comments []domain.Comment, limits config.LimitsConfig) []domain.Comment {
	res := []domain.Comment{}
	for _, c := range comments {
		if len(res) >= limits.MaxComments {
			break
		}
		v := ValidateContent(c.Text, limits.MinComment, limits.MaxComment, limits.ErrorPatterns)
		if !v.OK {
			continue
		}
		author := c.Author
		if author == "" {
			author = "anonymous"
		}
		res = append(res, domain.Comment{Author: author, Text: v.Content, Depth: c.Depth})
	}
	return res
}

// plainText reduces html to its text, anything not looking like html is returned as is
func plainText(content string) string {
	if !strings.HasPrefix(strings.TrimSpace(content), "<") {
		return content
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return content
	}
	doc.Find("script, style").Remove()
	var sb strings.Builder
	for _, n := range doc.Find("body").Nodes {
		collectText(n, &sb)
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteByte(' ')
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, sb)
	}
}
