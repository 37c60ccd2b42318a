package domain

import (
	"path"
	"strings"
)

// SchemaVersion is the version of the cached story record layout.
// Bump it when a field is added to Story so older cache files are reprocessed.
const SchemaVersion = 1

// RequiredFields lists the json keys a cached story must carry to be complete.
// screenshot_path and screenshot_error may hold null.
var RequiredFields = []string{
	"schema_version", "hn_id", "title", "url", "article_url", "points", "author", "comments_count", "time",
	"full_article_html", "article_text", "article_metadata", "screenshot_path", "screenshot_error",
	"hook", "top_comments", "analysis", "has_more",
}

// Story represents a single entry from the aggregator listing, enriched by the pipeline
type Story struct {
	SchemaVersion int    `json:"schema_version"`
	ID            int64  `json:"hn_id"`
	Title         string `json:"title"`
	URL           string `json:"url"`         // discussion thread
	ArticleURL    string `json:"article_url"` // external article
	Points        int    `json:"points"`
	Author        string `json:"author"`
	CommentsCount int    `json:"comments_count"`
	Time          int64  `json:"time"` // unix seconds

	ArticleHTML     string          `json:"full_article_html"`
	ArticleText     string          `json:"article_text"`
	ArticleMetadata ArticleMetadata `json:"article_metadata"`
	ScreenshotPath  *string         `json:"screenshot_path"`
	ScreenshotError *string         `json:"screenshot_error"`
	Hook            string          `json:"hook"`
	TopComments     []Comment       `json:"top_comments"`
	Analysis        Analysis        `json:"analysis"`
	HasMore         bool            `json:"has_more"`
}

// Comment is a single discussion comment, addressed by its position in the list
type Comment struct {
	Author string `json:"author"`
	Text   string `json:"text"`
	Depth  int    `json:"depth"`
}

// ArticleMetadata holds head-level metadata of the linked article
type ArticleMetadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	OGImage     string `json:"og_image"`
}

// Article is the extracted content of a linked article
type Article struct {
	URL      string
	HTML     string
	Text     string
	Metadata ArticleMetadata
}

// Analysis is the generated summary of an article and its discussion
type Analysis struct {
	Text     string           `json:"analysis"`
	Metadata AnalysisMetadata `json:"metadata"`
}

// AnalysisMetadata describes how an analysis was produced
type AnalysisMetadata struct {
	Model            string `json:"model"`
	ContentLength    int    `json:"content_length,omitempty"`
	CommentsAnalyzed int    `json:"comments_analyzed"`
	Error            string `json:"error,omitempty"`
}

// ScreenshotResult is either a stored image path or a failure reason
type ScreenshotResult struct {
	Path   string
	Reason string
}

// OK reports whether the screenshot was stored
func (r ScreenshotResult) OK() bool { return r.Path != "" }

// StoryPage is one page of the story listing
type StoryPage struct {
	Stories []Story
	HasMore bool
}

// CommentPage is one page of a story's discussion
type CommentPage struct {
	Comments []Comment
	HasMore  bool
}

// NewStory creates a story record with every enrichable field set to its empty value
func NewStory(base Story) *Story {
	s := base
	s.SchemaVersion = SchemaVersion
	if s.Author == "" {
		s.Author = "unknown"
	}
	s.ArticleHTML, s.ArticleText, s.Hook = "", "", ""
	s.ArticleMetadata = ArticleMetadata{}
	s.ScreenshotPath, s.ScreenshotError = nil, nil
	s.TopComments = []Comment{}
	s.Analysis = Analysis{}
	return &s
}

// SetArticle stores extracted article content, an empty article clears it
func (s *Story) SetArticle(a Article) {
	s.ArticleHTML = a.HTML
	s.ArticleText = a.Text
	s.ArticleMetadata = a.Metadata
}

// HasContent reports whether article content was fetched
func (s *Story) HasContent() bool { return s.ArticleHTML != "" }

// SetScreenshot records either the screenshot path or the failure reason
func (s *Story) SetScreenshot(r ScreenshotResult) {
	s.ScreenshotPath, s.ScreenshotError = nil, nil
	if r.OK() {
		p := r.Path
		s.ScreenshotPath = &p
		return
	}
	reason := r.Reason
	if reason == "" {
		reason = "Failed to take screenshot"
	}
	s.ScreenshotError = &reason
}

// SetHook stores the generated hook
func (s *Story) SetHook(hook string) { s.Hook = hook }

// SetComments stores top comments, nil becomes an empty list
func (s *Story) SetComments(comments []Comment) {
	if comments == nil {
		comments = []Comment{}
	}
	for i := range comments {
		if comments[i].Author == "" {
			comments[i].Author = "anonymous"
		}
	}
	s.TopComments = comments
}

// SetAnalysis stores the generated analysis
func (s *Story) SetAnalysis(a Analysis) { s.Analysis = a }

// NormalizeScreenshotPath makes sure the screenshot path is served under prefix.
// Paths already under prefix are kept, anything else is reduced to its base name.
func (s *Story) NormalizeScreenshotPath(prefix string) {
	if s.ScreenshotPath == nil || *s.ScreenshotPath == "" {
		return
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	if strings.HasPrefix(*s.ScreenshotPath, prefix) {
		return
	}
	p := prefix + path.Base(*s.ScreenshotPath)
	s.ScreenshotPath = &p
}
