// Package pipeline drives stories of one listing page through fetching, capturing and
// summarization, and reports progress as a lazy sequence of events.
package pipeline

import (
	"context"
	"fmt"
	"iter"
	"runtime/debug"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/hnscope/pkg/domain"
	"github.com/umputun/hnscope/pkg/llm"
)

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/capturer.go -pkg mocks -skip-ensure -fmt goimports . Capturer
//go:generate moq -out mocks/summarizer.go -pkg mocks -skip-ensure -fmt goimports . Summarizer
//go:generate moq -out mocks/cache.go -pkg mocks -skip-ensure -fmt goimports . Cache

// Fetcher reads the story listing, articles and discussions
type Fetcher interface {
	ListStories(ctx context.Context, offset, limit int) (domain.StoryPage, error)
	FetchArticle(ctx context.Context, url string) (domain.Article, error)
	FetchComments(ctx context.Context, id int64, offset, limit int) (domain.CommentPage, error)
}

// Capturer takes article screenshots
type Capturer interface {
	Capture(ctx context.Context, url string, id int64) domain.ScreenshotResult
}

// Summarizer generates hooks and analyses, failures come back as fallback values
type Summarizer interface {
	Hook(ctx context.Context, content string) string
	Analyze(ctx context.Context, content string, comments []domain.Comment) domain.Analysis
	Model() string
}

// Cache stores complete stories
type Cache interface {
	Get(id int64) (*domain.Story, bool)
	Put(id int64, story *domain.Story)
}

// Config holds pipeline dependencies and parameters
type Config struct {
	Fetcher          Fetcher
	Capturer         Capturer
	Summarizer       Summarizer
	Cache            Cache
	Delay            time.Duration // pause after each freshly processed story
	CommentsLimit    int
	ScreenshotPrefix string
}

// Pipeline processes pages of stories
type Pipeline struct {
	Config
}

// New makes a pipeline
func New(cfg Config) *Pipeline {
	if cfg.CommentsLimit <= 0 {
		cfg.CommentsLimit = 10
	}
	if cfg.ScreenshotPrefix == "" {
		cfg.ScreenshotPrefix = "/static/screenshots/"
	}
	return &Pipeline{Config: cfg}
}

// Stream returns the events for limit stories starting at offset. Nothing runs until the
// sequence is ranged over, and every range runs the page again.
// A successful run ends with exactly one complete event. A run that fails to list stories
// ends with a single error event instead, and a cancelled run just stops.
func (p *Pipeline) Stream(ctx context.Context, offset, limit int) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		lgr.Printf("[INFO] streaming stories, offset=%d, limit=%d", offset, limit)
		page, err := p.list(ctx, offset, limit)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			lgr.Printf("[ERROR] can't list stories: %v", err)
			yield(ErrorEvent(fmt.Sprintf("Stream error: %v", err), ""))
			return
		}

		for _, s := range page.Stories {
			if ctx.Err() != nil {
				lgr.Printf("[DEBUG] stream cancelled, offset=%d, limit=%d", offset, limit)
				return
			}
			if s.ID == 0 {
				lgr.Printf("[ERROR] story without id skipped, title=%q", s.Title)
				continue
			}

			cached, err := p.cached(s.ID)
			if err != nil {
				if !p.fail(&s, err, yield) {
					return
				}
				continue
			}
			if cached != nil {
				if !yield(DataEvent(cached)) {
					return
				}
				continue
			}

			if !p.process(ctx, s, page.HasMore, yield) {
				return
			}
			if err := sleep(ctx, p.Delay); err != nil {
				return
			}
		}

		yield(CompleteEvent(page.HasMore))
	}
}

// process enriches a single story and emits its events, returns false if the stream must stop
func (p *Pipeline) process(ctx context.Context, base domain.Story, hasMore bool, yield func(Event) bool) bool {
	if !yield(LogEvent(fmt.Sprintf("Fetching %s...", base.Title))) {
		return false
	}

	story := domain.NewStory(base)
	story.HasMore = hasMore

	if err := guard(func() { p.gather(ctx, story) }); err != nil {
		return p.fail(story, err, yield)
	}
	if ctx.Err() != nil {
		return false
	}

	if !yield(LogEvent(fmt.Sprintf("Analyzing %s...", story.Title))) {
		return false
	}
	if err := guard(func() { p.analyze(ctx, story) }); err != nil {
		return p.fail(story, err, yield)
	}
	// results produced under a cancelled context are fallbacks, keep them out of the cache
	if ctx.Err() != nil {
		return false
	}

	if err := guard(func() { p.Cache.Put(story.ID, story) }); err != nil {
		lgr.Printf("[WARN] can't cache story %d: %v", story.ID, err)
	}
	return yield(DataEvent(story))
}

// list reads the requested page of stories, a panic in the fetcher is returned as error
func (p *Pipeline) list(ctx context.Context, offset, limit int) (page domain.StoryPage, err error) {
	if perr := guard(func() { page, err = p.Fetcher.ListStories(ctx, offset, limit) }); perr != nil {
		return domain.StoryPage{}, perr
	}
	return page, err
}

// cached returns the stored story ready to emit, or nil on a miss
func (p *Pipeline) cached(id int64) (story *domain.Story, err error) {
	err = guard(func() {
		s, ok := p.Cache.Get(id)
		if !ok || s == nil {
			return
		}
		lgr.Printf("[DEBUG] cache hit for story %d", id)
		s.NormalizeScreenshotPath(p.ScreenshotPrefix)
		story = s
	})
	return story, err
}

// gather fetches article, screenshot, hook and comments, failures become field defaults
func (p *Pipeline) gather(ctx context.Context, story *domain.Story) {
	article, err := p.Fetcher.FetchArticle(ctx, story.ArticleURL)
	if err != nil {
		lgr.Printf("[WARN] can't fetch content for %q: %v", story.Title, err)
	} else {
		story.SetArticle(article)
	}

	story.SetScreenshot(p.Capturer.Capture(ctx, story.ArticleURL, story.ID))
	story.NormalizeScreenshotPath(p.ScreenshotPrefix)

	if story.HasContent() {
		story.SetHook(p.Summarizer.Hook(ctx, story.ArticleHTML))
	} else {
		story.SetHook(llm.HookNoContent)
	}

	comments, err := p.Fetcher.FetchComments(ctx, story.ID, 0, p.CommentsLimit)
	if err != nil {
		lgr.Printf("[WARN] can't fetch comments for %q: %v", story.Title, err)
	}
	story.SetComments(comments.Comments)
}

func (p *Pipeline) analyze(ctx context.Context, story *domain.Story) {
	if !story.HasContent() {
		story.SetAnalysis(domain.Analysis{
			Text:     llm.AnalysisNoText,
			Metadata: domain.AnalysisMetadata{Model: p.Summarizer.Model(), Error: "No content available"},
		})
		return
	}
	story.SetAnalysis(p.Summarizer.Analyze(ctx, story.ArticleHTML, story.TopComments))
}

// fail reports a story-scoped error, the stream goes on with the next story
func (p *Pipeline) fail(story *domain.Story, err error, yield func(Event) bool) bool {
	msg := fmt.Sprintf("Error processing story %s: %v", story.Title, err)
	lgr.Printf("[ERROR] %s", msg)
	return yield(ErrorEvent(msg, story.Title))
}

// guard runs fn and converts a panic into an error
func guard(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			lgr.Printf("[DEBUG] recovered panic: %v\n%s", r, debug.Stack())
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	fn()
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
