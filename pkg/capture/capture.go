// Package capture takes full-page screenshots of linked articles.
// Every capture runs in its own isolated browser session and a stored screenshot
// is never taken twice.
package capture

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/semaphore"

	"github.com/umputun/hnscope/pkg/domain"
)

//go:generate moq -out mocks/launcher.go -pkg mocks -skip-ensure -fmt goimports . Launcher Session

// failure reasons reported to the caller
const (
	ReasonBlocked = "Screenshot blocked by site"
	ReasonTimeout = "Timeout while loading page"
	ReasonClosed  = "Page was closed unexpectedly"
)

// ErrSessionClosed is returned by a session whose page went away
var ErrSessionClosed = errors.New("session closed")

// Launcher opens isolated browser sessions
type Launcher interface {
	NewSession(ctx context.Context) (Session, error)
}

// Session is a single page in its own browser context
type Session interface {
	Navigate(ctx context.Context, url string) error
	ScrollThrough(ctx context.Context) error
	ScrollToMiddle(ctx context.Context) error
	VisibleText(ctx context.Context) (string, error)
	HasAny(ctx context.Context, selectors []string) (bool, error)
	Screenshot(ctx context.Context, width, height int) ([]byte, error)
	Close() error
}

// Config holds capture parameters
type Config struct {
	Dir             string
	URLPrefix       string
	ViewportWidth   int
	ViewportHeights []int
	Timeout         time.Duration // whole capture, navigation included
	SettleDelay     time.Duration
	CMSWait         time.Duration
	BlockPhrases    []string
	CMSMarkers      []string
	MaxConcurrent   int
}

// Client is the capture client
type Client struct {
	Config
	launcher Launcher
	sem      *semaphore.Weighted
}

// New makes a capture client and creates the screenshot directory
func New(launcher Launcher, cfg Config) (*Client, error) {
	if cfg.Dir == "" {
		return nil, errors.New("screenshot directory is not set")
	}
	if err := os.MkdirAll(cfg.Dir, 0o750); err != nil {
		return nil, fmt.Errorf("create screenshot dir %s: %w", cfg.Dir, err)
	}
	if cfg.URLPrefix == "" {
		cfg.URLPrefix = "/static/screenshots/"
	}
	if !strings.HasSuffix(cfg.URLPrefix, "/") {
		cfg.URLPrefix += "/"
	}
	if cfg.ViewportWidth <= 0 {
		cfg.ViewportWidth = 1280
	}
	if len(cfg.ViewportHeights) == 0 {
		cfg.ViewportHeights = []int{800, 1200, 1600}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 90 * time.Second
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 2
	}
	lowered := make([]string, 0, len(cfg.BlockPhrases))
	for _, p := range cfg.BlockPhrases {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			lowered = append(lowered, p)
		}
	}
	cfg.BlockPhrases = lowered

	return &Client{Config: cfg, launcher: launcher, sem: semaphore.NewWeighted(int64(cfg.MaxConcurrent))}, nil
}

// Capture returns the public path of the screenshot for story id, taking it if not stored yet
func (c *Client) Capture(ctx context.Context, url string, id int64) domain.ScreenshotResult {
	name := strconv.FormatInt(id, 10) + ".png"
	file := filepath.Join(c.Dir, name)
	if _, err := os.Stat(file); err == nil {
		lgr.Printf("[DEBUG] screenshot for %d already exists", id)
		return domain.ScreenshotResult{Path: c.URLPrefix + name}
	}
	if url == "" {
		return domain.ScreenshotResult{Reason: "Failed to take screenshot: no url"}
	}

	if err := c.sem.Acquire(ctx, 1); err != nil {
		return domain.ScreenshotResult{Reason: fmt.Sprintf("Failed to take screenshot: %v", err)}
	}
	defer c.sem.Release(1)

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	sess, err := c.launcher.NewSession(ctx)
	if err != nil {
		lgr.Printf("[WARN] can't open capture session for %s: %v", url, err)
		return domain.ScreenshotResult{Reason: fmt.Sprintf("Failed to take screenshot: %v", err)}
	}
	defer func() {
		if err := sess.Close(); err != nil {
			lgr.Printf("[WARN] can't close capture session for %s: %v", url, err)
		}
	}()

	png, reason := c.shoot(ctx, sess, url)
	if reason != "" {
		lgr.Printf("[WARN] screenshot of %s failed: %s", url, reason)
		return domain.ScreenshotResult{Reason: reason}
	}
	if err := writeFile(file, png); err != nil {
		lgr.Printf("[WARN] can't store screenshot of %s: %v", url, err)
		return domain.ScreenshotResult{Reason: fmt.Sprintf("Failed to take screenshot: %v", err)}
	}
	lgr.Printf("[INFO] screenshot of %s stored as %s", url, file)
	return domain.ScreenshotResult{Path: c.URLPrefix + name}
}

// shoot drives the page and returns the image or the failure reason
func (c *Client) shoot(ctx context.Context, sess Session, url string) (png []byte, reason string) {
	if err := sess.Navigate(ctx, url); err != nil {
		return nil, interactionReason(err)
	}
	if err := sess.ScrollThrough(ctx); err != nil {
		return nil, interactionReason(err)
	}
	if err := sleep(ctx, c.SettleDelay); err != nil {
		return nil, interactionReason(err)
	}

	text, err := sess.VisibleText(ctx)
	if err != nil {
		return nil, interactionReason(err)
	}
	if phrase := c.blockPhrase(text); phrase != "" {
		lgr.Printf("[DEBUG] %s looks blocked, found %q", url, phrase)
		return nil, ReasonBlocked
	}

	if len(c.CMSMarkers) > 0 {
		cms, err := sess.HasAny(ctx, c.CMSMarkers)
		if err != nil {
			return nil, interactionReason(err)
		}
		if cms {
			lgr.Printf("[DEBUG] %s has lazy cms content, waiting %v", url, c.CMSWait)
			if err := sleep(ctx, c.CMSWait); err != nil {
				return nil, interactionReason(err)
			}
			if err := sess.ScrollToMiddle(ctx); err != nil {
				return nil, interactionReason(err)
			}
		}
	}

	var lastErr error
	for _, h := range c.ViewportHeights {
		png, err := sess.Screenshot(ctx, c.ViewportWidth, h)
		if err == nil && len(png) > 0 {
			return png, ""
		}
		if err == nil {
			err = errors.New("empty image")
		}
		if errors.Is(err, ErrSessionClosed) || ctx.Err() != nil {
			return nil, interactionReason(err)
		}
		lgr.Printf("[DEBUG] screenshot of %s with height %d failed: %v", url, h, err)
		lastErr = err
	}
	return nil, fmt.Sprintf("Failed to take screenshot: %v", lastErr)
}

func (c *Client) blockPhrase(text string) string {
	text = strings.ToLower(text)
	for _, p := range c.BlockPhrases {
		if strings.Contains(text, p) {
			return p
		}
	}
	return ""
}

// interactionReason maps a page error to the reported failure reason
func interactionReason(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ReasonTimeout
	case errors.Is(err, ErrSessionClosed):
		return ReasonClosed
	default:
		return fmt.Sprintf("Error during page interaction: %v", err)
	}
}

// writeFile stores data atomically, readers never see a partial image
func writeFile(file string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(file), ".shot-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op after rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), file); err != nil {
		return fmt.Errorf("rename to %s: %w", file, err)
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
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
