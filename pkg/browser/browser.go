// Package browser owns a headless Chrome instance started on first use.
// One Browser is shared by every caller that needs rendered pages; each render
// gets its own tab, and Close releases the whole process.
package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
)

// Browser is a lazily started headless Chrome handle.
// Only the start is serialized, tabs are opened concurrently.
type Browser struct {
	opts Options

	mu            sync.Mutex
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// Options defines how the browser process is launched and how pages are loaded
type Options struct {
	ExecPath     string
	UserAgent    string
	Headless     bool
	NavTimeout   time.Duration
	IdleTimeout  time.Duration
	WindowWidth  int
	WindowHeight int
	StartTries   int
	Flags        map[string]any // extra chrome switches
}

// New makes a browser handle, chrome is not started until the first use
func New(opts Options) *Browser {
	if opts.NavTimeout == 0 {
		opts.NavTimeout = 30 * time.Second
	}
	if opts.IdleTimeout == 0 {
		opts.IdleTimeout = 5 * time.Second
	}
	if opts.WindowWidth == 0 || opts.WindowHeight == 0 {
		opts.WindowWidth, opts.WindowHeight = 1280, 800
	}
	if opts.StartTries == 0 {
		opts.StartTries = 3
	}
	return &Browser{opts: opts}
}

// Render loads url in a new tab and returns the rendered document html
func (b *Browser) Render(ctx context.Context, url string) (string, error) {
	tabCtx, cancel, err := b.Tab(ctx)
	if err != nil {
		return "", err
	}
	defer cancel()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, b.opts.NavTimeout)
	defer cancelTimeout()

	var html string
	err = chromedp.Run(tabCtx,
		NavigateAndWaitIdle(url, b.opts.IdleTimeout),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", url, err)
	}
	return html, nil
}

// Tab opens a new tab bound to the caller's context. The tab is closed when the
// returned cancel func is called or ctx is done.
// Pass chromedp.WithNewBrowserContext() to get a tab with its own cookies and storage.
func (b *Browser) Tab(ctx context.Context, opts ...chromedp.ContextOption) (context.Context, context.CancelFunc, error) {
	browserCtx, err := b.start(ctx)
	if err != nil {
		return nil, nil, err
	}

	tabCtx, cancelTab := chromedp.NewContext(browserCtx, opts...)
	stop := context.AfterFunc(ctx, cancelTab)
	cancel := func() {
		stop()
		cancelTab()
	}

	// create the target now to report failures to the caller
	if err := chromedp.Run(tabCtx); err != nil {
		cancel()
		return nil, nil, fmt.Errorf("open tab: %w", err)
	}
	return tabCtx, cancel, nil
}

// Close shuts down the browser process if it was started
func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.browserCtx == nil {
		return nil
	}

	var err error
	if cerr := chromedp.Cancel(b.browserCtx); cerr != nil {
		err = fmt.Errorf("close browser: %w", cerr)
	}
	b.browserCancel()
	b.allocCancel()
	b.browserCtx, b.browserCancel, b.allocCancel = nil, nil, nil
	lgr.Printf("[INFO] browser closed")
	return err
}

// Started reports whether chrome is running
func (b *Browser) Started() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.browserCtx != nil
}

// start launches chrome once, later calls reuse the running instance
func (b *Browser) start(ctx context.Context) (context.Context, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.browserCtx != nil {
		return b.browserCtx, nil
	}

	retrier := repeater.NewBackoff(b.opts.StartTries, 500*time.Millisecond, repeater.WithMaxDelay(3*time.Second))
	err := retrier.Do(ctx, func() error {
		// the browser must outlive the request that happened to start it
		allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), b.allocatorOptions()...)
		browserCtx, browserCancel := chromedp.NewContext(allocCtx)
		if err := chromedp.Run(browserCtx); err != nil {
			browserCancel()
			allocCancel()
			lgr.Printf("[WARN] can't start browser: %v", err)
			return err
		}
		b.allocCancel, b.browserCtx, b.browserCancel = allocCancel, browserCtx, browserCancel
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("start browser: %w", err)
	}
	lgr.Printf("[INFO] browser started, headless=%v", b.opts.Headless)
	return b.browserCtx, nil
}

func (b *Browser) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.Flag("headless", b.opts.Headless),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.WindowSize(b.opts.WindowWidth, b.opts.WindowHeight),
	)
	if b.opts.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(b.opts.ExecPath))
	}
	if b.opts.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(b.opts.UserAgent))
	}
	for name, val := range b.opts.Flags {
		opts = append(opts, chromedp.Flag(name, val))
	}
	return opts
}

// NavigateAndWaitIdle navigates to url and waits for the new document's network to become idle.
// Not reaching idle within timeout is not an error, busy pages are used as they are.
func NavigateAndWaitIdle(url string, timeout time.Duration) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		var (
			mu   sync.Mutex
			once sync.Once
			want cdp.LoaderID
		)
		seen := map[cdp.LoaderID]bool{}
		idle := make(chan struct{})

		lctx, cancel := context.WithCancel(ctx)
		defer cancel()
		chromedp.ListenTarget(lctx, func(ev any) {
			e, ok := ev.(*page.EventLifecycleEvent)
			if !ok || e.Name != "networkIdle" {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			seen[e.LoaderID] = true
			if want != "" && e.LoaderID == want {
				once.Do(func() { close(idle) })
			}
		})

		if err := page.SetLifecycleEventsEnabled(true).Do(ctx); err != nil {
			return fmt.Errorf("enable lifecycle events: %w", err)
		}
		_, loaderID, errText, err := page.Navigate(url).Do(ctx)
		if err != nil {
			return fmt.Errorf("navigate: %w", err)
		}
		if errText != "" {
			return fmt.Errorf("navigate: %s", errText)
		}

		// idle may have been reported before the loader id was known
		mu.Lock()
		want = loaderID
		if seen[want] {
			once.Do(func() { close(idle) })
		}
		mu.Unlock()

		select {
		case <-idle:
		case <-time.After(timeout):
			lgr.Printf("[DEBUG] network did not become idle for %s in %v, continuing", url, timeout)
		case <-ctx.Done():
			return ctx.Err()
		}
		return nil
	})
}
