package capture

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/inspector"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/umputun/hnscope/pkg/browser"
)

// stealthScript hides the usual automation fingerprints before any page script runs
const stealthScript = `
Object.defineProperty(navigator, 'webdriver', {get: () => undefined});
Object.defineProperty(navigator, 'plugins', {get: () => [1, 2, 3, 4, 5]});
Object.defineProperty(navigator, 'languages', {get: () => ['en-US', 'en']});
Object.defineProperty(navigator, 'hardwareConcurrency', {get: () => 8});
Object.defineProperty(navigator, 'deviceMemory', {get: () => 8});
window.chrome = { runtime: {} };
`

// scrollScript scrolls down one viewport at a time and back to the top, resolving to the step count
const scrollScript = `(async () => {
	const delay = ms => new Promise(r => setTimeout(r, ms));
	const steps = Math.min(Math.floor(document.body.scrollHeight / window.innerHeight), 20);
	for (let i = 0; i < steps; i++) {
		window.scrollTo({top: (i + 1) * window.innerHeight, behavior: 'smooth'});
		await delay(Math.random() * 500 + 500);
	}
	window.scrollTo({top: 0, behavior: 'smooth'});
	return steps;
})()`

// ChromeLauncher opens sessions as separate browser contexts of its own Chrome instance
type ChromeLauncher struct {
	Browser     *browser.Browser
	IdleTimeout time.Duration
	HumanDelay  bool // random pause before navigation
}

// NewSession opens a tab in a fresh browser context with anti-detection setup applied
func (l *ChromeLauncher) NewSession(ctx context.Context) (Session, error) {
	tabCtx, cancel, err := l.Browser.Tab(ctx, chromedp.WithNewBrowserContext())
	if err != nil {
		return nil, err
	}

	s := &chromeSession{ctx: tabCtx, cancel: cancel, idleTimeout: l.IdleTimeout, humanDelay: l.HumanDelay}
	chromedp.ListenTarget(tabCtx, func(ev any) {
		switch ev.(type) {
		case *inspector.EventDetached, *inspector.EventTargetCrashed:
			s.closed.Store(true)
		}
	})

	headers := network.Headers{}
	for k, v := range browser.Headers(browser.AcceptDocument) {
		headers[k] = v
	}
	err = chromedp.Run(tabCtx,
		network.Enable(),
		network.SetExtraHTTPHeaders(headers),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(stealthScript).Do(ctx)
			return err
		}),
	)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("prepare session: %w", err)
	}
	return s, nil
}

// chromeSession runs actions in a single tab, the caller's ctx bounds each action
type chromeSession struct {
	ctx         context.Context
	cancel      context.CancelFunc
	idleTimeout time.Duration
	humanDelay  bool
	closed      atomic.Bool
}

func (s *chromeSession) Navigate(ctx context.Context, url string) error {
	if s.humanDelay {
		if err := sleep(ctx, time.Second+time.Duration(rand.Int63n(int64(1500*time.Millisecond)))); err != nil { //nolint:gosec // jitter
			return err
		}
	}
	return s.run(ctx, browser.NavigateAndWaitIdle(url, s.idleTimeout))
}

func (s *chromeSession) ScrollThrough(ctx context.Context) error {
	var steps int
	return s.run(ctx, chromedp.Evaluate(scrollScript, &steps, awaitPromise))
}

func (s *chromeSession) ScrollToMiddle(ctx context.Context) error {
	var top float64
	return s.run(ctx, chromedp.Evaluate(`(() => { const y = document.body.scrollHeight / 2; window.scrollTo({top: y, behavior: 'smooth'}); return y; })()`, &top))
}

func (s *chromeSession) VisibleText(ctx context.Context) (string, error) {
	var text string
	err := s.run(ctx, chromedp.Evaluate(`document.body ? document.body.innerText : ""`, &text))
	return text, err
}

func (s *chromeSession) HasAny(ctx context.Context, selectors []string) (bool, error) {
	sels, err := json.Marshal(selectors)
	if err != nil {
		return false, fmt.Errorf("encode selectors: %w", err)
	}
	var found bool
	err = s.run(ctx, chromedp.Evaluate(fmt.Sprintf(`%s.some(s => document.querySelector(s) !== null)`, sels), &found))
	return found, err
}

func (s *chromeSession) Screenshot(ctx context.Context, width, height int) ([]byte, error) {
	var buf []byte
	err := s.run(ctx,
		chromedp.EmulateViewport(int64(width), int64(height)),
		chromedp.Sleep(time.Second),
		chromedp.FullScreenshot(&buf, 100), // quality 100 makes png
	)
	return buf, err
}

func (s *chromeSession) Close() error {
	s.cancel()
	return nil
}

// run executes actions in the tab bounded by the caller's ctx
func (s *chromeSession) run(ctx context.Context, actions ...chromedp.Action) error {
	if s.closed.Load() || s.ctx.Err() != nil {
		return ErrSessionClosed
	}
	runCtx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(runCtx, actions...)
	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil:
		return ctx.Err()
	case s.closed.Load() || s.ctx.Err() != nil:
		return ErrSessionClosed
	}
	return err
}

func awaitPromise(p *runtime.EvaluateParams) *runtime.EvaluateParams {
	return p.WithAwaitPromise(true)
}
