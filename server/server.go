package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/hnscope/pkg/domain"
	"github.com/umputun/hnscope/pkg/pipeline"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/streamer.go -pkg mocks -skip-ensure -fmt goimports . Streamer
//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/capturer.go -pkg mocks -skip-ensure -fmt goimports . Capturer

// Server represents HTTP server instance
type Server struct {
	config   ConfigProvider
	streamer Streamer
	fetcher  Fetcher
	capturer Capturer
	opts     Options

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Streamer produces the event sequence for a page of stories
type Streamer interface {
	Stream(ctx context.Context, offset, limit int) iter.Seq[pipeline.Event]
}

// Fetcher is used by the debug endpoints
type Fetcher interface {
	ListStories(ctx context.Context, offset, limit int) (domain.StoryPage, error)
	FetchArticle(ctx context.Context, url string) (domain.Article, error)
	FetchComments(ctx context.Context, id int64, offset, limit int) (domain.CommentPage, error)
}

// Capturer takes on-demand screenshots
type Capturer interface {
	Capture(ctx context.Context, url string, id int64) domain.ScreenshotResult
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// Options holds server parameters not covered by ConfigProvider
type Options struct {
	ScreenshotDir    string
	ScreenshotPrefix string
	MaxLimit         int // largest page a client may request
	CommentsLimit    int // page size of the debug comments endpoint
	Version          string
	Debug            bool
}

// New initializes a new server instance
func New(cfg ConfigProvider, streamer Streamer, fetcher Fetcher, capturer Capturer, opts Options) *Server {
	if opts.ScreenshotPrefix == "" {
		opts.ScreenshotPrefix = "/static/screenshots/"
	}
	if !strings.HasSuffix(opts.ScreenshotPrefix, "/") {
		opts.ScreenshotPrefix += "/"
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 30
	}
	if opts.CommentsLimit <= 0 {
		opts.CommentsLimit = 10
	}

	s := &Server{
		config:   cfg,
		streamer: streamer,
		fetcher:  fetcher,
		capturer: capturer,
		opts:     opts,
		router:   routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout, // lifted for the event stream by its handler
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("hnscope", "umputun", s.opts.Version))
	s.router.Use(rest.Ping)
	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	// the request logger wraps the response writer and hides SetWriteDeadline,
	// so the event stream is registered outside of it
	s.router.HandleFunc("GET /analyze", s.analyzeHandler)

	web := s.router.Group()
	if s.opts.Debug {
		web.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	web.HandleFunc("GET /screenshot/{id}", s.screenshotHandler)
	web.Handle("GET "+s.opts.ScreenshotPrefix,
		http.StripPrefix(s.opts.ScreenshotPrefix, http.FileServer(noListingFS{http.Dir(s.opts.ScreenshotDir)})))

	web.Mount("/debug").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /frontpage", s.debugFrontpageHandler)
		r.HandleFunc("GET /article", s.debugArticleHandler)
		r.HandleFunc("GET /comments", s.debugCommentsHandler)
	})

	web.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
	})
}

// noListingFS hides directory listings of the screenshot dir
type noListingFS struct {
	fs http.FileSystem
}

func (n noListingFS) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil || st.IsDir() {
		_ = f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
