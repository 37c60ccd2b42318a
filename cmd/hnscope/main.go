package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/hnscope/pkg/browser"
	"github.com/umputun/hnscope/pkg/cache"
	"github.com/umputun/hnscope/pkg/capture"
	"github.com/umputun/hnscope/pkg/config"
	"github.com/umputun/hnscope/pkg/llm"
	"github.com/umputun/hnscope/pkg/pipeline"
	"github.com/umputun/hnscope/pkg/scraper"
	"github.com/umputun/hnscope/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"configuration file"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	APIKey string `long:"api-key" env:"LLM_API_KEY" description:"LLM API key, overrides config"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	setupLog(opts.Debug, opts.NoColor, opts.APIKey)
	log.Printf("[INFO] starting hnscope version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	if err := run(ctx, opts); err != nil {
		log.Printf("[ERROR] %v", err)
		cancel()
		os.Exit(1)
	}
	cancel()
	log.Print("[INFO] shutdown complete")
}

// run wires all components and serves until ctx is done
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if opts.APIKey != "" {
		cfg.LLM.APIKey = opts.APIKey
	}
	if cfg.LLM.APIKey != "" {
		setupLog(opts.Debug, opts.NoColor, cfg.LLM.APIKey)
	}

	// scraping and capture use separate chrome instances, a hung capture never blocks listing
	scrapeBrowser := browser.New(browser.Options{
		ExecPath:    cfg.Browser.ExecPath,
		UserAgent:   cfg.Browser.UserAgent,
		Headless:    cfg.Browser.Headless,
		NavTimeout:  cfg.Browser.NavTimeout,
		IdleTimeout: cfg.Browser.IdleTimeout,
	})
	captureBrowser := browser.New(browser.Options{
		ExecPath:     cfg.Browser.ExecPath,
		UserAgent:    cfg.Browser.UserAgent,
		Headless:     cfg.Browser.Headless,
		NavTimeout:   cfg.Capture.NavTimeout,
		IdleTimeout:  cfg.Capture.IdleTimeout,
		WindowWidth:  cfg.Capture.ViewportWidth,
		WindowHeight: cfg.Capture.ViewportHeights[0],
	})
	defer func() {
		for _, b := range []*browser.Browser{scrapeBrowser, captureBrowser} {
			if err := b.Close(); err != nil {
				log.Printf("[WARN] %v", err)
			}
		}
	}()

	scraperCfg := scraper.Config{
		BaseURL:            cfg.HN.BaseURL,
		PageSize:           cfg.HN.PageSize,
		BotPhrases:         cfg.Browser.BotPhrases,
		ContainerSelectors: cfg.Browser.ContainerSelectors,
		MinBlockLength:     cfg.Browser.MinBlockLength,
	}
	if cfg.HN.RSSURL != "" {
		feed, err := scraper.NewFeedLister(cfg.HN.RSSURL, cfg.HN.BaseURL, cfg.HN.Timeout)
		if err != nil {
			return fmt.Errorf("failed to make feed lister: %w", err)
		}
		scraperCfg.Fallback = feed
	}
	fetcher, err := scraper.New(scrapeBrowser, scraperCfg)
	if err != nil {
		return fmt.Errorf("failed to make scraper: %w", err)
	}

	capturer, err := capture.New(&capture.ChromeLauncher{Browser: captureBrowser, IdleTimeout: cfg.Capture.IdleTimeout, HumanDelay: true},
		capture.Config{
			Dir:             cfg.Capture.Dir,
			URLPrefix:       cfg.Capture.URLPrefix,
			ViewportWidth:   cfg.Capture.ViewportWidth,
			ViewportHeights: cfg.Capture.ViewportHeights,
			Timeout:         cfg.Capture.NavTimeout + cfg.Capture.IdleTimeout,
			SettleDelay:     cfg.Capture.SettleDelay,
			CMSWait:         cfg.Capture.CMSWait,
			BlockPhrases:    cfg.Capture.BlockPhrases,
			CMSMarkers:      cfg.Capture.CMSMarkers,
			MaxConcurrent:   cfg.Capture.MaxConcurrent,
		})
	if err != nil {
		return fmt.Errorf("failed to make capture client: %w", err)
	}

	store, err := cache.New(cfg.Cache.Dir)
	if err != nil {
		return fmt.Errorf("failed to make cache: %w", err)
	}

	if cfg.LLM.APIKey == "" {
		log.Printf("[WARN] llm api key is not set, hooks and analysis will fall back to defaults")
	}
	pipe := pipeline.New(pipeline.Config{
		Fetcher:          fetcher,
		Capturer:         capturer,
		Summarizer:       llm.NewSummarizer(cfg.LLM),
		Cache:            store,
		Delay:            cfg.Stream.Delay,
		CommentsLimit:    cfg.HN.CommentsLimit,
		ScreenshotPrefix: cfg.Capture.URLPrefix,
	})

	srv := server.New(cfg, pipe, fetcher, capturer, server.Options{
		ScreenshotDir:    cfg.Capture.Dir,
		ScreenshotPrefix: cfg.Capture.URLPrefix,
		MaxLimit:         cfg.Stream.MaxLimit,
		CommentsLimit:    cfg.HN.CommentsLimit,
		Version:          revision,
		Debug:            opts.Debug,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx) })
	if err := g.Wait(); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func setupLog(dbg, noColor bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}

	var secrets []string
	for _, s := range secs {
		if s != "" {
			secrets = append(secrets, s)
		}
	}
	if len(secrets) > 0 {
		logOpts = append(logOpts, lgr.Secret(secrets...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
