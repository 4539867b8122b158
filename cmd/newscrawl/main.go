package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/newscrawl/pkg/config"
	"github.com/umputun/newscrawl/pkg/feed"
	"github.com/umputun/newscrawl/pkg/ingest"
	"github.com/umputun/newscrawl/pkg/normalize"
	"github.com/umputun/newscrawl/pkg/repository"
	"github.com/umputun/newscrawl/pkg/scheduler"
	"github.com/umputun/newscrawl/server"
)

// Opts with all CLI options
type Opts struct {
	Config   string `short:"c" long:"config" env:"CONFIG" description:"configuration file, built-in sources are used if not set"`
	Listen   string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	DB       string `long:"db" env:"DB" description:"database DSN, overrides config"`
	Schedule string `long:"schedule" env:"SCHEDULE" description:"cron schedule for periodic crawls, overrides config"`
	Once     bool   `long:"once" description:"run a single crawl and exit"`

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
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	SetupLog(opts.Debug)

	log.Printf("[INFO] starting newscrawl version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run wires all components and blocks until ctx is canceled, or until the single crawl is done with --once
func run(ctx context.Context, opts Opts) error {
	cfg := config.Default()
	if opts.Config != "" {
		var err error
		if cfg, err = config.Load(opts.Config); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}
	applyOverrides(cfg, opts)

	if secret := dsnPassword(cfg.Database.DSN); secret != "" {
		SetupLog(opts.Debug, secret)
	}
	lgr.Printf("[DEBUG] database %s, %d sources", cfg.Database.DSN, len(cfg.Sources))

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	crawler := ingest.NewCrawler(ingest.CrawlerParams{
		Sources:       cfg.GetSources(),
		Fetcher:       feed.NewHTTPFetcher(cfg.Crawl.FetchTimeout, cfg.Crawl.UserAgent),
		Normalizer:    &normalize.Normalizer{},
		Store:         repos.Article,
		MaxConcurrent: cfg.Crawl.MaxConcurrent,
	})

	if opts.Once {
		res, err := crawler.Run(ctx)
		if err != nil {
			return fmt.Errorf("crawl failed: %w", err)
		}
		lgr.Printf("[INFO] stored %d new articles from %d sources", res.Count, res.Sources-len(res.Failed))
		return nil
	}

	if cfg.Crawl.Schedule != "" {
		sched, err := scheduler.New(crawler, scheduler.Config{Schedule: cfg.Crawl.Schedule, RunOnStart: true})
		if err != nil {
			return fmt.Errorf("failed to create scheduler: %w", err)
		}
		sched.Start(ctx)
		defer sched.Stop()
	}

	srv := server.New(cfg, crawler, repos.Article, revision, opts.Debug)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// applyOverrides sets config values passed with CLI flags or env
func applyOverrides(cfg *config.Config, opts Opts) {
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if opts.DB != "" {
		cfg.Database.DSN = opts.DB
	}
	if opts.Schedule != "" {
		cfg.Crawl.Schedule = opts.Schedule
	}
}

// dsnPassword extracts password from URL-style DSN, empty if none
func dsnPassword(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return ""
	}
	pass, _ := u.User.Password()
	return pass
}

// SetupLog configures lgr and redirects stdlib log to it, secrets are masked in output
func SetupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
