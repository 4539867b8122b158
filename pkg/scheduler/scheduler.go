// Package scheduler runs ingestion passes periodically by cron schedule.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-pkgz/lgr"
	"github.com/robfig/cron/v3"

	"github.com/umputun/newscrawl/pkg/domain"
)

//go:generate moq -out mocks/runner.go -pkg mocks -skip-ensure -fmt goimports . Runner

// Runner performs a single ingestion pass
type Runner interface {
	Run(ctx context.Context) (*domain.IngestResult, error)
}

// Config holds scheduler configuration
type Config struct {
	Schedule   string // cron spec or descriptor, e.g. "*/5 * * * *" or "@every 5m"
	RunOnStart bool   // run a pass right after Start without waiting for the first tick
}

// Scheduler triggers runner by cron schedule. Overlapping passes are skipped.
type Scheduler struct {
	cron       *cron.Cron
	job        cron.Job // runOnce wrapped with recover and overlap skipping
	runner     Runner
	schedule   string
	runOnStart bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New makes Scheduler, returns error on empty or unparsable schedule
func New(runner Runner, cfg Config) (*Scheduler, error) {
	if cfg.Schedule == "" {
		return nil, errors.New("empty schedule")
	}

	logger := cron.PrintfLogger(cronLogger{})
	res := &Scheduler{
		cron:       cron.New(cron.WithLogger(logger)),
		runner:     runner,
		schedule:   cfg.Schedule,
		runOnStart: cfg.RunOnStart,
	}
	res.ctx, res.cancel = context.WithCancel(context.Background())

	// scheduled ticks and the start-up run share one chain, so they never overlap
	res.job = cron.NewChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)).Then(cron.FuncJob(res.runOnce))
	if _, err := res.cron.AddJob(cfg.Schedule, res.job); err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", cfg.Schedule, err)
	}
	return res, nil
}

// Start begins scheduled runs, canceling ctx stops passes in progress
func (s *Scheduler) Start(ctx context.Context) {
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.cron.Start()
	lgr.Printf("[INFO] scheduler started with schedule %q", s.schedule)

	if s.runOnStart {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.job.Run()
		}()
	}
}

// Stop cancels a pass in progress and waits for running jobs to finish
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	s.cancel()
	<-s.cron.Stop().Done()
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

func (s *Scheduler) runOnce() {
	if s.ctx.Err() != nil {
		return
	}
	lgr.Printf("[DEBUG] scheduled crawl started")
	res, err := s.runner.Run(s.ctx)
	if err != nil {
		lgr.Printf("[ERROR] scheduled crawl failed: %v", err)
		return
	}
	lgr.Printf("[INFO] scheduled crawl stored %d new articles, %d sources failed", res.Count, len(res.Failed))
}

// cronLogger sends cron messages to lgr
type cronLogger struct{}

func (cronLogger) Printf(format string, args ...any) {
	lgr.Printf("[WARN] cron: "+format, args...)
}
