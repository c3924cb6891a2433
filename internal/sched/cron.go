// Package sched triggers pipeline runs on a cron schedule in the
// league's home timezone.
package sched

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const (
	// DefaultSpec fires the daily run at 8 AM.
	DefaultSpec = "0 8 * * *"
	// DefaultTimezone is the league's home timezone, so the 8 AM slot
	// tracks UK clock changes.
	DefaultTimezone = "Europe/London"

	// runTimeout bounds a single scheduled run.
	runTimeout = 10 * time.Minute
)

// Scheduler fires a job on a cron spec. It can be paused without
// stopping the cron loop, so a /resume does not lose the schedule.
type Scheduler struct {
	cron   *cron.Cron
	job    func(ctx context.Context)
	spec   string
	paused atomic.Bool
	log    zerolog.Logger
}

// New creates a scheduler for the given cron spec and timezone. Empty
// spec or timezone fall back to the defaults.
func New(spec, timezone string, job func(ctx context.Context), log zerolog.Logger) (*Scheduler, error) {
	if spec == "" {
		spec = DefaultSpec
	}
	if timezone == "" {
		timezone = DefaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("sched: load timezone %q: %w", timezone, err)
	}

	s := &Scheduler{
		cron: cron.New(cron.WithLocation(loc)),
		job:  job,
		spec: spec,
		log:  log,
	}
	if _, err := s.cron.AddFunc(spec, s.fire); err != nil {
		return nil, fmt.Errorf("sched: invalid cron spec %q: %w", spec, err)
	}
	return s, nil
}

// Start begins firing. It does not block.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Str("spec", s.spec).Msg("scheduler started")
}

// Stop stops the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("scheduler stopped")
}

// Pause skips scheduled fires until Resume.
func (s *Scheduler) Pause() {
	s.paused.Store(true)
	s.log.Info().Msg("scheduled runs paused")
}

// Resume re-enables scheduled fires.
func (s *Scheduler) Resume() {
	s.paused.Store(false)
	s.log.Info().Msg("scheduled runs resumed")
}

// Paused reports whether scheduled fires are currently skipped.
func (s *Scheduler) Paused() bool {
	return s.paused.Load()
}

func (s *Scheduler) fire() {
	if s.paused.Load() {
		s.log.Info().Msg("skipping scheduled run: paused")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()
	s.job(ctx)
}
