// Package scheduler drives the daily reminder check: a minute-level poll that
// fires an injected routine once per calendar day at the configured HH:MM.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/corp-smtk/armada-pintar-bandung-sub001/internal/settings"
	"github.com/corp-smtk/armada-pintar-bandung-sub001/pkg/models"
)

const (
	// tickInterval is the poll period; trigger granularity is one minute
	tickInterval = time.Minute
	// startupCheckDelay covers starting after today's trigger time has passed
	startupCheckDelay = 5 * time.Second

	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// CheckFunc is the injected daily-reminder routine. It returns normally on
// success; the scheduler records but never propagates its error.
type CheckFunc func(ctx context.Context) error

// Scheduler runs the daily check at the configured local time
type Scheduler struct {
	store  *settings.Store
	logger *slog.Logger
	now    func() time.Time

	mu            sync.Mutex
	checkFn       CheckFunc
	active        bool
	running       bool
	lastCheckDate string
	cancel        context.CancelFunc
}

// Status is a snapshot of the scheduler state for display
type Status struct {
	IsActive      bool   `json:"isActive"`
	IsRunning     bool   `json:"isRunning"`
	LastCheckDate string `json:"lastCheckDate,omitempty"`
	ScheduledTime string `json:"scheduledTime"`
	NextCheckIn   string `json:"nextCheckIn"`
}

// New creates a new scheduler
func New(store *settings.Store, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		store:  store,
		logger: logger.With("component", "scheduler"),
		now:    time.Now,
	}
}

// Initialize binds the daily routine and starts the poll loop plus a
// near-immediate startup check
func (s *Scheduler) Initialize(fn CheckFunc) {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return
	}
	s.checkFn = fn
	s.active = true
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.mu.Unlock()

	go s.loop(ctx)
	s.logger.Info("scheduler started", "tick", tickInterval.String())
}

// Stop cancels future ticks; an in-flight check runs to completion
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	s.cancel()
	s.active = false
	s.logger.Info("scheduler stopped")
}

// Restart stops and re-enters the active state. Used after a settings change
// that alters the trigger time.
func (s *Scheduler) Restart() {
	s.mu.Lock()
	fn := s.checkFn
	s.mu.Unlock()

	s.Stop()
	s.Initialize(fn)
}

// RunManualCheck bypasses the time-of-day gate and invokes the check
// directly. A check already in flight makes this a no-op.
func (s *Scheduler) RunManualCheck(ctx context.Context) {
	s.runOnce(ctx, "manual")
}

// Status reports the current scheduler state. NextCheckIn is the delta to
// the next occurrence of the trigger time, rolling over to tomorrow when
// today's occurrence has passed.
func (s *Scheduler) Status(ctx context.Context) Status {
	scheduled := s.scheduledTime(ctx)
	now := s.now()

	s.mu.Lock()
	st := Status{
		IsActive:      s.active,
		IsRunning:     s.running,
		LastCheckDate: s.lastCheckDate,
		ScheduledTime: scheduled,
	}
	s.mu.Unlock()

	st.NextCheckIn = nextOccurrence(now, scheduled).Sub(now).Truncate(time.Second).String()
	return st
}

// LastCheckInfo returns the persisted outcome of the most recent run, or nil
// if no run has been recorded
func (s *Scheduler) LastCheckInfo(ctx context.Context) *models.CheckRecord {
	return s.store.LastCheck(ctx)
}

func (s *Scheduler) loop(ctx context.Context) {
	startup := time.NewTimer(startupCheckDelay)
	defer startup.Stop()
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-startup.C:
			s.startupCheck(ctx)
		case <-ticker.C:
			s.evaluate(ctx, s.now())
		}
	}
}

// evaluate fires the check when the current minute matches the trigger time
// and no run has been initiated today
func (s *Scheduler) evaluate(ctx context.Context, now time.Time) {
	if now.Format(clockLayout) != s.scheduledTime(ctx) {
		return
	}
	if s.ranToday(now) {
		return
	}
	s.runOnce(ctx, "automatic")
}

// startupCheck fires once shortly after Initialize. Without it, a process
// started after the day's trigger time would wait a full day.
func (s *Scheduler) startupCheck(ctx context.Context) {
	now := s.now()
	scheduled := s.scheduledTime(ctx)
	if now.Format(clockLayout) < scheduled {
		return
	}
	if s.ranToday(now) {
		return
	}

	// A successful run recorded today by a previous process counts
	if rec := s.store.LastCheck(ctx); rec != nil && rec.Status == models.CheckStatusSuccess {
		if ts, err := time.Parse(time.RFC3339, rec.Timestamp); err == nil && ts.Format(dateLayout) == now.Format(dateLayout) {
			s.mu.Lock()
			s.lastCheckDate = now.Format(dateLayout)
			s.mu.Unlock()
			return
		}
	}

	s.logger.Info("trigger time already passed today, running catch-up check", "scheduled", scheduled)
	s.runOnce(ctx, "startup")
}

func (s *Scheduler) ranToday(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastCheckDate == now.Format(dateLayout)
}

// runOnce performs one guarded invocation. The run date is recorded on
// initiation, not completion, so a failed run is not retried until the next
// day or a manual trigger.
func (s *Scheduler) runOnce(ctx context.Context, trigger string) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.logger.Info("check already in progress, skipping", "trigger", trigger)
		return
	}
	fn := s.checkFn
	s.running = true
	s.lastCheckDate = s.now().Format(dateLayout)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	if fn == nil {
		s.logger.Error("no check routine bound", "trigger", trigger)
		return
	}

	// Stop only cancels future ticks; a run already in flight completes,
	// and its outcome record is still persisted.
	ctx = context.WithoutCancel(ctx)

	s.logger.Info("running daily check", "trigger", trigger)
	record := models.CheckRecord{
		Timestamp: s.now().Format(time.RFC3339),
		Status:    models.CheckStatusSuccess,
	}
	if err := fn(ctx); err != nil {
		record.Status = models.CheckStatusError
		record.Error = err.Error()
		s.logger.Error("daily check failed", "trigger", trigger, "error", err)
	} else {
		s.logger.Info("daily check completed", "trigger", trigger)
	}

	if err := s.store.SaveLastCheck(ctx, record); err != nil {
		s.logger.Error("failed to persist check record", "error", err)
	}
}

// scheduledTime reads the configured trigger time, falling back when unset
func (s *Scheduler) scheduledTime(ctx context.Context) string {
	general := s.store.General(ctx)
	if general.DailyCheckTime == "" {
		return models.DefaultDailyCheckTime
	}
	return general.DailyCheckTime
}

// nextOccurrence returns the next instant the trigger time comes around
func nextOccurrence(now time.Time, scheduled string) time.Time {
	parsed, err := time.Parse(clockLayout, scheduled)
	if err != nil {
		parsed, _ = time.Parse(clockLayout, models.DefaultDailyCheckTime)
	}

	next := time.Date(now.Year(), now.Month(), now.Day(), parsed.Hour(), parsed.Minute(), 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}
