package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corp-smtk/armada-pintar-bandung-sub001/internal/database"
	"github.com/corp-smtk/armada-pintar-bandung-sub001/internal/settings"
	"github.com/corp-smtk/armada-pintar-bandung-sub001/pkg/models"
)

func newTestScheduler(t *testing.T, checkTime string) (*Scheduler, *settings.Store) {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate(context.Background()))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := settings.NewStore(db, logger)
	require.NoError(t, store.SaveGeneral(context.Background(), models.GeneralSettings{
		DailyCheckTime: checkTime,
	}))

	return New(store, logger), store
}

func at(hour, min int) time.Time {
	return time.Date(2025, 6, 10, hour, min, 0, 0, time.Local)
}

func TestEvaluate_AtMostOncePerDay(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestScheduler(t, "09:00")

	var count atomic.Int32
	s.checkFn = func(ctx context.Context) error {
		count.Add(1)
		return nil
	}

	// Before the trigger minute nothing happens
	s.now = func() time.Time { return at(8, 59) }
	s.evaluate(ctx, at(8, 59))
	assert.Equal(t, int32(0), count.Load())

	// The trigger minute fires exactly once, however often it is seen
	s.now = func() time.Time { return at(9, 0) }
	s.evaluate(ctx, at(9, 0))
	s.evaluate(ctx, at(9, 0))
	s.evaluate(ctx, at(9, 0))
	assert.Equal(t, int32(1), count.Load())

	// Later ticks the same day stay quiet, even on the trigger minute again
	s.now = func() time.Time { return at(23, 59) }
	s.evaluate(ctx, at(23, 59))
	s.now = func() time.Time { return at(9, 0) }
	s.evaluate(ctx, at(9, 0))
	assert.Equal(t, int32(1), count.Load())
}

func TestEvaluate_NextDayRunsAgain(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestScheduler(t, "09:00")

	var count atomic.Int32
	s.checkFn = func(ctx context.Context) error {
		count.Add(1)
		return nil
	}

	s.now = func() time.Time { return at(9, 0) }
	s.evaluate(ctx, at(9, 0))

	nextDay := at(9, 0).Add(24 * time.Hour)
	s.now = func() time.Time { return nextDay }
	s.evaluate(ctx, nextDay)

	assert.Equal(t, int32(2), count.Load())
}

func TestRunManualCheck_MutualExclusion(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestScheduler(t, "09:00")

	started := make(chan struct{})
	release := make(chan struct{})
	var count atomic.Int32
	s.checkFn = func(ctx context.Context) error {
		count.Add(1)
		close(started)
		<-release
		return nil
	}
	s.now = func() time.Time { return at(10, 0) }

	done := make(chan struct{})
	go func() {
		s.RunManualCheck(ctx)
		close(done)
	}()
	<-started

	// A second caller while a check is in flight is a no-op
	s.RunManualCheck(ctx)
	assert.Equal(t, int32(1), count.Load())

	close(release)
	<-done
	assert.Equal(t, int32(1), count.Load())
}

func TestStop_DoesNotInterruptInflightRun(t *testing.T) {
	s, _ := newTestScheduler(t, "09:00")

	loopCtx, cancel := context.WithCancel(context.Background())
	s.active = true
	s.cancel = cancel

	started := make(chan struct{})
	release := make(chan struct{})
	var sawErr error
	s.checkFn = func(ctx context.Context) error {
		close(started)
		<-release
		sawErr = ctx.Err()
		return nil
	}
	s.now = func() time.Time { return at(9, 0) }

	done := make(chan struct{})
	go func() {
		s.runOnce(loopCtx, "automatic")
		close(done)
	}()
	<-started

	// Stopping mid-run cancels the loop context, not the run itself
	s.Stop()
	close(release)
	<-done

	assert.NoError(t, sawErr)
	rec := s.LastCheckInfo(context.Background())
	require.NotNil(t, rec)
	assert.Equal(t, models.CheckStatusSuccess, rec.Status)
}

func TestRunOnce_ErrorRecorded(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestScheduler(t, "09:00")

	s.checkFn = func(ctx context.Context) error {
		return errors.New("gateway unreachable")
	}
	s.now = func() time.Time { return at(9, 0) }

	s.RunManualCheck(ctx)

	rec := s.LastCheckInfo(ctx)
	require.NotNil(t, rec)
	assert.Equal(t, models.CheckStatusError, rec.Status)
	assert.Equal(t, "gateway unreachable", rec.Error)
	assert.False(t, s.Status(ctx).IsRunning)
}

func TestStatus_NextCheckRollover(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestScheduler(t, "09:00")

	// Past today's occurrence the delta rolls to tomorrow
	s.now = func() time.Time { return at(10, 0) }
	status := s.Status(ctx)
	assert.Equal(t, "09:00", status.ScheduledTime)
	assert.Equal(t, "23h0m0s", status.NextCheckIn)

	// Before it, the delta is to today's occurrence
	s.now = func() time.Time { return at(8, 30) }
	status = s.Status(ctx)
	assert.Equal(t, "30m0s", status.NextCheckIn)
}

func TestNextOccurrence(t *testing.T) {
	next := nextOccurrence(at(8, 0), "09:00")
	assert.Equal(t, at(9, 0), next)

	next = nextOccurrence(at(9, 0), "09:00")
	assert.Equal(t, at(9, 0).Add(24*time.Hour), next)

	// Malformed trigger times fall back rather than panic
	next = nextOccurrence(at(8, 0), "not-a-time")
	assert.Equal(t, at(9, 0), next)
}

func TestStartupCheck_CatchesUpMissedRun(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestScheduler(t, "09:00")

	var count atomic.Int32
	s.checkFn = func(ctx context.Context) error {
		count.Add(1)
		return nil
	}

	// Starting after the trigger time with no run recorded fires immediately
	s.now = func() time.Time { return at(14, 0) }
	s.startupCheck(ctx)
	assert.Equal(t, int32(1), count.Load())

	// And only once
	s.startupCheck(ctx)
	assert.Equal(t, int32(1), count.Load())
}

func TestStartupCheck_BeforeTriggerTime(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestScheduler(t, "09:00")

	var count atomic.Int32
	s.checkFn = func(ctx context.Context) error {
		count.Add(1)
		return nil
	}

	s.now = func() time.Time { return at(7, 0) }
	s.startupCheck(ctx)
	assert.Equal(t, int32(0), count.Load())
}

func TestStartupCheck_RespectsPersistedRun(t *testing.T) {
	ctx := context.Background()
	s, store := newTestScheduler(t, "09:00")

	// A previous process already ran successfully today
	require.NoError(t, store.SaveLastCheck(ctx, models.CheckRecord{
		Timestamp: at(9, 0).Format(time.RFC3339),
		Status:    models.CheckStatusSuccess,
	}))

	var count atomic.Int32
	s.checkFn = func(ctx context.Context) error {
		count.Add(1)
		return nil
	}

	s.now = func() time.Time { return at(14, 0) }
	s.startupCheck(ctx)
	assert.Equal(t, int32(0), count.Load())
	assert.Equal(t, at(14, 0).Format(dateLayout), s.Status(ctx).LastCheckDate)
}

func TestManualCheck_SuppressesAutomaticRun(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestScheduler(t, "09:00")

	var count atomic.Int32
	s.checkFn = func(ctx context.Context) error {
		count.Add(1)
		return nil
	}

	// The run date is recorded on initiation, whoever initiates it
	s.now = func() time.Time { return at(8, 0) }
	s.RunManualCheck(ctx)

	s.now = func() time.Time { return at(9, 0) }
	s.evaluate(ctx, at(9, 0))

	assert.Equal(t, int32(1), count.Load())
}
