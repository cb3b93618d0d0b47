// Package autoconfig seeds default channel configurations on first run so the
// application works without manual setup, and self-heals stale seed data.
package autoconfig

import (
	"context"
	"log/slog"
	"time"

	"github.com/corp-smtk/armada-pintar-bandung-sub001/internal/settings"
	"github.com/corp-smtk/armada-pintar-bandung-sub001/internal/systemconfig"
	"github.com/corp-smtk/armada-pintar-bandung-sub001/pkg/models"
)

// Initializer performs the first-run seeding of channel settings
type Initializer struct {
	store    *settings.Store
	resolver *systemconfig.Resolver
	logger   *slog.Logger
	now      func() time.Time
}

// NewInitializer creates a new initializer
func NewInitializer(store *settings.Store, resolver *systemconfig.Resolver, logger *slog.Logger) *Initializer {
	return &Initializer{
		store:    store,
		resolver: resolver,
		logger:   logger.With("component", "autoconfig"),
		now:      time.Now,
	}
}

// Initialize is the idempotent startup entry point. On the first run it seeds
// default settings for every channel and records the init flag. On later runs
// it reseeds only if the persisted values are recognised as stale placeholder
// data; otherwise it performs a read-only verification pass. Errors are
// logged and swallowed: the application keeps running with whatever partial
// configuration resulted.
func (i *Initializer) Initialize(ctx context.Context) {
	if _, initialized := i.store.InitFlag(ctx); !initialized {
		i.logger.Info("first run detected, seeding default configurations")
		i.seed(ctx)
		return
	}

	if i.resolver.IsStaleSeed(ctx) {
		i.logger.Warn("stale seed data detected, reseeding defaults")
		i.seed(ctx)
		return
	}

	// Read-only verification pass
	status := i.resolver.ConfigStatus(ctx)
	ready, missing := i.resolver.SystemReady()
	i.logger.Info("configuration verified",
		"email", status.Email,
		"whatsapp", status.WhatsApp,
		"telegram", status.Telegram,
		"system_ready", ready,
		"missing", missing,
	)
}

// seed writes default settings and records the init flag. Email and WhatsApp
// are always overwritten with the system defaults: the shared credentials
// must work out of the box and must not drift. Telegram and general settings
// are written only if absent, so a partial user setup is never clobbered.
func (i *Initializer) seed(ctx context.Context) {
	sys := i.resolver.SystemConfig()

	if err := i.store.SaveEmail(ctx, sys.Email); err != nil {
		i.logger.Error("failed to seed email settings", "error", err)
	}
	if err := i.store.SaveWhatsApp(ctx, sys.WhatsApp); err != nil {
		i.logger.Error("failed to seed whatsapp settings", "error", err)
	}

	if !i.store.HasTelegram(ctx) {
		if err := i.store.SaveTelegram(ctx, sys.Telegram); err != nil {
			i.logger.Error("failed to seed telegram settings", "error", err)
		}
	}
	if !i.store.HasGeneral(ctx) {
		general := models.GeneralSettings{
			DailyCheckTime: models.DefaultDailyCheckTime,
			MaxRetries:     3,
			RetryDelaySec:  30,
		}
		if err := i.store.SaveGeneral(ctx, general); err != nil {
			i.logger.Error("failed to seed general settings", "error", err)
		}
	}

	ts := i.now().Format(time.RFC3339)
	if err := i.store.SaveInitFlag(ctx, ts); err != nil {
		i.logger.Error("failed to record init flag", "error", err)
		return
	}
	i.logger.Info("default configurations seeded", "at", ts)
}

// Reset clears the init flag only, forcing a reseed on the next Initialize.
// The seeded settings themselves are left in place.
func (i *Initializer) Reset(ctx context.Context) error {
	return i.store.ClearInitFlag(ctx)
}

// ForceReconfigure resets the init flag and immediately reinitializes
func (i *Initializer) ForceReconfigure(ctx context.Context) {
	if err := i.Reset(ctx); err != nil {
		i.logger.Error("failed to reset auto-configuration", "error", err)
	}
	i.Initialize(ctx)
}

// SystemStatus combines the init flag with per-channel readiness
func (i *Initializer) SystemStatus(ctx context.Context) models.SystemStatus {
	flag, initialized := i.store.InitFlag(ctx)
	status := i.resolver.ConfigStatus(ctx)

	return models.SystemStatus{
		AutoConfigured: initialized,
		EmailReady:     status.Email != models.SourceNone,
		WhatsAppReady:  status.WhatsApp != models.SourceNone,
		TelegramReady:  status.Telegram != models.SourceNone,
		LastConfigured: flag,
	}
}
