package systemconfig

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corp-smtk/armada-pintar-bandung-sub001/internal/config"
	"github.com/corp-smtk/armada-pintar-bandung-sub001/internal/database"
	"github.com/corp-smtk/armada-pintar-bandung-sub001/internal/settings"
	"github.com/corp-smtk/armada-pintar-bandung-sub001/pkg/models"
)

func newTestStore(t *testing.T) *settings.Store {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate(context.Background()))

	return settings.NewStore(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestResolver(t *testing.T, cfg *config.Config) (*Resolver, *settings.Store) {
	t.Helper()

	store := newTestStore(t)
	return NewResolver(cfg, store, slog.New(slog.NewTextHandler(io.Discard, nil))), store
}

func TestBuildSystemConfig_Defaults(t *testing.T) {
	sys := BuildSystemConfig(&config.Config{})

	assert.True(t, sys.Email.Enabled)
	assert.Equal(t, defaultEmailServiceID, sys.Email.ServiceID)
	assert.Equal(t, defaultEmailTemplateID, sys.Email.TemplateID)
	assert.True(t, sys.WhatsApp.Enabled)
	assert.Equal(t, defaultWhatsAppAPIKey, sys.WhatsApp.APIKey)
	assert.False(t, sys.Telegram.Enabled)
}

func TestBuildSystemConfig_EnvOverrides(t *testing.T) {
	sys := BuildSystemConfig(&config.Config{
		EmailServiceID:   "service_override",
		WhatsAppSender:   "6281111111111",
		TelegramBotToken: "123:abc",
		TelegramChatID:   "-100200300",
	})

	assert.Equal(t, "service_override", sys.Email.ServiceID)
	assert.Equal(t, defaultEmailTemplateID, sys.Email.TemplateID)
	assert.Equal(t, "6281111111111", sys.WhatsApp.Sender)
	assert.Equal(t, defaultWhatsAppAPIKey, sys.WhatsApp.APIKey)
	assert.True(t, sys.Telegram.Enabled)
}

func TestEffectiveConfig_UserPrecedence(t *testing.T) {
	ctx := context.Background()
	resolver, store := newTestResolver(t, &config.Config{})

	user := models.EmailSettings{
		Enabled:    true,
		ServiceID:  "service_user",
		TemplateID: "template_user",
		PublicKey:  "user_key",
		FromEmail:  "fleet@user.example",
		FromName:   "Fleet Ops",
	}
	require.NoError(t, store.SaveEmail(ctx, user))

	assert.Equal(t, user, resolver.EffectiveEmail(ctx))
}

func TestEffectiveConfig_FallsBackToSystem(t *testing.T) {
	ctx := context.Background()
	resolver, store := newTestResolver(t, &config.Config{})

	// Disabled user settings do not count, even when fully populated
	require.NoError(t, store.SaveEmail(ctx, models.EmailSettings{
		Enabled:    false,
		ServiceID:  "service_user",
		TemplateID: "template_user",
		PublicKey:  "user_key",
		FromEmail:  "fleet@user.example",
	}))
	assert.Equal(t, resolver.SystemConfig().Email, resolver.EffectiveEmail(ctx))

	// A required field missing also falls back
	require.NoError(t, store.SaveWhatsApp(ctx, models.WhatsAppSettings{
		Enabled: true,
		APIKey:  "",
		Sender:  "628999",
	}))
	assert.Equal(t, resolver.SystemConfig().WhatsApp, resolver.EffectiveWhatsApp(ctx))
}

func TestEffectiveConfig_MalformedSettings(t *testing.T) {
	ctx := context.Background()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate(ctx))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := settings.NewStore(db, logger)
	resolver := NewResolver(&config.Config{}, store, logger)

	// Malformed persisted JSON reads as "not configured", never an error
	require.NoError(t, db.SetSetting(ctx, settings.KeyEmailSettings, "{not valid json"))
	assert.Equal(t, resolver.SystemConfig().Email, resolver.EffectiveEmail(ctx))
}

func TestConfigStatus(t *testing.T) {
	ctx := context.Background()
	resolver, store := newTestResolver(t, &config.Config{})

	status := resolver.ConfigStatus(ctx)
	assert.Equal(t, models.SourceSystem, status.Email)
	assert.Equal(t, models.SourceSystem, status.WhatsApp)
	// No telegram default ships built in
	assert.Equal(t, models.SourceNone, status.Telegram)

	require.NoError(t, store.SaveTelegram(ctx, models.TelegramSettings{
		Enabled:  true,
		BotToken: "123:abc",
		ChatID:   "-100200300",
	}))
	status = resolver.ConfigStatus(ctx)
	assert.Equal(t, models.SourceUser, status.Telegram)
}

func TestSystemReady(t *testing.T) {
	resolver, _ := newTestResolver(t, &config.Config{})

	ready, missing := resolver.SystemReady()
	assert.True(t, ready)
	assert.Empty(t, missing)
}

func TestIsStaleSeed(t *testing.T) {
	ctx := context.Background()
	resolver, store := newTestResolver(t, &config.Config{})

	assert.False(t, resolver.IsStaleSeed(ctx))

	require.NoError(t, store.SaveEmail(ctx, models.EmailSettings{
		Enabled:    true,
		ServiceID:  "service_demo123",
		TemplateID: "template_demo456",
		PublicKey:  "demo_public_key",
		FromEmail:  "demo@example.com",
	}))
	assert.True(t, resolver.IsStaleSeed(ctx))

	require.NoError(t, store.SaveEmail(ctx, resolver.SystemConfig().Email))
	assert.False(t, resolver.IsStaleSeed(ctx))
}
