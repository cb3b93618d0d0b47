// Package systemconfig resolves the effective notification credentials per
// channel: valid user-entered settings win, otherwise the system-wide default
// applies. The system defaults ship built in and can be overridden per field
// by environment variables at deploy time.
package systemconfig

import (
	"context"
	"log/slog"

	"github.com/corp-smtk/armada-pintar-bandung-sub001/internal/config"
	"github.com/corp-smtk/armada-pintar-bandung-sub001/internal/settings"
	"github.com/corp-smtk/armada-pintar-bandung-sub001/pkg/models"
)

// Channel names
const (
	ChannelEmail    = "email"
	ChannelWhatsApp = "whatsapp"
	ChannelTelegram = "telegram"
)

// Built-in system defaults. The shared email/WhatsApp credentials must work
// out of the box on a fresh install; Telegram has no universally-correct
// default and ships disabled.
const (
	defaultEmailServiceID  = "service_smartek01"
	defaultEmailTemplateID = "template_fleet_reminder"
	defaultEmailPublicKey  = "BnuIYhFKrDICxQwWp"
	defaultEmailFrom       = "reminder@smarteksistem.com"
	defaultEmailFromName   = "Armada Pintar Reminder"
	defaultWhatsAppAPIKey  = "SMTK-GW-PROD-7f3a9c"
	defaultWhatsAppSender  = "6285155020033"
)

// stalePlaceholders are credential values seeded by earlier demo builds.
// Persisted email/WhatsApp settings matching any of these are treated as
// stale seed data and reseeded with the current defaults. Kept next to the
// defaults above so the two lists cannot drift apart silently.
var stalePlaceholders = map[string]bool{
	"service_demo123":       true,
	"template_demo456":      true,
	"demo_public_key":       true,
	"your_emailjs_service":  true,
	"your_emailjs_template": true,
	"DEMO-API-KEY-12345":    true,
	"628123456789":          true,
}

// Resolver decides, per channel, whether user-entered or system-default
// credentials are in effect
type Resolver struct {
	store     *settings.Store
	sysConfig models.SystemConfig
	logger    *slog.Logger
}

// NewResolver creates a new resolver. The system config is built once from
// deployment overrides and fixed for the lifetime of the process.
func NewResolver(cfg *config.Config, store *settings.Store, logger *slog.Logger) *Resolver {
	return &Resolver{
		store:     store,
		sysConfig: BuildSystemConfig(cfg),
		logger:    logger.With("component", "systemconfig"),
	}
}

// BuildSystemConfig builds the fallback configuration from deployment
// overrides; any missing override falls back to a built-in default. Pure and
// deterministic.
func BuildSystemConfig(cfg *config.Config) models.SystemConfig {
	return models.SystemConfig{
		Email: models.EmailSettings{
			Enabled:    true,
			ServiceID:  orDefault(cfg.EmailServiceID, defaultEmailServiceID),
			TemplateID: orDefault(cfg.EmailTemplateID, defaultEmailTemplateID),
			PublicKey:  orDefault(cfg.EmailPublicKey, defaultEmailPublicKey),
			FromEmail:  orDefault(cfg.EmailFromAddress, defaultEmailFrom),
			FromName:   orDefault(cfg.EmailFromName, defaultEmailFromName),
		},
		WhatsApp: models.WhatsAppSettings{
			Enabled: true,
			APIKey:  orDefault(cfg.WhatsAppAPIKey, defaultWhatsAppAPIKey),
			Sender:  orDefault(cfg.WhatsAppSender, defaultWhatsAppSender),
		},
		Telegram: models.TelegramSettings{
			Enabled:  cfg.TelegramBotToken != "" && cfg.TelegramChatID != "",
			BotToken: cfg.TelegramBotToken,
			ChatID:   cfg.TelegramChatID,
		},
	}
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

// SystemConfig returns the fixed system-wide default configuration
func (r *Resolver) SystemConfig() models.SystemConfig {
	return r.sysConfig
}

// EffectiveEmail returns the email credentials in effect: user settings when
// valid, otherwise the system default
func (r *Resolver) EffectiveEmail(ctx context.Context) models.EmailSettings {
	if user := r.store.Email(ctx); user.IsConfigured() {
		return user
	}
	return r.sysConfig.Email
}

// EffectiveWhatsApp returns the WhatsApp credentials in effect
func (r *Resolver) EffectiveWhatsApp(ctx context.Context) models.WhatsAppSettings {
	if user := r.store.WhatsApp(ctx); user.IsConfigured() {
		return user
	}
	return r.sysConfig.WhatsApp
}

// EffectiveTelegram returns the Telegram credentials in effect
func (r *Resolver) EffectiveTelegram(ctx context.Context) models.TelegramSettings {
	if user := r.store.Telegram(ctx); user.IsConfigured() {
		return user
	}
	return r.sysConfig.Telegram
}

// ConfigStatus computes, for each channel independently, whether user
// settings, the system default, or nothing is in effect
func (r *Resolver) ConfigStatus(ctx context.Context) models.ConfigStatus {
	return models.ConfigStatus{
		Email:    channelSource(r.store.Email(ctx).IsConfigured(), r.sysConfig.Email.IsConfigured()),
		WhatsApp: channelSource(r.store.WhatsApp(ctx).IsConfigured(), r.sysConfig.WhatsApp.IsConfigured()),
		Telegram: channelSource(r.store.Telegram(ctx).IsConfigured(), r.sysConfig.Telegram.IsConfigured()),
	}
}

func channelSource(userOK, systemOK bool) models.ChannelSource {
	switch {
	case userOK:
		return models.SourceUser
	case systemOK:
		return models.SourceSystem
	default:
		return models.SourceNone
	}
}

// SystemReady reports whether the system config alone covers baseline
// operation. Email and WhatsApp are required; Telegram is optional. Returns
// the channels that are missing.
func (r *Resolver) SystemReady() (bool, []string) {
	var missing []string
	if !r.sysConfig.Email.Enabled || r.sysConfig.Email.ServiceID == "" {
		missing = append(missing, ChannelEmail)
	}
	if !r.sysConfig.WhatsApp.Enabled || r.sysConfig.WhatsApp.APIKey == "" {
		missing = append(missing, ChannelWhatsApp)
	}
	return len(missing) == 0, missing
}

// IsStaleSeed reports whether the persisted email/WhatsApp settings still
// carry placeholder values from an earlier seed
func (r *Resolver) IsStaleSeed(ctx context.Context) bool {
	email := r.store.Email(ctx)
	if stalePlaceholders[email.ServiceID] || stalePlaceholders[email.TemplateID] || stalePlaceholders[email.PublicKey] {
		return true
	}
	wa := r.store.WhatsApp(ctx)
	return stalePlaceholders[wa.APIKey] || stalePlaceholders[wa.Sender]
}
