// Package settings provides typed access to the persisted configuration
// records. Each record is one JSON document stored under a well-known key.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/corp-smtk/armada-pintar-bandung-sub001/internal/database"
	"github.com/corp-smtk/armada-pintar-bandung-sub001/pkg/models"
)

// Well-known settings keys
const (
	KeyEmailSettings    = "smartek_email_settings"
	KeyWhatsAppSettings = "smartek_whatsapp_settings"
	KeyTelegramSettings = "smartek_telegram_settings"
	KeyGeneralSettings  = "smartek_general_settings"
	KeyAutoConfigFlag   = "smartek_auto_config_initialized"
	KeyLastCheck        = "smartek_last_automated_check"
)

// Store reads and writes settings documents
type Store struct {
	db     *database.DB
	logger *slog.Logger
}

// NewStore creates a new settings store
func NewStore(db *database.DB, logger *slog.Logger) *Store {
	return &Store{
		db:     db,
		logger: logger.With("component", "settings"),
	}
}

// read unmarshals the document under key into out. A missing key or malformed
// document leaves out at its zero value and returns false; storage errors are
// logged, never propagated, so readers always get a usable shape.
func (s *Store) read(ctx context.Context, key string, out any) bool {
	raw, err := s.db.GetSetting(ctx, key)
	if errors.Is(err, database.ErrNotFound) {
		return false
	}
	if err != nil {
		s.logger.Error("failed to read setting", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.logger.Warn("malformed setting, using defaults", "key", key, "error", err)
		return false
	}
	return true
}

// write marshals v and stores it under key
func (s *Store) write(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal setting %q: %w", key, err)
	}
	if err := s.db.SetSetting(ctx, key, string(raw)); err != nil {
		return err
	}
	return nil
}

// Email returns the persisted email settings, or a zero (disabled) shape
func (s *Store) Email(ctx context.Context) models.EmailSettings {
	var v models.EmailSettings
	s.read(ctx, KeyEmailSettings, &v)
	return v
}

// SaveEmail persists the email settings
func (s *Store) SaveEmail(ctx context.Context, v models.EmailSettings) error {
	return s.write(ctx, KeyEmailSettings, v)
}

// WhatsApp returns the persisted WhatsApp settings, or a zero (disabled) shape
func (s *Store) WhatsApp(ctx context.Context) models.WhatsAppSettings {
	var v models.WhatsAppSettings
	s.read(ctx, KeyWhatsAppSettings, &v)
	return v
}

// SaveWhatsApp persists the WhatsApp settings
func (s *Store) SaveWhatsApp(ctx context.Context, v models.WhatsAppSettings) error {
	return s.write(ctx, KeyWhatsAppSettings, v)
}

// Telegram returns the persisted Telegram settings, or a zero (disabled) shape
func (s *Store) Telegram(ctx context.Context) models.TelegramSettings {
	var v models.TelegramSettings
	s.read(ctx, KeyTelegramSettings, &v)
	return v
}

// SaveTelegram persists the Telegram settings
func (s *Store) SaveTelegram(ctx context.Context, v models.TelegramSettings) error {
	return s.write(ctx, KeyTelegramSettings, v)
}

// HasTelegram reports whether a Telegram settings document exists at all
func (s *Store) HasTelegram(ctx context.Context) bool {
	var v models.TelegramSettings
	return s.read(ctx, KeyTelegramSettings, &v)
}

// General returns the persisted general settings, or a zero shape
func (s *Store) General(ctx context.Context) models.GeneralSettings {
	var v models.GeneralSettings
	s.read(ctx, KeyGeneralSettings, &v)
	return v
}

// SaveGeneral persists the general settings
func (s *Store) SaveGeneral(ctx context.Context, v models.GeneralSettings) error {
	return s.write(ctx, KeyGeneralSettings, v)
}

// HasGeneral reports whether a general settings document exists at all
func (s *Store) HasGeneral(ctx context.Context) bool {
	var v models.GeneralSettings
	return s.read(ctx, KeyGeneralSettings, &v)
}

// InitFlag returns the auto-configuration timestamp and whether it is set
func (s *Store) InitFlag(ctx context.Context) (string, bool) {
	raw, err := s.db.GetSetting(ctx, KeyAutoConfigFlag)
	if err != nil {
		return "", false
	}
	return raw, true
}

// SaveInitFlag records the auto-configuration timestamp (RFC3339)
func (s *Store) SaveInitFlag(ctx context.Context, ts string) error {
	return s.db.SetSetting(ctx, KeyAutoConfigFlag, ts)
}

// ClearInitFlag removes the auto-configuration flag
func (s *Store) ClearInitFlag(ctx context.Context) error {
	return s.db.DeleteSetting(ctx, KeyAutoConfigFlag)
}

// LastCheck returns the persisted last-check record, or nil if none
func (s *Store) LastCheck(ctx context.Context) *models.CheckRecord {
	var v models.CheckRecord
	if !s.read(ctx, KeyLastCheck, &v) {
		return nil
	}
	return &v
}

// SaveLastCheck persists the last-check record
func (s *Store) SaveLastCheck(ctx context.Context, v models.CheckRecord) error {
	return s.write(ctx, KeyLastCheck, v)
}
