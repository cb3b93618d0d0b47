package models

// ChannelSource indicates where an effective channel configuration came from.
type ChannelSource string

const (
	SourceUser   ChannelSource = "user"   // valid user-entered settings
	SourceSystem ChannelSource = "system" // system-wide default fallback
	SourceNone   ChannelSource = "none"   // channel unusable
)

// EmailSettings holds the EmailJS-style credentials for the email channel.
type EmailSettings struct {
	Enabled    bool   `json:"enabled"`
	ServiceID  string `json:"serviceId"`
	TemplateID string `json:"templateId"`
	PublicKey  string `json:"publicKey"`
	FromEmail  string `json:"fromEmail"`
	FromName   string `json:"fromName"`
}

// IsConfigured reports whether the settings are usable: enabled and every
// required identifying field non-empty.
func (s EmailSettings) IsConfigured() bool {
	return s.Enabled && s.ServiceID != "" && s.TemplateID != "" && s.PublicKey != "" && s.FromEmail != ""
}

// WhatsAppSettings holds the device-gateway credentials for the WhatsApp channel.
type WhatsAppSettings struct {
	Enabled bool   `json:"enabled"`
	APIKey  string `json:"apiKey"`
	Sender  string `json:"sender"` // sender phone number registered on the gateway
}

// IsConfigured reports whether the settings are usable.
func (s WhatsAppSettings) IsConfigured() bool {
	return s.Enabled && s.APIKey != "" && s.Sender != ""
}

// TelegramSettings holds the bot credentials for the Telegram channel.
type TelegramSettings struct {
	Enabled  bool   `json:"enabled"`
	BotToken string `json:"botToken"`
	ChatID   string `json:"chatId"` // default chat when a recipient gives none
}

// IsConfigured reports whether the settings are usable.
func (s TelegramSettings) IsConfigured() bool {
	return s.Enabled && s.BotToken != "" && s.ChatID != ""
}

// DefaultDailyCheckTime is the trigger time seeded on first run and used
// when no general settings have been stored.
const DefaultDailyCheckTime = "09:00"

// GeneralSettings holds channel-independent reminder behavior.
type GeneralSettings struct {
	DailyCheckTime string `json:"dailyCheckTime"` // local trigger time, "HH:MM"
	MaxRetries     int    `json:"maxRetries"`
	RetryDelaySec  int    `json:"retryDelaySec"`
}

// SystemConfig aggregates one default credential set per channel. Built once
// from deployment configuration; immutable within a session.
type SystemConfig struct {
	Email    EmailSettings
	WhatsApp WhatsAppSettings
	Telegram TelegramSettings
}

// ConfigStatus reports, per channel, which configuration is in effect.
type ConfigStatus struct {
	Email    ChannelSource `json:"email"`
	WhatsApp ChannelSource `json:"whatsapp"`
	Telegram ChannelSource `json:"telegram"`
}

// SystemStatus is the derived auto-configuration health summary.
type SystemStatus struct {
	AutoConfigured bool   `json:"autoConfigured"`
	EmailReady     bool   `json:"emailReady"`
	WhatsAppReady  bool   `json:"whatsappReady"`
	TelegramReady  bool   `json:"telegramReady"`
	LastConfigured string `json:"lastConfigured,omitempty"` // RFC3339, empty if never
}

// CheckRecord is the persisted outcome of the most recent daily check run.
type CheckRecord struct {
	Timestamp string `json:"timestamp"` // RFC3339
	Status    string `json:"status"`    // "success" or "error"
	Error     string `json:"error,omitempty"`
}

const (
	CheckStatusSuccess = "success"
	CheckStatusError   = "error"
)
