package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config application configuration
type Config struct {
	// Server
	Port         string `env:"PORT" envDefault:"8080"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"./data/fleet.db"`

	// Gateway endpoints
	EmailAPIURL        string `env:"EMAIL_API_URL" envDefault:"https://api.emailjs.com/api/v1.0/email/send"`
	WhatsAppGatewayURL string `env:"WA_GATEWAY_URL" envDefault:"https://gateway.smarteksistem.com/api/send"`

	// Per-channel system default overrides (all optional; absent values fall
	// back to the built-in defaults in the systemconfig package)
	EmailServiceID   string `env:"SMTK_EMAIL_SERVICE_ID"`
	EmailTemplateID  string `env:"SMTK_EMAIL_TEMPLATE_ID"`
	EmailPublicKey   string `env:"SMTK_EMAIL_PUBLIC_KEY"`
	EmailFromAddress string `env:"SMTK_EMAIL_FROM_ADDRESS"`
	EmailFromName    string `env:"SMTK_EMAIL_FROM_NAME"`
	WhatsAppAPIKey   string `env:"SMTK_WA_API_KEY"`
	WhatsAppSender   string `env:"SMTK_WA_SENDER"`
	TelegramBotToken string `env:"SMTK_TG_BOT_TOKEN"`
	TelegramChatID   string `env:"SMTK_TG_CHAT_ID"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"` // "json" or "text"
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}
