package channel

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-telegram/bot"

	"github.com/corp-smtk/armada-pintar-bandung-sub001/pkg/models"
)

// TelegramSender sends reminders through a Telegram bot
type TelegramSender struct {
	creds func(ctx context.Context) models.TelegramSettings

	mu       sync.Mutex
	bot      *bot.Bot
	botToken string
}

// NewTelegramSender creates a Telegram sender. creds is called per send so
// the effective configuration is always current.
func NewTelegramSender(creds func(ctx context.Context) models.TelegramSettings) *TelegramSender {
	return &TelegramSender{creds: creds}
}

// Send delivers one message to the recipient chat, falling back to the
// configured default chat when the recipient is empty
func (s *TelegramSender) Send(ctx context.Context, msg Message) error {
	creds := s.creds(ctx)
	if !creds.IsConfigured() {
		return fmt.Errorf("telegram channel not configured")
	}

	b, err := s.client(creds.BotToken)
	if err != nil {
		return fmt.Errorf("failed to create telegram client: %w", err)
	}

	chatID := msg.Recipient
	if chatID == "" {
		chatID = creds.ChatID
	}

	_, err = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   msg.Body,
	})
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}

// client returns a cached bot instance, rebuilding it when the token changes
func (s *TelegramSender) client(token string) (*bot.Bot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bot != nil && s.botToken == token {
		return s.bot, nil
	}

	b, err := bot.New(token, bot.WithSkipGetMe())
	if err != nil {
		return nil, err
	}
	s.bot = b
	s.botToken = token
	return b, nil
}
