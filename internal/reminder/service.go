// Package reminder implements the daily check: scan active reminder configs,
// work out which are due today, and deliver them through the resolved
// channels.
package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/corp-smtk/armada-pintar-bandung-sub001/internal/channel"
	"github.com/corp-smtk/armada-pintar-bandung-sub001/internal/database"
	"github.com/corp-smtk/armada-pintar-bandung-sub001/internal/render"
	"github.com/corp-smtk/armada-pintar-bandung-sub001/pkg/models"
)

// Service runs the daily reminder check and dispatches notifications
type Service struct {
	db       *database.DB
	renderer *render.TextRenderer
	senders  map[string]channel.Sender
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a new reminder service. senders maps channel names to
// their outbound implementations.
func NewService(db *database.DB, renderer *render.TextRenderer, senders map[string]channel.Sender, logger *slog.Logger) *Service {
	return &Service{
		db:       db,
		renderer: renderer,
		senders:  senders,
		logger:   logger.With("component", "reminder"),
		now:      time.Now,
	}
}

// RunDailyCheck scans all active reminder configs and delivers the ones due
// today. One delivery log row is recorded per recipient and channel attempt.
// A config that already produced a successful delivery today is skipped.
func (s *Service) RunDailyCheck(ctx context.Context) error {
	configs, err := s.db.ListActiveReminders(ctx)
	if err != nil {
		return fmt.Errorf("failed to load reminder configs: %w", err)
	}

	now := s.now()
	var sent, failed int

	for _, cfg := range configs {
		days := daysUntil(now, cfg.DueDate)
		if !dueToday(cfg.DaysBefore, days) {
			continue
		}

		delivered, err := s.db.HasDeliveryToday(ctx, cfg.ID, now)
		if err != nil {
			return fmt.Errorf("failed to check delivery history: %w", err)
		}
		if delivered {
			s.logger.Debug("reminder already delivered today", "reminder_id", cfg.ID)
			continue
		}

		cs, cf := s.deliver(ctx, cfg, days)
		sent += cs
		failed += cf
	}

	s.logger.Info("daily check finished", "sent", sent, "failed", failed)
	if sent == 0 && failed > 0 {
		return fmt.Errorf("all %d deliveries failed", failed)
	}
	return nil
}

// deliver sends one due reminder through each of its channels and records
// the outcome per attempt
func (s *Service) deliver(ctx context.Context, cfg *models.ReminderConfig, days int) (sent, failed int) {
	subject, htmlBody, textBody := s.render(ctx, cfg, days)

	for _, ch := range parseStrings(cfg.Channels) {
		sender, ok := s.senders[ch]
		if !ok {
			s.logger.Warn("unknown channel, skipping", "reminder_id", cfg.ID, "channel", ch)
			continue
		}

		body := textBody
		if ch == "email" {
			body = htmlBody
		}

		recipients := parseStrings(cfg.Recipients)
		if len(recipients) == 0 && ch == "telegram" {
			// Telegram can fall back to the configured default chat
			recipients = []string{""}
		}

		for _, rcpt := range recipients {
			err := sender.Send(ctx, channel.Message{
				Recipient: rcpt,
				Subject:   subject,
				Body:      body,
			})

			entry := &models.DeliveryLog{
				ReminderID: cfg.ID,
				Channel:    ch,
				Recipient:  rcpt,
				Status:     models.DeliveryStatusSent,
				SentAt:     s.now(),
			}
			if err != nil {
				entry.Status = models.DeliveryStatusFailed
				entry.Error = err.Error()
				failed++
				s.logger.Error("delivery failed", "reminder_id", cfg.ID, "channel", ch, "error", err)
			} else {
				sent++
				s.logger.Info("reminder delivered", "reminder_id", cfg.ID, "channel", ch)
			}

			if logErr := s.db.CreateDeliveryLog(ctx, entry); logErr != nil {
				s.logger.Error("failed to record delivery log", "error", logErr)
			}
		}
	}
	return sent, failed
}

// render fills the config template and produces the subject, the HTML body
// for email and the plain-text body for chat channels
func (s *Service) render(ctx context.Context, cfg *models.ReminderConfig, days int) (subject, htmlBody, textBody string) {
	vehicleName := ""
	if cfg.VehicleID != 0 {
		v, err := s.db.GetVehicleByID(ctx, cfg.VehicleID)
		switch {
		case err == nil:
			vehicleName = v.LicensePlate
		case !errors.Is(err, database.ErrNotFound):
			s.logger.Error("failed to look up vehicle", "vehicle_id", cfg.VehicleID, "error", err)
		}
	}

	replacer := strings.NewReplacer(
		"{title}", cfg.Title,
		"{vehicle}", vehicleName,
		"{document}", cfg.Document,
		"{date}", cfg.DueDate.Format("02 Jan 2006"),
		"{days}", strconv.Itoa(days),
	)
	htmlBody = replacer.Replace(cfg.Template)

	textBody, err := s.renderer.Render(htmlBody)
	if err != nil {
		s.logger.Warn("failed to render plain text body, using raw template", "reminder_id", cfg.ID, "error", err)
		textBody = htmlBody
	}

	subject = fmt.Sprintf("%s - due in %d day(s)", cfg.Title, days)
	if days <= 0 {
		subject = fmt.Sprintf("%s - due today", cfg.Title)
	}
	return subject, htmlBody, textBody
}

// daysUntil returns whole calendar days from now's date to due's date
func daysUntil(now, due time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, now.Location())
	return int(dueDay.Sub(today).Hours() / 24)
}

// dueToday reports whether days matches one of the configured thresholds
func dueToday(daysBefore string, days int) bool {
	var thresholds []int
	if err := json.Unmarshal([]byte(daysBefore), &thresholds); err != nil {
		return false
	}
	for _, t := range thresholds {
		if t == days {
			return true
		}
	}
	return false
}

// parseStrings decodes a JSON string array, returning nil on malformed input
func parseStrings(raw string) []string {
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}
