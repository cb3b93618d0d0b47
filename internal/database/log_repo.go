package database

import (
	"context"
	"fmt"
	"time"

	"github.com/corp-smtk/armada-pintar-bandung-sub001/pkg/models"
)

// CreateDeliveryLog records one delivery attempt
func (db *DB) CreateDeliveryLog(ctx context.Context, l *models.DeliveryLog) error {
	query := `
		INSERT INTO delivery_logs (reminder_id, channel, recipient, status, error, sent_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	if l.SentAt.IsZero() {
		l.SentAt = time.Now()
	}
	result, err := db.ExecContext(ctx, query,
		l.ReminderID,
		l.Channel,
		l.Recipient,
		l.Status,
		l.Error,
		l.SentAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create delivery log: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	l.ID = id
	return nil
}

// ListDeliveryLogs returns the most recent delivery logs, newest first
func (db *DB) ListDeliveryLogs(ctx context.Context, limit int) ([]*models.DeliveryLog, error) {
	var logs []*models.DeliveryLog
	query := `SELECT * FROM delivery_logs ORDER BY sent_at DESC LIMIT ?`
	err := db.SelectContext(ctx, &logs, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list delivery logs: %w", err)
	}
	return logs, nil
}

// HasDeliveryToday reports whether any successful delivery was recorded for
// the reminder on the given calendar day
func (db *DB) HasDeliveryToday(ctx context.Context, reminderID int64, day time.Time) (bool, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var count int
	query := `SELECT COUNT(*) FROM delivery_logs WHERE reminder_id = ? AND status = ? AND sent_at >= ? AND sent_at < ?`
	err := db.GetContext(ctx, &count, query, reminderID, models.DeliveryStatusSent, start, end)
	if err != nil {
		return false, fmt.Errorf("failed to count deliveries: %w", err)
	}
	return count > 0, nil
}
