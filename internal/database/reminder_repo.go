package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/corp-smtk/armada-pintar-bandung-sub001/pkg/models"
)

// CreateReminder creates a new reminder config
func (db *DB) CreateReminder(ctx context.Context, r *models.ReminderConfig) error {
	query := `
		INSERT INTO reminder_configs (title, type, vehicle_id, document, template, due_date, days_before, channels, recipients, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		r.Title,
		r.Type,
		r.VehicleID,
		r.Document,
		r.Template,
		r.DueDate,
		r.DaysBefore,
		r.Channels,
		r.Recipients,
		r.IsActive,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	r.ID = id
	r.CreatedAt = now
	r.UpdatedAt = now
	return nil
}

// GetReminderByID returns a reminder config by ID
func (db *DB) GetReminderByID(ctx context.Context, id int64) (*models.ReminderConfig, error) {
	var r models.ReminderConfig
	query := `SELECT * FROM reminder_configs WHERE id = ?`
	err := db.GetContext(ctx, &r, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reminder: %w", err)
	}
	return &r, nil
}

// ListReminders returns all reminder configs, newest first
func (db *DB) ListReminders(ctx context.Context) ([]*models.ReminderConfig, error) {
	var reminders []*models.ReminderConfig
	query := `SELECT * FROM reminder_configs ORDER BY created_at DESC`
	err := db.SelectContext(ctx, &reminders, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	return reminders, nil
}

// ListActiveReminders returns all active reminder configs
func (db *DB) ListActiveReminders(ctx context.Context) ([]*models.ReminderConfig, error) {
	var reminders []*models.ReminderConfig
	query := `SELECT * FROM reminder_configs WHERE is_active = true`
	err := db.SelectContext(ctx, &reminders, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active reminders: %w", err)
	}
	return reminders, nil
}

// UpdateReminder updates a reminder config
func (db *DB) UpdateReminder(ctx context.Context, r *models.ReminderConfig) error {
	query := `
		UPDATE reminder_configs
		SET title = ?, type = ?, vehicle_id = ?, document = ?, template = ?, due_date = ?, days_before = ?, channels = ?, recipients = ?, is_active = ?, updated_at = ?
		WHERE id = ?
	`
	r.UpdatedAt = time.Now()
	_, err := db.ExecContext(ctx, query,
		r.Title,
		r.Type,
		r.VehicleID,
		r.Document,
		r.Template,
		r.DueDate,
		r.DaysBefore,
		r.Channels,
		r.Recipients,
		r.IsActive,
		r.UpdatedAt,
		r.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update reminder: %w", err)
	}
	return nil
}

// DeleteReminder deletes a reminder config
func (db *DB) DeleteReminder(ctx context.Context, id int64) error {
	query := `DELETE FROM reminder_configs WHERE id = ?`
	_, err := db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	return nil
}
