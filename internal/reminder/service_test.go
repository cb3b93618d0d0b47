package reminder

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corp-smtk/armada-pintar-bandung-sub001/internal/channel"
	"github.com/corp-smtk/armada-pintar-bandung-sub001/internal/database"
	"github.com/corp-smtk/armada-pintar-bandung-sub001/internal/render"
	"github.com/corp-smtk/armada-pintar-bandung-sub001/pkg/models"
)

type fakeSender struct {
	sent []channel.Message
	err  error
}

func (f *fakeSender) Send(ctx context.Context, msg channel.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func newTestService(t *testing.T, senders map[string]channel.Sender) (*Service, *database.DB) {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate(context.Background()))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(db, render.NewTextRenderer(), senders, logger)
	svc.now = func() time.Time { return time.Date(2025, 6, 10, 9, 0, 0, 0, time.Local) }
	return svc, db
}

func seedReminder(t *testing.T, db *database.DB, due time.Time, channels, recipients string) *models.ReminderConfig {
	t.Helper()

	cfg := &models.ReminderConfig{
		Title:      "Tax Renewal",
		Type:       "document",
		Document:   "STNK",
		Template:   "<p>Vehicle {vehicle}: {document} is due on {date} ({days} days left)</p>",
		DueDate:    due,
		DaysBefore: "[7,3,1]",
		Channels:   channels,
		Recipients: recipients,
		IsActive:   true,
	}
	require.NoError(t, db.CreateReminder(context.Background(), cfg))
	return cfg
}

func TestRunDailyCheck_DeliversDueReminder(t *testing.T) {
	ctx := context.Background()

	email := &fakeSender{}
	wa := &fakeSender{}
	svc, db := newTestService(t, map[string]channel.Sender{"email": email, "whatsapp": wa})

	v := &models.Vehicle{LicensePlate: "D 1234 ABC", Make: "Toyota", Model: "Hilux", Status: "active", Type: "pickup"}
	require.NoError(t, db.CreateVehicle(ctx, v))

	due := svc.now().AddDate(0, 0, 7)
	cfg := seedReminder(t, db, due, `["email","whatsapp"]`, `["ops@fleet.example"]`)
	cfg.VehicleID = v.ID
	require.NoError(t, db.UpdateReminder(ctx, cfg))

	require.NoError(t, svc.RunDailyCheck(ctx))

	require.Len(t, email.sent, 1)
	require.Len(t, wa.sent, 1)
	assert.Contains(t, email.sent[0].Body, "D 1234 ABC")
	assert.Contains(t, email.sent[0].Body, "STNK")
	assert.Contains(t, email.sent[0].Body, "7 days left")
	assert.Equal(t, "Tax Renewal - due in 7 day(s)", email.sent[0].Subject)

	// Chat channels receive plain text, email keeps the HTML
	assert.Contains(t, email.sent[0].Body, "<p>")
	assert.NotContains(t, wa.sent[0].Body, "<p>")

	logs, err := db.ListDeliveryLogs(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
	for _, l := range logs {
		assert.Equal(t, models.DeliveryStatusSent, l.Status)
	}
}

func TestRunDailyCheck_SkipsNotDue(t *testing.T) {
	ctx := context.Background()

	email := &fakeSender{}
	svc, db := newTestService(t, map[string]channel.Sender{"email": email})

	// 10 days out does not match any [7,3,1] threshold
	seedReminder(t, db, svc.now().AddDate(0, 0, 10), `["email"]`, `["ops@fleet.example"]`)

	require.NoError(t, svc.RunDailyCheck(ctx))
	assert.Empty(t, email.sent)
}

func TestRunDailyCheck_SkipsInactive(t *testing.T) {
	ctx := context.Background()

	email := &fakeSender{}
	svc, db := newTestService(t, map[string]channel.Sender{"email": email})

	cfg := seedReminder(t, db, svc.now().AddDate(0, 0, 7), `["email"]`, `["ops@fleet.example"]`)
	cfg.IsActive = false
	require.NoError(t, db.UpdateReminder(ctx, cfg))

	require.NoError(t, svc.RunDailyCheck(ctx))
	assert.Empty(t, email.sent)
}

func TestRunDailyCheck_DedupesSameDay(t *testing.T) {
	ctx := context.Background()

	email := &fakeSender{}
	svc, db := newTestService(t, map[string]channel.Sender{"email": email})

	seedReminder(t, db, svc.now().AddDate(0, 0, 3), `["email"]`, `["ops@fleet.example"]`)

	require.NoError(t, svc.RunDailyCheck(ctx))
	require.NoError(t, svc.RunDailyCheck(ctx))

	assert.Len(t, email.sent, 1)
}

func TestRunDailyCheck_AllDeliveriesFailed(t *testing.T) {
	ctx := context.Background()

	email := &fakeSender{err: errors.New("smtp relay down")}
	svc, db := newTestService(t, map[string]channel.Sender{"email": email})

	seedReminder(t, db, svc.now().AddDate(0, 0, 1), `["email"]`, `["ops@fleet.example"]`)

	err := svc.RunDailyCheck(ctx)
	require.Error(t, err)

	logs, lerr := db.ListDeliveryLogs(ctx, 10)
	require.NoError(t, lerr)
	require.Len(t, logs, 1)
	assert.Equal(t, models.DeliveryStatusFailed, logs[0].Status)
	assert.Equal(t, "smtp relay down", logs[0].Error)
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2025, 6, 10, 23, 59, 0, 0, time.Local)

	assert.Equal(t, 0, daysUntil(now, time.Date(2025, 6, 10, 0, 1, 0, 0, time.Local)))
	assert.Equal(t, 1, daysUntil(now, time.Date(2025, 6, 11, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, -2, daysUntil(now, time.Date(2025, 6, 8, 12, 0, 0, 0, time.Local)))
}

func TestDueToday(t *testing.T) {
	assert.True(t, dueToday("[7,3,1]", 3))
	assert.False(t, dueToday("[7,3,1]", 5))
	assert.False(t, dueToday("not json", 3))
}
