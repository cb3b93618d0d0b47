package database

const schema = `
CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS vehicles (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    license_plate TEXT NOT NULL UNIQUE,
    make TEXT NOT NULL,
    model TEXT NOT NULL,
    year INTEGER DEFAULT 0,
    type TEXT DEFAULT 'truck',
    status TEXT DEFAULT 'active',
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS reminder_configs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    type TEXT NOT NULL,
    vehicle_id INTEGER DEFAULT 0,
    document TEXT DEFAULT '',
    template TEXT NOT NULL,
    due_date DATETIME NOT NULL,
    days_before TEXT NOT NULL DEFAULT '[7,3,1]',
    channels TEXT NOT NULL DEFAULT '["email"]',
    recipients TEXT NOT NULL DEFAULT '[]',
    is_active BOOLEAN DEFAULT true,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS delivery_logs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    reminder_id INTEGER NOT NULL REFERENCES reminder_configs(id) ON DELETE CASCADE,
    channel TEXT NOT NULL,
    recipient TEXT NOT NULL,
    status TEXT NOT NULL,
    error TEXT DEFAULT '',
    sent_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_reminders_active ON reminder_configs(is_active);
CREATE INDEX IF NOT EXISTS idx_reminders_vehicle ON reminder_configs(vehicle_id);
CREATE INDEX IF NOT EXISTS idx_logs_reminder ON delivery_logs(reminder_id);
CREATE INDEX IF NOT EXISTS idx_logs_sent ON delivery_logs(sent_at);
`
