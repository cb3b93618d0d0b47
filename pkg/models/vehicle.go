package models

import "time"

// Vehicle represents one fleet vehicle.
type Vehicle struct {
	ID           int64     `db:"id" json:"id"`
	LicensePlate string    `db:"license_plate" json:"licensePlate"`
	Make         string    `db:"make" json:"make"`
	Model        string    `db:"model" json:"model"`
	Year         int       `db:"year" json:"year"`
	Type         string    `db:"type" json:"type"`     // "truck", "pickup", "van", ...
	Status       string    `db:"status" json:"status"` // "active" or "inactive"
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}
