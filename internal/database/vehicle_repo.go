package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/corp-smtk/armada-pintar-bandung-sub001/pkg/models"
)

// CreateVehicle creates a new vehicle record
func (db *DB) CreateVehicle(ctx context.Context, v *models.Vehicle) error {
	query := `
		INSERT INTO vehicles (license_plate, make, model, year, type, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		v.LicensePlate,
		v.Make,
		v.Model,
		v.Year,
		v.Type,
		v.Status,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	v.ID = id
	v.CreatedAt = now
	v.UpdatedAt = now
	return nil
}

// GetVehicleByID returns a vehicle by ID
func (db *DB) GetVehicleByID(ctx context.Context, id int64) (*models.Vehicle, error) {
	var v models.Vehicle
	query := `SELECT * FROM vehicles WHERE id = ?`
	err := db.GetContext(ctx, &v, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	return &v, nil
}

// ListVehicles returns all vehicles ordered by license plate
func (db *DB) ListVehicles(ctx context.Context) ([]*models.Vehicle, error) {
	var vehicles []*models.Vehicle
	query := `SELECT * FROM vehicles ORDER BY license_plate`
	err := db.SelectContext(ctx, &vehicles, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	return vehicles, nil
}

// UpdateVehicle updates a vehicle record
func (db *DB) UpdateVehicle(ctx context.Context, v *models.Vehicle) error {
	query := `
		UPDATE vehicles
		SET license_plate = ?, make = ?, model = ?, year = ?, type = ?, status = ?, updated_at = ?
		WHERE id = ?
	`
	v.UpdatedAt = time.Now()
	_, err := db.ExecContext(ctx, query,
		v.LicensePlate,
		v.Make,
		v.Model,
		v.Year,
		v.Type,
		v.Status,
		v.UpdatedAt,
		v.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update vehicle: %w", err)
	}
	return nil
}

// DeleteVehicle deletes a vehicle record
func (db *DB) DeleteVehicle(ctx context.Context, id int64) error {
	query := `DELETE FROM vehicles WHERE id = ?`
	_, err := db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	return nil
}
