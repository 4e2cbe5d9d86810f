package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Jag-kum/motorq-mall-parking-website/internal/domain"
	"github.com/Jag-kum/motorq-mall-parking-website/internal/repository"
)

type pgVehicleRepository struct {
	db *sql.DB
}

func NewPgVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &pgVehicleRepository{db: db}
}

func (r *pgVehicleRepository) Upsert(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	// Xe quay lại bãi với loại xe khác (ví dụ đổi đăng ký) thì ghi đè loại xe.
	query := `INSERT INTO vehicles (number_plate, vehicle_type, created_at, updated_at)
	           VALUES ($1, $2, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	           ON CONFLICT (number_plate)
	           DO UPDATE SET vehicle_type = EXCLUDED.vehicle_type, updated_at = CURRENT_TIMESTAMP
	           RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, vehicle.NumberPlate, vehicle.VehicleType).
		Scan(&vehicle.ID, &vehicle.CreatedAt, &vehicle.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("VehicleRepository.Upsert: %w", err)
	}
	vehicle.CreatedAt = vehicle.CreatedAt.In(time.UTC)
	vehicle.UpdatedAt = vehicle.UpdatedAt.In(time.UTC)
	return vehicle, nil
}

func (r *pgVehicleRepository) FindByPlate(ctx context.Context, plate string) (*domain.Vehicle, error) {
	vehicle := &domain.Vehicle{}
	query := `SELECT id, number_plate, vehicle_type, created_at, updated_at
	           FROM vehicles WHERE number_plate = $1`

	err := r.db.QueryRowContext(ctx, query, plate).Scan(
		&vehicle.ID, &vehicle.NumberPlate, &vehicle.VehicleType, &vehicle.CreatedAt, &vehicle.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("VehicleRepository.FindByPlate: %w", err)
	}
	vehicle.CreatedAt = vehicle.CreatedAt.In(time.UTC)
	vehicle.UpdatedAt = vehicle.UpdatedAt.In(time.UTC)
	return vehicle, nil
}
