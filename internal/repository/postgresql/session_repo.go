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

type pgParkingSessionRepository struct {
	db *sql.DB
}

func NewPgParkingSessionRepository(db *sql.DB) repository.ParkingSessionRepository {
	return &pgParkingSessionRepository{db: db}
}

const sessionColumns = `id, session_id, vehicle_number_plate, slot_id, entry_time, exit_time,
	                 status, billing_type, fixed_amount, calculated_amount, created_at, updated_at`

func (r *pgParkingSessionRepository) Create(ctx context.Context, session *domain.ParkingSession) (*domain.ParkingSession, error) {
	query := `INSERT INTO parking_sessions
	           (session_id, vehicle_number_plate, slot_id, entry_time, status, billing_type, fixed_amount, calculated_amount, created_at, updated_at)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	           RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		session.SessionID, session.VehicleNumberPlate, session.SlotID, session.EntryTime,
		session.Status, session.BillingType, session.BillingAmount.Fixed, session.BillingAmount.Calculated,
	).Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("ParkingSessionRepository.Create: %w", err)
	}
	session.CreatedAt = session.CreatedAt.In(time.UTC)
	session.UpdatedAt = session.UpdatedAt.In(time.UTC)
	return session, nil
}

func (r *pgParkingSessionRepository) FindActiveByPlate(ctx context.Context, plate string) (*domain.ParkingSession, error) {
	session := &domain.ParkingSession{}
	query := `SELECT ` + sessionColumns + `
	           FROM parking_sessions
	           WHERE vehicle_number_plate = $1 AND status = $2
	           ORDER BY entry_time DESC LIMIT 1`

	err := r.db.QueryRowContext(ctx, query, plate, domain.SessionActive).Scan(
		&session.ID, &session.SessionID, &session.VehicleNumberPlate, &session.SlotID,
		&session.EntryTime, &session.ExitTime, &session.Status, &session.BillingType,
		&session.BillingAmount.Fixed, &session.BillingAmount.Calculated,
		&session.CreatedAt, &session.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNoActiveSession
		}
		return nil, fmt.Errorf("ParkingSessionRepository.FindActiveByPlate: %w", err)
	}
	normalizeSessionTimes(session)
	return session, nil
}

func (r *pgParkingSessionRepository) FindActiveBySlotID(ctx context.Context, slotID int) (*domain.ParkingSession, error) {
	session := &domain.ParkingSession{}
	query := `SELECT ` + sessionColumns + `
	           FROM parking_sessions
	           WHERE slot_id = $1 AND status = $2
	           ORDER BY entry_time DESC LIMIT 1`

	err := r.db.QueryRowContext(ctx, query, slotID, domain.SessionActive).Scan(
		&session.ID, &session.SessionID, &session.VehicleNumberPlate, &session.SlotID,
		&session.EntryTime, &session.ExitTime, &session.Status, &session.BillingType,
		&session.BillingAmount.Fixed, &session.BillingAmount.Calculated,
		&session.CreatedAt, &session.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNoActiveSession
		}
		return nil, fmt.Errorf("ParkingSessionRepository.FindActiveBySlotID: %w", err)
	}
	normalizeSessionTimes(session)
	return session, nil
}

func (r *pgParkingSessionRepository) Complete(ctx context.Context, session *domain.ParkingSession) (*domain.ParkingSession, error) {
	query := `UPDATE parking_sessions
	           SET exit_time = $1, status = $2, calculated_amount = $3, updated_at = CURRENT_TIMESTAMP
	           WHERE id = $4
	           RETURNING updated_at`

	var exitTime sql.NullTime
	if session.ExitTime.Valid {
		exitTime = sql.NullTime{Time: session.ExitTime.Time, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query,
		exitTime, session.Status, session.BillingAmount.Calculated, session.ID,
	).Scan(&session.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ParkingSessionRepository.Complete: %w", err)
	}
	session.UpdatedAt = session.UpdatedAt.In(time.UTC)
	return session, nil
}

func (r *pgParkingSessionRepository) FindCompleted(ctx context.Context) ([]domain.ParkingSession, error) {
	query := `SELECT ` + sessionColumns + `
	           FROM parking_sessions
	           WHERE status = $1
	           ORDER BY exit_time DESC`
	rows, err := r.db.QueryContext(ctx, query, domain.SessionCompleted)
	if err != nil {
		return nil, fmt.Errorf("ParkingSessionRepository.FindCompleted: %w", err)
	}
	defer rows.Close()

	var sessions []domain.ParkingSession
	for rows.Next() {
		var session domain.ParkingSession
		if err := rows.Scan(
			&session.ID, &session.SessionID, &session.VehicleNumberPlate, &session.SlotID,
			&session.EntryTime, &session.ExitTime, &session.Status, &session.BillingType,
			&session.BillingAmount.Fixed, &session.BillingAmount.Calculated,
			&session.CreatedAt, &session.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("ParkingSessionRepository.FindCompleted (scanning row): %w", err)
		}
		normalizeSessionTimes(&session)
		sessions = append(sessions, session)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ParkingSessionRepository.FindCompleted (rows error): %w", err)
	}
	return sessions, nil
}

func normalizeSessionTimes(session *domain.ParkingSession) {
	session.EntryTime = session.EntryTime.In(time.UTC)
	if session.ExitTime.Valid {
		session.ExitTime.Time = session.ExitTime.Time.In(time.UTC)
	}
	session.CreatedAt = session.CreatedAt.In(time.UTC)
	session.UpdatedAt = session.UpdatedAt.In(time.UTC)
}
