package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/Jag-kum/motorq-mall-parking-website/internal/domain"
	"github.com/Jag-kum/motorq-mall-parking-website/internal/repository"
)

type pgParkingSlotRepository struct {
	db *sql.DB
}

func NewPgParkingSlotRepository(db *sql.DB) repository.ParkingSlotRepository {
	return &pgParkingSlotRepository{db: db}
}

const slotColumns = `id, slot_number, slot_type, status, current_plate, level, distance_rank, created_at, updated_at`

func (r *pgParkingSlotRepository) Create(ctx context.Context, slot *domain.ParkingSlot) (*domain.ParkingSlot, error) {
	query := `INSERT INTO parking_slots (slot_number, slot_type, status, level, distance_rank, created_at, updated_at)
	           VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	           RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		slot.SlotNumber, slot.SlotType, slot.Status, slot.Level, slot.DistanceRank,
	).Scan(&slot.ID, &slot.CreatedAt, &slot.UpdatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code.Name() == "unique_violation" {
				return nil, fmt.Errorf("%w: chỗ đỗ '%s' đã tồn tại", repository.ErrDuplicateEntry, slot.SlotNumber)
			}
		}
		return nil, fmt.Errorf("ParkingSlotRepository.Create: %w", err)
	}
	slot.CreatedAt = slot.CreatedAt.In(time.UTC)
	slot.UpdatedAt = slot.UpdatedAt.In(time.UTC)
	return slot, nil
}

func (r *pgParkingSlotRepository) FindByID(ctx context.Context, id int) (*domain.ParkingSlot, error) {
	slot := &domain.ParkingSlot{}
	query := `SELECT ` + slotColumns + ` FROM parking_slots WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&slot.ID, &slot.SlotNumber, &slot.SlotType, &slot.Status, &slot.CurrentPlate,
		&slot.Level, &slot.DistanceRank, &slot.CreatedAt, &slot.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ParkingSlotRepository.FindByID: %w", err)
	}
	slot.CreatedAt = slot.CreatedAt.In(time.UTC)
	slot.UpdatedAt = slot.UpdatedAt.In(time.UTC)
	return slot, nil
}

func (r *pgParkingSlotRepository) FindBySlotNumber(ctx context.Context, slotNumber string) (*domain.ParkingSlot, error) {
	slot := &domain.ParkingSlot{}
	query := `SELECT ` + slotColumns + ` FROM parking_slots WHERE slot_number = $1`

	err := r.db.QueryRowContext(ctx, query, slotNumber).Scan(
		&slot.ID, &slot.SlotNumber, &slot.SlotType, &slot.Status, &slot.CurrentPlate,
		&slot.Level, &slot.DistanceRank, &slot.CreatedAt, &slot.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ParkingSlotRepository.FindBySlotNumber: %w", err)
	}
	slot.CreatedAt = slot.CreatedAt.In(time.UTC)
	slot.UpdatedAt = slot.UpdatedAt.In(time.UTC)
	return slot, nil
}

func (r *pgParkingSlotRepository) FindAll(ctx context.Context) ([]domain.ParkingSlot, error) {
	// Thứ tự hiển thị trên dashboard: theo tầng rồi theo mã chỗ.
	query := `SELECT ` + slotColumns + ` FROM parking_slots ORDER BY level ASC, slot_number ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ParkingSlotRepository.FindAll: %w", err)
	}
	defer rows.Close()

	var slots []domain.ParkingSlot
	for rows.Next() {
		var slot domain.ParkingSlot
		if err := rows.Scan(
			&slot.ID, &slot.SlotNumber, &slot.SlotType, &slot.Status, &slot.CurrentPlate,
			&slot.Level, &slot.DistanceRank, &slot.CreatedAt, &slot.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("ParkingSlotRepository.FindAll (scanning row): %w", err)
		}
		slot.CreatedAt = slot.CreatedAt.In(time.UTC)
		slot.UpdatedAt = slot.UpdatedAt.In(time.UTC)
		slots = append(slots, slot)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ParkingSlotRepository.FindAll (rows error): %w", err)
	}
	return slots, nil
}

func (r *pgParkingSlotRepository) FindOccupiedByPlate(ctx context.Context, plate string) (*domain.ParkingSlot, error) {
	slot := &domain.ParkingSlot{}
	query := `SELECT ` + slotColumns + ` FROM parking_slots WHERE current_plate = $1 AND status = $2`

	err := r.db.QueryRowContext(ctx, query, plate, domain.StatusOccupied).Scan(
		&slot.ID, &slot.SlotNumber, &slot.SlotType, &slot.Status, &slot.CurrentPlate,
		&slot.Level, &slot.DistanceRank, &slot.CreatedAt, &slot.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ParkingSlotRepository.FindOccupiedByPlate: %w", err)
	}
	slot.CreatedAt = slot.CreatedAt.In(time.UTC)
	slot.UpdatedAt = slot.UpdatedAt.In(time.UTC)
	return slot, nil
}

func (r *pgParkingSlotRepository) ClaimNearestAvailable(ctx context.Context, plate string, allowedTypes []domain.SlotType) (*domain.ParkingSlot, error) {
	// Chọn và chiếm chỗ trong MỘT câu UPDATE: subquery khóa dòng được chọn
	// (SKIP LOCKED để request song song nhảy sang chỗ kế tiếp thay vì chờ),
	// nên không có khe hở đọc-rồi-ghi giữa hai request cùng lúc.
	query := `UPDATE parking_slots
	           SET status = $1, current_plate = $2, updated_at = CURRENT_TIMESTAMP
	           WHERE id = (
	               SELECT id FROM parking_slots
	                WHERE status = $3 AND slot_type = ANY($4)
	                ORDER BY distance_rank ASC
	                LIMIT 1
	                FOR UPDATE SKIP LOCKED
	           )
	           RETURNING ` + slotColumns

	types := make([]string, len(allowedTypes))
	for i, t := range allowedTypes {
		types[i] = string(t)
	}

	slot := &domain.ParkingSlot{}
	err := r.db.QueryRowContext(ctx, query, domain.StatusOccupied, plate, domain.StatusAvailable, pq.Array(types)).Scan(
		&slot.ID, &slot.SlotNumber, &slot.SlotType, &slot.Status, &slot.CurrentPlate,
		&slot.Level, &slot.DistanceRank, &slot.CreatedAt, &slot.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNoSlotAvailable
		}
		return nil, fmt.Errorf("ParkingSlotRepository.ClaimNearestAvailable: %w", err)
	}
	slot.CreatedAt = slot.CreatedAt.In(time.UTC)
	slot.UpdatedAt = slot.UpdatedAt.In(time.UTC)
	return slot, nil
}

func (r *pgParkingSlotRepository) Claim(ctx context.Context, id int, plate string) (*domain.ParkingSlot, error) {
	// Điều kiện status = Available nằm ngay trong câu UPDATE: nếu chỗ vừa bị
	// request khác chiếm giữa lúc tra cứu và lúc chiếm, UPDATE không khớp dòng nào.
	query := `UPDATE parking_slots
	           SET status = $1, current_plate = $2, updated_at = CURRENT_TIMESTAMP
	           WHERE id = $3 AND status = $4
	           RETURNING ` + slotColumns

	slot := &domain.ParkingSlot{}
	err := r.db.QueryRowContext(ctx, query, domain.StatusOccupied, plate, id, domain.StatusAvailable).Scan(
		&slot.ID, &slot.SlotNumber, &slot.SlotType, &slot.Status, &slot.CurrentPlate,
		&slot.Level, &slot.DistanceRank, &slot.CreatedAt, &slot.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrSlotNotAvailable
		}
		return nil, fmt.Errorf("ParkingSlotRepository.Claim: %w", err)
	}
	slot.CreatedAt = slot.CreatedAt.In(time.UTC)
	slot.UpdatedAt = slot.UpdatedAt.In(time.UTC)
	return slot, nil
}

func (r *pgParkingSlotRepository) Release(ctx context.Context, id int) error {
	query := `UPDATE parking_slots
	           SET status = $1, current_plate = NULL, updated_at = CURRENT_TIMESTAMP
	           WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, domain.StatusAvailable, id)
	if err != nil {
		return fmt.Errorf("ParkingSlotRepository.Release: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ParkingSlotRepository.Release (checking rows affected): %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgParkingSlotRepository) UpdateStatus(ctx context.Context, id int, status domain.SlotStatus) error {
	query := `UPDATE parking_slots SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	if status == domain.StatusMaintenance {
		// Chỗ đưa vào bảo trì thì không còn xe nào gắn với nó nữa.
		query = `UPDATE parking_slots SET status = $1, current_plate = NULL, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	}

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("ParkingSlotRepository.UpdateStatus: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ParkingSlotRepository.UpdateStatus (checking rows affected): %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
