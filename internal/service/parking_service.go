package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/guregu/null.v4"

	"github.com/Jag-kum/motorq-mall-parking-website/internal/billing"
	"github.com/Jag-kum/motorq-mall-parking-website/internal/domain"
	"github.com/Jag-kum/motorq-mall-parking-website/internal/repository"
	"github.com/Jag-kum/motorq-mall-parking-website/internal/validation"
)

type ParkingService struct {
	vehicleRepo repository.VehicleRepository
	slotRepo    repository.ParkingSlotRepository
	sessionRepo repository.ParkingSessionRepository
	tariff      billing.Tariff
}

func NewParkingService(
	vehicleRepo repository.VehicleRepository,
	slotRepo repository.ParkingSlotRepository,
	sessionRepo repository.ParkingSessionRepository,
	tariff billing.Tariff,
) *ParkingService {
	return &ParkingService{
		vehicleRepo: vehicleRepo,
		slotRepo:    slotRepo,
		sessionRepo: sessionRepo,
		tariff:      tariff,
	}
}

// OpenSession xử lý xe vào cổng: kiểm tra biển số, chiếm chỗ đỗ phù hợp
// (tự động hoặc theo yêu cầu) và mở phiên gửi xe mới.
func (s *ParkingService) OpenSession(ctx context.Context, dto domain.VehicleEntryDTO) (*domain.EntryResultDTO, error) {
	plate := strings.ToUpper(strings.TrimSpace(dto.Plate))
	if !validation.IsValidNumberPlate(plate) {
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidPlate, dto.Plate)
	}

	billingType := domain.BillingHourly
	if dto.BillingType != "" {
		switch domain.BillingType(dto.BillingType) {
		case domain.BillingHourly, domain.BillingDayPass:
			billingType = domain.BillingType(dto.BillingType)
		default:
			return nil, fmt.Errorf("%w: '%s'", ErrInvalidBillingType, dto.BillingType)
		}
	}

	vehicleType := domain.VehicleType(dto.VehicleCategory)
	if _, err := s.vehicleRepo.Upsert(ctx, &domain.Vehicle{NumberPlate: plate, VehicleType: vehicleType}); err != nil {
		return nil, fmt.Errorf("lỗi ghi nhận thông tin xe: %w", err)
	}

	// Mỗi biển số chỉ được có tối đa một phiên đang hoạt động.
	existing, err := s.sessionRepo.FindActiveByPlate(ctx, plate)
	if err != nil && !errors.Is(err, repository.ErrNoActiveSession) {
		return nil, fmt.Errorf("lỗi kiểm tra phiên hoạt động: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: xe '%s'", ErrVehicleAlreadyParked, plate)
	}

	allowed := domain.CompatibleSlotTypes(vehicleType)

	var slot *domain.ParkingSlot
	if dto.SlotRequest != "" {
		slot, err = s.claimManual(ctx, dto.SlotRequest, plate, allowed)
	} else {
		slot, err = s.slotRepo.ClaimNearestAvailable(ctx, plate, allowed)
		if errors.Is(err, repository.ErrNoSlotAvailable) {
			err = fmt.Errorf("%w cho loại xe '%s'", ErrNoSlotAvailable, vehicleType)
		}
	}
	if err != nil {
		return nil, err
	}

	// Phòng dữ liệu cũ/không nhất quán: chỗ vừa chiếm không được thuộc một phiên
	// Active khác. Phát hiện xung đột thì trả chỗ lại và báo lỗi, TRƯỚC khi tạo phiên.
	conflict, err := s.sessionRepo.FindActiveBySlotID(ctx, slot.ID)
	if err != nil && !errors.Is(err, repository.ErrNoActiveSession) {
		s.rollbackClaim(ctx, slot)
		return nil, fmt.Errorf("lỗi kiểm tra phiên trên chỗ đỗ: %w", err)
	}
	if conflict != nil {
		s.rollbackClaim(ctx, slot)
		return nil, fmt.Errorf("%w: chỗ '%s'", ErrSlotConflict, slot.SlotNumber)
	}

	session := &domain.ParkingSession{
		SessionID:          uuid.New().String(),
		VehicleNumberPlate: plate,
		SlotID:             slot.ID,
		EntryTime:          time.Now().UTC(),
		Status:             domain.SessionActive,
		BillingType:        billingType,
	}
	feeCollected := 0.0
	if billingType == domain.BillingDayPass {
		// Vé ngày thu ngay tại cổng vào; phiên theo giờ chưa thu gì.
		session.BillingAmount.Fixed = s.tariff.DayPassFee
		feeCollected = s.tariff.DayPassFee
	}

	if _, err := s.sessionRepo.Create(ctx, session); err != nil {
		// Chỗ đã bị chiếm nhưng phiên không tạo được — trả chỗ lại để không kẹt slot.
		s.rollbackClaim(ctx, slot)
		return nil, fmt.Errorf("lỗi tạo phiên gửi xe: %w", err)
	}

	log.Printf("Đã mở phiên %s: xe '%s' vào chỗ %s (tầng %d), hình thức %s",
		session.SessionID, plate, slot.SlotNumber, slot.Level, billingType)
	return &domain.EntryResultDTO{
		SlotIdentifier: slot.SlotNumber,
		Level:          slot.Level,
		BillingType:    billingType,
		Fee:            feeCollected,
	}, nil
}

func (s *ParkingService) claimManual(ctx context.Context, slotNumber, plate string, allowed []domain.SlotType) (*domain.ParkingSlot, error) {
	slot, err := s.slotRepo.FindBySlotNumber(ctx, slotNumber)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: '%s'", ErrSlotNotFound, slotNumber)
		}
		return nil, fmt.Errorf("lỗi tìm chỗ đỗ '%s': %w", slotNumber, err)
	}
	if slot.Status != domain.StatusAvailable || !slotTypeAllowed(slot.SlotType, allowed) {
		return nil, fmt.Errorf("%w: chỗ '%s' (loại %s, trạng thái %s)",
			ErrSlotIncompatible, slot.SlotNumber, slot.SlotType, slot.Status)
	}

	// Giữa bước tra cứu và bước chiếm, chỗ có thể đã bị request khác lấy mất;
	// UPDATE có điều kiện trong Claim là chốt chặn cuối.
	claimed, err := s.slotRepo.Claim(ctx, slot.ID, plate)
	if err != nil {
		if errors.Is(err, repository.ErrSlotNotAvailable) {
			return nil, fmt.Errorf("%w: chỗ '%s'", ErrSlotIncompatible, slot.SlotNumber)
		}
		return nil, fmt.Errorf("lỗi chiếm chỗ đỗ '%s': %w", slotNumber, err)
	}
	return claimed, nil
}

func slotTypeAllowed(slotType domain.SlotType, allowed []domain.SlotType) bool {
	for _, t := range allowed {
		if slotType == t {
			return true
		}
	}
	return false
}

func (s *ParkingService) rollbackClaim(ctx context.Context, slot *domain.ParkingSlot) {
	if err := s.slotRepo.Release(ctx, slot.ID); err != nil {
		log.Printf("Lỗi rollback chỗ đỗ %s (ID %d) về trạng thái trống: %v", slot.SlotNumber, slot.ID, err)
	}
}

// CloseSession xử lý xe ra cổng: tính thời gian đỗ và phí (nếu theo giờ),
// đóng phiên và trả chỗ đỗ về trạng thái trống.
func (s *ParkingService) CloseSession(ctx context.Context, plate string) (*domain.ExitResultDTO, error) {
	plate = strings.ToUpper(strings.TrimSpace(plate))

	session, err := s.sessionRepo.FindActiveByPlate(ctx, plate)
	if err != nil {
		if errors.Is(err, repository.ErrNoActiveSession) {
			return s.closeWithoutSession(ctx, plate)
		}
		return nil, fmt.Errorf("lỗi tìm phiên gửi xe: %w", err)
	}

	exitTime := time.Now().UTC()
	duration := exitTime.Sub(session.EntryTime)
	durationMinutes := int64(math.Round(duration.Minutes()))

	fee := 0.0
	alreadyCollected := false
	if session.BillingType == domain.BillingHourly {
		fee = s.tariff.HourlyFee(duration)
		session.BillingAmount.Calculated = fee
	} else {
		// Vé ngày đã thu tiền tại cổng vào, không thu thêm lần nữa.
		fee = session.BillingAmount.Fixed
		alreadyCollected = true
	}

	session.ExitTime = null.TimeFrom(exitTime)
	session.Status = domain.SessionCompleted
	if _, err := s.sessionRepo.Complete(ctx, session); err != nil {
		return nil, fmt.Errorf("lỗi hoàn tất phiên gửi xe: %w", err)
	}

	if err := s.slotRepo.Release(ctx, session.SlotID); err != nil {
		// Phiên đã đóng xong; lỗi trả chỗ chỉ ghi log, không chặn phản hồi.
		log.Printf("Lỗi trả chỗ đỗ ID %d về trạng thái trống: %v", session.SlotID, err)
	}

	slotIdentifier := strconv.Itoa(session.SlotID)
	if slot, err := s.slotRepo.FindByID(ctx, session.SlotID); err == nil {
		slotIdentifier = slot.SlotNumber
	}

	log.Printf("Đã đóng phiên %s: xe '%s', %d phút, phí %.2f (%s)",
		session.SessionID, plate, durationMinutes, fee, session.BillingType)
	return &domain.ExitResultDTO{
		SlotIdentifier:   slotIdentifier,
		DurationMinutes:  durationMinutes,
		Fee:              fee,
		BillingType:      session.BillingType,
		AlreadyCollected: alreadyCollected,
	}, nil
}

// closeWithoutSession xử lý trường hợp dữ liệu được đưa thẳng vào DB mà không
// qua luồng vào cổng: không có bản ghi phiên nhưng chỗ đỗ vẫn gắn biển số.
// Chấp nhận đóng "suy biến": trả chỗ về trống, báo 0 phút 0 đồng, không bịa
// thêm bản ghi phiên.
func (s *ParkingService) closeWithoutSession(ctx context.Context, plate string) (*domain.ExitResultDTO, error) {
	slot, err := s.slotRepo.FindOccupiedByPlate(ctx, plate)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: biển số '%s'", ErrVehicleNotFound, plate)
		}
		return nil, fmt.Errorf("lỗi tìm chỗ đỗ theo biển số: %w", err)
	}
	if err := s.slotRepo.Release(ctx, slot.ID); err != nil {
		return nil, fmt.Errorf("lỗi trả chỗ đỗ: %w", err)
	}

	log.Printf("Đã giải phóng chỗ %s cho xe '%s' (không có bản ghi phiên)", slot.SlotNumber, plate)
	return &domain.ExitResultDTO{SlotIdentifier: slot.SlotNumber}, nil
}

// LocateVehicle tìm chỗ đỗ hiện tại của một biển số: ưu tiên phiên Active,
// rơi về tra cứu theo current_plate nếu phiên không tồn tại (cùng nhánh dung
// sai dữ liệu như CloseSession).
func (s *ParkingService) LocateVehicle(ctx context.Context, plate string) (*domain.LocateResultDTO, error) {
	plate = strings.ToUpper(strings.TrimSpace(plate))

	var slot *domain.ParkingSlot
	session, err := s.sessionRepo.FindActiveByPlate(ctx, plate)
	switch {
	case err == nil:
		slot, err = s.slotRepo.FindByID(ctx, session.SlotID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("lỗi tìm chỗ đỗ của phiên: %w", err)
		}
	case errors.Is(err, repository.ErrNoActiveSession):
		slot, err = s.slotRepo.FindOccupiedByPlate(ctx, plate)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("lỗi tìm chỗ đỗ theo biển số: %w", err)
		}
	default:
		return nil, fmt.Errorf("lỗi tìm phiên gửi xe: %w", err)
	}

	if slot == nil {
		return &domain.LocateResultDTO{Found: false}, nil
	}
	level := slot.Level
	return &domain.LocateResultDTO{
		Found:          true,
		SlotIdentifier: slot.SlotNumber,
		Level:          &level,
		Category:       slot.SlotType,
	}, nil
}

func (s *ParkingService) ListSlots(ctx context.Context) ([]domain.ParkingSlot, error) {
	return s.slotRepo.FindAll(ctx)
}

// UpdateSlotStatus đổi trạng thái một chỗ đỗ theo mã hiển thị (ví dụ đưa vào
// hoặc đưa ra khỏi bảo trì). Đưa vào Maintenance sẽ xóa biển số đang gắn.
func (s *ParkingService) UpdateSlotStatus(ctx context.Context, dto domain.SlotStatusUpdateDTO) error {
	status := domain.SlotStatus(dto.Status)
	validStatus := false
	for _, valid := range []domain.SlotStatus{domain.StatusAvailable, domain.StatusOccupied, domain.StatusMaintenance} {
		if status == valid {
			validStatus = true
			break
		}
	}
	if !validStatus {
		return fmt.Errorf("%w: '%s'", ErrInvalidSlotStatus, dto.Status)
	}

	slot, err := s.slotRepo.FindBySlotNumber(ctx, dto.SlotIdentifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: '%s'", ErrSlotNotFound, dto.SlotIdentifier)
		}
		return fmt.Errorf("lỗi tìm chỗ đỗ '%s': %w", dto.SlotIdentifier, err)
	}

	if err := s.slotRepo.UpdateStatus(ctx, slot.ID, status); err != nil {
		return fmt.Errorf("lỗi cập nhật trạng thái chỗ đỗ '%s': %w", dto.SlotIdentifier, err)
	}
	log.Printf("Đã cập nhật chỗ %s sang trạng thái %s", slot.SlotNumber, status)
	return nil
}

// RevenueSummary tổng hợp doanh thu trên toàn bộ phiên đã hoàn tất
// (fixed của vé ngày + calculated của phiên theo giờ). Chỉ đọc, không ghi.
func (s *ParkingService) RevenueSummary(ctx context.Context) (*domain.RevenueSummaryDTO, error) {
	sessions, err := s.sessionRepo.FindCompleted(ctx)
	if err != nil {
		return nil, fmt.Errorf("lỗi lấy danh sách phiên đã hoàn tất: %w", err)
	}

	total := 0.0
	for _, session := range sessions {
		total += session.BillingAmount.Fixed + session.BillingAmount.Calculated
	}
	if sessions == nil {
		sessions = []domain.ParkingSession{} // danh sách rỗng thay vì null trong JSON
	}
	return &domain.RevenueSummaryDTO{TotalRevenue: total, Sessions: sessions}, nil
}
