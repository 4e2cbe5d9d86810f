package repository

import (
	"context"
	"errors"

	"github.com/Jag-kum/motorq-mall-parking-website/internal/domain"
)

var ErrNotFound = errors.New("không tìm thấy bản ghi")
var ErrDuplicateEntry = errors.New("bản ghi đã tồn tại")
var ErrNoActiveSession = errors.New("không tìm thấy phiên gửi xe đang hoạt động cho thông tin cung cấp")
var ErrNoSlotAvailable = errors.New("không còn chỗ đỗ trống phù hợp")
var ErrSlotNotAvailable = errors.New("chỗ đỗ không còn ở trạng thái trống")

type VehicleRepository interface {
	// Upsert tạo mới hoặc cập nhật loại xe theo biển số (biển số là khóa tự nhiên).
	Upsert(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error)
	FindByPlate(ctx context.Context, plate string) (*domain.Vehicle, error)
}

type ParkingSlotRepository interface {
	Create(ctx context.Context, slot *domain.ParkingSlot) (*domain.ParkingSlot, error)
	FindByID(ctx context.Context, id int) (*domain.ParkingSlot, error)
	FindBySlotNumber(ctx context.Context, slotNumber string) (*domain.ParkingSlot, error)
	FindAll(ctx context.Context) ([]domain.ParkingSlot, error)
	FindOccupiedByPlate(ctx context.Context, plate string) (*domain.ParkingSlot, error)
	// ClaimNearestAvailable chuyển MỘT chỗ trống tương thích (gần cổng nhất theo
	// distance_rank) sang Occupied và gắn biển số, trong một câu UPDATE duy nhất.
	// Hai request đồng thời không bao giờ chiếm được cùng một chỗ.
	ClaimNearestAvailable(ctx context.Context, plate string, allowedTypes []domain.SlotType) (*domain.ParkingSlot, error)
	// Claim chiếm một chỗ cụ thể; chỉ thành công nếu chỗ vẫn đang Available
	// tại thời điểm UPDATE, ngược lại trả ErrSlotNotAvailable.
	Claim(ctx context.Context, id int, plate string) (*domain.ParkingSlot, error)
	// Release trả chỗ về Available và xóa biển số, bất kể trạng thái trước đó.
	// Dùng cho cả xe ra cổng lẫn rollback khi mở phiên thất bại.
	Release(ctx context.Context, id int) error
	UpdateStatus(ctx context.Context, id int, status domain.SlotStatus) error
}

type ParkingSessionRepository interface {
	Create(ctx context.Context, session *domain.ParkingSession) (*domain.ParkingSession, error)
	FindActiveByPlate(ctx context.Context, plate string) (*domain.ParkingSession, error)
	FindActiveBySlotID(ctx context.Context, slotID int) (*domain.ParkingSession, error)
	// Complete ghi nhận lần biến đổi cuối cùng của phiên: giờ ra, trạng thái
	// Completed và phí tính theo giờ. Phiên Completed không được sửa lại nữa.
	Complete(ctx context.Context, session *domain.ParkingSession) (*domain.ParkingSession, error)
	FindCompleted(ctx context.Context) ([]domain.ParkingSession, error)
}
