package domain

import "time"

type VehicleType string

const (
	VehicleCar                VehicleType = "Car"
	VehicleBike               VehicleType = "Bike"
	VehicleEV                 VehicleType = "EV"
	VehicleHandicap           VehicleType = "Handicap"
	VehicleHandicapAccessible VehicleType = "Handicap Accessible"
)

type Vehicle struct {
	ID          int         `json:"id"`
	NumberPlate string      `json:"number_plate"`
	VehicleType VehicleType `json:"vehicle_type"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// CompatibleSlotTypes trả về các loại chỗ đỗ chấp nhận được cho một loại xe.
// Loại xe không nhận dạng được rơi về nhóm mặc định {Regular, Compact} —
// đây là hành vi nới lỏng có chủ đích, không phải bước kiểm tra dữ liệu.
func CompatibleSlotTypes(vehicleType VehicleType) []SlotType {
	switch vehicleType {
	case VehicleHandicapAccessible:
		return []SlotType{SlotHandicap, SlotHandicapAccessible}
	case VehicleEV:
		return []SlotType{SlotEV}
	case VehicleBike:
		return []SlotType{SlotBike}
	default:
		return []SlotType{SlotRegular, SlotCompact}
	}
}
