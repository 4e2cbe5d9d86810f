package domain

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

type SlotStatus string

const (
	StatusAvailable   SlotStatus = "Available"
	StatusOccupied    SlotStatus = "Occupied"
	StatusMaintenance SlotStatus = "Maintenance"
)

type SlotType string

const (
	SlotRegular            SlotType = "Regular"
	SlotCompact            SlotType = "Compact"
	SlotBike               SlotType = "Bike"
	SlotEV                 SlotType = "EV"
	SlotHandicap           SlotType = "Handicap"
	SlotHandicapAccessible SlotType = "Handicap Accessible"
)

type ParkingSlot struct {
	ID         int        `json:"id"`
	SlotNumber string     `json:"slot_number"` // mã hiển thị, ví dụ "G-H-001"
	SlotType   SlotType   `json:"slot_type"`
	Status     SlotStatus `json:"status"`
	// CurrentPlate là bản sao phi chuẩn hóa để tra cứu/hiển thị nhanh.
	// Bất biến: khác null khi và chỉ khi Status là Occupied.
	CurrentPlate null.String `json:"current_plate"`
	Level        int         `json:"level"`         // 0 = tầng trệt
	DistanceRank int         `json:"distance_rank"` // thấp hơn = gần cổng hơn
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

type SlotStatusUpdateDTO struct {
	SlotIdentifier string `json:"slotIdentifier" binding:"required"`
	Status         string `json:"status" binding:"required"`
}
