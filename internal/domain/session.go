package domain

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

type SessionStatus string

const (
	SessionActive    SessionStatus = "Active"
	SessionCompleted SessionStatus = "Completed"
)

type BillingType string

const (
	BillingHourly  BillingType = "Hourly"
	BillingDayPass BillingType = "Day Pass"
)

// BillingAmount giữ hai khoản riêng biệt: Fixed thu một lần tại cổng vào
// (vé ngày), Calculated tính tại cổng ra (theo giờ). Một phiên không bao
// giờ dùng cả hai.
type BillingAmount struct {
	Fixed      float64 `json:"fixed"`
	Calculated float64 `json:"calculated"`
}

type ParkingSession struct {
	ID                 int           `json:"id"`
	SessionID          string        `json:"session_id"`
	VehicleNumberPlate string        `json:"vehicle_number_plate"`
	SlotID             int           `json:"slot_id"`
	EntryTime          time.Time     `json:"entry_time"`
	ExitTime           null.Time     `json:"exit_time"`
	Status             SessionStatus `json:"status"`
	BillingType        BillingType   `json:"billing_type"`
	BillingAmount      BillingAmount `json:"billing_amount"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// DTO cho API xe vào cổng
type VehicleEntryDTO struct {
	Plate           string `json:"plate" binding:"required"`
	VehicleCategory string `json:"vehicleCategory" binding:"required"`
	SlotRequest     string `json:"slotRequest"` // tùy chọn: yêu cầu chỗ đỗ cụ thể theo mã hiển thị
	BillingType     string `json:"billingType"` // mặc định "Hourly" nếu bỏ trống
}

// DTO cho API xe ra cổng
type VehicleExitDTO struct {
	Plate string `json:"plate" binding:"required"`
}

// DTO cho API tìm vị trí xe
type LocateVehicleDTO struct {
	Plate string `json:"plate" binding:"required"`
}

type EntryResultDTO struct {
	SlotIdentifier string      `json:"slotIdentifier"`
	Level          int         `json:"level"`
	BillingType    BillingType `json:"billingType"`
	Fee            float64     `json:"fee"` // số tiền đã thu tại cổng vào (0 với Hourly)
}

type ExitResultDTO struct {
	SlotIdentifier   string      `json:"slotIdentifier"`
	DurationMinutes  int64       `json:"durationMinutes"`
	Fee              float64     `json:"fee"`
	BillingType      BillingType `json:"billingType"`
	AlreadyCollected bool        `json:"alreadyCollected"`
}

type LocateResultDTO struct {
	Found          bool     `json:"found"`
	SlotIdentifier string   `json:"slotIdentifier,omitempty"`
	Level          *int     `json:"level,omitempty"` // con trỏ để không mất tầng trệt (0) khi serialize
	Category       SlotType `json:"category,omitempty"`
}

type RevenueSummaryDTO struct {
	TotalRevenue float64          `json:"totalRevenue"`
	Sessions     []ParkingSession `json:"sessions"`
}
