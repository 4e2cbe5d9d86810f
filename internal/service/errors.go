package service

import "errors"

// Lỗi nghiệp vụ trả về cho tầng handler; handler ánh xạ sang mã HTTP.
var (
	ErrInvalidPlate         = errors.New("biển số xe không đúng định dạng")
	ErrInvalidBillingType   = errors.New("hình thức tính phí không hợp lệ")
	ErrInvalidSlotStatus    = errors.New("trạng thái chỗ đỗ không hợp lệ")
	ErrVehicleAlreadyParked = errors.New("xe đang có phiên gửi hoạt động trong bãi")
	ErrNoSlotAvailable      = errors.New("không còn chỗ đỗ trống phù hợp")
	ErrSlotNotFound         = errors.New("không tìm thấy chỗ đỗ")
	ErrSlotIncompatible     = errors.New("chỗ đỗ không tương thích hoặc không còn trống")
	ErrSlotConflict         = errors.New("chỗ đỗ đang được một phiên khác sử dụng")
	ErrVehicleNotFound      = errors.New("không tìm thấy xe trong bãi")
)
