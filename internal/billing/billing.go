package billing

import (
	"math"
	"time"
)

// Slab là một bậc phí theo giờ: áp dụng cho số giờ gửi nhỏ hơn hoặc bằng MaxHours.
type Slab struct {
	MaxHours int64
	Fee      float64
}

// Tariff gom toàn bộ biểu phí của bãi xe. Giá trị thực tế được nạp từ cấu hình
// (xem config.Load) — muốn đổi biểu phí thì sửa ở đó, không sửa trong code.
type Tariff struct {
	Slabs       []Slab  // sắp xếp tăng dần theo MaxHours
	DailyCapFee float64 // vượt bậc cuối cùng thì áp phí trần theo ngày
	DayPassFee  float64 // vé ngày, thu một lần tại cổng vào
}

func DefaultTariff() Tariff {
	return Tariff{
		Slabs: []Slab{
			{MaxHours: 1, Fee: 50},
			{MaxHours: 3, Fee: 100},
			{MaxHours: 6, Fee: 150},
		},
		DailyCapFee: 200,
		DayPassFee:  150,
	}
}

// HourlyFee tính phí gửi xe theo giờ cho một khoảng thời gian đỗ.
// Thời gian được làm tròn LÊN giờ nguyên (1h01' tính thành 2 giờ — đã bắt đầu
// giờ nào là tính trọn giờ đó), sau đó áp bậc phí đầu tiên thỏa mãn.
func (t Tariff) HourlyFee(duration time.Duration) float64 {
	hours := int64(math.Ceil(duration.Hours()))
	for _, slab := range t.Slabs {
		if hours <= slab.MaxHours {
			return slab.Fee
		}
	}
	return t.DailyCapFee
}
