package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHourlyFee(t *testing.T) {
	tariff := DefaultTariff()

	testCases := []struct {
		name     string
		duration time.Duration
		expected float64
	}{
		{"0 phút vẫn tính bậc đầu tiên", 0, 50},
		{"30 phút", 30 * time.Minute, 50},
		{"đúng 1 giờ", 1 * time.Hour, 50},
		{"1 giờ 1 phút làm tròn lên 2 giờ", 1*time.Hour + 1*time.Minute, 100},
		{"1 giờ 0.001 giây vẫn nhảy bậc", 1*time.Hour + 1*time.Millisecond, 100},
		{"đúng 3 giờ", 3 * time.Hour, 100},
		{"3 giờ 1 phút", 3*time.Hour + 1*time.Minute, 150},
		{"đúng 6 giờ", 6 * time.Hour, 150},
		{"6 giờ 1 phút rơi vào phí trần", 6*time.Hour + 1*time.Minute, 200},
		{"24 giờ", 24 * time.Hour, 200},
		{"nhiều ngày vẫn là phí trần", 72 * time.Hour, 200},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tariff.HourlyFee(tc.duration))
		})
	}
}

func TestHourlyFeeMonotonic(t *testing.T) {
	// Phí không bao giờ giảm khi thời gian đỗ tăng.
	tariff := DefaultTariff()
	prev := 0.0
	for h := 0; h <= 10; h++ {
		fee := tariff.HourlyFee(time.Duration(h) * time.Hour)
		assert.GreaterOrEqual(t, fee, prev, "phí giảm tại mốc %d giờ", h)
		prev = fee
	}
}

func TestHourlyFeeCustomSlabs(t *testing.T) {
	tariff := Tariff{
		Slabs: []Slab{
			{MaxHours: 2, Fee: 20},
			{MaxHours: 8, Fee: 60},
		},
		DailyCapFee: 90,
	}

	assert.Equal(t, 20.0, tariff.HourlyFee(90*time.Minute))
	assert.Equal(t, 60.0, tariff.HourlyFee(5*time.Hour))
	assert.Equal(t, 90.0, tariff.HourlyFee(9*time.Hour))
}

func TestDefaultTariff(t *testing.T) {
	tariff := DefaultTariff()
	assert.Len(t, tariff.Slabs, 3)
	assert.Equal(t, 200.0, tariff.DailyCapFee)
	assert.Equal(t, 150.0, tariff.DayPassFee)
}
