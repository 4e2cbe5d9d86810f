package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jag-kum/motorq-mall-parking-website/internal/billing"
)

func TestParseSlabRates(t *testing.T) {
	slabs, err := parseSlabRates("1:50,3:100,6:150")
	require.NoError(t, err)
	assert.Equal(t, []billing.Slab{
		{MaxHours: 1, Fee: 50},
		{MaxHours: 3, Fee: 100},
		{MaxHours: 6, Fee: 150},
	}, slabs)
}

func TestParseSlabRatesSortsByHours(t *testing.T) {
	// Thứ tự khai báo lộn xộn vẫn phải ra biểu phí tăng dần theo giờ.
	slabs, err := parseSlabRates("6:150, 1:50, 3:100")
	require.NoError(t, err)
	require.Len(t, slabs, 3)
	assert.Equal(t, int64(1), slabs[0].MaxHours)
	assert.Equal(t, int64(3), slabs[1].MaxHours)
	assert.Equal(t, int64(6), slabs[2].MaxHours)
}

func TestParseSlabRatesInvalid(t *testing.T) {
	testCases := []string{
		"",
		"1-50",
		"abc:50",
		"1:xyz",
	}
	for _, raw := range testCases {
		t.Run(raw, func(t *testing.T) {
			_, err := parseSlabRates(raw)
			assert.Error(t, err)
		})
	}
}

func TestLoadTariffDefaults(t *testing.T) {
	// Không có biến môi trường nào được đặt thì nhận nguyên biểu phí mặc định.
	tariff := loadTariff()
	assert.Equal(t, billing.DefaultTariff(), tariff)
}

func TestLoadTariffFromEnv(t *testing.T) {
	t.Setenv("HOURLY_SLAB_RATES", "2:30,4:70")
	t.Setenv("MAX_DAILY_CAP_FEE", "120")
	t.Setenv("DAY_PASS_FEE", "95")

	tariff := loadTariff()
	assert.Equal(t, []billing.Slab{{MaxHours: 2, Fee: 30}, {MaxHours: 4, Fee: 70}}, tariff.Slabs)
	assert.Equal(t, 120.0, tariff.DailyCapFee)
	assert.Equal(t, 95.0, tariff.DayPassFee)
}
