package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidNumberPlate(t *testing.T) {
	testCases := []struct {
		plate string
		valid bool
	}{
		{"KA01AB1234", true},
		{"MH12X9999", true}, // một chữ cái ở cụm giữa
		{"DL05CA0001", true},
		{"ka01ab1234", true}, // chữ thường được chuẩn hóa trước khi so khớp
		{"KA01ABC1234", false},
		{"K01AB1234", false},
		{"KA1AB1234", false},
		{"KA01AB123", false},
		{"KA01AB12345", false},
		{"KA01 AB1234", false},
		{"", false},
		{"1234567890", false},
	}

	for _, tc := range testCases {
		t.Run(tc.plate, func(t *testing.T) {
			assert.Equal(t, tc.valid, IsValidNumberPlate(tc.plate))
		})
	}
}
