package validation

import (
	"regexp"
	"strings"
)

// Định dạng biển số hợp lệ: 2 chữ cái, 2 chữ số, 1-2 chữ cái, 4 chữ số
// (ví dụ: "TN07CV7077"). Biển số luôn được đưa về chữ hoa trước khi so khớp.
var numberPlateRegex = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z]{1,2}[0-9]{4}$`)

func IsValidNumberPlate(plate string) bool {
	return numberPlateRegex.MatchString(strings.ToUpper(plate))
}
