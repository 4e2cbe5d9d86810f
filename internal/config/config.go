package config

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Jag-kum/motorq-mall-parking-website/internal/billing"
)

type Config struct {
	ServerPort string
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	Tariff billing.Tariff // biểu phí gửi xe, nạp từ biến môi trường
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Printf("Cảnh báo: Không thể tải file .env: %v", err)
	}

	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     dbPort,
		DBUser:     getEnv("DB_USER", "youruser"),
		DBPassword: getEnv("DB_PASSWORD", "yourpassword"),
		DBName:     getEnv("DB_NAME", "mall_parking_db"),
		DBSslMode:  getEnv("DB_SSLMODE", "disable"),

		Tariff: loadTariff(),
	}
}

func loadTariff() billing.Tariff {
	tariff := billing.DefaultTariff()

	if raw := getEnv("HOURLY_SLAB_RATES", "1:50,3:100,6:150"); raw != "" {
		slabs, err := parseSlabRates(raw)
		if err != nil {
			log.Printf("HOURLY_SLAB_RATES không hợp lệ (%v), sử dụng biểu phí mặc định.", err)
		} else {
			tariff.Slabs = slabs
		}
	}
	if capFee, err := strconv.ParseFloat(getEnv("MAX_DAILY_CAP_FEE", "200"), 64); err == nil {
		tariff.DailyCapFee = capFee
	}
	if dayPass, err := strconv.ParseFloat(getEnv("DAY_PASS_FEE", "150"), 64); err == nil {
		tariff.DayPassFee = dayPass
	}
	return tariff
}

// parseSlabRates đọc biểu phí dạng "1:50,3:100,6:150" (số giờ tối đa : phí).
// Kết quả được sắp xếp tăng dần theo số giờ để phép tra bậc luôn đúng thứ tự.
func parseSlabRates(raw string) ([]billing.Slab, error) {
	var slabs []billing.Slab
	for _, part := range strings.Split(raw, ",") {
		fields := strings.SplitN(strings.TrimSpace(part), ":", 2)
		if len(fields) != 2 {
			return nil, fmt.Errorf("bậc phí '%s' không đúng dạng giờ:phí", part)
		}
		maxHours, err := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("số giờ '%s' không hợp lệ: %w", fields[0], err)
		}
		fee, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("mức phí '%s' không hợp lệ: %w", fields[1], err)
		}
		slabs = append(slabs, billing.Slab{MaxHours: maxHours, Fee: fee})
	}
	if len(slabs) == 0 {
		return nil, fmt.Errorf("biểu phí rỗng")
	}
	sort.Slice(slabs, func(i, j int) bool { return slabs[i].MaxHours < slabs[j].MaxHours })
	return slabs, nil
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Biến môi trường '%s' không được đặt, sử dụng giá trị mặc định: '%s'", key, fallback)
	return fallback
}
