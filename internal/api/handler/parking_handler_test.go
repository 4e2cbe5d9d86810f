package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jag-kum/motorq-mall-parking-website/internal/billing"
	"github.com/Jag-kum/motorq-mall-parking-website/internal/service"
)

// Các test dưới đây chỉ đi qua nhánh binding và nhánh kiểm tra đầu vào của
// service (chạy trước khi chạm tới repository), nên service được khởi tạo
// với repository nil.
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	ps := service.NewParkingService(nil, nil, nil, billing.DefaultTariff())

	r := gin.New()
	parkingH := NewParkingHandler(ps)
	r.POST("/entry", parkingH.VehicleEntry)
	r.POST("/exit", parkingH.VehicleExit)
	r.POST("/locate", parkingH.LocateVehicle)

	slotH := NewSlotHandler(ps)
	r.PATCH("/slots", slotH.UpdateSlotStatus)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestVehicleEntryMissingFields(t *testing.T) {
	r := newTestRouter()

	testCases := []struct {
		name string
		body gin.H
	}{
		{"thiếu biển số", gin.H{"vehicleCategory": "Car"}},
		{"thiếu loại xe", gin.H{"plate": "KA01AB1234"}},
		{"body rỗng", gin.H{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/entry", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "error")
		})
	}
}

func TestVehicleEntryInvalidPlate(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/entry", gin.H{
		"plate":           "SAI-DINH-DANG",
		"vehicleCategory": "Car",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), service.ErrInvalidPlate.Error())
}

func TestVehicleEntryInvalidBillingType(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/entry", gin.H{
		"plate":           "KA01AB1234",
		"vehicleCategory": "Car",
		"billingType":     "Weekly",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), service.ErrInvalidBillingType.Error())
}

func TestVehicleExitMissingPlate(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/exit", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLocateVehicleMissingPlate(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/locate", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateSlotStatusMissingFields(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodPatch, "/slots", gin.H{"slotIdentifier": "G-R-001"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateSlotStatusInvalidStatus(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodPatch, "/slots", gin.H{
		"slotIdentifier": "G-R-001",
		"status":         "Broken",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), service.ErrInvalidSlotStatus.Error())
}
