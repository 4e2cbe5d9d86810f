package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jag-kum/motorq-mall-parking-website/internal/domain"
	"github.com/Jag-kum/motorq-mall-parking-website/internal/service"
)

type ParkingHandler struct {
	parkingService *service.ParkingService
}

func NewParkingHandler(ps *service.ParkingService) *ParkingHandler {
	return &ParkingHandler{parkingService: ps}
}

// POST /entry
func (h *ParkingHandler) VehicleEntry(c *gin.Context) {
	var dto domain.VehicleEntryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dữ liệu không hợp lệ: " + err.Error()})
		return
	}

	result, err := h.parkingService.OpenSession(c.Request.Context(), dto)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPlate) || errors.Is(err, service.ErrInvalidBillingType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, service.ErrSlotNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, service.ErrVehicleAlreadyParked) || errors.Is(err, service.ErrSlotIncompatible) ||
			errors.Is(err, service.ErrSlotConflict) || errors.Is(err, service.ErrNoSlotAvailable) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể ghi nhận xe vào", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// POST /exit
func (h *ParkingHandler) VehicleExit(c *gin.Context) {
	var dto domain.VehicleExitDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dữ liệu không hợp lệ: " + err.Error()})
		return
	}

	result, err := h.parkingService.CloseSession(c.Request.Context(), dto.Plate)
	if err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể ghi nhận xe ra", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// POST /locate
func (h *ParkingHandler) LocateVehicle(c *gin.Context) {
	var dto domain.LocateVehicleDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dữ liệu không hợp lệ: " + err.Error()})
		return
	}

	result, err := h.parkingService.LocateVehicle(c.Request.Context(), dto.Plate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi tìm vị trí xe", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
