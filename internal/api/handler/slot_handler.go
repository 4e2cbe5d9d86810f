package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jag-kum/motorq-mall-parking-website/internal/domain"
	"github.com/Jag-kum/motorq-mall-parking-website/internal/service"
)

type SlotHandler struct {
	parkingService *service.ParkingService
}

func NewSlotHandler(ps *service.ParkingService) *SlotHandler {
	return &SlotHandler{parkingService: ps}
}

// GET /slots
func (h *SlotHandler) GetAllSlots(c *gin.Context) {
	slots, err := h.parkingService.ListSlots(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi lấy danh sách chỗ đỗ", "details": err.Error()})
		return
	}
	if slots == nil {
		slots = []domain.ParkingSlot{}
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// PATCH /slots
func (h *SlotHandler) UpdateSlotStatus(c *gin.Context) {
	var dto domain.SlotStatusUpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dữ liệu không hợp lệ: " + err.Error()})
		return
	}

	if err := h.parkingService.UpdateSlotStatus(c.Request.Context(), dto); err != nil {
		if errors.Is(err, service.ErrInvalidSlotStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, service.ErrSlotNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể cập nhật trạng thái chỗ đỗ", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
