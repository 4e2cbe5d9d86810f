package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jag-kum/motorq-mall-parking-website/internal/service"
)

type RevenueHandler struct {
	parkingService *service.ParkingService
}

func NewRevenueHandler(ps *service.ParkingService) *RevenueHandler {
	return &RevenueHandler{parkingService: ps}
}

// GET /revenue
func (h *RevenueHandler) GetRevenueSummary(c *gin.Context) {
	summary, err := h.parkingService.RevenueSummary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi tổng hợp doanh thu", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}
