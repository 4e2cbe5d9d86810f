package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Jag-kum/motorq-mall-parking-website/internal/api/handler"
	"github.com/Jag-kum/motorq-mall-parking-website/internal/service"
)

func SetupRouter(ps *service.ParkingService) *gin.Engine {
	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	parkingH := handler.NewParkingHandler(ps)
	r.POST("/entry", parkingH.VehicleEntry)
	r.POST("/exit", parkingH.VehicleExit)
	r.POST("/locate", parkingH.LocateVehicle)

	slotH := handler.NewSlotHandler(ps)
	r.GET("/slots", slotH.GetAllSlots)
	r.PATCH("/slots", slotH.UpdateSlotStatus)

	revenueH := handler.NewRevenueHandler(ps)
	r.GET("/revenue", revenueH.GetRevenueSummary)

	return r
}
