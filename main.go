package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Jag-kum/motorq-mall-parking-website/internal/api"
	"github.com/Jag-kum/motorq-mall-parking-website/internal/config"
	"github.com/Jag-kum/motorq-mall-parking-website/internal/repository/postgresql"
	"github.com/Jag-kum/motorq-mall-parking-website/internal/service"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	log.Println("Cấu hình đã được tải.")

	// 2. Setup Database Connection
	db, err := postgresql.NewDB(cfg)
	if err != nil {
		log.Fatalf("Không thể kết nối database: %v", err)
	}
	defer db.Close()
	log.Println("Đã kết nối database thành công!")

	// 3. Initialize Repositories
	vehicleRepo := postgresql.NewPgVehicleRepository(db)
	slotRepo := postgresql.NewPgParkingSlotRepository(db)
	sessionRepo := postgresql.NewPgParkingSessionRepository(db)

	// 4. Initialize Services
	parkingService := service.NewParkingService(vehicleRepo, slotRepo, sessionRepo, cfg.Tariff)

	// 5. Setup HTTP Router
	router := api.SetupRouter(parkingService)

	// 6. Start HTTP Server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server đang chạy trên port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Lỗi ListenAndServe(): %v", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Đang tắt server...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server buộc phải tắt: %v", err)
	}

	log.Println("Server đã tắt.")
}
