package main

import (
	"log"

	"github.com/safespot/safespot-backend/internal/api"
	"github.com/safespot/safespot-backend/internal/config"
	"github.com/safespot/safespot-backend/internal/database"
	"github.com/safespot/safespot-backend/internal/handler"
	"github.com/safespot/safespot-backend/internal/notify"
	"github.com/safespot/safespot-backend/internal/repository"
	"github.com/safespot/safespot-backend/internal/service"
	"github.com/safespot/safespot-backend/internal/storage"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化数据库
	dbConfig := database.Config{
		Path: cfg.DBPath,
	}
	if err := database.Init(dbConfig); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	db := database.GetDB()
	if err := database.NewMigrationManager(db).RunMigrations(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// 仓库层
	sampleRepo := repository.NewSampleRepository(db)
	journeyRepo := repository.NewJourneyRepository(db)
	protectorRepo := repository.NewProtectorRepository(db)
	userRepo := repository.NewUserRepository(db)

	// 通知通道
	dispatcher := notify.NewDispatcher(
		notify.NewFast2SMSClient(cfg.Fast2SMSAPIKey),
		notify.NewWhatsAppClient(cfg.WhatsAppToken, cfg.WhatsAppPhoneID),
	)

	// 图片存储
	avatarStore := storage.NewCloudinaryClient(
		cfg.CloudinaryCloudName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
	)

	// 服务层
	alertService := service.NewAlertService(protectorRepo, dispatcher)
	historyService := service.NewHistoryService(sampleRepo, journeyRepo, alertService)
	analyticsService := service.NewAnalyticsService(sampleRepo)
	journeyService := service.NewJourneyService(journeyRepo)
	protectorService := service.NewProtectorService(protectorRepo)
	userService := service.NewUserService(userRepo)
	uploadService := service.NewUploadService(avatarStore)

	// 初始化路由
	router := api.SetupRouter(cfg, api.Handlers{
		History:   handler.NewHistoryHandler(historyService),
		Analytics: handler.NewAnalyticsHandler(analyticsService),
		Journey:   handler.NewJourneyHandler(journeyService),
		Protector: handler.NewProtectorHandler(protectorService),
		User:      handler.NewUserHandler(userService),
		SOS:       handler.NewSOSHandler(alertService),
		Upload:    handler.NewUploadHandler(uploadService),
	})

	// 启动服务器
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
