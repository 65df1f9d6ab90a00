package main

import (
	"clubhouse/config"
	"clubhouse/handlers"
	"clubhouse/logger"
	"clubhouse/middleware"
	"clubhouse/models"
	"clubhouse/routes"
	"clubhouse/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.Init(cfg.LogLevel, cfg.IsDevelopment())

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.User{},
		&models.Member{},
		&models.Event{},
		&models.EventDay{},
		&models.Registration{},
		&models.Score{},
		&models.Grouping{},
		&models.PersonalGame{},
		&models.PersonalGamePlayer{},
		&models.FinancialRecord{},
	)
	if err != nil {
		log.WithError(err).Fatal("Failed to migrate database")
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)

	// Initialize services
	authService := services.NewAuthService(db, cfg.JWTSecret)
	memberService := services.NewMemberService(db)
	eventService := services.NewEventService(db, redisClient)
	scoreService := services.NewScoreService(db, redisClient, eventService)
	gameService := services.NewGameService(db)
	financeService := services.NewFinanceService(db)
	paymentService := services.NewPaymentService(cfg.PayPalBusiness, cfg.ZelleRecipient)

	// Initialize WebSocket hub
	hub := services.NewHub()
	go hub.Run()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	memberHandler := handlers.NewMemberHandler(memberService)
	eventHandler := handlers.NewEventHandler(eventService)
	scoreHandler := handlers.NewScoreHandler(scoreService, hub)
	gameHandler := handlers.NewGameHandler(gameService)
	financeHandler := handlers.NewFinanceHandler(financeService, paymentService)

	// Setup Gin router
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(middleware.CORS())

	routes.SetupRoutes(router, authHandler, memberHandler, eventHandler,
		scoreHandler, gameHandler, financeHandler, hub, memberService, cfg.JWTSecret)

	log.WithField("port", cfg.Port).Info("Server starting")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("Failed to start server")
	}
}
