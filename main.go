package main

import (
	"log"
	"os"

	"spbu-service/internal/database"
	"spbu-service/internal/handlers"
	"spbu-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found in current directory, trying parent")
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found, using system environment variables")
		}
	}

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	// Initialize Database
	database.Connect()
	database.Migrate()
	db := database.DB

	jwtSecret := []byte(os.Getenv("JWT_SECRET"))
	if len(jwtSecret) == 0 {
		log.Fatal("JWT_SECRET is not set")
	}

	// Redis/Asynq Client for the audit queue
	redisAddr := os.Getenv("REDIS_URL")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer asynqClient.Close()

	// Init Services
	auditService := services.NewAuditService(asynqClient)
	authService := services.NewAuthService(db, jwtSecret)
	eligibilityService := services.NewEligibilityService(db, auditService)
	transactionService := services.NewTransactionService(db, eligibilityService, auditService)
	dashboardService := services.NewDashboardService(db)
	reportService := services.NewReportService(db, auditService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, eligibilityService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Initialize Gin
	r := gin.Default()

	// Ping endpoint
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Welcome To SPBU Pertalite service",
		})
	})

	// Public: login and the kiosk flow (anonymous recording + riwayat)
	r.POST("/login", authHandler.Login)
	r.POST("/transactions", transactionHandler.Create)
	r.GET("/transactions", transactionHandler.List)

	// Authenticated: operator console
	authGroup := r.Group("")
	authGroup.Use(handlers.AuthRequired(jwtSecret))
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/operator/transactions/check-plate", transactionHandler.CheckPlate)
	authGroup.POST("/operator/transactions", transactionHandler.CreateOperator)
	authGroup.GET("/operator/transactions/today", transactionHandler.TodayList)
	authGroup.GET("/dashboard", dashboardHandler.Get)

	// Manager only: reports and export
	managerGroup := authGroup.Group("")
	managerGroup.Use(handlers.ManagerOnly(authService, auditService))
	managerGroup.GET("/reports", reportHandler.Generate)
	managerGroup.GET("/reports/export", reportHandler.ExportCSV)

	// Start Cron Schedulers
	retentionService := services.NewRetentionService(db)
	retentionService.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("HTTP Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
