package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"workledger/internal/config"
	"workledger/internal/handlers"
	"workledger/internal/middleware"
	"workledger/internal/mirror"
	"workledger/internal/pdf"
	"workledger/internal/repositories"
	"workledger/internal/routes"
	"workledger/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "workledger/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	// === Repos ===
	companyRepo := repositories.NewCompanyRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	contactRepo := repositories.NewContactRepository(db)

	// === Mirror ===
	// The sheet is best-effort: a broken credentials file disables the
	// mirror instead of taking the service down.
	var mirrorClient mirror.Client
	if cfg.Sheets.Enabled {
		client, err := mirror.NewSheetsClient(context.Background(),
			cfg.Sheets.CredentialsFile, cfg.Sheets.SpreadsheetID, cfg.Sheets.SheetName)
		if err != nil {
			log.Printf("[mirror][init][err] sheets disabled: %v", err)
		} else {
			mirrorClient = client
		}
	}
	syncer := mirror.NewSyncer(mirrorClient, cfg.Sheets.QueueSize)
	defer syncer.Close()

	// === Services ===
	tickets := services.NewTicketGenerator(taskRepo.TicketIDExists)
	taskService := services.NewTaskService(taskRepo, projectRepo, syncer, tickets, services.TaskDefaults{
		Type:     cfg.Defaults.TaskType,
		Currency: cfg.Defaults.Currency,
	})
	projectService := services.NewProjectService(projectRepo, companyRepo)
	companyService := services.NewCompanyService(companyRepo)
	contactService := services.NewContactService(contactRepo, companyRepo)
	statsService := services.NewStatisticsService(companyRepo, projectRepo, taskRepo)
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	reportGenerator := pdf.NewReportGenerator()

	// === Handlers ===
	companyHandler := handlers.NewCompanyHandler(companyService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	contactHandler := handlers.NewContactHandler(contactService)
	reportHandler := handlers.NewReportHandler(taskService, statsService, reportGenerator, emailService)

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware())

	router.GET("/healthz", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(503, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// JWT (issued by the external auth service)
	router.Use(middleware.AuthMiddleware([]byte(cfg.Auth.JWTSecret)))

	routes.SetupRoutes(router, companyHandler, projectHandler, taskHandler, contactHandler, reportHandler)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("server failed: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
