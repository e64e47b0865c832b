package main

import (
	"log"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/aluworks-api/internal/application/service"
	"github.com/sangkips/aluworks-api/internal/config"
	"github.com/sangkips/aluworks-api/internal/infrastructure/database"
	"github.com/sangkips/aluworks-api/internal/infrastructure/repository"
	"github.com/sangkips/aluworks-api/internal/presentation/http/handler"
	"github.com/sangkips/aluworks-api/internal/presentation/http/routes"
	"github.com/sangkips/aluworks-api/pkg/email"
	"github.com/sangkips/aluworks-api/pkg/printer"
	"github.com/sangkips/aluworks-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Env)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db, &cfg.Workshop); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Tokens are issued by the hosted auth service; the API only verifies them
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.Expiry)

	// Initialize repositories
	customerRepo := repository.NewCustomerRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	siteRepo := repository.NewSiteRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	budgetRepo := repository.NewBudgetRepository(db)
	profileRepo := repository.NewWorkshopProfileRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	tx := repository.NewTransactor(db)

	// Initialize email sender
	var sender email.Sender = email.LogSender{}
	if cfg.Email.Enabled() {
		sender = email.NewSMTPSender(email.EmailConfig{
			SMTPHost:     cfg.Email.SMTPHost,
			SMTPPort:     cfg.Email.SMTPPort,
			SMTPUsername: cfg.Email.SMTPUsername,
			SMTPPassword: cfg.Email.SMTPPassword,
			FromName:     cfg.Email.FromName,
			FromEmail:    cfg.Email.FromEmail,
		})
	} else {
		log.Println("Warning: SMTP is not configured, contact mail will only be logged")
	}

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	settingsService := service.NewSettingsService(profileRepo, cfg.Workshop)
	siteService := service.NewSiteService(siteRepo, customerRepo, projectRepo, tx)
	customerService := service.NewCustomerService(customerRepo, siteRepo, projectRepo, tx)
	employeeService := service.NewEmployeeService(employeeRepo, projectRepo, tx)
	projectService := service.NewProjectService(projectRepo, budgetRepo, customerRepo, employeeRepo, siteRepo, siteService, tx)
	budgetService := service.NewBudgetService(projectRepo, budgetRepo, tx)
	dashboardService := service.NewDashboardService(customerRepo, employeeRepo, siteRepo, projectRepo, analyticsRepo)
	printerService := service.NewPrinterService(thermalPrinter, cfg.Printer.Width, projectRepo, settingsService)
	exportService := service.NewExportService(budgetService, settingsService)
	contactService := service.NewContactService(sender, cfg.Email.OperatorEmail, settingsService)

	// Initialize handlers
	handlers := &routes.Handlers{
		Customer:  handler.NewCustomerHandler(customerService),
		Employee:  handler.NewEmployeeHandler(employeeService),
		Site:      handler.NewSiteHandler(siteService),
		Project:   handler.NewProjectHandler(projectService, printerService),
		Budget:    handler.NewBudgetHandler(budgetService, printerService, exportService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Settings:  handler.NewSettingsHandler(settingsService),
		Printer:   handler.NewPrinterHandler(printerService),
		Contact:   handler.NewContactHandler(contactService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
