package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/aluworks-api/internal/config"
	domainRepo "github.com/sangkips/aluworks-api/internal/domain/repository"
	"github.com/sangkips/aluworks-api/internal/presentation/http/handler"
	"github.com/sangkips/aluworks-api/internal/presentation/http/middleware"
	"github.com/sangkips/aluworks-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Customer  *handler.CustomerHandler
	Employee  *handler.EmployeeHandler
	Site      *handler.SiteHandler
	Project   *handler.ProjectHandler
	Budget    *handler.BudgetHandler
	Dashboard *handler.DashboardHandler
	Settings  *handler.SettingsHandler
	Printer   *handler.PrinterHandler
	Contact   *handler.ContactHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// Public contact form, limited per client IP
	contactLimiter := middleware.NewClientRateLimiter(middleware.NewRateLimiterConfig(
		deps.Cfg.RateLimit.Requests,
		time.Duration(deps.Cfg.RateLimit.Duration)*time.Second,
	))
	router.POST("/api/contact", contactLimiter.Middleware(), h.Contact.Submit)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(deps.JWTManager))
	registerProtectedRoutes(v1, h, deps)

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Settings
	protected.GET("/settings/workshop", h.Settings.GetSettings)
	protected.PUT("/settings/workshop", h.Settings.UpdateSettings)

	// Dashboard
	protected.GET("/dashboard", h.Dashboard.GetStats)

	registerCustomerRoutes(protected, h)
	registerEmployeeRoutes(protected, h)
	registerSiteRoutes(protected, h)
	registerProjectRoutes(protected, h, deps)

	protected.POST("/budgets/estimate", h.Budget.Estimate)

	registerPrinterRoutes(protected, h)
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
		customers.GET("/:id/projects", h.Customer.Projects)
	}
}

func registerEmployeeRoutes(protected *gin.RouterGroup, h *Handlers) {
	employees := protected.Group("/employees")
	{
		employees.GET("", h.Employee.List)
		employees.POST("", h.Employee.Create)
		employees.GET("/:id", h.Employee.Get)
		employees.PUT("/:id", h.Employee.Update)
		employees.DELETE("/:id", h.Employee.Delete)
	}
}

func registerSiteRoutes(protected *gin.RouterGroup, h *Handlers) {
	sites := protected.Group("/sites")
	{
		sites.GET("", h.Site.List)
		sites.POST("", h.Site.Create)
		sites.GET("/:id", h.Site.Get)
		sites.PUT("/:id", h.Site.Update)
		sites.DELETE("/:id", h.Site.Delete)
	}
}

func registerProjectRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	projects := protected.Group("/projects")
	{
		projects.GET("", h.Project.List)
		// Project creation replays retried submissions
		projects.POST("", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Project.Create)
		projects.GET("/:id", h.Project.Get)
		projects.PUT("/:id", h.Project.Update)
		projects.DELETE("/:id", h.Project.Delete)
		projects.PUT("/:id/status", h.Project.UpdateStatus)
		projects.GET("/:id/invoice", h.Project.Invoice)
		projects.POST("/:id/invoice/print", h.Printer.PrintInvoice)

		budget := projects.Group("/:id/budget")
		budget.GET("", h.Budget.Get)
		budget.PUT("", h.Budget.Update)
		budget.POST("/items", h.Budget.AddItem)
		budget.PUT("/items/:item_id", h.Budget.UpdateItem)
		budget.DELETE("/items/:item_id", h.Budget.DeleteItem)
		budget.GET("/breakdown", h.Budget.Breakdown)
		budget.GET("/quote", h.Budget.Quote)
		budget.GET("/export", h.Budget.Export)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printerGroup := protected.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/test", h.Printer.TestPrint)
	}
}
