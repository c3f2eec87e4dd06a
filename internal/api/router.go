package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/agencyops/crm-system/internal/api/handler"
	"github.com/agencyops/crm-system/internal/api/middleware"
	"github.com/agencyops/crm-system/internal/core/ports"
	"github.com/agencyops/crm-system/internal/core/rbac"
	"github.com/agencyops/crm-system/internal/core/service"
	healthhandlers "github.com/agencyops/crm-system/internal/infrastructure/http/handlers"
)

// Deps carries everything the router needs: repositories behind their ports,
// the token revoker, and the optional external handles used by the readiness
// probe.
type Deps struct {
	Users    ports.UserRepository
	Clients  ports.ClientRepository
	Orders   ports.OrderRepository
	Invoices ports.InvoiceRepository
	Stats    ports.StatsRepository
	Revoker  ports.TokenRevoker

	JWTSecret string
	TokenTTL  time.Duration
	UploadDir string
	Log       zerolog.Logger

	// Nil when the memory store / memory revoker are in use.
	Mongo *mongo.Database
	Redis *redis.Client
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("crm"))

	// --- Services ---
	authService := service.NewAuthService(deps.Users, deps.Revoker, deps.JWTSecret, deps.TokenTTL, deps.Log)
	userService := service.NewUserService(deps.Users, deps.Log)
	clientService := service.NewClientService(deps.Clients, deps.Log)
	orderService := service.NewOrderService(deps.Orders, deps.Clients, deps.Log)
	invoiceService := service.NewInvoiceService(deps.Invoices, deps.Log)
	reportService := service.NewReportService(deps.Stats)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, userService)
	userHandler := handler.NewUserHandler(userService)
	clientHandler := handler.NewClientHandler(clientService)
	orderHandler := handler.NewOrderHandler(orderService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService, deps.UploadDir)
	reportHandler := handler.NewReportHandler(reportService)
	i18nHandler := handler.NewI18nHandler()

	auth := middleware.Auth(deps.JWTSecret, deps.Revoker)

	// --- Public routes ---
	e.POST("/api/auth/login", authHandler.Login)
	e.GET("/api/translations", i18nHandler.Translations)

	// --- Authenticated routes ---
	api := e.Group("/api", auth)

	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/me", authHandler.Me)

	api.GET("/clients", clientHandler.List, middleware.RequirePermission(rbac.ViewClients))
	api.GET("/clients/:id", clientHandler.Get, middleware.RequirePermission(rbac.ViewClients))
	api.POST("/clients", clientHandler.Create, middleware.RequirePermission(rbac.CreateClient))
	api.PUT("/clients/:id", clientHandler.Update, middleware.RequirePermission(rbac.EditClient))
	api.DELETE("/clients/:id", clientHandler.Delete, middleware.RequirePermission(rbac.DeleteClient))

	api.GET("/orders", orderHandler.List, middleware.RequirePermission(rbac.ViewOrders))
	api.GET("/orders/:id", orderHandler.Get, middleware.RequirePermission(rbac.ViewOrders))
	api.POST("/orders", orderHandler.Create, middleware.RequirePermission(rbac.CreateOrder))
	api.PUT("/orders/:id", orderHandler.Update, middleware.RequirePermission(rbac.EditOrder))
	api.DELETE("/orders/:id", orderHandler.Delete, middleware.RequirePermission(rbac.DeleteOrder))

	api.GET("/invoices", invoiceHandler.List, middleware.RequirePermission(rbac.ViewInvoices))
	api.GET("/invoices/:id", invoiceHandler.Get, middleware.RequirePermission(rbac.ViewInvoices))
	api.POST("/invoices", invoiceHandler.Create, middleware.RequirePermission(rbac.CreateInvoice))
	api.PUT("/invoices/:id", invoiceHandler.Update, middleware.RequirePermission(rbac.EditInvoice))
	api.POST("/invoices/:id/pdf", invoiceHandler.UploadPDF, middleware.RequirePermission(rbac.EditInvoice))
	api.DELETE("/invoices/:id", invoiceHandler.Delete, middleware.RequirePermission(rbac.DeleteInvoice))

	api.GET("/stats", reportHandler.Stats, middleware.RequirePermission(rbac.ViewDashboard))

	// User updates stay open to any authenticated caller: the service allows
	// self-service profile and password edits and rejects the rest.
	api.GET("/users", userHandler.List, middleware.RequirePermission(rbac.ManageUsers))
	api.GET("/users/roles", userHandler.Roles, middleware.RequirePermission(rbac.ViewSettings))
	api.GET("/users/:id", userHandler.Get, middleware.RequirePermission(rbac.ManageUsers))
	api.POST("/users", userHandler.Create, middleware.RequirePermission(rbac.ManageUsers))
	api.PUT("/users/:id", userHandler.Update)
	api.DELETE("/users/:id", userHandler.Delete, middleware.RequirePermission(rbac.ManageUsers))

	// --- Uploaded invoice documents ---
	e.Static("/uploads", deps.UploadDir)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	healthHandler := healthhandlers.NewHealthHandler()
	healthDepsHandler := healthhandlers.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	return e
}
