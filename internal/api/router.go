package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/studiozeta/agency-api/docs"
	"github.com/studiozeta/agency-api/internal/api/handler"
	"github.com/studiozeta/agency-api/internal/api/middleware"
	"github.com/studiozeta/agency-api/internal/core/domain"
	"github.com/studiozeta/agency-api/internal/core/ports"
	"github.com/studiozeta/agency-api/internal/core/service"
	"github.com/studiozeta/agency-api/internal/core/token"
	"github.com/studiozeta/agency-api/internal/infrastructure/config"
	mongodb "github.com/studiozeta/agency-api/internal/infrastructure/db/mongo"
	redisdb "github.com/studiozeta/agency-api/internal/infrastructure/db/redis"
)

// Deps carries the externally constructed dependencies the router wires
// together. Repositories and services are built here so the route table and
// its dependency graph live in one place.
type Deps struct {
	Cfg    *config.Config
	DB     *mongo.Database
	Client *mongo.Client
	Redis  *redis.Client
	Issuer *token.Issuer
	Notify ports.Notifier
	Media  ports.MediaStore
	Log    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     d.Cfg.CORSOrigins,
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("agency"))

	secureCookies := d.Cfg.Env == "production"

	// --- Repositories ---
	clientRepo := mongodb.NewClientRepository(d.DB)
	adminRepo := mongodb.NewAdminRepository(d.DB)
	blogRepo := mongodb.NewBlogRepository(d.DB)
	catalogRepo := mongodb.NewCatalogRepository(d.DB)
	contactRepo := mongodb.NewContactRepository(d.DB)
	careerRepo := mongodb.NewCareerRepository(d.DB)
	requestRepo := mongodb.NewRequestRepository(d.DB)
	txn := mongodb.NewTxnRunner(d.Client)
	dedup := redisdb.NewDedupChecker(d.Redis)

	// --- Services ---
	authService := service.NewAuthService(clientRepo, d.Issuer, d.Notify, d.Cfg.Auth.ResetURL, d.Log)
	adminAuthService := service.NewAdminAuthService(adminRepo, d.Issuer, d.Log)
	directoryService := service.NewDirectoryService(adminRepo, clientRepo, blogRepo, requestRepo, txn, d.Notify, d.Log)
	blogService := service.NewBlogService(blogRepo, clientRepo, txn, d.Notify, d.Log)
	catalogService := service.NewCatalogService(catalogRepo, d.Notify, d.Log)
	contactService := service.NewContactService(contactRepo, dedup, d.Notify, d.Log)
	careerService := service.NewCareerService(careerRepo, d.Notify, d.Log)
	requestService := service.NewRequestService(requestRepo, clientRepo, catalogRepo, txn, d.Notify, d.Log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, d.Cfg.Auth.AccessTokenTTL, d.Cfg.Auth.RefreshTokenTTL, secureCookies)
	adminAuthHandler := handler.NewAdminAuthHandler(adminAuthService, d.Cfg.Auth.AccessTokenTTL, d.Cfg.Auth.RefreshTokenTTL, secureCookies)
	directoryHandler := handler.NewDirectoryHandler(directoryService)
	blogHandler := handler.NewBlogHandler(blogService, d.Media, d.Notify)
	catalogHandler := handler.NewCatalogHandler(catalogService, d.Media, d.Notify)
	contactHandler := handler.NewContactHandler(contactService)
	careerHandler := handler.NewCareerHandler(careerService, d.Media, d.Notify)
	requestHandler := handler.NewRequestHandler(requestService, d.Media, d.Notify)

	// --- Middleware ---
	clientAuth := middleware.ClientAuth(d.Issuer)
	optionalClientAuth := middleware.OptionalClientAuth(d.Issuer)
	adminAuth := middleware.AdminAuth(d.Issuer, adminRepo)
	intakeLimit := middleware.RateLimit(d.Redis, d.Cfg.RateLimit.Requests, d.Cfg.RateLimit.Window, d.Log)

	v1 := e.Group("/api/v1")

	// --- Client auth ---
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register, intakeLimit)
	auth.POST("/login", authHandler.Login, intakeLimit)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/forgot-password", authHandler.ForgotPassword, intakeLimit)
	auth.POST("/reset-password", authHandler.ResetPassword)
	auth.POST("/logout", authHandler.Logout, clientAuth)
	auth.GET("/me", authHandler.Me, clientAuth)
	auth.POST("/change-password", authHandler.ChangePassword, clientAuth)

	// --- Admin auth ---
	adminAuthGroup := v1.Group("/admin/auth")
	adminAuthGroup.POST("/login", adminAuthHandler.Login, intakeLimit)
	adminAuthGroup.POST("/refresh", adminAuthHandler.Refresh)
	adminAuthGroup.POST("/logout", adminAuthHandler.Logout, adminAuth)
	adminAuthGroup.GET("/me", adminAuthHandler.Me, adminAuth)
	adminAuthGroup.POST("/change-password", adminAuthHandler.ChangePassword, adminAuth)

	// --- Public content ---
	v1.GET("/blogs", blogHandler.ListPublished)
	v1.GET("/blogs/slug/:slug", blogHandler.GetPublished)
	v1.GET("/services", catalogHandler.ListServices)
	v1.GET("/services/:slug", catalogHandler.GetService)
	v1.GET("/pricing", catalogHandler.ListPlans)

	// --- Public intake ---
	v1.POST("/contact", contactHandler.Submit, intakeLimit, optionalClientAuth)
	v1.POST("/careers/apply", careerHandler.Apply, intakeLimit)

	// --- Client-owned resources ---
	blogs := v1.Group("/blogs", clientAuth)
	blogs.POST("", blogHandler.Create)
	blogs.PATCH("/:id", blogHandler.Update)
	blogs.DELETE("/:id", blogHandler.Delete)
	blogs.PATCH("/:id/status", blogHandler.ChangeStatus)

	requests := v1.Group("/requests", clientAuth)
	requests.POST("", requestHandler.Create)
	requests.GET("", requestHandler.ListOwn)
	requests.GET("/:id", requestHandler.Get)

	// --- Admin surface ---
	admin := v1.Group("/admin", adminAuth)

	admin.POST("/admins", directoryHandler.CreateAdmin)
	admin.GET("/admins", directoryHandler.ListAdmins)
	admin.PATCH("/admins/:id/permissions", directoryHandler.UpdateAdminPermissions)
	admin.PATCH("/admins/:id/active", directoryHandler.SetAdminActive)
	admin.DELETE("/admins/:id", directoryHandler.DeleteAdmin)

	admin.GET("/clients", directoryHandler.ListClients)
	admin.PATCH("/clients/:id/status", directoryHandler.UpdateClientStatus)
	admin.DELETE("/clients/:id", directoryHandler.DeleteClient)

	admin.GET("/blogs", blogHandler.AdminList)
	admin.PATCH("/blogs/:id/status", blogHandler.AdminChangeStatus)
	admin.DELETE("/blogs/:id", blogHandler.AdminDelete)

	adminServices := admin.Group("/services", middleware.RequirePermission(domain.PermManageServices))
	adminServices.POST("", catalogHandler.CreateService)
	adminServices.PATCH("/:id", catalogHandler.UpdateService)
	adminServices.DELETE("/:id", catalogHandler.DeleteService)

	adminPricing := admin.Group("/pricing", middleware.RequirePermission(domain.PermManagePricing))
	adminPricing.POST("", catalogHandler.CreatePlan)
	adminPricing.PATCH("/:id", catalogHandler.UpdatePlan)
	adminPricing.DELETE("/:id", catalogHandler.DeletePlan)

	admin.GET("/contacts", contactHandler.List)
	admin.POST("/contacts/:id/respond", contactHandler.Respond)
	admin.PATCH("/contacts/:id/status", contactHandler.UpdateStatus)

	adminCareers := admin.Group("/careers", middleware.RequirePermission(domain.PermManageCareers))
	adminCareers.GET("", careerHandler.List)
	adminCareers.PATCH("/:id/status", careerHandler.UpdateStatus)
	adminCareers.DELETE("/:id", careerHandler.Delete)

	admin.GET("/requests", requestHandler.AdminList)
	admin.PATCH("/requests/:id/review", requestHandler.Review)

	// --- Operational surface ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.DB, d.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	return e
}
