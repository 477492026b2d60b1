package router

import (
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/config"
	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/handler"
	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/infra"
	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/middleware"
	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/model"
	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/repository"
	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/service"
	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher, smtpCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	shopRepo := repository.NewShopRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	debtRepo := repository.NewDebtTransactionRepository(db)
	productTxRepo := repository.NewProductTransactionRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	ticketRepo := repository.NewSupportTicketRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	userSvc := service.NewUserService(userRepo)
	shopSvc := service.NewShopService(shopRepo)
	customerSvc := service.NewCustomerService(customerRepo)
	productSvc := service.NewProductService(productRepo)
	debtSvc := service.NewDebtTransactionService(debtRepo, productRepo, customerRepo, auditRepo, dispatcher, cfg.PDFStoragePath)
	productTxSvc := service.NewProductTransactionService(productTxRepo, debtRepo)
	auditSvc := service.NewAuditLogService(auditRepo)
	ticketSvc := service.NewSupportTicketService(ticketRepo)
	notificationSvc := service.NewNotificationService(notificationRepo, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(userSvc)
	shopsH := handler.NewShopsHandler(shopSvc)
	customersH := handler.NewCustomersHandler(customerSvc, debtSvc)
	productsH := handler.NewProductsHandler(productSvc)
	debtH := handler.NewDebtTransactionsHandler(debtSvc)
	productTxH := handler.NewProductTransactionsHandler(productTxSvc)
	auditH := handler.NewAuditLogsHandler(auditSvc)
	ticketsH := handler.NewSupportTicketsHandler(ticketSvc)
	notificationsH := handler.NewNotificationsHandler(notificationSvc)
	priceH := handler.NewPriceLookupHandler(productRepo, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, smtpCB))

	// Auth (public)
	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Price check — no auth required
	r.GET("/api/v1/price/:barcode", priceH.GetPriceByBarcode)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/api/v1", jwtMW, middleware.Audit(auditRepo))
	{
		admin := middleware.RequireRole(model.RoleAdmin)
		adminOrCashier := middleware.RequireRole(model.RoleAdmin, model.RoleCashier)

		users := v1.Group("/users")
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.GET("/search", usersH.Search)
			users.GET("/:id", usersH.GetByID)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", admin, usersH.Delete)
		}

		shops := v1.Group("/shops")
		{
			shops.POST("", shopsH.Create)
			shops.GET("", shopsH.List)
			shops.GET("/search", shopsH.Search)
			shops.GET("/:id", shopsH.GetByID)
			shops.PUT("/:id", shopsH.Update)
			shops.DELETE("/:id", admin, shopsH.Delete)
		}

		customers := v1.Group("/customers")
		{
			customers.POST("", customersH.Create)
			customers.GET("", customersH.List)
			customers.GET("/search", customersH.Search)
			customers.GET("/:id", customersH.GetByID)
			customers.GET("/:id/statement", customersH.Statement)
			customers.PUT("/:id", customersH.Update)
			customers.DELETE("/:id", admin, customersH.Delete)
		}

		products := v1.Group("/products")
		{
			products.POST("", productsH.Create)
			products.GET("", productsH.List)
			products.GET("/search", productsH.Search)
			products.GET("/:id", productsH.GetByID)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", admin, productsH.Delete)
		}

		debts := v1.Group("/debt-transactions")
		{
			debts.POST("", debtH.Create)
			debts.GET("", debtH.List)
			debts.GET("/search", debtH.Search)
			debts.GET("/:id", debtH.GetByID)
			debts.PUT("/:id", debtH.Update)
			debts.DELETE("/:id", adminOrCashier, debtH.Delete)
		}

		productTxs := v1.Group("/product-transactions")
		{
			productTxs.POST("", productTxH.Create)
			productTxs.GET("", productTxH.List)
			productTxs.GET("/search", productTxH.Search)
			productTxs.GET("/:id", productTxH.GetByID)
			productTxs.PUT("/:id", productTxH.Update)
			productTxs.DELETE("/:id", adminOrCashier, productTxH.Delete)
		}

		auditLogs := v1.Group("/audit-logs")
		{
			auditLogs.POST("", auditH.Create)
			auditLogs.GET("", auditH.List)
			auditLogs.GET("/search", auditH.Search)
			auditLogs.GET("/:id", auditH.GetByID)
			auditLogs.PUT("/:id", auditH.Update)
			auditLogs.DELETE("/:id", admin, auditH.Delete)
		}

		tickets := v1.Group("/support-tickets")
		{
			tickets.POST("", ticketsH.Create)
			tickets.GET("", ticketsH.List)
			tickets.GET("/search", ticketsH.Search)
			tickets.GET("/:id", ticketsH.GetByID)
			tickets.PUT("/:id", ticketsH.Update)
			tickets.DELETE("/:id", admin, ticketsH.Delete)
		}

		notifications := v1.Group("/notifications")
		{
			notifications.POST("", notificationsH.Create)
			notifications.GET("", notificationsH.List)
			notifications.GET("/search", notificationsH.Search)
			notifications.GET("/:id", notificationsH.GetByID)
			notifications.PUT("/:id", notificationsH.Update)
			notifications.DELETE("/:id", admin, notificationsH.Delete)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
