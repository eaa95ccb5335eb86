package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	_ "github.com/perpuskita/library-portal/docs"
	"github.com/perpuskita/library-portal/internal/api/handler"
	"github.com/perpuskita/library-portal/internal/api/middleware"
	"github.com/perpuskita/library-portal/internal/core/domain"
	"github.com/perpuskita/library-portal/internal/core/service"
	"github.com/perpuskita/library-portal/internal/infrastructure/config"
	redisdb "github.com/perpuskita/library-portal/internal/infrastructure/db/redis"
	"github.com/perpuskita/library-portal/internal/upstream"
)

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, client *upstream.Client, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("library_portal"))

	// --- Upstream services ---
	auth := upstream.NewAuth(client)
	books := upstream.NewBooks(client)
	loans := upstream.NewLoans(client)
	rooms := upstream.NewRooms(client)
	users := upstream.NewUsers(client)
	anns := upstream.NewAnnouncements(client)
	payments := upstream.NewPayments(client)

	// --- Core services ---
	bookingSvc := service.NewBookingService(rooms, log)
	loanSvc := service.NewLoanService(users, books, loans, log)
	paymentSvc := service.NewPaymentService(payments, log)
	dashboardSvc := service.NewDashboardService(books, users, loans, rooms, anns, log)

	// --- Session plumbing ---
	profiles := redisdb.NewProfileCache(rdb, cfg.Session.ProfileCacheTTL)
	session := middleware.Session(cfg.Session.CookieName, profiles, auth, log)
	staff := middleware.Staff()
	loginLimiter := middleware.RateLimit(middleware.NewRateLimiter(1, 5))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(auth, profiles, cfg.Session.CookieName, log)
	bookHandler := handler.NewBookHandler(books)
	loanHandler := handler.NewLoanHandler(loans, loanSvc)
	roomHandler := handler.NewRoomHandler(rooms, bookingSvc)
	userHandler := handler.NewUserHandler(users)
	annHandler := handler.NewAnnouncementHandler(anns)
	paymentHandler := handler.NewPaymentHandler(paymentSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)

	// --- Public routes ---
	e.POST("/auth/login", authHandler.Login, loginLimiter)
	e.POST("/auth/register", authHandler.Register, loginLimiter)
	e.GET("/auth/google", authHandler.GoogleLogin)

	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(rdb, cfg.Upstream.BaseURL).Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Signed-in routes ---
	s := e.Group("", session)

	s.POST("/auth/logout", authHandler.Logout)
	s.GET("/auth/me", authHandler.Me)
	s.PUT("/auth/password", authHandler.ChangePassword)
	s.POST("/auth/password", authHandler.SetPassword)

	s.GET("/dashboard", dashboardHandler.Member)
	s.GET("/dashboard/admin", dashboardHandler.Admin, staff)

	s.GET("/books", bookHandler.List)
	s.GET("/books/categories", bookHandler.Categories)
	s.GET("/books/new", bookHandler.New)
	s.GET("/books/:id", bookHandler.Get)
	s.POST("/books", bookHandler.Create, staff)
	s.PUT("/books/:id", bookHandler.Update, staff)
	s.PUT("/books/:id/quantity", bookHandler.UpdateQuantity, staff)
	s.DELETE("/books/:id", bookHandler.Delete, staff)

	s.GET("/loans", loanHandler.List)
	s.GET("/loans/overdue", loanHandler.Overdue, staff)
	s.GET("/loans/:id", loanHandler.Get)
	s.POST("/loans", loanHandler.Issue, staff)
	s.PUT("/loans/:id/return", loanHandler.Return, staff)
	s.PUT("/loans/:id/extend", loanHandler.Extend, staff)

	s.GET("/rooms", roomHandler.List)
	s.GET("/rooms/:id/availability", roomHandler.Availability)
	s.GET("/rooms/bookings", roomHandler.Bookings)
	s.POST("/rooms/bookings", roomHandler.CreateBooking)
	s.POST("/rooms/bookings/checkout", paymentHandler.RoomCheckout)
	s.PUT("/rooms/bookings/:id/status", roomHandler.UpdateBookingStatus)
	s.DELETE("/rooms/bookings/:id", roomHandler.DeleteBooking, staff)

	s.GET("/announcements", annHandler.List)
	s.GET("/announcements/:id", annHandler.Get)
	s.POST("/announcements", annHandler.Create, staff)
	s.PUT("/announcements/:id", annHandler.Update, staff)
	s.DELETE("/announcements/:id", annHandler.Delete, staff)

	s.POST("/membership/checkout", paymentHandler.MembershipCheckout)
	s.POST("/membership/finish", paymentHandler.MembershipFinish)

	admin := middleware.RBAC(domain.RoleAdmin)
	s.GET("/users", userHandler.List, staff)
	s.GET("/users/me", userHandler.Me)
	s.GET("/users/:id", userHandler.Get, staff)
	s.PUT("/users/:id", userHandler.Update, admin)
	s.PUT("/users/:id/membership", userHandler.UpdateMembership, admin)
	s.DELETE("/users/:id/membership", userHandler.DeleteMembership, admin)
	s.DELETE("/users/:id", userHandler.Delete, admin)

	return e
}
