package routes

import (
	"staffhub/internal/adapters/http/handlers"
	"staffhub/internal/adapters/http/middleware"
	"staffhub/internal/adapters/persistence/repositories"
	"staffhub/internal/config"
	"staffhub/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	companyRepo := repositories.NewCompanyRepository(db)
	attendanceRepo := repositories.NewAttendanceRepository(db)
	leaveRepo := repositories.NewLeaveRepository(db)
	claimRepo := repositories.NewTravelClaimRepository(db)
	salaryRepo := repositories.NewSalaryRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	activityRepo := repositories.NewActivityLogRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, sessionRepo, companyRepo, cfg)
	employeeService := services.NewEmployeeService(userRepo, sessionRepo, activityRepo)
	attendanceService := services.NewAttendanceService(attendanceRepo, userRepo, companyRepo, activityRepo)
	leaveService := services.NewLeaveService(leaveRepo, notificationRepo, activityRepo)
	claimService := services.NewTravelClaimService(claimRepo, notificationRepo, activityRepo)
	salaryService := services.NewSalaryService(salaryRepo, userRepo, activityRepo)
	notificationService := services.NewNotificationService(notificationRepo)
	activityService := services.NewActivityService(activityRepo)
	companyService := services.NewCompanyService(companyRepo, activityRepo)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService, employeeService)
	leaveHandler := handlers.NewLeaveHandler(leaveService)
	claimHandler := handlers.NewTravelClaimHandler(claimService)
	salaryHandler := handlers.NewSalaryHandler(salaryService, employeeService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	activityHandler := handlers.NewActivityHandler(activityService)
	companyHandler := handlers.NewCompanyHandler(companyService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	requireAuth := middleware.AuthMiddleware(authService)

	// Auth routes (public, rate limited)
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	authRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Get("/me", requireAuth, authHandler.Me)
	authRoutes.Post("/logout-all", requireAuth, authHandler.LogoutAll)

	// Employee management routes (admin/hr)
	employeeRoutes := apiV1.Group("/employees")
	employeeRoutes.Use(requireAuth)
	employeeRoutes.Use(middleware.AdminOrHR())
	employeeRoutes.Post("/", employeeHandler.Create)
	employeeRoutes.Get("/", employeeHandler.List)
	employeeRoutes.Get("/:id", employeeHandler.Get)
	employeeRoutes.Put("/:id", employeeHandler.Update)
	employeeRoutes.Put("/:id/geofence", employeeHandler.UpdateGeofence)
	employeeRoutes.Delete("/:id", middleware.AdminOnly(), employeeHandler.Delete)

	// Profile routes (authenticated users)
	profileRoutes := apiV1.Group("/profile")
	profileRoutes.Use(requireAuth)
	profileRoutes.Get("/", employeeHandler.GetProfile)
	profileRoutes.Put("/", employeeHandler.UpdateProfile)
	profileRoutes.Put("/password", middleware.StrictRateLimiter(), employeeHandler.ChangePassword)

	// Attendance routes
	attendanceRoutes := apiV1.Group("/attendance")
	attendanceRoutes.Use(requireAuth)
	attendanceRoutes.Post("/checkin", attendanceHandler.CheckIn)
	attendanceRoutes.Post("/checkout", attendanceHandler.CheckOut)
	attendanceRoutes.Get("/my", attendanceHandler.MyAttendance)
	attendanceRoutes.Get("/today", middleware.AdminOrHR(), attendanceHandler.Today)
	attendanceRoutes.Get("/employee/:id", middleware.AdminOrHR(), attendanceHandler.EmployeeAttendance)

	// Leave routes
	leaveRoutes := apiV1.Group("/leaves")
	leaveRoutes.Use(requireAuth)
	leaveRoutes.Post("/", leaveHandler.Apply)
	leaveRoutes.Get("/", middleware.ManagerOrAbove(), leaveHandler.CompanyLeaves)
	leaveRoutes.Get("/my", leaveHandler.MyLeaves)
	leaveRoutes.Get("/balance", leaveHandler.Balance)
	leaveRoutes.Post("/:id/cancel", leaveHandler.Cancel)
	leaveRoutes.Post("/:id/decide", middleware.ManagerOrAbove(), leaveHandler.Decide)

	// Travel claim routes
	claimRoutes := apiV1.Group("/claims")
	claimRoutes.Use(requireAuth)
	claimRoutes.Post("/", claimHandler.Submit)
	claimRoutes.Get("/", middleware.AdminOrHR(), claimHandler.CompanyClaims)
	claimRoutes.Get("/my", claimHandler.MyClaims)
	claimRoutes.Post("/:id/decide", middleware.AdminOrHR(), claimHandler.Decide)
	claimRoutes.Post("/:id/reimburse", middleware.AdminOrHR(), claimHandler.Reimburse)

	// Salary routes
	salaryRoutes := apiV1.Group("/salaries")
	salaryRoutes.Use(requireAuth)
	salaryRoutes.Put("/", middleware.AdminOrHR(), salaryHandler.Upsert)
	salaryRoutes.Get("/", middleware.AdminOrHR(), salaryHandler.CompanyMonth)
	salaryRoutes.Get("/my", salaryHandler.MySalaries)
	salaryRoutes.Get("/employee/:id", middleware.AdminOrHR(), salaryHandler.EmployeeSalaries)

	// Notification routes (authenticated users)
	notificationRoutes := apiV1.Group("/notifications")
	notificationRoutes.Use(requireAuth)
	notificationRoutes.Get("/", notificationHandler.List)
	notificationRoutes.Get("/unread-count", notificationHandler.UnreadCount)
	notificationRoutes.Post("/read-all", notificationHandler.MarkAllRead)
	notificationRoutes.Post("/:id/read", notificationHandler.MarkRead)

	// Activity log routes
	activityRoutes := apiV1.Group("/activity")
	activityRoutes.Use(requireAuth)
	activityRoutes.Get("/", middleware.AdminOrHR(), activityHandler.CompanyActivity)
	activityRoutes.Get("/my", activityHandler.MyActivity)

	// Company settings routes
	companyRoutes := apiV1.Group("/company")
	companyRoutes.Use(requireAuth)
	companyRoutes.Get("/", companyHandler.Get)
	companyRoutes.Put("/", middleware.AdminOnly(), companyHandler.Update)

	// Dashboard routes
	dashboardRoutes := apiV1.Group("/dashboard")
	dashboardRoutes.Use(requireAuth)
	dashboardRoutes.Get("/me", dashboardHandler.Me)
	dashboardRoutes.Get("/company", middleware.AdminOrHR(), dashboardHandler.Company)
}
