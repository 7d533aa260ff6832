package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/kyildiz/user-admin-api/internal/config"
	"github.com/kyildiz/user-admin-api/internal/constants"
	"github.com/kyildiz/user-admin-api/internal/database"
	"github.com/kyildiz/user-admin-api/internal/handlers"
	"github.com/kyildiz/user-admin-api/internal/logger"
	"github.com/kyildiz/user-admin-api/internal/middleware"
	"github.com/kyildiz/user-admin-api/internal/repository"
	"github.com/kyildiz/user-admin-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	zapLogger := logger.New(cfg.LogLevel)
	defer zapLogger.Sync()

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations and seed the fixed roles + bootstrap admin
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.Seed(database.GetDB()); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(zapLogger))

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,
		"tcp",
		redisAddr,
		"",
		"",
		[]byte(cfg.SessionSecret),
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, roleRepo)
	userService := services.NewUserService(userRepo, roleRepo)
	roleService := services.NewRoleService(roleRepo)
	taskService := services.NewTaskService(taskRepo, userRepo)
	dashboardService := services.NewDashboardService(userRepo, roleRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	roleHandler := handlers.NewRoleHandler(roleService)
	taskHandler := handlers.NewTaskHandler(taskService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "User Admin API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/register", authHandler.Register)
			auth.POST("/logout", authHandler.Logout)
		}

		// User routes (protected; mutations are Admin-only)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth())
		{
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
			users.GET("/managed-by/:manager_id", userHandler.GetManagedUsers)
			users.POST("", middleware.RequireAdmin(), userHandler.CreateUser)
			users.PUT("/:id", middleware.RequireAdmin(), userHandler.UpdateUser)
			users.DELETE("/:id", middleware.RequireAdmin(), userHandler.DeleteUser)
			users.POST("/:id/toggle-status", middleware.RequireAdmin(), userHandler.ToggleUserStatus)
		}

		// Role routes (protected; mutations are Admin-only)
		roles := api.Group("/roles")
		roles.Use(middleware.RequireAuth())
		{
			roles.GET("", roleHandler.ListRoles)
			roles.GET("/:id", roleHandler.GetRole)
			roles.POST("", middleware.RequireAdmin(), roleHandler.CreateRole)
			roles.PUT("/:id", middleware.RequireAdmin(), roleHandler.UpdateRole)
			roles.DELETE("/:id", middleware.RequireAdmin(), roleHandler.DeleteRole)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/user/:user_id", taskHandler.GetUserTasks)
			tasks.GET("/manager/:manager_id", taskHandler.GetManagerTasks)
			tasks.POST("/:id/complete", taskHandler.CompleteTask)
		}

		// Dashboard routes (protected)
		dashboard := api.Group("/dashboard")
		dashboard.Use(middleware.RequireAuth())
		{
			dashboard.GET("/stats", dashboardHandler.GetStats)
			dashboard.GET("/recent-users", dashboardHandler.GetRecentUsers)
		}
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
