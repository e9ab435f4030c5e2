package main

import (
	"log"
	"net/http"

	"github.com/avaldezm/task-tracker/internal/clients"
	"github.com/avaldezm/task-tracker/internal/config"
	"github.com/avaldezm/task-tracker/internal/constants"
	"github.com/avaldezm/task-tracker/internal/database"
	"github.com/avaldezm/task-tracker/internal/handlers"
	"github.com/avaldezm/task-tracker/internal/middleware"
	"github.com/avaldezm/task-tracker/internal/oauth"
	"github.com/avaldezm/task-tracker/internal/repository"
	"github.com/avaldezm/task-tracker/internal/services"
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env for local development; missing file is fine
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()
	r.LoadHTMLGlob("templates/*.html")

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
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
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Repositories and services
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	authService := services.NewAuthService(userRepo)
	taskService := services.NewTaskService(taskRepo)

	// OAuth providers and upstream clients
	providers := oauth.NewRegistry(cfg)
	weatherClient := clients.NewWeatherClient("")
	movieClient := clients.NewMovieClient("", cfg.TMDBAccessToken)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, providers)
	taskHandler := handlers.NewTaskHandler(taskService)
	weatherHandler := handlers.NewWeatherHandler(weatherClient)
	movieHandler := handlers.NewMovieHandler(movieClient)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Task tracker is running",
		})
	})

	// Auth routes (public)
	r.GET("/register", authHandler.ShowRegister)
	r.POST("/register", authHandler.Register)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", middleware.RequireLogin(), authHandler.Logout)
	r.GET("/login/:provider", authHandler.OAuthLogin)
	r.GET("/login/:provider/callback", authHandler.OAuthCallback)

	// Task routes (page surface, session required)
	tasks := r.Group("/tasks")
	tasks.Use(middleware.RequireLogin())
	{
		tasks.GET("/", taskHandler.Index)
		tasks.POST("/create_task", taskHandler.CreateTask)
		tasks.POST("/update_task/:id", middleware.RequireTaskOwner(taskRepo), taskHandler.UpdateTask)
		tasks.POST("/delete_task/:id", middleware.RequireTaskOwner(taskRepo), taskHandler.DeleteTask)
		tasks.GET("/view_task/:id", middleware.RequireTaskOwner(taskRepo), taskHandler.ViewTask)
	}

	// JSON surface
	r.GET("/tasks/api/tasks", middleware.RequireAuth(), taskHandler.ListTasksJSON)

	api := r.Group("/api")
	{
		api.GET("/weather/current", middleware.RequireAuth(), weatherHandler.Current)
		api.GET("/movies/search", movieHandler.Search)
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
