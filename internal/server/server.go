package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/layebamba/eventify/config"
	"github.com/layebamba/eventify/internal/handlers"
	"github.com/layebamba/eventify/internal/middleware"
)

var startTime = time.Now()

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	r := gin.Default()
	r.Use(cors.Default())

	setupRoutes(r, db)

	return r.Run(":" + cfg.Port)
}

func setupRoutes(r *gin.Engine, db *gorm.DB) {
	r.Use(middleware.DatabaseMiddleware(db))
	r.Static("/uploads", "./uploads")

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":   "Eventify server running.",
			"status":    "running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	api := r.Group("/api/v1")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"uptime":    time.Since(startTime).Seconds(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	api.GET("/test-db", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Database connection failed.",
				"error":   err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "success",
			"message":   "Database connection is healthy.",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	auth := api.Group("/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
		auth.POST("/logout", handlers.Logout)

		users := auth.Group("/users")
		users.Use(middleware.JWTAuthMiddleware())
		{
			users.GET("", handlers.ListUsers)
			users.GET("/:id", handlers.GetUser)
			users.PUT("/:id", handlers.UpdateUser)
			users.DELETE("/:id", handlers.DeleteUser)
		}
	}

	events := api.Group("/events")
	{
		events.GET("", handlers.ListEvents)
		events.GET("/:id", middleware.OptionalJWTMiddleware(), handlers.GetEvent)

		authenticated := events.Group("")
		authenticated.Use(middleware.JWTAuthMiddleware())
		{
			authenticated.GET("/organizer/my-events", handlers.ListMyEvents)
			authenticated.GET("/organizer/stats", handlers.GetOrganizerStats)
			authenticated.GET("/:id/stats", handlers.GetEventStats)

			organizer := authenticated.Group("")
			organizer.Use(middleware.RequireOrganizer())
			{
				organizer.POST("", handlers.CreateEvent)
				organizer.PUT("/:id", handlers.UpdateEvent)
				organizer.DELETE("/:id", handlers.DeleteEvent)
			}
		}
	}

	categories := api.Group("/categories")
	{
		categories.GET("", handlers.ListCategories)
		categories.GET("/:id", handlers.GetCategory)

		organizer := categories.Group("")
		organizer.Use(middleware.JWTAuthMiddleware(), middleware.RequireOrganizer())
		{
			organizer.POST("", handlers.CreateCategory)
			organizer.PUT("/:id", handlers.UpdateCategory)
			organizer.DELETE("/:id", handlers.DeleteCategory)
		}
	}

	registrations := api.Group("/registrations")
	registrations.Use(middleware.JWTAuthMiddleware())
	{
		registrations.GET("", handlers.ListRegistrations)
		registrations.POST("", handlers.CreateRegistration)
		registrations.GET("/:id", handlers.GetRegistration)
		registrations.PUT("/:id", handlers.UpdateRegistration)
		registrations.DELETE("/:id", handlers.DeleteRegistration)
		registrations.GET("/:id/qrcode", handlers.GenerateRegistrationQR)
		registrations.POST("/validate", middleware.RequireOrganizer(), handlers.ValidateRegistration)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": fmt.Sprintf("Route %s %s not found", c.Request.Method, c.Request.URL.Path),
		})
	})
}
