package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/recyclewise/internal/container"
	"github.com/joshua-takyi/recyclewise/internal/handlers"
	"github.com/joshua-takyi/recyclewise/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{container.Config.ClientOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	// Liveness probe; the deployment platform polls this.
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Server is running")
	})

	events := r.Group("/api/events")
	{
		events.GET("", handlers.ListEvents(container.EventService))
	}

	// Mutations require a bearer credential.
	protected := events.Group("")
	protected.Use(middleware.RequireAuth(container.Verifier, container.Logger))
	{
		protected.POST("", handlers.CreateEvent(container.EventService))
		protected.PUT("/:id", handlers.UpdateEvent(container.EventService))
		protected.DELETE("/:id", handlers.DeleteEvent(container.EventService))
		protected.POST("/:id/image", handlers.UploadEventImage(container.EventService, container.Cloudinary))
	}

	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "Page does not exist")
	})

	return r
}
