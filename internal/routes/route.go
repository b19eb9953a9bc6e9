package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/gigboard/internal/container"
	"github.com/joshua-takyi/gigboard/internal/handlers"
	"github.com/joshua-takyi/gigboard/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	// The sync endpoint is GET-only and must answer 405, not 404, for
	// anything else.
	r.HandleMethodNotAllowed = true

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "gigboard-api",
			})
		})

		eventRoutes := v1.Group("/events")
		{
			eventRoutes.GET("", handlers.ListEvents(container.EventService))
			eventRoutes.GET("/just-announced", handlers.JustAnnounced(container.EventService))
			eventRoutes.GET("/upcoming", handlers.UpcomingEvents(container.EventService))
			eventRoutes.GET("/featured", handlers.FeaturedEvents(container.EventService))
			eventRoutes.GET("/venue/:name", handlers.VenueEvents(container.EventService))
			eventRoutes.GET("/:id", handlers.GetEvent(container.EventService))
		}

		v1.GET("/venues", handlers.ListVenues(container.VenueService))

		reviewRoutes := v1.Group("/reviews")
		{
			reviewRoutes.GET("", handlers.ListReviews(container.ReviewService))
			reviewRoutes.POST("", handlers.CreateReview(container.ReviewService))
		}

		v1.GET("/sync", handlers.TriggerSync(container.Gate, container.Syncer))
	}

	return r
}
