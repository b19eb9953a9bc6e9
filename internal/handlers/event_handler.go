package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/gigboard/internal/models"
	"github.com/joshua-takyi/gigboard/internal/services"
)

// degradedMessage is attached when a read was served by the expired cache or
// the bundled sample data.
const degradedMessage = "live event data is temporarily unavailable; results may be outdated"

func ListEvents(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, source := es.GetEvents(c.Request.Context())

		message := ""
		if source.Degraded() {
			message = degradedMessage
		}
		c.JSON(http.StatusOK, models.ListResponse(events, len(events), message))
	}
}

func GetEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		event, err := es.GetEvent(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("failed to load event"))
			return
		}
		if event == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("event not found"))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(event, ""))
	}
}

func JustAnnounced(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "8"))
		events := es.JustAnnounced(c.Request.Context(), limit)
		c.JSON(http.StatusOK, models.ListResponse(events, len(events), ""))
	}
}

func UpcomingEvents(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
		events := es.Upcoming(c.Request.Context(), days)
		c.JSON(http.StatusOK, models.ListResponse(events, len(events), ""))
	}
}

func FeaturedEvents(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		events := es.Featured(c.Request.Context())
		c.JSON(http.StatusOK, models.ListResponse(events, len(events), ""))
	}
}

func VenueEvents(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")
		events := es.VenueEvents(c.Request.Context(), name)
		c.JSON(http.StatusOK, models.ListResponse(events, len(events), ""))
	}
}
