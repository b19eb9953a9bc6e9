package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/gigboard/internal/models"
	"github.com/joshua-takyi/gigboard/internal/services"
)

func ListVenues(vs *services.VenuesService) gin.HandlerFunc {
	return func(c *gin.Context) {
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

		venues, err := vs.ListVenues(c.Request.Context(), offset, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("failed to load venues"))
			return
		}
		c.JSON(http.StatusOK, models.ListResponse(venues, len(venues), ""))
	}
}
