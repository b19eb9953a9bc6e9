package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/gigboard/internal/ingest"
)

// TriggerSync is the manual refresh endpoint. It consults the staleness gate
// first and only hits the provider when the stored data is old enough (or
// when ?force=true). Unlike the background sync spawned by the read path, the
// caller here waits for the result, the point being to observe the outcome.
func TriggerSync(gate *ingest.Gate, syncer *ingest.Syncer) gin.HandlerFunc {
	return func(c *gin.Context) {
		force := c.Query("force") == "true"

		if !force {
			stale, err := gate.ShouldSync(c.Request.Context(), ingest.SourceTicketmaster)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			if !stale {
				c.JSON(http.StatusOK, gin.H{
					"refreshed": false,
					"count":     0,
					"message":   "data is fresh, sync not needed",
				})
				return
			}
		}

		count, err := syncer.Sync(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"refreshed": true,
			"count":     count,
			"message":   "events refreshed from ticketmaster",
		})
	}
}
