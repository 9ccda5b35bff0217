package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/learnloop/learnloop-backend/internal/services"
)

// GetBadgeStats handles GET /badges/stats, the award count per badge used
// by administrative reporting.
func GetBadgeStats(c *gin.Context) {
	stats, err := services.GetBadgeAwardStats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"badges": stats})
}
