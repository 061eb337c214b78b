package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Info is the static service description reported by GET /health.
type Info struct {
	Provider     string `json:"provider"`
	SummaryModel string `json:"summary_model"`
	TitleModel   string `json:"title_model"`
}

// RegisterRoutes mounts the liveness endpoint. It never calls the provider.
func RegisterRoutes(rg *gin.RouterGroup, info Info) {
	rg.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"inference": info,
		})
	})
}
