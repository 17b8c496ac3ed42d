package health

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostelmate/marketplace-api/internal/kvstore"
)

type Handler struct {
	kv kvstore.Store
}

func NewHandler(kv kvstore.Store) *Handler {
	return &Handler{kv: kv}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	health := r.Group("/health")
	{
		health.GET("/live", h.LivenessCheck)
		health.GET("/ready", h.ReadinessCheck)
	}
}

func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}

// ReadinessCheck probes the key-value backend with a read.
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if _, _, err := h.kv.Get(c.Request.Context(), "hostelmate:health_probe"); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "DOWN",
			"reason": "key-value store unreachable",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}
