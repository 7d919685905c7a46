package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// IHealthHandler defines the interface for liveness probes
type IHealthHandler interface {
	Health(ctx *gin.Context)
}

type HealthHandler struct{}

func NewHealthHandler() IHealthHandler {
	return &HealthHandler{}
}

// Health handles GET /healthz
func (h *HealthHandler) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
