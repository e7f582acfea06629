package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/authlend-api/internal/dto"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		log.Warn().Err(err).Msg("health check: database unreachable")
		env := dto.Failure(http.StatusServiceUnavailable, "unhealthy", nil)
		env.Data = gin.H{"database": "disconnected"}
		c.JSON(http.StatusServiceUnavailable, env)
		return
	}

	respond(c, http.StatusOK, "healthy", gin.H{"database": "connected"})
}
