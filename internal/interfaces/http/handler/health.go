package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mattilda/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

const (
	healthOK       = "ok"
	healthError    = "error"
	healthInMemory = "in-memory"

	healthTimeout = 2 * time.Second
)

// DatabasePinger reports database reachability
type DatabasePinger interface {
	Ping() error
}

// CachePinger reports cache reachability
type CachePinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports process and dependency health
type HealthHandler struct {
	db    DatabasePinger
	cache any
}

// NewHealthHandler creates a new HealthHandler. cache is the statement store in use;
// stores that cannot be pinged are reported as in-memory.
func NewHealthHandler(db DatabasePinger, cache any) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// HealthResponse is the body of the health endpoint
// @Description Service health
type HealthResponse struct {
	Status   string    `json:"status" example:"healthy"`
	Time     time.Time `json:"time"`
	Database string    `json:"database" example:"ok"`
	Cache    string    `json:"cache" example:"ok"`
}

// Check godoc
// @ID           healthCheck
//
//	@Summary		Health check
//	@Description	Database failure makes the service unhealthy; a cache failure only degrades it
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Failure		503	{object}	HealthResponse
//	@Router			/health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	resp := HealthResponse{
		Status:   "healthy",
		Time:     time.Now().UTC(),
		Database: healthOK,
		Cache:    healthInMemory,
	}
	status := http.StatusOK

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			logger.GetGinLogger(c).Warn("Database health check failed", zap.Error(err))
			resp.Database = healthError
			resp.Status = "unhealthy"
			status = http.StatusServiceUnavailable
		}
	}

	if pinger, ok := h.cache.(CachePinger); ok {
		resp.Cache = healthOK
		if err := pinger.Ping(ctx); err != nil {
			logger.GetGinLogger(c).Warn("Cache health check failed", zap.Error(err))
			resp.Cache = healthError
			if status == http.StatusOK {
				resp.Status = "degraded"
			}
		}
	}

	c.JSON(status, resp)
}
