package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// AliveMessage is what hosting platforms see on GET /.
const AliveMessage = "🤖 Railway Bot is Alive!"

// Handler handles HTTP requests
type Handler struct {
	logger  *zap.Logger
	started time.Time
}

// NewHandler creates a new liveness handler
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{
		logger:  logger,
		started: time.Now(),
	}
}

// NewRouter returns a gin engine with all routes registered
func NewRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	h.RegisterRoutes(router)
	return router
}

// RegisterRoutes registers all routes
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.Alive)
	r.GET("/health", h.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Alive returns a static confirmation string
func (h *Handler) Alive(c *gin.Context) {
	c.String(http.StatusOK, AliveMessage)
}

// HealthCheck returns service health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "railway-log-bot",
		"uptime":  time.Since(h.started).Round(time.Second).String(),
	})
}
