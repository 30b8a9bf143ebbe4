package handlers

import (
	"controlling_servo/internal/logger"
	"controlling_servo/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires the HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Firmware-compatible control surface: the tracking client speaks
	// exactly these two paths.
	router.POST("/servo", h.setServo)
	router.GET("/status", h.getStatus)

	// Versioned API endpoints
	api := router.Group("/api/v1")
	{
		api.GET("/logs", h.getLogs)
	}

	// Minimal WebSocket connection (HTTP upgrade) — same port
	router.GET("/ws", h.wsConnect)

	// Anything else gets the diagnostic help text. gin routes unmatched
	// methods here too, so a GET /servo lands in the same place.
	router.NoRoute(h.notFound)

	return router
}
