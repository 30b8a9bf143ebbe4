package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
)

// requestLogger records one line per request. The /servo line from the
// tracking client arrives roughly once per frame, so this stays at debug
// for that path and info for everything else.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()

	if h.log == nil {
		return
	}

	kv := []interface{}{
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"latency_ms", time.Since(start).Milliseconds(),
	}
	if c.FullPath() == "/servo" {
		h.log.Debugw("http_request", kv...)
		return
	}
	h.log.Infow("http_request", kv...)
}
