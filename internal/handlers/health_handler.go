package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	ready func() bool
}

// NewHealthHandler creates a health handler. ready reports whether the
// server is accepting enquiries; it turns false once shutdown starts.
func NewHealthHandler(ready func() bool) *HealthHandler {
	return &HealthHandler{
		ready: ready,
	}
}

func (h *HealthHandler) Healthcheck(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate")

	if h.ready != nil && !h.ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"reason": "server is not accepting requests",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
