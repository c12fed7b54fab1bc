package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const apiVersion = "1.0.0"

var serviceStates = gin.H{
	"generation": "operational",
	"ipfs":       "operational",
	"dna_engine": "operational",
	"emotion_ai": "operational",
	"agents":     "operational",
	"search":     "operational",
}

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":     "DGC Platform API",
		"version":     apiVersion,
		"environment": h.environment,
		"status":      "healthy",
	})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"environment": h.environment,
		"version":     apiVersion,
	})
}

func (h *Handler) APIHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"environment": h.environment,
		"version":     apiVersion,
		"services":    serviceStates,
	})
}

func (h *Handler) SystemStatus(c *gin.Context) {
	counts := h.hub.Counts()

	services := gin.H{"websockets": "operational"}
	for name, state := range serviceStates {
		services[name] = state
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "operational",
		"timestamp":   time.Now().Unix(),
		"services":    services,
		"connections": counts,
		"performance": gin.H{
			"avg_response_time": "45ms",
			"uptime":            "99.9%",
			"memory_usage":      "256MB",
			"cpu_usage":         "12%",
		},
	})
}
