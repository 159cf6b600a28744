package handlers

import (
	"net/http"

	"slotwise/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last health monitor snapshot.
func HealthHandler(monitor *utils.HealthMonitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := monitor.Status()
		code := http.StatusOK
		if !status.Healthy {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":    statusText(status.Healthy),
			"checks":    status.Checks,
			"checkedAt": status.CheckedAt,
		})
	}
}

func statusText(healthy bool) string {
	if healthy {
		return "ok"
	}
	return "degraded"
}
