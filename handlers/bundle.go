package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the endpoint handlers for route registration.
type HandlerBundle struct {
	// Chat endpoints
	ChatHandler gin.HandlerFunc

	// Operational endpoints
	HealthHandler gin.HandlerFunc
}
