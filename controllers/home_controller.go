package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Home is the landing endpoint; doubles as a liveness check.
func Home(c *gin.Context) {
	resp := gin.H{"service": "fitlytics", "status": "ok"}
	if username := c.GetString("username"); username != "" {
		resp["username"] = username
	}
	c.JSON(http.StatusOK, resp)
}
