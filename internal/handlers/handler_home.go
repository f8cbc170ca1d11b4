package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// homeHandler godoc
// @Summary API root
// @Description Returns a minimal identification payload
// @Tags home
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func homeHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "notaria-backend",
		"status":  "ok",
	})
}
