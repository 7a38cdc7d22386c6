package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health reports process liveness
func Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "Application is up!!!"})
}
