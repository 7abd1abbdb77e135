package http

import (
	"github.com/gin-gonic/gin"

	"image-calendar-generator/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	rg.POST("/process-image", mw.RateLimit(), h.ProcessImage)
}
