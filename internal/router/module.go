package router

import "github.com/gin-gonic/gin"

// Module is one routable feature slice; each owns its route group, rate
// limits, and auth requirements.
type Module interface {
	Register(rg *gin.RouterGroup)
}
