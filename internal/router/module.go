package router

import "github.com/gin-gonic/gin"

// Module mounts one feature's routes (auth, events, uploads, debug) under the API group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
