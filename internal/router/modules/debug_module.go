package modules

import (
	"expvar"

	"github.com/gin-gonic/gin"
)

// DebugModule exposes expvar counters when enabled.
type DebugModule struct {
	Enabled bool
}

func NewDebugModule(enabled bool) *DebugModule { return &DebugModule{Enabled: enabled} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	if !m.Enabled {
		return
	}
	rg.GET("/debug/vars", gin.WrapH(expvar.Handler()))
}
