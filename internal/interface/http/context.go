package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/event-portal/internal/domain/entity"
)

// Keys under which the authorization gate stores the caller.
const (
	CtxUserID  = "userID"
	CtxAccount = "account"
)

// Caller returns the account stored by the gate, or nil outside a gated route.
func Caller(c *gin.Context) *entity.Account {
	v, ok := c.Get(CtxAccount)
	if !ok {
		return nil
	}
	a, _ := v.(*entity.Account)
	return a
}
