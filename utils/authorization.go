package utils

import (
	"net/http"

	"github.com/casbin/casbin"
	"github.com/gin-gonic/gin"
)

// Authorize enforces the role policy (rbac/model.conf + rbac/policy.csv)
// against the authenticated user's role, the request path and the method.
func Authorize(enforcer *casbin.Enforcer) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := CurrentUser(ctx)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": "You are not logged in"})
			return
		}

		allowed := enforcer.Enforce(string(user.Role), ctx.Request.URL.Path, ctx.Request.Method)
		if !allowed {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"status": "fail", "message": "Permission denied"})
			return
		}

		ctx.Next()
	}
}
