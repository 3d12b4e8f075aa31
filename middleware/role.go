package middleware

import (
	"businessconnect/models"
	"businessconnect/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole lets the request through only for actors holding one of roles.
// It must run after JWTAuthMiddleware.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			utils.RespondError(c, utils.Unauthorized("Not authorized, no token"))
			return
		}
		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}
		utils.RespondError(c, utils.Forbidden("Not authorized for this action"))
	}
}
