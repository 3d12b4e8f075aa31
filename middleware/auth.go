package middleware

import (
	"context"
	"strings"

	"businessconnect/services/policy"
	"businessconnect/utils"

	"github.com/gin-gonic/gin"
)

// actorKey is the gin context key holding the authenticated *policy.Actor.
const actorKey = "actor"

// Authenticator resolves a session token to its actor.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*policy.Actor, error)
}

// tokenFromRequest reads the session token from the jwt cookie, then the Bearer header.
func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(utils.AuthCookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

// JWTAuthMiddleware rejects requests without a valid session token.
func JWTAuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			utils.RespondError(c, utils.Unauthorized("Not authorized, no token"))
			return
		}
		actor, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches the actor when a valid token is present and
// lets anonymous requests through otherwise.
func OptionalAuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := tokenFromRequest(c); token != "" {
			if actor, err := auth.Authenticate(c.Request.Context(), token); err == nil {
				c.Set(actorKey, actor)
			}
		}
		c.Next()
	}
}

// ActorFrom returns the authenticated actor, if any.
func ActorFrom(c *gin.Context) (policy.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return policy.Actor{}, false
	}
	actor, ok := v.(*policy.Actor)
	if !ok || actor == nil {
		return policy.Actor{}, false
	}
	return *actor, true
}

// SetActor attaches an actor to the request context.
func SetActor(c *gin.Context, actor *policy.Actor) {
	c.Set(actorKey, actor)
}
