package handlers

import (
	"businessconnect/middleware"
	"businessconnect/services/business"
	"businessconnect/services/policy"
	"businessconnect/services/review"
	"businessconnect/services/user"
	"businessconnect/utils"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	User     *UserHandler
	Business *BusinessHandler
	Review   *ReviewHandler
}

func NewHandlerBundle(userSvc user.UserService, businessSvc business.BusinessService, reviewSvc review.ReviewService) *HandlerBundle {
	return &HandlerBundle{
		User:     &UserHandler{UserService: userSvc},
		Business: &BusinessHandler{BusinessService: businessSvc},
		Review:   &ReviewHandler{ReviewService: reviewSvc},
	}
}

// requireActor returns the authenticated actor or writes a 401.
func requireActor(c *gin.Context) (policy.Actor, bool) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		utils.RespondError(c, utils.Unauthorized("Not authorized, no token"))
		return policy.Actor{}, false
	}
	return actor, true
}

// viewerKey identifies a viewer for view dedup: the user when signed in, else the client IP.
func viewerKey(c *gin.Context) string {
	if actor, ok := middleware.ActorFrom(c); ok {
		return "user:" + actor.ID
	}
	return "ip:" + middleware.GetClientIP(c)
}
