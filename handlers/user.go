package handlers

import (
	"net/http"

	"businessconnect/config"
	"businessconnect/middleware"
	"businessconnect/services/user"
	"businessconnect/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler serves the identity endpoints under /api/users.
type UserHandler struct {
	UserService user.UserService
}

func setAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(utils.AuthCookieName, token, int(utils.TokenTTL().Seconds()), "/", "", !config.IsDevelopment(), true)
}

func clearAuthCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(utils.AuthCookieName, "", -1, "/", "", !config.IsDevelopment(), true)
}

func sessionMeta(c *gin.Context) user.SessionMeta {
	return user.SessionMeta{IP: middleware.GetClientIP(c), UserAgent: c.Request.UserAgent()}
}

// RegisterHandler handles POST /api/users/register.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	logger := getLogger(c)
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid registration payload", zap.Error(err))
		utils.RespondError(c, utils.BadRequest("Invalid request payload"))
		return
	}

	resp, err := h.UserService.Register(c.Request.Context(), req, sessionMeta(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	logger.Info("User registered", zap.String("userId", resp.ID), zap.String("role", string(resp.Role)))
	setAuthCookie(c, resp.Token)
	c.JSON(http.StatusCreated, resp)
}

// LoginHandler handles POST /api/users/login.
func (h *UserHandler) LoginHandler(c *gin.Context) {
	logger := getLogger(c)
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid login payload", zap.Error(err))
		utils.RespondError(c, utils.BadRequest("Invalid request payload"))
		return
	}

	resp, err := h.UserService.Login(c.Request.Context(), req, sessionMeta(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	setAuthCookie(c, resp.Token)
	c.JSON(http.StatusOK, resp)
}

// LogoutHandler handles POST /api/users/logout. Anonymous callers just get the cookie cleared.
func (h *UserHandler) LogoutHandler(c *gin.Context) {
	if actor, ok := middleware.ActorFrom(c); ok {
		if err := h.UserService.Logout(c.Request.Context(), actor); err != nil {
			utils.RespondError(c, err)
			return
		}
	}
	clearAuthCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// GetProfileHandler handles GET /api/users/profile.
func (h *UserHandler) GetProfileHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	profile, err := h.UserService.GetProfile(c.Request.Context(), actor.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfileHandler handles PUT /api/users/profile.
func (h *UserHandler) UpdateProfileHandler(c *gin.Context) {
	logger := getLogger(c)
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req user.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid profile payload", zap.Error(err))
		utils.RespondError(c, utils.BadRequest("Invalid request payload"))
		return
	}
	profile, err := h.UserService.UpdateProfile(c.Request.Context(), actor, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetSessionsHandler handles GET /api/users/sessions.
func (h *UserHandler) GetSessionsHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	sessions, err := h.UserService.ListSessions(c.Request.Context(), actor)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// RevokeSessionHandler handles DELETE /api/users/sessions/:sessionId.
func (h *UserHandler) RevokeSessionHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	if err := h.UserService.RevokeSession(c.Request.Context(), actor, c.Param("sessionId")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session revoked successfully"})
}

// GetActivitiesHandler handles GET /api/users/activities.
func (h *UserHandler) GetActivitiesHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	activities, err := h.UserService.Activities(c.Request.Context(), actor)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, activities)
}
