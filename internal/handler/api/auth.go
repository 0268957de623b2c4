package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "github.com/karenkairiyama/mobirent-sub000/internal/handler/dto/request"
	resdto "github.com/karenkairiyama/mobirent-sub000/internal/handler/dto/response"
	"github.com/karenkairiyama/mobirent-sub000/internal/handler/httperr"
	"github.com/karenkairiyama/mobirent-sub000/internal/handler/middleware"
	"github.com/karenkairiyama/mobirent-sub000/internal/pkg/config"
	"github.com/karenkairiyama/mobirent-sub000/internal/pkg/cookie"
	"github.com/karenkairiyama/mobirent-sub000/internal/usecase/commands"
	"github.com/karenkairiyama/mobirent-sub000/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authCommands  commands.AuthCommands
	userQueries   queries.UserQueries
	cookieCfg     config.CookieConfig
	tokenDuration time.Duration
}

func NewAuthHandler(
	authCommands commands.AuthCommands,
	userQueries queries.UserQueries,
	cookieCfg config.CookieConfig,
	tokenDuration time.Duration,
) *AuthHandler {
	return &AuthHandler{
		authCommands:  authCommands,
		userQueries:   userQueries,
		cookieCfg:     cookieCfg,
		tokenDuration: tokenDuration,
	}
}

// @Summary User login
// @Description Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.authCommands.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidCredentials),
			errors.Is(err, commands.ErrUserNotFound),
			errors.Is(err, commands.ErrAuthenticationFailed):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid email or password",
			})
		case errors.Is(err, commands.ErrUserInactive):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Account is inactive",
			})
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	cookie.SetAccessTokenCookie(c, h.cookieCfg, result.AccessToken, h.tokenDuration)

	c.JSON(http.StatusOK, resdto.LoginResponse{
		AccessToken: result.AccessToken,
		UserID:      result.UserID,
	})
}

// @Summary User logout
// @Description Logout current user session
// @Tags auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearAccessTokenCookie(c, h.cookieCfg)
	c.Status(http.StatusNoContent)
}

// @Summary Get current user
// @Description Get current authenticated user information
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.MeResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	u, err := h.userQueries.GetByID(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromAuthorizedUser(u))
}
