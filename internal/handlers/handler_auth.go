package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/youssefkhaled23/factory-system-backend/internal/core/ports/services"
	"github.com/youssefkhaled23/factory-system-backend/internal/dto"
	"github.com/youssefkhaled23/factory-system-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Route templates the auth middleware lets through without a bearer token.
const (
	loginRoute        = "/api/v1/auth/login"
	refreshTokenRoute = "/api/v1/auth/refresh-token"
)

// PublicRoutes lists the v1 route templates that skip the session guard.
func PublicRoutes() []string {
	return []string{loginRoute, refreshTokenRoute}
}

// authHandler handles authentication related requests.
type authHandler struct {
	authService portssvc.AuthSvcFacade
}

func newAuthHandler(as portssvc.AuthSvcFacade) *authHandler {
	return &authHandler{authService: as}
}

// registerAuthRoutes sets up the routes for authentication.
func registerAuthRoutes(rg *gin.RouterGroup, authService portssvc.AuthSvcFacade) {
	h := newAuthHandler(authService)

	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.login)
		auth.POST("/refresh-token", h.refreshToken)
		auth.GET("/profile", h.getProfile)
		auth.POST("/logout", h.logout)
	}
}

// login godoc
// @Summary User login
// @Description Authenticates a user and starts a new session. Any earlier session of the same user stops being accepted.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.Results{results=dto.LoginResponse}}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse("Logged in successfully", dto.ToLoginResponse(*result)))
}

// refreshToken godoc
// @Summary Refresh tokens
// @Description Exchanges a valid refresh token for a new token pair. The previous refresh token stops working.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.APIResponse{data=dto.Results{results=dto.TokenResponse}}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/refresh-token [post]
func (h *authHandler) refreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	pair, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse("Token refreshed successfully", dto.ToTokenResponse(*pair)))
}

// getProfile godoc
// @Summary Current user
// @Description Returns the profile of the authenticated user.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.Results{results=dto.UserResponse}}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /auth/profile [get]
func (h *authHandler) getProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	user, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse("Profile retrieved successfully", dto.ToUserResponse(user)))
}

// logout godoc
// @Summary Logout
// @Description Ends the current session. Outstanding access and refresh tokens stop being accepted.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.authService.Logout(c.Request.Context(), userID); err != nil {
		respondWithError(c, err)
		return
	}

	middleware.GetLoggerFromContext(c).Info("Session ended", slog.String("user_id", userID))
	c.JSON(http.StatusOK, dto.APIResponse{Status: true, Message: "Logged out successfully"})
}
