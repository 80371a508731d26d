package handlers

import (
	"log/slog"
	"net/http"

	"github.com/youssefkhaled23/factory-system-backend/internal/core/domain"
	portssvc "github.com/youssefkhaled23/factory-system-backend/internal/core/ports/services"
	"github.com/youssefkhaled23/factory-system-backend/internal/dto"
	"github.com/youssefkhaled23/factory-system-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

// newUserHandler creates a new userHandler.
func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{
		userService: us,
	}
}

// registerUserRoutes registers all user-related routes.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	users := rg.Group("/users")
	{
		users.GET("", h.listUsers)
		users.GET("/:id", h.getUser)
		users.POST("/add", h.createUser)
		users.PATCH("/:id", h.updateUser)
		users.PATCH("/:id/update-password", h.updateUserPassword)
		users.PATCH("/:id/update-status/:status", h.updateUserStatus)
		users.DELETE("/:id", h.deleteUser)
	}
}

// createUser godoc
// @Summary Create a new user
// @Description Creates a new active user with the given role
// @Tags users
// @Accept  json
// @Produce  json
// @Param   user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.APIResponse{data=dto.Results{results=dto.UserResponse}}
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Role not found"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Failure 500 {object} dto.ErrorResponse "Failed to create user"
// @Security BearerAuth
// @Router /users/add [post]
func (h *userHandler) createUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	creatorUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	createdUser, err := h.userService.CreateUser(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	middleware.GetLoggerFromContext(c).Info("User created successfully", slog.String("new_user_id", createdUser.UserID))
	c.JSON(http.StatusCreated, dto.NewAPIResponse("User created successfully", dto.ToUserResponse(createdUser)))
}

// getUser godoc
// @Summary Get a user by ID
// @Description Retrieves details for a specific user by their ID
// @Tags users
// @Produce  json
// @Param   id path string true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.Results{results=dto.UserResponse}}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve user"
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	user, err := h.userService.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse("User retrieved successfully", dto.ToUserResponse(user)))
}

// listUsers godoc
// @Summary List users
// @Description Retrieves users filtered by search, status and role
// @Tags users
// @Produce  json
// @Param   querySearch query string false "Case-insensitive match on name or email"
// @Param   status query string false "ACTIVE or INACTIVE"
// @Param   roleId query string false "Role ID"
// @Param   page query int false "Page number" default(1)
// @Param   limit query int false "Page size" default(10)
// @Param   hasPagination query bool false "Set false to return every row" default(true)
// @Success 200 {object} dto.APIResponse{data=dto.ListUsersResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list users"
// @Security BearerAuth
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondWithBindError(c, err)
		return
	}

	resp, err := h.userService.ListUsers(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err)
		return
	}

	middleware.GetLoggerFromContext(c).Debug("Users listed successfully", slog.Int("count", len(resp.Results)))
	c.JSON(http.StatusOK, dto.APIResponse{Status: true, Message: "Users retrieved successfully", Data: resp})
}

// updateUser godoc
// @Summary Update a user
// @Description Updates name and email of an active user. Password and role cannot be changed here.
// @Tags users
// @Accept  json
// @Produce  json
// @Param   id path string true "User ID to update"
// @Param   user body dto.UpdateUserRequest true "User details to update"
// @Success 200 {object} dto.APIResponse{data=dto.Results{results=dto.UserResponse}}
// @Failure 400 {object} dto.ErrorResponse "Invalid input or inactive user"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Failure 500 {object} dto.ErrorResponse "Failed to update user"
// @Security BearerAuth
// @Router /users/{id} [patch]
func (h *userHandler) updateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	requestingUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), c.Param("id"), req, requestingUserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse("User updated successfully", dto.ToUserResponse(user)))
}

// updateUserPassword godoc
// @Summary Set a user's password
// @Tags users
// @Accept  json
// @Produce  json
// @Param   id path string true "User ID"
// @Param   password body dto.UpdateUserPasswordRequest true "New password"
// @Success 200 {object} dto.APIResponse{data=dto.Results{results=dto.UserResponse}}
// @Failure 400 {object} dto.ErrorResponse "Weak password or inactive user"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Security BearerAuth
// @Router /users/{id}/update-password [patch]
func (h *userHandler) updateUserPassword(c *gin.Context) {
	var req dto.UpdateUserPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	requestingUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.UpdateUserPassword(c.Request.Context(), c.Param("id"), req, requestingUserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse("Password updated successfully", dto.ToUserResponse(user)))
}

// updateUserStatus godoc
// @Summary Change a user's status
// @Description Moving a user out of ACTIVE also ends their session. Super admins cannot be changed.
// @Tags users
// @Produce  json
// @Param   id path string true "User ID"
// @Param   status path string true "ACTIVE or INACTIVE"
// @Success 200 {object} dto.APIResponse{data=dto.Results{results=dto.UserResponse}}
// @Failure 400 {object} dto.ErrorResponse "Unknown status or inactive user"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 409 {object} dto.ErrorResponse "User is a super admin"
// @Security BearerAuth
// @Router /users/{id}/update-status/{status} [patch]
func (h *userHandler) updateUserStatus(c *gin.Context) {
	requestingUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	status := domain.UserStatus(c.Param("status"))
	user, err := h.userService.UpdateUserStatus(c.Request.Context(), c.Param("id"), status, requestingUserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse("User status updated successfully", dto.ToUserResponse(user)))
}

// deleteUser godoc
// @Summary Delete a user
// @Tags users
// @Produce  json
// @Param   id path string true "User ID to delete"
// @Success 200 {object} dto.APIResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to delete user"
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *userHandler) deleteUser(c *gin.Context) {
	userID := c.Param("id")
	if err := h.userService.DeleteUser(c.Request.Context(), userID); err != nil {
		respondWithError(c, err)
		return
	}

	middleware.GetLoggerFromContext(c).Info("User deleted successfully", slog.String("target_user_id", userID))
	c.JSON(http.StatusOK, dto.APIResponse{Status: true, Message: "User deleted successfully"})
}
