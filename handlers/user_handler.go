package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/tabsplit/tabsplit-backend/errors"
	"github.com/tabsplit/tabsplit-backend/logger"
	"github.com/tabsplit/tabsplit-backend/types"
)

// UserHandler handles HTTP requests for user management.
type UserHandler struct {
	userService UserServiceInterface
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService UserServiceInterface) *UserHandler {
	return &UserHandler{userService: userService}
}

// parseIDParam reads a numeric path parameter. A non-numeric value is a
// validation error, not a not-found.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		if err := c.Error(apperrors.ValidationFailed("invalid_id", "id must be a positive integer")); err != nil {
			logger.GetLogger().Errorw("Failed to add validation error", "error", err)
		}
		return 0, false
	}
	return id, true
}

// ListUsersHandler lists all users
// @Summary List users
// @Description Returns all users, most recently created first
// @Tags users
// @Produce json
// @Success 200 {array} types.User
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /users [get]
func (h *UserHandler) ListUsersHandler(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// CreateUserHandler creates a new user
// @Summary Create a user
// @Description Creates a user with a unique phone number
// @Tags users
// @Accept json
// @Produce json
// @Param request body types.UserCreate true "User details"
// @Success 201 {object} types.User
// @Failure 400 {object} types.ErrorResponse "Bad request - Invalid input or duplicate phone"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /users [post]
func (h *UserHandler) CreateUserHandler(c *gin.Context) {
	var req types.UserCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		if err := c.Error(apperrors.ValidationFailed("Invalid input", err.Error())); err != nil {
			logger.GetLogger().Errorw("Failed to add validation error", "error", err)
		}
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// GetUserHandler retrieves one user
// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} types.User
// @Failure 400 {object} types.ErrorResponse "Bad request - Invalid id"
// @Failure 404 {object} types.ErrorResponse "User not found"
// @Router /users/{id} [get]
func (h *UserHandler) GetUserHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateUserHandler partially updates a user
// @Summary Update a user
// @Description Applies a partial update; omitted fields keep their value
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body types.UserUpdate true "Fields to update"
// @Success 200 {object} types.User
// @Failure 400 {object} types.ErrorResponse "Bad request - Invalid input or duplicate phone"
// @Failure 404 {object} types.ErrorResponse "User not found"
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUserHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req types.UserUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		if err := c.Error(apperrors.ValidationFailed("Invalid input", err.Error())); err != nil {
			logger.GetLogger().Errorw("Failed to add validation error", "error", err)
		}
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), id, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUserHandler removes a user
// @Summary Delete a user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} types.MessageResponse
// @Failure 400 {object} types.ErrorResponse "Bad request - Invalid id"
// @Failure 404 {object} types.ErrorResponse "User not found"
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUserHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, types.MessageResponse{Message: "User deleted successfully"})
}
