package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ozank/stationhub/internal/app/models"
	"github.com/ozank/stationhub/internal/app/models/dto"
	"github.com/ozank/stationhub/internal/app/services"
	"github.com/ozank/stationhub/internal/middleware"
)

// defaultInactivityDays is the inactivity window applied when the sweep
// request does not override it.
const defaultInactivityDays = 30

// UserController handles account lifecycle operations
type UserController struct {
	userService services.UserService
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

// Create handles POST /users
func (c *UserController) Create(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid create user payload")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request body")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail.WithDetails(err.Error())))
		return
	}

	user, err := c.userService.Create(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Error().Err(err).Str("email", req.Email).Msg("Failed to create user")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("user created", user))
}

// Update handles PUT /users/:id
func (c *UserController) Update(ctx *gin.Context) {
	id, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user id")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request body")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail.WithDetails(err.Error())))
		return
	}

	user, err := c.userService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("id", id.Hex()).Msg("Failed to update user")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("user updated", user))
}

// Delete handles DELETE /users/:id
func (c *UserController) Delete(ctx *gin.Context) {
	id, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user id")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.userService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("user deleted", nil))
}

// ReassignRole handles PUT /users/role: bulk role reassignment over a
// lastLogin window
func (c *UserController) ReassignRole(ctx *gin.Context) {
	var req dto.ReassignRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request body")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail.WithDetails(err.Error())))
		return
	}

	start, err := parseTimestamp(req.StartDate)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	end, err := parseTimestamp(req.EndDate)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	affected, err := c.userService.ReassignRole(ctx.Request.Context(), start, end, models.Role(req.Role))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("roles reassigned", dto.ReassignRoleResponse{
		AffectedCount: affected,
	}))
}

// DeleteInactive handles DELETE /users/deleteInactive: removes accounts
// whose last login is older than the inactivity window
func (c *UserController) DeleteInactive(ctx *gin.Context) {
	days := defaultInactivityDays

	var req dto.DeleteInactiveRequest
	// Body is optional; an empty body keeps the default window
	if err := ctx.ShouldBindJSON(&req); err == nil && req.Days != nil {
		days = *req.Days
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	deleted, err := c.userService.DeleteInactive(ctx.Request.Context(), cutoff)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("inactive users deleted", dto.DeleteInactiveResponse{
		DeletedCount: deleted,
	}))
}
