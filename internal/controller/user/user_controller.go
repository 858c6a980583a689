package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/aokana/reportform/internal/dto"
	"github.com/aokana/reportform/internal/service"
)

type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{userService: userService}
}

// Register godoc
// @Summary Register a new account
// @Tags Users
// @Accept json
// @Produce json
// @Param user body dto.UserRegisterDTO true "Registration data"
// @Success 201 {object} dto.UserResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Validation failure"
// @Router /users [post]
func (c *UserController) Register(ctx *gin.Context) {
	var req dto.UserRegisterDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Register: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	user, err := c.userService.Register(req)
	if err != nil {
		respondUserError(ctx, err, "Failed to register the account")
		return
	}
	ctx.JSON(http.StatusCreated, user)
}

// Invite godoc
// @Summary Invite a new member by mail
// @Description Creates the invited account with a temporary password and sends the invitation message.
// @Tags Users
// @Accept json
// @Produce json
// @Param invite body dto.UserInviteDTO true "Invitee"
// @Success 201 {object} dto.UserResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Validation failure"
// @Router /users/invite [post]
func (c *UserController) Invite(ctx *gin.Context) {
	var req dto.UserInviteDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Invite: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	user, err := c.userService.Invite(req)
	if err != nil {
		respondUserError(ctx, err, "Failed to invite the member")
		return
	}
	ctx.JSON(http.StatusCreated, user)
}

// UpdateProfile godoc
// @Summary Update a profile without the current password
// @Description Applies name/email changes; blank password fields leave the stored password untouched.
// @Tags Users
// @Accept json
// @Produce json
// @Param user_id path int true "User ID"
// @Param profile body dto.UserProfileUpdateDTO true "Profile changes"
// @Success 200 {object} dto.UserResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Validation failure"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{user_id}/profile [patch]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	raw := ctx.Param("user_id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid user_id format"})
		return
	}
	var req dto.UserProfileUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("UpdateProfile: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	user, err := c.userService.UpdateWithoutCurrentPassword(uint(id), req)
	if err != nil {
		respondUserError(ctx, err, "Failed to update the account")
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// IsProjectLeader godoc
// @Summary Check whether the user leads a project
// @Tags Users
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID format"
// @Router /users/{user_id}/project-leader [get]
func (c *UserController) IsProjectLeader(ctx *gin.Context) {
	raw := ctx.Param("user_id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid user_id format"})
		return
	}
	leader, err := c.userService.IsProjectLeader(uint(id))
	if err != nil {
		log.Error().Err(err).Uint64("userID", id).Msg("IsProjectLeader: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to check project leadership", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"project_leader": leader})
}

func respondUserError(ctx *gin.Context, err error, message string) {
	var validationErr *service.ValidationError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.As(err, &validationErr):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: message, Details: validationErr.Messages})
	default:
		log.Error().Err(err).Msg(message)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: message, Details: []string{err.Error()}})
	}
}
