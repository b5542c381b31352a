package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/buildvance/estimator-backend/internal/dto"
	"github.com/buildvance/estimator-backend/internal/services"
	"github.com/buildvance/estimator-backend/internal/types"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type registerUserRequest struct {
	Username   string         `json:"username"`
	Email      string         `json:"email"`
	Registered bool           `json:"registered"`
	Contact    dto.ContactDto `json:"contact"`
	Labels     []string       `json:"labels"`
}

func (uh *UserHandler) Register(c *gin.Context) {
	var req registerUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, 400, "bad_request", err)
		return
	}
	contact, err := dto.ContactFromDto(req.Contact)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	labels := types.ParseContactLabels(req.Labels)

	var user *types.User
	if req.Registered {
		user, err = uh.userService.NewRegisteredUser(c.Request.Context(), req.Username, req.Email, contact, labels...)
	} else {
		user, err = uh.userService.NewUnregisteredUser(c.Request.Context(), req.Username, req.Email, contact, labels...)
	}
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, dto.UserToDto(user))
}

func (uh *UserHandler) GetByID(c *gin.Context) {
	id, err := dto.ParseUUID("user id", c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	user, err := uh.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, dto.UserToDto(user))
}

// GetByUsername handles /users?username= lookups.
func (uh *UserHandler) GetByUsername(c *gin.Context) {
	user, err := uh.userService.GetByUsername(c.Request.Context(), c.Query("username"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, dto.UserToDto(user))
}

func (uh *UserHandler) Delete(c *gin.Context) {
	id, err := dto.ParseUUID("user id", c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if err := uh.userService.Delete(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}
