package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fitlife/gymsched/internal/modules/user/dto"
	userService "github.com/fitlife/gymsched/internal/modules/user/service"
	"github.com/fitlife/gymsched/pkg/apperror"
	"github.com/fitlife/gymsched/pkg/response"
	"github.com/fitlife/gymsched/pkg/validator"
)

type UserHandler struct {
	service userService.UserService
}

func NewUserHandler(service userService.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	user, err := h.service.SignUp(c.Request.Context(), response.GetCaller(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	auth, err := h.service.Login(c.Request.Context(), response.GetCaller(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, auth)
}

// Show resolves a user by path id or, absent one, by the email query
// parameter (the alternate key of the identity store).
func (h *UserHandler) Show(c *gin.Context) {
	if idParam := c.Param("id"); idParam != "" {
		id, err := uuid.Parse(idParam)
		if err != nil {
			response.Error(c, apperror.NotFound("user not found"))
			return
		}

		user, err := h.service.ShowByID(c.Request.Context(), id)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
		return
	}

	email := c.Query("email")
	if email == "" {
		response.Error(c, apperror.BadRequest("id or email is required"))
		return
	}

	user, err := h.service.ShowByEmail(c.Request.Context(), email)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.BadRequest(validator.FormatValidationError(err)))
		return
	}

	user, err := h.service.Update(c.Request.Context(), response.GetCaller(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	message, err := h.service.Delete(c.Request.Context(), response.GetCaller(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, message)
}
